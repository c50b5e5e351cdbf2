package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/diva1520/task-tracker/services"
)

// fail maps a service rejection onto an HTTP status. Unexpected errors
// (store failures) become a 500 and are logged without leaking detail.
func fail(c *gin.Context, err error) {
	kind, ok := services.KindOf(err)
	if !ok {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusBadRequest
	switch kind {
	case services.KindAuthorization:
		status = http.StatusForbidden
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseTime accepts RFC 3339 timestamps and bare dates.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
