package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diva1520/task-tracker/middleware"
	"github.com/diva1520/task-tracker/services"
)

type TimesheetController struct {
	Svc *services.TimesheetService
}

func (tc *TimesheetController) DownloadTemplate(c *gin.Context) {
	userID, _ := middleware.Actor(c)

	template, err := tc.Svc.Template(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=timesheet_template.xlsx")
	c.Data(http.StatusOK, xlsxContentType, template)
}

func (tc *TimesheetController) Upload(c *gin.Context) {
	userID, _ := middleware.Actor(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	message, err := tc.Svc.Upload(userID, f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (tc *TimesheetController) SaveWeekly(c *gin.Context) {
	userID, _ := middleware.Actor(c)

	var req services.WeeklyLogRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message, err := tc.Svc.SaveWeekly(userID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (tc *TimesheetController) Weekly(c *gin.Context) {
	userID, _ := middleware.Actor(c)

	start, ok := parseTime(c.Query("startDate"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate is required (YYYY-MM-DD)"})
		return
	}
	logs, err := tc.Svc.Weekly(userID, start)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
