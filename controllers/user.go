package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diva1520/task-tracker/middleware"
	"github.com/diva1520/task-tracker/services"
)

type UserController struct {
	Users services.UserStore
}

func (uc *UserController) Profile(c *gin.Context) {
	userID, _ := middleware.Actor(c)

	user, err := uc.Users.Get(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}
