package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diva1520/task-tracker/middleware"
	"github.com/diva1520/task-tracker/services"
	"github.com/diva1520/task-tracker/utils"
)

type AuthController struct {
	Users    services.UserStore
	Sessions *services.SessionService
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Users.ByUsername(input.Username)
	if errors.Is(err, services.ErrNotFound) || (err == nil && !utils.CheckPassword(input.Password, user.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	if !user.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	if err := ac.Sessions.RecordLogin(user, c.ClientIP(), c.GetHeader("User-Agent")); err != nil {
		fail(c, err)
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (ac *AuthController) Logout(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	if err := ac.Sessions.RecordLogout(userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
