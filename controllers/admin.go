package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diva1520/task-tracker/middleware"
	"github.com/diva1520/task-tracker/models"
	"github.com/diva1520/task-tracker/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	Admin   *services.AdminService
	Tasks   *services.TaskService
	Reports *services.ReportService
}

func (ac *AdminController) GetUsers(c *gin.Context) {
	users, err := ac.Admin.ListUsers()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ac *AdminController) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.BindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := ac.Admin.CreateUser(&user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

type assignTaskRequest struct {
	UserID      uint   `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

func (ac *AdminController) AssignTask(c *gin.Context) {
	var req assignTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	supervisorID, _ := middleware.Actor(c)

	task, err := ac.Tasks.Assign(supervisorID, req.UserID, req.Title, req.Description, optionalTime(req.DueDate))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type taskQueryRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	UserIDs  []uint `json:"user_ids"`
}

// QueryTasks returns all tasks, or tasks created in a date range when
// one is supplied.
func (ac *AdminController) QueryTasks(c *gin.Context) {
	var req taskQueryRequest
	if c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	from, okFrom := parseTime(req.FromDate)
	to, okTo := parseTime(req.ToDate)
	if !okFrom && !okTo {
		tasks, err := ac.Tasks.ListAll()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}
	if !okFrom || !okTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both from_date and to_date are required"})
		return
	}

	tasks, err := ac.Tasks.ListBetween(from, to, req.UserIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (ac *AdminController) GetAuditLogs(c *gin.Context) {
	audits, err := ac.Admin.AllAuditLogs()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, audits)
}

func (ac *AdminController) GetUserAuditLogs(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	audits, err := ac.Admin.UserAuditLogs(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, audits)
}

func (ac *AdminController) GetWorkLogs(c *gin.Context) {
	logs, err := ac.Admin.AllWorkLogs()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (ac *AdminController) GetUserWorkLogs(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	logs, err := ac.Admin.UserWorkLogs(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (ac *AdminController) UpdateUserStatus(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	active := c.Query("active") == "true"

	user, err := ac.Admin.SetUserActive(userID, active)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AdminController) GetUserStats(c *gin.Context) {
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	stats, err := ac.Tasks.Stats(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ac *AdminController) GetSummary(c *gin.Context) {
	summary, err := ac.Admin.Summary()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ac *AdminController) DownloadUserReport(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	report, err := ac.Reports.ActivityReport(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=user_report_%d.xlsx", userID))
	c.Data(http.StatusOK, xlsxContentType, report)
}
