package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/middleware"
	"github.com/diva1520/task-tracker/services"
)

type TaskController struct {
	Svc *services.TaskService
}

type taskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Comment     *string          `json:"comment"`
	Status      constants.Status `json:"status"`
	DueDate     string           `json:"due_date"`
	UserID      *uint            `json:"user_id"`
}

func (tc *TaskController) ViewTasks(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	tasks, err := tc.Svc.ListOwn(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (tc *TaskController) AddTask(c *gin.Context) {
	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := middleware.Actor(c)

	title, description := "", ""
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	due := optionalTime(req.DueDate)

	task, err := tc.Svc.Create(userID, title, description, due)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// EditTask updates fields and, when the request carries a different
// status, runs the transition.
func (tc *TaskController) EditTask(c *gin.Context) {
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, role := middleware.Actor(c)

	task, err := tc.Svc.Edit(services.EditRequest{
		TaskID:      taskID,
		ActorID:     userID,
		Role:        role,
		Title:       req.Title,
		Description: req.Description,
		Comment:     req.Comment,
		Status:      req.Status,
		NewOwnerID:  req.UserID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) History(c *gin.Context) {
	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}
	history, err := tc.Svc.BuildHistory(taskID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

type workLogRequest struct {
	TaskID    uint             `json:"task_id"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Comment   string           `json:"comment"`
	Status    constants.Status `json:"status"`
}

// LogWork records a time entry and optionally a follow-up transition. A
// transition rejection is reported even though the log stays recorded.
func (tc *TaskController) LogWork(c *gin.Context) {
	var req workLogRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, role := middleware.Actor(c)

	start, _ := parseTime(req.StartTime)
	end, _ := parseTime(req.EndTime)

	log, err := tc.Svc.LogWork(services.WorkLogRequest{
		TaskID:    req.TaskID,
		ActorID:   userID,
		Role:      role,
		StartTime: start,
		EndTime:   end,
		Comment:   req.Comment,
		Status:    req.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (tc *TaskController) Stats(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	stats, err := tc.Svc.Stats(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func optionalTime(s string) *time.Time {
	if t, ok := parseTime(s); ok {
		return &t
	}
	return nil
}
