package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/diva1520/task-tracker/middleware"
	"github.com/diva1520/task-tracker/models"
	"github.com/diva1520/task-tracker/services"
)

type LeaveController struct {
	Svc *services.LeaveService
}

type leaveRequest struct {
	FromDate  string `json:"from_date"`
	ToDate    string `json:"to_date"`
	LeaveType string `json:"leave_type"`
	Reason    string `json:"reason"`
	HalfDay   bool   `json:"half_day"`
}

func (lc *LeaveController) Request(c *gin.Context) {
	var req leaveRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, _ := middleware.Actor(c)

	from, _ := parseTime(req.FromDate)
	to, _ := parseTime(req.ToDate)
	leave, err := lc.Svc.Request(userID, &models.LeaveRequest{
		FromDate:  from,
		ToDate:    to,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
		HalfDay:   req.HalfDay,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

func (lc *LeaveController) MyHistory(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	leaves, err := lc.Svc.MyLeaves(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

func (lc *LeaveController) Balance(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	balance, err := lc.Svc.Balance(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (lc *LeaveController) Pending(c *gin.Context) {
	leaves, err := lc.Svc.Pending()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

func (lc *LeaveController) History(c *gin.Context) {
	leaves, err := lc.Svc.History()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

func (lc *LeaveController) UpdateStatus(c *gin.Context) {
	leaveID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leave, err := lc.Svc.Decide(leaveID, body.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

func (lc *LeaveController) Summaries(c *gin.Context) {
	summaries, err := lc.Svc.UserSummaries()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}
