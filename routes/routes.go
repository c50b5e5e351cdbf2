package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/controllers"
	"github.com/diva1520/task-tracker/middleware"
	"github.com/diva1520/task-tracker/services"
	"github.com/diva1520/task-tracker/store"
)

// SetupRouter wires stores, services and controllers onto a gin engine.
// A nil mailer disables notifications.
func SetupRouter(db *gorm.DB, mailer services.Mailer) *gin.Engine {
	r := gin.Default()

	st := store.New(db)
	logger := slog.Default()

	notifier := &services.Notifier{Mailer: mailer, Logger: logger, Clock: services.SystemClock}
	taskSvc := services.NewTaskService(st.Tasks, st.Details, st.WorkLogs, st.Users, notifier, services.SystemClock, logger)
	sessionSvc := &services.SessionService{Audits: st.Audits, Clock: services.SystemClock}
	adminSvc := &services.AdminService{
		Users: st.Users, Tasks: st.Tasks, WorkLogs: st.WorkLogs,
		Leaves: st.Leaves, Audits: st.Audits, Clock: services.SystemClock,
	}
	leaveSvc := &services.LeaveService{Leaves: st.Leaves, Users: st.Users, Notifier: notifier, Clock: services.SystemClock}
	timesheetSvc := &services.TimesheetService{TaskSvc: taskSvc, Clock: services.SystemClock}
	reportSvc := &services.ReportService{Users: st.Users, Tasks: st.Tasks, WorkLogs: st.WorkLogs, Audits: st.Audits}

	authController := controllers.AuthController{Users: st.Users, Sessions: sessionSvc}
	taskController := controllers.TaskController{Svc: taskSvc}
	userController := controllers.UserController{Users: st.Users}
	adminController := controllers.AdminController{Admin: adminSvc, Tasks: taskSvc, Reports: reportSvc}
	timesheetController := controllers.TimesheetController{Svc: timesheetSvc}
	leaveController := controllers.LeaveController{Svc: leaveSvc}

	r.POST("/auth/login", authController.Login)

	authed := r.Group("/", middleware.AuthMiddleware())
	authed.POST("/auth/logout", authController.Logout)

	user := authed.Group("/user")
	user.GET("/profile", userController.Profile)
	user.GET("/tasks", taskController.ViewTasks)
	user.POST("/tasks/addtask", taskController.AddTask)
	user.PUT("/tasks/:id", taskController.EditTask)
	user.GET("/tasks/:id/history", taskController.History)
	user.POST("/tasks/log-work", taskController.LogWork)
	user.GET("/tasks/stats", taskController.Stats)

	timesheet := user.Group("/timesheet")
	timesheet.GET("/template", timesheetController.DownloadTemplate)
	timesheet.POST("/upload", timesheetController.Upload)
	timesheet.POST("/save-weekly", timesheetController.SaveWeekly)
	timesheet.GET("/weekly", timesheetController.Weekly)

	leave := authed.Group("/api/leave")
	leave.POST("/request", leaveController.Request)
	leave.GET("/my-history", leaveController.MyHistory)
	leave.GET("/balance", leaveController.Balance)

	leaveAdmin := leave.Group("/admin", middleware.RoleMiddleware(constants.RoleSupervisor))
	leaveAdmin.GET("/pending", leaveController.Pending)
	leaveAdmin.GET("/history", leaveController.History)
	leaveAdmin.GET("/summary", leaveController.Summaries)
	leaveAdmin.PUT("/:id/status", leaveController.UpdateStatus)

	admin := authed.Group("/admin", middleware.RoleMiddleware(constants.RoleSupervisor))
	admin.GET("/users", adminController.GetUsers)
	admin.POST("/create-user", adminController.CreateUser)
	admin.POST("/assign-task", adminController.AssignTask)
	admin.POST("/task", adminController.QueryTasks)
	admin.GET("/audit", adminController.GetAuditLogs)
	admin.GET("/audit/:userId", adminController.GetUserAuditLogs)
	admin.GET("/work-logs", adminController.GetWorkLogs)
	admin.GET("/work-logs/:userId", adminController.GetUserWorkLogs)
	admin.POST("/users/:id/status", adminController.UpdateUserStatus)
	admin.GET("/users/:id/stats", adminController.GetUserStats)
	admin.GET("/summary", adminController.GetSummary)
	admin.GET("/users/:userId/report", adminController.DownloadUserReport)

	return r
}
