package services

import (
	"errors"
	"strings"
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
	"github.com/diva1520/task-tracker/utils"
)

// AdminService covers the supervisor-side user directory and reporting
// queries.
type AdminService struct {
	Users    UserStore
	Tasks    TaskStore
	WorkLogs WorkLogStore
	Leaves   LeaveStore
	Audits   LoginAuditStore
	Clock    Clock
}

// CreateUser validates and stores a new user with a hashed password.
func (a *AdminService) CreateUser(user *models.User) (*models.User, error) {
	switch {
	case strings.TrimSpace(user.Username) == "":
		return nil, Validationf("username is required")
	case user.Password == "":
		return nil, Validationf("password is required")
	case !user.Role.Valid():
		return nil, Validationf("role must be %s or %s", constants.RoleWorker, constants.RoleSupervisor)
	case user.Email == "" || !strings.Contains(user.Email, "@"):
		return nil, Validationf("a valid email is required")
	}

	if _, err := a.Users.ByUsername(user.Username); err == nil {
		return nil, Conflictf("username %q is already taken", user.Username)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed
	user.Active = true
	if a.Clock != nil {
		user.CreatedAt = a.Clock()
	}
	if err := a.Users.Create(user); err != nil {
		return nil, err
	}

	out := *user
	out.Password = ""
	return &out, nil
}

// ListUsers returns every user, passwords blanked.
func (a *AdminService) ListUsers() ([]models.User, error) {
	users, err := a.Users.All()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// SetUserActive toggles a user on or off.
func (a *AdminService) SetUserActive(id uint, active bool) (*models.User, error) {
	user, err := a.Users.Get(id)
	if errors.Is(err, ErrNotFound) {
		return nil, NotFoundf("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	user.Active = active
	if err := a.Users.Save(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// AdminSummary is the dashboard roll-up of users, tasks and leave.
type AdminSummary struct {
	TotalUsers        int64  `json:"total_users"`
	ActiveUsers       int64  `json:"active_users"`
	UsersWithoutTasks int64  `json:"users_without_tasks"`
	TotalUserIDs      []uint `json:"total_user_ids"`
	ActiveUserIDs     []uint `json:"active_user_ids"`
	NoTaskUserIDs     []uint `json:"no_task_user_ids"`

	TotalTasks      int64 `json:"total_tasks"`
	TodoTasks       int64 `json:"todo_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	ReviewTasks     int64 `json:"review_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`

	TodoUserIDs       []uint `json:"todo_user_ids"`
	InProgressUserIDs []uint `json:"in_progress_user_ids"`
	ReviewUserIDs     []uint `json:"review_user_ids"`
	CompletedUserIDs  []uint `json:"completed_user_ids"`

	PendingLeaveRequests int64 `json:"pending_leave_requests"`
}

func (a *AdminService) Summary() (*AdminSummary, error) {
	users, err := a.Users.All()
	if err != nil {
		return nil, err
	}

	summary := &AdminSummary{}
	for i := range users {
		summary.TotalUsers++
		summary.TotalUserIDs = append(summary.TotalUserIDs, users[i].ID)
		if users[i].Active {
			summary.ActiveUsers++
			summary.ActiveUserIDs = append(summary.ActiveUserIDs, users[i].ID)
		}
		n, err := a.Tasks.CountByOwner(users[i].ID)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			summary.UsersWithoutTasks++
			summary.NoTaskUserIDs = append(summary.NoTaskUserIDs, users[i].ID)
		}
		summary.TotalTasks += n
	}

	counts := []struct {
		status constants.Status
		total  *int64
		ids    *[]uint
	}{
		{constants.StatusToDo, &summary.TodoTasks, &summary.TodoUserIDs},
		{constants.StatusInProgress, &summary.InProgressTasks, &summary.InProgressUserIDs},
		{constants.StatusReview, &summary.ReviewTasks, &summary.ReviewUserIDs},
		{constants.StatusCompleted, &summary.CompletedTasks, &summary.CompletedUserIDs},
	}
	for _, c := range counts {
		if *c.total, err = a.Tasks.CountByStatus(c.status); err != nil {
			return nil, err
		}
		if *c.ids, err = a.Tasks.OwnerIDsByStatus(c.status); err != nil {
			return nil, err
		}
	}

	if summary.PendingLeaveRequests, err = a.Leaves.CountByStatus(constants.LeavePending); err != nil {
		return nil, err
	}
	return summary, nil
}

// WorkLogView is a work log annotated with its task title for listings.
type WorkLogView struct {
	ID              uint      `json:"id"`
	TaskID          uint      `json:"task_id"`
	TaskTitle       string    `json:"task_title"`
	UserID          uint      `json:"user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int64     `json:"duration_minutes"`
	Comment         string    `json:"comment"`
}

func (a *AdminService) UserWorkLogs(userID uint) ([]WorkLogView, error) {
	logs, err := a.WorkLogs.ByUser(userID)
	if err != nil {
		return nil, err
	}
	return a.annotate(logs)
}

func (a *AdminService) AllWorkLogs() ([]WorkLogView, error) {
	logs, err := a.WorkLogs.All()
	if err != nil {
		return nil, err
	}
	return a.annotate(logs)
}

func (a *AdminService) annotate(logs []models.WorkLog) ([]WorkLogView, error) {
	titles := make(map[uint]string)
	views := make([]WorkLogView, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		title, ok := titles[l.TaskID]
		if !ok {
			if task, err := a.Tasks.Get(l.TaskID); err == nil {
				title = task.Title
			}
			titles[l.TaskID] = title
		}
		views = append(views, WorkLogView{
			ID:              l.ID,
			TaskID:          l.TaskID,
			TaskTitle:       title,
			UserID:          l.UserID,
			StartTime:       l.StartTime,
			EndTime:         l.EndTime,
			DurationMinutes: l.DurationMinutes,
			Comment:         l.Comment,
		})
	}
	return views, nil
}

func (a *AdminService) UserAuditLogs(userID uint) ([]models.LoginAudit, error) {
	return a.Audits.ByUser(userID)
}

func (a *AdminService) AllAuditLogs() ([]models.LoginAudit, error) {
	return a.Audits.All()
}
