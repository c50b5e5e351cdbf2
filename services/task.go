package services

import (
	"strings"
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// Create adds a task the actor assigns to themselves. New tasks always
// start in TO_DO.
func (s *TaskService) Create(actorID uint, title, description string, due *time.Time) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, Validationf("title is required")
	}
	if _, err := s.getUser(actorID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		Status:      constants.StatusToDo,
		OwnerID:     actorID,
		CreatedAt:   s.Clock(),
		DueDate:     due,
	}
	if err := s.Tasks.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Assign creates a task on behalf of a supervisor for another user and
// records the supervisor as the assigner.
func (s *TaskService) Assign(supervisorID, ownerID uint, title, description string, due *time.Time) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, Validationf("title is required")
	}
	owner, err := s.getUser(ownerID)
	if err != nil {
		return nil, err
	}

	assigner := supervisorID
	task := &models.Task{
		Title:       title,
		Description: description,
		Status:      constants.StatusToDo,
		OwnerID:     owner.ID,
		AssignerID:  &assigner,
		CreatedAt:   s.Clock(),
		DueDate:     due,
	}
	if err := s.Tasks.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// EditRequest is a partial update. Nil fields are left untouched. A
// status different from the current one runs the state machine; the same
// status keeps field edits and changes nothing else.
type EditRequest struct {
	TaskID      uint
	ActorID     uint
	Role        constants.Role
	Title       *string
	Description *string
	Comment     *string
	Status      constants.Status
	NewOwnerID  *uint
}

func (s *TaskService) Edit(req EditRequest) (*models.Task, error) {
	mu := s.locks.lock(req.TaskID)
	defer mu.Unlock()

	task, err := s.getTask(req.TaskID)
	if err != nil {
		return nil, err
	}

	// Workers may only edit their own tasks; supervisors are exempt.
	if req.Role == constants.RoleWorker && task.OwnerID != req.ActorID {
		return nil, Authorizationf("you are not allowed to edit this task")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Comment != nil {
		task.Comment = *req.Comment
	}

	if req.Status != "" && req.Status != task.Status {
		comment := ""
		if req.Comment != nil {
			comment = *req.Comment
		}
		return s.transition(task, ChangeStatusRequest{
			TaskID:     task.ID,
			ActorID:    req.ActorID,
			Role:       req.Role,
			Status:     req.Status,
			Comment:    comment,
			NewOwnerID: req.NewOwnerID,
		})
	}

	if err := s.Tasks.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns one task by id.
func (s *TaskService) Get(id uint) (*models.Task, error) {
	return s.getTask(id)
}

// ListOwn returns the tasks assigned to a user.
func (s *TaskService) ListOwn(userID uint) ([]models.Task, error) {
	return s.Tasks.ByOwner(userID)
}

// ListAll returns every task.
func (s *TaskService) ListAll() ([]models.Task, error) {
	return s.Tasks.All()
}

// ListBetween returns tasks created in [from, to], optionally restricted
// to a set of owners.
func (s *TaskService) ListBetween(from, to time.Time, ownerIDs []uint) ([]models.Task, error) {
	if to.Before(from) {
		return nil, Validationf("fromDate must be before toDate")
	}
	return s.Tasks.CreatedBetween(from, to, ownerIDs)
}

// UserTaskStats is a per-user status breakdown.
type UserTaskStats struct {
	UserID          uint             `json:"user_id"`
	Username        string           `json:"username"`
	TotalTasks      int64            `json:"total_tasks"`
	PendingTasks    int64            `json:"pending_tasks"`
	CompletedTasks  int64            `json:"completed_tasks"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
}

func (s *TaskService) Stats(userID uint) (*UserTaskStats, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	stats := &UserTaskStats{
		UserID:          user.ID,
		Username:        user.Username,
		StatusBreakdown: make(map[string]int64),
	}
	if stats.TotalTasks, err = s.Tasks.CountByOwner(userID); err != nil {
		return nil, err
	}
	for _, status := range []constants.Status{
		constants.StatusToDo, constants.StatusInProgress,
		constants.StatusReview, constants.StatusCompleted,
	} {
		n, err := s.Tasks.CountByOwnerAndStatus(userID, status)
		if err != nil {
			return nil, err
		}
		stats.StatusBreakdown[string(status)] = n
		if status == constants.StatusCompleted {
			stats.CompletedTasks = n
		} else {
			stats.PendingTasks += n
		}
	}
	return stats, nil
}
