package services

import (
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// WorkLogRequest is one time entry against a task. Status, when set,
// requests a transition after the log is recorded.
type WorkLogRequest struct {
	TaskID    uint
	ActorID   uint
	Role      constants.Role
	StartTime time.Time
	EndTime   time.Time
	Comment   string
	Status    constants.Status
}

// LogWork validates and persists a work interval, rejects same-day
// overlaps for the actor, and accumulates the task's worked minutes. When
// the request also carries a status, the transition runs after the log is
// durably recorded; a rejected transition does not roll the log back, so
// the created log is returned alongside the transition error.
func (s *TaskService) LogWork(req WorkLogRequest) (*models.WorkLog, error) {
	mu := s.locks.lock(req.TaskID)
	defer mu.Unlock()

	task, err := s.getTask(req.TaskID)
	if err != nil {
		return nil, err
	}
	actor, err := s.getUser(req.ActorID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != actor.ID {
		return nil, Authorizationf("you can only log work for your own tasks")
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, Validationf("start time and end time are required")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, Validationf("end time must be after start time")
	}

	// Overlap check against the actor's entries on the same calendar day
	// as the new entry's start.
	dayStart := startOfDay(req.StartTime)
	dayEnd := dayStart.Add(24 * time.Hour)
	existing, err := s.WorkLogs.ByUserBetween(actor.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].StartTime.Before(req.EndTime) && existing[i].EndTime.After(req.StartTime) {
			return nil, Conflictf("time overlap detected with existing log: %s - %s",
				existing[i].StartTime.Format("15:04"), existing[i].EndTime.Format("15:04"))
		}
	}

	minutes := int64(req.EndTime.Sub(req.StartTime) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}

	log := &models.WorkLog{
		TaskID:          task.ID,
		UserID:          actor.ID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: minutes,
		Comment:         req.Comment,
		CreatedAt:       s.Clock(),
	}
	if err := s.WorkLogs.Create(log); err != nil {
		return nil, err
	}

	// Accumulate, never overwrite.
	task.TotalWorkedMinutes += minutes
	if err := s.Tasks.Save(task); err != nil {
		return nil, err
	}

	if req.Status != "" && req.Status != task.Status {
		if _, err := s.transition(task, ChangeStatusRequest{
			TaskID:  task.ID,
			ActorID: actor.ID,
			Role:    actor.Role,
			Status:  req.Status,
			Comment: req.Comment,
		}); err != nil {
			return log, err
		}
	}

	return log, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
