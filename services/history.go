package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// History event types.
const (
	EventCreated      = "CREATED"
	EventStatusChange = "STATUS_CHANGE"
	EventReassign     = "REASSIGN"
	EventWorkLog      = "WORK_LOG"
	EventCompleted    = "COMPLETED"
)

// HistoryEvent is one row of a task's reconstructed narrative.
type HistoryEvent struct {
	EventType   string    `json:"event_type"`
	Username    string    `json:"username"`
	Timestamp   time.Time `json:"timestamp"`
	Comment     string    `json:"comment,omitempty"`
	Metadata    string    `json:"metadata,omitempty"`
	StatusLabel string    `json:"status_label,omitempty"`
}

// Ties at identical timestamps order by lifecycle rank so the descending
// list always shows completion above creation within one instant.
var eventRank = map[string]int{
	EventCreated:      0,
	EventReassign:     1,
	EventStatusChange: 2,
	EventWorkLog:      3,
	EventCompleted:    4,
}

// BuildHistory merges the task's creation, journal entry boundaries, work
// logs and completion into one list, newest first. Recomputed fresh per
// call; nothing is cached.
func (s *TaskService) BuildHistory(taskID uint) ([]HistoryEvent, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}

	ownerName := s.usernameOf(task.OwnerID, "User")
	assignerName := "System"
	if task.AssignerID != nil {
		assignerName = s.usernameOf(*task.AssignerID, "Supervisor")
	}

	history := []HistoryEvent{{
		EventType: EventCreated,
		Username:  assignerName,
		Timestamp: task.CreatedAt,
		Comment:   task.Description,
		Metadata:  "Task Created",
	}}

	details, err := s.Details.ByTask(taskID)
	if err != nil {
		return nil, err
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].StartedAt.Before(details[j].StartedAt)
	})

	for i := range details {
		d := &details[i]

		open := HistoryEvent{
			EventType: EventStatusChange,
			Username:  ownerName,
			Timestamp: d.StartedAt,
		}
		if d.Status == constants.StatusReassign {
			open.EventType = EventReassign
			open.Username = assignerName
			open.Metadata = "Reassigned to " + ownerName
			open.Comment = d.Comment
		} else {
			open.Metadata = "Moved to " + string(d.Status)
			if d.Open() {
				open.Comment = d.Comment
			}
		}
		history = append(history, open)

		if d.EndedAt != nil {
			closeEvent := HistoryEvent{
				EventType: EventStatusChange,
				Username:  ownerName,
				Timestamp: *d.EndedAt,
				Comment:   d.Comment,
			}
			if d.Status == constants.StatusInProgress {
				closeEvent.Metadata = "Submitted for Review"
			} else {
				closeEvent.Metadata = "Ended " + string(d.Status)
			}
			history = append(history, closeEvent)
		}
	}

	logs, err := s.WorkLogs.ByTask(taskID)
	if err != nil {
		return nil, err
	}
	for i := range logs {
		l := &logs[i]
		history = append(history, HistoryEvent{
			EventType:   EventWorkLog,
			Username:    s.usernameOf(l.UserID, "User"),
			Timestamp:   l.StartTime,
			Comment:     l.Comment,
			Metadata:    "Logged " + formatDuration(l.DurationMinutes),
			StatusLabel: statusLabelAt(details, l.StartTime),
		})
	}

	if task.Status == constants.StatusCompleted && task.CompletedAt != nil {
		history = append(history, HistoryEvent{
			EventType: EventCompleted,
			Username:  assignerName,
			Timestamp: *task.CompletedAt,
			Metadata:  "Task Completed",
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		if !history[i].Timestamp.Equal(history[j].Timestamp) {
			return history[i].Timestamp.After(history[j].Timestamp)
		}
		return eventRank[history[i].EventType] > eventRank[history[j].EventType]
	})

	return history, nil
}

// statusLabelAt derives the human status label a work log carried at its
// start: the last journal entry started at or before that moment decides.
// details must be sorted ascending by start time.
func statusLabelAt(details []models.TaskDetail, at time.Time) string {
	var active *models.TaskDetail
	for i := range details {
		if !details[i].StartedAt.After(at) {
			active = &details[i]
		}
	}
	if active == nil {
		return constants.LabelToDo
	}
	switch active.Status {
	case constants.StatusReassign:
		return constants.LabelReassigned
	case constants.StatusInProgress:
		if active.EndedAt != nil && active.EndedAt.Before(at) {
			return constants.LabelUnderReview
		}
		return constants.LabelInProgress
	default:
		return string(active.Status)
	}
}

func formatDuration(minutes int64) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (s *TaskService) usernameOf(id uint, fallback string) string {
	if user, err := s.Users.Get(id); err == nil {
		return user.Username
	}
	return fallback
}
