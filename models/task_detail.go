package models

import (
	"time"

	"github.com/diva1520/task-tracker/constants"
)

// TaskDetail is an append-only journal entry marking the open/close window
// of an IN_PROGRESS or REASSIGN period. EndedAt nil means the entry is
// still open; at most one entry per task may be open at a time.
type TaskDetail struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	TaskID    uint             `gorm:"index" json:"task_id"`
	Status    constants.Status `json:"status"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   *time.Time       `json:"ended_at"`
	Comment   string           `json:"comment"`
}

// Open reports whether the entry's window has not been closed yet.
func (d *TaskDetail) Open() bool {
	return d.EndedAt == nil
}
