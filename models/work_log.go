package models

import "time"

// WorkLog is a recorded interval of work against a task. Never mutated
// after creation; DurationMinutes is derived from the interval and cached.
type WorkLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TaskID          uint      `gorm:"index" json:"task_id"`
	UserID          uint      `gorm:"index" json:"user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int64     `json:"duration_minutes"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}
