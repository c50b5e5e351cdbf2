package models

import (
	"time"

	"github.com/diva1520/task-tracker/constants"
)

// Task is a unit of assigned work. It is mutated only through the task
// service; there is no delete path. Comment holds the most recent
// transition comment.
type Task struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Status             constants.Status `json:"status"`
	Comment            string           `json:"comment"`
	OwnerID            uint             `json:"owner_id"`
	AssignerID         *uint            `json:"assigner_id"`
	CreatedAt          time.Time        `gorm:"<-:create" json:"created_at"`
	DueDate            *time.Time       `json:"due_date"`
	CompletedAt        *time.Time       `json:"completed_at"`
	TotalWorkedMinutes int64            `gorm:"default:0" json:"total_worked_minutes"`
	CompletedOnTime    *bool            `json:"completed_on_time"`
	DelayMinutes       int64            `gorm:"default:0" json:"delay_minutes"`
}
