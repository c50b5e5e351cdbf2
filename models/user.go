package models

import (
	"time"

	"github.com/diva1520/task-tracker/constants"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:191" json:"username"`
	Email     string         `json:"email"`
	Password  string         `json:"password,omitempty"`
	Role      constants.Role `json:"role"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
}
