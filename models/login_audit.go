package models

import "time"

// LoginAudit records one login session. Status is ACTIVE until logout (or
// until the next login closes it).
type LoginAudit struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	UserID                 uint       `gorm:"index" json:"user_id"`
	Username               string     `json:"username"`
	LoginTime              time.Time  `json:"login_time"`
	LogoutTime             *time.Time `json:"logout_time"`
	SessionDurationMinutes int64      `json:"session_duration_minutes"`
	IPAddress              string     `json:"ip_address"`
	UserAgent              string     `json:"user_agent"`
	Status                 string     `json:"status"`
}
