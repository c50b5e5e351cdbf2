package models

import "time"

// LeaveRequest is a leave-day booking. Status moves PENDING -> APPROVED or
// REJECTED; a user's requests may not overlap.
type LeaveRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	FromDate  time.Time `json:"from_date"`
	ToDate    time.Time `json:"to_date"`
	LeaveType string    `json:"leave_type"` // CASUAL, SICK
	Reason    string    `json:"reason"`
	Status    string    `gorm:"default:'PENDING'" json:"status"`
	HalfDay   bool      `gorm:"default:false" json:"half_day"`
	CreatedAt time.Time `json:"created_at"`
}

// Days is the number of leave days the request occupies, inclusive of both
// ends. A half-day request always counts 0.5.
func (l *LeaveRequest) Days() float64 {
	if l.FromDate.IsZero() || l.ToDate.IsZero() {
		return 0
	}
	if l.HalfDay {
		return 0.5
	}
	return float64(l.ToDate.Sub(l.FromDate)/(24*time.Hour)) + 1
}
