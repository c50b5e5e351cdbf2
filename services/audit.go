package services

import (
	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

// SessionService keeps the login audit trail. Every login closes stale
// active sessions first, so a user has at most one ACTIVE row.
type SessionService struct {
	Audits LoginAuditStore
	Clock  Clock
}

func (s *SessionService) RecordLogin(user *models.User, ip, userAgent string) error {
	now := s.Clock()

	active, err := s.Audits.ActiveSessions(user.ID)
	if err != nil {
		return err
	}
	for i := range active {
		a := &active[i]
		logout := now
		a.LogoutTime = &logout
		a.Status = constants.SessionLogout
		if !a.LoginTime.IsZero() {
			a.SessionDurationMinutes = int64(logout.Sub(a.LoginTime).Minutes())
		}
		if err := s.Audits.Save(a); err != nil {
			return err
		}
	}

	return s.Audits.Create(&models.LoginAudit{
		UserID:    user.ID,
		Username:  user.Username,
		LoginTime: now,
		IPAddress: ip,
		UserAgent: userAgent,
		Status:    constants.SessionActive,
	})
}

func (s *SessionService) RecordLogout(userID uint) error {
	active, err := s.Audits.ActiveSessions(userID)
	if err != nil || len(active) == 0 {
		return err
	}

	a := &active[0]
	logout := s.Clock()
	a.LogoutTime = &logout
	a.Status = constants.SessionLogout
	if !a.LoginTime.IsZero() {
		a.SessionDurationMinutes = int64(logout.Sub(a.LoginTime).Minutes())
	}
	return s.Audits.Save(a)
}
