package store

import (
	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

type LoginAuditStore struct {
	db *gorm.DB
}

func (s *LoginAuditStore) Create(a *models.LoginAudit) error {
	return s.db.Create(a).Error
}

func (s *LoginAuditStore) Save(a *models.LoginAudit) error {
	return s.db.Save(a).Error
}

func (s *LoginAuditStore) ActiveSessions(userID uint) ([]models.LoginAudit, error) {
	var audits []models.LoginAudit
	err := s.db.Where("user_id = ? AND status = ?", userID, constants.SessionActive).
		Order("login_time DESC").Find(&audits).Error
	return audits, err
}

func (s *LoginAuditStore) ByUser(userID uint) ([]models.LoginAudit, error) {
	var audits []models.LoginAudit
	err := s.db.Where("user_id = ?", userID).Order("login_time DESC").Find(&audits).Error
	return audits, err
}

func (s *LoginAuditStore) All() ([]models.LoginAudit, error) {
	var audits []models.LoginAudit
	err := s.db.Order("login_time DESC").Find(&audits).Error
	return audits, err
}
