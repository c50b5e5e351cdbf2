package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/models"
)

type WorkLogStore struct {
	db *gorm.DB
}

func (s *WorkLogStore) Create(l *models.WorkLog) error {
	return s.db.Create(l).Error
}

func (s *WorkLogStore) ByTask(taskID uint) ([]models.WorkLog, error) {
	var logs []models.WorkLog
	err := s.db.Where("task_id = ?", taskID).Order("start_time").Find(&logs).Error
	return logs, err
}

func (s *WorkLogStore) ByUser(userID uint) ([]models.WorkLog, error) {
	var logs []models.WorkLog
	err := s.db.Where("user_id = ?", userID).Order("start_time").Find(&logs).Error
	return logs, err
}

func (s *WorkLogStore) ByUserBetween(userID uint, from, to time.Time) ([]models.WorkLog, error) {
	var logs []models.WorkLog
	err := s.db.Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time").Find(&logs).Error
	return logs, err
}

func (s *WorkLogStore) All() ([]models.WorkLog, error) {
	var logs []models.WorkLog
	err := s.db.Order("start_time DESC").Find(&logs).Error
	return logs, err
}
