package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

type DetailStore struct {
	db *gorm.DB
}

func (s *DetailStore) Create(d *models.TaskDetail) error {
	return s.db.Create(d).Error
}

func (s *DetailStore) Save(d *models.TaskDetail) error {
	return s.db.Save(d).Error
}

func (s *DetailStore) LatestOpen(taskID uint) (*models.TaskDetail, error) {
	var detail models.TaskDetail
	err := s.db.Where("task_id = ? AND ended_at IS NULL", taskID).
		Order("started_at DESC").First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *DetailStore) ByTask(taskID uint) ([]models.TaskDetail, error) {
	var details []models.TaskDetail
	err := s.db.Where("task_id = ?", taskID).Order("started_at").Find(&details).Error
	return details, err
}

func (s *DetailStore) HasStatus(taskID uint, status constants.Status) (bool, error) {
	var n int64
	err := s.db.Model(&models.TaskDetail{}).
		Where("task_id = ? AND status = ?", taskID, status).Count(&n).Error
	return n > 0, err
}
