package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

type TaskStore struct {
	db *gorm.DB
}

func (s *TaskStore) Get(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (s *TaskStore) Create(t *models.Task) error {
	return s.db.Create(t).Error
}

func (s *TaskStore) Save(t *models.Task) error {
	return s.db.Save(t).Error
}

func (s *TaskStore) ByOwner(ownerID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("owner_id = ?", ownerID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *TaskStore) All() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *TaskStore) CreatedBetween(from, to time.Time, ownerIDs []uint) ([]models.Task, error) {
	var tasks []models.Task
	q := s.db.Where("created_at BETWEEN ? AND ?", from, to)
	if len(ownerIDs) > 0 {
		q = q.Where("owner_id IN ?", ownerIDs)
	}
	err := q.Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (s *TaskStore) CountByOwner(ownerID uint) (int64, error) {
	var n int64
	err := s.db.Model(&models.Task{}).Where("owner_id = ?", ownerID).Count(&n).Error
	return n, err
}

func (s *TaskStore) CountByOwnerAndStatus(ownerID uint, status constants.Status) (int64, error) {
	var n int64
	err := s.db.Model(&models.Task{}).
		Where("owner_id = ? AND status = ?", ownerID, status).Count(&n).Error
	return n, err
}

func (s *TaskStore) CountByStatus(status constants.Status) (int64, error) {
	var n int64
	err := s.db.Model(&models.Task{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *TaskStore) OwnerIDsByStatus(status constants.Status) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Task{}).
		Where("status = ?", status).Distinct().Pluck("owner_id", &ids).Error
	return ids, err
}
