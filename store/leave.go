package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

type LeaveStore struct {
	db *gorm.DB
}

func (s *LeaveStore) Get(id uint) (*models.LeaveRequest, error) {
	var leave models.LeaveRequest
	if err := s.db.First(&leave, id).Error; err != nil {
		return nil, translate(err)
	}
	return &leave, nil
}

func (s *LeaveStore) Create(l *models.LeaveRequest) error {
	return s.db.Create(l).Error
}

func (s *LeaveStore) Save(l *models.LeaveRequest) error {
	return s.db.Save(l).Error
}

func (s *LeaveStore) ByUser(userID uint) ([]models.LeaveRequest, error) {
	var leaves []models.LeaveRequest
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (s *LeaveStore) ByStatus(status string) ([]models.LeaveRequest, error) {
	var leaves []models.LeaveRequest
	err := s.db.Where("status = ?", status).Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (s *LeaveStore) Decided() ([]models.LeaveRequest, error) {
	var leaves []models.LeaveRequest
	err := s.db.Where("status <> ?", constants.LeavePending).
		Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}

func (s *LeaveStore) Overlapping(userID uint, from, to time.Time) (bool, error) {
	var n int64
	err := s.db.Model(&models.LeaveRequest{}).
		Where("user_id = ? AND from_date <= ? AND to_date >= ?", userID, to, from).
		Count(&n).Error
	return n > 0, err
}

func (s *LeaveStore) ApprovedInYear(userID uint, year int) ([]models.LeaveRequest, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var leaves []models.LeaveRequest
	err := s.db.Where("user_id = ? AND status = ? AND from_date >= ? AND from_date < ?",
		userID, constants.LeaveApproved, start, end).Find(&leaves).Error
	return leaves, err
}

func (s *LeaveStore) CountByStatus(status string) (int64, error) {
	var n int64
	err := s.db.Model(&models.LeaveRequest{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
