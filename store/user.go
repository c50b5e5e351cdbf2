package store

import (
	"gorm.io/gorm"

	"github.com/diva1520/task-tracker/constants"
	"github.com/diva1520/task-tracker/models"
)

type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) ByRole(role constants.Role) ([]models.User, error) {
	var users []models.User
	err := s.db.Where("role = ?", role).Find(&users).Error
	return users, err
}

func (s *UserStore) All() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id").Find(&users).Error
	return users, err
}

func (s *UserStore) Create(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *UserStore) Save(u *models.User) error {
	return s.db.Save(u).Error
}
