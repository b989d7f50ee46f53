package repository

import (
	"github.com/rambackend/user-tasks-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByIDWithTasks finds a user by ID with their assigned tasks preloaded
func (r *GormUserRepository) FindByIDWithTasks(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Tasks").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListEmails returns every registered user's email address
func (r *GormUserRepository) ListEmails() ([]string, error) {
	var emails []string
	if err := r.db.Model(&models.User{}).Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}
