package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rambackend/user-tasks-api/internal/constants"
	"github.com/rambackend/user-tasks-api/internal/events"
	"github.com/rambackend/user-tasks-api/internal/models"
	"github.com/rambackend/user-tasks-api/internal/repository"
	"github.com/rambackend/user-tasks-api/internal/utils"
)

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrFirstNameRequired    = errors.New("first_name is required")
	ErrUserAlreadyExists    = errors.New("user with this email, username or mobile already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService handles user creation and lookups.
type UserService struct {
	userRepo repository.UserRepository
	bus      *events.Bus
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, bus *events.Bus) *UserService {
	return &UserService{
		userRepo: userRepo,
		bus:      bus,
	}
}

// CreateUserInput represents validated input for creating a user. Password is
// optional; a secure random one is generated when absent.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    *string
	Password  string
}

// CreateUser normalizes the email, derives a unique username, hashes the
// password and persists the user. A UserCreated event is published after the
// row exists; subscribers cannot affect the outcome.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, ErrFirstNameRequired
	}

	password := input.Password
	if password == "" {
		generated, err := utils.GenerateSecurePassword(constants.GeneratedPasswordLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		password = generated
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	var mobile *string
	if input.Mobile != nil {
		if m := strings.TrimSpace(*input.Mobile); m != "" {
			mobile = &m
		}
	}

	now := time.Now()
	user := &models.User{
		Username:     utils.DeriveUsername(email, now),
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Mobile:       mobile,
		IsActive:     true,
		DateJoined:   now,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.bus.Publish(ctx, events.UserCreated{
		Email:    user.Email,
		Username: user.Username,
	})

	return user, nil
}

// GetUserTasks fetches a user and all tasks assigned to them in one read.
// A missing user is reported through ErrUserNotFound.
func (s *UserService) GetUserTasks(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithTasks(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
