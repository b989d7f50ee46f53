package repository

import (
	"github.com/rambackend/user-tasks-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByIDWithTasks finds a user and preloads their assigned tasks so the
	// lookup stays a fixed number of queries regardless of task count
	FindByIDWithTasks(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListEmails returns the email addresses of all registered users
	ListEmails() ([]string, error)
}

// TaskFilter holds listing options for tasks
type TaskFilter struct {
	OrderBy  string
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves a page of tasks ordered by the filter's column
	List(filter TaskFilter) ([]models.Task, error)

	// AssignUsers adds the given users to the task's assigned set. Re-assigning
	// an already assigned user is a no-op.
	AssignUsers(taskID uint64, userIDs []uint64) error

	// CountUsersByIDs counts how many of the given user IDs exist
	CountUsersByIDs(userIDs []uint64) (int64, error)
}
