package dto

import (
	"time"

	"github.com/rambackend/user-tasks-api/internal/models"
)

// CreateUserRequest is the payload accepted by POST /user/.
// Username is derived server-side and password is write-only.
type CreateUserRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email" binding:"required"`
	Mobile    *string `json:"mobile"`
	Password  string  `json:"password"`
}

// UserDTO represents a user in API responses. It never carries the password.
type UserDTO struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Mobile     *string   `json:"mobile"`
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

// UserTasksResponse is the structured payload for GET /user/:user_id/tasks/.
type UserTasksResponse struct {
	Email string        `json:"email"`
	Name  string        `json:"name"`
	Tasks []UserTaskDTO `json:"tasks"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Mobile:     user.Mobile,
		IsActive:   user.IsActive,
		DateJoined: user.DateJoined,
	}
}

// ToUserTasksResponse shapes a user and their assigned tasks.
func ToUserTasksResponse(user models.User) UserTasksResponse {
	tasks := make([]UserTaskDTO, len(user.Tasks))
	for i, task := range user.Tasks {
		tasks[i] = ToUserTaskDTO(task)
	}
	return UserTasksResponse{
		Email: user.Email,
		Name:  user.DisplayName(),
		Tasks: tasks,
	}
}
