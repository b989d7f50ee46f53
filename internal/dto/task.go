package dto

import (
	"time"

	"github.com/rambackend/user-tasks-api/internal/models"
)

// CreateTaskRequest is the payload accepted by POST /task/.
type CreateTaskRequest struct {
	Name          string            `json:"name" binding:"required"`
	Description   string            `json:"description" binding:"required"`
	TaskType      string            `json:"task_type"`
	Status        models.TaskStatus `json:"status"`
	AssignedUsers []uint64          `json:"assigned_users"`
}

// AssignUsersRequest is the payload accepted by PATCH /task/:task_id/assign/.
type AssignUsersRequest struct {
	AssignedUsers []uint64 `json:"assigned_users" binding:"required"`
}

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	TaskType      string            `json:"task_type"`
	Status        models.TaskStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	CompletedAt   *time.Time        `json:"completed_at"`
	AssignedUsers []uint64          `json:"assigned_users"`
}

// TaskAssignDTO is the trimmed response of the assignment endpoint.
type TaskAssignDTO struct {
	AssignedUsers []uint64 `json:"assigned_users"`
	Name          string   `json:"name"`
}

// UserTaskDTO is the minimal task shape embedded in the user-tasks response.
type UserTaskDTO struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	TaskType    string            `json:"task_type"`
	Status      models.TaskStatus `json:"status"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		Name:          task.Name,
		Description:   task.Description,
		TaskType:      task.TaskType,
		Status:        task.Status,
		CreatedAt:     task.CreatedAt,
		CompletedAt:   task.CompletedAt,
		AssignedUsers: assignedUserIDs(task),
	}
}

// ToTaskDTOs converts a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskAssignDTO shapes the assignment endpoint response.
func ToTaskAssignDTO(task models.Task) TaskAssignDTO {
	return TaskAssignDTO{
		AssignedUsers: assignedUserIDs(task),
		Name:          task.Name,
	}
}

// ToUserTaskDTO converts a Task model to the minimal user-tasks shape.
func ToUserTaskDTO(task models.Task) UserTaskDTO {
	return UserTaskDTO{
		Name:        task.Name,
		Description: task.Description,
		TaskType:    task.TaskType,
		Status:      task.Status,
	}
}

func assignedUserIDs(task models.Task) []uint64 {
	ids := make([]uint64, len(task.AssignedUsers))
	for i, user := range task.AssignedUsers {
		ids[i] = user.ID
	}
	return ids
}
