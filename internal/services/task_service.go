package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rambackend/user-tasks-api/internal/models"
	"github.com/rambackend/user-tasks-api/internal/repository"
)

var (
	ErrInvalidTaskStatus   = errors.New("status must be one of Pending, In Progress, Completed")
	ErrInvalidTaskAssignee = errors.New("one or more assigned users do not exist")
	ErrNoUserIDsProvided   = errors.New("at least one user ID is required")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents validated input for creating a task.
type CreateTaskInput struct {
	Name          string
	Description   string
	TaskType      string
	Status        models.TaskStatus
	AssignedUsers []uint64
}

// CreateTask persists a task. Status defaults to Pending; initial assignees
// are optional and validated against existing users.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	userIDs := uniqueUint64(input.AssignedUsers)
	if len(userIDs) > 0 {
		if err := s.verifyUsersExist(userIDs); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		TaskType:    input.TaskType,
		Status:      status,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(userIDs) > 0 {
		if err := s.taskRepo.AssignUsers(task.ID, userIDs); err != nil {
			return nil, fmt.Errorf("failed to assign users to new task: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, "AssignedUsers")
}

// ListTasks returns one page of tasks ordered by the given column. Pages past
// the end of the result set come back empty.
func (s *TaskService) ListTasks(page, pageSize int, orderBy string) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		OrderBy:  orderBy,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// RetrieveTask returns the task or a nil sentinel when the id is unknown.
// A missing task is not an error.
func (s *TaskService) RetrieveTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// AssignUsers adds the given users to the task's assigned set with union
// semantics and returns the task with the refreshed assignment list.
func (s *TaskService) AssignUsers(task *models.Task, userIDs []uint64) (*models.Task, error) {
	if len(userIDs) == 0 {
		return nil, ErrNoUserIDsProvided
	}

	uniqueIDs := uniqueUint64(userIDs)
	if err := s.verifyUsersExist(uniqueIDs); err != nil {
		return nil, err
	}

	if err := s.taskRepo.AssignUsers(task.ID, uniqueIDs); err != nil {
		return nil, fmt.Errorf("failed to assign users: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "AssignedUsers")
}

func (s *TaskService) verifyUsersExist(userIDs []uint64) error {
	count, err := s.taskRepo.CountUsersByIDs(userIDs)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(userIDs) {
		return ErrInvalidTaskAssignee
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
