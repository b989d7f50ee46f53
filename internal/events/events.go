package events

import (
	"github.com/rambackend/user-tasks-api/internal/dto"
)

// Kind identifies a domain event type on the bus.
type Kind string

const (
	KindUserCreated        Kind = "user.created"
	KindTaskCreated        Kind = "task.created"
	KindUserAssignedToTask Kind = "task.user_assigned"
)

// Event is implemented by every domain event payload.
type Event interface {
	Kind() Kind
}

// UserCreated fires after a user row has been persisted.
type UserCreated struct {
	Email    string
	Username string
}

func (UserCreated) Kind() Kind { return KindUserCreated }

// TaskCreated fires from the task creation path, for both outcomes. Task is
// nil when creation failed.
type TaskCreated struct {
	Task    *dto.TaskDTO
	Created bool
	Err     string
}

func (TaskCreated) Kind() Kind { return KindTaskCreated }

// UserAssignedToTask fires after users were added to a task's assigned set.
type UserAssignedToTask struct {
	TaskName string
	UserIDs  []uint64
}

func (UserAssignedToTask) Kind() Kind { return KindUserAssignedToTask }
