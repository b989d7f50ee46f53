package models

import (
	"time"
)

// TaskAssignment is the join model behind the task/user many-to-many relation.
// It is registered with SetupJoinTable so assignment inserts can go through
// the model directly with conflict handling.
type TaskAssignment struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
