package models

import (
	"strings"
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	Mobile       *string   `gorm:"type:varchar(15);uniqueIndex" json:"mobile"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	DateJoined   time.Time `gorm:"not null" json:"date_joined"`

	// Relations
	Tasks []Task `gorm:"many2many:task_assignments" json:"tasks,omitempty"`
}

// FullName returns "First Last" trimmed, or empty when both parts are missing.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// DisplayName is the full name with a fallback to the first name.
func (u *User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.FirstName
}
