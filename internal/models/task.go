package models

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
)

var (
	ErrTitleRequired = errors.New("please provide a title")
	ErrTitleTooLong  = errors.New("title cannot be more than 100 characters")
	ErrDescTooLong   = errors.New("description cannot be more than 500 characters")
	ErrInvalidStatus = errors.New("invalid task status")
)

type Task struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Validate enforces the task field constraints. Status transitions are
// unconstrained: any status may follow any other.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrTitleRequired
	}
	if len(t.Title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if len(t.Description) > MaxDescriptionLen {
		return ErrDescTooLong
	}
	if !ValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	return nil
}
