package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Task field bounds.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 10000
)

// Common validation errors for Task
var (
	ErrEmptyTaskUserID    = validationErr("task user ID cannot be empty")
	ErrEmptyTitle         = validationErr("task title cannot be empty")
	ErrTitleTooLong       = validationErr("task title must be at most 255 characters long")
	ErrDescriptionTooLong = validationErr("task description must be at most 10000 characters long")
)

// Task is a single to-do item owned by one user.
//
// Position orders a user's tasks ascending. It is only comparable with the
// positions of tasks owned by the same user.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Position    float64   `json:"position"`
	Completed   bool      `json:"completed"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new incomplete Task at the given position.
// The title is trimmed before validation.
func NewTask(userID int64, title, description string, position float64) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTaskUserID
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch sets no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Apply merges the set fields of the patch into t and reports whether any
// value changed. The title is trimmed the same way NewTask trims it.
func (p TaskPatch) Apply(t *Task) bool {
	changed := false

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title != t.Title {
			t.Title = title
			changed = true
		}
	}
	if p.Description != nil && *p.Description != t.Description {
		t.Description = *p.Description
		changed = true
	}
	if p.Completed != nil && *p.Completed != t.Completed {
		t.Completed = *p.Completed
		changed = true
	}

	if changed {
		t.UpdatedAt = time.Now().UTC()
	}
	return changed
}
