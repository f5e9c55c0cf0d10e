package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/grindboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every method that takes a userID only sees that user's tasks.
type TaskStore interface {
	// Create inserts the task and populates task.ID.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task owned by userID. Tags are not loaded.
	// Returns ErrTaskNotFound if the task does not exist or is owned by someone else.
	GetByID(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// ListByUser returns the user's tasks ordered by position, then id.
	// Tags are not loaded.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// MaxPosition returns the highest position among the user's tasks.
	// ok is false when the user has no tasks.
	MaxPosition(ctx context.Context, userID int64) (maxPos float64, ok bool, err error)

	// Update writes title, description, completed and updated_at.
	// Returns ErrTaskNotFound if no owned row was updated.
	Update(ctx context.Context, task *domain.Task) error

	// UpdatePosition writes only the position of one task.
	// Returns ErrTaskNotFound if no owned row was updated.
	UpdatePosition(ctx context.Context, userID, taskID int64, position float64) error

	// Delete removes the task. Its tag links go with it.
	// Returns ErrTaskNotFound if no owned row was deleted.
	Delete(ctx context.Context, userID, taskID int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
