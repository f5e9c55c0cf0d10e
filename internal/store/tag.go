package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/grindboard-api/internal/domain"
)

// TagStore defines the interface for tag and task-tag link persistence.
//
// Link methods take bare ids and perform no ownership checks; callers verify
// that both the task and the tag belong to the acting user first.
type TagStore interface {
	// Create inserts the tag and populates tag.ID.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag owned by userID.
	// Returns ErrTagNotFound if the tag does not exist or is owned by someone else.
	GetByID(ctx context.Context, userID, tagID int64) (*domain.Tag, error)

	// FindByName returns the user's tag with exactly this name, skipping the tag
	// with id excludeID (pass 0 to skip nothing). Returns ErrTagNotFound if none.
	FindByName(ctx context.Context, userID int64, name string, excludeID int64) (*domain.Tag, error)

	// ListByUser returns the user's tags ordered by name, then id.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Tag, error)

	// ListForTask returns the tags linked to one task, ordered by name.
	ListForTask(ctx context.Context, taskID int64) ([]domain.Tag, error)

	// ListForUserTasks returns the tags of every task of the user, keyed by task id.
	ListForUserTasks(ctx context.Context, userID int64) (map[int64][]domain.Tag, error)

	// Rename sets the tag's name.
	// Returns ErrTagNotFound if no owned row was updated.
	Rename(ctx context.Context, userID, tagID int64, name string) error

	// Delete removes the tag.
	// Returns ErrTagNotFound if no owned row was deleted.
	Delete(ctx context.Context, userID, tagID int64) error

	// AddLink links a task and a tag. An existing link is left as is.
	AddLink(ctx context.Context, taskID, tagID int64) error

	// RemoveLink unlinks a task and a tag. A missing link is not an error.
	RemoveLink(ctx context.Context, taskID, tagID int64) error

	// LinkedTaskIDs returns the ids of the tasks linked to the tag.
	LinkedTaskIDs(ctx context.Context, tagID int64) ([]int64, error)

	// DeleteLinksForTag removes every link of the tag.
	DeleteLinksForTag(ctx context.Context, tagID int64) error

	// DeleteLinksForTask removes every link of the task.
	DeleteLinksForTask(ctx context.Context, taskID int64) error

	// WithTx returns a new TagStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TagStore
}
