package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/grindboard-api/internal/domain"
)

// TokenStore persists opaque bearer tokens.
type TokenStore interface {
	// Create inserts the token and populates token.ID.
	Create(ctx context.Context, token *domain.AuthToken) error

	// GetByToken looks a token up by its value.
	// Returns ErrTokenNotFound if it does not exist.
	GetByToken(ctx context.Context, value string) (*domain.AuthToken, error)

	// DeleteExpired removes the user's tokens that expired at or before now.
	DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error)

	// DeleteAllForUser removes every token of the user.
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)

	// KeepNewest removes all but the keep most recently issued tokens of the user.
	KeepNewest(ctx context.Context, userID int64, keep int) (int64, error)

	// Delete removes a token by value. A missing token is not an error.
	Delete(ctx context.Context, value string) error

	// WithTx returns a new TokenStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TokenStore
}
