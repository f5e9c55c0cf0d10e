package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// TokenStore implements store.TokenStore. Expiry is stored as unix seconds.
type TokenStore struct {
	base
}

// NewTokenStore creates a TokenStore on a connection pool or transaction.
// It panics if db or dialect is nil. A nil logger falls back to slog.Default().
func NewTokenStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *TokenStore {
	return &TokenStore{base: newBase(db, dialect, logger, "token_store")}
}

var _ store.TokenStore = (*TokenStore)(nil)

// WithTx implements store.TokenStore.
func (s *TokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return &TokenStore{base: s.withTx(tx)}
}

// Create implements store.TokenStore.
func (s *TokenStore) Create(ctx context.Context, token *domain.AuthToken) error {
	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO auth_tokens (user_id, token, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`),
		token.UserID, token.Token, token.ExpiresAt.Unix(), token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		err = s.dialect.MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create auth token",
			slog.Int64("user_id", token.UserID), slog.Any("error", err))
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return nil
}

// GetByToken implements store.TokenStore.
func (s *TokenStore) GetByToken(ctx context.Context, value string) (*domain.AuthToken, error) {
	var t domain.AuthToken
	var expiresAt int64
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, user_id, token, expires_at, created_at
		FROM auth_tokens WHERE token = ?`), value,
	).Scan(&t.ID, &t.UserID, &t.Token, &expiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get auth token: %w", s.dialect.MapError(err))
	}
	t.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	return &t, nil
}

// DeleteExpired implements store.TokenStore.
func (s *TokenStore) DeleteExpired(ctx context.Context, userID int64, now time.Time) (int64, error) {
	return s.deleteWhere(ctx, "expired",
		`DELETE FROM auth_tokens WHERE user_id = ? AND expires_at <= ?`, userID, now.Unix())
}

// DeleteAllForUser implements store.TokenStore.
func (s *TokenStore) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	return s.deleteWhere(ctx, "all",
		`DELETE FROM auth_tokens WHERE user_id = ?`, userID)
}

// KeepNewest implements store.TokenStore.
func (s *TokenStore) KeepNewest(ctx context.Context, userID int64, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	return s.deleteWhere(ctx, "oldest", `
		DELETE FROM auth_tokens
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM auth_tokens
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`, userID, userID, keep)
}

// Delete implements store.TokenStore.
func (s *TokenStore) Delete(ctx context.Context, value string) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM auth_tokens WHERE token = ?`), value); err != nil {
		return fmt.Errorf("failed to delete auth token: %w", s.dialect.MapError(err))
	}
	return nil
}

func (s *TokenStore) deleteWhere(ctx context.Context, kind, query string, args ...any) (int64, error) {
	result, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete auth tokens",
			slog.String("kind", kind), slog.Any("error", err))
		return 0, fmt.Errorf("failed to delete %s auth tokens: %w", kind, s.dialect.MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
