package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// UserStore implements store.UserStore.
type UserStore struct {
	base
}

// NewUserStore creates a UserStore on a connection pool or transaction.
// It panics if db or dialect is nil. A nil logger falls back to slog.Default().
func NewUserStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *UserStore {
	return &UserStore{base: newBase(db, dialect, logger, "user_store")}
}

var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{base: s.withTx(tx)}
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", store.ErrInvalidEntity)
	}

	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO users (username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`),
		user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		err = s.dialect.MapError(err)
		if errors.Is(err, store.ErrDuplicate) {
			log.Debug("username already taken", slog.String("username", user.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to create user", slog.String("username", user.Username), slog.Any("error", err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Debug("user created", slog.Int64("user_id", user.ID))
	return nil
}

const userColumns = `id, username, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		s.q(`SELECT `+userColumns+` FROM users WHERE id = ?`), id))
	if err != nil {
		return nil, s.lookupError(ctx, err, slog.Int64("user_id", id))
	}
	return user, nil
}

// GetByUsername implements store.UserStore.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		s.q(`SELECT `+userColumns+` FROM users WHERE username = ?`), domain.NormalizeUsername(username)))
	if err != nil {
		return nil, s.lookupError(ctx, err, slog.String("username", username))
	}
	return user, nil
}

func (s *UserStore) lookupError(ctx context.Context, err error, attr slog.Attr) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrUserNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user", attr, slog.Any("error", err))
	return fmt.Errorf("failed to get user: %w", s.dialect.MapError(err))
}

// Delete implements store.UserStore.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.q(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete user",
			slog.Int64("user_id", id), slog.Any("error", err))
		return fmt.Errorf("failed to delete user: %w", s.dialect.MapError(err))
	}
	return checkRowsAffected(result, store.ErrUserNotFound)
}
