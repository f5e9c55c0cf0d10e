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

// TagStore implements store.TagStore.
type TagStore struct {
	base
}

// NewTagStore creates a TagStore on a connection pool or transaction.
// It panics if db or dialect is nil. A nil logger falls back to slog.Default().
func NewTagStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *TagStore {
	return &TagStore{base: newBase(db, dialect, logger, "tag_store")}
}

var _ store.TagStore = (*TagStore)(nil)

// WithTx implements store.TagStore.
func (s *TagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &TagStore{base: s.withTx(tx)}
}

const tagColumns = `id, user_id, name, created_at`

func scanTag(row interface{ Scan(...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements store.TagStore.
func (s *TagStore) Create(ctx context.Context, tag *domain.Tag) error {
	if err := tag.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO tags (user_id, name, created_at) VALUES (?, ?, ?)
		RETURNING id`),
		tag.UserID, tag.Name, tag.CreatedAt,
	).Scan(&tag.ID)
	if err != nil {
		err = s.dialect.MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create tag",
			slog.Int64("user_id", tag.UserID), slog.Any("error", err))
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// GetByID implements store.TagStore.
func (s *TagStore) GetByID(ctx context.Context, userID, tagID int64) (*domain.Tag, error) {
	tag, err := scanTag(s.db.QueryRowContext(ctx,
		s.q(`SELECT `+tagColumns+` FROM tags WHERE id = ? AND user_id = ?`), tagID, userID))
	if err != nil {
		return nil, s.lookupError(ctx, err)
	}
	return tag, nil
}

// FindByName implements store.TagStore. When several tags share the name the
// oldest one wins.
func (s *TagStore) FindByName(ctx context.Context, userID int64, name string, excludeID int64) (*domain.Tag, error) {
	tag, err := scanTag(s.db.QueryRowContext(ctx, s.q(`
		SELECT `+tagColumns+` FROM tags
		WHERE user_id = ? AND name = ? AND id <> ?
		ORDER BY id ASC
		LIMIT 1`),
		userID, name, excludeID))
	if err != nil {
		return nil, s.lookupError(ctx, err)
	}
	return tag, nil
}

func (s *TagStore) lookupError(ctx context.Context, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTagNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("failed to get tag", slog.Any("error", err))
	return fmt.Errorf("failed to get tag: %w", s.dialect.MapError(err))
}

// ListByUser implements store.TagStore.
func (s *TagStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT `+tagColumns+` FROM tags WHERE user_id = ? ORDER BY name ASC, id ASC`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", s.dialect.MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

// ListForTask implements store.TagStore.
func (s *TagStore) ListForTask(ctx context.Context, taskID int64) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT t.id, t.user_id, t.name, t.created_at
		FROM tags t
		JOIN task_tags tt ON tt.tag_id = t.id
		WHERE tt.task_id = ?
		ORDER BY t.name ASC, t.id ASC`), taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task tags: %w", s.dialect.MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tags := make([]domain.Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return tags, nil
}

// ListForUserTasks implements store.TagStore. Tasks without tags have no key.
func (s *TagStore) ListForUserTasks(ctx context.Context, userID int64) (map[int64][]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT tt.task_id, t.id, t.user_id, t.name, t.created_at
		FROM task_tags tt
		JOIN tags t ON t.id = tt.tag_id
		JOIN tasks k ON k.id = tt.task_id
		WHERE k.user_id = ?
		ORDER BY t.name ASC, t.id ASC`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for tasks: %w", s.dialect.MapError(err))
	}
	defer func() { _ = rows.Close() }()

	byTask := make(map[int64][]domain.Tag)
	for rows.Next() {
		var taskID int64
		var t domain.Tag
		if err := rows.Scan(&taskID, &t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		byTask[taskID] = append(byTask[taskID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}
	return byTask, nil
}

// Rename implements store.TagStore.
func (s *TagStore) Rename(ctx context.Context, userID, tagID int64, name string) error {
	if err := domain.ValidateTagName(name); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		s.q(`UPDATE tags SET name = ? WHERE id = ? AND user_id = ?`), name, tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to rename tag: %w", s.dialect.MapError(err))
	}
	return checkRowsAffected(result, store.ErrTagNotFound)
}

// Delete implements store.TagStore.
func (s *TagStore) Delete(ctx context.Context, userID, tagID int64) error {
	result, err := s.db.ExecContext(ctx,
		s.q(`DELETE FROM tags WHERE id = ? AND user_id = ?`), tagID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", s.dialect.MapError(err))
	}
	return checkRowsAffected(result, store.ErrTagNotFound)
}

// AddLink implements store.TagStore.
func (s *TagStore) AddLink(ctx context.Context, taskID, tagID int64) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO task_tags (task_id, tag_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING`), taskID, tagID)
	if err != nil {
		err = s.dialect.MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to link tag",
			slog.Int64("task_id", taskID), slog.Int64("tag_id", tagID), slog.Any("error", err))
		return fmt.Errorf("failed to link tag: %w", err)
	}
	return nil
}

// RemoveLink implements store.TagStore.
func (s *TagStore) RemoveLink(ctx context.Context, taskID, tagID int64) error {
	_, err := s.db.ExecContext(ctx,
		s.q(`DELETE FROM task_tags WHERE task_id = ? AND tag_id = ?`), taskID, tagID)
	if err != nil {
		return fmt.Errorf("failed to unlink tag: %w", s.dialect.MapError(err))
	}
	return nil
}

// LinkedTaskIDs implements store.TagStore.
func (s *TagStore) LinkedTaskIDs(ctx context.Context, tagID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT task_id FROM task_tags WHERE tag_id = ? ORDER BY task_id ASC`), tagID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked tasks: %w", s.dialect.MapError(err))
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task ids: %w", err)
	}
	return ids, nil
}

// DeleteLinksForTag implements store.TagStore.
func (s *TagStore) DeleteLinksForTag(ctx context.Context, tagID int64) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM task_tags WHERE tag_id = ?`), tagID); err != nil {
		return fmt.Errorf("failed to delete tag links: %w", s.dialect.MapError(err))
	}
	return nil
}

// DeleteLinksForTask implements store.TagStore.
func (s *TagStore) DeleteLinksForTask(ctx context.Context, taskID int64) error {
	if _, err := s.db.ExecContext(ctx, s.q(`DELETE FROM task_tags WHERE task_id = ?`), taskID); err != nil {
		return fmt.Errorf("failed to delete task links: %w", s.dialect.MapError(err))
	}
	return nil
}
