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

// TaskStore implements store.TaskStore.
type TaskStore struct {
	base
}

// NewTaskStore creates a TaskStore on a connection pool or transaction.
// It panics if db or dialect is nil. A nil logger falls back to slog.Default().
func NewTaskStore(db store.DBTX, dialect store.Dialect, logger *slog.Logger) *TaskStore {
	return &TaskStore{base: newBase(db, dialect, logger, "task_store")}
}

var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{base: s.withTx(tx)}
}

const taskColumns = `id, user_id, title, description, position, completed, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Position, &t.Completed,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO tasks (user_id, title, description, position, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`),
		task.UserID, task.Title, task.Description, task.Position, task.Completed,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		err = s.dialect.MapError(err)
		log.Error("failed to create task", slog.Int64("user_id", task.UserID), slog.Any("error", err))
		return fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Float64("position", task.Position))
	return nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx,
		s.q(`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`), taskID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.Int64("task_id", taskID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get task: %w", s.dialect.MapError(err))
	}
	return task, nil
}

// ListByUser implements store.TaskStore.
func (s *TaskStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY position ASC, id ASC`), userID)
	if err != nil {
		log.Error("failed to query tasks", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list tasks: %w", s.dialect.MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.Any("error", err))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// MaxPosition implements store.TaskStore.
func (s *TaskStore) MaxPosition(ctx context.Context, userID int64) (float64, bool, error) {
	var maxPos sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT MAX(position) FROM tasks WHERE user_id = ?`), userID).Scan(&maxPos)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get max position: %w", s.dialect.MapError(err))
	}
	return maxPos.Float64, maxPos.Valid, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, s.q(`
		UPDATE tasks SET title = ?, description = ?, completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`),
		task.Title, task.Description, task.Completed, task.UpdatedAt, task.ID, task.UserID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.Int64("task_id", task.ID), slog.Any("error", err))
		return fmt.Errorf("failed to update task: %w", s.dialect.MapError(err))
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// UpdatePosition implements store.TaskStore. It touches no other column,
// updated_at included.
func (s *TaskStore) UpdatePosition(ctx context.Context, userID, taskID int64, position float64) error {
	result, err := s.db.ExecContext(ctx,
		s.q(`UPDATE tasks SET position = ? WHERE id = ? AND user_id = ?`), position, taskID, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task position",
			slog.Int64("task_id", taskID), slog.Any("error", err))
		return fmt.Errorf("failed to update task position: %w", s.dialect.MapError(err))
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, userID, taskID int64) error {
	result, err := s.db.ExecContext(ctx,
		s.q(`DELETE FROM tasks WHERE id = ? AND user_id = ?`), taskID, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.Int64("task_id", taskID), slog.Any("error", err))
		return fmt.Errorf("failed to delete task: %w", s.dialect.MapError(err))
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}
