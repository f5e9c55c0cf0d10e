package service

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

// TaskServiceError is a custom error type for task service errors.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
func NewTaskServiceError(operation, message string, err error) *TaskServiceError {
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// NewTask is the input for TaskService.Create.
type NewTask struct {
	Title       string
	Description string
}

// TaskService provides task CRUD and ordering.
type TaskService interface {
	// List returns the user's tasks in board order, each with its tags.
	List(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Get returns one task with its tags.
	Get(ctx context.Context, taskID, userID int64) (*domain.Task, error)

	// Create appends a new task to the end of the user's board.
	Create(ctx context.Context, userID int64, input NewTask) (*domain.Task, error)

	// Update merges the non-nil fields of patch into the task.
	Update(ctx context.Context, taskID, userID int64, patch domain.TaskPatch) (*domain.Task, error)

	// ToggleComplete flips the task's completed flag.
	ToggleComplete(ctx context.Context, taskID, userID int64) (*domain.Task, error)

	// Delete removes the task and its tag links.
	Delete(ctx context.Context, taskID, userID int64) error

	// Move places the task directly after afterID, or at the top when afterID is nil.
	// Only the moved task's position changes.
	Move(ctx context.Context, taskID, userID int64, afterID *int64) (*domain.Task, error)

	// Renormalize rewrites the user's positions to 1, 2, 3, ... keeping the
	// current order. It returns the number of tasks rewritten.
	Renormalize(ctx context.Context, userID int64) (int, error)
}

type taskServiceImpl struct {
	db     *sql.DB
	tasks  store.TaskStore
	tags   store.TagStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	db *sql.DB,
	tasks store.TaskStore,
	tags store.TagStore,
	logger *slog.Logger,
) (TaskService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		db:     db,
		tasks:  tasks,
		tags:   tags,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// wrapTaskError passes expected conditions through untouched and wraps everything else.
func wrapTaskError(operation, message string, err error) error {
	if store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return NewTaskServiceError(operation, message, err)
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list tasks", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, wrapTaskError("list", "failed to list tasks", err)
	}

	tagsByTask, err := s.tags.ListForUserTasks(ctx, userID)
	if err != nil {
		log.Error("failed to load task tags", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, wrapTaskError("list", "failed to load tags", err)
	}

	for _, task := range tasks {
		task.Tags = tagsByTask[task.ID]
		if task.Tags == nil {
			task.Tags = []domain.Tag{}
		}
	}

	return tasks, nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, wrapTaskError("get", "failed to get task", err)
	}
	if err := s.loadTags(ctx, s.tags, task); err != nil {
		return nil, wrapTaskError("get", "failed to load tags", err)
	}
	return task, nil
}

func (s *taskServiceImpl) loadTags(ctx context.Context, tags store.TagStore, task *domain.Task) error {
	list, err := tags.ListForTask(ctx, task.ID)
	if err != nil {
		return err
	}
	task.Tags = list
	return nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(ctx context.Context, userID int64, input NewTask) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		maxPos, hasTasks, err := txTasks.MaxPosition(ctx, userID)
		if err != nil {
			return err
		}

		task, err := domain.NewTask(userID, input.Title, input.Description, domain.PositionAtEnd(maxPos, hasTasks))
		if err != nil {
			return err
		}
		if err := txTasks.Create(ctx, task); err != nil {
			return err
		}

		created = task
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			log.Error("failed to create task", slog.Int64("user_id", userID), slog.Any("error", err))
		}
		return nil, wrapTaskError("create", "failed to create task", err)
	}

	created.Tags = []domain.Tag{}
	log.Info("task created",
		slog.Int64("task_id", created.ID),
		slog.Float64("position", created.Position))
	return created, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	taskID, userID int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	return s.mutate(ctx, "update", taskID, userID, func(task *domain.Task) bool {
		return patch.Apply(task)
	})
}

// ToggleComplete implements TaskService.ToggleComplete.
func (s *taskServiceImpl) ToggleComplete(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	return s.mutate(ctx, "toggle_complete", taskID, userID, func(task *domain.Task) bool {
		completed := !task.Completed
		return domain.TaskPatch{Completed: &completed}.Apply(task)
	})
}

// mutate loads the task, applies change and writes it back when change
// reports a modification, all in one transaction.
func (s *taskServiceImpl) mutate(
	ctx context.Context,
	operation string,
	taskID, userID int64,
	change func(task *domain.Task) bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, userID, taskID)
		if err != nil {
			return err
		}

		if change(task) {
			if err := task.Validate(); err != nil {
				return err
			}
			if err := txTasks.Update(ctx, task); err != nil {
				return err
			}
		}

		if err := s.loadTags(ctx, s.tags.WithTx(tx), task); err != nil {
			return err
		}
		result = task
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) && !errors.Is(err, domain.ErrValidation) {
			log.Error("failed to "+operation+" task", slog.Int64("task_id", taskID), slog.Any("error", err))
		}
		return nil, wrapTaskError(operation, "failed to "+operation+" task", err)
	}

	return result, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, taskID, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		if _, err := txTasks.GetByID(ctx, userID, taskID); err != nil {
			return err
		}
		if err := s.tags.WithTx(tx).DeleteLinksForTask(ctx, taskID); err != nil {
			return err
		}
		return txTasks.Delete(ctx, userID, taskID)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete task", slog.Int64("task_id", taskID), slog.Any("error", err))
		}
		return wrapTaskError("delete", "failed to delete task", err)
	}

	log.Info("task deleted", slog.Int64("task_id", taskID))
	return nil
}

// Move implements TaskService.Move.
func (s *taskServiceImpl) Move(
	ctx context.Context,
	taskID, userID int64,
	afterID *int64,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var moved *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		task, err := txTasks.GetByID(ctx, userID, taskID)
		if err != nil {
			return err
		}

		ordered, err := txTasks.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		position, err := targetPosition(ordered, afterID)
		if err != nil {
			return err
		}

		if err := txTasks.UpdatePosition(ctx, userID, taskID, position); err != nil {
			return err
		}
		task.Position = position

		if err := s.loadTags(ctx, s.tags.WithTx(tx), task); err != nil {
			return err
		}
		moved = task
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to move task", slog.Int64("task_id", taskID), slog.Any("error", err))
		}
		return nil, wrapTaskError("move", "failed to move task", err)
	}

	log.Debug("task moved",
		slog.Int64("task_id", taskID),
		slog.Float64("position", moved.Position))
	return moved, nil
}

// targetPosition computes where a task lands given the board in order.
// The moved task itself is part of ordered and is treated like any other row.
func targetPosition(ordered []*domain.Task, afterID *int64) (float64, error) {
	if afterID == nil {
		if len(ordered) == 0 {
			return domain.PositionAtTop(0, false), nil
		}
		return domain.PositionAtTop(ordered[0].Position, true), nil
	}

	for i, t := range ordered {
		if t.ID != *afterID {
			continue
		}
		if i+1 < len(ordered) {
			return domain.PositionAfter(t.Position, ordered[i+1].Position, true), nil
		}
		return domain.PositionAfter(t.Position, 0, false), nil
	}

	return 0, ErrAnchorTaskNotFound
}

// Renormalize implements TaskService.Renormalize.
func (s *taskServiceImpl) Renormalize(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		ordered, err := txTasks.ListByUser(ctx, userID)
		if err != nil {
			return err
		}

		positions := domain.RenormalizedPositions(len(ordered))
		for i, task := range ordered {
			if task.Position == positions[i] {
				continue
			}
			if err := txTasks.UpdatePosition(ctx, userID, task.ID, positions[i]); err != nil {
				return err
			}
		}

		count = len(ordered)
		return nil
	})
	if err != nil {
		log.Error("failed to renormalize positions", slog.Int64("user_id", userID), slog.Any("error", err))
		return 0, wrapTaskError("renormalize", "failed to renormalize positions", err)
	}

	log.Info("positions renormalized", slog.Int64("user_id", userID), slog.Int("task_count", count))
	return count, nil
}
