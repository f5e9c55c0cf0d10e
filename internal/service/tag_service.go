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

// TagServiceError is a custom error type for tag service errors.
type TagServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TagServiceError.
func (e *TagServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tag service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("tag service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TagServiceError) Unwrap() error {
	return e.Err
}

// NewTagServiceError creates a new TagServiceError.
func NewTagServiceError(operation, message string, err error) *TagServiceError {
	return &TagServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// TagService manages a user's tags and their links to tasks.
//
// Tag names are normalized before use. Two tags of one user never end up
// with the same name through this service: Create returns the existing tag,
// and renaming onto a taken name merges the renamed tag into the other one.
type TagService interface {
	// List returns the user's tags ordered by name.
	List(ctx context.Context, userID int64) ([]*domain.Tag, error)

	// Create returns the user's tag with this name, creating it if needed.
	Create(ctx context.Context, userID int64, name string) (*domain.Tag, error)

	// Rename renames the tag. If the user already has another tag with the
	// new name, the renamed tag's links move to it, the renamed tag is
	// deleted and the surviving tag is returned.
	Rename(ctx context.Context, tagID, userID int64, newName string) (*domain.Tag, error)

	// Delete removes the tag and its links.
	Delete(ctx context.Context, tagID, userID int64) error

	// AddToTask links an owned tag to an owned task. Linking twice is a no-op.
	AddToTask(ctx context.Context, taskID, tagID, userID int64) (*domain.Tag, error)

	// RemoveFromTask unlinks a tag from a task. A missing link is a no-op.
	RemoveFromTask(ctx context.Context, taskID, tagID, userID int64) error

	// CreateAndAddToTask finds or creates the named tag and links it to the task.
	CreateAndAddToTask(ctx context.Context, taskID, userID int64, name string) (*domain.Tag, error)
}

type tagServiceImpl struct {
	db     *sql.DB
	tasks  store.TaskStore
	tags   store.TagStore
	logger *slog.Logger
}

// NewTagService creates a new TagService.
// It returns an error if any of the required dependencies are nil.
func NewTagService(
	db *sql.DB,
	tasks store.TaskStore,
	tags store.TagStore,
	logger *slog.Logger,
) (TagService, error) {
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

	return &tagServiceImpl{
		db:     db,
		tasks:  tasks,
		tags:   tags,
		logger: logger.With(slog.String("component", "tag_service")),
	}, nil
}

func wrapTagError(operation, message string, err error) error {
	if store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return NewTagServiceError(operation, message, err)
}

// List implements TagService.List.
func (s *tagServiceImpl) List(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	tags, err := s.tags.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tags",
			slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, wrapTagError("list", "failed to list tags", err)
	}
	return tags, nil
}

// findOrCreate returns the user's tag named name, inserting it if missing.
func findOrCreate(ctx context.Context, tags store.TagStore, userID int64, name string) (*domain.Tag, error) {
	tag, err := domain.NewTag(userID, name)
	if err != nil {
		return nil, err
	}

	existing, err := tags.FindByName(ctx, userID, tag.Name, 0)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, store.ErrTagNotFound):
		return nil, err
	}

	if err := tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Create implements TagService.Create.
func (s *tagServiceImpl) Create(ctx context.Context, userID int64, name string) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var tag *domain.Tag
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		tag, err = findOrCreate(ctx, s.tags.WithTx(tx), userID, name)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			log.Error("failed to create tag", slog.Int64("user_id", userID), slog.Any("error", err))
		}
		return nil, wrapTagError("create", "failed to create tag", err)
	}

	return tag, nil
}

// Rename implements TagService.Rename.
func (s *tagServiceImpl) Rename(ctx context.Context, tagID, userID int64, newName string) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	name := domain.NormalizeTagName(newName)
	if err := domain.ValidateTagName(name); err != nil {
		return nil, err
	}

	var result *domain.Tag
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTags := s.tags.WithTx(tx)

		tag, err := txTags.GetByID(ctx, userID, tagID)
		if err != nil {
			return err
		}

		survivor, err := txTags.FindByName(ctx, userID, name, tag.ID)
		if errors.Is(err, store.ErrTagNotFound) {
			if err := txTags.Rename(ctx, userID, tag.ID, name); err != nil {
				return err
			}
			tag.Name = name
			result = tag
			return nil
		}
		if err != nil {
			return err
		}

		if err := mergeInto(ctx, txTags, userID, tag, survivor); err != nil {
			return err
		}
		log.Info("merged tag on rename",
			slog.Int64("merged_tag_id", tag.ID),
			slog.Int64("surviving_tag_id", survivor.ID))
		result = survivor
		return nil
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to rename tag", slog.Int64("tag_id", tagID), slog.Any("error", err))
		}
		return nil, wrapTagError("rename", "failed to rename tag", err)
	}

	return result, nil
}

// mergeInto moves every link of redundant onto survivor and deletes redundant.
func mergeInto(ctx context.Context, tags store.TagStore, userID int64, redundant, survivor *domain.Tag) error {
	taskIDs, err := tags.LinkedTaskIDs(ctx, redundant.ID)
	if err != nil {
		return err
	}
	for _, taskID := range taskIDs {
		if err := tags.AddLink(ctx, taskID, survivor.ID); err != nil {
			return err
		}
	}
	if err := tags.DeleteLinksForTag(ctx, redundant.ID); err != nil {
		return err
	}
	return tags.Delete(ctx, userID, redundant.ID)
}

// Delete implements TagService.Delete.
func (s *tagServiceImpl) Delete(ctx context.Context, tagID, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTags := s.tags.WithTx(tx)

		if _, err := txTags.GetByID(ctx, userID, tagID); err != nil {
			return err
		}
		if err := txTags.DeleteLinksForTag(ctx, tagID); err != nil {
			return err
		}
		return txTags.Delete(ctx, userID, tagID)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete tag", slog.Int64("tag_id", tagID), slog.Any("error", err))
		}
		return wrapTagError("delete", "failed to delete tag", err)
	}

	log.Info("tag deleted", slog.Int64("tag_id", tagID))
	return nil
}

// AddToTask implements TagService.AddToTask.
func (s *tagServiceImpl) AddToTask(ctx context.Context, taskID, tagID, userID int64) (*domain.Tag, error) {
	var tag *domain.Tag
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTags := s.tags.WithTx(tx)

		if _, err := s.tasks.WithTx(tx).GetByID(ctx, userID, taskID); err != nil {
			return err
		}

		var err error
		tag, err = txTags.GetByID(ctx, userID, tagID)
		if err != nil {
			return err
		}

		return txTags.AddLink(ctx, taskID, tagID)
	})
	if err != nil {
		s.logUnexpected(ctx, "failed to add tag to task", taskID, err)
		return nil, wrapTagError("add_to_task", "failed to add tag to task", err)
	}
	return tag, nil
}

// RemoveFromTask implements TagService.RemoveFromTask.
func (s *tagServiceImpl) RemoveFromTask(ctx context.Context, taskID, tagID, userID int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTags := s.tags.WithTx(tx)

		if _, err := s.tasks.WithTx(tx).GetByID(ctx, userID, taskID); err != nil {
			return err
		}
		if _, err := txTags.GetByID(ctx, userID, tagID); err != nil {
			return err
		}

		return txTags.RemoveLink(ctx, taskID, tagID)
	})
	if err != nil {
		s.logUnexpected(ctx, "failed to remove tag from task", taskID, err)
		return wrapTagError("remove_from_task", "failed to remove tag from task", err)
	}
	return nil
}

// CreateAndAddToTask implements TagService.CreateAndAddToTask.
func (s *tagServiceImpl) CreateAndAddToTask(
	ctx context.Context,
	taskID, userID int64,
	name string,
) (*domain.Tag, error) {
	var tag *domain.Tag
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTags := s.tags.WithTx(tx)

		if _, err := s.tasks.WithTx(tx).GetByID(ctx, userID, taskID); err != nil {
			return err
		}

		var err error
		tag, err = findOrCreate(ctx, txTags, userID, name)
		if err != nil {
			return err
		}

		return txTags.AddLink(ctx, taskID, tag.ID)
	})
	if err != nil {
		s.logUnexpected(ctx, "failed to create and add tag", taskID, err)
		return nil, wrapTagError("create_and_add_to_task", "failed to create and add tag", err)
	}
	return tag, nil
}

func (s *tagServiceImpl) logUnexpected(ctx context.Context, msg string, taskID int64, err error) {
	if store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
		return
	}
	logger.FromContextOrDefault(ctx, s.logger).Error(msg, slog.Int64("task_id", taskID), slog.Any("error", err))
}
