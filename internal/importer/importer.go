package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/phrazzld/grindboard-api/internal/service"
	"gopkg.in/yaml.v3"
)

// Document is the top level of an import file.
type Document struct {
	Tasks []TaskEntry `yaml:"tasks"`
}

// TaskEntry describes one task to create.
type TaskEntry struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Completed   bool     `yaml:"completed,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// ImportResult counts what an import created. Tags counts tag assignments,
// so a tag shared by two tasks counts twice.
type ImportResult struct {
	Tasks int
	Tags  int
}

// Parse decodes and validates an import document without writing anything.
// Unknown fields are rejected.
func Parse(r io.Reader) (*Document, error) {
	var doc Document

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse import document: %w", err)
	}

	for i, entry := range doc.Tasks {
		if err := validateEntry(i+1, entry); err != nil {
			return nil, err
		}
	}

	return &doc, nil
}

// validateEntry applies the same bounds the task and tag services enforce,
// so an import never stops halfway on bad input.
func validateEntry(n int, entry TaskEntry) error {
	field := fmt.Sprintf("tasks[%d]", n)

	title := strings.TrimSpace(entry.Title)
	switch {
	case title == "":
		return domain.NewValidationError(field+".title", "cannot be empty", domain.ErrEmptyTitle)
	case utf8.RuneCountInString(title) > domain.MaxTitleLength:
		return domain.NewValidationError(field+".title",
			fmt.Sprintf("must be at most %d characters long", domain.MaxTitleLength), domain.ErrTitleTooLong)
	}

	if utf8.RuneCountInString(entry.Description) > domain.MaxDescriptionLength {
		return domain.NewValidationError(field+".description",
			fmt.Sprintf("must be at most %d characters long", domain.MaxDescriptionLength), domain.ErrDescriptionTooLong)
	}

	for j, name := range entry.Tags {
		if err := domain.ValidateTagName(domain.NormalizeTagName(name)); err != nil {
			return domain.NewValidationError(fmt.Sprintf("%s.tags[%d]", field, j+1), "is not a valid tag name", err)
		}
	}

	return nil
}

// ImportYAML creates every task of the document for userID in document order,
// then attaches its tags and completion state. The whole document is
// validated before the first task is created.
func ImportYAML(
	ctx context.Context,
	r io.Reader,
	userID int64,
	tasks service.TaskService,
	tags service.TagService,
) (ImportResult, error) {
	var result ImportResult
	log := logger.FromContext(ctx)

	doc, err := Parse(r)
	if err != nil {
		return result, err
	}

	for i, entry := range doc.Tasks {
		task, err := tasks.Create(ctx, userID, service.NewTask{
			Title:       entry.Title,
			Description: entry.Description,
		})
		if err != nil {
			return result, fmt.Errorf("failed to create task %d: %w", i+1, err)
		}
		result.Tasks++

		for _, name := range entry.Tags {
			if _, err := tags.CreateAndAddToTask(ctx, task.ID, userID, name); err != nil {
				return result, fmt.Errorf("failed to tag task %d with %q: %w", i+1, name, err)
			}
			result.Tags++
		}

		if entry.Completed {
			if _, err := tasks.ToggleComplete(ctx, task.ID, userID); err != nil {
				return result, fmt.Errorf("failed to complete task %d: %w", i+1, err)
			}
		}
	}

	log.Info("import finished",
		slog.Int64("user_id", userID),
		slog.Int("tasks", result.Tasks),
		slog.Int("tags", result.Tags))

	return result, nil
}
