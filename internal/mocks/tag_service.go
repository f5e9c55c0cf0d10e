package mocks

import (
	"context"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/service"
)

// MockTagService implements service.TagService for testing
type MockTagService struct {
	ListFn               func(ctx context.Context, userID int64) ([]*domain.Tag, error)
	CreateFn             func(ctx context.Context, userID int64, name string) (*domain.Tag, error)
	RenameFn             func(ctx context.Context, tagID, userID int64, newName string) (*domain.Tag, error)
	DeleteFn             func(ctx context.Context, tagID, userID int64) error
	AddToTaskFn          func(ctx context.Context, taskID, tagID, userID int64) (*domain.Tag, error)
	RemoveFromTaskFn     func(ctx context.Context, taskID, tagID, userID int64) error
	CreateAndAddToTaskFn func(ctx context.Context, taskID, userID int64, name string) (*domain.Tag, error)

	// Default return values
	Tag          *domain.Tag
	Tags         []*domain.Tag
	DefaultError error
}

var _ service.TagService = (*MockTagService)(nil)

// List implements the TagService.List method
func (m *MockTagService) List(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return m.Tags, m.DefaultError
}

// Create implements the TagService.Create method
func (m *MockTagService) Create(ctx context.Context, userID int64, name string) (*domain.Tag, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, name)
	}
	return m.Tag, m.DefaultError
}

// Rename implements the TagService.Rename method
func (m *MockTagService) Rename(ctx context.Context, tagID, userID int64, newName string) (*domain.Tag, error) {
	if m.RenameFn != nil {
		return m.RenameFn(ctx, tagID, userID, newName)
	}
	return m.Tag, m.DefaultError
}

// Delete implements the TagService.Delete method
func (m *MockTagService) Delete(ctx context.Context, tagID, userID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, tagID, userID)
	}
	return m.DefaultError
}

// AddToTask implements the TagService.AddToTask method
func (m *MockTagService) AddToTask(ctx context.Context, taskID, tagID, userID int64) (*domain.Tag, error) {
	if m.AddToTaskFn != nil {
		return m.AddToTaskFn(ctx, taskID, tagID, userID)
	}
	return m.Tag, m.DefaultError
}

// RemoveFromTask implements the TagService.RemoveFromTask method
func (m *MockTagService) RemoveFromTask(ctx context.Context, taskID, tagID, userID int64) error {
	if m.RemoveFromTaskFn != nil {
		return m.RemoveFromTaskFn(ctx, taskID, tagID, userID)
	}
	return m.DefaultError
}

// CreateAndAddToTask implements the TagService.CreateAndAddToTask method
func (m *MockTagService) CreateAndAddToTask(
	ctx context.Context,
	taskID, userID int64,
	name string,
) (*domain.Tag, error) {
	if m.CreateAndAddToTaskFn != nil {
		return m.CreateAndAddToTaskFn(ctx, taskID, userID, name)
	}
	return m.Tag, m.DefaultError
}
