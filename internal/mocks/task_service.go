package mocks

import (
	"context"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	ListFn           func(ctx context.Context, userID int64) ([]*domain.Task, error)
	GetFn            func(ctx context.Context, taskID, userID int64) (*domain.Task, error)
	CreateFn         func(ctx context.Context, userID int64, input service.NewTask) (*domain.Task, error)
	UpdateFn         func(ctx context.Context, taskID, userID int64, patch domain.TaskPatch) (*domain.Task, error)
	ToggleCompleteFn func(ctx context.Context, taskID, userID int64) (*domain.Task, error)
	DeleteFn         func(ctx context.Context, taskID, userID int64) error
	MoveFn           func(ctx context.Context, taskID, userID int64, afterID *int64) (*domain.Task, error)
	RenormalizeFn    func(ctx context.Context, userID int64) (int, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// List implements the TaskService.List method
func (m *MockTaskService) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return m.Tasks, m.DefaultError
}

// Get implements the TaskService.Get method
func (m *MockTaskService) Get(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, taskID, userID)
	}
	return m.Task, m.DefaultError
}

// Create implements the TaskService.Create method
func (m *MockTaskService) Create(ctx context.Context, userID int64, input service.NewTask) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, input)
	}
	return m.Task, m.DefaultError
}

// Update implements the TaskService.Update method
func (m *MockTaskService) Update(
	ctx context.Context,
	taskID, userID int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, taskID, userID, patch)
	}
	return m.Task, m.DefaultError
}

// ToggleComplete implements the TaskService.ToggleComplete method
func (m *MockTaskService) ToggleComplete(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	if m.ToggleCompleteFn != nil {
		return m.ToggleCompleteFn(ctx, taskID, userID)
	}
	return m.Task, m.DefaultError
}

// Delete implements the TaskService.Delete method
func (m *MockTaskService) Delete(ctx context.Context, taskID, userID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, taskID, userID)
	}
	return m.DefaultError
}

// Move implements the TaskService.Move method
func (m *MockTaskService) Move(ctx context.Context, taskID, userID int64, afterID *int64) (*domain.Task, error) {
	if m.MoveFn != nil {
		return m.MoveFn(ctx, taskID, userID, afterID)
	}
	return m.Task, m.DefaultError
}

// Renormalize implements the TaskService.Renormalize method
func (m *MockTaskService) Renormalize(ctx context.Context, userID int64) (int, error) {
	if m.RenormalizeFn != nil {
		return m.RenormalizeFn(ctx, userID)
	}
	return len(m.Tasks), m.DefaultError
}
