package mocks

import (
	"context"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/service"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn          func(ctx context.Context, username, password string) (*domain.User, error)
	LoginFn             func(ctx context.Context, username, password string) (*domain.User, error)
	GetUserFn           func(ctx context.Context, userID int64) (*domain.User, error)
	GetUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	DeleteUserFn        func(ctx context.Context, userID int64) error

	// Default values used when functions aren't explicitly defined
	User *domain.User
	Err  error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements the service.UserService interface
func (m *MockUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, username, password)
	}
	return m.User, m.Err
}

// Login implements the service.UserService interface
func (m *MockUserService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, username, password)
	}
	return m.User, m.Err
}

// GetUser implements the service.UserService interface.
// Without GetUserFn or User it reports store.ErrUserNotFound.
func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	if m.User == nil && m.Err == nil {
		return nil, store.ErrUserNotFound
	}
	return m.User, m.Err
}

// GetUserByUsername implements the service.UserService interface
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetUserByUsernameFn != nil {
		return m.GetUserByUsernameFn(ctx, username)
	}
	return m.User, m.Err
}

// DeleteUser implements the service.UserService interface
func (m *MockUserService) DeleteUser(ctx context.Context, userID int64) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return m.Err
}
