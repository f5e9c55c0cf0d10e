package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// UserServiceError is a custom error type for user service errors.
type UserServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// NewUserServiceError creates a new UserServiceError.
func NewUserServiceError(operation, message string, err error) *UserServiceError {
	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// UserService provides registration, credential checks and account lookup.
type UserService interface {
	// Register creates a user with a hashed password.
	// Returns store.ErrUsernameExists if the username is taken.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// Login verifies credentials and returns the user. Unknown usernames are
	// registered when auto-registration is enabled; otherwise they, like a
	// wrong password, yield auth.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// DeleteUser removes the user with all tasks, tags and tokens.
	DeleteUser(ctx context.Context, userID int64) error
}

type userServiceImpl struct {
	db           *sql.DB
	users        store.UserStore
	hasher       auth.PasswordHasher
	autoRegister bool
	logger       *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	hasher auth.PasswordHasher,
	autoRegister bool,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		db:           db,
		users:        users,
		hasher:       hasher,
		autoRegister: autoRegister,
		logger:       logger.With(slog.String("component", "user_service")),
	}, nil
}

func wrapUserError(operation, message string, err error) error {
	if store.IsNotFoundError(err) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrUsernameExists) ||
		errors.Is(err, auth.ErrInvalidCredentials) {
		return err
	}
	return NewUserServiceError(operation, message, err)
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}

	user.PasswordHash, err = s.hasher.Hash(password)
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			log.Error("failed to hash password", slog.Any("error", err))
		}
		return nil, wrapUserError("register", "failed to hash password", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("username already taken", slog.String("username", user.Username))
		} else {
			log.Error("failed to register user", slog.String("username", user.Username), slog.Any("error", err))
		}
		return nil, wrapUserError("register", "failed to save user", err)
	}

	user.Password = ""
	log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Login implements UserService.Login.
func (s *userServiceImpl) Login(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to look up user", slog.Any("error", err))
			return nil, wrapUserError("login", "failed to look up user", err)
		}
		if !s.autoRegister {
			return nil, auth.ErrInvalidCredentials
		}

		user, err = s.Register(ctx, username, password)
		if errors.Is(err, store.ErrUsernameExists) {
			// A concurrent login registered the same name first.
			return s.Login(ctx, username, password)
		}
		return user, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Warn("stored password hash could not be verified",
				slog.Int64("user_id", user.ID), slog.Any("error", err))
		}
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser implements UserService.GetUser.
func (s *userServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapUserError("get", "failed to get user", err)
	}
	return user, nil
}

// GetUserByUsername implements UserService.GetUserByUsername.
func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		return nil, wrapUserError("get", "failed to get user by username", err)
	}
	return user, nil
}

// DeleteUser implements UserService.DeleteUser.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Delete(ctx, userID)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete user", slog.Int64("user_id", userID), slog.Any("error", err))
		}
		return wrapUserError("delete", "failed to delete user", err)
	}

	log.Info("user deleted", slog.Int64("user_id", userID))
	return nil
}
