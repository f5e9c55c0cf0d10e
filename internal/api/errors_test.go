package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/service"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
	"github.com/phrazzld/grindboard-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"tag not found", store.ErrTagNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"anchor not found", service.ErrAnchorTaskNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("move: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"username exists", store.ErrUsernameExists, http.StatusConflict},
		{"validation", domain.ErrEmptyTitle, http.StatusBadRequest},
		{"invalid id", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"refresh unsupported", auth.ErrRefreshNotSupported, http.StatusBadRequest},
		{"service error", service.NewTaskServiceError("list", "failed", errors.New("disk")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"refresh", auth.ErrExpiredRefreshToken, "Invalid refresh token"},
		{"credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"task", store.ErrTaskNotFound, "Task not found"},
		{"tag", store.ErrTagNotFound, "Tag not found"},
		{"anchor", service.ErrAnchorTaskNotFound, "Anchor task not found"},
		{"username", store.ErrUsernameExists, "Username already exists"},
		{"field validation", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), "Invalid id: has invalid format"},
		{"domain validation", domain.ErrEmptyTitle, "Validation error: task title cannot be empty"},
		{
			"internal details hidden",
			service.NewTaskServiceError("list", "failed", errors.New("SELECT * FROM tasks: disk I/O error")),
			"An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(RegisterRequest{Username: "alice", Password: "abc"})
	assert.Equal(t, "Invalid password: too short", SanitizeValidationError(err))

	err = validator.New().Struct(RegisterRequest{Password: "abcdefgh"})
	assert.Equal(t, "Invalid username: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
