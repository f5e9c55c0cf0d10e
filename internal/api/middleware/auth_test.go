package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/grindboard-api/internal/api/shared"
	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/mocks"
	"github.com/phrazzld/grindboard-api/internal/service/auth"
	"github.com/phrazzld/grindboard-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	const userID int64 = 42

	tests := []struct {
		name           string
		authHeader     string
		authErr        error
		userErr        error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "lowercase scheme",
			authHeader:     "bearer valid-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing auth header",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Authorization header required",
		},
		{
			name:           "invalid auth format",
			authHeader:     "Token abc",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid authorization format",
		},
		{
			name:           "empty bearer",
			authHeader:     "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid authorization format",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			authErr:        auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Token expired",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			authErr:        auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token",
		},
		{
			name:           "refresh token used for access",
			authHeader:     "Bearer refresh-token",
			authErr:        auth.ErrWrongTokenType,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token",
		},
		{
			name:           "deleted user",
			authHeader:     "Bearer valid-token",
			userErr:        store.ErrUserNotFound,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "Invalid token",
		},
		{
			name:           "token store failure",
			authHeader:     "Bearer valid-token",
			authErr:        errors.New("database is locked"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Authentication error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			issuer := &mocks.MockTokenIssuer{UserID: userID, Err: tt.authErr}
			users := &mocks.MockUserService{
				GetUserFn: func(ctx context.Context, id int64) (*domain.User, error) {
					if tt.userErr != nil {
						return nil, tt.userErr
					}
					return &domain.User{ID: id, Username: "alice"}, nil
				},
			}

			var capturedUserID int64
			var capturedToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedUserID, _ = GetUserID(r)
				capturedToken = shared.TokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			NewAuthMiddleware(issuer, users).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, capturedUserID)
				assert.Equal(t, "valid-token", capturedToken)
			} else {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
				assert.Zero(t, capturedUserID)
			}
		})
	}
}

func TestAuthMiddlewareDoesNotLeakErrors(t *testing.T) {
	t.Parallel()

	issuer := &mocks.MockTokenIssuer{Err: errors.New("query SELECT token FROM auth_tokens failed")}
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer abc")
	rec := httptest.NewRecorder()

	NewAuthMiddleware(issuer, &mocks.MockUserService{}).Authenticate(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}),
	).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "auth_tokens")
}
