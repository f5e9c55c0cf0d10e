package mocks

import (
	"context"

	"github.com/phrazzld/grindboard-api/internal/service/auth"
)

// MockTokenIssuer implements auth.TokenIssuer for testing
type MockTokenIssuer struct {
	IssueFn        func(ctx context.Context, userID int64) (*auth.TokenPair, error)
	AuthenticateFn func(ctx context.Context, token string) (int64, error)
	RefreshFn      func(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	RevokeFn       func(ctx context.Context, token string) error

	// Default values used when functions aren't explicitly defined
	Pair   *auth.TokenPair
	UserID int64
	Err    error

	// RevokedTokens records every token passed to Revoke.
	RevokedTokens []string
}

var _ auth.TokenIssuer = (*MockTokenIssuer)(nil)

// Issue implements the auth.TokenIssuer interface
func (m *MockTokenIssuer) Issue(ctx context.Context, userID int64) (*auth.TokenPair, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Pair != nil {
		pair := *m.Pair
		pair.UserID = userID
		return &pair, nil
	}
	return &auth.TokenPair{UserID: userID, AccessToken: "test-token"}, nil
}

// Authenticate implements the auth.TokenIssuer interface
func (m *MockTokenIssuer) Authenticate(ctx context.Context, token string) (int64, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, token)
	}
	return m.UserID, m.Err
}

// Refresh implements the auth.TokenIssuer interface
func (m *MockTokenIssuer) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	return m.Pair, m.Err
}

// Revoke implements the auth.TokenIssuer interface
func (m *MockTokenIssuer) Revoke(ctx context.Context, token string) error {
	m.RevokedTokens = append(m.RevokedTokens, token)
	if m.RevokeFn != nil {
		return m.RevokeFn(ctx, token)
	}
	return m.Err
}
