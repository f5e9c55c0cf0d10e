package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/grindboard-api/internal/config"
	"github.com/phrazzld/grindboard-api/internal/domain"
	"github.com/phrazzld/grindboard-api/internal/platform/logger"
	"github.com/phrazzld/grindboard-api/internal/store"
)

// Token strategies selectable through auth.strategy.
const (
	StrategyJWT    = "jwt"
	StrategyOpaque = "opaque"
)

// sessionTokenBytes of randomness encode to a 64 character token.
const sessionTokenBytes = 48

// TokenPair is what a client receives after login, registration or refresh.
// RefreshToken is empty for strategies without refresh support.
type TokenPair struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenIssuer issues and checks bearer tokens for one auth strategy.
type TokenIssuer interface {
	// Issue creates tokens for the user.
	Issue(ctx context.Context, userID int64) (*TokenPair, error)

	// Authenticate resolves an access token to the id of its user.
	Authenticate(ctx context.Context, token string) (int64, error)

	// Refresh exchanges a refresh token for a new pair.
	// Strategies without refresh tokens return ErrRefreshNotSupported.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)

	// Revoke invalidates an access token where the strategy allows it.
	Revoke(ctx context.Context, token string) error
}

// NewTokenIssuer builds the issuer for cfg.Strategy. db and tokens are only
// used by the opaque strategy and may be nil for jwt.
func NewTokenIssuer(
	cfg config.AuthConfig,
	db *sql.DB,
	tokens store.TokenStore,
	logger *slog.Logger,
) (TokenIssuer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Strategy {
	case StrategyJWT, "":
		svc, err := NewJWTService(cfg)
		if err != nil {
			return nil, err
		}
		return NewJWTIssuer(svc, time.Duration(cfg.TokenLifetimeMinutes)*time.Minute), nil
	case StrategyOpaque:
		if db == nil || tokens == nil {
			return nil, errors.New("opaque token strategy requires a database and token store")
		}
		return NewSessionIssuer(db, tokens, SessionConfig{
			Lifetime:         time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
			MaxTokensPerUser: cfg.MaxTokensPerUser,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported auth strategy %q", cfg.Strategy)
	}
}

// jwtIssuer issues stateless access and refresh tokens.
type jwtIssuer struct {
	jwt      JWTService
	lifetime time.Duration
	now      func() time.Time
}

// NewJWTIssuer wraps a JWTService as a TokenIssuer. lifetime is only used to
// report ExpiresAt to clients.
func NewJWTIssuer(svc JWTService, lifetime time.Duration) TokenIssuer {
	return &jwtIssuer{jwt: svc, lifetime: lifetime, now: time.Now}
}

func (i *jwtIssuer) Issue(ctx context.Context, userID int64) (*TokenPair, error) {
	access, err := i.jwt.GenerateToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	refresh, err := i.jwt.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    i.now().Add(i.lifetime).UTC(),
	}, nil
}

func (i *jwtIssuer) Authenticate(ctx context.Context, token string) (int64, error) {
	claims, err := i.jwt.ValidateToken(ctx, token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (i *jwtIssuer) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := i.jwt.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return i.Issue(ctx, claims.UserID)
}

// Revoke is a no-op: signed tokens stay valid until they expire.
func (i *jwtIssuer) Revoke(context.Context, string) error {
	return nil
}

// SessionConfig tunes opaque session tokens.
type SessionConfig struct {
	Lifetime time.Duration
	// MaxTokensPerUser is the number of live tokens a user may hold,
	// including the one being issued. Values below 1 are treated as 1.
	MaxTokensPerUser int
}

// sessionIssuer stores random opaque tokens in the database.
type sessionIssuer struct {
	db     *sql.DB
	tokens store.TokenStore
	cfg    SessionConfig
	now    func() time.Time
	logger *slog.Logger
}

// NewSessionIssuer creates a TokenIssuer backed by the auth_tokens table.
func NewSessionIssuer(db *sql.DB, tokens store.TokenStore, cfg SessionConfig, logger *slog.Logger) TokenIssuer {
	if cfg.MaxTokensPerUser < 1 {
		cfg.MaxTokensPerUser = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &sessionIssuer{
		db:     db,
		tokens: tokens,
		cfg:    cfg,
		now:    time.Now,
		logger: logger.With(slog.String("component", "session_issuer")),
	}
}

func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (i *sessionIssuer) Issue(ctx context.Context, userID int64) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, i.logger)

	value, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := i.now().UTC()
	token := &domain.AuthToken{
		UserID:    userID,
		Token:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(i.cfg.Lifetime),
	}

	err = store.RunInTransaction(ctx, i.db, func(ctx context.Context, tx *sql.Tx) error {
		txTokens := i.tokens.WithTx(tx)

		expired, err := txTokens.DeleteExpired(ctx, userID, now)
		if err != nil {
			return err
		}

		var evicted int64
		if i.cfg.MaxTokensPerUser == 1 {
			evicted, err = txTokens.DeleteAllForUser(ctx, userID)
		} else {
			evicted, err = txTokens.KeepNewest(ctx, userID, i.cfg.MaxTokensPerUser-1)
		}
		if err != nil {
			return err
		}

		if expired > 0 || evicted > 0 {
			log.Debug("pruned session tokens",
				slog.Int64("user_id", userID),
				slog.Int64("expired", expired),
				slog.Int64("evicted", evicted))
		}

		return txTokens.Create(ctx, token)
	})
	if err != nil {
		log.Error("failed to issue session token", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &TokenPair{UserID: userID, AccessToken: value, ExpiresAt: token.ExpiresAt}, nil
}

func (i *sessionIssuer) Authenticate(ctx context.Context, value string) (int64, error) {
	if value == "" {
		return 0, ErrMissingToken
	}

	token, err := i.tokens.GetByToken(ctx, value)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return 0, ErrInvalidToken
		}
		return 0, fmt.Errorf("failed to look up session token: %w", err)
	}

	if token.IsExpired(i.now()) {
		return 0, ErrExpiredToken
	}
	return token.UserID, nil
}

func (i *sessionIssuer) Refresh(context.Context, string) (*TokenPair, error) {
	return nil, ErrRefreshNotSupported
}

// Revoke deletes the token. Unknown tokens are ignored.
func (i *sessionIssuer) Revoke(ctx context.Context, value string) error {
	if err := i.tokens.Delete(ctx, value); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}
