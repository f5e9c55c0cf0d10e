package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  alice  ", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "secret1", user.Password)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{
			name:    "valid with plaintext password",
			user:    User{Username: "bob", Password: "123456"},
			wantErr: nil,
		},
		{
			name:    "valid with hash only",
			user:    User{Username: "bob", PasswordHash: "pbkdf2_sha256$1$aa$bb"},
			wantErr: nil,
		},
		{
			name:    "empty username",
			user:    User{Username: "", Password: "123456"},
			wantErr: ErrEmptyUsername,
		},
		{
			name:    "username too long",
			user:    User{Username: strings.Repeat("u", MaxUsernameLength+1), Password: "123456"},
			wantErr: ErrUsernameTooLong,
		},
		{
			name:    "password too short",
			user:    User{Username: "bob", Password: "12345"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "password too long",
			user:    User{Username: "bob", Password: strings.Repeat("p", MaxPasswordLength+1)},
			wantErr: ErrPasswordTooLong,
		},
		{
			name:    "no password and no hash",
			user:    User{Username: "bob"},
			wantErr: ErrEmptyPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errors.Is(err, ErrValidation), "user errors should wrap ErrValidation")
		})
	}
}

func TestUsernameLengthCountsRunes(t *testing.T) {
	// 150 two-byte runes is within bounds even though it is 300 bytes.
	user := User{Username: strings.Repeat("\u00e9", MaxUsernameLength), Password: "123456"}
	assert.NoError(t, user.Validate())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "is required", nil)

	assert.Equal(t, "validation failed: title is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	idErr := NewValidationError("id", "has invalid format", ErrInvalidID)
	assert.ErrorIs(t, idErr, ErrInvalidID)
	assert.NotErrorIs(t, idErr, ErrValidation)
}
