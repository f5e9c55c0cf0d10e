package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Username and password bounds.
const (
	// MaxUsernameLength is counted in runes after trimming
	MaxUsernameLength = 150

	// MinPasswordLength is counted in runes
	MinPasswordLength = 6

	// MaxPasswordLength is counted in runes. Some hashing schemes accept less,
	// see auth.MaxBcryptPasswordBytes.
	MaxPasswordLength = 128
)

// Common validation errors
var (
	ErrEmptyUsername    = validationErr("username cannot be empty")
	ErrUsernameTooLong  = validationErr("username must be at most 150 characters long")
	ErrEmptyPassword    = validationErr("password cannot be empty")
	ErrPasswordTooShort = validationErr("password must be at least 6 characters long")
	ErrPasswordTooLong  = validationErr("password must be at most 128 characters long")
)

// User represents an account that owns tasks and tags.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"-"` // Plaintext, only set while registering or changing the password
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeUsername trims surrounding whitespace from a username.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NewUser creates a User with a normalized username and the plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:  NormalizeUsername(username),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidatePassword checks the plaintext password length bounds.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n == 0:
		return ErrEmptyPassword
	case n < MinPasswordLength:
		return ErrPasswordTooShort
	case n > MaxPasswordLength:
		return ErrPasswordTooLong
	}
	return nil
}
