package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxTagNameLength bounds a normalized tag name.
const MaxTagNameLength = 64

// Common validation errors for Tag
var (
	ErrEmptyTagUserID = validationErr("tag user ID cannot be empty")
	ErrEmptyTagName   = validationErr("tag name cannot be empty")
	ErrTagNameTooLong = validationErr("tag name must be at most 64 characters long")
)

// Tag is a user-scoped label. Names are unique within one user's tag set.
type Tag struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeTagName trims the name and converts it to Unicode NFC so that
// visually identical names compare equal.
func NormalizeTagName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NewTag creates a Tag with a normalized name.
func NewTag(userID int64, name string) (*Tag, error) {
	tag := &Tag{
		UserID:    userID,
		Name:      NormalizeTagName(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTagUserID
	}
	return ValidateTagName(t.Name)
}

// ValidateTagName checks an already normalized tag name.
func ValidateTagName(name string) error {
	if name == "" {
		return ErrEmptyTagName
	}
	if utf8.RuneCountInString(name) > MaxTagNameLength {
		return ErrTagNameTooLong
	}
	return nil
}
