package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/grindboard-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Password hashing schemes selectable through auth.password_scheme.
const (
	SchemePBKDF2 = "pbkdf2"
	SchemeBcrypt = "bcrypt"
)

const (
	pbkdf2Prefix     = "pbkdf2_sha256"
	pbkdf2Iterations = 200000
	pbkdf2SaltBytes  = 16
	pbkdf2KeyBytes   = sha256.Size
)

// MaxBcryptPasswordBytes is the longest input bcrypt accepts.
const MaxBcryptPasswordBytes = 72

// PasswordHasher hashes new passwords and verifies stored hashes.
type PasswordHasher interface {
	// Hash returns an encoded hash of password.
	Hash(password string) (string, error)

	// Compare checks password against a stored hash of either supported
	// scheme. Returns ErrPasswordMismatch on a mismatch.
	Compare(hashedPassword, password string) error
}

// NewPasswordHasher returns a hasher that creates hashes with scheme.
// Verification always accepts both schemes.
func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case SchemePBKDF2, "":
		return &pbkdf2Hasher{iterations: pbkdf2Iterations}, nil
	case SchemeBcrypt:
		return &bcryptHasher{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme %q", scheme)
	}
}

// comparePassword dispatches on the hash prefix.
func comparePassword(hashedPassword, password string) error {
	switch {
	case strings.HasPrefix(hashedPassword, pbkdf2Prefix+"$"):
		return comparePBKDF2(hashedPassword, password)
	case strings.HasPrefix(hashedPassword, "$2"):
		err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	default:
		return ErrUnknownHashFormat
	}
}

// pbkdf2Hasher encodes hashes as pbkdf2_sha256$<iterations>$<salt hex>$<key hex>.
type pbkdf2Hasher struct {
	iterations int
}

func (h *pbkdf2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, h.iterations, pbkdf2KeyBytes, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", pbkdf2Prefix, h.iterations, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

func (h *pbkdf2Hasher) Compare(hashedPassword, password string) error {
	return comparePassword(hashedPassword, password)
}

func comparePBKDF2(encoded, password string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 {
		return ErrUnknownHashFormat
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return ErrUnknownHashFormat
	}
	salt, err := hex.DecodeString(parts[2])
	if err != nil {
		return ErrUnknownHashFormat
	}
	want, err := hex.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return ErrUnknownHashFormat
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

type bcryptHasher struct {
	cost int
}

// Hash rejects passwords bcrypt cannot take with a domain validation error,
// since they pass the rune-count bounds of domain.ValidatePassword.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxBcryptPasswordBytes {
		return "", domain.NewValidationError("password",
			fmt.Sprintf("must be at most %d bytes with the bcrypt scheme", MaxBcryptPasswordBytes),
			domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(hashedPassword, password string) error {
	return comparePassword(hashedPassword, password)
}
