package auth

import "errors"

// Common authentication errors. The API layer maps all of them to 401
// without exposing which one occurred.
var (
	// ErrInvalidToken indicates the token format is invalid, the signature
	// doesn't match or the token is unknown.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future).
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrWrongTokenType indicates a refresh token was used as an access token or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidRefreshToken indicates the refresh token is malformed or its signature doesn't match.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrExpiredRefreshToken indicates the refresh token has expired.
	ErrExpiredRefreshToken = errors.New("refresh token has expired")

	// ErrRefreshNotSupported is returned by token strategies without refresh tokens.
	ErrRefreshNotSupported = errors.New("token refresh is not supported")

	// ErrInvalidCredentials indicates a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordMismatch is returned by PasswordHasher.Compare when the
	// password does not match the hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrUnknownHashFormat is returned when a stored hash has no recognised scheme prefix.
	ErrUnknownHashFormat = errors.New("unknown password hash format")
)
