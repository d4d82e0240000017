package auth

import "errors"

var (
	ErrUserExists         = errors.New("user with email or name already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken: missing, malformed, expired, or orphaned
	// refresh token; the client must sign in again.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrRefreshTokenMismatch: the token verifies cryptographically but
	// does not equal the stored value, meaning a revoked or
	// already-rotated token was replayed.
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")
)
