package model

import "errors"

var (
	// User related errors
	ErrUserNotFound = errors.New("user not found")

	// Access token errors. Both map to 401 at the HTTP boundary; the
	// distinction exists for logging only.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")

	// Refresh token errors
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenRevoked  = errors.New("refresh token revoked")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
)
