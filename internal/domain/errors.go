package domain

import "errors" // Sentinel errors

// Errors returned by the stores and the token service, classified by the
// API layer with errors.Is
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")

	ErrTokenMissing          = errors.New("token missing")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
)
