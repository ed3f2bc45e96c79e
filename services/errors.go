package services

import "errors"

// Domain error taxonomy. Services return these (wrapped with context) so
// controllers can map them to HTTP statuses with errors.Is instead of
// matching message text.
var (
	// ErrNotFound signals that a referenced id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a uniqueness violation (name, username,
	// email, or watchlist/movie pair).
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals a missing or invalid required field.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
