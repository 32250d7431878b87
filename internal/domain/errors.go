// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidRating is returned when a review rating is not valid.
	ErrInvalidRating = errors.New("invalid review rating")

	// ErrInvalidSessionType is returned when a review session type is not valid.
	ErrInvalidSessionType = errors.New("invalid session type")
)
