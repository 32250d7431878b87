package api

import (
	"errors"
	"net/http"

	"github.com/halverson/recall-api/internal/domain/schedule"
	"github.com/halverson/recall-api/internal/service"
	"github.com/halverson/recall-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, store.ErrTopicNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrEmptyTopicName),
		errors.Is(err, schedule.ErrInvalidRating),
		errors.Is(err, schedule.ErrInvalidComplexity),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrTopicNotFound),
		errors.Is(err, store.ErrTopicNotFound):
		return "Topic not found"

	case errors.Is(err, service.ErrEmptyTopicName):
		return "Topic name is required"

	case errors.Is(err, schedule.ErrInvalidRating):
		return "Rating must be one of: hard, good, easy"

	case errors.Is(err, schedule.ErrInvalidComplexity):
		return "Complexity must be between 1 and 10"

	default:
		return "An unexpected error occurred"
	}
}
