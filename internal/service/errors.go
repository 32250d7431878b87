package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is to check for these; the API layer maps them to HTTP
// status codes.
var (
	// ErrTopicNotFound indicates the referenced topic does not exist in the
	// collection. Reads surface this; deletes treat it as a silent no-op.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrEmptyTopicName indicates a create request carried no usable name.
	// Input validation happens before the engine is ever invoked.
	ErrEmptyTopicName = errors.New("topic name cannot be empty")
)
