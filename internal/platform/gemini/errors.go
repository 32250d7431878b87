package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyTopicName is returned when a topic name is empty.
	ErrEmptyTopicName = errors.New("topic name cannot be empty")
)
