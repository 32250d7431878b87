package schedule

import (
	"errors"
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

// Common errors
var (
	ErrNilTopic          = errors.New("topic cannot be nil")
	ErrInvalidRating     = errors.New("invalid review rating")
	ErrInvalidComplexity = errors.New("complexity must be between 1 and 10")
)

// Service defines the interface for scheduling operations.
type Service interface {
	// Generate builds the initial review timeline for a topic with the given
	// complexity and optional exam date. Complexity must already be clamped
	// to [1,10].
	Generate(complexity int, examDate *time.Time, now time.Time) ([]domain.ReviewSession, error)

	// Complete marks the session scheduled at targetDate as done with the
	// given rating and applies the rating-dependent rescheduling. It returns
	// a new topic value; applied is false when targetDate matched no session,
	// in which case the topic comes back unchanged.
	Complete(topic *domain.Topic, targetDate time.Time, rating domain.Rating, now time.Time) (updated *domain.Topic, applied bool, err error)

	// Advise produces a study-strategy verdict from a topic's completed
	// reviews.
	Advise(topic *domain.Topic) (Advice, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Generate implements the Service interface.
func (s *defaultService) Generate(complexity int, examDate *time.Time, now time.Time) ([]domain.ReviewSession, error) {
	if complexity < 1 || complexity > 10 {
		return nil, ErrInvalidComplexity
	}

	return generate(complexity, examDate, now, s.params), nil
}

// Complete implements the Service interface.
func (s *defaultService) Complete(
	topic *domain.Topic,
	targetDate time.Time,
	rating domain.Rating,
	now time.Time,
) (*domain.Topic, bool, error) {
	if topic == nil {
		return nil, false, ErrNilTopic
	}

	if !rating.IsValid() {
		return nil, false, ErrInvalidRating
	}

	updated, applied := complete(topic, targetDate, rating, now, s.params)
	return updated, applied, nil
}

// Advise implements the Service interface.
func (s *defaultService) Advise(topic *domain.Topic) (Advice, error) {
	if topic == nil {
		return Advice{}, ErrNilTopic
	}

	return advise(topic.Reviews, s.params), nil
}
