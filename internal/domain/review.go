package domain

import (
	"errors"
	"time"
)

// Review-specific validation errors
var (
	// ErrReviewDateZero is returned when a review session has no scheduled date.
	ErrReviewDateZero = errors.New("review session date cannot be zero")

	// ErrReviewTypeInvalid is returned when a review session has an unknown type.
	ErrReviewTypeInvalid = errors.New("review session type is invalid")

	// ErrReviewRatingInvalid is returned when a completed review carries an
	// unknown rating.
	ErrReviewRatingInvalid = errors.New("review rating is invalid")

	// ErrReviewRatingPending is returned when a rating is present on a review
	// that has not been completed.
	ErrReviewRatingPending = errors.New("review rating cannot be set before completion")
)

// SessionType classifies a review session within a topic's schedule.
type SessionType string

const (
	// SessionTypeInitial is the first generated session of a topic.
	SessionTypeInitial SessionType = "initial"

	// SessionTypeStandard is a session on the regular exponential cadence.
	SessionTypeStandard SessionType = "standard"

	// SessionTypeFinal is a session anchored near an exam date.
	SessionTypeFinal SessionType = "final"

	// SessionTypeRecovery is an extra session inserted the day after a
	// "hard" rating.
	SessionTypeRecovery SessionType = "recovery"
)

// Rating is the learner's qualitative outcome for a completed review.
type Rating string

const (
	RatingHard Rating = "hard"
	RatingGood Rating = "good"
	RatingEasy Rating = "easy"
)

// IsValid reports whether the rating is one of the known outcomes.
func (r Rating) IsValid() bool {
	switch r {
	case RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// ReviewSession is one scheduled or completed study event. A session always
// belongs to exactly one topic, and within that topic its Date acts as the
// effective identity for lookups.
type ReviewSession struct {
	// Date is the session's target timestamp.
	Date time.Time `json:"date"`

	// Completed is false until the learner explicitly marks the session done.
	Completed bool `json:"completed"`

	// CompletedDate is the real-world completion time, set exactly once
	// alongside Completed=true and never cleared.
	CompletedDate *time.Time `json:"completedDate,omitempty"`

	// Interval is the number of days since the previous review in the chain.
	// Informational only; it is not consumed by further scheduling.
	Interval int `json:"interval"`

	// Type classifies how the session was placed in the schedule.
	Type SessionType `json:"type"`

	// Rating is empty until completion and immutable afterward.
	Rating Rating `json:"rating,omitempty"`
}

// Validate checks structural consistency of a review session.
func (s *ReviewSession) Validate() error {
	if s.Date.IsZero() {
		return ErrReviewDateZero
	}

	switch s.Type {
	case SessionTypeInitial, SessionTypeStandard, SessionTypeFinal, SessionTypeRecovery:
	default:
		return ErrReviewTypeInvalid
	}

	if s.Rating != "" {
		if !s.Completed {
			return ErrReviewRatingPending
		}
		if !s.Rating.IsValid() {
			return ErrReviewRatingInvalid
		}
	}

	return nil
}

// SameDay reports whether two timestamps fall on the same calendar day in the
// timezone of the first.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
