package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// NextReviewNone is the sentinel value stored in Topic.NextReviewDate when no
// pending review remains.
const NextReviewNone = "Completed"

// Topic-specific validation errors
var (
	// ErrTopicIDEmpty is returned when a topic ID is empty or nil.
	ErrTopicIDEmpty = errors.New("topic ID cannot be empty")

	// ErrTopicNameEmpty is returned when a topic's name is empty.
	ErrTopicNameEmpty = errors.New("topic name cannot be empty")

	// ErrTopicComplexityRange is returned when a topic's complexity is
	// outside the 1-10 range.
	ErrTopicComplexityRange = errors.New("topic complexity must be between 1 and 10")
)

// Topic is one subject the learner is studying. The review list is the mutable
// heart of the entity; Mastery and NextReviewDate are derived from it after
// every mutation and are never edited independently.
type Topic struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	AddedDate time.Time  `json:"addedDate"`
	ExamDate  *time.Time `json:"examDate,omitempty"`

	// Complexity is the 1-10 difficulty supplied by the analysis collaborator
	// (or its fallback), fixed for the topic's lifetime.
	Complexity int `json:"complexity"`

	// Subtopics is an ordered list of short descriptive strings. Informational
	// only; the engine never mutates it.
	Subtopics []string `json:"subtopics"`

	// Reviews is kept sorted by ascending date at rest.
	Reviews []ReviewSession `json:"reviews"`

	// NextReviewDate is the RFC3339 timestamp of the earliest pending review,
	// or NextReviewNone when no reviews remain.
	NextReviewDate string `json:"nextReviewDate"`

	// Mastery is the derived 0-100 score; 0 while nothing is completed.
	Mastery int `json:"mastery"`

	// Notes is free text owned entirely by the user-facing layer.
	Notes string `json:"notes"`
}

// NewTopic creates a Topic with a fresh ID and the given attributes. The
// review list is expected to come from the schedule generator; the caller is
// responsible for recomputing the derived fields (schedule.Recalculate) before
// the topic is committed. Returns an error if validation fails.
func NewTopic(
	name string,
	complexity int,
	subtopics []string,
	reviews []ReviewSession,
	examDate *time.Time,
	now time.Time,
) (*Topic, error) {
	topic := &Topic{
		ID:             uuid.New(),
		Name:           name,
		AddedDate:      now.UTC(),
		ExamDate:       examDate,
		Complexity:     complexity,
		Subtopics:      subtopics,
		Reviews:        reviews,
		NextReviewDate: NextReviewNone,
	}

	if err := topic.Validate(); err != nil {
		return nil, err
	}

	return topic, nil
}

// Validate checks if the Topic has valid data.
// Returns an error if any field fails validation.
func (t *Topic) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTopicIDEmpty
	}

	if t.Name == "" {
		return ErrTopicNameEmpty
	}

	if t.Complexity < 1 || t.Complexity > 10 {
		return ErrTopicComplexityRange
	}

	for i := range t.Reviews {
		if err := t.Reviews[i].Validate(); err != nil {
			return fmt.Errorf("review %d: %w", i, err)
		}
	}

	return nil
}

// Clone returns a deep copy of the topic. Mutating components operate on
// copies so the store's snapshot is never aliased.
func (t *Topic) Clone() *Topic {
	clone := *t

	clone.Subtopics = append([]string(nil), t.Subtopics...)
	clone.Reviews = make([]ReviewSession, len(t.Reviews))
	for i, r := range t.Reviews {
		if r.CompletedDate != nil {
			cd := *r.CompletedDate
			r.CompletedDate = &cd
		}
		clone.Reviews[i] = r
	}

	if t.ExamDate != nil {
		ed := *t.ExamDate
		clone.ExamDate = &ed
	}

	return &clone
}

// SortReviews re-establishes the at-rest ordering of the review list
// (ascending by date).
func (t *Topic) SortReviews() {
	sort.SliceStable(t.Reviews, func(i, j int) bool {
		return t.Reviews[i].Date.Before(t.Reviews[j].Date)
	})
}

// PendingReviews returns the sessions that have not been completed yet, in
// list order.
func (t *Topic) PendingReviews() []ReviewSession {
	var pending []ReviewSession
	for _, r := range t.Reviews {
		if !r.Completed {
			pending = append(pending, r)
		}
	}
	return pending
}

// CompletedReviews returns the sessions that have been completed, in list
// order.
func (t *Topic) CompletedReviews() []ReviewSession {
	var done []ReviewSession
	for _, r := range t.Reviews {
		if r.Completed {
			done = append(done, r)
		}
	}
	return done
}
