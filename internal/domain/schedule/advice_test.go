package schedule

import (
	"testing"
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

func TestAdvise(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// ratedReviews builds a completed-review list with the given rating counts.
	ratedReviews := func(hard, good, easy int) []domain.ReviewSession {
		var reviews []domain.ReviewSession
		day := 0
		add := func(rating domain.Rating, n int) {
			for i := 0; i < n; i++ {
				reviews = append(reviews, completedSession(now.AddDate(0, 0, day), rating))
				day++
			}
		}
		add(domain.RatingHard, hard)
		add(domain.RatingGood, good)
		add(domain.RatingEasy, easy)
		return reviews
	}

	testCases := []struct {
		name     string
		reviews  []domain.ReviewSession
		expected Verdict
	}{
		{
			name:     "no completions",
			reviews:  nil,
			expected: VerdictInsufficientData,
		},
		{
			name:     "two completions is below the threshold",
			reviews:  ratedReviews(1, 1, 0),
			expected: VerdictInsufficientData,
		},
		{
			name:     "hard-dominated history suggests decomposition",
			reviews:  ratedReviews(2, 2, 0), // hard ratio 0.5 > 0.4
			expected: VerdictDecompose,
		},
		{
			name:     "easy-dominated history suggests wider spacing",
			reviews:  ratedReviews(0, 1, 3), // easy ratio 0.75 > 0.6
			expected: VerdictWidenIntervals,
		},
		{
			name:     "hard ratio exactly at the limit is not decompose",
			reviews:  ratedReviews(2, 3, 0), // hard ratio 0.4, not above the limit
			expected: VerdictNominal,
		},
		{
			name:     "balanced history is nominal",
			reviews:  ratedReviews(1, 3, 1),
			expected: VerdictNominal,
		},
		{
			name: "pending sessions do not count toward the threshold",
			reviews: append(ratedReviews(1, 1, 0), domain.ReviewSession{
				Date: now.AddDate(0, 0, 30),
				Type: domain.SessionTypeStandard,
			}),
			expected: VerdictInsufficientData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := advise(tc.reviews, params)
			if got.Verdict != tc.expected {
				t.Errorf("Expected verdict %q, got %q", tc.expected, got.Verdict)
			}
		})
	}
}

func TestAdviseRatios(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	reviews := []domain.ReviewSession{
		completedSession(now, domain.RatingHard),
		completedSession(now.AddDate(0, 0, 1), domain.RatingGood),
		completedSession(now.AddDate(0, 0, 2), domain.RatingEasy),
		completedSession(now.AddDate(0, 0, 3), domain.RatingEasy),
	}

	got := advise(reviews, params)

	if got.Completed != 4 {
		t.Errorf("Expected 4 completions, got %d", got.Completed)
	}
	if got.HardRatio != 0.25 {
		t.Errorf("Expected hard ratio 0.25, got %v", got.HardRatio)
	}
	if got.EasyRatio != 0.5 {
		t.Errorf("Expected easy ratio 0.5, got %v", got.EasyRatio)
	}
	if got.Verdict != VerdictNominal {
		t.Errorf("Expected verdict %q, got %q", VerdictNominal, got.Verdict)
	}
}

func TestServiceAdviseValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	svc := NewDefaultService()

	_, err := svc.Advise(nil)
	if err != ErrNilTopic {
		t.Errorf("Expected error %v, got %v", ErrNilTopic, err)
	}
}
