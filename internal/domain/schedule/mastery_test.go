package schedule

import (
	"testing"
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

// completedSession is a test helper for a finished review with a rating.
func completedSession(date time.Time, rating domain.Rating) domain.ReviewSession {
	completedAt := date
	return domain.ReviewSession{
		Date:          date,
		Completed:     true,
		CompletedDate: &completedAt,
		Interval:      1,
		Type:          domain.SessionTypeStandard,
		Rating:        rating,
	}
}

func TestMastery(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		reviews  []domain.ReviewSession
		expected int
	}{
		{
			name:     "empty list",
			reviews:  nil,
			expected: 0,
		},
		{
			name: "all pending",
			reviews: []domain.ReviewSession{
				{Date: now, Type: domain.SessionTypeInitial},
				{Date: now.AddDate(0, 0, 3), Type: domain.SessionTypeStandard},
			},
			expected: 0,
		},
		{
			name: "single good completion",
			reviews: []domain.ReviewSession{
				completedSession(now, domain.RatingGood),
			},
			expected: 100,
		},
		{
			name: "hard completions score zero",
			reviews: []domain.ReviewSession{
				completedSession(now, domain.RatingHard),
				completedSession(now.AddDate(0, 0, 1), domain.RatingHard),
			},
			expected: 0,
		},
		{
			name: "mixed outcomes round to nearest",
			reviews: []domain.ReviewSession{
				completedSession(now, domain.RatingGood),
				completedSession(now.AddDate(0, 0, 1), domain.RatingEasy),
				completedSession(now.AddDate(0, 0, 2), domain.RatingHard),
			},
			expected: 67, // round(2/3 * 100)
		},
		{
			name: "one of three rounds down",
			reviews: []domain.ReviewSession{
				completedSession(now, domain.RatingGood),
				completedSession(now.AddDate(0, 0, 1), domain.RatingHard),
				completedSession(now.AddDate(0, 0, 2), domain.RatingHard),
			},
			expected: 33, // round(1/3 * 100)
		},
		{
			name: "pending sessions are ignored",
			reviews: []domain.ReviewSession{
				completedSession(now, domain.RatingEasy),
				{Date: now.AddDate(0, 0, 5), Type: domain.SessionTypeStandard},
				{Date: now.AddDate(0, 0, 12), Type: domain.SessionTypeStandard},
			},
			expected: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Mastery(tc.reviews)
			if got != tc.expected {
				t.Errorf("Expected mastery %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestNextReviewDate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("earliest pending session wins", func(t *testing.T) {
		later := now.AddDate(0, 0, 9)
		sooner := now.AddDate(0, 0, 2)
		reviews := []domain.ReviewSession{
			{Date: later, Type: domain.SessionTypeStandard},
			{Date: sooner, Type: domain.SessionTypeStandard},
		}

		got := NextReviewDate(reviews, now)
		if got != sooner.Format(time.RFC3339) {
			t.Errorf("Expected %q, got %q", sooner.Format(time.RFC3339), got)
		}
	})

	t.Run("past-dated pending sessions are skipped", func(t *testing.T) {
		future := now.AddDate(0, 0, 4)
		reviews := []domain.ReviewSession{
			{Date: now.AddDate(0, 0, -3), Type: domain.SessionTypeInitial},
			{Date: future, Type: domain.SessionTypeStandard},
		}

		got := NextReviewDate(reviews, now)
		if got != future.Format(time.RFC3339) {
			t.Errorf("Expected %q, got %q", future.Format(time.RFC3339), got)
		}
	})

	t.Run("exhausted schedule returns the sentinel", func(t *testing.T) {
		reviews := []domain.ReviewSession{
			completedSession(now.AddDate(0, 0, -2), domain.RatingGood),
			completedSession(now.AddDate(0, 0, -1), domain.RatingGood),
		}

		got := NextReviewDate(reviews, now)
		if got != domain.NextReviewNone {
			t.Errorf("Expected %q, got %q", domain.NextReviewNone, got)
		}
	})

	t.Run("empty list returns the sentinel", func(t *testing.T) {
		got := NextReviewDate(nil, now)
		if got != domain.NextReviewNone {
			t.Errorf("Expected %q, got %q", domain.NextReviewNone, got)
		}
	})
}

func TestRecalculate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 6)

	topic := &domain.Topic{
		Name:       "Recalc",
		Complexity: 4,
		Reviews: []domain.ReviewSession{
			completedSession(now.AddDate(0, 0, -1), domain.RatingGood),
			{Date: next, Type: domain.SessionTypeStandard},
		},
	}

	Recalculate(topic, now)

	if topic.Mastery != 100 {
		t.Errorf("Expected mastery 100, got %d", topic.Mastery)
	}
	if topic.NextReviewDate != next.Format(time.RFC3339) {
		t.Errorf("Expected next review %q, got %q", next.Format(time.RFC3339), topic.NextReviewDate)
	}
}
