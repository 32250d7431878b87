package schedule

import (
	"math"
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

// Mastery derives a 0-100 score from a topic's review list: the rounded
// percentage of completed reviews rated good or easy. Pending sessions are
// ignored entirely; with no completed reviews the score is exactly 0.
func Mastery(reviews []domain.ReviewSession) int {
	completed := 0
	positive := 0
	for _, r := range reviews {
		if !r.Completed {
			continue
		}
		completed++
		if r.Rating == domain.RatingGood || r.Rating == domain.RatingEasy {
			positive++
		}
	}

	if completed == 0 {
		return 0
	}

	return int(math.Round(float64(positive) / float64(completed) * 100))
}

// NextReviewDate returns the RFC3339 timestamp of the earliest pending
// session at or after now, or domain.NextReviewNone when no pending review
// remains.
func NextReviewDate(reviews []domain.ReviewSession, now time.Time) string {
	var next time.Time
	found := false
	for _, r := range reviews {
		if r.Completed || r.Date.Before(now) {
			continue
		}
		if !found || r.Date.Before(next) {
			next = r.Date
			found = true
		}
	}

	if !found {
		return domain.NextReviewNone
	}

	return next.Format(time.RFC3339)
}

// Recalculate refreshes a topic's derived fields from its current review
// list. Every review-list mutation must be followed by a call to this
// function before the topic is committed; the fields are never edited
// independently.
func Recalculate(topic *domain.Topic, now time.Time) {
	topic.Mastery = Mastery(topic.Reviews)
	topic.NextReviewDate = NextReviewDate(topic.Reviews, now)
}
