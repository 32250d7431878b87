package schedule

import (
	"math"
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

// complete applies a single review outcome to a topic and returns a new topic
// value; the input is never mutated. When targetDate matches no session the
// clone is returned unchanged with applied=false — stale references from the
// caller are a silent no-op, not an error. The same applies when the matched
// session is already completed: rating and completion date are set once.
//
// Rating behavior after the session is marked completed:
//   - hard: unless a session already falls on the calendar day after now, a
//     recovery session is inserted one day out with interval 1.
//   - easy: the nearest pending non-final session after the completed one (in
//     list order) has its due date stretched away from now by
//     params.EasyStretchFactor, and its interval recomputed from the new gap.
//   - good: no structural change.
//
// Mastery and the next-review pointer are recomputed before returning, so the
// result is committed-state consistent in one step.
func complete(
	topic *domain.Topic,
	targetDate time.Time,
	rating domain.Rating,
	now time.Time,
	params *Params,
) (updated *domain.Topic, applied bool) {
	updated = topic.Clone()

	idx := -1
	for i := range updated.Reviews {
		if updated.Reviews[i].Date.Equal(targetDate) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return updated, false
	}

	session := &updated.Reviews[idx]
	if session.Completed {
		// Rating and CompletedDate are set once; a repeat submission for the
		// same session changes nothing.
		return updated, false
	}

	completedAt := now
	session.Completed = true
	session.Rating = rating
	session.CompletedDate = &completedAt

	switch rating {
	case domain.RatingHard:
		insertRecovery(updated, now, params)
	case domain.RatingEasy:
		stretchNextPending(updated, idx, now, params)
	}

	Recalculate(updated, now)
	return updated, true
}

// insertRecovery adds a recovery session the day after now, unless any
// session (pending or completed) already falls on that calendar day. Running
// the same hard completion twice in one day therefore inserts at most one
// recovery.
func insertRecovery(topic *domain.Topic, now time.Time, params *Params) {
	recoveryDate := now.AddDate(0, 0, params.RecoveryDelayDays)
	for i := range topic.Reviews {
		if domain.SameDay(topic.Reviews[i].Date, recoveryDate) {
			return
		}
	}

	topic.Reviews = append(topic.Reviews, domain.ReviewSession{
		Date:     recoveryDate,
		Interval: params.RecoveryDelayDays,
		Type:     domain.SessionTypeRecovery,
	})
	topic.SortReviews()
}

// stretchNextPending widens the due date of the nearest pending non-final
// session after index idx. The stretch multiplies the current time-to-due
// (session date minus now) rather than the originally scheduled interval, so
// completing a review early compounds differently from completing it late.
// That is deliberate, inherited behavior.
func stretchNextPending(topic *domain.Topic, idx int, now time.Time, params *Params) {
	for i := idx + 1; i < len(topic.Reviews); i++ {
		session := &topic.Reviews[i]
		if session.Completed || session.Type == domain.SessionTypeFinal {
			continue
		}

		newGap := time.Duration(float64(session.Date.Sub(now)) * params.EasyStretchFactor)
		session.Date = now.Add(newGap)
		session.Interval = int(math.Ceil(newGap.Hours() / 24))
		topic.SortReviews()
		return
	}
}
