package schedule

import (
	"math"
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

// generate builds the initial review timeline for a topic.
//
// The cadence is spaced repetition with exponential growth: the interval
// starts at one day and is multiplied after every emitted session by a
// complexity-derived multiplier (see Params.Multiplier). Generation stops at
// params.MaxSessions or, when an exam date is set, as soon as the cursor
// passes it.
//
// Exam reconciliation after the loop:
//   - If nothing was emitted (the exam date precedes the first candidate), a
//     single final session lands exactly on the exam date with interval 0.
//   - Otherwise, when the gap between the last session and the exam exceeds
//     params.ExamGapThresholdDays, a final session is inserted
//     params.ExamLeadDays before the exam, provided that date is strictly
//     after the last existing session.
//
// The function is pure and assumes complexity was already clamped to [1,10]
// by the caller. The result is ordered by construction; no further sort is
// needed.
func generate(complexity int, examDate *time.Time, now time.Time, params *Params) []domain.ReviewSession {
	multiplier := params.Multiplier(complexity)

	sessions := make([]domain.ReviewSession, 0, params.MaxSessions)
	interval := 1.0
	cursor := now.AddDate(0, 0, 1)

	for i := 0; i < params.MaxSessions; i++ {
		if examDate != nil && cursor.After(*examDate) {
			break
		}

		sessionType := domain.SessionTypeStandard
		if len(sessions) == 0 {
			sessionType = domain.SessionTypeInitial
		}

		sessions = append(sessions, domain.ReviewSession{
			Date:     cursor,
			Interval: int(math.Round(interval)),
			Type:     sessionType,
		})

		interval *= multiplier
		cursor = cursor.AddDate(0, 0, int(math.Ceil(interval)))
	}

	if examDate != nil {
		sessions = reconcileExam(sessions, *examDate, params)
	}

	return sessions
}

// reconcileExam anchors the tail of the schedule to the exam date.
func reconcileExam(sessions []domain.ReviewSession, examDate time.Time, params *Params) []domain.ReviewSession {
	if len(sessions) == 0 {
		return append(sessions, domain.ReviewSession{
			Date:     examDate,
			Interval: 0,
			Type:     domain.SessionTypeFinal,
		})
	}

	last := sessions[len(sessions)-1].Date
	gap := int(math.Ceil(examDate.Sub(last).Hours() / 24))
	if gap <= params.ExamGapThresholdDays {
		return sessions
	}

	finalDate := examDate.AddDate(0, 0, -params.ExamLeadDays)
	if !finalDate.After(last) {
		return sessions
	}

	return append(sessions, domain.ReviewSession{
		Date:     finalDate,
		Interval: gap - params.ExamLeadDays,
		Type:     domain.SessionTypeFinal,
	})
}
