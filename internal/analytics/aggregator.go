// Package analytics derives read-only dashboard projections from the full
// topic collection. Every projection is recomputed on demand from a snapshot;
// nothing here maintains incremental state or mutates a topic.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/halverson/recall-api/internal/domain"
)

const (
	// HeatmapWindowDays is the trailing window covered by the activity
	// heatmap, ending today.
	HeatmapWindowDays = 60

	// WorkloadDays is the number of day buckets in the workload histogram.
	WorkloadDays = 7

	// HeavyLoadThreshold is the session count above which a workload bucket
	// counts as heavy.
	HeavyLoadThreshold = 3
)

// UpcomingReview is one topic's nearest pending review.
type UpcomingReview struct {
	TopicID   uuid.UUID          `json:"topicId"`
	TopicName string             `json:"topicName"`
	Date      time.Time          `json:"date"`
	DaysAway  int                `json:"daysAway"`
	Type      domain.SessionType `json:"type"`
}

// WorkloadBucket is one day of the 7-day workload histogram.
type WorkloadBucket struct {
	DayOffset int  `json:"dayOffset"`
	Count     int  `json:"count"`
	Heavy     bool `json:"heavy"`
}

// HeatmapCell is one calendar day of the 60-day activity heatmap.
type HeatmapCell struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"` // 0..4
}

// Upcoming collects, for each topic, the earliest pending session at or after
// today's midnight, sorted ascending by days away. Days away are measured from
// the now moment, so a session earlier today counts as zero. Ties keep natural
// collection order (stable sort). Topics without such a session contribute
// nothing.
func Upcoming(topics []*domain.Topic, today time.Time) []UpcomingReview {
	midnight := dayStart(today)

	entries := make([]UpcomingReview, 0, len(topics))
	for _, topic := range topics {
		var nearest *domain.ReviewSession
		for i := range topic.Reviews {
			r := &topic.Reviews[i]
			if r.Completed || r.Date.Before(midnight) {
				continue
			}
			if nearest == nil || r.Date.Before(nearest.Date) {
				nearest = r
			}
		}
		if nearest == nil {
			continue
		}

		entries = append(entries, UpcomingReview{
			TopicID:   topic.ID,
			TopicName: topic.Name,
			Date:      nearest.Date,
			DaysAway:  int(math.Ceil(nearest.Date.Sub(today).Hours() / 24)),
			Type:      nearest.Type,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysAway < entries[j].DaysAway
	})

	return entries
}

// Workload builds the 7-bucket histogram of pending sessions indexed by day
// offset from today. Offsets outside [0,7) are dropped.
func Workload(topics []*domain.Topic, today time.Time) []WorkloadBucket {
	counts := make([]int, WorkloadDays)
	for _, topic := range topics {
		for _, r := range topic.Reviews {
			if r.Completed {
				continue
			}
			offset := dayOffset(today, r.Date)
			if offset < 0 || offset >= WorkloadDays {
				continue
			}
			counts[offset]++
		}
	}

	buckets := make([]WorkloadBucket, WorkloadDays)
	for i, count := range counts {
		buckets[i] = WorkloadBucket{
			DayOffset: i,
			Count:     count,
			Heavy:     count > HeavyLoadThreshold,
		}
	}

	return buckets
}

// Heatmap buckets completed sessions by the calendar day of their completion
// over the trailing 60-day window ending today. Legacy records without a
// completion timestamp fall back to the scheduled date. One cell is emitted
// per day in the window, oldest first.
func Heatmap(topics []*domain.Topic, today time.Time) []HeatmapCell {
	end := dayStart(today)
	start := end.AddDate(0, 0, -(HeatmapWindowDays - 1))

	counts := make(map[string]int)
	for _, topic := range topics {
		for _, r := range topic.Reviews {
			if !r.Completed {
				continue
			}
			when := r.Date
			if r.CompletedDate != nil {
				when = *r.CompletedDate
			}
			day := dayStart(when)
			if day.Before(start) || day.After(end) {
				continue
			}
			counts[day.Format("2006-01-02")]++
		}
	}

	cells := make([]HeatmapCell, 0, HeatmapWindowDays)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		count := counts[key]
		cells = append(cells, HeatmapCell{
			Date:      key,
			Count:     count,
			Intensity: intensityOf(count),
		})
	}

	return cells
}

// intensityOf maps a raw daily count to a 0-4 display level.
func intensityOf(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 8:
		return 3
	default:
		return 4
	}
}

// dayStart truncates a timestamp to midnight in its own location.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOffset counts calendar days from `from` to `to`, each taken in its own
// location. Anchoring both dates at UTC midnight keeps the count exact across
// DST transitions and mixed zones.
func dayOffset(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
