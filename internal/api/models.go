package api

import (
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

// Common request/response structures

// CreateTopicRequest defines the payload for the topic creation endpoint.
// ExamDate, when present, must be RFC3339.
type CreateTopicRequest struct {
	Name     string `json:"name"      validate:"required,min=2,max=200"`
	Context  string `json:"context"   validate:"max=4000"`
	ExamDate string `json:"exam_date" validate:"omitempty"`
}

// CompleteReviewRequest defines the payload for marking a review done.
// Date identifies the session within the topic and must be RFC3339.
type CompleteReviewRequest struct {
	Date   string `json:"date"   validate:"required"`
	Rating string `json:"rating" validate:"required,oneof=hard good easy"`
}

// UpdateNotesRequest defines the payload for replacing a topic's notes.
type UpdateNotesRequest struct {
	Notes string `json:"notes" validate:"max=20000"`
}

// ReviewSessionResponse represents one review session in API responses.
type ReviewSessionResponse struct {
	Date          time.Time  `json:"date"`
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Interval      int        `json:"interval"`
	Type          string     `json:"type"`
	Rating        string     `json:"rating,omitempty"`
}

// TopicResponse represents the response data for a topic.
type TopicResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	AddedDate      time.Time               `json:"added_date"`
	ExamDate       *time.Time              `json:"exam_date,omitempty"`
	Complexity     int                     `json:"complexity"`
	Subtopics      []string                `json:"subtopics"`
	Reviews        []ReviewSessionResponse `json:"reviews"`
	NextReviewDate string                  `json:"next_review_date"`
	Mastery        int                     `json:"mastery"`
	Notes          string                  `json:"notes"`
}

// CreateTopicResponse wraps a newly created topic together with the analysis
// outcome so the client can show a single generic alert when the fallback was
// used.
type CreateTopicResponse struct {
	Topic            TopicResponse `json:"topic"`
	AnalysisSummary  string        `json:"analysis_summary"`
	AnalysisFallback bool          `json:"analysis_fallback"`
}

// topicToResponse transforms a domain topic into its API representation.
func topicToResponse(topic *domain.Topic) TopicResponse {
	reviews := make([]ReviewSessionResponse, len(topic.Reviews))
	for i, r := range topic.Reviews {
		reviews[i] = ReviewSessionResponse{
			Date:          r.Date,
			Completed:     r.Completed,
			CompletedDate: r.CompletedDate,
			Interval:      r.Interval,
			Type:          string(r.Type),
			Rating:        string(r.Rating),
		}
	}

	return TopicResponse{
		ID:             topic.ID.String(),
		Name:           topic.Name,
		AddedDate:      topic.AddedDate,
		ExamDate:       topic.ExamDate,
		Complexity:     topic.Complexity,
		Subtopics:      topic.Subtopics,
		Reviews:        reviews,
		NextReviewDate: topic.NextReviewDate,
		Mastery:        topic.Mastery,
		Notes:          topic.Notes,
	}
}
