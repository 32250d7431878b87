package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/halverson/recall-api/internal/api/shared"
	"github.com/halverson/recall-api/internal/domain"
	"github.com/halverson/recall-api/internal/domain/schedule"
	"github.com/halverson/recall-api/internal/platform/logger"
	"github.com/halverson/recall-api/internal/service"
)

// TopicManager is the service-side contract the topic handler depends on.
type TopicManager interface {
	CreateTopic(ctx context.Context, params service.CreateTopicParams) (*service.CreateTopicResult, error)
	GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
	Snapshot(ctx context.Context) []*domain.Topic
	CompleteReview(ctx context.Context, topicID uuid.UUID, targetDate time.Time, rating domain.Rating) (*domain.Topic, error)
	UpdateNotes(ctx context.Context, topicID uuid.UUID, notes string) (*domain.Topic, error)
	DeleteTopic(ctx context.Context, topicID uuid.UUID) error
	Advice(ctx context.Context, topicID uuid.UUID) (schedule.Advice, error)
}

// TopicHandler handles topic-related HTTP requests
type TopicHandler struct {
	topics TopicManager
	logger *slog.Logger
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(topics TopicManager, logger *slog.Logger) *TopicHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TopicHandler")
	}

	return &TopicHandler{
		topics: topics,
		logger: logger.With(slog.String("component", "topic_handler")),
	}
}

// CreateTopic handles POST /topics requests.
// Analysis failure never blocks creation; the response flags fallback use so
// the client can show one generic alert.
func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTopicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Topic name is required (2-200 characters)")
		return
	}

	var examDate *time.Time
	if req.ExamDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExamDate)
		if err != nil {
			log.Warn("invalid exam date", slog.String("exam_date", req.ExamDate))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Exam date must be RFC3339")
			return
		}
		examDate = &parsed
	}

	result, err := h.topics.CreateTopic(r.Context(), service.CreateTopicParams{
		Name:        req.Name,
		ContextText: req.Context,
		ExamDate:    examDate,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("topic created",
		slog.String("topic_id", result.Topic.ID.String()),
		slog.Bool("analysis_fallback", result.UsedFallback))

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTopicResponse{
		Topic:            topicToResponse(result.Topic),
		AnalysisSummary:  result.Analysis.Summary,
		AnalysisFallback: result.UsedFallback,
	})
}

// ListTopics handles GET /topics requests.
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics := h.topics.Snapshot(r.Context())

	response := make([]TopicResponse, len(topics))
	for i, t := range topics {
		response[i] = topicToResponse(t)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetTopic handles GET /topics/{id} requests.
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.topicIDFromPath(w, r)
	if !ok {
		return
	}

	topic, err := h.topics.GetTopic(r.Context(), topicID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}

// DeleteTopic handles DELETE /topics/{id} requests.
// Deleting an absent topic still answers 204: idempotence over signaling.
func (h *TopicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.topicIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.topics.DeleteTopic(r.Context(), topicID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateNotes handles PUT /topics/{id}/notes requests.
func (h *TopicHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	topicID, ok := h.topicIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateNotesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Notes are too long")
		return
	}

	topic, err := h.topics.UpdateNotes(r.Context(), topicID, req.Notes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}

// CompleteReview handles POST /topics/{id}/reviews/complete requests.
// A date matching no session is a silent no-op; the unchanged topic is
// returned with 200 so stale clients converge instead of erroring.
func (h *TopicHandler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	topicID, ok := h.topicIDFromPath(w, r)
	if !ok {
		return
	}

	var req CompleteReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("request validation failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Date and a rating of hard, good, or easy are required")
		return
	}

	targetDate, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		log.Warn("invalid review date", slog.String("date", req.Date))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Review date must be RFC3339")
		return
	}

	topic, err := h.topics.CompleteReview(r.Context(), topicID, targetDate, domain.Rating(req.Rating))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review completion processed",
		slog.String("topic_id", topicID.String()),
		slog.String("rating", req.Rating))

	shared.RespondWithJSON(w, r, http.StatusOK, topicToResponse(topic))
}

// GetAdvice handles GET /topics/{id}/advice requests.
func (h *TopicHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	topicID, ok := h.topicIDFromPath(w, r)
	if !ok {
		return
	}

	advice, err := h.topics.Advice(r.Context(), topicID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, advice)
}

// topicIDFromPath extracts and parses the topic ID from the URL. On failure
// it writes the error response and returns ok=false.
func (h *TopicHandler) topicIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("topic ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Topic ID is required")
		return uuid.Nil, false
	}

	topicID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid topic ID format", slog.String("topic_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid topic ID format")
		return uuid.Nil, false
	}

	return topicID, true
}
