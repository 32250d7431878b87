package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/halverson/recall-api/internal/domain"
	"github.com/halverson/recall-api/internal/domain/schedule"
	"github.com/halverson/recall-api/internal/service"
)

// stubTopicManager is a canned-response TopicManager for handler tests.
type stubTopicManager struct {
	createResult *service.CreateTopicResult
	createErr    error
	topic        *domain.Topic
	topicErr     error
	snapshot     []*domain.Topic
	completeErr  error
	deleteErr    error
	advice       schedule.Advice
	adviceErr    error

	lastCreateParams service.CreateTopicParams
	lastTargetDate   time.Time
	lastRating       domain.Rating
	lastNotes        string
	deletedID        uuid.UUID
}

func (m *stubTopicManager) CreateTopic(ctx context.Context, params service.CreateTopicParams) (*service.CreateTopicResult, error) {
	m.lastCreateParams = params
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createResult, nil
}

func (m *stubTopicManager) GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	if m.topicErr != nil {
		return nil, m.topicErr
	}
	return m.topic, nil
}

func (m *stubTopicManager) Snapshot(ctx context.Context) []*domain.Topic {
	return m.snapshot
}

func (m *stubTopicManager) CompleteReview(ctx context.Context, topicID uuid.UUID, targetDate time.Time, rating domain.Rating) (*domain.Topic, error) {
	m.lastTargetDate = targetDate
	m.lastRating = rating
	if m.completeErr != nil {
		return nil, m.completeErr
	}
	return m.topic, nil
}

func (m *stubTopicManager) UpdateNotes(ctx context.Context, topicID uuid.UUID, notes string) (*domain.Topic, error) {
	m.lastNotes = notes
	if m.topicErr != nil {
		return nil, m.topicErr
	}
	return m.topic, nil
}

func (m *stubTopicManager) DeleteTopic(ctx context.Context, topicID uuid.UUID) error {
	m.deletedID = topicID
	return m.deleteErr
}

func (m *stubTopicManager) Advice(ctx context.Context, topicID uuid.UUID) (schedule.Advice, error) {
	if m.adviceErr != nil {
		return schedule.Advice{}, m.adviceErr
	}
	return m.advice, nil
}
