package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/halverson/recall-api/internal/analysis"
	"github.com/halverson/recall-api/internal/domain"
	"github.com/halverson/recall-api/internal/domain/schedule"
	"github.com/halverson/recall-api/internal/platform/logger"
	"github.com/halverson/recall-api/internal/redact"
	"github.com/halverson/recall-api/internal/store"
)

// CreateTopicParams carries the caller-validated inputs for topic creation.
type CreateTopicParams struct {
	Name        string
	ContextText string
	ExamDate    *time.Time
}

// CreateTopicResult bundles the new topic with the analysis outcome so the
// API layer can surface a single generic alert when the fallback was used.
type CreateTopicResult struct {
	Topic        *domain.Topic
	Analysis     *analysis.Result
	UsedFallback bool
}

// TopicService owns the topic collection. All mutations run under one mutex
// and follow the same shape: produce a new value, commit it into the owned
// snapshot, then write the whole collection through to the store. Store
// failures after a committed mutation are logged and swallowed; the in-memory
// state remains authoritative for the life of the process.
type TopicService struct {
	mu     sync.Mutex
	topics []*domain.Topic

	store     store.TopicStore
	analyzer  analysis.Analyzer
	scheduler schedule.Service
	logger    *slog.Logger
	now       func() time.Time
}

// NewTopicService creates a TopicService. The analyzer may be nil, in which
// case every creation uses the deterministic analysis fallback. If logger is
// nil a default logger is used.
func NewTopicService(
	topicStore store.TopicStore,
	analyzer analysis.Analyzer,
	scheduler schedule.Service,
	logger *slog.Logger,
) *TopicService {
	if topicStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("topic store cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TopicService{
		store:     topicStore,
		analyzer:  analyzer,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "topic_service")),
		now:       time.Now,
	}
}

// WithClock overrides the service's time source. Intended for tests.
func (s *TopicService) WithClock(now func() time.Time) *TopicService {
	s.now = now
	return s
}

// Load seeds the owned collection from the store. It must be called once at
// startup before the service handles requests; a load failure is fatal for
// the application, unlike the tolerated write-through failures.
func (s *TopicService) Load(ctx context.Context) error {
	topics, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.topics = topics
	s.mu.Unlock()

	s.logger.Info("topic collection loaded", slog.Int("topic_count", len(topics)))
	return nil
}

// CreateTopic analyzes the topic, generates its review schedule, and commits
// it to the collection. Analyzer failure of any kind substitutes the fixed
// fallback and is reported via CreateTopicResult.UsedFallback, never as an
// error; topic creation proceeds unaffected.
func (s *TopicService) CreateTopic(ctx context.Context, params CreateTopicParams) (*CreateTopicResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrEmptyTopicName
	}

	// The only suspension point in the mutation path: the analyzer call runs
	// outside the collection lock so a slow collaborator cannot stall reads.
	result, usedFallback := s.analyze(ctx, name, params.ContextText)

	now := s.now()
	reviews, err := s.scheduler.Generate(result.Complexity, params.ExamDate, now)
	if err != nil {
		return nil, err
	}

	topic, err := domain.NewTopic(name, result.Complexity, result.Subtopics, reviews, params.ExamDate, now)
	if err != nil {
		return nil, err
	}
	schedule.Recalculate(topic, now)

	s.mu.Lock()
	s.topics = append(s.topics, topic)
	snapshot := s.cloneAllLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	log.Info("topic created",
		slog.String("topic_id", topic.ID.String()),
		slog.Int("complexity", topic.Complexity),
		slog.Int("session_count", len(topic.Reviews)),
		slog.Bool("analysis_fallback", usedFallback))

	return &CreateTopicResult{
		Topic:        topic.Clone(),
		Analysis:     result,
		UsedFallback: usedFallback,
	}, nil
}

// analyze calls the external collaborator and substitutes the deterministic
// fallback on any failure (missing analyzer, network, malformed response).
func (s *TopicService) analyze(ctx context.Context, name, contextText string) (*analysis.Result, bool) {
	if s.analyzer == nil {
		return analysis.Fallback(), true
	}

	result, err := s.analyzer.AnalyzeTopic(ctx, name, contextText)
	if err != nil {
		s.logger.Warn("topic analysis failed, using fallback",
			slog.String("topic_name", name),
			slog.String("error", redact.Error(err)))
		return analysis.Fallback(), true
	}

	result.Complexity = analysis.ClampComplexity(result.Complexity)
	return result, false
}

// CompleteReview marks the session scheduled at targetDate as done and
// applies the rating-dependent rescheduling. A targetDate that matches no
// session is a silent no-op: the topic is returned unchanged and nothing is
// persisted. Stale dates arise naturally from outdated UI state.
func (s *TopicService) CompleteReview(
	ctx context.Context,
	topicID uuid.UUID,
	targetDate time.Time,
	rating domain.Rating,
) (*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	s.mu.Lock()
	idx := s.indexLocked(topicID)
	if idx == -1 {
		s.mu.Unlock()
		return nil, ErrTopicNotFound
	}

	updated, applied, err := s.scheduler.Complete(s.topics[idx], targetDate, rating, now)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if !applied {
		result := s.topics[idx].Clone()
		s.mu.Unlock()
		log.Debug("review completion matched no session, ignoring",
			slog.String("topic_id", topicID.String()),
			slog.Time("target_date", targetDate))
		return result, nil
	}

	s.topics[idx] = updated
	snapshot := s.cloneAllLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	log.Info("review completed",
		slog.String("topic_id", topicID.String()),
		slog.String("rating", string(rating)),
		slog.Int("mastery", updated.Mastery),
		slog.String("next_review", updated.NextReviewDate))

	return updated.Clone(), nil
}

// UpdateNotes replaces a topic's free-text notes. Notes are owned entirely by
// the user-facing layer; the engine stores them verbatim.
func (s *TopicService) UpdateNotes(ctx context.Context, topicID uuid.UUID, notes string) (*domain.Topic, error) {
	s.mu.Lock()
	idx := s.indexLocked(topicID)
	if idx == -1 {
		s.mu.Unlock()
		return nil, ErrTopicNotFound
	}

	updated := s.topics[idx].Clone()
	updated.Notes = notes
	s.topics[idx] = updated
	snapshot := s.cloneAllLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return updated.Clone(), nil
}

// DeleteTopic removes a topic from the collection irrevocably. Deleting an
// absent topic is a silent no-op; idempotence wins over strict signaling.
func (s *TopicService) DeleteTopic(ctx context.Context, topicID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	idx := s.indexLocked(topicID)
	if idx == -1 {
		s.mu.Unlock()
		log.Debug("delete of absent topic ignored",
			slog.String("topic_id", topicID.String()))
		return nil
	}

	s.topics = append(s.topics[:idx], s.topics[idx+1:]...)
	snapshot := s.cloneAllLocked()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	log.Info("topic deleted", slog.String("topic_id", topicID.String()))
	return nil
}

// GetTopic returns a copy of one topic.
func (s *TopicService) GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(topicID)
	if idx == -1 {
		return nil, ErrTopicNotFound
	}

	return s.topics[idx].Clone(), nil
}

// Snapshot returns a deep copy of the full collection in natural order. The
// analytics aggregator reads from this; callers may not mutate the engine's
// state through it.
func (s *TopicService) Snapshot(ctx context.Context) []*domain.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneAllLocked()
}

// Advice produces the study-strategy verdict for one topic.
func (s *TopicService) Advice(ctx context.Context, topicID uuid.UUID) (schedule.Advice, error) {
	topic, err := s.GetTopic(ctx, topicID)
	if err != nil {
		return schedule.Advice{}, err
	}

	return s.scheduler.Advise(topic)
}

// persist writes the committed snapshot through to the store. Failures are
// logged and swallowed: review-state invariants never depend on the write
// having succeeded.
func (s *TopicService) persist(ctx context.Context, snapshot []*domain.Topic) {
	if err := s.store.Save(ctx, snapshot); err != nil {
		s.logger.Error("write-through persistence failed",
			slog.Int("topic_count", len(snapshot)),
			slog.String("error", redact.Error(err)))
	}
}

// indexLocked finds a topic by ID. Callers must hold s.mu.
func (s *TopicService) indexLocked(topicID uuid.UUID) int {
	for i, t := range s.topics {
		if t.ID == topicID {
			return i
		}
	}
	return -1
}

// cloneAllLocked deep-copies the owned collection. Callers must hold s.mu.
func (s *TopicService) cloneAllLocked() []*domain.Topic {
	snapshot := make([]*domain.Topic, len(s.topics))
	for i, t := range s.topics {
		snapshot[i] = t.Clone()
	}
	return snapshot
}
