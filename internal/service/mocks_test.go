package service

import (
	"context"
	"sync"

	"github.com/halverson/recall-api/internal/analysis"
	"github.com/halverson/recall-api/internal/domain"
)

// fakeTopicStore is an in-memory TopicStore that records every write-through
// and can be set up to fail on demand.
type fakeTopicStore struct {
	mu        sync.Mutex
	topics    []*domain.Topic
	loadErr   error
	saveErr   error
	saveCount int
}

func (s *fakeTopicStore) Load(ctx context.Context) ([]*domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.topics, nil
}

func (s *fakeTopicStore) Save(ctx context.Context, topics []*domain.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCount++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.topics = topics
	return nil
}

func (s *fakeTopicStore) saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCount
}

func (s *fakeTopicStore) stored() []*domain.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topics
}

// stubAnalyzer returns a canned result or error.
type stubAnalyzer struct {
	result *analysis.Result
	err    error
	calls  int
}

func (a *stubAnalyzer) AnalyzeTopic(ctx context.Context, topicName, contextText string) (*analysis.Result, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}
