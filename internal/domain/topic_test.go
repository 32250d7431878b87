package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTopic(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	reviews := []ReviewSession{
		{Date: now.AddDate(0, 0, 1), Interval: 1, Type: SessionTypeInitial},
		{Date: now.AddDate(0, 0, 3), Interval: 2, Type: SessionTypeStandard},
	}

	topic, err := NewTopic("Linear Algebra", 7, []string{"Vectors", "Matrices"}, reviews, nil, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if topic.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if topic.Name != "Linear Algebra" {
		t.Errorf("Expected name %q, got %q", "Linear Algebra", topic.Name)
	}

	if topic.Complexity != 7 {
		t.Errorf("Expected complexity 7, got %d", topic.Complexity)
	}

	if topic.AddedDate.IsZero() {
		t.Error("Expected non-zero AddedDate")
	}

	if topic.Mastery != 0 {
		t.Errorf("Expected zero mastery on a fresh topic, got %d", topic.Mastery)
	}

	// Test empty name
	_, err = NewTopic("", 7, nil, reviews, nil, now)
	if err != ErrTopicNameEmpty {
		t.Errorf("Expected error %v, got %v", ErrTopicNameEmpty, err)
	}

	// Test complexity out of range
	_, err = NewTopic("Chemistry", 11, nil, reviews, nil, now)
	if err != ErrTopicComplexityRange {
		t.Errorf("Expected error %v, got %v", ErrTopicComplexityRange, err)
	}

	_, err = NewTopic("Chemistry", 0, nil, reviews, nil, now)
	if err != ErrTopicComplexityRange {
		t.Errorf("Expected error %v, got %v", ErrTopicComplexityRange, err)
	}
}

func TestTopicClone(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	completedAt := now.Add(-time.Hour)
	exam := now.AddDate(0, 0, 30)

	original := &Topic{
		ID:         uuid.New(),
		Name:       "Thermodynamics",
		AddedDate:  now,
		ExamDate:   &exam,
		Complexity: 5,
		Subtopics:  []string{"Entropy"},
		Reviews: []ReviewSession{
			{Date: now.Add(-time.Hour), Completed: true, CompletedDate: &completedAt, Interval: 1, Type: SessionTypeInitial, Rating: RatingGood},
			{Date: now.AddDate(0, 0, 2), Interval: 2, Type: SessionTypeStandard},
		},
	}

	clone := original.Clone()

	// Mutating the clone must not leak back into the original
	clone.Reviews[1].Date = clone.Reviews[1].Date.AddDate(0, 0, 5)
	clone.Subtopics[0] = "Heat"
	*clone.ExamDate = exam.AddDate(0, 0, 10)
	*clone.Reviews[0].CompletedDate = completedAt.Add(time.Hour)

	if !original.Reviews[1].Date.Equal(now.AddDate(0, 0, 2)) {
		t.Error("Clone shares review slice with original")
	}
	if original.Subtopics[0] != "Entropy" {
		t.Error("Clone shares subtopic slice with original")
	}
	if !original.ExamDate.Equal(exam) {
		t.Error("Clone shares exam date pointer with original")
	}
	if !original.Reviews[0].CompletedDate.Equal(completedAt) {
		t.Error("Clone shares completed date pointer with original")
	}
}

func TestTopicSortReviews(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	topic := &Topic{
		Reviews: []ReviewSession{
			{Date: now.AddDate(0, 0, 5), Type: SessionTypeStandard},
			{Date: now.AddDate(0, 0, 1), Type: SessionTypeInitial},
			{Date: now.AddDate(0, 0, 3), Type: SessionTypeRecovery},
		},
	}

	topic.SortReviews()

	for i := 1; i < len(topic.Reviews); i++ {
		if topic.Reviews[i].Date.Before(topic.Reviews[i-1].Date) {
			t.Errorf("Reviews not sorted at index %d", i)
		}
	}
}

func TestReviewSessionValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		session ReviewSession
		wantErr error
	}{
		{
			name:    "valid pending session",
			session: ReviewSession{Date: now, Type: SessionTypeStandard},
			wantErr: nil,
		},
		{
			name:    "zero date",
			session: ReviewSession{Type: SessionTypeStandard},
			wantErr: ErrReviewDateZero,
		},
		{
			name:    "unknown type",
			session: ReviewSession{Date: now, Type: SessionType("bonus")},
			wantErr: ErrReviewTypeInvalid,
		},
		{
			name:    "rating without completion",
			session: ReviewSession{Date: now, Type: SessionTypeStandard, Rating: RatingGood},
			wantErr: ErrReviewRatingPending,
		},
		{
			name:    "unknown rating",
			session: ReviewSession{Date: now, Type: SessionTypeStandard, Completed: true, Rating: Rating("fine")},
			wantErr: ErrReviewRatingInvalid,
		},
		{
			name:    "completed with rating",
			session: ReviewSession{Date: now, Type: SessionTypeRecovery, Completed: true, Rating: RatingHard},
			wantErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.session.Validate()
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel() // Enable parallel execution
	morning := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Error("Expected same calendar day")
	}
	if SameDay(evening, nextDay) {
		t.Error("Expected different calendar days")
	}
}
