package schedule

import (
	"testing"
	"time"

	"github.com/halverson/recall-api/internal/domain"
)

func TestMultiplier(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name       string
		complexity int
		expected   float64
	}{
		{
			name:       "mid complexity",
			complexity: 5,
			expected:   1.9, // 2.5 - 5*0.12
		},
		{
			name:       "high complexity",
			complexity: 8,
			expected:   1.54, // 2.5 - 8*0.12
		},
		{
			name:       "max complexity hits the floor",
			complexity: 10,
			expected:   1.3, // 2.5 - 1.2 = 1.3, exactly the floor
		},
		{
			name:       "low complexity",
			complexity: 1,
			expected:   2.38, // 2.5 - 0.12
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := params.Multiplier(tc.complexity)
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected multiplier %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestGenerateWithoutExam(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	sessions := generate(5, nil, now, params)

	if len(sessions) != params.MaxSessions {
		t.Errorf("Expected %d sessions without an exam date, got %d", params.MaxSessions, len(sessions))
	}

	if sessions[0].Type != domain.SessionTypeInitial {
		t.Errorf("Expected first session type %q, got %q", domain.SessionTypeInitial, sessions[0].Type)
	}
	if !sessions[0].Date.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("Expected first session one day out, got %v", sessions[0].Date)
	}

	for i := 1; i < len(sessions); i++ {
		if sessions[i].Type != domain.SessionTypeStandard {
			t.Errorf("Expected session %d type %q, got %q", i, domain.SessionTypeStandard, sessions[i].Type)
		}
		if !sessions[i].Date.After(sessions[i-1].Date) {
			t.Errorf("Expected strictly increasing dates, session %d is not after session %d", i, i-1)
		}
		if sessions[i].Interval < sessions[i-1].Interval {
			t.Errorf("Expected non-decreasing intervals, got %d after %d at session %d",
				sessions[i].Interval, sessions[i-1].Interval, i)
		}
	}
}

func TestGenerateIntervalProgression(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Complexity 5 yields multiplier 1.9. The raw interval sequence is
	// 1, 1.9, 3.61, 6.859, 13.0321, 24.761, ... and the cursor advances by the
	// ceiling of each, so the first sessions land 1, 3, 7, 14, 28, 53 days out.
	sessions := generate(5, nil, now, params)

	expectedDays := []int{1, 3, 7, 14, 28, 53}
	expectedIntervals := []int{1, 2, 4, 7, 13, 25}

	for i := range expectedDays {
		want := now.AddDate(0, 0, expectedDays[i])
		if !sessions[i].Date.Equal(want) {
			t.Errorf("Session %d: expected date %v, got %v", i, want, sessions[i].Date)
		}
		if sessions[i].Interval != expectedIntervals[i] {
			t.Errorf("Session %d: expected interval %d, got %d", i, expectedIntervals[i], sessions[i].Interval)
		}
	}
}

func TestGenerateExamReconciliation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("exam before first candidate yields single final session", func(t *testing.T) {
		exam := now.Add(12 * time.Hour)
		sessions := generate(5, &exam, now, params)

		if len(sessions) != 1 {
			t.Fatalf("Expected exactly 1 session, got %d", len(sessions))
		}
		if sessions[0].Type != domain.SessionTypeFinal {
			t.Errorf("Expected type %q, got %q", domain.SessionTypeFinal, sessions[0].Type)
		}
		if !sessions[0].Date.Equal(exam) {
			t.Errorf("Expected final session on the exam date, got %v", sessions[0].Date)
		}
		if sessions[0].Interval != 0 {
			t.Errorf("Expected interval 0, got %d", sessions[0].Interval)
		}
	})

	t.Run("wide gap before the exam inserts a final session", func(t *testing.T) {
		// With complexity 5 the last generated session lands 53 days out, so a
		// day-60 exam leaves a 7-day gap and triggers the final insertion two
		// days before the exam.
		exam := now.AddDate(0, 0, 60)
		sessions := generate(5, &exam, now, params)

		last := sessions[len(sessions)-1]
		if last.Type != domain.SessionTypeFinal {
			t.Fatalf("Expected trailing final session, got type %q", last.Type)
		}
		if !last.Date.Equal(exam.AddDate(0, 0, -2)) {
			t.Errorf("Expected final session two days before the exam, got %v", last.Date)
		}
		if last.Interval != 5 { // gap 7 minus 2 lead days
			t.Errorf("Expected interval 5, got %d", last.Interval)
		}

		for _, s := range sessions {
			if s.Date.After(exam) {
				t.Errorf("Session at %v falls after the exam", s.Date)
			}
		}
	})

	t.Run("narrow gap leaves the schedule untouched", func(t *testing.T) {
		// Exam three days out: sessions land on day 1 and day 3, then the gap
		// to the exam is zero and no final is appended.
		exam := now.AddDate(0, 0, 3)
		sessions := generate(5, &exam, now, params)

		if len(sessions) != 2 {
			t.Fatalf("Expected 2 sessions, got %d", len(sessions))
		}
		for _, s := range sessions {
			if s.Type == domain.SessionTypeFinal {
				t.Error("Expected no final session for a narrow gap")
			}
		}
	})
}

func TestServiceGenerateValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	svc := NewDefaultService()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		complexity int
		wantErr    error
	}{
		{name: "complexity too low", complexity: 0, wantErr: ErrInvalidComplexity},
		{name: "complexity too high", complexity: 11, wantErr: ErrInvalidComplexity},
		{name: "complexity in range", complexity: 1, wantErr: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Generate(tc.complexity, nil, now)
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}
