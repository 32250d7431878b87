package analysis

import (
	"context"
)

// Result is the outcome of analyzing a topic: a 1-10 complexity score, a
// short ordered list of suggested sub-concepts, and a one-paragraph summary.
type Result struct {
	Complexity int      `json:"complexity"`
	Subtopics  []string `json:"subtopics"`
	Summary    string   `json:"summary"`
}

// Analyzer defines the interface for scoring a topic's difficulty from its
// name and free-text context. This interface serves as a boundary between the
// application core and external AI/LLM services, following the hexagonal
// architecture pattern.
type Analyzer interface {
	// AnalyzeTopic scores the named topic using the supplied context text.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - topicName: The name of the topic being studied
	//   - contextText: Free text describing what the learner wants to cover
	//
	// Returns:
	//   - A Result with complexity, subtopics, and summary
	//   - An error if the analysis fails for any reason (see errors.go)
	AnalyzeTopic(ctx context.Context, topicName, contextText string) (*Result, error)
}

// Fallback returns the fixed result substituted when the analysis
// collaborator is unavailable or returns garbage. Scheduling proceeds
// unaffected using these values.
func Fallback() *Result {
	return &Result{
		Complexity: 5,
		Subtopics:  []string{"Core Concepts", "Advanced Theory", "Practical Application"},
		Summary:    "Automatic analysis was unavailable; a standard study plan was generated.",
	}
}

// ClampComplexity forces a complexity score into the valid 1-10 range before
// it reaches the schedule generator.
func ClampComplexity(c int) int {
	if c < 1 {
		return 1
	}
	if c > 10 {
		return 10
	}
	return c
}
