package schedule

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// Cadence shape
	BaseMultiplier   float64 // starting point for the spacing multiplier
	ComplexityWeight float64 // how strongly complexity tightens spacing
	MinMultiplier    float64 // floor for the spacing multiplier

	// Generation limits
	MaxSessions int // hard cap on generated sessions per topic

	// Exam reconciliation
	ExamGapThresholdDays int // minimum gap before a final session is inserted
	ExamLeadDays         int // how many days before the exam the final lands

	// Outcome adaptation
	EasyStretchFactor float64 // due-date stretch applied after an "easy" rating
	RecoveryDelayDays int     // how soon after a "hard" rating the recovery lands

	// Advice heuristic
	AdviceMinReviews int     // completed reviews required for a verdict
	HardRatioLimit   float64 // hard ratio above which decomposition is advised
	EasyRatioLimit   float64 // easy ratio above which wider spacing is advised
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		BaseMultiplier:   2.5,
		ComplexityWeight: 0.12,
		MinMultiplier:    1.3,

		MaxSessions: 20,

		ExamGapThresholdDays: 4,
		ExamLeadDays:         2,

		EasyStretchFactor: 1.3,
		RecoveryDelayDays: 1,

		AdviceMinReviews: 3,
		HardRatioLimit:   0.4,
		EasyRatioLimit:   0.6,
	}
}

// Multiplier derives the spacing multiplier for a complexity score. Higher
// complexity yields a smaller multiplier, i.e. tighter review spacing. The
// result never drops below MinMultiplier.
func (p *Params) Multiplier(complexity int) float64 {
	m := p.BaseMultiplier - float64(complexity)*p.ComplexityWeight
	if m < p.MinMultiplier {
		m = p.MinMultiplier
	}
	return m
}
