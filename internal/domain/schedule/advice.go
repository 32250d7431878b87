package schedule

import (
	"github.com/halverson/recall-api/internal/domain"
)

// Verdict is the outcome of the study-strategy advice heuristic.
type Verdict string

const (
	// VerdictInsufficientData means fewer completed reviews exist than the
	// heuristic needs for a judgment.
	VerdictInsufficientData Verdict = "insufficient_data"

	// VerdictDecompose recommends splitting the topic into smaller pieces
	// because hard ratings dominate.
	VerdictDecompose Verdict = "decompose"

	// VerdictWidenIntervals recommends stretching future reviews because easy
	// ratings dominate.
	VerdictWidenIntervals Verdict = "widen_intervals"

	// VerdictNominal means the current cadence looks appropriate.
	VerdictNominal Verdict = "nominal"
)

// Advice is the full result of the heuristic, including the ratios it was
// derived from.
type Advice struct {
	Verdict   Verdict `json:"verdict"`
	Completed int     `json:"completed"`
	HardRatio float64 `json:"hardRatio"`
	EasyRatio float64 `json:"easyRatio"`
}

// advise inspects a topic's completed reviews and produces a verdict. At
// least params.AdviceMinReviews completions are required; below that the
// verdict is VerdictInsufficientData and the ratios are zero.
func advise(reviews []domain.ReviewSession, params *Params) Advice {
	total := 0
	hard := 0
	easy := 0
	for _, r := range reviews {
		if !r.Completed {
			continue
		}
		total++
		switch r.Rating {
		case domain.RatingHard:
			hard++
		case domain.RatingEasy:
			easy++
		}
	}

	if total < params.AdviceMinReviews {
		return Advice{Verdict: VerdictInsufficientData, Completed: total}
	}

	advice := Advice{
		Completed: total,
		HardRatio: float64(hard) / float64(total),
		EasyRatio: float64(easy) / float64(total),
	}

	switch {
	case advice.HardRatio > params.HardRatioLimit:
		advice.Verdict = VerdictDecompose
	case advice.EasyRatio > params.EasyRatioLimit:
		advice.Verdict = VerdictWidenIntervals
	default:
		advice.Verdict = VerdictNominal
	}

	return advice
}
