// Package curve projects a forgetting curve from a complexity score, purely
// for display. The engine neither consumes nor validates its output.
package curve

import "math"

// Days is the horizon of the projected curve.
const Days = 30

// DefaultComplexity is used when the caller supplies no complexity.
const DefaultComplexity = 5

// Point is one day of projected retention.
type Point struct {
	Day       int     `json:"day"`
	Retention float64 `json:"retention"` // percent, 0-100
}

// Retention computes the projected retention curve R(t) = 100 * e^(-t / (15 -
// complexity)) for t = 0..Days. Complexity outside [1,10] is clamped so the
// decay constant stays positive.
func Retention(complexity int) []Point {
	if complexity < 1 {
		complexity = 1
	}
	if complexity > 10 {
		complexity = 10
	}

	decay := float64(15 - complexity)
	points := make([]Point, 0, Days+1)
	for t := 0; t <= Days; t++ {
		points = append(points, Point{
			Day:       t,
			Retention: 100 * math.Exp(-float64(t)/decay),
		})
	}

	return points
}
