// Package scoring holds the supervisor scoring rules: clamping, the
// overall-score mean and the badge color buckets.
package scoring

// Bucket thresholds for score badges.
const (
	yellowFloor = 60
	greenFloor  = 80
)

// Clamp forces a category score into [0,100]. Out-of-range input is
// clamped, not rejected.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Overall returns the arithmetic mean of the category scores. A nil score
// has not been entered yet and counts as zero; every entered score is
// clamped first.
func Overall(scores []*float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		if s != nil {
			sum += Clamp(*s)
		}
	}
	return sum / float64(len(scores))
}

// ColorFor buckets a score into its badge color: red below 60, yellow up
// to 79, green from 80.
func ColorFor(score float64) string {
	switch {
	case score >= greenFloor:
		return "green"
	case score >= yellowFloor:
		return "yellow"
	default:
		return "red"
	}
}
