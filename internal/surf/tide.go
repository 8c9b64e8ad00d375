package surf

import (
	"math"
	"time"
)

const (
	// M2PeriodHours is the period of the principal lunar semidiurnal constituent.
	M2PeriodHours = 12.42
	tideAmplitude = 0.5
)

// EstimateTide is a first-order M2 approximation of sea level in metres, used only when the
// provider returns no sea-level series. It is illustrative, not navigational.
func EstimateTide(t time.Time) float64 {
	hours := float64(t.UnixMilli()) / float64(time.Hour/time.Millisecond)
	return tideAmplitude * math.Cos(2*math.Pi*hours/M2PeriodHours)
}

// NearestIndex returns the index of the time closest to now, the first one on ties,
// or -1 when times is empty. Zero times are skipped.
func NearestIndex(times []time.Time, now time.Time) int {
	best := -1
	var bestDiff time.Duration
	for i, t := range times {
		if t.IsZero() {
			continue
		}
		diff := now.Sub(t)
		if diff < 0 {
			diff = -diff
		}
		if best == -1 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return best
}
