// Package surf holds the condition-derivation engine: pure functions that turn raw
// forecast numbers into beach-relative wave heights, size classes, wind effects and
// quality grades. Nothing in here does I/O.
package surf

import (
	"fmt"
	"math"
	"strings"
)

// Direction is one of the 16 compass points, or NoDirection.
type Direction int

const (
	NoDirection Direction = -1

	N Direction = iota - 1
	NNE
	NE
	ENE
	E
	ESE
	SE
	SSE
	S
	SSW
	SW
	WSW
	W
	WNW
	NW
	NNW
)

const (
	compassPoints = 16
	bucketWidth   = 360.0 / compassPoints
)

var directionNames = [compassPoints]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Directions returns the 16 compass points in clockwise order starting at N.
func Directions() []Direction {
	dirs := make([]Direction, compassPoints)
	for i := range dirs {
		dirs[i] = Direction(i)
	}
	return dirs
}

// DirectionFromDegrees classifies a bearing into the nearest 22.5° bucket.
// Bearings outside [0,360) wrap around. Exact half-bucket bearings round up,
// so 11.25° is NNE and 348.75° is N. A nil bearing yields NoDirection.
func DirectionFromDegrees(deg *float64) Direction {
	if deg == nil || math.IsNaN(*deg) || math.IsInf(*deg, 0) {
		return NoDirection
	}

	d := math.Mod(*deg, 360)
	if d < 0 {
		d += 360
	}

	idx := int(math.Floor(d/bucketWidth+0.5)) % compassPoints
	return Direction(idx)
}

// ParseDirection looks up a compass symbol such as "SSW". Matching is case-insensitive.
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return NoDirection, false
}

// Valid reports whether d is one of the 16 compass points.
func (d Direction) Valid() bool {
	return d >= 0 && int(d) < compassPoints
}

// Degrees returns the canonical bearing of d, or NaN for NoDirection.
func (d Direction) Degrees() float64 {
	if !d.Valid() {
		return math.NaN()
	}
	return float64(d) * bucketWidth
}

func (d Direction) String() string {
	if !d.Valid() {
		return "-"
	}
	return directionNames[d]
}

// MarshalText encodes the direction as its compass symbol.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts a compass symbol, or "-" and "" for NoDirection.
func (d *Direction) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" || s == "-" {
		*d = NoDirection
		return nil
	}
	parsed, ok := ParseDirection(s)
	if !ok {
		return fmt.Errorf("unknown compass direction %q", s)
	}
	*d = parsed
	return nil
}

// FoldedDistance is the angular separation of a and b in 22.5° buckets, folded onto 0..8
// (8 meaning opposite directions). It returns -1 if either side is not a compass point.
func FoldedDistance(a, b Direction) int {
	if !a.Valid() || !b.Valid() {
		return -1
	}

	diff := int(a) - int(b)
	if diff < 0 {
		diff = -diff
	}
	if diff > compassPoints/2 {
		diff = compassPoints - diff
	}
	return diff
}
