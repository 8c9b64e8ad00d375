package surf

import (
	"fmt"
	"strings"
)

// Grade is the final surf quality, S (best) through D (worst).
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Grades lists every grade from best to worst.
var Grades = []Grade{GradeS, GradeA, GradeB, GradeC, GradeD}

// Rank orders grades: S is 5, D is 1, anything unknown is 0.
func (g Grade) Rank() int {
	for i, known := range Grades {
		if g == known {
			return len(Grades) - i
		}
	}
	return 0
}

// AtLeast reports whether g is as good as or better than min.
func (g Grade) AtLeast(min Grade) bool {
	return g.Rank() >= min.Rank()
}

// ParseGrade reads a grade letter, case-insensitively.
func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if g.Rank() == 0 {
		return "", fmt.Errorf("unknown grade %q (allowed: S, A, B, C, D)", s)
	}
	return g, nil
}

// ComposeQuality combines the size score, wind effect and swell match into a grade.
// Every integer total maps to a grade; anything under 2 is D.
func ComposeQuality(baseScore, windEffect int, bestSwell bool) Grade {
	final := baseScore + windEffect
	if bestSwell {
		final++
	}

	switch {
	case final >= 5:
		return GradeS
	case final >= 4:
		return GradeA
	case final >= 3:
		return GradeB
	case final >= 2:
		return GradeC
	default:
		return GradeD
	}
}
