package models

import (
	"time"

	"surfcast/internal/surf"
)

// SurfReport is the good-surf digest delivered by e-mail.
type SurfReport struct {
	Date      time.Time        `json:"date"`
	RunID     string           `json:"run_id"`
	MinGrade  surf.Grade       `json:"min_grade"`
	Points    []*PointForecast `json:"points"`
	Summary   string           `json:"summary"`
	AISummary string           `json:"ai_summary,omitempty"`
}
