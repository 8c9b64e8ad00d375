package models

import (
	"time"

	"surfcast/internal/surf"
)

// PointForecast is the assembled forecast for one surf point: the current assessment plus
// the hourly and daily horizons. It is built once per refresh and not modified afterwards.
type PointForecast struct {
	ID               string         `json:"id"`
	Beach            string         `json:"beach"`
	Height           string         `json:"height"` // size label
	HeightMeters     float64        `json:"heightMeters"`
	RawSwellHeight   *float64       `json:"rawSwellHeight"`
	HeightRange      string         `json:"heightRange"`
	Period           float64        `json:"period"`
	WindSpeed        float64        `json:"windSpeed"` // m/s
	WindDirection    surf.Direction `json:"windDirection"`
	WaveDirectionStr surf.Direction `json:"waveDirectionStr"`
	WaveDirectionDeg *float64       `json:"waveDirectionDeg"`
	IsBestSwell      bool           `json:"isBestSwell"`
	BeachFacing      surf.Direction `json:"beachFacing"`
	Temperature      float64        `json:"temperature"` // sea surface, °C
	Visibility       *float64       `json:"visibility"`
	CloudCover       *float64       `json:"cloudCover"`
	Tide             float64        `json:"tide"`
	Quality          surf.Grade     `json:"quality"`
	Time             string         `json:"time"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	Note             string         `json:"note,omitempty"`
	BestSwell        string         `json:"bestSwell,omitempty"`

	Hourly []HourlyForecast `json:"hourly"`
	Daily  []DailyForecast  `json:"daily"`
}

// PeakGrade is the best grade among the current assessment and the daily outlook.
func (f *PointForecast) PeakGrade() surf.Grade {
	best := f.Quality
	for _, d := range f.Daily {
		if d.Quality.Rank() > best.Rank() {
			best = d.Quality
		}
	}
	return best
}

type HourlyForecast struct {
	Time          string         `json:"time"`
	WaveHeight    float64        `json:"waveHeight"`
	RawWaveHeight *float64       `json:"rawWaveHeight"`
	WaveLabel     string         `json:"waveLabel"`
	WaveRange     string         `json:"waveRange"`
	Period        float64        `json:"period"`
	WindSpeed     float64        `json:"windSpeed"`
	WindDir       surf.Direction `json:"windDir"`
	Quality       surf.Grade     `json:"quality"`
	Tide          float64        `json:"tide"`
	TideEstimated bool           `json:"tideEstimated"`
}

type DailyForecast struct {
	Time           string         `json:"time"`
	WaveHeight     float64        `json:"waveHeight"`
	RawWaveHeight  *float64       `json:"rawWaveHeight"`
	WaveLabel      string         `json:"waveLabel"`
	WindSpeedMax   float64        `json:"windSpeedMax"`
	WindDir        surf.Direction `json:"windDir"`
	TemperatureMax float64        `json:"temperatureMax"`
	TemperatureMin float64        `json:"temperatureMin"`
	WeatherCode    int            `json:"weatherCode"`
	Quality        surf.Grade     `json:"quality"`
}

// PointFailure records a point that could not be forecast during a refresh.
type PointFailure struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ForecastSnapshot is the result of one refresh cycle, in catalog order.
type ForecastSnapshot struct {
	RunID     string          `json:"runId"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Forecasts []PointForecast `json:"forecasts"`
	Failures  []PointFailure  `json:"failures"`
}

// Find returns the forecast for the given point id.
func (s *ForecastSnapshot) Find(id string) (*PointForecast, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Forecasts {
		if s.Forecasts[i].ID == id {
			return &s.Forecasts[i], true
		}
	}
	return nil, false
}

// Clone copies the top-level slices so callers can reorder or trim them freely. The
// per-point hourly and daily slices are shared; they are never written after assembly.
func (s *ForecastSnapshot) Clone() *ForecastSnapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Forecasts = make([]PointForecast, len(s.Forecasts))
	copy(out.Forecasts, s.Forecasts)
	out.Failures = make([]PointFailure, len(s.Failures))
	copy(out.Failures, s.Failures)
	return &out
}
