package surfforecast

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"surfcast/internal/models"
	"surfcast/internal/openmeteo"
)

var jst = time.FixedZone("JST", 9*60*60)

// refreshTime falls between the 10:00 and 11:00 slots, nearer 10:00.
var refreshTime = time.Date(2025, 7, 1, 10, 10, 0, 0, jst)

const marineJSON = `{
  "latitude": 34.25,
  "longitude": 135.125,
  "utc_offset_seconds": 32400,
  "timezone": "Asia/Tokyo",
  "current": {
    "time": "2025-07-01T10:00",
    "wave_height": null,
    "wave_direction": 180.0,
    "wave_period": 7.5,
    "sea_surface_temperature": 24.1
  },
  "hourly": {
    "time": ["2025-07-01T09:00", "2025-07-01T10:00", "2025-07-01T11:00"],
    "wave_height_best_match": [0.9, null, 1.1],
    "wave_height_gwam": [0.8, 1.0, 1.2],
    "wave_direction_best_match": [175, 180, 185],
    "wave_period_best_match": [7.2, 7.5, 7.8],
    "sea_level_height_msl": [0.12, null, -0.05],
    "sea_surface_temperature": [24.0, 24.1, 24.2]
  },
  "daily": {
    "time": ["2025-07-01", "2025-07-02"],
    "wave_height_max_best_match": [1.2, 1.6],
    "wave_direction_dominant_best_match": [180, 200]
  }
}`

// Wind slots are deliberately out of order and miss 11:00.
const windJSON = `{
  "latitude": 34.25,
  "longitude": 135.125,
  "utc_offset_seconds": 32400,
  "timezone": "Asia/Tokyo",
  "current": {
    "time": "2025-07-01T10:00",
    "wind_speed_10m": 10.8,
    "wind_direction_10m": 0,
    "visibility": 24000,
    "cloud_cover": 40
  },
  "hourly": {
    "time": ["2025-07-01T10:00", "2025-07-01T09:00"],
    "wind_speed_10m_jma_msm": [10.8, 36.0],
    "wind_direction_10m_jma_msm": [0, 180]
  },
  "daily": {
    "time": ["2025-07-02", "2025-07-01"],
    "wind_speed_10m_max_best_match": [18.0, 7.2],
    "wind_direction_10m_dominant_best_match": [180, 0],
    "weather_code_best_match": [61, 1]
  }
}`

func decode(t *testing.T, raw string) *openmeteo.Response {
	t.Helper()
	var r openmeteo.Response
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return &r
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Isonoura faces S and likes south swells; Hacchohama faces N.
func isonoura() models.SurfPoint { return models.DefaultSurfPoints()[6] }
func hacchohama() models.SurfPoint { return models.DefaultSurfPoints()[2] }

// fakeFetcher serves the same fixtures for every point, except points whose latitude is
// listed in fail.
type fakeFetcher struct {
	wind, marine *openmeteo.Response
	fail         map[float64]error
	block        bool

	mu    sync.Mutex
	calls int
}

func (f *fakeFetcher) FetchWind(ctx context.Context, lat, lon float64) (*openmeteo.Response, error) {
	return f.fetch(ctx, lat, f.wind)
}

func (f *fakeFetcher) FetchMarine(ctx context.Context, lat, lon float64) (*openmeteo.Response, error) {
	return f.fetch(ctx, lat, f.marine)
}

func (f *fakeFetcher) fetch(ctx context.Context, lat float64, r *openmeteo.Response) (*openmeteo.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := f.fail[lat]; err != nil {
		return nil, err
	}
	return r, nil
}

func newFakeFetcher(t *testing.T) *fakeFetcher {
	return &fakeFetcher{
		wind:   decode(t, windJSON),
		marine: decode(t, marineJSON),
		fail:   map[float64]error{},
	}
}

var errBoom = errors.New("boom")

func newTestBatch(f Fetcher, opts BatchOptions) *Batch {
	b := NewBatch(f, NewAssembler(), opts, quietLogger())
	b.clock = func() time.Time { return refreshTime }
	b.newRunID = func() string { return "run-1" }
	return b
}
