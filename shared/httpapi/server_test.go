package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surfcast/internal/models"
	"surfcast/internal/surf"
	"surfcast/shared/config"
	"surfcast/shared/monitoring"
	"surfcast/shared/storage"
)

var updated = time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg config.ServerConfig, withSnapshot bool) (*Server, *monitoring.Monitor) {
	t.Helper()

	store := storage.NewForecastStore(2 * time.Hour)
	if withSnapshot {
		store.Replace(&models.ForecastSnapshot{
			RunID:     "run-1",
			UpdatedAt: updated,
			Forecasts: []models.PointForecast{
				{ID: "point-1", Beach: "Fukui Toriihama", Quality: surf.GradeB, WindDirection: surf.SW},
				{ID: "point-7", Beach: "Wakayama Isonoura", Quality: surf.GradeS, WindDirection: surf.N},
			},
			Failures: []models.PointFailure{{ID: "point-3", Name: "Kyoto Hacchohama", Error: "timeout"}},
		})
	}

	monitor := monitoring.NewMonitor(quietLogger())
	s := New(cfg, store, monitor, models.DefaultSurfPoints(), quietLogger())
	s.now = func() time.Time { return updated.Add(time.Hour) }
	return s, monitor
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListForecasts(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, true)

	w := get(s, "/api/forecast")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var got []models.PointForecast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "point-1", got[0].ID)
	assert.Equal(t, "point-7", got[1].ID)
	assert.Equal(t, surf.N, got[1].WindDirection)
}

func TestListForecasts_BeforeFirstRefresh(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, false)

	w := get(s, "/api/forecast")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetForecast(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, true)

	w := get(s, "/api/forecast/point-7")
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Wakayama Isonoura", got["beach"])
	assert.Equal(t, "S", got["quality"])

	w = get(s, "/api/forecast/point-3")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "forecast not found")
}

func TestListPoints(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, false)

	w := get(s, "/api/points")
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.SurfPoint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 11)
	assert.Equal(t, "NE", got[0].BeachFacing)
}

func TestStatus(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, true)

	w := get(s, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		RunID     string                `json:"runId"`
		Points    int                   `json:"points"`
		Forecasts int                   `json:"forecasts"`
		Failures  []models.PointFailure `json:"failures"`
		Stale     bool                  `json:"stale"`
		Monitor   monitoring.Status     `json:"monitor"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 11, got.Points)
	assert.Equal(t, 2, got.Forecasts)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "point-3", got.Failures[0].ID)
	assert.False(t, got.Stale)
	assert.True(t, got.Monitor.Healthy)
}

func TestStatus_BeforeFirstRefresh(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, false)

	w := get(s, "/api/status")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stale":true`)
	assert.Contains(t, w.Body.String(), `"failures":[]`)
	assert.NotContains(t, w.Body.String(), "runId")
}

func TestHealthRoutesMounted(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, false)

	w := get(s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OK")
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{}, false)

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/forecast", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, config.ServerConfig{RateLimit: 0.001, RateBurst: 1}, false)

	assert.Equal(t, http.StatusOK, get(s, "/api/points").Code)
	w := get(s, "/api/points")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
