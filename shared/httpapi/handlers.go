package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"surfcast/internal/models"
	"surfcast/shared/monitoring"
)

// handleListForecasts returns every point forecast in catalog order, or an empty list
// before the first refresh.
// GET /api/forecast
func (s *Server) handleListForecasts(c *gin.Context) {
	snap, ok := s.store.Snapshot()
	if !ok {
		c.JSON(http.StatusOK, []models.PointForecast{})
		return
	}
	c.JSON(http.StatusOK, snap.Forecasts)
}

// GET /api/forecast/:id
func (s *Server) handleGetForecast(c *gin.Context) {
	id := c.Param("id")

	f, ok := s.store.Forecast(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "forecast not found", "id": id})
		return
	}
	c.JSON(http.StatusOK, f)
}

// GET /api/points
func (s *Server) handleListPoints(c *gin.Context) {
	c.JSON(http.StatusOK, s.points)
}

type statusResponse struct {
	RunID     string                `json:"runId,omitempty"`
	UpdatedAt *time.Time            `json:"updatedAt,omitempty"`
	Points    int                   `json:"points"`
	Forecasts int                   `json:"forecasts"`
	Failures  []models.PointFailure `json:"failures"`
	Stale     bool                  `json:"stale"`
	Monitor   monitoring.Status     `json:"monitor"`
}

// GET /api/status
func (s *Server) handleStatus(c *gin.Context) {
	resp := statusResponse{
		Points:   len(s.points),
		Failures: []models.PointFailure{},
		Stale:    s.store.IsStale(s.now()),
		Monitor:  s.monitor.Status(),
	}

	if snap, ok := s.store.Snapshot(); ok {
		resp.RunID = snap.RunID
		resp.UpdatedAt = &snap.UpdatedAt
		resp.Forecasts = len(snap.Forecasts)
		resp.Failures = snap.Failures
	}

	c.JSON(http.StatusOK, resp)
}
