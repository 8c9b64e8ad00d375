package monitoring

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes mounts /health (200 or 503) and /status (plain text) on r.
func RegisterHealthRoutes(r gin.IRoutes, m *Monitor) {
	r.GET("/health", healthHandler(m))
	r.GET("/status", statusHandler(m))
}

func healthHandler(m *Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.IsHealthy() {
			c.String(http.StatusOK, "OK - %s", m.GetStatusSummary())
			return
		}
		c.String(http.StatusServiceUnavailable, "Service unhealthy - %s", m.GetStatusSummary())
	}
}

func statusHandler(m *Monitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "%s", m.GetStatusSummary())
	}
}
