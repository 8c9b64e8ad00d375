package monitoring

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestMonitor() *Monitor {
	m := NewMonitor(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = func() time.Time { return time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC) }
	return m
}

func TestMonitor_NoRunsIsHealthy(t *testing.T) {
	m := newTestMonitor()
	assert.True(t, m.IsHealthy())
	assert.Equal(t, "No runs yet", m.GetStatusSummary())
}

func TestMonitor_Transitions(t *testing.T) {
	m := newTestMonitor()

	m.RecordCriticalFailure(errors.New("all points failed"), time.Second)
	assert.False(t, m.IsHealthy())
	assert.Contains(t, m.GetStatusSummary(), "Last run failed: Jul 1 06:00")
	assert.Contains(t, m.GetStatusSummary(), "all points failed")

	m.RecordPartialFailure(errors.New("point-3 timed out"), time.Second)
	assert.False(t, m.IsHealthy(), "partial failures do not change health")

	m.RecordSuccess("11 points forecast", time.Second)
	assert.True(t, m.IsHealthy())
	assert.Equal(t, "Last run: Jul 1 06:00 (11 points forecast)", m.GetStatusSummary())

	m.RecordPartialFailure(errors.New("point-4 timed out"), time.Second)
	s := m.Status()
	assert.True(t, s.Healthy)
	assert.Equal(t, 2, s.PartialFailures)
	assert.Empty(t, s.LastError)
}
