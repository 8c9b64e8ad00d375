package monitoring

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Status is a point-in-time copy of the monitor state.
type Status struct {
	Healthy         bool      `json:"healthy"`
	LastRunTime     time.Time `json:"lastRunTime"`
	LastRunSuccess  bool      `json:"lastRunSuccess"`
	LastSummary     string    `json:"lastSummary,omitempty"`
	LastError       string    `json:"lastError,omitempty"`
	PartialFailures int       `json:"partialFailures"`
}

// Monitor tracks the outcome of refresh runs. Partial failures are counted but leave the
// health status alone; a critical failure marks the service unhealthy until the next success.
type Monitor struct {
	mu              sync.RWMutex
	lastRunSuccess  bool
	lastRunTime     time.Time
	lastSummary     string
	lastError       string
	partialFailures int

	logger *slog.Logger
	now    func() time.Time
}

func NewMonitor(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		logger: logger.With("component", "monitor"),
		now:    time.Now,
	}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = m.now()
	m.lastSummary = summary
	m.lastError = ""
	m.mu.Unlock()

	m.logger.Info("run completed", "summary", summary, "duration", duration)
}

func (m *Monitor) RecordPartialFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.partialFailures++
	m.mu.Unlock()

	m.logger.Warn("partial failure", "error", err, "duration", duration)
}

func (m *Monitor) RecordCriticalFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = m.now()
	m.lastError = err.Error()
	m.mu.Unlock()

	m.logger.Error("critical failure", "error", err, "duration", duration)
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthyLocked()
}

func (m *Monitor) healthyLocked() bool {
	if m.lastRunTime.IsZero() {
		return true // no runs yet
	}
	return m.lastRunSuccess
}

func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{
		Healthy:         m.healthyLocked(),
		LastRunTime:     m.lastRunTime,
		LastRunSuccess:  m.lastRunSuccess,
		LastSummary:     m.lastSummary,
		LastError:       m.lastError,
		PartialFailures: m.partialFailures,
	}
}

func (m *Monitor) GetStatusSummary() string {
	s := m.Status()
	if s.LastRunTime.IsZero() {
		return "No runs yet"
	}

	if s.LastRunSuccess {
		return fmt.Sprintf("Last run: %s (%s)", s.LastRunTime.Format("Jan 2 15:04"), s.LastSummary)
	}
	return fmt.Sprintf("Last run failed: %s (%s)", s.LastRunTime.Format("Jan 2 15:04"), s.LastError)
}
