package storage

import (
	"sync"
	"time"

	"surfcast/internal/models"
)

// ForecastStore holds the latest forecast snapshot in memory. The refresh agent is the only
// writer and replaces the snapshot wholesale; HTTP handlers read copies.
type ForecastStore struct {
	mu       sync.RWMutex
	snapshot *models.ForecastSnapshot
	maxAge   time.Duration
}

// NewForecastStore creates an empty store. Snapshots older than maxAge are reported as stale;
// zero disables the check.
func NewForecastStore(maxAge time.Duration) *ForecastStore {
	return &ForecastStore{maxAge: maxAge}
}

// Replace swaps in a new snapshot. Nil is ignored.
func (s *ForecastStore) Replace(snap *models.ForecastSnapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap.Clone()
}

// Snapshot returns a copy of the current snapshot, or false before the first refresh.
func (s *ForecastStore) Snapshot() (*models.ForecastSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot.Clone(), true
}

// Forecast returns one point's forecast from the current snapshot.
func (s *ForecastStore) Forecast(id string) (models.PointForecast, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.snapshot.Find(id)
	if !ok {
		return models.PointForecast{}, false
	}
	return *f, true
}

// IsStale reports whether the snapshot is missing or older than maxAge at now.
func (s *ForecastStore) IsStale(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return true
	}
	if s.maxAge <= 0 {
		return false
	}
	return now.Sub(s.snapshot.UpdatedAt) > s.maxAge
}
