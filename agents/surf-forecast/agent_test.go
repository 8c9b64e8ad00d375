package surfforecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surfcast/internal/models"
	"surfcast/shared/ai"
	"surfcast/shared/config"
	"surfcast/shared/scheduler"
	"surfcast/shared/storage"
)

type fakeNotifier struct {
	reports []*models.SurfReport
	err     error
}

func (n *fakeNotifier) SendReport(report *models.SurfReport) error {
	if n.err != nil {
		return n.err
	}
	n.reports = append(n.reports, report)
	return nil
}

type fakeSummarizer struct {
	digest *ai.Digest
	err    error
}

func (s *fakeSummarizer) Summarize(ctx context.Context, points []*models.PointForecast) (*ai.Digest, error) {
	return s.digest, s.err
}

type recordedEvents struct {
	success  []scheduler.Metrics
	partial  []error
	critical []error
}

func (r *recordedEvents) events() *scheduler.AgentEvents {
	return &scheduler.AgentEvents{
		OnSuccess:         func(m scheduler.Metrics, _ time.Duration) { r.success = append(r.success, m) },
		OnPartialFailure:  func(err error, _ time.Duration) { r.partial = append(r.partial, err) },
		OnCriticalFailure: func(err error, _ time.Duration) { r.critical = append(r.critical, err) },
	}
}

func newTestAgent(t *testing.T, f *fakeFetcher, points ...models.SurfPoint) (*SurfForecastAgent, *storage.ForecastStore, *fakeNotifier) {
	t.Helper()
	cfg := &config.Config{
		Surf:   config.SurfConfig{Points: points},
		Alerts: config.AlertsConfig{MinGrade: "A"},
	}
	store := storage.NewForecastStore(time.Hour)
	notifier := &fakeNotifier{}

	a := NewSurfForecastAgent(cfg, store, quietLogger())
	a.batch = newTestBatch(f, BatchOptions{Concurrency: 2})
	a.notifier = notifier
	require.NoError(t, a.Initialize())
	return a, store, notifier
}

func TestAgent_AlertsGoodSurfOncePerDay(t *testing.T) {
	a, store, notifier := newTestAgent(t, newFakeFetcher(t), hacchohama(), isonoura())
	rec := &recordedEvents{}

	require.NoError(t, a.RunOnce(context.Background(), rec.events()))

	snap, ok := store.Snapshot()
	require.True(t, ok)
	assert.Len(t, snap.Forecasts, 2)

	require.Len(t, notifier.reports, 1)
	report := notifier.reports[0]
	require.Len(t, report.Points, 1)
	assert.Equal(t, "point-7", report.Points[0].ID)
	assert.Equal(t, "run-1", report.RunID)
	assert.Empty(t, report.AISummary)

	require.Len(t, rec.success, 1)
	m := rec.success[0].(SurfMetrics)
	assert.Equal(t, SurfMetrics{Points: 2, Forecasts: 2, Alerts: 1, EmailSent: true}, m)
	assert.Equal(t, "2/2 points forecast, good surf at 1 points, email sent", m.GetSummary())

	// Same day, same conditions: nothing new to send.
	require.NoError(t, a.RunOnce(context.Background(), rec.events()))
	assert.Len(t, notifier.reports, 1)
	require.Len(t, rec.success, 2)
	assert.Equal(t, 0, rec.success[1].(SurfMetrics).Alerts)
	assert.Empty(t, rec.partial)
	assert.Empty(t, rec.critical)
}

func TestAgent_AlertsAgainNextDay(t *testing.T) {
	a, _, notifier := newTestAgent(t, newFakeFetcher(t), isonoura())

	require.NoError(t, a.RunOnce(context.Background(), nil))
	a.batch.clock = func() time.Time { return refreshTime.Add(24 * time.Hour) }
	require.NoError(t, a.RunOnce(context.Background(), nil))

	assert.Len(t, notifier.reports, 2)
}

func TestAgent_AllPointsFailKeepsPreviousSnapshot(t *testing.T) {
	f := newFakeFetcher(t)
	a, store, notifier := newTestAgent(t, f, isonoura())
	require.NoError(t, a.RunOnce(context.Background(), nil))

	f.fail[isonoura().Latitude] = errBoom
	a.batch.newRunID = func() string { return "run-2" }
	rec := &recordedEvents{}

	err := a.RunOnce(context.Background(), rec.events())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 points failed")
	require.Len(t, rec.critical, 1)
	assert.Empty(t, rec.success)

	snap, ok := store.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "run-1", snap.RunID)
	assert.Len(t, notifier.reports, 1)
}

func TestAgent_PartialFailure(t *testing.T) {
	f := newFakeFetcher(t)
	f.fail[hacchohama().Latitude] = errBoom
	a, store, _ := newTestAgent(t, f, hacchohama(), isonoura())
	rec := &recordedEvents{}

	require.NoError(t, a.RunOnce(context.Background(), rec.events()))

	snap, ok := store.Snapshot()
	require.True(t, ok)
	require.Len(t, snap.Forecasts, 1)
	assert.Equal(t, "point-7", snap.Forecasts[0].ID)
	require.Len(t, snap.Failures, 1)

	require.Len(t, rec.partial, 1)
	assert.Contains(t, rec.partial[0].Error(), "point-3")
	require.Len(t, rec.success, 1)
	assert.Contains(t, rec.success[0].GetSummary(), "1/2 points forecast, 1 failed")
}

func TestAgent_EmailFailureIsCritical(t *testing.T) {
	a, store, notifier := newTestAgent(t, newFakeFetcher(t), isonoura())
	notifier.err = errors.New("smtp down")
	rec := &recordedEvents{}

	err := a.RunOnce(context.Background(), rec.events())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
	require.Len(t, rec.critical, 1)
	assert.Empty(t, rec.success)

	// The forecast itself is still served, and the next run retries the e-mail.
	_, ok := store.Snapshot()
	assert.True(t, ok)
	notifier.err = nil
	require.NoError(t, a.RunOnce(context.Background(), nil))
	assert.Len(t, notifier.reports, 1)
}

func TestAgent_UsesAISummary(t *testing.T) {
	a, _, notifier := newTestAgent(t, newFakeFetcher(t), isonoura())
	a.summarizer = &fakeSummarizer{digest: &ai.Digest{
		Headline: "Isonoura is firing",
		Summary:  "Waist to stomach high with light offshore wind.",
	}}

	require.NoError(t, a.RunOnce(context.Background(), nil))

	require.Len(t, notifier.reports, 1)
	assert.Equal(t, "Isonoura is firing", notifier.reports[0].Summary)
	assert.Equal(t, "Waist to stomach high with light offshore wind.", notifier.reports[0].AISummary)
}

func TestAgent_SummaryFailureStillSends(t *testing.T) {
	a, _, notifier := newTestAgent(t, newFakeFetcher(t), isonoura())
	a.summarizer = &fakeSummarizer{err: errors.New("quota")}
	rec := &recordedEvents{}

	require.NoError(t, a.RunOnce(context.Background(), rec.events()))

	require.Len(t, notifier.reports, 1)
	assert.Empty(t, notifier.reports[0].AISummary)
	assert.Contains(t, notifier.reports[0].Summary, "Good surf at 1 point(s)")
	require.Len(t, rec.partial, 1)
	assert.Contains(t, rec.partial[0].Error(), "quota")
	assert.Len(t, rec.success, 1)
}

func TestAgent_InitializeRequiresPoints(t *testing.T) {
	a := NewSurfForecastAgent(&config.Config{}, storage.NewForecastStore(0), quietLogger())
	assert.Error(t, a.Initialize())
	assert.Equal(t, "Surf Forecast Agent", a.Name())
}

func TestSurfMetrics_GetSummary(t *testing.T) {
	assert.Equal(t, "11/11 points forecast", SurfMetrics{Points: 11, Forecasts: 11}.GetSummary())
	assert.Equal(t, "9/11 points forecast, 2 failed, good surf at 3 points, no email sent",
		SurfMetrics{Points: 11, Forecasts: 9, Failures: 2, Alerts: 3}.GetSummary())
}
