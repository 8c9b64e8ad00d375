package surfforecast

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"surfcast/internal/models"
	"surfcast/internal/openmeteo"
	"surfcast/shared/ai"
	"surfcast/shared/config"
	"surfcast/shared/email"
	"surfcast/shared/scheduler"
	"surfcast/shared/storage"
)

// SurfMetrics represents the metrics collected during a refresh
type SurfMetrics struct {
	Points    int  `json:"points"`
	Forecasts int  `json:"forecasts"`
	Failures  int  `json:"failures"`
	Alerts    int  `json:"alerts"`
	EmailSent bool `json:"email_sent"`
}

// GetSummary implements the scheduler.Metrics interface
func (m SurfMetrics) GetSummary() string {
	s := fmt.Sprintf("%d/%d points forecast", m.Forecasts, m.Points)
	if m.Failures > 0 {
		s += fmt.Sprintf(", %d failed", m.Failures)
	}
	switch {
	case m.EmailSent:
		s += fmt.Sprintf(", good surf at %d points, email sent", m.Alerts)
	case m.Alerts > 0:
		s += fmt.Sprintf(", good surf at %d points, no email sent", m.Alerts)
	}
	return s
}

// Notifier delivers the good-surf digest.
type Notifier interface {
	SendReport(report *models.SurfReport) error
}

// Summarizer writes a prose summary of the alert points.
type Summarizer interface {
	Summarize(ctx context.Context, points []*models.PointForecast) (*ai.Digest, error)
}

// SurfForecastAgent implements the scheduler.Agent interface. It is the only writer of
// the forecast store.
type SurfForecastAgent struct {
	config     *config.Config
	store      *storage.ForecastStore
	batch      *Batch
	notifier   Notifier
	summarizer Summarizer
	logger     *slog.Logger

	// point id -> day it was last e-mailed, so an hourly refresh alerts once a day.
	alerted map[string]string
}

func NewSurfForecastAgent(cfg *config.Config, store *storage.ForecastStore, logger *slog.Logger) *SurfForecastAgent {
	if logger == nil {
		logger = slog.Default()
	}
	return &SurfForecastAgent{
		config:  cfg,
		store:   store,
		logger:  logger.With("component", "agent"),
		alerted: make(map[string]string),
	}
}

func (a *SurfForecastAgent) Name() string {
	return "Surf Forecast Agent"
}

func (a *SurfForecastAgent) Initialize() error {
	a.logger.Info("initializing", "agent", a.Name())

	if len(a.config.Surf.Points) == 0 {
		return fmt.Errorf("no surf points configured")
	}

	if a.batch == nil {
		sc := a.config.Surf
		client := openmeteo.NewClient(openmeteo.Options{
			ForecastURL:       sc.ForecastURL,
			MarineURL:         sc.MarineURL,
			Timezone:          sc.Timezone,
			WindModels:        sc.WindModels,
			MarineModels:      sc.MarineModels,
			Timeout:           sc.RequestTimeout,
			RequestsPerSecond: sc.RequestsPerSecond,
		}, a.logger)
		a.batch = NewBatch(client, NewAssembler(), BatchOptions{
			Concurrency:  sc.Concurrency,
			PointTimeout: sc.PointTimeout,
		}, a.logger)
		a.logger.Info("open-meteo client initialized", "concurrency", sc.Concurrency)
	}

	if a.notifier == nil && a.config.Email.Enabled {
		a.notifier = email.NewSender(&a.config.Email)
		a.logger.Info("email notifier initialized", "to", a.config.Email.ToEmail)
	}

	if a.summarizer == nil && a.config.AI.Enabled {
		summarizer, err := ai.NewSummarizer(context.Background(), &a.config.AI, a.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize AI summarizer: %w", err)
		}
		a.summarizer = summarizer
		a.logger.Info("AI summarizer initialized", "model", a.config.AI.Model)
	}

	a.logger.Info("configured", "points", len(a.config.Surf.Points), "min_grade", a.config.MinGrade())
	return nil
}

func (a *SurfForecastAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	points := a.config.Surf.Points
	metrics := SurfMetrics{Points: len(points)}

	snap := a.batch.Run(ctx, points)
	metrics.Forecasts = len(snap.Forecasts)
	metrics.Failures = len(snap.Failures)

	if len(snap.Forecasts) == 0 && len(points) > 0 {
		// Keep serving the previous snapshot rather than an empty one.
		err := fmt.Errorf("all %d points failed, first error: %s", len(points), snap.Failures[0].Error)
		if events != nil && events.OnCriticalFailure != nil {
			events.OnCriticalFailure(err, time.Since(startTime))
		}
		return err
	}

	a.store.Replace(snap)

	if metrics.Failures > 0 && events != nil && events.OnPartialFailure != nil {
		ids := make([]string, len(snap.Failures))
		for i, f := range snap.Failures {
			ids[i] = f.ID
		}
		events.OnPartialFailure(fmt.Errorf("%d of %d points failed: %v", metrics.Failures, metrics.Points, ids), time.Since(startTime))
	}

	alerts := a.selectAlerts(snap)
	metrics.Alerts = len(alerts)

	if len(alerts) > 0 && a.notifier != nil {
		a.logger.Info("good surf detected, sending email", "points", len(alerts))

		report := a.buildReport(ctx, snap, alerts, events, startTime)
		if err := a.notifier.SendReport(report); err != nil {
			if events != nil && events.OnCriticalFailure != nil {
				events.OnCriticalFailure(fmt.Errorf("failed to send email report: %w", err), time.Since(startTime))
			}
			return fmt.Errorf("failed to send email report: %w", err)
		}
		metrics.EmailSent = true

		day := snap.UpdatedAt.Format("2006-01-02")
		for _, p := range alerts {
			a.alerted[p.ID] = day
		}
	}

	duration := time.Since(startTime)
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	a.logger.Info("refresh complete",
		"run_id", snap.RunID,
		"forecasts", metrics.Forecasts,
		"failures", metrics.Failures,
		"alerts", metrics.Alerts,
		"email_sent", metrics.EmailSent,
		"duration", duration)

	return nil
}

// selectAlerts returns points whose current or daily grade reaches the threshold and that
// have not been e-mailed yet today, best first.
func (a *SurfForecastAgent) selectAlerts(snap *models.ForecastSnapshot) []*models.PointForecast {
	minGrade := a.config.MinGrade()
	day := snap.UpdatedAt.Format("2006-01-02")

	var out []*models.PointForecast
	for i := range snap.Forecasts {
		f := &snap.Forecasts[i]
		if !f.PeakGrade().AtLeast(minGrade) {
			continue
		}
		if a.alerted[f.ID] == day {
			continue
		}
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PeakGrade().Rank() > out[j].PeakGrade().Rank()
	})
	return out
}

func (a *SurfForecastAgent) buildReport(ctx context.Context, snap *models.ForecastSnapshot, alerts []*models.PointForecast, events *scheduler.AgentEvents, startTime time.Time) *models.SurfReport {
	report := &models.SurfReport{
		Date:     snap.UpdatedAt,
		RunID:    snap.RunID,
		MinGrade: a.config.MinGrade(),
		Points:   alerts,
		Summary:  fmt.Sprintf("Good surf at %d point(s), grade %s or better", len(alerts), a.config.MinGrade()),
	}

	if a.summarizer == nil {
		return report
	}

	digest, err := a.summarizer.Summarize(ctx, alerts)
	if err != nil {
		// The digest still goes out without the prose summary.
		if events != nil && events.OnPartialFailure != nil {
			events.OnPartialFailure(fmt.Errorf("failed to summarize surf report: %w", err), time.Since(startTime))
		}
		a.logger.Warn("AI summary failed", "error", err)
		return report
	}

	if digest.Headline != "" {
		report.Summary = digest.Headline
	}
	report.AISummary = digest.Summary
	return report
}
