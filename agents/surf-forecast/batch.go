package surfforecast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"surfcast/internal/models"
	"surfcast/internal/openmeteo"
)

// Fetcher retrieves the two payloads a point forecast is built from.
type Fetcher interface {
	FetchWind(ctx context.Context, lat, lon float64) (*openmeteo.Response, error)
	FetchMarine(ctx context.Context, lat, lon float64) (*openmeteo.Response, error)
}

type BatchOptions struct {
	// Concurrency is the number of points fetched at once. 1 keeps the batch sequential.
	Concurrency  int
	PointTimeout time.Duration
}

// Batch forecasts every point of the catalog. A failing point is recorded and skipped; it
// never aborts the others.
type Batch struct {
	fetcher   Fetcher
	assembler *Assembler
	opts      BatchOptions
	logger    *slog.Logger
	clock     func() time.Time
	newRunID  func() string
}

func NewBatch(fetcher Fetcher, assembler *Assembler, opts BatchOptions, logger *slog.Logger) *Batch {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{
		fetcher:   fetcher,
		assembler: assembler,
		opts:      opts,
		logger:    logger.With("component", "batch"),
		clock:     time.Now,
		newRunID:  uuid.NewString,
	}
}

// Run forecasts points and returns the snapshot in catalog order. All points are assessed
// against the same instant.
func (b *Batch) Run(ctx context.Context, points []models.SurfPoint) *models.ForecastSnapshot {
	now := b.clock()
	runID := b.newRunID()
	logger := b.logger.With("run_id", runID)

	results := make([]*models.PointForecast, len(points))
	errs := make([]error, len(points))

	var g errgroup.Group
	g.SetLimit(b.opts.Concurrency)

	for i, point := range points {
		g.Go(func() error {
			results[i], errs[i] = b.forecastPoint(ctx, point, now)
			// Errors stay per point so the rest of the batch carries on.
			return nil
		})
	}
	_ = g.Wait()

	snap := &models.ForecastSnapshot{
		RunID:     runID,
		UpdatedAt: now,
		Forecasts: make([]models.PointForecast, 0, len(points)),
		Failures:  []models.PointFailure{},
	}
	for i, point := range points {
		if errs[i] != nil {
			logger.Error("point forecast failed", "point", point.ID, "name", point.Name, "error", errs[i])
			snap.Failures = append(snap.Failures, models.PointFailure{
				ID:    point.ID,
				Name:  point.Name,
				Error: errs[i].Error(),
			})
			continue
		}
		snap.Forecasts = append(snap.Forecasts, *results[i])
	}

	logger.Info("batch complete", "forecasts", len(snap.Forecasts), "failures", len(snap.Failures))
	return snap
}

func (b *Batch) forecastPoint(ctx context.Context, point models.SurfPoint, now time.Time) (*models.PointForecast, error) {
	if b.opts.PointTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.PointTimeout)
		defer cancel()
	}

	var wind, marine *openmeteo.Response
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wind, err = b.fetcher.FetchWind(gctx, point.Latitude, point.Longitude)
		return err
	})
	g.Go(func() error {
		var err error
		marine, err = b.fetcher.FetchMarine(gctx, point.Latitude, point.Longitude)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("point %s: %w", point.ID, err)
	}

	forecast, err := b.assembler.Assemble(point, wind, marine, now)
	if err != nil {
		return nil, fmt.Errorf("point %s: %w", point.ID, err)
	}
	return forecast, nil
}
