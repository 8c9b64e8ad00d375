package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	surfforecast "surfcast/agents/surf-forecast"
	"surfcast/shared/config"
	"surfcast/shared/httpapi"
	"surfcast/shared/logging"
	"surfcast/shared/monitoring"
	"surfcast/shared/scheduler"
	"surfcast/shared/storage"
)

func main() {
	once := flag.Bool("once", false, "run a single refresh, print the forecast table and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging, "surfcast")

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := storage.NewForecastStore(cfg.Server.StaleAfter)
	monitor := monitoring.NewMonitor(logger)
	agent := surfforecast.NewSurfForecastAgent(cfg, store, logger)
	s := scheduler.New(scheduler.Options{
		Schedule:   cfg.Schedule,
		RunOnStart: cfg.ShouldRunOnStart(),
	}, agent, monitor, logger)

	if *once {
		if err := agent.Initialize(); err != nil {
			log.Fatalf("Failed to initialize agent: %v", err)
		}

		runErr := s.RunOnce(ctx)
		if snap, ok := store.Snapshot(); ok {
			fmt.Print(surfforecast.RenderTable(snap))
		}
		if runErr != nil {
			log.Fatalf("Failed to run: %v", runErr)
		}
		return
	}

	srv := httpapi.New(cfg.Server, store, monitor, cfg.Surf.Points, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		if err := s.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("surfcast stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("surfcast stopped")
}
