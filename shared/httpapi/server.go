// Package httpapi serves the forecast snapshot and run health over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"surfcast/internal/models"
	"surfcast/shared/config"
	"surfcast/shared/monitoring"
	"surfcast/shared/storage"
)

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg     config.ServerConfig
	store   *storage.ForecastStore
	monitor *monitoring.Monitor
	points  []models.SurfPoint
	engine  *gin.Engine
	logger  *slog.Logger
	now     func() time.Time
}

// New constructs a server with routes and middleware.
func New(cfg config.ServerConfig, store *storage.ForecastStore, monitor *monitoring.Monitor, points []models.SurfPoint, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(corsMiddleware())

	if cfg.RateLimit > 0 {
		engine.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1)), logger))
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		monitor: monitor,
		points:  points,
		engine:  engine,
		logger:  logger,
		now:     time.Now,
	}
	s.registerRoutes()
	return s
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	monitoring.RegisterHealthRoutes(s.engine, s.monitor)

	api := s.engine.Group("/api")
	{
		api.GET("/forecast", s.handleListForecasts)
		api.GET("/forecast/:id", s.handleGetForecast)
		api.GET("/points", s.handleListPoints)
		api.GET("/status", s.handleStatus)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if len(c.Errors) > 0 {
			for _, e := range c.Errors.Errors() {
				logger.Error("request error", "path", path, "error", e)
			}
			return
		}
		logger.Debug("request",
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func rateLimitMiddleware(limiter *rate.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			logger.Warn("rate limit exceeded", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
