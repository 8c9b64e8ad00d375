package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // surf points are forecast in named zones; do not depend on host zoneinfo

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"surfcast/internal/models"
	"surfcast/internal/surf"
)

type Config struct {
	Surf       SurfConfig    `yaml:"surf"`
	Server     ServerConfig  `yaml:"server"`
	Logging    LoggingConfig `yaml:"logging"`
	Alerts     AlertsConfig  `yaml:"alerts"`
	AI         AIConfig      `yaml:"ai"`
	Email      EmailConfig   `yaml:"email"`
	Schedule   string        `yaml:"schedule"`
	RunOnStart *bool         `yaml:"run_on_start"`
}

type SurfConfig struct {
	ForecastURL       string             `yaml:"forecast_url"`
	MarineURL         string             `yaml:"marine_url"`
	Timezone          string             `yaml:"timezone"`
	WindModels        []string           `yaml:"wind_models"`
	MarineModels      []string           `yaml:"marine_models"`
	Concurrency       int                `yaml:"concurrency"`
	RequestsPerSecond float64            `yaml:"requests_per_second"`
	RequestTimeout    time.Duration      `yaml:"request_timeout"`
	PointTimeout      time.Duration      `yaml:"point_timeout"`
	Points            []models.SurfPoint `yaml:"points"`
}

type ServerConfig struct {
	Port int `yaml:"port" env:"HTTP_PORT"`

	// Requests per second allowed on the public API, 0 disables the limit.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// A snapshot older than this is reported as stale on /api/status.
	StaleAfter time.Duration `yaml:"stale_after"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	AppEnv string `yaml:"app_env" env:"APP_ENV"` // dev or prod
}

type AlertsConfig struct {
	MinGrade string `yaml:"min_grade"`
}

type AIConfig struct {
	Enabled      bool   `yaml:"enabled"`
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type EmailConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// Load reads .env, then the YAML file named by CONFIG_FILE (default config.yaml). A missing
// default file is not an error: every setting has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = "config.yaml"
	}

	cfg, err := LoadFile(configFile)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = &Config{}
		} else {
			return nil, err
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile parses a config file without applying environment overrides or defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) finish() error {
	if err := c.applyEnv(); err != nil {
		return err
	}
	c.applyDefaults()

	if err := c.validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Email.Username == "" {
		c.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if c.Email.Password == "" {
		c.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	// Operational knobs from the environment win over the file.
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Logging.AppEnv = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Surf.Concurrency == 0 {
		c.Surf.Concurrency = 1
	}
	if c.Surf.RequestsPerSecond == 0 {
		c.Surf.RequestsPerSecond = 5
	}
	if c.Surf.RequestTimeout == 0 {
		c.Surf.RequestTimeout = 30 * time.Second
	}
	if c.Surf.PointTimeout == 0 {
		c.Surf.PointTimeout = 60 * time.Second
	}
	if c.Surf.Timezone == "" {
		c.Surf.Timezone = "Asia/Tokyo"
	}
	if len(c.Surf.Points) == 0 {
		c.Surf.Points = models.DefaultSurfPoints()
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = 20
	}
	if c.Server.StaleAfter == 0 {
		c.Server.StaleAfter = 3 * time.Hour
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.AppEnv == "" {
		c.Logging.AppEnv = "dev"
	}

	if c.Alerts.MinGrade == "" {
		c.Alerts.MinGrade = string(surf.GradeA)
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}

	if c.Schedule == "" {
		c.Schedule = "0 0 * * * *" // hourly, on the hour
	}
	if c.RunOnStart == nil {
		on := true
		c.RunOnStart = &on
	}
}

func (c *Config) validate() error {
	if c.Surf.Concurrency < 1 {
		return fmt.Errorf("surf.concurrency must be at least 1, got %d", c.Surf.Concurrency)
	}
	if c.Surf.RequestsPerSecond < 0 {
		return fmt.Errorf("surf.requests_per_second must not be negative")
	}
	if _, err := time.LoadLocation(c.Surf.Timezone); err != nil {
		return fmt.Errorf("invalid surf.timezone %q: %w", c.Surf.Timezone, err)
	}

	ids := make(map[string]bool, len(c.Surf.Points))
	for _, p := range c.Surf.Points {
		if err := p.Validate(); err != nil {
			return err
		}
		if ids[p.ID] {
			return fmt.Errorf("duplicate surf point id %q", p.ID)
		}
		ids[p.ID] = true
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.AppEnv {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", c.Logging.AppEnv)
	}
	if _, err := surf.ParseGrade(c.Alerts.MinGrade); err != nil {
		return fmt.Errorf("alerts.min_grade: %w", err)
	}

	if c.AI.Enabled && c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required when ai.enabled (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Email.Enabled {
		if c.Email.SMTPServer == "" {
			return fmt.Errorf("email.smtp_server is required when email.enabled")
		}
		if c.Email.Username == "" {
			return fmt.Errorf("Email username is required (set EMAIL_USERNAME or email.username)")
		}
		if c.Email.Password == "" {
			return fmt.Errorf("Email password is required (set EMAIL_PASSWORD or email.password)")
		}
		if c.Email.FromEmail == "" || c.Email.ToEmail == "" {
			return fmt.Errorf("email.from_email and email.to_email are required when email.enabled")
		}
	}
	return nil
}

// MinGrade is the parsed alert threshold. Only valid after Load.
func (c *Config) MinGrade() surf.Grade {
	g, _ := surf.ParseGrade(c.Alerts.MinGrade)
	return g
}

// ShouldRunOnStart reports whether a refresh runs immediately at startup.
func (c *Config) ShouldRunOnStart() bool {
	return c.RunOnStart == nil || *c.RunOnStart
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
