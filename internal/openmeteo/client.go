package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultMarineURL   = "https://marine-api.open-meteo.com/v1/marine"
	DefaultTimezone    = "Asia/Tokyo"
)

// ErrUpstream is returned when Open-Meteo answers with an error payload or a non-200 status.
var ErrUpstream = errors.New("open-meteo upstream error")

// Variables requested from the forecast (wind) endpoint.
var (
	WindCurrentVars = []string{"wind_speed_10m", "wind_direction_10m", "visibility", "cloud_cover"}
	WindHourlyVars  = []string{"wind_speed_10m", "wind_direction_10m"}
	WindDailyVars   = []string{"wind_speed_10m_max", "wind_direction_10m_dominant", "weather_code"}
)

// Variables requested from the marine endpoint.
var (
	MarineCurrentVars = []string{"wave_height", "wave_direction", "wave_period", "sea_surface_temperature"}
	MarineHourlyVars  = []string{"wave_height", "wave_direction", "wave_period", "sea_surface_temperature", "sea_level_height_msl"}
	MarineDailyVars   = []string{"wave_height_max", "wave_direction_dominant"}
)

type Options struct {
	ForecastURL       string
	MarineURL         string
	Timezone          string
	WindModels        []string
	MarineModels      []string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client fetches wind and marine payloads. All requests share one rate limiter so a batch
// never bursts against the public API.
type Client struct {
	forecastURL  string
	marineURL    string
	timezone     string
	windModels   []string
	marineModels []string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger
}

func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.ForecastURL == "" {
		opts.ForecastURL = DefaultForecastURL
	}
	if opts.MarineURL == "" {
		opts.MarineURL = DefaultMarineURL
	}
	if opts.Timezone == "" {
		opts.Timezone = DefaultTimezone
	}
	if len(opts.WindModels) == 0 {
		opts.WindModels = []string{"best_match"}
	}
	if len(opts.MarineModels) == 0 {
		opts.MarineModels = []string{"best_match", "gwam"}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		forecastURL:  opts.ForecastURL,
		marineURL:    opts.MarineURL,
		timezone:     opts.Timezone,
		windModels:   opts.WindModels,
		marineModels: opts.MarineModels,
		httpClient:   &http.Client{Timeout: opts.Timeout},
		limiter:      rate.NewLimiter(limit, 1),
		logger:       logger.With("component", "openmeteo"),
	}
}

// FetchWind fetches current, hourly and daily wind and sky data for a coordinate.
func (c *Client) FetchWind(ctx context.Context, lat, lon float64) (*Response, error) {
	q := c.baseQuery(lat, lon)
	q.Set("current", strings.Join(WindCurrentVars, ","))
	q.Set("hourly", strings.Join(WindHourlyVars, ","))
	q.Set("daily", strings.Join(WindDailyVars, ","))
	q.Set("models", strings.Join(c.windModels, ","))

	resp, err := c.get(ctx, c.forecastURL, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wind data: %w", err)
	}
	return resp, nil
}

// FetchMarine fetches current, hourly and daily wave data for a coordinate.
func (c *Client) FetchMarine(ctx context.Context, lat, lon float64) (*Response, error) {
	q := c.baseQuery(lat, lon)
	q.Set("current", strings.Join(MarineCurrentVars, ","))
	q.Set("hourly", strings.Join(MarineHourlyVars, ","))
	q.Set("daily", strings.Join(MarineDailyVars, ","))
	q.Set("models", strings.Join(c.marineModels, ","))

	resp, err := c.get(ctx, c.marineURL, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch marine data: %w", err)
	}
	return resp, nil
}

func (c *Client) baseQuery(lat, lon float64) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("timezone", c.timezone)
	return q
}

func (c *Client) get(ctx context.Context, base string, q url.Values) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := base + "?" + q.Encode()
	c.logger.Debug("fetching", "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var payload Response
		if json.Unmarshal(body, &payload) == nil && payload.Reason != "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, payload.Reason)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Error {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, payload.Reason)
	}

	return &payload, nil
}
