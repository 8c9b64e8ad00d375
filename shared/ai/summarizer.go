package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"surfcast/internal/models"
	"surfcast/shared/config"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Digest is the natural-language surf report written by the model.
type Digest struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	BestPoint string `json:"best_point"`
}

// Summarizer turns the points that made the alert threshold into a short surf report.
type Summarizer struct {
	models generator
	model  string
	logger *slog.Logger
}

func NewSummarizer(ctx context.Context, cfg *config.AIConfig, logger *slog.Logger) (*Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		models: client.Models,
		model:  cfg.Model,
		logger: logger.With("component", "ai"),
	}, nil
}

func (s *Summarizer) Summarize(ctx context.Context, points []*models.PointForecast) (*Digest, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to summarize")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(buildPrompt(points))}, genai.RoleUser),
	}

	result, err := s.models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate surf summary: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, ErrEmptyResponse
	}

	digest, err := parseDigest(text)
	if err != nil {
		// A plain-prose answer is still a usable summary.
		s.logger.Warn("model did not return JSON, using raw text", "error", err)
		return &Digest{Summary: text}, nil
	}
	return digest, nil
}

func buildPrompt(points []*models.PointForecast) string {
	var b strings.Builder
	b.WriteString(`You are a surf forecaster writing a short morning report for local surfers.

The following surf points are rated good right now or later this week. Grades run S (best), A, B, C, D.
Heights are effective wave heights at the beach in metres; wind speeds are in m/s.

POINTS:
`)
	for _, p := range points {
		fmt.Fprintf(&b, "- %s (id %s, faces %s): now %s %.1fm %s, period %.0fs, wind %.1fm/s from %s, grade %s\n",
			p.Beach, p.ID, p.BeachFacing, p.Height, p.HeightMeters, p.WaveDirectionStr,
			p.Period, p.WindSpeed, p.WindDirection, p.Quality)
		for _, d := range p.Daily {
			if d.Quality.AtLeast(p.Quality) && d.Quality != p.Quality {
				fmt.Fprintf(&b, "    %s: %s %.1fm, wind from %s, grade %s\n", d.Time, d.WaveLabel, d.WaveHeight, d.WindDir, d.Quality)
			}
		}
	}

	b.WriteString(`
INSTRUCTIONS:
1. Pick the single best point and say when to go.
2. Keep the summary to 3 sentences, plain and practical.
3. Do not invent data that is not listed above.

Reply in the following JSON format:
{
  "headline": "one short line",
  "summary": "2-3 sentences",
  "best_point": "id of the best point"
}`)
	return b.String()
}

func parseDigest(response string) (*Digest, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var d Digest
	if err := json.Unmarshal([]byte(response[start:end+1]), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal digest: %w", err)
	}
	if d.Summary == "" {
		return nil, fmt.Errorf("digest summary is required but was empty")
	}
	return &d, nil
}
