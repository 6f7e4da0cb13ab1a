package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"golang.org/x/time/rate"

	"catalog-import/internal/metrics"
)

// Generator sends one prompt to a text model and returns the raw JSON text it produced.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VertexConfig holds the settings of the Vertex AI generator.
type VertexConfig struct {
	ProjectID string
	Region    string
	Model     string
	Timeout   time.Duration
	// RatePerSecond caps model calls across the process.
	RatePerSecond float64
}

// VertexGenerator calls a Gemini model through Vertex AI with JSON output forced.
type VertexGenerator struct {
	model       *genai.GenerativeModel
	baseClient  *genai.Client
	rateLimiter *rate.Limiter
	timeout     time.Duration
}

// NewVertexGenerator creates a generator with the catalog system instruction installed.
func NewVertexGenerator(ctx context.Context, cfg VertexConfig) (*VertexGenerator, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("new vertex generator: project id and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := baseClient.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemPrompt)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}

	return &VertexGenerator{
		model:       model,
		baseClient:  baseClient,
		rateLimiter: rate.NewLimiter(limit, 1),
		timeout:     cfg.Timeout,
	}, nil
}

// Generate waits for the rate limiter, then calls the model under the configured timeout.
func (g *VertexGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limiter: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	timer := metrics.NewTimer()
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	timer.ObserveDuration(metrics.ModelCallDuration)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return extractJSONContent(resp), nil
}

// Close releases the underlying client.
func (g *VertexGenerator) Close() error {
	if g.baseClient != nil {
		return g.baseClient.Close()
	}
	return nil
}

// extractJSONContent gets the text of the first candidate with markdown fences removed.
func extractJSONContent(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return stripFences(sb.String())
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
