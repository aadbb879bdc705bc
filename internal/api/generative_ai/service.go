package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/tripster-api/app/observability/metrics"
	"github.com/FACorreiaa/tripster-api/internal/api"
)

const (
	DefaultModel    = "gemini-2.0-flash-001"
	DefaultLocation = "us-central1"
	DefaultTimeout  = 45 * time.Second
	providerName    = "gemini"
)

// ContentGenerator is the model call; *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ Generator = (*GeneratorImpl)(nil)

type Generator interface {
	Generate(ctx context.Context, userMessage string) (string, error)
}

type Config struct {
	Model       string
	APIKey      string
	ProjectID   string
	Location    string
	Credentials string
	Temperature float32
	Timeout     time.Duration
}

type GeneratorImpl struct {
	tokens TokenProvider
	models ContentGenerator
	cfg    Config
	logger *slog.Logger
}

// NewGenerator builds a Gemini generator. With an API key it talks to the
// Gemini API directly; otherwise it uses Vertex AI authenticated with the
// configured service account. A credential that cannot be loaded does not
// fail construction: every Generate call then reports ErrAuthFailure.
func NewGenerator(ctx context.Context, cfg Config, logger *slog.Logger) (*GeneratorImpl, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewGenerator")
	defer span.End()

	cfg = withDefaults(cfg)

	if cfg.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to create Gemini client")
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeneratorWith(nil, client.Models, cfg, logger), nil
	}

	tp, err := NewCredentialsTokenProvider(cfg.Credentials)
	if err != nil {
		logger.WarnContext(ctx, "Vertex AI credentials unavailable, plan generation will fail", slog.Any("error", err))
		span.RecordError(err)
		return NewGeneratorWith(failingTokenProvider{err: err}, nil, cfg, logger), nil
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = tp.ProjectID(ctx)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     cfg.ProjectID,
		Location:    cfg.Location,
		Credentials: tp.Credentials(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Vertex AI client")
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	span.SetStatus(codes.Ok, "Generator created")
	return NewGeneratorWith(tp, client.Models, cfg, logger), nil
}

// NewGeneratorWith assembles a generator from its parts. tokens may be nil
// when the model client authenticates by API key.
func NewGeneratorWith(tokens TokenProvider, models ContentGenerator, cfg Config, logger *slog.Logger) *GeneratorImpl {
	return &GeneratorImpl{
		tokens: tokens,
		models: models,
		cfg:    withDefaults(cfg),
		logger: logger,
	}
}

func withDefaults(cfg Config) Config {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// Generate asks the model to answer userMessage in the assistant persona.
// A failed credential exchange returns ErrAuthFailure; any other failure
// returns ErrUpstreamUnavailable.
func (g *GeneratorImpl) Generate(ctx context.Context, userMessage string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "Generate", trace.WithAttributes(
		attribute.Int("prompt.length", len(userMessage)),
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	if g.tokens != nil {
		if _, err := g.tokens.Token(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Token exchange failed")
			g.logger.ErrorContext(ctx, "Failed to fetch Vertex AI token", slog.Any("error", err))
			return "", fmt.Errorf("%w: %w", api.ErrAuthFailure, err)
		}
	}
	if g.models == nil {
		return "", fmt.Errorf("%w: no model client", api.ErrUpstreamUnavailable)
	}

	start := time.Now()
	config := &genai.GenerateContentConfig{}
	if g.cfg.Temperature > 0 {
		config.Temperature = genai.Ptr[float32](g.cfg.Temperature)
	}
	resp, err := g.models.GenerateContent(ctx, g.cfg.Model, BuildContents(userMessage), config)
	if err != nil {
		outcome := "failure"
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		metrics.RecordUpstreamRequest(ctx, providerName, outcome, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		g.logger.ErrorContext(ctx, "Vertex AI error", slog.Any("error", err))
		return "", fmt.Errorf("%w: generate content: %w", api.ErrUpstreamUnavailable, err)
	}
	metrics.RecordUpstreamRequest(ctx, providerName, "success", time.Since(start))

	text := ExtractText(resp)
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Generated")
	return text, nil
}
