package container

import (
	"context"
	"errors"
	"log/slog"

	"github.com/FACorreiaa/tripster-api/config"
	generativeAI "github.com/FACorreiaa/tripster-api/internal/api/generative_ai"
	"github.com/FACorreiaa/tripster-api/internal/api/places"
	"github.com/FACorreiaa/tripster-api/internal/api/travel"
	"github.com/FACorreiaa/tripster-api/internal/api/tripadvisor"
	"github.com/FACorreiaa/tripster-api/internal/api/websearch"
	"github.com/FACorreiaa/tripster-api/internal/cache"
	"github.com/FACorreiaa/tripster-api/internal/upstream"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Cache         cache.Cache
	TravelService *travel.ServiceImpl
	TravelHandler *travel.Handler

	redis *cache.RedisCache
}

// Option overrides a dependency the container would otherwise build itself.
type Option func(*options)

type options struct {
	generator travel.TextGenerator
	cache     cache.Cache
}

var newGenerator = generativeAI.NewGenerator

// WithGenerator replaces the Gemini-backed plan generator.
func WithGenerator(g travel.TextGenerator) Option {
	return func(o *options) { o.generator = g }
}

// WithCache replaces the configured cache backend.
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{Config: cfg, Logger: logger}

	// Cache
	c.Cache = o.cache
	if c.Cache == nil {
		c.Cache = c.newCache(ctx)
	}
	ttl := cfg.Cache.TTL

	// Upstream clients
	googleClient := newClient("google_places", cfg.Upstream.Google.ProviderConfig, logger)
	tripadvisorClient := newClient("tripadvisor", cfg.Upstream.Tripadvisor, logger)
	searchClient := newClient("custom_search", cfg.Upstream.WebSearch.ProviderConfig, logger)

	// Gateways
	tripadvisorGateway := tripadvisor.NewGateway(tripadvisorClient, c.Cache, tripadvisor.Config{
		APIKey:   cfg.Upstream.Tripadvisor.APIKey,
		Language: cfg.Upstream.Language,
		TTL:      ttl,
	}, logger)

	placesGateway := places.NewGateway(googleClient, c.Cache, tripadvisorGateway, places.Config{
		APIKey:        cfg.Upstream.Google.APIKey,
		Language:      cfg.Upstream.Language,
		PhotoMaxWidth: cfg.Upstream.Google.PhotoMaxWidth,
		TTL:           ttl,
	}, logger)

	searchGateway := websearch.NewGateway(searchClient, c.Cache, websearch.Config{
		APIKey:   cfg.Upstream.WebSearch.APIKey,
		EngineID: cfg.Upstream.WebSearch.EngineID,
		Language: cfg.Upstream.Language,
		TTL:      ttl,
	}, logger)

	generator := o.generator
	if generator == nil {
		g, err := newGenerator(ctx, generativeAI.Config{
			Model:       cfg.AI.Model,
			APIKey:      cfg.AI.APIKey,
			ProjectID:   cfg.AI.ProjectID,
			Location:    cfg.AI.Location,
			Credentials: cfg.AI.Credentials,
			Temperature: cfg.AI.Temperature,
			Timeout:     cfg.AI.Timeout,
		}, logger)
		if err != nil {
			logger.Error("Failed to create plan generator", slog.Any("error", err))
			return nil, errors.Join(err, c.Close())
		}
		generator = g
	}

	// Aggregator and handler
	c.TravelService = travel.NewServiceImpl(placesGateway, tripadvisorGateway, searchGateway, generator, logger)
	c.TravelHandler = travel.NewHandler(c.TravelService, logger)

	return c, nil
}

// newCache returns the configured backend. An unreachable Redis degrades to
// the in-process cache so the service still starts.
func (c *Container) newCache(ctx context.Context) cache.Cache {
	cfg := c.Config.Cache
	if cfg.Backend == "redis" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		}, c.Logger)
		if err == nil {
			c.redis = rc
			return rc
		}
		c.Logger.Warn("Redis unavailable, falling back to in-memory cache", slog.Any("error", err))
	}
	return cache.NewMemoryCache(cfg.TTL, cfg.CleanupInterval)
}

func newClient(name string, p config.ProviderConfig, logger *slog.Logger) *upstream.Client {
	return upstream.New(upstream.Options{
		Name:      name,
		BaseURL:   p.BaseURL,
		Timeout:   p.Timeout,
		RateLimit: p.RateLimit,
		Burst:     p.Burst,
	}, logger)
}

// Close releases all resources held by the container
func (c *Container) Close() error {
	var errs []error
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	return errors.Join(errs...)
}
