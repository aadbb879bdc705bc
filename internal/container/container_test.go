package container

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tripster-api/config"
	generativeAI "github.com/FACorreiaa/tripster-api/internal/api/generative_ai"
	"github.com/FACorreiaa/tripster-api/internal/cache"
)

type fixedGenerator struct{}

func (fixedGenerator) Generate(context.Context, string) (string, error) { return "plan", nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load([]byte("cache:\n  backend: memory\n  ttl: 1m\n"))
	require.NoError(t, err)
	return &cfg
}

func TestNewContainer_WiresHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := NewContainer(context.Background(), testConfig(t), logger, WithGenerator(fixedGenerator{}))
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.TravelService)
	assert.NotNil(t, c.TravelHandler)
	assert.IsType(t, &cache.MemoryCache{}, c.Cache)
}

func TestNewContainer_UnreachableRedisFallsBackToMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig(t)
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Addr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewContainer(ctx, cfg, logger, WithGenerator(fixedGenerator{}))
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &cache.MemoryCache{}, c.Cache)
	assert.NoError(t, c.Close())
}

func TestNewContainer_WithCache(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mem := cache.NewMemoryCache(time.Minute, time.Minute)

	c, err := NewContainer(context.Background(), testConfig(t), logger, WithGenerator(fixedGenerator{}), WithCache(mem))
	require.NoError(t, err)

	assert.Same(t, mem, c.Cache)
}

func TestNewContainer_GeneratorFailureReturnsError(t *testing.T) {
	genErr := errors.New("vertex ai unreachable")
	orig := newGenerator
	newGenerator = func(context.Context, generativeAI.Config, *slog.Logger) (*generativeAI.GeneratorImpl, error) {
		return nil, genErr
	}
	t.Cleanup(func() { newGenerator = orig })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewContainer(context.Background(), testConfig(t), logger)

	require.Error(t, err)
	assert.ErrorIs(t, err, genErr)
	assert.Nil(t, c)
}
