// Package cache provides the process-wide TTL cache that sits in front of
// every upstream gateway.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripster-api/app/observability/metrics"
)

// DefaultTTL is applied when a caller passes a non-positive ttl.
const DefaultTTL = time.Hour

// Cache is a key to value store with per-entry expiry measured from write
// time. Operations never fail: backend errors read as a miss. Values are
// stored serialized, so callers always receive a private copy.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Has(ctx context.Context, key string) bool
}

// Key builds a deterministic cache key from a gateway name and its inputs.
// String parts are quoted so a separator inside an input cannot make two
// different inputs share a key.
func Key(gateway string, parts ...any) string {
	var b strings.Builder
	b.WriteString(gateway)
	for _, p := range parts {
		b.WriteByte(':')
		switch v := p.(type) {
		case string:
			b.WriteString(strconv.Quote(v))
		case float64:
			b.WriteString(fmt.Sprintf("%.6f", v))
		default:
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}

// Fetch returns the cached value for key, or calls fetch and caches its
// result for ttl. Errors from fetch are returned and never cached. Two
// concurrent misses for one key both call fetch; the last write wins.
func Fetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	return FetchPartial(ctx, c, key, ttl, func(ctx context.Context) (T, bool, error) {
		v, err := fetch(ctx)
		return v, true, err
	})
}

// FetchPartial is Fetch for values assembled from several sources. fetch
// reports whether the value is complete; an incomplete value is returned to
// the caller but not cached, so the next lookup tries again.
func FetchPartial[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, bool, error)) (T, error) {
	ctx, span := otel.Tracer("Cache").Start(ctx, "Fetch", trace.WithAttributes(
		attribute.String("cache.key", key),
	))
	defer span.End()

	gateway := strings.SplitN(key, ":", 2)[0]
	if raw, ok := c.Get(ctx, key); ok {
		var cached T
		err := json.Unmarshal(raw, &cached)
		if err == nil {
			span.AddEvent("Cache hit")
			metrics.RecordCacheLookup(ctx, gateway, true)
			return cached, nil
		}
		slog.WarnContext(ctx, "Discarding undecodable cache entry", slog.String("cache_key", key), slog.Any("error", err))
	}
	span.AddEvent("Cache miss")
	metrics.RecordCacheLookup(ctx, gateway, false)

	value, complete, err := fetch(ctx)
	if err != nil {
		span.RecordError(err)
		return value, err
	}
	if !complete {
		span.AddEvent("Partial value not cached")
		return value, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		slog.WarnContext(ctx, "Failed to encode value for cache", slog.String("cache_key", key), slog.Any("error", err))
		return value, nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.Set(ctx, key, raw, ttl)
	return value, nil
}
