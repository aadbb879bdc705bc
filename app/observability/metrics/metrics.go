package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	CacheLookupsTotal        metric.Int64Counter
	UpstreamRequestsTotal    metric.Int64Counter
	UpstreamDurationSeconds  metric.Float64Histogram
	FallbackSubstitutedTotal metric.Int64Counter
	AggregationDuration      metric.Float64Histogram
}

var (
	// Global instance of AppMetrics (initialized once)
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider, so it must run
// after the provider is installed to export anything.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("Tripster")
		var err error
		m := &AppMetrics{}

		m.CacheLookupsTotal, err = meter.Int64Counter(
			"cache_lookups_total",
			metric.WithDescription("Cache lookups by gateway and result"),
			metric.WithUnit("{lookup}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create cache_lookups_total: %v", err)
		}

		m.UpstreamRequestsTotal, err = meter.Int64Counter(
			"upstream_requests_total",
			metric.WithDescription("Outbound vendor API requests by provider and outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_requests_total: %v", err)
		}

		m.UpstreamDurationSeconds, err = meter.Float64Histogram(
			"upstream_request_duration_seconds",
			metric.WithDescription("Duration of outbound vendor API requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create upstream_request_duration_seconds: %v", err)
		}

		m.FallbackSubstitutedTotal, err = meter.Int64Counter(
			"fallback_substitutions_total",
			metric.WithDescription("Failed aggregation branches replaced by their fallback value"),
			metric.WithUnit("{branch}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create fallback_substitutions_total: %v", err)
		}

		m.AggregationDuration, err = meter.Float64Histogram(
			"aggregation_duration_seconds",
			metric.WithDescription("End-to-end duration of an aggregated endpoint in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create aggregation_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global AppMetrics, initializing it against the current
// MeterProvider on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

func RecordCacheLookup(ctx context.Context, gateway string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	Get().CacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("gateway", gateway),
		attribute.String("result", result),
	))
}

func RecordUpstreamRequest(ctx context.Context, provider, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("provider", provider), attribute.String("outcome", outcome))
	Get().UpstreamRequestsTotal.Add(ctx, 1, attrs)
	Get().UpstreamDurationSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("provider", provider)))
}

func RecordFallback(ctx context.Context, branch string) {
	Get().FallbackSubstitutedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("branch", branch)))
}

func RecordAggregation(ctx context.Context, endpoint string, elapsed time.Duration) {
	Get().AggregationDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("endpoint", endpoint)))
}
