// Package fallback decides what a failed aggregation branch is replaced with.
package fallback

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripster-api/app/observability/metrics"
	"github.com/FACorreiaa/tripster-api/internal/api"
)

// Attempt runs fn and returns its result. When fn fails, the failure is
// logged and def is returned instead, except for authentication failures,
// which are returned unchanged.
func Attempt[T any](ctx context.Context, logger *slog.Logger, branch string, def T, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, api.ErrAuthFailure) {
		return v, err
	}

	logger.WarnContext(ctx, "Branch failed, using fallback",
		slog.String("branch", branch),
		slog.Any("error", err))
	trace.SpanFromContext(ctx).AddEvent("Fallback substituted", trace.WithAttributes(
		attribute.String("branch", branch),
		attribute.String("error", err.Error()),
	))
	metrics.RecordFallback(ctx, branch)
	return def, nil
}

// Empty returns a non-nil empty slice so fallbacks encode as [] rather than null.
func Empty[T any]() []T {
	return []T{}
}
