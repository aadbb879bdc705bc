// Package websearch turns Google Custom Search results into review snippets.
package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/tripster-api/internal/cache"
	"github.com/FACorreiaa/tripster-api/internal/types"
	"github.com/FACorreiaa/tripster-api/internal/upstream"
)

// DefaultReviewSuffix is appended to the place name to bias results to reviews.
const DefaultReviewSuffix = "รีวิว"

var _ Gateway = (*GatewayImpl)(nil)

type Gateway interface {
	SearchReviews(ctx context.Context, place, suffix string) ([]types.Review, error)
}

type Config struct {
	APIKey   string
	EngineID string
	Language string
	TTL      time.Duration
}

type GatewayImpl struct {
	client *upstream.Client
	cache  cache.Cache
	cfg    Config
	logger *slog.Logger
}

func NewGateway(client *upstream.Client, c cache.Cache, cfg Config, logger *slog.Logger) *GatewayImpl {
	return &GatewayImpl{client: client, cache: c, cfg: cfg, logger: logger}
}

type searchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
}

// SearchReviews searches the web for "<place> <suffix>" and maps every hit to
// an unrated review authored by its site. Without credentials it returns an
// empty list.
func (g *GatewayImpl) SearchReviews(ctx context.Context, place, suffix string) ([]types.Review, error) {
	ctx, span := otel.Tracer("WebSearchGateway").Start(ctx, "SearchReviews", trace.WithAttributes(
		attribute.String("place", place),
	))
	defer span.End()

	if g.cfg.APIKey == "" || g.cfg.EngineID == "" || place == "" {
		return []types.Review{}, nil
	}
	if suffix == "" {
		suffix = DefaultReviewSuffix
	}
	q := strings.TrimSpace(place + " " + suffix)

	reviews, err := cache.Fetch(ctx, g.cache, cache.Key("custom_search", q), g.cfg.TTL, func(ctx context.Context) ([]types.Review, error) {
		query := url.Values{
			"key": {g.cfg.APIKey},
			"cx":  {g.cfg.EngineID},
			"q":   {q},
		}
		if g.cfg.Language != "" {
			query.Set("hl", g.cfg.Language)
		}
		var res searchResponse
		if err := g.client.GetJSON(ctx, "", query, nil, &res); err != nil {
			return nil, fmt.Errorf("failed to search %q: %w", q, err)
		}
		out := make([]types.Review, 0, len(res.Items))
		for _, item := range res.Items {
			author := item.DisplayLink
			if author == "" {
				author = types.AnonymousAuthor
			}
			out = append(out, types.Review{
				Text:   item.Snippet,
				Author: author,
				Title:  item.Title,
				URL:    item.Link,
				Source: types.SourceWeb,
			})
		}
		return out, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Web search failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(reviews)))
	return reviews, nil
}
