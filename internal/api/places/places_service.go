// Package places is the primary place provider gateway (Google Places).
package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/tripster-api/internal/api"
	"github.com/FACorreiaa/tripster-api/internal/cache"
	"github.com/FACorreiaa/tripster-api/internal/types"
	"github.com/FACorreiaa/tripster-api/internal/upstream"
)

const (
	DefaultPlaceType     = "tourist_attraction"
	DefaultPhotoMaxWidth = 600

	findFields    = "place_id,name,geometry,types"
	detailsFields = "name,photos,geometry,formatted_address,types"
)

// SecondaryProvider is the part of the secondary provider the places gateway
// enriches its results with.
type SecondaryProvider interface {
	SearchLocations(ctx context.Context, query, category string) ([]types.Location, error)
	LocationDetails(ctx context.Context, locationID string) (*types.TripadvisorDetails, error)
	LocationPhotos(ctx context.Context, locationID string) ([]string, error)
}

var _ Gateway = (*GatewayImpl)(nil)

type Gateway interface {
	ResolvePlace(ctx context.Context, name, placeType string) (types.Option[types.Place], error)
	FetchPlaceDetails(ctx context.Context, placeID, tripadvisorID string) (*types.PlaceDetails, error)
	BuildPhotoURL(photoReference string, maxWidth int) string
}

type Config struct {
	APIKey        string
	Language      string
	PhotoMaxWidth int
	TTL           time.Duration
}

type GatewayImpl struct {
	client    *upstream.Client
	cache     cache.Cache
	secondary SecondaryProvider
	cfg       Config
	logger    *slog.Logger
}

func NewGateway(client *upstream.Client, c cache.Cache, secondary SecondaryProvider, cfg Config, logger *slog.Logger) *GatewayImpl {
	if cfg.PhotoMaxWidth <= 0 {
		cfg.PhotoMaxWidth = DefaultPhotoMaxWidth
	}
	return &GatewayImpl{
		client:    client,
		cache:     c,
		secondary: secondary,
		cfg:       cfg,
		logger:    logger,
	}
}

type geometry struct {
	Location *types.LatLng `json:"location"`
}

type findPlaceResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Candidates   []struct {
		PlaceID  string   `json:"place_id"`
		Name     string   `json:"name"`
		Geometry geometry `json:"geometry"`
		Types    []string `json:"types"`
	} `json:"candidates"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
		Geometry         geometry `json:"geometry"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}

func checkStatus(status, message string) error {
	switch status {
	case "", "OK", "ZERO_RESULTS":
		return nil
	default:
		return fmt.Errorf("%w: places status %s: %s", api.ErrUpstreamUnavailable, status, message)
	}
}

// ResolvePlace finds the best candidate for a free-text name. No candidate is
// a valid outcome reported as None. On a hit the first secondary provider
// location with the same name is attached.
func (g *GatewayImpl) ResolvePlace(ctx context.Context, name, placeType string) (types.Option[types.Place], error) {
	ctx, span := otel.Tracer("PlacesGateway").Start(ctx, "ResolvePlace", trace.WithAttributes(
		attribute.String("place.name", name),
		attribute.String("place.type", placeType),
	))
	defer span.End()

	if name == "" {
		return types.None[types.Place](), nil
	}
	if placeType == "" {
		placeType = DefaultPlaceType
	}

	key := cache.Key("google_place", name, placeType)
	place, err := cache.FetchPartial(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) (types.Option[types.Place], bool, error) {
		query := url.Values{
			"input":     {name},
			"inputtype": {"textquery"},
			"fields":    {findFields},
			"key":       {g.cfg.APIKey},
		}
		if g.cfg.Language != "" {
			query.Set("language", g.cfg.Language)
		}

		var res findPlaceResponse
		if err := g.client.GetJSON(ctx, "findplacefromtext/json", query, nil, &res); err != nil {
			return types.None[types.Place](), false, fmt.Errorf("failed to find place %q: %w", name, err)
		}
		if err := checkStatus(res.Status, res.ErrorMessage); err != nil {
			return types.None[types.Place](), false, err
		}
		if len(res.Candidates) == 0 {
			g.logger.InfoContext(ctx, "No place candidate", slog.String("name", name))
			return types.None[types.Place](), true, nil
		}

		candidate := res.Candidates[0]
		p := types.Place{
			PlaceID:  candidate.PlaceID,
			Name:     candidate.Name,
			Location: candidate.Geometry.Location,
			Types:    candidate.Types,
		}
		complete := true
		if g.secondary != nil {
			locations, err := g.secondary.SearchLocations(ctx, name, "")
			if err != nil {
				g.logger.WarnContext(ctx, "Secondary location lookup failed", slog.String("name", name), slog.Any("error", err))
				complete = false
			} else if len(locations) > 0 {
				p.TripadvisorLocationID = locations[0].LocationID
			}
		}
		return types.Some(p), complete, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to resolve place")
		return types.None[types.Place](), err
	}

	span.SetAttributes(attribute.Bool("place.found", place.Valid))
	return place, nil
}

// FetchPlaceDetails merges primary details with the secondary provider's
// details and photos. It returns nil for an empty placeID. A failing primary
// call fails the lookup; secondary failures only leave those fields empty and
// keep the merged result out of the cache.
func (g *GatewayImpl) FetchPlaceDetails(ctx context.Context, placeID, tripadvisorID string) (*types.PlaceDetails, error) {
	ctx, span := otel.Tracer("PlacesGateway").Start(ctx, "FetchPlaceDetails", trace.WithAttributes(
		attribute.String("place.id", placeID),
		attribute.String("tripadvisor.id", tripadvisorID),
	))
	defer span.End()

	if placeID == "" {
		return nil, nil
	}

	key := cache.Key("place_details", placeID, tripadvisorID)
	details, err := cache.FetchPartial(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) (*types.PlaceDetails, bool, error) {
		var (
			res       detailsResponse
			taDetails *types.TripadvisorDetails
			taPhotos  []string
			// Written by the secondary goroutines only on failure.
			degraded atomic.Bool
		)

		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			query := url.Values{
				"place_id": {placeID},
				"fields":   {detailsFields},
				"key":      {g.cfg.APIKey},
			}
			if g.cfg.Language != "" {
				query.Set("language", g.cfg.Language)
			}
			if err := g.client.GetJSON(egCtx, "details/json", query, nil, &res); err != nil {
				return fmt.Errorf("failed to fetch place details %s: %w", placeID, err)
			}
			return checkStatus(res.Status, res.ErrorMessage)
		})
		if tripadvisorID != "" && g.secondary != nil {
			eg.Go(func() error {
				d, err := g.secondary.LocationDetails(egCtx, tripadvisorID)
				if err != nil {
					g.logger.WarnContext(egCtx, "Secondary details lookup failed", slog.String("location_id", tripadvisorID), slog.Any("error", err))
					degraded.Store(true)
					return nil
				}
				taDetails = d
				return nil
			})
			eg.Go(func() error {
				photos, err := g.secondary.LocationPhotos(egCtx, tripadvisorID)
				if err != nil {
					g.logger.WarnContext(egCtx, "Secondary photos lookup failed", slog.String("location_id", tripadvisorID), slog.Any("error", err))
					degraded.Store(true)
					return nil
				}
				taPhotos = photos
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, false, err
		}

		photoURLs := make([]string, 0, len(res.Result.Photos)+len(taPhotos))
		for _, p := range res.Result.Photos {
			if u := g.BuildPhotoURL(p.PhotoReference, g.cfg.PhotoMaxWidth); u != "" {
				photoURLs = append(photoURLs, u)
			}
		}
		photoURLs = append(photoURLs, taPhotos...)

		d := &types.PlaceDetails{
			Name:             res.Result.Name,
			FormattedAddress: res.Result.FormattedAddress,
			Types:            res.Result.Types,
			Location:         res.Result.Geometry.Location,
			PhotoURLs:        photoURLs,
		}
		if taDetails != nil {
			d.TripadvisorDetails = *taDetails
		}
		return d, !degraded.Load(), nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch place details")
		return nil, err
	}

	if details != nil {
		span.SetAttributes(attribute.Int("photos.count", len(details.PhotoURLs)))
	}
	return details, nil
}

// BuildPhotoURL returns the provider's photo URL for a photo reference, or ""
// when the reference is empty. No request is made.
func (g *GatewayImpl) BuildPhotoURL(photoReference string, maxWidth int) string {
	if photoReference == "" {
		return ""
	}
	if maxWidth <= 0 {
		maxWidth = DefaultPhotoMaxWidth
	}
	return g.client.URL("photo", url.Values{
		"maxwidth":       {strconv.Itoa(maxWidth)},
		"photoreference": {photoReference},
		"key":            {g.cfg.APIKey},
	})
}

// ParsePhotoURL recovers the photo reference and width from a URL built by
// BuildPhotoURL.
func ParsePhotoURL(raw string) (string, int, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", 0, fmt.Errorf("invalid photo url: %w", err)
	}
	q := u.Query()
	ref := q.Get("photoreference")
	if ref == "" {
		return "", 0, errors.New("photo url has no photoreference")
	}
	width, err := strconv.Atoi(q.Get("maxwidth"))
	if err != nil {
		return "", 0, fmt.Errorf("invalid maxwidth: %w", err)
	}
	return ref, width, nil
}
