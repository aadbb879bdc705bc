// Package tripadvisor is the secondary provider gateway (Tripadvisor Content API).
package tripadvisor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/tripster-api/internal/cache"
	"github.com/FACorreiaa/tripster-api/internal/types"
	"github.com/FACorreiaa/tripster-api/internal/upstream"
)

const (
	LogoURL     = "https://static.tamgrt.com/static/img/tripadvisor_logo_115x18.gif"
	HomepageURL = "https://www.tripadvisor.com"
)

// nearbyCategories are queried in this order; results keep it.
var nearbyCategories = []struct {
	query    string
	category string
}{
	{"attractions", types.CategoryAttraction},
	{"hotels", types.CategoryHotel},
	{"restaurants", types.CategoryRestaurant},
}

var _ Gateway = (*GatewayImpl)(nil)

type Gateway interface {
	SearchLocations(ctx context.Context, query, category string) ([]types.Location, error)
	LocationDetails(ctx context.Context, locationID string) (*types.TripadvisorDetails, error)
	LocationPhotos(ctx context.Context, locationID string) ([]string, error)
	Landmarks(ctx context.Context, destination string) ([]types.Landmark, error)
	Reviews(ctx context.Context, locationID string) ([]types.Review, error)
	Nearby(ctx context.Context, lat, lng float64) ([]types.NearbyItem, error)
	Hotels(ctx context.Context, placeName string) ([]types.Hotel, error)
}

type Config struct {
	APIKey   string
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
	return &GatewayImpl{
		client: client,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

func (g *GatewayImpl) query(extra url.Values) url.Values {
	q := url.Values{"key": {g.cfg.APIKey}}
	if g.cfg.Language != "" {
		q.Set("language", g.cfg.Language)
	}
	for k, v := range extra {
		q[k] = v
	}
	return q
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("TripadvisorGateway").Start(ctx, name, trace.WithAttributes(attrs...))
}

func fail(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}

// SearchLocations returns the provider's locations matching query. It
// returns an empty list without calling out when no API key is configured or
// query is empty.
func (g *GatewayImpl) SearchLocations(ctx context.Context, query, category string) ([]types.Location, error) {
	ctx, span := startSpan(ctx, "SearchLocations", attribute.String("query", query), attribute.String("category", category))
	defer span.End()

	if g.cfg.APIKey == "" || query == "" {
		return []types.Location{}, nil
	}

	key := cache.Key("tripadvisor_search", query, category)
	locations, err := cache.Fetch(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) ([]types.Location, error) {
		q := url.Values{"searchQuery": {query}}
		if category != "" {
			q.Set("category", category)
		}
		var res listResponse
		if err := g.client.GetJSON(ctx, "location/search", g.query(q), nil, &res); err != nil {
			return nil, fmt.Errorf("failed to search locations %q: %w", query, err)
		}
		out := make([]types.Location, 0, len(res.Data))
		for _, item := range res.Data {
			out = append(out, types.Location{
				LocationID: item.LocationID,
				Name:       item.Name,
				Address:    item.Address.AddressString,
			})
		}
		return out, nil
	})
	if err != nil {
		fail(span, err, "Failed to search locations")
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(locations)))
	return locations, nil
}

// LocationDetails returns nil when no API key is configured or the id is empty.
func (g *GatewayImpl) LocationDetails(ctx context.Context, locationID string) (*types.TripadvisorDetails, error) {
	ctx, span := startSpan(ctx, "LocationDetails", attribute.String("location.id", locationID))
	defer span.End()

	if g.cfg.APIKey == "" || locationID == "" {
		return nil, nil
	}

	key := cache.Key("tripadvisor_details", locationID)
	details, err := cache.Fetch(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) (*types.TripadvisorDetails, error) {
		var res detailsResponse
		path := "location/" + url.PathEscape(locationID) + "/details"
		if err := g.client.GetJSON(ctx, path, g.query(nil), nil, &res); err != nil {
			return nil, fmt.Errorf("failed to fetch location details %s: %w", locationID, err)
		}
		id := res.LocationID
		if id == "" {
			id = locationID
		}
		return &types.TripadvisorDetails{
			LocationID:  id,
			Name:        res.Name,
			Description: res.Description,
			WebURL:      res.WebURL,
			Rating:      res.Rating.value,
			NumReviews:  int(res.NumReviews.value),
			RatingImage: res.RatingImageURL,
			Latitude:    res.Latitude.value,
			Longitude:   res.Longitude.value,
			Address:     res.Address.AddressString,
		}, nil
	})
	if err != nil {
		fail(span, err, "Failed to fetch location details")
		return nil, err
	}
	return details, nil
}

// LocationPhotos returns photo URLs for a location, largest rendition first
// available.
func (g *GatewayImpl) LocationPhotos(ctx context.Context, locationID string) ([]string, error) {
	ctx, span := startSpan(ctx, "LocationPhotos", attribute.String("location.id", locationID))
	defer span.End()

	if g.cfg.APIKey == "" || locationID == "" {
		return []string{}, nil
	}

	key := cache.Key("tripadvisor_photos", locationID)
	photos, err := cache.Fetch(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) ([]string, error) {
		var res photosResponse
		path := "location/" + url.PathEscape(locationID) + "/photos"
		if err := g.client.GetJSON(ctx, path, g.query(nil), nil, &res); err != nil {
			return nil, fmt.Errorf("failed to fetch location photos %s: %w", locationID, err)
		}
		out := make([]string, 0, len(res.Data))
		for _, p := range res.Data {
			for _, img := range []*image{p.Images.Original, p.Images.Large, p.Images.Medium} {
				if img != nil && img.URL != "" {
					out = append(out, img.URL)
					break
				}
			}
		}
		return out, nil
	})
	if err != nil {
		fail(span, err, "Failed to fetch location photos")
		return nil, err
	}
	return photos, nil
}

// Landmarks resolves destination to a provider location and lists the
// attractions around it. A destination the provider does not know yields an
// empty list.
func (g *GatewayImpl) Landmarks(ctx context.Context, destination string) ([]types.Landmark, error) {
	ctx, span := startSpan(ctx, "Landmarks", attribute.String("destination", destination))
	defer span.End()

	if g.cfg.APIKey == "" || destination == "" {
		return []types.Landmark{}, nil
	}

	key := cache.Key("tripadvisor_landmarks", destination)
	landmarks, err := cache.Fetch(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) ([]types.Landmark, error) {
		locations, err := g.SearchLocations(ctx, destination, "")
		if err != nil {
			return nil, err
		}
		if len(locations) == 0 {
			return []types.Landmark{}, nil
		}
		details, err := g.LocationDetails(ctx, locations[0].LocationID)
		if err != nil {
			return nil, err
		}
		if details == nil || (details.Latitude == 0 && details.Longitude == 0) {
			g.logger.InfoContext(ctx, "Destination has no coordinates", slog.String("destination", destination))
			return []types.Landmark{}, nil
		}

		items, err := g.nearbySearch(ctx, details.Latitude, details.Longitude, "attractions")
		if err != nil {
			return nil, err
		}
		out := make([]types.Landmark, 0, len(items))
		for _, item := range items {
			out = append(out, types.Landmark{
				LocationID: item.LocationID,
				Name:       item.Name,
				Address:    item.Address.AddressString,
				Distance:   item.Distance.ptr(),
				Category:   types.CategoryAttraction,
			})
		}
		return out, nil
	})
	if err != nil {
		fail(span, err, "Failed to fetch landmarks")
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(landmarks)))
	return landmarks, nil
}

func (g *GatewayImpl) Reviews(ctx context.Context, locationID string) ([]types.Review, error) {
	ctx, span := startSpan(ctx, "Reviews", attribute.String("location.id", locationID))
	defer span.End()

	if g.cfg.APIKey == "" || locationID == "" {
		return []types.Review{}, nil
	}

	key := cache.Key("tripadvisor_reviews", locationID)
	reviews, err := cache.Fetch(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) ([]types.Review, error) {
		var res reviewsResponse
		path := "location/" + url.PathEscape(locationID) + "/reviews"
		if err := g.client.GetJSON(ctx, path, g.query(nil), nil, &res); err != nil {
			return nil, fmt.Errorf("failed to fetch reviews %s: %w", locationID, err)
		}
		out := make([]types.Review, 0, len(res.Data))
		for _, r := range res.Data {
			author := r.User.Username
			if author == "" {
				author = types.AnonymousAuthor
			}
			out = append(out, types.Review{
				Text:   r.Text,
				Rating: r.Rating.value,
				Author: author,
				Date:   r.PublishedDate,
				Title:  r.Title,
				URL:    r.URL,
				Source: types.SourceTripadvisor,
			})
		}
		return out, nil
	})
	if err != nil {
		fail(span, err, "Failed to fetch reviews")
		return nil, err
	}
	return reviews, nil
}

// Nearby lists attractions, hotels and restaurants around a coordinate pair,
// queried concurrently and returned in that category order.
func (g *GatewayImpl) Nearby(ctx context.Context, lat, lng float64) ([]types.NearbyItem, error) {
	ctx, span := startSpan(ctx, "Nearby", attribute.Float64("lat", lat), attribute.Float64("lng", lng))
	defer span.End()

	if g.cfg.APIKey == "" {
		return []types.NearbyItem{}, nil
	}

	key := cache.Key("tripadvisor_nearby", lat, lng)
	items, err := cache.Fetch(ctx, g.cache, key, g.cfg.TTL, func(ctx context.Context) ([]types.NearbyItem, error) {
		results := make([][]types.NearbyItem, len(nearbyCategories))
		eg, egCtx := errgroup.WithContext(ctx)
		for i, c := range nearbyCategories {
			eg.Go(func() error {
				found, err := g.nearbySearch(egCtx, lat, lng, c.query)
				if err != nil {
					return err
				}
				batch := make([]types.NearbyItem, 0, len(found))
				for _, item := range found {
					batch = append(batch, types.NearbyItem{
						LocationID: item.LocationID,
						Name:       item.Name,
						Distance:   item.Distance.ptr(),
						Category:   c.category,
					})
				}
				results[i] = batch
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		out := make([]types.NearbyItem, 0)
		for _, batch := range results {
			out = append(out, batch...)
		}
		return out, nil
	})
	if err != nil {
		fail(span, err, "Failed to fetch nearby locations")
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(items)))
	return items, nil
}

// Hotels searches the provider's hotels matching placeName.
func (g *GatewayImpl) Hotels(ctx context.Context, placeName string) ([]types.Hotel, error) {
	ctx, span := startSpan(ctx, "Hotels", attribute.String("place", placeName))
	defer span.End()

	locations, err := g.SearchLocations(ctx, placeName, "hotels")
	if err != nil {
		fail(span, err, "Failed to search hotels")
		return nil, err
	}
	hotels := make([]types.Hotel, 0, len(locations))
	for _, l := range locations {
		hotels = append(hotels, types.Hotel{
			LocationID: l.LocationID,
			Name:       l.Name,
			Address:    l.Address,
			Source:     types.SourceTripadvisor,
		})
	}
	return hotels, nil
}

// Attribution is the provider credit the client must display.
func Attribution(details *types.TripadvisorDetails) types.Attribution {
	link := HomepageURL
	if details != nil && details.WebURL != "" {
		link = details.WebURL
	}
	return types.Attribution{LogoURL: LogoURL, Link: link}
}

func (g *GatewayImpl) nearbySearch(ctx context.Context, lat, lng float64, category string) ([]locationItem, error) {
	q := url.Values{
		"latLong":  {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)},
		"category": {category},
	}
	var res listResponse
	if err := g.client.GetJSON(ctx, "location/nearby_search", g.query(q), nil, &res); err != nil {
		return nil, fmt.Errorf("failed nearby search for %s: %w", category, err)
	}
	return res.Data, nil
}
