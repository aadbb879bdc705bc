// Package travel aggregates the place, hotel, review, nearby and plan
// endpoints from the upstream gateways.
package travel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/tripster-api/app/observability/metrics"
	"github.com/FACorreiaa/tripster-api/internal/api"
	"github.com/FACorreiaa/tripster-api/internal/api/fallback"
	generativeAI "github.com/FACorreiaa/tripster-api/internal/api/generative_ai"
	"github.com/FACorreiaa/tripster-api/internal/api/places"
	"github.com/FACorreiaa/tripster-api/internal/api/tripadvisor"
	"github.com/FACorreiaa/tripster-api/internal/api/websearch"
	"github.com/FACorreiaa/tripster-api/internal/types"
)

const defaultDays = 3

// PlaceProvider resolves free-text names to places and their details.
type PlaceProvider interface {
	ResolvePlace(ctx context.Context, name, placeType string) (types.Option[types.Place], error)
	FetchPlaceDetails(ctx context.Context, placeID, tripadvisorID string) (*types.PlaceDetails, error)
}

// ListingProvider supplies landmarks, reviews, nearby locations and hotels.
type ListingProvider interface {
	Landmarks(ctx context.Context, destination string) ([]types.Landmark, error)
	Reviews(ctx context.Context, locationID string) ([]types.Review, error)
	Nearby(ctx context.Context, lat, lng float64) ([]types.NearbyItem, error)
	Hotels(ctx context.Context, placeName string) ([]types.Hotel, error)
}

type ReviewSearcher interface {
	SearchReviews(ctx context.Context, place, suffix string) ([]types.Review, error)
}

type TextGenerator interface {
	Generate(ctx context.Context, userMessage string) (string, error)
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetPlace(ctx context.Context, query string) (*types.PlaceResponse, error)
	GetHotels(ctx context.Context, place string) (*types.HotelsResponse, error)
	GetReviews(ctx context.Context, place string) (*types.ReviewsResponse, error)
	GetNearbyAttractions(ctx context.Context, place string) (*types.NearbyResponse, error)
	CreatePlan(ctx context.Context, req types.PlanRequest) (*types.AggregatedPlanResponse, error)
}

type ServiceImpl struct {
	places    PlaceProvider
	listings  ListingProvider
	web       ReviewSearcher
	generator TextGenerator
	logger    *slog.Logger
}

func NewServiceImpl(placeProvider PlaceProvider, listings ListingProvider, web ReviewSearcher, generator TextGenerator, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		places:    placeProvider,
		listings:  listings,
		web:       web,
		generator: generator,
		logger:    logger,
	}
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("TravelService").Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", api.MissingParameter(api.MsgMissingQuery)
	}
	return name, nil
}

// resolveOrNone resolves name, treating any upstream failure as no match.
func (s *ServiceImpl) resolveOrNone(ctx context.Context, name string) (types.Option[types.Place], error) {
	return fallback.Attempt(ctx, s.logger, "resolve_place", types.None[types.Place](), func(ctx context.Context) (types.Option[types.Place], error) {
		return s.places.ResolvePlace(ctx, name, places.DefaultPlaceType)
	})
}

func (s *ServiceImpl) nearbyOrEmpty(ctx context.Context, place types.Place) ([]types.NearbyItem, error) {
	if place.Location == nil {
		return fallback.Empty[types.NearbyItem](), nil
	}
	return fallback.Attempt(ctx, s.logger, "nearby", fallback.Empty[types.NearbyItem](), func(ctx context.Context) ([]types.NearbyItem, error) {
		return s.listings.Nearby(ctx, place.Location.Lat, place.Location.Lng)
	})
}

func (s *ServiceImpl) reviewsOrEmpty(ctx context.Context, place types.Place) ([]types.Review, error) {
	if place.TripadvisorLocationID == "" {
		return fallback.Empty[types.Review](), nil
	}
	return fallback.Attempt(ctx, s.logger, "reviews", fallback.Empty[types.Review](), func(ctx context.Context) ([]types.Review, error) {
		return s.listings.Reviews(ctx, place.TripadvisorLocationID)
	})
}

// GetPlace resolves query and returns the place merged with its details.
// Upstream failures are not absorbed here; no match is ErrNotFound.
func (s *ServiceImpl) GetPlace(ctx context.Context, query string) (resp *types.PlaceResponse, err error) {
	ctx, span := startSpan(ctx, "GetPlace", attribute.String("query", query))
	defer span.End()
	defer func(start time.Time) {
		metrics.RecordAggregation(ctx, "places", time.Since(start))
		endSpan(span, err)
	}(time.Now())

	query, err = requireName(query)
	if err != nil {
		return nil, err
	}

	resolved, err := s.places.ResolvePlace(ctx, query, places.DefaultPlaceType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve place: %w", err)
	}
	place, ok := resolved.Get()
	if !ok {
		return nil, api.NotFound(api.MsgNotFound)
	}

	details, err := s.places.FetchPlaceDetails(ctx, place.PlaceID, place.TripadvisorLocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch place details: %w", err)
	}

	resp = &types.PlaceResponse{
		Place:     place,
		PhotoURLs: []string{},
	}
	if details != nil {
		resp.FormattedAddress = details.FormattedAddress
		resp.TripadvisorDetails = details.TripadvisorDetails
		if details.PhotoURLs != nil {
			resp.PhotoURLs = details.PhotoURLs
		}
		if len(details.Types) > 0 && len(resp.Types) == 0 {
			resp.Types = details.Types
		}
	}
	if len(resp.PhotoURLs) > 0 {
		resp.PhotoURL = resp.PhotoURLs[0]
	}
	return resp, nil
}

// GetHotels lists hotels matching the place name followed by hotels near the
// resolved place.
func (s *ServiceImpl) GetHotels(ctx context.Context, placeName string) (resp *types.HotelsResponse, err error) {
	ctx, span := startSpan(ctx, "GetHotels", attribute.String("place", placeName))
	defer span.End()
	defer func(start time.Time) {
		metrics.RecordAggregation(ctx, "hotels", time.Since(start))
		endSpan(span, err)
	}(time.Now())

	placeName, err = requireName(placeName)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveOrNone(ctx, placeName)
	if err != nil {
		return nil, err
	}
	place := resolved.OrElse(types.Place{})

	var (
		hotels []types.Hotel
		nearby []types.NearbyItem
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		hotels, err = fallback.Attempt(egCtx, s.logger, "hotels", fallback.Empty[types.Hotel](), func(ctx context.Context) ([]types.Hotel, error) {
			return s.listings.Hotels(ctx, placeName)
		})
		return err
	})
	eg.Go(func() error {
		var err error
		nearby, err = s.nearbyOrEmpty(egCtx, place)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := make([]types.Hotel, 0, len(hotels)+len(nearby))
	merged = append(merged, hotels...)
	for _, item := range filterCategory(nearby, types.CategoryHotel) {
		merged = append(merged, types.Hotel{
			LocationID: item.LocationID,
			Name:       item.Name,
			Distance:   item.Distance,
			Source:     types.SourceTripadvisor,
		})
	}
	span.SetAttributes(attribute.Int("hotels.count", len(merged)))
	return &types.HotelsResponse{Hotels: merged}, nil
}

// GetReviews returns web review snippets followed by the secondary
// provider's reviews of the resolved place.
func (s *ServiceImpl) GetReviews(ctx context.Context, placeName string) (resp *types.ReviewsResponse, err error) {
	ctx, span := startSpan(ctx, "GetReviews", attribute.String("place", placeName))
	defer span.End()
	defer func(start time.Time) {
		metrics.RecordAggregation(ctx, "reviews", time.Since(start))
		endSpan(span, err)
	}(time.Now())

	placeName, err = requireName(placeName)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveOrNone(ctx, placeName)
	if err != nil {
		return nil, err
	}
	place := resolved.OrElse(types.Place{})

	var web, secondary []types.Review
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		web, err = fallback.Attempt(egCtx, s.logger, "web_reviews", fallback.Empty[types.Review](), func(ctx context.Context) ([]types.Review, error) {
			return s.web.SearchReviews(ctx, placeName, websearch.DefaultReviewSuffix)
		})
		return err
	})
	eg.Go(func() error {
		var err error
		secondary, err = s.reviewsOrEmpty(egCtx, place)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	reviews := make([]types.Review, 0, len(web)+len(secondary))
	reviews = append(reviews, web...)
	reviews = append(reviews, secondary...)
	span.SetAttributes(attribute.Int("reviews.count", len(reviews)))
	return &types.ReviewsResponse{Reviews: reviews}, nil
}

// GetNearbyAttractions lists attractions around the resolved place. A place
// without coordinates is ErrNotFound.
func (s *ServiceImpl) GetNearbyAttractions(ctx context.Context, placeName string) (resp *types.NearbyResponse, err error) {
	ctx, span := startSpan(ctx, "GetNearbyAttractions", attribute.String("place", placeName))
	defer span.End()
	defer func(start time.Time) {
		metrics.RecordAggregation(ctx, "nearby", time.Since(start))
		endSpan(span, err)
	}(time.Now())

	placeName, err = requireName(placeName)
	if err != nil {
		return nil, err
	}

	resolved, err := s.places.ResolvePlace(ctx, placeName, places.DefaultPlaceType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve place: %w", err)
	}
	place, ok := resolved.Get()
	if !ok || place.Location == nil {
		return nil, api.NotFound(api.MsgNotFound)
	}

	nearby, err := s.nearbyOrEmpty(ctx, place)
	if err != nil {
		return nil, err
	}
	return &types.NearbyResponse{Attractions: filterCategory(nearby, types.CategoryAttraction)}, nil
}

// CreatePlan generates an itinerary and enriches it with photos, landmarks,
// reviews and nearby attractions of the destination. Every enrichment
// degrades to an empty value on failure; only an authentication failure of
// the text generator fails the plan.
func (s *ServiceImpl) CreatePlan(ctx context.Context, req types.PlanRequest) (resp *types.AggregatedPlanResponse, err error) {
	ctx, span := startSpan(ctx, "CreatePlan",
		attribute.String("plan.start", req.StartLocation),
		attribute.String("plan.destination", req.Destination),
		attribute.Int("plan.days", req.Days),
	)
	defer span.End()
	defer func(start time.Time) {
		metrics.RecordAggregation(ctx, "plan", time.Since(start))
		endSpan(span, err)
	}(time.Now())

	req.StartLocation = strings.TrimSpace(req.StartLocation)
	req.Destination = strings.TrimSpace(req.Destination)
	if err := api.ValidateStruct(req, api.MsgMissingPlanField); err != nil {
		return nil, err
	}

	prompt := PlanPrompt(req)
	resolved, err := s.resolveOrNone(ctx, req.Destination)
	if err != nil {
		return nil, err
	}
	place := resolved.OrElse(types.Place{})

	var (
		plan      string
		details   *types.PlaceDetails
		landmarks []types.Landmark
		reviews   []types.Review
		nearby    []types.NearbyItem
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		plan, err = fallback.Attempt(egCtx, s.logger, "plan", generativeAI.Apology, func(ctx context.Context) (string, error) {
			return s.generator.Generate(ctx, prompt)
		})
		return err
	})
	eg.Go(func() error {
		if place.PlaceID == "" {
			return nil
		}
		var err error
		details, err = fallback.Attempt(egCtx, s.logger, "details", (*types.PlaceDetails)(nil), func(ctx context.Context) (*types.PlaceDetails, error) {
			return s.places.FetchPlaceDetails(ctx, place.PlaceID, place.TripadvisorLocationID)
		})
		return err
	})
	eg.Go(func() error {
		var err error
		landmarks, err = fallback.Attempt(egCtx, s.logger, "landmarks", fallback.Empty[types.Landmark](), func(ctx context.Context) ([]types.Landmark, error) {
			return s.listings.Landmarks(ctx, req.Destination)
		})
		return err
	})
	eg.Go(func() error {
		var err error
		reviews, err = s.reviewsOrEmpty(egCtx, place)
		return err
	})
	eg.Go(func() error {
		var err error
		nearby, err = s.nearbyOrEmpty(egCtx, place)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	resp = &types.AggregatedPlanResponse{
		ID:                uuid.New(),
		Plan:              plan,
		PhotoURLs:         []string{},
		PlaceName:         req.Destination,
		Landmarks:         nonNil(landmarks),
		Reviews:           nonNil(reviews),
		NearbyAttractions: filterCategory(nearby, types.CategoryAttraction),
		Attribution:       tripadvisor.Attribution(nil),
	}
	if details != nil {
		if details.PhotoURLs != nil {
			resp.PhotoURLs = details.PhotoURLs
		}
		if details.Name != "" {
			resp.PlaceName = details.Name
		}
		resp.Attribution = tripadvisor.Attribution(&details.TripadvisorDetails)
	}

	s.logger.InfoContext(ctx, "Plan created",
		slog.String("plan_id", resp.ID.String()),
		slog.String("destination", req.Destination),
		slog.Bool("place_resolved", resolved.Valid),
		slog.Int("photos", len(resp.PhotoURLs)),
		slog.Int("landmarks", len(resp.Landmarks)),
		slog.Int("reviews", len(resp.Reviews)))
	return resp, nil
}

// PlanPrompt renders the itinerary request sent to the text generator.
func PlanPrompt(req types.PlanRequest) string {
	days := req.Days
	if days <= 0 {
		days = defaultDays
	}
	preference := orDash(req.Preference)
	interests := orDash(req.Interests.String())

	var b strings.Builder
	fmt.Fprintf(&b, "\nช่วยวางแผนการท่องเที่ยวจาก %s ไป %s จำนวน %d วัน งบประมาณ %s บาท สไตล์: %s ความสนใจ: %s",
		req.StartLocation, req.Destination, days, req.Budget, preference, interests)
	if tw := strings.TrimSpace(req.TravelWith); tw != "" {
		fmt.Fprintf(&b, " เดินทางกับ: %s", tw)
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func filterCategory(items []types.NearbyItem, category string) []types.NearbyItem {
	out := make([]types.NearbyItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
