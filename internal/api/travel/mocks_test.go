package travel

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/tripster-api/internal/types"
)

type MockPlaceProvider struct {
	mock.Mock
}

func (m *MockPlaceProvider) ResolvePlace(ctx context.Context, name, placeType string) (types.Option[types.Place], error) {
	args := m.Called(ctx, name, placeType)
	return args.Get(0).(types.Option[types.Place]), args.Error(1)
}

func (m *MockPlaceProvider) FetchPlaceDetails(ctx context.Context, placeID, tripadvisorID string) (*types.PlaceDetails, error) {
	args := m.Called(ctx, placeID, tripadvisorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PlaceDetails), args.Error(1)
}

type MockListingProvider struct {
	mock.Mock
}

func (m *MockListingProvider) Landmarks(ctx context.Context, destination string) ([]types.Landmark, error) {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Landmark), args.Error(1)
}

func (m *MockListingProvider) Reviews(ctx context.Context, locationID string) ([]types.Review, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Review), args.Error(1)
}

func (m *MockListingProvider) Nearby(ctx context.Context, lat, lng float64) ([]types.NearbyItem, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.NearbyItem), args.Error(1)
}

func (m *MockListingProvider) Hotels(ctx context.Context, placeName string) ([]types.Hotel, error) {
	args := m.Called(ctx, placeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Hotel), args.Error(1)
}

type MockReviewSearcher struct {
	mock.Mock
}

func (m *MockReviewSearcher) SearchReviews(ctx context.Context, place, suffix string) ([]types.Review, error) {
	args := m.Called(ctx, place, suffix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Review), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, userMessage string) (string, error) {
	args := m.Called(ctx, userMessage)
	return args.String(0), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) GetPlace(ctx context.Context, query string) (*types.PlaceResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PlaceResponse), args.Error(1)
}

func (m *MockService) GetHotels(ctx context.Context, place string) (*types.HotelsResponse, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HotelsResponse), args.Error(1)
}

func (m *MockService) GetReviews(ctx context.Context, place string) (*types.ReviewsResponse, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ReviewsResponse), args.Error(1)
}

func (m *MockService) GetNearbyAttractions(ctx context.Context, place string) (*types.NearbyResponse, error) {
	args := m.Called(ctx, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.NearbyResponse), args.Error(1)
}

func (m *MockService) CreatePlan(ctx context.Context, req types.PlanRequest) (*types.AggregatedPlanResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AggregatedPlanResponse), args.Error(1)
}
