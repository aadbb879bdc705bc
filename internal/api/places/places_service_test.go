package places

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tripster-api/internal/api"
	"github.com/FACorreiaa/tripster-api/internal/cache"
	"github.com/FACorreiaa/tripster-api/internal/types"
	"github.com/FACorreiaa/tripster-api/internal/upstream"
)

type MockSecondary struct {
	mock.Mock
}

func (m *MockSecondary) SearchLocations(ctx context.Context, query, category string) ([]types.Location, error) {
	args := m.Called(ctx, query, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Location), args.Error(1)
}

func (m *MockSecondary) LocationDetails(ctx context.Context, locationID string) (*types.TripadvisorDetails, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripadvisorDetails), args.Error(1)
}

func (m *MockSecondary) LocationPhotos(ctx context.Context, locationID string) ([]string, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type stubPlaces struct {
	find    string
	details string
	status  int
	calls   int32
}

func (s *stubPlaces) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.calls, 1)
	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}
	switch r.URL.Path {
	case "/findplacefromtext/json":
		_, _ = w.Write([]byte(s.find))
	case "/details/json":
		_, _ = w.Write([]byte(s.details))
	default:
		http.NotFound(w, r)
	}
}

func newGateway(t *testing.T, stub *stubPlaces, secondary SecondaryProvider) *GatewayImpl {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	client := upstream.New(upstream.Options{
		Name:       "google_places",
		BaseURL:    srv.URL,
		RateLimit:  1000,
		HTTPClient: srv.Client(),
	}, slog.Default())
	c := cache.NewMemoryCache(time.Hour, time.Minute)
	return NewGateway(client, c, secondary, Config{APIKey: "test-key", Language: "th"}, slog.Default())
}

const doiSuthepFind = `{
  "status": "OK",
  "candidates": [{
    "place_id": "ChIJ-doi",
    "name": "Wat Phra That Doi Suthep",
    "geometry": {"location": {"lat": 18.8048, "lng": 98.9216}},
    "types": ["tourist_attraction", "place_of_worship"]
  }]
}`

func TestResolvePlace_AttachesSecondaryIDAndCaches(t *testing.T) {
	stub := &stubPlaces{find: doiSuthepFind}
	secondary := new(MockSecondary)
	secondary.On("SearchLocations", mock.Anything, "Doi Suthep", "").
		Return([]types.Location{{LocationID: "317503", Name: "Doi Suthep"}, {LocationID: "999"}}, nil).Once()
	g := newGateway(t, stub, secondary)

	for i := 0; i < 2; i++ {
		got, err := g.ResolvePlace(context.Background(), "Doi Suthep", "")
		require.NoError(t, err)
		place, ok := got.Get()
		require.True(t, ok)
		assert.Equal(t, "ChIJ-doi", place.PlaceID)
		assert.Equal(t, "Wat Phra That Doi Suthep", place.Name)
		require.NotNil(t, place.Location)
		assert.InDelta(t, 18.8048, place.Location.Lat, 1e-9)
		assert.Equal(t, "317503", place.TripadvisorLocationID)
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&stub.calls), "second lookup must be served from cache")
	secondary.AssertExpectations(t)
}

func TestResolvePlace_NoCandidateIsCachedNone(t *testing.T) {
	stub := &stubPlaces{find: `{"status":"ZERO_RESULTS","candidates":[]}`}
	g := newGateway(t, stub, nil)

	for i := 0; i < 3; i++ {
		got, err := g.ResolvePlace(context.Background(), "Atlantis", DefaultPlaceType)
		require.NoError(t, err)
		assert.False(t, got.Valid)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&stub.calls))
}

func TestResolvePlace_EmptyNameMakesNoCall(t *testing.T) {
	stub := &stubPlaces{find: doiSuthepFind}
	g := newGateway(t, stub, nil)

	got, err := g.ResolvePlace(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Zero(t, atomic.LoadInt32(&stub.calls))
}

func TestResolvePlace_DeniedRequestIsNotCached(t *testing.T) {
	stub := &stubPlaces{find: `{"status":"REQUEST_DENIED","error_message":"invalid key","candidates":[]}`}
	g := newGateway(t, stub, nil)

	for i := 0; i < 2; i++ {
		_, err := g.ResolvePlace(context.Background(), "Pai", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, api.ErrUpstreamUnavailable)
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(&stub.calls))
}

func TestResolvePlace_SecondaryFailureStillResolves(t *testing.T) {
	stub := &stubPlaces{find: doiSuthepFind}
	secondary := new(MockSecondary)
	secondary.On("SearchLocations", mock.Anything, "Doi Suthep", "").Return(nil, errors.New("boom"))
	g := newGateway(t, stub, secondary)

	got, err := g.ResolvePlace(context.Background(), "Doi Suthep", "")
	require.NoError(t, err)
	place, ok := got.Get()
	require.True(t, ok)
	assert.Empty(t, place.TripadvisorLocationID)
}

func TestResolvePlace_SecondaryRecoveryIsNotMaskedByCache(t *testing.T) {
	stub := &stubPlaces{find: doiSuthepFind}
	secondary := new(MockSecondary)
	secondary.On("SearchLocations", mock.Anything, "Doi Suthep", "").Return(nil, errors.New("rate limited")).Once()
	secondary.On("SearchLocations", mock.Anything, "Doi Suthep", "").
		Return([]types.Location{{LocationID: "317503", Name: "Doi Suthep"}}, nil).Once()
	g := newGateway(t, stub, secondary)

	got, err := g.ResolvePlace(context.Background(), "Doi Suthep", "")
	require.NoError(t, err)
	place, ok := got.Get()
	require.True(t, ok)
	assert.Empty(t, place.TripadvisorLocationID)

	got, err = g.ResolvePlace(context.Background(), "Doi Suthep", "")
	require.NoError(t, err)
	place, ok = got.Get()
	require.True(t, ok)
	assert.Equal(t, "317503", place.TripadvisorLocationID)

	// Complete now, so the third lookup is a cache hit.
	_, err = g.ResolvePlace(context.Background(), "Doi Suthep", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&stub.calls))
	secondary.AssertExpectations(t)
}

const doiSuthepDetails = `{
  "status": "OK",
  "result": {
    "name": "Wat Phra That Doi Suthep",
    "formatted_address": "Suthep, Mueang Chiang Mai District",
    "types": ["tourist_attraction"],
    "geometry": {"location": {"lat": 18.8048, "lng": 98.9216}},
    "photos": [{"photo_reference": "ref-a"}, {"photo_reference": "ref-b"}]
  }
}`

func TestFetchPlaceDetails_PrimaryPhotosPrecedeSecondary(t *testing.T) {
	stub := &stubPlaces{details: doiSuthepDetails}
	secondary := new(MockSecondary)
	secondary.On("LocationDetails", mock.Anything, "317503").
		Return(&types.TripadvisorDetails{LocationID: "317503", WebURL: "https://www.tripadvisor.com/x"}, nil)
	secondary.On("LocationPhotos", mock.Anything, "317503").
		Return([]string{"https://ta/1.jpg", "https://ta/2.jpg"}, nil)
	g := newGateway(t, stub, secondary)

	d, err := g.FetchPlaceDetails(context.Background(), "ChIJ-doi", "317503")
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, "Wat Phra That Doi Suthep", d.Name)
	assert.Equal(t, "Suthep, Mueang Chiang Mai District", d.FormattedAddress)
	require.Len(t, d.PhotoURLs, 4)
	ref0, _, err := ParsePhotoURL(d.PhotoURLs[0])
	require.NoError(t, err)
	ref1, _, err := ParsePhotoURL(d.PhotoURLs[1])
	require.NoError(t, err)
	assert.Equal(t, "ref-a", ref0)
	assert.Equal(t, "ref-b", ref1)
	assert.Equal(t, []string{"https://ta/1.jpg", "https://ta/2.jpg"}, d.PhotoURLs[2:])
	assert.Equal(t, "317503", d.TripadvisorDetails.LocationID)
}

func TestFetchPlaceDetails_EmptyPlaceIDIsNil(t *testing.T) {
	stub := &stubPlaces{details: doiSuthepDetails}
	g := newGateway(t, stub, nil)

	d, err := g.FetchPlaceDetails(context.Background(), "", "")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Zero(t, atomic.LoadInt32(&stub.calls))
}

func TestFetchPlaceDetails_SecondaryFailureKeepsPrimary(t *testing.T) {
	stub := &stubPlaces{details: doiSuthepDetails}
	secondary := new(MockSecondary)
	secondary.On("LocationDetails", mock.Anything, "317503").Return(nil, errors.New("down"))
	secondary.On("LocationPhotos", mock.Anything, "317503").Return(nil, errors.New("down"))
	g := newGateway(t, stub, secondary)

	d, err := g.FetchPlaceDetails(context.Background(), "ChIJ-doi", "317503")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Len(t, d.PhotoURLs, 2)
	assert.Empty(t, d.TripadvisorDetails.LocationID)
}

func TestFetchPlaceDetails_SecondaryRecoveryIsNotMaskedByCache(t *testing.T) {
	stub := &stubPlaces{details: doiSuthepDetails}
	secondary := new(MockSecondary)
	secondary.On("LocationDetails", mock.Anything, "317503").
		Return(&types.TripadvisorDetails{LocationID: "317503"}, nil)
	secondary.On("LocationPhotos", mock.Anything, "317503").Return(nil, errors.New("down")).Once()
	secondary.On("LocationPhotos", mock.Anything, "317503").Return([]string{"https://ta/1.jpg"}, nil).Once()
	g := newGateway(t, stub, secondary)

	d, err := g.FetchPlaceDetails(context.Background(), "ChIJ-doi", "317503")
	require.NoError(t, err)
	assert.Len(t, d.PhotoURLs, 2)

	d, err = g.FetchPlaceDetails(context.Background(), "ChIJ-doi", "317503")
	require.NoError(t, err)
	require.Len(t, d.PhotoURLs, 3)
	assert.Equal(t, "https://ta/1.jpg", d.PhotoURLs[2])

	_, err = g.FetchPlaceDetails(context.Background(), "ChIJ-doi", "317503")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&stub.calls))
	secondary.AssertExpectations(t)
}

func TestFetchPlaceDetails_PrimaryFailurePropagates(t *testing.T) {
	stub := &stubPlaces{status: http.StatusInternalServerError}
	g := newGateway(t, stub, nil)

	d, err := g.FetchPlaceDetails(context.Background(), "ChIJ-doi", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUpstreamUnavailable)
	assert.Nil(t, d)
}

func TestBuildPhotoURL_RoundTrip(t *testing.T) {
	g := newGateway(t, &stubPlaces{}, nil)

	tests := []struct {
		ref   string
		width int
	}{
		{"AWU5eFh-abc_123", 600},
		{"ref with spaces&symbols=1", 1024},
		{"x", 1},
	}
	for _, tt := range tests {
		u := g.BuildPhotoURL(tt.ref, tt.width)
		ref, width, err := ParsePhotoURL(u)
		require.NoError(t, err)
		assert.Equal(t, tt.ref, ref)
		assert.Equal(t, tt.width, width)
	}
}

func TestBuildPhotoURL_EmptyReference(t *testing.T) {
	g := newGateway(t, &stubPlaces{}, nil)
	assert.Equal(t, "", g.BuildPhotoURL("", 600))

	_, width, err := ParsePhotoURL(g.BuildPhotoURL("ref", 0))
	require.NoError(t, err)
	assert.Equal(t, DefaultPhotoMaxWidth, width)
}
