package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FACorreiaa/tripster-api/config"
	"github.com/FACorreiaa/tripster-api/internal/container"
)

// BenchmarkSuite provides benchmark testing for the API
type BenchmarkSuite struct {
	handler   http.Handler
	vendorSrv *httptest.Server
	container *container.Container
}

// setupBenchmarkSuite wires the real handler stack against stubbed vendors
// and warms the cache so benchmarks measure the cached path.
func setupBenchmarkSuite(b *testing.B) *BenchmarkSuite {
	b.Helper()
	vendorSrv := httptest.NewServer(newVendorStub())

	raw := fmt.Sprintf(`
mode: test
cache:
  backend: memory
  ttl: 1h
upstream:
  google:
    baseURL: %[1]s/google
    apiKey: g-key
    rateLimit: 10000
  tripadvisor:
    baseURL: %[1]s/ta
    apiKey: ta-key
    rateLimit: 10000
  webSearch:
    baseURL: %[1]s/search
    apiKey: cs-key
    engineID: cx-1
    rateLimit: 10000
`, vendorSrv.URL)
	cfg, err := config.Load([]byte(raw))
	if err != nil {
		b.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}))
	c, err := container.NewContainer(context.Background(), &cfg, logger, container.WithGenerator(&stubGenerator{plan: "Day 1"}))
	if err != nil {
		b.Fatal(err)
	}

	s := &BenchmarkSuite{
		handler:   newHTTPHandler(&cfg, c, logger),
		vendorSrv: vendorSrv,
		container: c,
	}
	for _, path := range []string{"/api/places?query=Pai", "/api/hotels?place=Pai", "/api/reviews?place=Pai", "/api/nearby?place=Pai"} {
		if code := s.do(http.MethodGet, path, nil).Code; code != http.StatusOK {
			b.Fatalf("warm-up %s: status %d", path, code)
		}
	}
	b.Cleanup(func() {
		_ = c.Close()
		vendorSrv.Close()
	})
	return s
}

func (s *BenchmarkSuite) do(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func benchmarkGet(b *testing.B, path string) {
	s := setupBenchmarkSuite(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if w := s.do(http.MethodGet, path, nil); w.Code != http.StatusOK {
			b.Fatalf("status %d", w.Code)
		}
	}
}

func BenchmarkPlacesCached(b *testing.B)  { benchmarkGet(b, "/api/places?query=Pai") }
func BenchmarkHotelsCached(b *testing.B)  { benchmarkGet(b, "/api/hotels?place=Pai") }
func BenchmarkReviewsCached(b *testing.B) { benchmarkGet(b, "/api/reviews?place=Pai") }
func BenchmarkNearbyCached(b *testing.B)  { benchmarkGet(b, "/api/nearby?place=Pai") }

// BenchmarkPlan measures aggregation with every enrichment served from cache.
func BenchmarkPlan(b *testing.B) {
	s := setupBenchmarkSuite(b)
	body := []byte(`{"startLocation":"Chiang Mai","destination":"Pai","days":3,"budget":5000}`)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if w := s.do(http.MethodPost, "/api/plan", body); w.Code != http.StatusOK {
			b.Fatalf("status %d", w.Code)
		}
	}
}

func BenchmarkPlacesCachedParallel(b *testing.B) {
	s := setupBenchmarkSuite(b)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if w := s.do(http.MethodGet, "/api/places?query=Pai", nil); w.Code != http.StatusOK {
				b.Errorf("status %d", w.Code)
				return
			}
		}
	})
}
