package tracer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/tripster-api/app/observability/metrics"
)

func TestInitTracingAndMetrics_ExposesAppMetrics(t *testing.T) {
	p, err := InitTracingAndMetrics("tripster-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	metrics.RecordCacheLookup(context.Background(), "google_place", true)
	metrics.RecordUpstreamRequest(context.Background(), "tripadvisor", "success", 20*time.Millisecond)

	srv := httptest.NewServer(NewMetricsServer(":0", p.MetricsHandler).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "cache_lookups_total")
	assert.Contains(t, string(body), `gateway="google_place"`)
	assert.Contains(t, string(body), "upstream_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}
