// Package upstream is the shared HTTP client every vendor gateway goes through.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/tripster-api/app/observability/metrics"
	"github.com/FACorreiaa/tripster-api/internal/api"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10
	maxBodyBytes     = 4 << 20
)

// StatusError is returned for non-2xx vendor responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

type Options struct {
	Name       string
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64
	Burst      int
	HTTPClient *http.Client
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// Client calls one vendor API. Calls are throttled, guarded by a circuit
// breaker and bounded by a per-call timeout.
type Client struct {
	name       string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}
	if opts.Burst <= 0 {
		opts.Burst = int(opts.RateLimit)
		if opts.Burst < 1 {
			opts.Burst = 1
		}
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = 30 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	log := logger.With(slog.String("upstream", opts.Name))

	threshold := opts.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A vendor rejecting one request is not an outage, and neither is a
		// caller hanging up. The per-call timeout still counts.
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError && se.StatusCode != http.StatusTooManyRequests
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state transition", slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})

	return &Client{
		name:       opts.Name,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		timeout:    opts.Timeout,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		breaker:    breaker,
		logger:     log,
	}
}

func (c *Client) Name() string { return c.name }

func (c *Client) BaseURL() string { return c.baseURL }

// URL joins path and query onto the client's base URL.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL
	if path = strings.TrimLeft(path, "/"); path != "" {
		u += "/" + path
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// GetJSON performs a GET against path and decodes the JSON body into dst.
// Every failure wraps api.ErrUpstreamUnavailable.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, headers http.Header, dst any) error {
	ctx, span := otel.Tracer("Upstream").Start(ctx, c.name+" GET", trace.WithAttributes(
		attribute.String("upstream.name", c.name),
		attribute.String("upstream.path", path),
	))
	defer span.End()

	start := time.Now()
	body, err := c.do(ctx, path, query, headers)
	if err != nil {
		metrics.RecordUpstreamRequest(ctx, c.name, outcome(err), time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upstream request failed")
		c.logger.WarnContext(ctx, "Upstream request failed", slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("%s %s: %w: %w", c.name, path, api.ErrUpstreamUnavailable, err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		metrics.RecordUpstreamRequest(ctx, c.name, "decode_error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode upstream response")
		return fmt.Errorf("%s %s: %w: failed to decode response: %w", c.name, path, api.ErrUpstreamUnavailable, err)
	}

	metrics.RecordUpstreamRequest(ctx, c.name, "success", time.Since(start))
	span.SetAttributes(attribute.Int("response.bytes", len(body)))
	span.SetStatus(codes.Ok, "Upstream request succeeded")
	return nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values, headers http.Header) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, query), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", redact(err))
		}
		req.Header.Set("Accept", "application/json")
		for k, vs := range headers {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to execute request: %w", redact(err))
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet := string(body)
			if len(snippet) > 256 {
				snippet = snippet[:256]
			}
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
		}
		return body, nil
	})
}

// redact masks credential query values in the URL carried by a *url.Error.
// Op and the wrapped error are kept so errors.Is still sees through it.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	return &url.Error{Op: ue.Op, URL: redactURL(ue.URL), Err: ue.Err}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid url]"
	}
	q := u.Query()
	for k := range q {
		if isCredentialParam(k) {
			q.Set(k, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	u.User = nil
	return u.String()
}

func isCredentialParam(name string) bool {
	name = strings.ToLower(name)
	for _, s := range []string{"key", "token", "secret", "signature"} {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

func outcome(err error) string {
	var se *StatusError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &se):
		return "status_error"
	default:
		return "failure"
	}
}
