// Package remote talks to the sentence segmentation and constituency parsing
// service over HTTP.
//
// The service holds the statistical model; this client only ships text to it
// and returns the bracketed parses it answers with. Requests are throttled by a
// token bucket and limited to a fixed number in flight, so a single loaded
// model is never hit by more work than it can serve.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/frasig/pkg/domain"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ParseRequest is the body sent to POST /parse.
type ParseRequest struct {
	Text string `json:"text"`
}

// ParseResponse is the body returned by POST /parse.
type ParseResponse struct {
	Sentences []domain.Sentence `json:"sentences"`
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("parser service returned %d: %s", e.StatusCode, e.Body)
}

// Client implements ports.SentenceParser against a remote service.
type Client struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	limiter  *rate.Limiter
	inflight *semaphore.Weighted
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds a single request to the service. Zero means no limit
// beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit throttles requests to rps per second with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMaxConcurrent caps the number of requests in flight. Values below 1 mean 1.
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.inflight = semaphore.NewWeighted(int64(n))
	}
}

// WithLogger sets a structured logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the service at baseURL (e.g. "http://localhost:8000").
// By default one request is in flight at a time and no throttling is applied.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("parser service URL is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("invalid parser service URL %q: expected http or https", baseURL)
	}

	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{},
		timeout:  30 * time.Second,
		inflight: semaphore.NewWeighted(1),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Parse sends text to the service and returns the detected sentences.
func (c *Client) Parse(ctx context.Context, text string) ([]domain.Sentence, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.acquire(ctx); err != nil {
		return nil, err
	}
	defer c.inflight.Release(1)

	body, err := json.Marshal(ParseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parser service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		c.logger.Warn("Parser service rejected request", "status", resp.StatusCode, "duration", time.Since(start))
		return nil, err
	}

	var out ParseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode parse response: %w", err)
	}
	if out.Sentences == nil {
		out.Sentences = []domain.Sentence{}
	}

	c.logger.Debug("Parser service answered", "sentences", len(out.Sentences), "duration", time.Since(start))
	return out.Sentences, nil
}

// Ping checks that the service answers GET /health with a 2xx status.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("parser service unreachable: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) acquire(ctx context.Context) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("parser rate limit: %w", err)
		}
	}
	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for parser: %w", err)
	}
	return nil
}

const maxErrorBody = 512

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}
