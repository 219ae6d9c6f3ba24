package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jsonq/formats"
	"jsonq/query"
	"jsonq/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxErrorBody caps how much of a failed response is kept in a StatusError
const maxErrorBody = 512

// StatusError is returned when the server answers with a non-2xx status.
// Body holds at most the first maxErrorBody bytes of the response.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client fetches list resources from a json-server style API
type Client struct {
	baseURL    string
	httpClient Doer
	normalizer *response.Normalizer
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithDoer replaces the default *http.Client
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.httpClient = d
	}
}

// WithNormalizer replaces the default response normalizer
func WithNormalizer(n *response.Normalizer) Option {
	return func(c *Client) {
		c.normalizer = n
	}
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		normalizer: response.New(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the request URL for resource with the query applied
func (c *Client) URL(resource string, q *query.Builder) string {
	url := c.baseURL + "/" + strings.TrimLeft(resource, "/")
	if q == nil {
		return url
	}
	if encoded := q.Encode(); encoded != "" {
		url += "?" + encoded
	}
	return url
}

// Fetch issues GET resource?query and returns the decoded body.
// The body format follows the response Content-Type.
func (c *Client) Fetch(ctx context.Context, resource string, q *query.Builder) (any, error) {
	url := c.URL(resource, q)
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("Fetching list",
		zap.String("url", url),
		zap.String("request_id", requestID),
	)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("List request failed",
			zap.Error(err),
			zap.String("url", url),
			zap.String("request_id", requestID),
		)
		return nil, fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Info("List request completed",
		zap.String("resource", resource),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(startTime)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url, Body: string(body)}
	}

	payload, err := formats.ForContentType(resp.Header.Get("Content-Type")).Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", resource, err)
	}
	return payload, nil
}

// List fetches resource and normalizes the body into typed records
func List[T any](ctx context.Context, c *Client, resource string, q *query.Builder) (response.Result[T], error) {
	payload, err := c.Fetch(ctx, resource, q)
	if err != nil {
		return response.Result[T]{}, err
	}

	result, err := response.Decode[T](c.normalizer, payload)
	if err != nil {
		c.logger.Warn("Unexpected list response",
			zap.String("resource", resource),
			zap.Error(err),
		)
		return response.Result[T]{}, fmt.Errorf("failed to normalize %s: %w", resource, err)
	}
	return result, nil
}
