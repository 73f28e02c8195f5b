// Package apiclient issues authenticated JSON requests against the devkit
// REST API and normalizes every failure into TransportError, RequestError or
// DecodeError.
//
// A Client is bound to one base URL and one API key. It performs exactly one
// network attempt per call: no retries, no caching.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/systmms/devkit/internal/logging"
	"github.com/systmms/devkit/internal/metrics"
	"github.com/systmms/devkit/internal/secure"
)

// RequestIDHeader carries a per-request UUID for correlation with server logs.
const RequestIDHeader = "X-Request-ID"

// Client is an authenticated API client for a single profile.
type Client struct {
	baseURL    string
	apiKey     *secure.SecureBuffer
	httpClient *http.Client
	metrics    *metrics.ClientMetrics
	logger     *logging.Logger
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient uses hc for requests. Its transport is wrapped with metrics
// instrumentation; hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for debug request tracing.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for baseURL, with trailing slashes removed.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	key, err := secure.NewSecureString(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to protect API key: %w", err)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    key,
		metrics:   metrics.NewClientMetrics(),
		userAgent: "devkit-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.New(false, true)
	}
	c.logger.Protect(apiKey)

	base := c.httpClient
	if base == nil {
		base = &http.Client{}
	}
	instrumented := *base
	instrumented.Transport = c.metrics.InstrumentRoundTripper(base.Transport)
	c.httpClient = &instrumented

	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Metrics returns the client's request collectors.
func (c *Client) Metrics() *metrics.ClientMetrics {
	return c.metrics
}

// Close wipes the protected API key. The client must not be used afterwards.
func (c *Client) Close() {
	c.apiKey.Destroy()
}

// Get issues a GET and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Post issues a POST with body encoded as JSON and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPost, path, body, &out)
	return out, err
}

// Put issues a PUT with body encoded as JSON and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	err := c.do(ctx, http.MethodPut, path, body, &out)
	return out, err
}

// Delete issues a DELETE. Only the status is checked; the body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.apiKey.WithString(func(key string) error {
		req.Header.Set("Authorization", "Bearer "+key)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to open API key: %w", err)
	}

	c.logger.Debug("%s %s (request %s)", method, req.URL.Redacted(), requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			bodyBytes = nil
		}
		return &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
			RequestID:  requestID,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if err := decodeInto(data, out); err != nil {
		return &DecodeError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}
