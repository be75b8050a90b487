// Package apiclient talks to the remote back-office REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backoffice-console/internal/logger"
	"backoffice-console/internal/metrics"
	"backoffice-console/internal/session"

	"go.uber.org/zap"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// UnauthorizedFunc is called when the API rejects a session's token.
type UnauthorizedFunc func(ctx context.Context, s *session.Session)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized UnauthorizedFunc
	metrics        *metrics.Upstream
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithUnauthorizedHook(fn UnauthorizedFunc) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithMetrics counts every call into m.
func WithMetrics(m *metrics.Upstream) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
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
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path builds an API path, escaping every argument as a single segment.
func Path(format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return fmt.Sprintf(format, escaped...)
}

func (c *Client) Get(ctx context.Context, s *session.Session, path string, out any) error {
	return c.Do(ctx, s, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, s *session.Session, path string, body, out any) error {
	return c.Do(ctx, s, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, s *session.Session, path string, body, out any) error {
	return c.Do(ctx, s, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, s *session.Session, path string, body, out any) error {
	return c.Do(ctx, s, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, s *session.Session, path string) error {
	return c.Do(ctx, s, http.MethodDelete, path, nil, nil)
}

// Do sends one request. s may be nil for the unauthenticated login call.
// body and out are JSON encoded/decoded when non-nil.
func (c *Client) Do(ctx context.Context, s *session.Session, method, path string, body, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("upstream_path", path),
	)

	if s != nil && s.Ended() {
		return ErrUnauthorized
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to encode request body", zap.Error(err))
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set(logger.RequestIDHeader, reqID)
	}

	timer := metrics.StartTimer()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(0, timer.Duration())
		log.Error("upstream request failed", zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("read response: %w", err)
	}
	if len(respBody) > maxResponseBytes {
		c.observe(0, timer.Duration())
		log.Error("upstream response too large", zap.Int("limit", maxResponseBytes))
		return fmt.Errorf("%s %s: %w: response exceeds %d bytes", method, path, ErrUpstream, maxResponseBytes)
	}

	elapsed := timer.Duration()
	c.observe(resp.StatusCode, elapsed)
	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("duration", elapsed))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: errorMessage(respBody),
		}

		if resp.StatusCode == http.StatusUnauthorized && s != nil {
			log.Warn("upstream rejected session token, ending session")
			if c.onUnauthorized != nil {
				c.onUnauthorized(ctx, s)
			}
		} else {
			log.Warn("upstream returned error", zap.String("message", apiErr.Message))
		}
		return apiErr
	}

	log.Debug("upstream request completed")

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		log.Error("failed decoding upstream response", zap.Error(err))
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) observe(status int, d time.Duration) {
	if c.metrics != nil {
		c.metrics.Observe(status, d)
	}
}
