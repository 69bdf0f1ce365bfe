package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds every provider call.
	DefaultTimeout = 10 * time.Second
	// IdempotencyKeyHeader is sent on every POST.
	IdempotencyKeyHeader = "Idempotency-Key"

	maxErrorBody = 64 << 10
)

// ClientConfig describes one provider's REST endpoint.
type ClientConfig struct {
	Service    string
	BaseURL    string
	AuthHeader string
	AuthValue  string
	Timeout    time.Duration
}

// Client is a small JSON REST client shared by the provider adapters. Every non-2xx
// response is returned as a classified *Error.
type Client struct {
	cfg            ClientConfig
	httpClient     *http.Client
	logger         *slog.Logger
	idempotencyKey func() string
}

// NewClient builds a client for cfg. A zero Timeout means DefaultTimeout.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		logger:         logger.With("service", cfg.Service),
		idempotencyKey: uuid.NewString,
	}
}

// Service returns the provider name used as the error-name prefix.
func (c *Client) Service() string { return c.cfg.Service }

// BaseURL returns the endpoint root without a trailing slash.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// Get issues a GET and decodes the JSON response into out (if non-nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and a fresh idempotency key.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Do performs one request bounded by the configured timeout.
func (c *Client) Do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", c.cfg.Service, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", c.cfg.Service, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.AuthHeader != "" {
		req.Header.Set(c.cfg.AuthHeader, c.cfg.AuthValue)
	}
	if method == http.MethodPost {
		req.Header.Set(IdempotencyKeyHeader, c.idempotencyKey())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("upstream request failed", "method", method, "path", path, "error", err)
		return NewTransportError(c.cfg.Service, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		uerr := NewError(c.cfg.Service, resp.StatusCode, string(raw))
		c.logger.Warn("upstream returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"name", uerr.Name,
			"message", uerr.Message,
		)
		return uerr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to decode response: %w", c.cfg.Service, err)
	}
	return nil
}

// FetchBytes downloads an absolute URL (e.g. a signed document image link) without
// provider auth headers.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", c.cfg.Service, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewTransportError(c.cfg.Service, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, NewError(c.cfg.Service, resp.StatusCode, string(raw))
	}
	return io.ReadAll(resp.Body)
}
