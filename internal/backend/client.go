// Package backend talks to the password generation service over its REST API.
package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/passgen/passgen-frontend/internal/metrics"
	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/requestid"
)

const (
	configPath    = "/api/v1/config/"
	passwordsPath = "/api/v1/passwords"

	endpointConfig    = "config"
	endpointPasswords = "passwords"

	maxBodySize = 4 << 20 // 1000 passwords fit comfortably
)

// Client is a REST client for the password backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	metrics *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithMetrics records request counts and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for the backend at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must use http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Limits fetches the password length limits from the config endpoint.
func (c *Client) Limits(ctx context.Context) (model.Limits, error) {
	body, err := c.get(ctx, endpointConfig, configPath, nil)
	if err != nil {
		return model.Limits{}, err
	}
	return DecodeLimits(body)
}

// Passwords requests req.Count passwords. Zero bounds in req.Settings are not sent.
func (c *Client) Passwords(ctx context.Context, req model.GenerateRequest) ([]model.Password, error) {
	body, err := c.get(ctx, endpointPasswords, passwordsPath, passwordsQuery(req))
	if err != nil {
		return nil, err
	}

	records, schema, err := DecodePasswords(body)
	if err != nil {
		return nil, err
	}
	slog.Debug("decoded passwords", "count", len(records), "schema", schema)
	return records, nil
}

func passwordsQuery(req model.GenerateRequest) url.Values {
	q := url.Values{}
	q.Set("num", strconv.Itoa(req.Count))
	if req.Settings.MinLength > 0 {
		q.Set("minPasswordLength", strconv.Itoa(req.Settings.MinLength))
	}
	if req.Settings.MaxLength > 0 {
		q.Set("maxPasswordLength", strconv.Itoa(req.Settings.MaxLength))
	}
	return q
}

func (c *Client) endpointURL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	ctx, id := requestid.Ensure(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(path, query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.Header, id)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.metrics.ObserveBackend(endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrTransport, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.ObserveBackend(endpoint, "status_"+strconv.Itoa(resp.StatusCode), time.Since(start))
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	c.metrics.ObserveBackend(endpoint, "ok", time.Since(start))
	return body, nil
}
