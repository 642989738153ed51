package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Authentication endpoints. A 401 from either never triggers a refresh.
const (
	LoginPath   = "/api/v1/auth/login"
	RefreshPath = "/api/v1/auth/refresh"
	MePath      = "/api/v1/users/me"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// TokenStore is where the client reads and writes the session tokens.
// An empty string means the token is absent.
type TokenStore interface {
	Access() string
	Refresh() string
	SetTokens(access, refresh string) error
	Clear() error
}

// Request describes one API call. Body, when set, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Body   any

	payload []byte
	retried bool
}

// Response is a successful (2xx) API response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client is the shared request pipeline. It attaches the bearer token to each
// request and, on a 401, refreshes the session once and replays the requests
// that failed while the refresh was running.
type Client struct {
	baseURL   string
	http      *http.Client
	store     TokenStore
	refresher TokenRefresher
	limiter   *rate.Limiter

	hooksMu sync.Mutex
	hooks   []func()

	mu         sync.Mutex
	refreshing bool
	pending    []*pendingRequest
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for regular API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRefresher replaces the component that exchanges a refresh token for new tokens.
func WithRefresher(r TokenRefresher) Option {
	return func(c *Client) { c.refresher = r }
}

// WithRefreshHTTPClient sets the client used by the default refresher. It must
// not route through this Client.
func WithRefreshHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hr, ok := c.refresher.(*HTTPRefresher); ok {
			hr.HTTPClient = hc
		}
	}
}

// WithTimeout sets the timeout of the default HTTP clients.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
		if hr, ok := c.refresher.(*HTTPRefresher); ok && hr.HTTPClient != nil {
			hr.HTTPClient.Timeout = d
		}
	}
}

// WithRateLimit caps outbound requests to rps per second. rps <= 0 disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = newRateLimiter(rps, burst) }
}

// WithSessionExpiredHook registers fn to run whenever the session is terminated.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.OnSessionExpired(fn) }
}

// New creates a Client for baseURL using store for tokens.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL: baseURL,
		http:    newHTTPClient(30 * time.Second),
		store:   store,
		refresher: &HTTPRefresher{
			BaseURL:    baseURL,
			HTTPClient: newHTTPClient(30 * time.Second),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens returns the store the client reads tokens from.
func (c *Client) Tokens() TokenStore { return c.store }

// OnSessionExpired registers fn to run whenever the session is terminated.
func (c *Client) OnSessionExpired(fn func()) {
	if fn == nil {
		return
	}
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Do sends r. A 401 is recovered transparently when the session can be
// refreshed; every other failure is returned unchanged.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	if r.Body != nil && r.payload == nil {
		payload, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		r.payload = payload
	}

	resp, err := c.send(ctx, r, c.store.Access())
	if err == nil {
		return resp, nil
	}
	return c.recoverUnauthorized(ctx, r, err)
}

// Get sends a GET and decodes the JSON response into out when out is not nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out when out is not nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out when out is not nil.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, body, out)
}

// Delete sends a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, &Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		log.Error().Err(err).Str("body_preview", bodyPreview(resp.Body)).Msg("Failed to parse response JSON")
		return fmt.Errorf("failed to parse response of %s %s: %w", method, path, err)
	}
	return nil
}

// createRequest builds the outgoing request, attaching token when present.
func (c *Client) createRequest(ctx context.Context, r *Request, token string) (*http.Request, error) {
	var body io.Reader
	if r.payload != nil {
		body = bytes.NewReader(r.payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.url(r.Path), body)
	if err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.Path).Msg("Failed to create HTTP request object")
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if r.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// send performs a single attempt of r with token. Non-2xx statuses come back as *HTTPError.
func (c *Client) send(ctx context.Context, r *Request, token string) (*Response, error) {
	if err := c.waitForRateLimit(ctx); err != nil {
		return nil, err
	}

	req, err := c.createRequest(ctx, r, token)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("method", r.Method).Str("path", r.Path).Bool("authenticated", token != "").Msg("Sending HTTP request")
	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(r.Method, "error").Inc()
		log.Error().Err(err).Str("method", r.Method).Str("path", r.Path).Msg("HTTP request failed")
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}

	body, err := readResponseBody(resp)
	requestsTotal.WithLabelValues(r.Method, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().Str("method", r.Method).Str("path", r.Path).Int("status", resp.StatusCode).Msg("HTTP request returned non-OK status")
		return nil, &HTTPError{Method: r.Method, Path: r.Path, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", r.Method, r.Path, err)
	}

	log.Debug().Str("method", r.Method).Str("path", r.Path).Int("status", resp.StatusCode).Msg("HTTP request successful")
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", resp.Request.URL.String()).Msg("Failed to read response body")
		return nil, err
	}
	return body, nil
}

func bodyPreview(body []byte) string {
	return string(body[:min(len(body), 200)])
}
