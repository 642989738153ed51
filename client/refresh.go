package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// TokenRefresher exchanges a refresh token for a new access token. newRefreshToken
// is empty when the server does not rotate refresh tokens.
type TokenRefresher interface {
	PerformTokenRefresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
}

// HTTPRefresher calls the refresh endpoint on its own HTTP client, outside the
// Client pipeline, so a failing refresh never re-enters the 401 handling.
type HTTPRefresher struct {
	BaseURL    string
	HTTPClient *http.Client
}

// PerformTokenRefresh posts refreshToken to the refresh endpoint.
func (h *HTTPRefresher) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, string, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return "", "", fmt.Errorf("failed to encode refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(h.BaseURL, "/")+RefreshPath, bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	hc := h.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to post token refresh: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "", "", fmt.Errorf("failed to read token refresh response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", &HTTPError{Method: http.MethodPost, Path: RefreshPath, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", fmt.Errorf("failed to parse token refresh response: %w", err)
	}
	if result.AccessToken == "" {
		return "", "", ErrNoAccessToken
	}
	return result.AccessToken, result.RefreshToken, nil
}

// pendingRequest is a request that got a 401 while a refresh was in flight.
// Its waiter re-sends it once the refresh hands over the new access token.
type pendingRequest struct {
	path string
	done chan refreshOutcome
}

type refreshOutcome struct {
	access string
	err    error
}

// recoverUnauthorized decides what to do with a failed call. Only a 401 on a
// regular endpoint, not yet retried, with a refresh token available, leads to
// a refresh (or to waiting for the one already running).
func (c *Client) recoverUnauthorized(ctx context.Context, r *Request, err error) (*Response, error) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusUnauthorized {
		return nil, err
	}
	if isAuthEndpoint(r.Path) || r.retried {
		return nil, err
	}

	c.mu.Lock()
	refreshToken := c.store.Refresh()
	if refreshToken == "" {
		c.mu.Unlock()
		log.Warn().Str("path", r.Path).Msg("Got 401 without a refresh token, ending session")
		c.endSession()
		return nil, err
	}

	r.retried = true
	if c.refreshing {
		p := &pendingRequest{path: r.Path, done: make(chan refreshOutcome, 1)}
		c.pending = append(c.pending, p)
		queuedTotal.Inc()
		c.mu.Unlock()

		log.Debug().Str("path", r.Path).Msg("Refresh in flight, queueing request")
		select {
		case out := <-p.done:
			if out.err != nil {
				return nil, out.err
			}
			return c.send(ctx, r, out.access)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	log.Info().Str("path", r.Path).Msg("Access token rejected, refreshing...")
	access, rotated, refreshErr := c.refresher.PerformTokenRefresh(context.WithoutCancel(ctx), refreshToken)
	if refreshErr == nil && access == "" {
		refreshErr = ErrNoAccessToken
	}
	if refreshErr != nil {
		refreshTotal.WithLabelValues("failure").Inc()
		failure := &RefreshError{Err: refreshErr}
		for _, p := range c.takePending(true) {
			p.done <- refreshOutcome{err: failure}
		}
		log.Error().Err(refreshErr).Msg("Token refresh failed, ending session")
		c.runSessionExpiredHooks()
		return nil, failure
	}

	refreshTotal.WithLabelValues("success").Inc()
	if err := c.store.SetTokens(access, rotated); err != nil {
		log.Error().Err(err).Msg("Failed to save refreshed tokens")
	}
	log.Info().Bool("refresh_rotated", rotated != "").Msg("Token refreshed and saved successfully.")

	// Waiters are released in arrival order and re-send on their own goroutines.
	for _, p := range c.takePending(false) {
		p.done <- refreshOutcome{access: access}
	}
	return c.send(ctx, r, access)
}

// takePending empties the queue and clears the in-flight flag in one step, so
// no request can join a refresh that has already resolved. With clearTokens the
// stored tokens go in the same step.
func (c *Client) takePending(clearTokens bool) []*pendingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := c.pending
	c.pending = nil
	c.refreshing = false
	if clearTokens {
		c.clearTokens()
	}
	return pending
}

// endSession clears the tokens and runs the session-expired hooks.
func (c *Client) endSession() {
	c.clearTokens()
	c.runSessionExpiredHooks()
}

func (c *Client) clearTokens() {
	if err := c.store.Clear(); err != nil {
		log.Error().Err(err).Msg("Failed to clear tokens")
	}
}

func (c *Client) runSessionExpiredHooks() {
	c.hooksMu.Lock()
	hooks := append([]func(){}, c.hooks...)
	c.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

func isAuthEndpoint(path string) bool {
	return strings.Contains(path, LoginPath) || strings.Contains(path, RefreshPath)
}
