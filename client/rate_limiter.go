package client

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// newRateLimiter returns nil (no limit) when rps <= 0.
func newRateLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 || math.IsInf(rps, 1) {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// waitForRateLimit blocks until the limiter lets the next request through.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
