package github

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// limitedTransport wraps a RoundTripper and caps the outbound request rate.
// Blocks until the call rate is within limit or the request context ends.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// newLimitedTransport creates a rate-capped transport.
// maxRate is the maximum number of requests per second.
func newLimitedTransport(base http.RoundTripper, maxRate float64) http.RoundTripper {
	return &limitedTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(maxRate), 1),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *limitedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(r.Context()); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return t.base.RoundTrip(r)
}
