package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrUpstream marks a failed call to a third-party service: network error,
// 5xx, 429 or an open circuit.
var ErrUpstream = errors.New("upstream unavailable")

// Doer is the part of *http.Client the breaker needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BreakerClient routes requests through a circuit breaker. After consecutive
// failures the breaker opens and calls fail fast until the cool-down passes.
type BreakerClient struct {
	client  Doer
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

// BreakerSettings tunes when the circuit opens and how long it stays open.
type BreakerSettings struct {
	MaxFailures uint32
	OpenFor     time.Duration
}

// DefaultBreakerSettings opens after 5 consecutive failures for 30s.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{MaxFailures: 5, OpenFor: 30 * time.Second}
}

// NewBreakerClient wraps client with a breaker called name.
func NewBreakerClient(client Doer, name string, s BreakerSettings) *BreakerClient {
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     s.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
	})
	return &BreakerClient{client: client, breaker: cb}
}

// Do sends req and tags it with the request ID found in its context.
// Responses with status < 500 other than 429 are returned to the caller as-is;
// the caller closes the body.
func (c *BreakerClient) Do(req *http.Request) (*http.Response, error) {
	if id := RequestIDFromContext(req.Context()); id != "" {
		req.Header.Set(HeaderRequestID, id)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		r, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if r.StatusCode >= 500 || r.StatusCode == http.StatusTooManyRequests {
			r.Body.Close()
			return nil, fmt.Errorf("status %d", r.StatusCode)
		}
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUpstream, req.Method, req.URL.Host, err)
	}
	return resp, nil
}

// State exposes the breaker state, mainly for logs and tests.
func (c *BreakerClient) State() gobreaker.State {
	return c.breaker.State()
}
