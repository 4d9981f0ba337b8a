// Package httpclient provides resilient outbound HTTP plumbing.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/abgdnv/scentshop/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// ServerError reports a 5xx response. It only lives inside the breaker: callers still receive the response.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}

// NewCircuitBreaker builds a breaker that trips on consecutive failures or on the error rate.
// Transport errors and 5xx responses are failures, client cancellations are not.
func NewCircuitBreaker(name string, cfg config.CircuitBreakerConfig) *gobreaker.CircuitBreaker[*http.Response] {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= cfg.ConsecutiveFailures {
				return true
			}
			total := counts.TotalSuccesses + counts.TotalFailures
			return cfg.ErrorRatePercent > 0 && total > cfg.ConsecutiveFailures &&
				float64(counts.TotalFailures)/float64(total)*100 > float64(cfg.ErrorRatePercent)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return gobreaker.NewCircuitBreaker[*http.Response](st)
}

// BreakerTransport is an http.RoundTripper that routes every request through a circuit breaker.
// While the breaker is open requests fail fast with gobreaker.ErrOpenState.
type BreakerTransport struct {
	next http.RoundTripper
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

// NewBreakerTransport wraps next, http.DefaultTransport when nil.
func NewBreakerTransport(next http.RoundTripper, cb *gobreaker.CircuitBreaker[*http.Response]) *BreakerTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &BreakerTransport{next: next, cb: cb}
}

func (t *BreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.cb.Execute(func() (*http.Response, error) {
		resp, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, &ServerError{StatusCode: resp.StatusCode}
		}
		return resp, nil
	})
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return resp, nil
	}
	return resp, err
}
