// Package ordersink posts checkout orders to the external order-placement endpoint.
package ordersink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/abgdnv/scentshop/internal/checkout"
	"github.com/abgdnv/scentshop/pkg/client/httpclient"
	"github.com/abgdnv/scentshop/pkg/config"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order sink responded with status %d", e.StatusCode)
}

// Client implements checkout.OrderPlacer over HTTP. Requests are not retried.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	base http.RoundTripper
}

// WithTransport sets the transport beneath the breaker and tracing layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.base = rt
	}
}

// NewClient creates a client posting to cfg.URL. Every call goes through cb.
func NewClient(cfg config.OrderSinkConfig, cb *gobreaker.CircuitBreaker[*http.Response], logger *slog.Logger, opts ...Option) *Client {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	transport := otelhttp.NewTransport(httpclient.NewBreakerTransport(o.base, cb))
	return &Client{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger.With("component", "ordersink"),
	}
}

var _ checkout.OrderPlacer = (*Client)(nil)

// PlaceOrder posts order as JSON. Any 2xx response is success.
func (c *Client) PlaceOrder(ctx context.Context, order checkout.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post order: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	c.logger.DebugContext(ctx, "order accepted", "status", resp.StatusCode, "items", len(order.Items))
	return nil
}
