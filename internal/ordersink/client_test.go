package ordersink

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abgdnv/scentshop/internal/cart"
	"github.com/abgdnv/scentshop/internal/catalog"
	"github.com/abgdnv/scentshop/internal/checkout"
	"github.com/abgdnv/scentshop/pkg/client/httpclient"
	"github.com/abgdnv/scentshop/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func breakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{ConsecutiveFailures: 3, OpenTimeout: time.Minute, HalfOpenRequests: 1}
}

func sampleOrder() checkout.Order {
	return checkout.Order{
		Customer: checkout.Customer{FirstName: "Layla", LastName: "Haddad", Email: "layla@example.com"},
		Items: []cart.LineItem{
			{Product: catalog.Product{ID: "A", Name: "Oud Royale", Price: decimal.NewFromInt(100)}, Quantity: 2},
		},
		PaymentMethod: checkout.PaymentCOD,
		Quote:         checkout.NewQuote(decimal.NewFromInt(200)),
		Date:          "2025-03-14T08:26:53.589Z",
	}
}

func newClient(t *testing.T, url string, timeout time.Duration) *Client {
	t.Helper()
	cb := httpclient.NewCircuitBreaker("ordersink-test", breakerConfig())
	return NewClient(config.OrderSinkConfig{URL: url, Timeout: timeout}, cb, testLogger)
}

func Test_Client_PlaceOrder_StatusHandling(t *testing.T) {
	testCases := []struct {
		name       string
		status     int
		expectCode int
	}{
		{name: "Success - 200", status: http.StatusOK},
		{name: "Success - 201", status: http.StatusCreated},
		{name: "Success - 204", status: http.StatusNoContent},
		{name: "Error - 400", status: http.StatusBadRequest, expectCode: http.StatusBadRequest},
		{name: "Error - 500", status: http.StatusInternalServerError, expectCode: http.StatusInternalServerError},
		{name: "Error - 302 is not success", status: http.StatusFound, expectCode: http.StatusFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.status == http.StatusFound {
					w.Header().Set("Location", "/elsewhere")
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			// when
			err := newClient(t, srv.URL, time.Second).PlaceOrder(context.Background(), sampleOrder())

			// then
			if tc.expectCode == 0 {
				assert.NoError(t, err)
				return
			}
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tc.expectCode, statusErr.StatusCode)
		})
	}
}

func Test_Client_PlaceOrder_SendsPayload(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	require.NoError(t, newClient(t, srv.URL, time.Second).PlaceOrder(context.Background(), sampleOrder()))

	assert.Equal(t, "cod", received["paymentMethod"])
	assert.Equal(t, float64(200), received["subtotal"])
	assert.Equal(t, float64(15), received["shipping"])
	assert.Equal(t, float64(14), received["tax"])
	assert.Equal(t, float64(229), received["total"])
	assert.Equal(t, "2025-03-14T08:26:53.589Z", received["date"])
	items := received["items"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].(map[string]any)["quantity"])
}

func Test_Client_PlaceOrder_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := newClient(t, srv.URL, 50*time.Millisecond).PlaceOrder(context.Background(), sampleOrder())

	assert.Error(t, err)
}

func Test_Client_PlaceOrder_BreakerOpens(t *testing.T) {
	// given
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	client := newClient(t, srv.URL, time.Second)

	// when
	for range 3 {
		var statusErr *StatusError
		require.ErrorAs(t, client.PlaceOrder(context.Background(), sampleOrder()), &statusErr)
	}
	err := client.PlaceOrder(context.Background(), sampleOrder())

	// then
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), hits.Load(), "open breaker must not reach the endpoint")
}
