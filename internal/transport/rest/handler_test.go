package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abgdnv/scentshop/internal/cart"
	"github.com/abgdnv/scentshop/internal/catalog"
	"github.com/abgdnv/scentshop/internal/checkout"
	"github.com/abgdnv/scentshop/pkg/messaging"
	"github.com/abgdnv/scentshop/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type placerFunc func(ctx context.Context, order checkout.Order) error

func (f placerFunc) PlaceOrder(ctx context.Context, order checkout.Order) error {
	return f(ctx, order)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	ValidationErrors map[string]string `json:"validation_errors"`
}

type cartResponse struct {
	ID         uuid.UUID       `json:"id"`
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Visible    bool            `json:"visible"`
}

func newTestRouter(t *testing.T, placer checkout.OrderPlacer) (*chi.Mux, *cart.Registry) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validate := web.NewValidator()
	registry := cart.NewRegistry(time.Hour, logger)
	svc := checkout.NewService(placer, messaging.NoopPublisher{}, validate, logger)
	h := NewHandler(catalog.NewStaticStore(), registry, svc, validate, logger)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, registry
}

func acceptAll() checkout.OrderPlacer {
	return placerFunc(func(context.Context, checkout.Order) error { return nil })
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createCart(t *testing.T, r http.Handler) string {
	t.Helper()
	rr := do(t, r, http.MethodPost, "/api/v1/carts", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	return decode[map[string]string](t, rr)["id"]
}

func Test_StorefrontAPI_Products(t *testing.T) {
	r, _ := newTestRouter(t, acceptAll())

	testCases := []struct {
		name         string
		path         string
		expectedCode int
		expectedLen  int
		expectedBody string
	}{
		{name: "Success - all products", path: "/api/v1/products", expectedCode: http.StatusOK, expectedLen: 6},
		{name: "Success - category filter", path: "/api/v1/products?category=Floral", expectedCode: http.StatusOK, expectedLen: 3},
		{name: "Success - unknown category is empty", path: "/api/v1/products?category=Aquatic", expectedCode: http.StatusOK, expectedLen: 0},
		{name: "Success - categories", path: "/api/v1/products/categories", expectedCode: http.StatusOK, expectedBody: `["Oriental","Woody","Floral","Spicy","Citrus","Fresh"]`},
		{name: "Success - mens best sellers", path: "/api/v1/products/bestselling/mens", expectedCode: http.StatusOK, expectedLen: 1},
		{name: "Error - unknown collection", path: "/api/v1/products/bestselling/kids", expectedCode: http.StatusNotFound},
		{name: "Error - product not found", path: "/api/v1/products/999", expectedCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := do(t, r, http.MethodGet, tc.path, "")

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			switch {
			case tc.expectedBody != "":
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			case tc.expectedCode == http.StatusOK:
				assert.Len(t, decode[[]catalog.Product](t, rr), tc.expectedLen)
			default:
				assert.NotEmpty(t, decode[ErrorResponse](t, rr).Error)
			}
		})
	}
}

func Test_StorefrontAPI_FindProductByID(t *testing.T) {
	r, _ := newTestRouter(t, acceptAll())

	rr := do(t, r, http.MethodGet, "/api/v1/products/4", "")

	require.Equal(t, http.StatusOK, rr.Code)
	p := decode[catalog.Product](t, rr)
	assert.Equal(t, "Celestial Oud", p.Name)
	assert.Equal(t, "390", p.Price.String())
	assert.Len(t, p.Variants, 3)
}

func Test_StorefrontAPI_CartLifecycle(t *testing.T) {
	r, _ := newTestRouter(t, acceptAll())
	id := createCart(t, r)
	base := "/api/v1/carts/" + id

	// empty cart
	rr := do(t, r, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rr.Code)
	c := decode[cartResponse](t, rr)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.False(t, c.Visible)

	// add defaults to quantity 1
	rr = do(t, r, http.MethodPost, base+"/items", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	c = decode[cartResponse](t, rr)
	assert.Equal(t, 1, c.TotalItems)
	assert.Equal(t, "280", c.TotalPrice.String())

	// adding again increments
	rr = do(t, r, http.MethodPost, base+"/items", `{"productId":"1","quantity":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	c = decode[cartResponse](t, rr)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, "840", c.TotalPrice.String())

	// variant becomes its own line
	rr = do(t, r, http.MethodPost, base+"/items", `{"productId":"4","variantId":"intense"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	c = decode[cartResponse](t, rr)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "4-intense", c.Items[1].ID)
	assert.Equal(t, "Celestial Oud Intense", c.Items[1].Name)
	assert.Equal(t, 4, c.TotalItems)
	assert.Equal(t, "1270", c.TotalPrice.String())

	// update sets quantity
	rr = do(t, r, http.MethodPut, base+"/items/4-intense", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 8, decode[cartResponse](t, rr).TotalItems)

	// update to zero removes
	rr = do(t, r, http.MethodPut, base+"/items/1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rr.Code)
	c = decode[cartResponse](t, rr)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "4-intense", c.Items[0].ID)

	// removing an absent item is a no-op
	rr = do(t, r, http.MethodDelete, base+"/items/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, decode[cartResponse](t, rr).TotalItems)

	// toggle visibility keeps items
	rr = do(t, r, http.MethodPost, base+"/visibility", "")
	require.Equal(t, http.StatusOK, rr.Code)
	c = decode[cartResponse](t, rr)
	assert.True(t, c.Visible)
	assert.Equal(t, 5, c.TotalItems)

	// remove
	rr = do(t, r, http.MethodDelete, base+"/items/4-intense", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[cartResponse](t, rr).Items)

	// clear
	do(t, r, http.MethodPost, base+"/items", `{"productId":"2"}`)
	rr = do(t, r, http.MethodDelete, base, "")
	require.Equal(t, http.StatusOK, rr.Code)
	c = decode[cartResponse](t, rr)
	assert.Empty(t, c.Items)
	assert.True(t, c.TotalPrice.IsZero())
}

func Test_StorefrontAPI_CartErrors(t *testing.T) {
	r, _ := newTestRouter(t, acceptAll())
	id := createCart(t, r)
	base := "/api/v1/carts/" + id

	testCases := []struct {
		name         string
		method       string
		path         string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Error - invalid cart id",
			method:       http.MethodGet,
			path:         "/api/v1/carts/not-a-uuid",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid ID: not-a-uuid"}`,
		},
		{
			name:         "Error - unknown cart",
			method:       http.MethodGet,
			path:         "/api/v1/carts/" + uuid.NewString(),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"cart not found"}`,
		},
		{
			name:         "Error - quantity above limit",
			method:       http.MethodPost,
			path:         base + "/items",
			body:         `{"productId":"1","quantity":11}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"quantity must be between 1 and 10: got 11"}`,
		},
		{
			name:         "Error - zero quantity on add",
			method:       http.MethodPost,
			path:         base + "/items",
			body:         `{"productId":"1","quantity":0}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"quantity must be between 1 and 10: got 0"}`,
		},
		{
			name:         "Error - non numeric quantity",
			method:       http.MethodPost,
			path:         base + "/items",
			body:         `{"productId":"1","quantity":"two"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - unknown product",
			method:       http.MethodPost,
			path:         base + "/items",
			body:         `{"productId":"999"}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - unknown variant",
			method:       http.MethodPost,
			path:         base + "/items",
			body:         `{"productId":"4","variantId":"mini"}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - missing product id",
			method:       http.MethodPost,
			path:         base + "/items",
			body:         `{"quantity":1}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"productId":"failed on rule: required"}}`,
		},
		{
			name:         "Error - unknown field",
			method:       http.MethodPost,
			path:         base + "/items",
			body:         `{"productId":"1","colour":"red"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"Invalid request body"}`,
		},
		{
			name:         "Error - update without quantity",
			method:       http.MethodPut,
			path:         base + "/items/1",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors":{"quantity":"failed on rule: required"}}`,
		},
		{
			name:         "Error - preview of empty cart",
			method:       http.MethodGet,
			path:         base + "/checkout",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"cart is empty"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			rr := do(t, r, tc.method, tc.path, tc.body)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}

	// no failed request changed the cart
	c := decode[cartResponse](t, do(t, r, http.MethodGet, base, ""))
	assert.Empty(t, c.Items)
}

const codCheckout = `{
	"customer": {
		"firstName": "Layla", "lastName": "Haddad", "email": "layla@example.com",
		"address": "1 Rose Street", "city": "Springfield", "state": "IL", "zipCode": "62701"
	},
	"paymentMethod": "cod"
}`

func Test_StorefrontAPI_Checkout(t *testing.T) {
	testCases := []struct {
		name         string
		placer       checkout.OrderPlacer
		body         string
		expectedCode int
		cartCleared  bool
	}{
		{
			name:         "Success - order placed",
			placer:       acceptAll(),
			body:         codCheckout,
			expectedCode: http.StatusCreated,
			cartCleared:  true,
		},
		{
			name: "Error - order sink failure keeps cart",
			placer: placerFunc(func(context.Context, checkout.Order) error {
				return errors.New("order sink responded with status 503")
			}),
			body:         codCheckout,
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "Error - card details missing",
			placer:       acceptAll(),
			body:         strings.Replace(codCheckout, `"cod"`, `"card"`, 1),
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			r, _ := newTestRouter(t, tc.placer)
			base := "/api/v1/carts/" + createCart(t, r)
			require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, base+"/items", `{"productId":"2","quantity":2}`).Code)

			preview := do(t, r, http.MethodGet, base+"/checkout", "")
			require.Equal(t, http.StatusOK, preview.Code)
			summary := decode[checkout.Summary](t, preview)
			assert.Equal(t, "500", summary.Quote.Subtotal.String())
			assert.Equal(t, "35", summary.Quote.Tax.String())
			assert.Equal(t, "550", summary.Quote.Total.String())

			// when
			rr := do(t, r, http.MethodPost, base+"/checkout", tc.body)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code, rr.Body.String())
			c := decode[cartResponse](t, do(t, r, http.MethodGet, base, ""))
			if tc.cartCleared {
				receipt := decode[checkout.Receipt](t, rr)
				assert.NotEqual(t, uuid.Nil, receipt.Reference)
				assert.Equal(t, 2, receipt.ItemCount)
				assert.Equal(t, "550", receipt.Quote.Total.String())
				assert.Empty(t, c.Items)
				return
			}
			assert.Equal(t, 2, c.TotalItems)
		})
	}
}

func Test_StorefrontAPI_CheckoutValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t, acceptAll())
	base := "/api/v1/carts/" + createCart(t, r)
	do(t, r, http.MethodPost, base+"/items", `{"productId":"2"}`)

	rr := do(t, r, http.MethodPost, base+"/checkout", `{"customer":{"firstName":"Layla"},"paymentMethod":"card","cardNumber":"4242"}`)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	errs := decode[ValidationErrorResponse](t, rr).ValidationErrors
	assert.Equal(t, "failed on rule: required", errs["customer.email"])
	assert.Equal(t, "failed on rule: required_if", errs["cardExpiry"])
	assert.Equal(t, "failed on rule: required_if", errs["cardCvc"])
	assert.NotContains(t, errs, "cardNumber")
	assert.NotContains(t, errs, "customer.addressLine2")
}

func Test_StorefrontAPI_HealthCheck(t *testing.T) {
	r, _ := newTestRouter(t, acceptAll())
	rr := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
