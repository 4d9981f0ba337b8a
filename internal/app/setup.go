// Package app contains the application setup for the storefront service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/scentshop/internal/cart"
	"github.com/abgdnv/scentshop/internal/catalog"
	"github.com/abgdnv/scentshop/internal/checkout"
	"github.com/abgdnv/scentshop/internal/config"
	"github.com/abgdnv/scentshop/internal/ordersink"
	"github.com/abgdnv/scentshop/internal/transport/rest"
	"github.com/abgdnv/scentshop/pkg/client/httpclient"
	"github.com/abgdnv/scentshop/pkg/messaging"
	"github.com/abgdnv/scentshop/pkg/server"
	"github.com/abgdnv/scentshop/pkg/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Dependencies struct {
	Products catalog.ProductStore
	Carts    *cart.Registry
	Checkout *checkout.Service
	Validate *validator.Validate
	Logger   *slog.Logger
}

// SetupDependencies wires the catalog, cart registry and checkout service around placer and publisher.
func SetupDependencies(placer checkout.OrderPlacer, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) *Dependencies {
	validate := web.NewValidator()
	return &Dependencies{
		Products: catalog.NewStaticStore(),
		Carts:    cart.NewRegistry(cfg.Cart.IdleTTL, logger),
		Checkout: checkout.NewService(placer, publisher, validate, logger),
		Validate: validate,
		Logger:   logger,
	}
}

// NewOrderSink builds the HTTP order sink client guarded by a circuit breaker.
func NewOrderSink(cfg *config.Config, logger *slog.Logger) *ordersink.Client {
	cb := httpclient.NewCircuitBreaker("ordersink", cfg.CircuitBreaker)
	return ordersink.NewClient(cfg.OrderSink, cb, logger)
}

// SetupHttpHandler initializes the router and routes for the storefront.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the storefront.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.Products, deps.Carts, deps.Checkout, deps.Validate, deps.Logger)
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
}

// SetupHttpServer creates and configures an HTTP server for the storefront.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, "storefront", mux)
}
