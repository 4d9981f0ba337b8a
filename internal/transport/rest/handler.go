// Package rest provides HTTP handlers for catalog, cart and checkout operations.
package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/scentshop/internal/cart"
	"github.com/abgdnv/scentshop/internal/catalog"
	"github.com/abgdnv/scentshop/internal/checkout"
	shoperrors "github.com/abgdnv/scentshop/internal/errors"
	"github.com/abgdnv/scentshop/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutService prices and submits carts.
type CheckoutService interface {
	Preview(store *cart.Store) (*checkout.Summary, error)
	Checkout(ctx context.Context, cartID uuid.UUID, store *cart.Store, req checkout.Request) (*checkout.Receipt, error)
}

type Handler struct {
	products catalog.ProductStore
	carts    *cart.Registry
	checkout CheckoutService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(products catalog.ProductStore, carts *cart.Registry, checkout CheckoutService, validate *validator.Validate, logger *slog.Logger) *Handler {
	return &Handler{
		products: products,
		carts:    carts,
		checkout: checkout,
		validate: validate,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the storefront HTTP routes.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindProducts)
		r.Get("/categories", h.Categories)
		r.Get("/bestselling/{collection}", h.BestSelling)
		r.Get("/{id}", h.FindProductByID)
	})
	r.Route("/api/v1/carts", func(r chi.Router) {
		r.Post("/", h.CreateCart)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{productId}", h.UpdateQuantity)
			r.Delete("/items/{productId}", h.RemoveItem)
			r.Post("/visibility", h.ToggleVisibility)
			r.Get("/checkout", h.PreviewCheckout)
			r.Post("/checkout", h.Checkout)
		})
	})
	r.Get("/healthz", h.HealthCheck)
}

// cartView is the JSON representation of a cart.
type cartView struct {
	ID         uuid.UUID       `json:"id"`
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Visible    bool            `json:"visible"`
}

func newCartView(id uuid.UUID, state cart.State) cartView {
	return cartView{
		ID:         id,
		Items:      state.Items,
		TotalItems: state.TotalItems(),
		TotalPrice: state.TotalPrice(),
		Visible:    state.Visible,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  *int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// FindProducts lists the catalog, optionally filtered by ?category=.
func (h *Handler) FindProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	category := r.URL.Query().Get("category")

	var (
		list []catalog.Product
		err  error
	)
	if category != "" {
		list, err = h.products.FindByCategory(category)
	} else {
		list, err = h.products.FindAll()
	}
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "category", category, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "category", category, "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Categories lists the unique product categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	categories, err := h.products.Categories()
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving categories", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, categories)
}

// BestSelling lists the products of a best-selling collection.
func (h *Handler) BestSelling(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	collection := r.PathValue("collection")
	list, err := h.products.BestSelling(collection)
	if err != nil {
		h.respondError(w, r, mLogger, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	id := r.PathValue("id")
	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.products.FindByID(id)
	if err != nil {
		h.respondError(w, r, mLogger, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// CreateCart opens a new empty cart.
func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	id, _ := h.carts.Create()
	mLogger.InfoContext(r.Context(), "Cart created", "cart_id", id)
	web.RespondJSON(w, mLogger, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

// GetCart returns the cart with its derived totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	id, store, ok := h.lookupCart(w, r, mLogger)
	if !ok {
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, newCartView(id, store.Snapshot()))
}

// ClearCart removes every line item.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func() (cart.Action, bool) {
		return cart.Clear(), true
	})
}

// AddItem resolves a product (and optional variant) and adds it to the cart.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	h.dispatch(w, r, func() (cart.Action, bool) {
		var req addItemRequest
		if !web.DecodeJSON(w, r, mLogger, &req) {
			return cart.Action{}, false
		}
		if err := h.validate.Struct(req); err != nil {
			web.RespondValidation(w, r, mLogger, err)
			return cart.Action{}, false
		}
		product, err := h.products.Resolve(req.ProductID, req.VariantID)
		if err != nil {
			h.respondError(w, r, mLogger, err)
			return cart.Action{}, false
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		return cart.AddItem(*product, quantity), true
	})
}

// UpdateQuantity sets the quantity of a line item. Zero or less removes it.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	h.dispatch(w, r, func() (cart.Action, bool) {
		var req updateQuantityRequest
		if !web.DecodeJSON(w, r, mLogger, &req) {
			return cart.Action{}, false
		}
		if err := h.validate.Struct(req); err != nil {
			web.RespondValidation(w, r, mLogger, err)
			return cart.Action{}, false
		}
		return cart.UpdateQuantity(r.PathValue("productId"), *req.Quantity), true
	})
}

// RemoveItem drops a line item from the cart.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func() (cart.Action, bool) {
		return cart.RemoveItem(r.PathValue("productId")), true
	})
}

// ToggleVisibility flips the cart drawer flag.
func (h *Handler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, func() (cart.Action, bool) {
		return cart.ToggleVisibility(), true
	})
}

// PreviewCheckout returns the cart with its shipping, tax and total.
func (h *Handler) PreviewCheckout(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	_, store, ok := h.lookupCart(w, r, mLogger)
	if !ok {
		return
	}
	summary, err := h.checkout.Preview(store)
	if err != nil {
		h.respondError(w, r, mLogger, err)
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, summary)
}

// Checkout submits the cart as an order.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithRoute(r)
	id, store, ok := h.lookupCart(w, r, mLogger)
	if !ok {
		return
	}
	var req checkout.Request
	if !web.DecodeJSON(w, r, mLogger, &req) {
		return
	}
	mLogger.DebugContext(r.Context(), "Received checkout request", "cart_id", id, "payment_method", req.PaymentMethod)
	receipt, err := h.checkout.Checkout(r.Context(), id, store, req)
	if err != nil {
		h.respondError(w, r, mLogger, err)
		return
	}
	mLogger.InfoContext(r.Context(), "Checkout completed", "cart_id", id, "reference", receipt.Reference)
	web.RespondJSON(w, mLogger, http.StatusCreated, receipt)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// dispatch looks up the cart, builds an action and applies it. build writes its own error response when it returns false.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, build func() (cart.Action, bool)) {
	mLogger := h.loggerWithRoute(r)
	id, store, ok := h.lookupCart(w, r, mLogger)
	if !ok {
		return
	}
	action, ok := build()
	if !ok {
		return
	}
	state, err := store.Dispatch(action)
	if err != nil {
		h.respondError(w, r, mLogger, err)
		return
	}
	mLogger.DebugContext(r.Context(), "Cart updated", "cart_id", id, "action", action.Kind.String(), "total_items", state.TotalItems())
	web.RespondJSON(w, mLogger, http.StatusOK, newCartView(id, state))
}

func (h *Handler) lookupCart(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, *cart.Store, bool) {
	id, ok := web.ParseUUID(w, r, logger, "id")
	if !ok {
		return uuid.Nil, nil, false
	}
	store, err := h.carts.Get(id)
	if err != nil {
		h.respondError(w, r, logger, err)
		return uuid.Nil, nil, false
	}
	return id, store, true
}

// respondError maps domain errors to HTTP status codes.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ctx := r.Context()
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		web.RespondValidation(w, r, logger, err)
	case errors.Is(err, shoperrors.ErrCartNotFound),
		errors.Is(err, shoperrors.ErrProductNotFound),
		errors.Is(err, shoperrors.ErrVariantNotFound),
		errors.Is(err, shoperrors.ErrUnknownCollection):
		logger.WarnContext(ctx, "Resource not found", "error", err)
		web.RespondError(w, logger, http.StatusNotFound, err.Error())
	case errors.Is(err, shoperrors.ErrInvalidQuantity), errors.Is(err, shoperrors.ErrEmptyCart):
		logger.WarnContext(ctx, "Rejected cart operation", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, shoperrors.ErrCheckoutInProgress):
		logger.WarnContext(ctx, "Concurrent checkout rejected", "error", err)
		web.RespondError(w, logger, http.StatusConflict, err.Error())
	case errors.Is(err, shoperrors.ErrPlaceOrder):
		logger.ErrorContext(ctx, "Order placement failed", "error", err)
		web.RespondError(w, logger, http.StatusBadGateway, "Failed to place order. Please try again.")
	default:
		logger.ErrorContext(ctx, "Unexpected error", "error", err)
		web.RespondError(w, logger, http.StatusInternalServerError, "Internal server error")
	}
}

// loggerWithRoute creates a request logger tagged with the matched route pattern.
// The request ID is added by the context-aware log handler.
func (h *Handler) loggerWithRoute(r *http.Request) *slog.Logger {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return h.logger.With("route", pattern)
		}
	}
	return h.logger
}
