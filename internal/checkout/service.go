// Package checkout prices a cart and submits it as an order.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/scentshop/internal/cart"
	shoperrors "github.com/abgdnv/scentshop/internal/errors"
	"github.com/abgdnv/scentshop/pkg/messaging"
	"github.com/abgdnv/scentshop/pkg/messaging/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

// OrderPlacer submits an order to the external order endpoint.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order Order) error
}

// Service runs checkout for carts held in memory.
type Service struct {
	placer        OrderPlacer
	publisher     messaging.Publisher
	validate      *validator.Validate
	logger        *slog.Logger
	now           func() time.Time
	ordersCounter metric.Int64Counter
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp orders.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a checkout service. publisher may be messaging.NoopPublisher.
func NewService(placer OrderPlacer, publisher messaging.Publisher, validate *validator.Validate, logger *slog.Logger, opts ...Option) *Service {
	meter := otel.Meter("github.com/abgdnv/scentshop/internal/checkout")
	ordersCounter, err := meter.Int64Counter("orders_placed", metric.WithDescription("Total number of orders accepted by the order sink"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_placed counter: %v", err))
	}
	s := &Service{
		placer:        placer,
		publisher:     publisher,
		validate:      validate,
		logger:        logger.With("component", "checkout"),
		now:           time.Now,
		ordersCounter: ordersCounter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview returns the cart contents with their quote. Empty carts yield ErrEmptyCart.
func (s *Service) Preview(store *cart.Store) (*Summary, error) {
	state := store.Snapshot()
	if state.IsEmpty() {
		return nil, shoperrors.ErrEmptyCart
	}
	return &Summary{
		Items:      state.Items,
		TotalItems: state.TotalItems(),
		Quote:      NewQuote(state.TotalPrice()),
	}, nil
}

// Checkout validates req, posts the cart as an order and, on success, takes the ordered
// lines out of the cart. Lines added while the order was in flight stay in the cart.
// If the order sink fails the cart is left untouched and the error wraps ErrPlaceOrder.
// Validation failures are returned as validator.ValidationErrors.
func (s *Service) Checkout(ctx context.Context, cartID uuid.UUID, store *cart.Store, req Request) (*Receipt, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if err := store.BeginCheckout(); err != nil {
		return nil, err
	}
	defer store.EndCheckout()

	state := store.Snapshot()
	if state.IsEmpty() {
		return nil, shoperrors.ErrEmptyCart
	}

	placedAt := s.now().UTC()
	quote := NewQuote(state.TotalPrice())
	order := Order{
		Customer:      req.Customer,
		Items:         state.Items,
		PaymentMethod: req.PaymentMethod,
		Quote:         quote,
		Date:          placedAt.Format(dateLayout),
	}

	if err := s.placer.PlaceOrder(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "order sink rejected order", "cart_id", cartID, "error", err)
		return nil, fmt.Errorf("%w: %w", shoperrors.ErrPlaceOrder, err)
	}

	store.DeductOrdered(state.Items)

	receipt := &Receipt{
		Reference: uuid.New(),
		Quote:     quote,
		ItemCount: state.TotalItems(),
		PlacedAt:  placedAt,
	}
	s.ordersCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("payment_method", req.PaymentMethod)))
	s.logger.InfoContext(ctx, "order placed", "cart_id", cartID, "reference", receipt.Reference, "total", quote.Total.StringFixed(2))

	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	event := events.OrderPlacedEvent{
		Reference:     receipt.Reference,
		CartID:        cartID,
		ItemCount:     receipt.ItemCount,
		PaymentMethod: req.PaymentMethod,
		Total:         quote.Total,
		PlacedAt:      placedAt,
		Carrier:       carrier,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish OrderPlacedEvent", "reference", receipt.Reference, "error", err)
	}

	return receipt, nil
}
