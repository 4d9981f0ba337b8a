package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	shoperrors "github.com/abgdnv/scentshop/internal/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Registry owns one Store per shopper session.
type Registry struct {
	mu      sync.RWMutex
	carts   map[uuid.UUID]*Store
	idleTTL time.Duration
	now     func() time.Time
	logger  *slog.Logger

	created metric.Int64Counter
	evicted metric.Int64Counter
	active  metric.Int64UpDownCounter
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryClock overrides the clock handed to new carts.
func WithRegistryClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry creates an empty registry. Carts idle longer than idleTTL are removed by Sweep.
func NewRegistry(idleTTL time.Duration, logger *slog.Logger, opts ...RegistryOption) *Registry {
	meter := otel.Meter("github.com/abgdnv/scentshop/internal/cart")
	created, err := meter.Int64Counter("carts_created", metric.WithDescription("Number of carts created"))
	if err != nil {
		panic(err)
	}
	evicted, err := meter.Int64Counter("carts_evicted", metric.WithDescription("Number of idle carts evicted"))
	if err != nil {
		panic(err)
	}
	active, err := meter.Int64UpDownCounter("carts_active", metric.WithDescription("Number of carts held in memory"))
	if err != nil {
		panic(err)
	}

	r := &Registry{
		carts:   make(map[uuid.UUID]*Store),
		idleTTL: idleTTL,
		now:     time.Now,
		logger:  logger.With("component", "cart_registry"),
		created: created,
		evicted: evicted,
		active:  active,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new empty cart.
func (r *Registry) Create() (uuid.UUID, *Store) {
	id := uuid.New()
	store := NewStore(WithClock(r.now))

	r.mu.Lock()
	r.carts[id] = store
	r.mu.Unlock()

	ctx := context.Background()
	r.created.Add(ctx, 1)
	r.active.Add(ctx, 1)
	return id, store
}

// Get returns the cart for id or ErrCartNotFound.
func (r *Registry) Get(id uuid.UUID) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.carts[id]
	if !ok {
		return nil, shoperrors.ErrCartNotFound
	}
	return store, nil
}

// Delete drops the cart and reports whether it existed.
func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	_, ok := r.carts[id]
	delete(r.carts, id)
	r.mu.Unlock()

	if ok {
		r.active.Add(context.Background(), -1)
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

// Sweep evicts carts whose last activity is older than now - idleTTL and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.idleTTL)

	r.mu.Lock()
	removed := 0
	for id, store := range r.carts {
		if store.idleSince(cutoff) {
			delete(r.carts, id)
			removed++
		}
	}
	r.mu.Unlock()

	if removed > 0 {
		ctx := context.Background()
		r.evicted.Add(ctx, int64(removed))
		r.active.Add(ctx, int64(-removed))
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("cart sweeper started", "interval", interval, "idle_ttl", r.idleTTL)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("cart sweeper stopped")
			return nil
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				r.logger.Info("evicted idle carts", "count", n, "remaining", r.Len())
			}
		}
	}
}
