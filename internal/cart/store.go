package cart

import (
	"sync"
	"time"

	"github.com/abgdnv/scentshop/internal/catalog"
	shoperrors "github.com/abgdnv/scentshop/internal/errors"
	"github.com/shopspring/decimal"
)

// Store owns one cart. Mutations are serialized through Dispatch.
type Store struct {
	mu          sync.Mutex
	state       State
	checkingOut bool
	lastActive  time.Time
	now         func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the clock used to track activity.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns an empty, hidden cart.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		state: State{Items: []LineItem{}},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastActive = s.now()
	return s
}

// Dispatch applies a to the cart and returns a copy of the resulting state.
// A rejected action leaves the cart unchanged.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = s.now()
	next, err := Reduce(s.state, a)
	if err != nil {
		return s.state.clone(), err
	}
	s.state = next
	return s.state.clone(), nil
}

func (s *Store) AddItem(product catalog.Product, quantity int) error {
	_, err := s.Dispatch(AddItem(product, quantity))
	return err
}

func (s *Store) RemoveItem(productID string) {
	_, _ = s.Dispatch(RemoveItem(productID))
}

func (s *Store) UpdateQuantity(productID string, quantity int) {
	_, _ = s.Dispatch(UpdateQuantity(productID, quantity))
}

func (s *Store) Clear() {
	_, _ = s.Dispatch(Clear())
}

// DeductOrdered removes what an accepted order contained and keeps anything added since.
func (s *Store) DeductOrdered(items []LineItem) {
	_, _ = s.Dispatch(DeductOrdered(items))
}

// ToggleVisibility flips the drawer flag and returns the new value.
func (s *Store) ToggleVisibility() bool {
	st, _ := s.Dispatch(ToggleVisibility())
	return st.Visible
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems()
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalPrice()
}

// BeginCheckout marks a submission as in flight. Only one may be pending per cart.
func (s *Store) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return shoperrors.ErrCheckoutInProgress
	}
	s.checkingOut = true
	s.lastActive = s.now()
	return nil
}

// EndCheckout releases the mark set by BeginCheckout.
func (s *Store) EndCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkingOut = false
}

// idleSince reports whether the cart has been untouched since before cutoff.
// Carts with a pending checkout are never idle.
func (s *Store) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.checkingOut && s.lastActive.Before(cutoff)
}
