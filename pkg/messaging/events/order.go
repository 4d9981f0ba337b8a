package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/scentshop/pkg/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderPlacedEvent is emitted after the order sink accepted an order.
type OrderPlacedEvent struct {
	Reference     uuid.UUID         `json:"reference"`
	CartID        uuid.UUID         `json:"cart_id"`
	ItemCount     int               `json:"item_count"`
	PaymentMethod string            `json:"payment_method"`
	Total         decimal.Decimal   `json:"total"`
	PlacedAt      time.Time         `json:"placed_at"`
	Carrier       map[string]string `json:"carrier,omitempty"`
}

func (o OrderPlacedEvent) Subject() string {
	return messaging.OrdersPlacedSubject
}

func (o OrderPlacedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
