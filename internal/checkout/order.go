package checkout

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/scentshop/internal/cart"
	"github.com/abgdnv/scentshop/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentCard = "card"
	PaymentCOD  = "cod"
)

// dateLayout is ISO-8601 in UTC with millisecond precision.
const dateLayout = "2006-01-02T15:04:05.000Z"

// Customer holds the shipping details collected by the checkout form.
type Customer struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Address      string `json:"address" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	ZipCode      string `json:"zipCode" validate:"required"`
}

// Request is a checkout submission. Card details are checked for presence only and are never forwarded.
type Request struct {
	Customer      Customer `json:"customer" validate:"required"`
	PaymentMethod string   `json:"paymentMethod" validate:"required,oneof=card cod"`
	CardNumber    string   `json:"cardNumber,omitempty" validate:"required_if=PaymentMethod card"`
	CardExpiry    string   `json:"cardExpiry,omitempty" validate:"required_if=PaymentMethod card"`
	CardCVC       string   `json:"cardCvc,omitempty" validate:"required_if=PaymentMethod card"`
}

// Order is the payload posted to the order sink.
type Order struct {
	Customer      Customer        `json:"customer"`
	Items         []cart.LineItem `json:"items"`
	PaymentMethod string          `json:"paymentMethod"`
	Quote
	Date string `json:"date"`
}

// MarshalJSON encodes the order with every amount as a JSON number, which is
// what the order endpoint expects. Elsewhere decimals keep the quoted form.
func (o Order) MarshalJSON() ([]byte, error) {
	items := make([]orderLine, len(o.Items))
	for i, item := range o.Items {
		items[i] = newOrderLine(item)
	}
	return json.Marshal(struct {
		Customer      Customer    `json:"customer"`
		Items         []orderLine `json:"items"`
		PaymentMethod string      `json:"paymentMethod"`
		Subtotal      json.Number `json:"subtotal"`
		Shipping      json.Number `json:"shipping"`
		Tax           json.Number `json:"tax"`
		Total         json.Number `json:"total"`
		Date          string      `json:"date"`
	}{
		Customer:      o.Customer,
		Items:         items,
		PaymentMethod: o.PaymentMethod,
		Subtotal:      number(o.Subtotal),
		Shipping:      number(o.Shipping),
		Tax:           number(o.Tax),
		Total:         number(o.Total),
		Date:          o.Date,
	})
}

// orderLine shadows the decimal prices of a line item with numeric ones.
type orderLine struct {
	cart.LineItem
	Price    json.Number    `json:"price"`
	Variants []orderVariant `json:"variants,omitempty"`
}

type orderVariant struct {
	catalog.Variant
	Price *json.Number `json:"price,omitempty"`
}

func newOrderLine(item cart.LineItem) orderLine {
	line := orderLine{LineItem: item, Price: number(item.Price)}
	for _, v := range item.Variants {
		ov := orderVariant{Variant: v}
		if v.Price != nil {
			p := number(*v.Price)
			ov.Price = &p
		}
		line.Variants = append(line.Variants, ov)
	}
	return line
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// Summary is the checkout preview of a cart.
type Summary struct {
	Items      []cart.LineItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	Quote      Quote           `json:"quote"`
}

// Receipt is returned after the order sink accepted an order.
type Receipt struct {
	Reference uuid.UUID `json:"reference"`
	Quote     Quote     `json:"quote"`
	ItemCount int       `json:"itemCount"`
	PlacedAt  time.Time `json:"placedAt"`
}
