// Package cart holds shopper cart state. Every mutation goes through Reduce,
// and totals are derived from the line items on each read.
package cart

import (
	"github.com/abgdnv/scentshop/internal/catalog"
	"github.com/shopspring/decimal"
)

// MaxAddQuantity caps the quantity a single AddItem may add.
const MaxAddQuantity = 10

// LineItem is a product in the cart together with its quantity. Identity is the product ID.
type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price × quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// State is the cart contents in insertion order plus the drawer visibility flag.
type State struct {
	Items   []LineItem
	Visible bool
}

// TotalItems is the sum of quantities.
func (s State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity over all line items.
func (s State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// IsEmpty reports whether the cart has no line items.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line item for productID.
func (s State) Find(productID string) (LineItem, bool) {
	if i := s.indexOf(productID); i >= 0 {
		return s.Items[i], true
	}
	return LineItem{}, false
}

func (s State) indexOf(productID string) int {
	for i, item := range s.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// clone deep-copies the state so callers can't reach the store's slices.
func (s State) clone() State {
	c := State{Visible: s.Visible, Items: make([]LineItem, len(s.Items))}
	for i, item := range s.Items {
		c.Items[i] = LineItem{Product: item.Product.Clone(), Quantity: item.Quantity}
	}
	return c
}
