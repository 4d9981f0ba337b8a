package checkout

import "github.com/shopspring/decimal"

// ShippingFee is the flat shipping charge added to every order.
var ShippingFee = decimal.NewFromInt(15)

// TaxRate is applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.07")

// Quote is the price breakdown shown before and sent with an order.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// NewQuote prices an order with the given subtotal. Amounts are exact; round with
// StringFixed when displaying them.
func NewQuote(subtotal decimal.Decimal) Quote {
	tax := subtotal.Mul(TaxRate)
	return Quote{
		Subtotal: subtotal,
		Shipping: ShippingFee,
		Tax:      tax,
		Total:    subtotal.Add(ShippingFee).Add(tax),
	}
}
