// Package errors provides sentinel errors for catalog, cart and checkout operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrVariantNotFound = errors.New("product variant not found")
var ErrUnknownCollection = errors.New("unknown best-selling collection")

var ErrCartNotFound = errors.New("cart not found")
var ErrInvalidQuantity = errors.New("quantity must be between 1 and 10")
var ErrUnknownAction = errors.New("unknown cart action")

var ErrEmptyCart = errors.New("cart is empty")
var ErrCheckoutInProgress = errors.New("checkout already in progress for this cart")
var ErrPlaceOrder = errors.New("failed to place order")
