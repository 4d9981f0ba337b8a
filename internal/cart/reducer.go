package cart

import (
	"fmt"

	"github.com/abgdnv/scentshop/internal/catalog"
	shoperrors "github.com/abgdnv/scentshop/internal/errors"
)

// ActionKind enumerates cart mutations.
type ActionKind int

const (
	ActionAddItem ActionKind = iota + 1
	ActionRemoveItem
	ActionUpdateQuantity
	ActionClear
	ActionToggleVisibility
	ActionDeductOrdered
)

func (k ActionKind) String() string {
	switch k {
	case ActionAddItem:
		return "add_item"
	case ActionRemoveItem:
		return "remove_item"
	case ActionUpdateQuantity:
		return "update_quantity"
	case ActionClear:
		return "clear"
	case ActionToggleVisibility:
		return "toggle_visibility"
	case ActionDeductOrdered:
		return "deduct_ordered"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action describes one cart mutation. Use the constructors below.
type Action struct {
	Kind      ActionKind
	Product   catalog.Product
	ProductID string
	Quantity  int
	Ordered   []LineItem
}

func AddItem(product catalog.Product, quantity int) Action {
	return Action{Kind: ActionAddItem, Product: product, ProductID: product.ID, Quantity: quantity}
}

func RemoveItem(productID string) Action {
	return Action{Kind: ActionRemoveItem, ProductID: productID}
}

func UpdateQuantity(productID string, quantity int) Action {
	return Action{Kind: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func Clear() Action {
	return Action{Kind: ActionClear}
}

func ToggleVisibility() Action {
	return Action{Kind: ActionToggleVisibility}
}

// DeductOrdered takes the quantities of an accepted order out of the cart.
func DeductOrdered(items []LineItem) Action {
	return Action{Kind: ActionDeductOrdered, Ordered: items}
}

// Reduce returns the state that results from applying a to s. s is never modified.
// On error the returned state equals s.
//
//   - add: quantity must be in [1, MaxAddQuantity]; an existing line is incremented, otherwise appended
//   - remove: absent ids are a no-op
//   - update: quantity <= 0 removes the line; absent ids are a no-op
//   - clear: drops all lines, visibility is kept
//   - toggle: flips visibility only
//   - deduct ordered: lowers each ordered line by its ordered quantity and drops lines that reach zero;
//     lines the order did not contain are kept
func Reduce(s State, a Action) (State, error) {
	switch a.Kind {
	case ActionAddItem:
		if a.Quantity < 1 || a.Quantity > MaxAddQuantity {
			return s, fmt.Errorf("%w: got %d", shoperrors.ErrInvalidQuantity, a.Quantity)
		}
		next := s.clone()
		if i := next.indexOf(a.Product.ID); i >= 0 {
			next.Items[i].Quantity += a.Quantity
			return next, nil
		}
		next.Items = append(next.Items, LineItem{Product: a.Product.Clone(), Quantity: a.Quantity})
		return next, nil

	case ActionRemoveItem:
		i := s.indexOf(a.ProductID)
		if i < 0 {
			return s, nil
		}
		next := s.clone()
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		return next, nil

	case ActionUpdateQuantity:
		if a.Quantity <= 0 {
			return Reduce(s, RemoveItem(a.ProductID))
		}
		i := s.indexOf(a.ProductID)
		if i < 0 {
			return s, nil
		}
		next := s.clone()
		next.Items[i].Quantity = a.Quantity
		return next, nil

	case ActionClear:
		return State{Items: []LineItem{}, Visible: s.Visible}, nil

	case ActionToggleVisibility:
		next := s.clone()
		next.Visible = !s.Visible
		return next, nil

	case ActionDeductOrdered:
		next := s.clone()
		for _, ordered := range a.Ordered {
			i := next.indexOf(ordered.ID)
			if i < 0 {
				continue
			}
			next.Items[i].Quantity -= ordered.Quantity
			if next.Items[i].Quantity <= 0 {
				next.Items = append(next.Items[:i], next.Items[i+1:]...)
			}
		}
		return next, nil

	default:
		return s, fmt.Errorf("%w: %s", shoperrors.ErrUnknownAction, a.Kind)
	}
}
