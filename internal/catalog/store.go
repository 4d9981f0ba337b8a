// Package catalog provides read access to the static perfume catalog.
package catalog

// ProductStore is an interface for catalog read operations.
// It abstracts the underlying data source, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(id string) (*Product, error)

	// FindAll returns all products in catalog order.
	FindAll() ([]Product, error)

	// FindByCategory returns the products tagged with category.
	// Returns an empty slice if none match.
	FindByCategory(category string) ([]Product, error)

	// Categories returns the unique categories in first-seen order.
	Categories() ([]string, error)

	// BestSelling returns the products of a best-selling collection.
	// Returns ErrUnknownCollection for collections other than mens, womens and arabic.
	BestSelling(collection string) ([]Product, error)

	// Resolve returns the product to place in a cart, specialised to variantID when it is not empty.
	// Returns ErrProductNotFound or ErrVariantNotFound.
	Resolve(productID, variantID string) (*Product, error)
}
