package catalog

import (
	"fmt"

	shoperrors "github.com/abgdnv/scentshop/internal/errors"
)

// inMemory implements ProductStore over a fixed product list.
// The list is never mutated after construction, so no locking is needed.
type inMemory struct {
	products []Product
	byID     map[string]int
}

// NewInMemoryStore creates a ProductStore serving copies of products.
func NewInMemoryStore(products []Product) ProductStore {
	s := &inMemory{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p.Clone())
	}
	return s
}

// NewStaticStore creates a ProductStore over the storefront's built-in catalog.
func NewStaticStore() ProductStore {
	return NewInMemoryStore(staticProducts())
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(id string) (*Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, shoperrors.ErrProductNotFound
	}
	p := s.products[i].Clone()
	return &p, nil
}

// FindAll retrieves all products.
func (s *inMemory) FindAll() ([]Product, error) {
	return s.filter(func(Product) bool { return true }), nil
}

// FindByCategory retrieves the products tagged with category.
func (s *inMemory) FindByCategory(category string) ([]Product, error) {
	return s.filter(func(p Product) bool { return p.HasCategory(category) }), nil
}

// Categories lists unique categories in the order they first appear.
func (s *inMemory) Categories() ([]string, error) {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range s.products {
		for _, c := range p.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// BestSelling retrieves the products of a best-selling collection.
func (s *inMemory) BestSelling(collection string) ([]Product, error) {
	switch collection {
	case CollectionMens, CollectionWomens, CollectionArabic:
	default:
		return nil, fmt.Errorf("%w: %q", shoperrors.ErrUnknownCollection, collection)
	}
	return s.filter(func(p Product) bool { return p.InCollection(collection) }), nil
}

// Resolve looks up a product and applies the requested variant.
func (s *inMemory) Resolve(productID, variantID string) (*Product, error) {
	p, err := s.FindByID(productID)
	if err != nil {
		return nil, err
	}
	if variantID == "" {
		return p, nil
	}
	for _, v := range p.Variants {
		if v.ID == variantID {
			resolved := p.WithVariant(v)
			return &resolved, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", shoperrors.ErrVariantNotFound, productID, variantID)
}

func (s *inMemory) filter(keep func(Product) bool) []Product {
	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			list = append(list, p.Clone())
		}
	}
	return list
}
