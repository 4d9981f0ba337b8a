package catalog

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Best-selling collections.
const (
	CollectionMens   = "mens"
	CollectionWomens = "womens"
	CollectionArabic = "arabic"
)

// FragranceNotes lists the notes of a perfume by stage.
type FragranceNotes struct {
	Top    []string `json:"top"`
	Middle []string `json:"middle"`
	Base   []string `json:"base"`
}

// Variant is a named edition of a product. Unset fields fall back to the product's.
type Variant struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description string           `json:"description,omitempty"`
	ImageSrc    string           `json:"imageSrc,omitempty"`
}

// Product is read-only reference data. Values handed out by the catalog are copies.
type Product struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Tagline             string          `json:"tagline"`
	Description         string          `json:"description"`
	Price               decimal.Decimal `json:"price"`
	ImageSrc            string          `json:"imageSrc"`
	FragranceNotes      FragranceNotes  `json:"fragranceNotes"`
	Categories          []string        `json:"categories"`
	Longevity           string          `json:"longevity"`
	Sillage             string          `json:"sillage"`
	Occasions           []string        `json:"occasions"`
	Experience          []string        `json:"experience,omitempty"`
	EmotionalJourney    string          `json:"emotionalJourney,omitempty"`
	WhyChoose           []string        `json:"whyChoose,omitempty"`
	Variants            []Variant       `json:"variants,omitempty"`
	IsMensBestSelling   bool            `json:"isMensBestSelling,omitempty"`
	IsWomensBestSelling bool            `json:"isWomensBestSelling,omitempty"`
	IsArabicBestSelling bool            `json:"isArabicBestSelling,omitempty"`
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	c := p
	c.FragranceNotes = FragranceNotes{
		Top:    slices.Clone(p.FragranceNotes.Top),
		Middle: slices.Clone(p.FragranceNotes.Middle),
		Base:   slices.Clone(p.FragranceNotes.Base),
	}
	c.Categories = slices.Clone(p.Categories)
	c.Occasions = slices.Clone(p.Occasions)
	c.Experience = slices.Clone(p.Experience)
	c.WhyChoose = slices.Clone(p.WhyChoose)
	if p.Variants != nil {
		c.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			if v.Price != nil {
				price := *v.Price
				v.Price = &price
			}
			c.Variants[i] = v
		}
	}
	return c
}

// HasCategory reports whether the product is tagged with category.
func (p Product) HasCategory(category string) bool {
	return slices.Contains(p.Categories, category)
}

// InCollection reports whether the product belongs to a best-selling collection.
func (p Product) InCollection(collection string) bool {
	switch collection {
	case CollectionMens:
		return p.IsMensBestSelling
	case CollectionWomens:
		return p.IsWomensBestSelling
	case CollectionArabic:
		return p.IsArabicBestSelling
	default:
		return false
	}
}

// WithVariant returns the product as sold in variant v.
// The ID becomes "<product>-<variant>" so each edition is its own cart line.
func (p Product) WithVariant(v Variant) Product {
	c := p.Clone()
	c.ID = p.ID + "-" + v.ID
	c.Name = v.Name
	if v.Price != nil {
		c.Price = *v.Price
	}
	if v.Description != "" {
		c.Description = v.Description
	}
	if v.ImageSrc != "" {
		c.ImageSrc = v.ImageSrc
	}
	c.Variants = nil
	return c
}
