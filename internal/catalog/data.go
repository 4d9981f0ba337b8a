package catalog

import "github.com/shopspring/decimal"

func variantPrice(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// staticProducts is the storefront's built-in catalog.
func staticProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Mukhallat Inspired Perfume",
			Tagline:     "A Journey Into Opulence and Tradition",
			Description: "A nano-encapsulated oriental blend of oud, florals, spices and sweet notes that joins the richness of traditional Arabic perfumery with modern elegance.",
			Price:       decimal.NewFromInt(280),
			ImageSrc:    "https://images.unsplash.com/photo-1592914610354-fd354ea45e48?q=80&w=1974&auto=format&fit=crop",
			FragranceNotes: FragranceNotes{
				Top:    []string{"Oud (Agarwood)", "Rose", "Saffron", "Amber"},
				Middle: []string{"Musk", "Sandalwood", "Patchouli"},
				Base:   []string{"Vanilla", "Jasmine", "Cedarwood"},
			},
			Categories: []string{"Oriental", "Woody"},
			Longevity:  "12+ hours",
			Sillage:    "Heavy",
			Occasions:  []string{"Evening", "Special Occasion", "Winter"},
			Experience: []string{
				"Cultural Richness", "Opulent Luxury", "Sensual Depth", "Exotic Mystery", "Personal Distinction",
				"Spiritual Connection", "Nostalgic Comfort", "Enduring Presence", "Ceremonial Significance", "Intimate Warmth",
			},
			WhyChoose:           []string{"An aromatic journey that unfolds slowly on the skin, offering a meditative, luxurious sensation."},
			IsArabicBestSelling: true,
		},
		{
			ID:          "2",
			Name:        "APOM (A Part of Me) Inspired Perfume",
			Tagline:     "A Fragrance That Evokes Elegance and Intimacy",
			Description: "A nano-encapsulated balance of bright florals and grounding woods that wraps the wearer in warmth and radiant grace.",
			Price:       decimal.NewFromInt(250),
			ImageSrc:    "https://images.unsplash.com/photo-1547887537-6158d64c35b3?q=80&w=2070&auto=format&fit=crop",
			FragranceNotes: FragranceNotes{
				Top:    []string{"Orange Blossom", "Bergamot", "Neroli"},
				Middle: []string{"Ylang-Ylang", "Jasmine", "Lavender"},
				Base:   []string{"Cedarwood", "Patchouli", "Sandalwood"},
			},
			Categories: []string{"Floral", "Woody"},
			Longevity:  "8-10 hours",
			Sillage:    "Moderate",
			Occasions:  []string{"Daytime", "Spring", "Summer"},
			Experience: []string{
				"Mediterranean Serenity", "Sophisticated Elegance", "Intimate Warmth", "Luminous Optimism", "Natural Authenticity",
				"Quiet Confidence", "Cultural Appreciation", "Refreshing Clarity", "Romantic Nostalgia", "Timeless Beauty",
			},
			EmotionalJourney: "A blend of lightness, depth, freshness, and warmth that becomes a part of you.",
		},
		{
			ID:          "3",
			Name:        "Velvet Noir",
			Tagline:     "Embrace the depth of darkness",
			Description: "Spicy pink pepper and plum lead to black violet and dark rose over smoky vetiver, leather and black amber.",
			Price:       decimal.NewFromInt(240),
			ImageSrc:    "https://images.unsplash.com/photo-1619994403073-2256c0835ba1?q=80&w=2070&auto=format&fit=crop",
			FragranceNotes: FragranceNotes{
				Top:    []string{"Pink Pepper", "Plum", "Blackcurrant"},
				Middle: []string{"Dark Rose", "Black Violet", "Leather"},
				Base:   []string{"Vetiver", "Black Amber", "Patchouli", "Vanilla"},
			},
			Categories: []string{"Woody", "Spicy"},
			Longevity:  "6-8 hours",
			Sillage:    "Moderate",
			Occasions:  []string{"Evening", "Fall", "Winter"},
		},
		{
			ID:          "4",
			Name:        "Celestial Oud",
			Tagline:     "Where earth meets the heavens",
			Description: "Bergamot and saffron open onto precious oud and smoky incense, settling into aged sandalwood, amber and deep musk.",
			Price:       decimal.NewFromInt(390),
			ImageSrc:    "https://images.unsplash.com/photo-1608528577891-eb055944f2e7?q=80&w=1974&auto=format&fit=crop",
			FragranceNotes: FragranceNotes{
				Top:    []string{"Bergamot", "Saffron", "Cinnamon"},
				Middle: []string{"Oud", "Incense", "Rose"},
				Base:   []string{"Sandalwood", "Amber", "Musk", "Patchouli"},
			},
			Categories: []string{"Woody", "Oriental"},
			Longevity:  "12+ hours",
			Sillage:    "Heavy",
			Occasions:  []string{"Formal", "Special Occasion", "Winter"},
			Variants: []Variant{
				{
					ID:          "intense",
					Name:        "Celestial Oud Intense",
					Price:       variantPrice(430),
					Description: "A more concentrated version with enhanced oud and incense notes.",
				},
				{
					ID:          "limited",
					Name:        "Celestial Oud Limited Edition",
					Price:       variantPrice(490),
					Description: "Enriched with rare agarwood and Kashmiri saffron, in a hand-crafted crystal bottle.",
					ImageSrc:    "https://images.unsplash.com/photo-1557170334-a9086d21c4a1?q=80&w=2036&auto=format&fit=crop",
				},
				{
					ID:          "travel",
					Name:        "Celestial Oud Travel Size",
					Price:       variantPrice(190),
					Description: "The same fragrance in a compact, travel-friendly size.",
				},
			},
			IsMensBestSelling: true,
		},
		{
			ID:          "5",
			Name:        "Éclat de Soleil",
			Tagline:     "Captured sunshine in a bottle",
			Description: "Vibrant citrus and juicy fruits evolve into sun-drenched florals over creamy woods, amber and musk.",
			Price:       decimal.NewFromInt(210),
			ImageSrc:    "https://images.unsplash.com/photo-1617184003107-0df15fea4903?q=80&w=2070&auto=format&fit=crop",
			FragranceNotes: FragranceNotes{
				Top:    []string{"Bergamot", "Mandarin", "Neroli"},
				Middle: []string{"Orange Blossom", "Jasmine", "Ylang-Ylang"},
				Base:   []string{"White Amber", "Sandalwood", "Vanilla", "Musk"},
			},
			Categories:          []string{"Citrus", "Floral"},
			Longevity:           "5-7 hours",
			Sillage:             "Moderate",
			Occasions:           []string{"Daytime", "Spring", "Summer"},
			IsWomensBestSelling: true,
		},
		{
			ID:          "6",
			Name:        "Satin Rose",
			Tagline:     "The epitome of timeless elegance",
			Description: "Pink pepper and lychee unveil damask rose, peony and violet over patchouli, sandalwood and soft musk.",
			Price:       decimal.NewFromInt(250),
			ImageSrc:    "https://images.unsplash.com/photo-1557170334-a9086d21c4a1?q=80&w=2036&auto=format&fit=crop",
			FragranceNotes: FragranceNotes{
				Top:    []string{"Pink Pepper", "Lychee", "Bergamot"},
				Middle: []string{"Damask Rose", "Peony", "Violet"},
				Base:   []string{"Sandalwood", "Patchouli", "Musk", "Ambrette"},
			},
			Categories: []string{"Floral", "Fresh"},
			Longevity:  "7-9 hours",
			Sillage:    "Moderate",
			Occasions:  []string{"Daytime", "Spring", "Summer"},
		},
	}
}
