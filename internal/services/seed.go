package services

import "audiotech/internal/domain"

func ptr[T any](v T) *T { return &v }

// Featured is the flagship product shown on the home page and selected by default.
func Featured() domain.Product {
	return domain.Product{
		ID:            1,
		Name:          "Sonic Master X1",
		Category:      "Headphones",
		Price:         1299,
		OriginalPrice: ptr(1499.0),
		Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=2070&auto=format&fit=crop",
		Description:   "Experience sound like never before with our flagship open-back drivers. Engineered for audiophiles who demand precision. Crafted from aerospace-grade aluminum and genuine lambskin leather.",
		Features:      []string{"High-Res Audio", "Detachable Cable", "Open-Back Design"},
		Rating:        ptr(4.8),
		Reviews:       ptr(124),
	}
}

// DefaultProducts is the catalog written on first load. Each call returns a fresh slice.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          101,
			Name:        "Over-Ear Studio X1",
			Category:    "Studio",
			Price:       899,
			Image:       "https://images.unsplash.com/photo-1546435770-a3e426bf472b?q=80&w=1000&auto=format&fit=crop",
			Description: "Professional studio reference headphones.",
			Features:    []string{},
			IsNew:       true,
		},
		{
			ID:          102,
			Name:        "Earbuds Pro ANC",
			Category:    "Wireless",
			Price:       259,
			Image:       "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?q=80&w=1000&auto=format&fit=crop",
			Description: "Active noise cancelling with 24h battery.",
			Features:    []string{},
			Rating:      ptr(4.5),
		},
		{
			ID:            103,
			Name:          "Speaker Boom 360",
			Category:      "Speakers",
			Price:         155,
			OriginalPrice: ptr(199.0),
			Image:         "https://images.unsplash.com/photo-1545454675-3531b543be5d?q=80&w=1000&auto=format&fit=crop",
			Description:   "Powerful bass in a compact cylinder.",
			Features:      []string{},
			IsSale:        true,
		},
		{
			ID:          104,
			Name:        "Classic Wood Series",
			Category:    "Headphones",
			Price:       420,
			Image:       "https://images.unsplash.com/photo-1484704849700-f032a568e944?q=80&w=1000&auto=format&fit=crop",
			Description: "Vintage design with modern sound profiles.",
			Features:    []string{},
		},
	}
}
