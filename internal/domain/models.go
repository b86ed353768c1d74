package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	IsNew         bool     `json:"isNew,omitempty"`
	IsSale        bool     `json:"isSale,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Reviews       *int     `json:"reviews,omitempty"`
}

// CartItem is a product line held by the shell; it is never persisted.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Order is the receipt returned by checkout.
type Order struct {
	ID       string          `json:"id"`
	Customer Customer        `json:"customer"`
	Items    []CartItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Payment  string          `json:"paymentMethod"`
	PlacedAt string          `json:"placedAt"`
}

type Customer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
}
