package shell

import (
	"slices"

	"audiotech/internal/domain"
)

// AddToCart merges qty into the line for p, or appends a new line.
// Quantities below one count as one.
func AddToCart(s State, p domain.Product, qty int) State {
	s = s.clone()
	if qty < 1 {
		qty = 1
	}
	for i := range s.Cart {
		if s.Cart[i].ID == p.ID {
			s.Cart[i].Quantity += qty
			return s
		}
	}
	s.Cart = append(s.Cart, domain.CartItem{Product: p, Quantity: qty})
	return s
}

func RemoveFromCart(s State, id int64) State {
	s = s.clone()
	s.Cart = slices.DeleteFunc(s.Cart, func(it domain.CartItem) bool { return it.ID == id })
	return s
}

// OrderPlaced empties the cart and returns home.
func OrderPlaced(s State) State {
	s = s.clone()
	s.Cart = nil
	return Navigate(s, domain.PageHome)
}

// CartCount is the badge number: the sum of quantities.
func CartCount(s State) int {
	n := 0
	for _, it := range s.Cart {
		n += it.Quantity
	}
	return n
}

// Totals is the cart summary shown on the cart and checkout pages.
func Totals(s State) domain.Totals {
	return domain.CartTotals(s.Cart)
}
