package domain

import "github.com/shopspring/decimal"

var TaxRate = decimal.RequireFromString("0.08")

type Totals struct {
	Count    int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// CartTotals sums line prices and applies sales tax rounded to cents.
func CartTotals(items []CartItem) Totals {
	t := Totals{Subtotal: decimal.Zero}
	for _, it := range items {
		t.Count += it.Quantity
		t.Subtotal = t.Subtotal.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	t.Tax = t.Subtotal.Mul(TaxRate).Round(2)
	t.Total = t.Subtotal.Add(t.Tax)
	return t
}

// LineTotal is price × quantity for one cart line.
func (it CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
}
