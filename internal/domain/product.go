package domain

import "time"

type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Category    string
	Quantity    int
	CreatedAt   time.Time
}

// HasStockFor reports whether the product can cover the requested
// quantity from its current stock.
func (p Product) HasStockFor(quantity int) bool {
	return p.Quantity >= quantity
}
