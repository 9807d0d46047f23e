// Package model defines domain entities for the application.
package model

import "time"

// Product is a catalog entry.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductSummary is the projection used by list views.
// It deliberately omits the description.
type ProductSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Summary returns the list-view projection of the product.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
}
