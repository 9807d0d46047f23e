// Package model defines domain entities for the application.
package model

import "time"

// CartItem links one product to one user's cart.
// There is no quantity column: adding the same product twice
// produces two independent rows.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CartEntry is a cart row joined with its product, as returned
// when listing a user's cart.
type CartEntry struct {
	ItemID    int64   `json:"item_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}
