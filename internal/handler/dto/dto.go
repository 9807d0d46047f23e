// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/cartshop/cartshop/internal/model"

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AddProductRequest represents the request body for creating a product.
// Price is a pointer so a missing price can be told apart from zero.
type AddProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required"`
	Description string   `json:"description,omitempty"`
}

// UpdateProductRequest represents the request body for a partial update.
// Absent fields leave the stored values untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ProductResponse represents the full product record in API responses.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// CartResponse represents a user's cart contents.
type CartResponse struct {
	Items []CartEntryResponse `json:"items"`
}

// CartEntryResponse represents one cart row joined with its product.
type CartEntryResponse struct {
	ItemID    int64   `json:"item_id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// MessageResponse is the `{message}` body shared by mutations and errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToProductResponse converts a Product model to its response DTO.
func ToProductResponse(product *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
	}
}

// ToCartResponse converts cart entries to the cart response DTO.
func ToCartResponse(entries []model.CartEntry) *CartResponse {
	items := make([]CartEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, CartEntryResponse{
			ItemID:    e.ItemID,
			ProductID: e.ProductID,
			Name:      e.Name,
			Price:     e.Price,
		})
	}
	return &CartResponse{Items: items}
}
