package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartshop/cartshop/internal/model"
)

// Common errors for cart repository operations.
var (
	// ErrCartReference indicates the user or product referenced by a
	// cart insert does not exist.
	ErrCartReference = errors.New("cart references a missing user or product")
	// ErrCartItemNotFound indicates no cart row matches the (user, product) pair.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// AddCartItem inserts a cart row and fills in its generated ID.
// There is no dedup check: the same product can appear in a user's
// cart any number of times, one row per add.
func (r *Repository) AddCartItem(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (user_id, product_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		item.UserID,
		item.ProductID,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCartReference
		}
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// RemoveCartItem deletes the first matching row (lowest id) for the
// (user, product) pair. Returns ErrCartItemNotFound if none match.
func (r *Repository) RemoveCartItem(ctx context.Context, userID, productID int64) error {
	query := `
		DELETE FROM cart_items
		WHERE id = (
			SELECT id FROM cart_items
			WHERE user_id = $1 AND product_id = $2
			ORDER BY id
			LIMIT 1
		)
	`

	tag, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// ListCartEntries returns the user's cart rows joined with their products,
// in insertion order.
func (r *Repository) ListCartEntries(ctx context.Context, userID int64) ([]model.CartEntry, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.CartEntry, 0)
	for rows.Next() {
		var e model.CartEntry
		if err := rows.Scan(&e.ItemID, &e.ProductID, &e.Name, &e.Price); err != nil {
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart rows: %w", err)
	}

	return entries, nil
}
