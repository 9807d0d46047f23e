package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cartshop/cartshop/internal/model"
)

// ErrProductNotFound indicates the referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// CreateProduct inserts a new product and fills in its generated ID.
func (r *Repository) CreateProduct(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, price, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Price,
		product.Description,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetProduct retrieves a product by its ID.
func (r *Repository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT id, name, price, description, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// ListProducts returns summary projections of all products in insertion order.
func (r *Repository) ListProducts(ctx context.Context) ([]model.ProductSummary, error) {
	query := `
		SELECT id, name, price
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.ProductSummary, 0)
	for rows.Next() {
		var s model.ProductSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product rows: %w", err)
	}

	return summaries, nil
}

// UpdateProduct overwrites a product's mutable fields.
// Last write wins; there is no version column.
func (r *Repository) UpdateProduct(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, description = $4, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Description,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DeleteProduct removes a product by its ID.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}
