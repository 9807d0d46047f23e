// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartshop/cartshop/internal/metrics"
	"github.com/cartshop/cartshop/internal/model"
	"github.com/cartshop/cartshop/internal/repository"
)

// Service errors.
var (
	ErrMissingFields   = errors.New("name and price are required")
	ErrProductNotFound = errors.New("product not found")
)

// CatalogService handles product catalog business logic.
type CatalogService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo *repository.Repository, recorder metrics.Recorder) *CatalogService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CatalogService{
		repo:    repo,
		metrics: recorder,
	}
}

// CreateProductInput defines input for creating a product.
// Price is a pointer so a missing price can be told apart from zero.
type CreateProductInput struct {
	Name        string
	Price       *float64
	Description string
}

// UpdateProductInput defines input for a partial product update.
// Nil fields are left untouched.
type UpdateProductInput struct {
	ID          int64
	Name        *string
	Price       *float64
	Description *string
}

// CreateProduct creates a new catalog product.
// Description defaults to the empty string. Price is stored as given;
// there is no negativity check.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*model.Product, error) {
	if input.Name == "" || input.Price == nil {
		return nil, ErrMissingFields
	}

	product := &model.Product{
		Name:        input.Name,
		Price:       *input.Price,
		Description: input.Description,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.metrics.IncProductCreated()
	return product, nil
}

// GetProduct returns the full product record.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// ListProducts returns summary projections of all products in insertion order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]model.ProductSummary, error) {
	summaries, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return summaries, nil
}

// UpdateProduct applies a partial update: only non-nil input fields
// overwrite the stored values. The write itself is last-write-wins.
func (s *CatalogService) UpdateProduct(ctx context.Context, input UpdateProductInput) (*model.Product, error) {
	product, err := s.repo.GetProduct(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("load product for update: %w", err)
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = *input.Description
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.metrics.IncProductUpdated()
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}

	s.metrics.IncProductDeleted()
	return nil
}
