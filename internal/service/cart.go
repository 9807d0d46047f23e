package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cartshop/cartshop/internal/metrics"
	"github.com/cartshop/cartshop/internal/model"
	"github.com/cartshop/cartshop/internal/repository"
)

// Cart service errors.
var (
	// ErrCartReference indicates the user or product for a cart add
	// does not exist.
	ErrCartReference = errors.New("cart references a missing user or product")
	// ErrCartItemNotFound indicates no cart row matches the pair.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartService handles shopping cart business logic.
type CartService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewCartService creates a new CartService.
func NewCartService(repo *repository.Repository, recorder metrics.Recorder) *CartService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CartService{
		repo:    repo,
		metrics: recorder,
	}
}

// AddItem puts one row for the product into the user's cart.
// Repeated adds of the same product create independent rows.
// Referential integrity is enforced by the store's foreign keys.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
	}

	if err := s.repo.AddCartItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrCartReference) {
			return nil, ErrCartReference
		}
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	s.metrics.IncCartItemAdded()
	return item, nil
}

// RemoveItem deletes the first matching cart row for the pair.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	if err := s.repo.RemoveCartItem(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("remove cart item: %w", err)
	}

	s.metrics.IncCartItemRemoved()
	return nil
}

// ListItems returns the user's cart joined with product details.
func (s *CartService) ListItems(ctx context.Context, userID int64) ([]model.CartEntry, error) {
	entries, err := s.repo.ListCartEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return entries, nil
}
