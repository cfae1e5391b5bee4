package service

import (
	"context"
	"fmt"

	"github.com/daspi/bookshop/internal/models"
	"github.com/daspi/bookshop/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// Cart returns the owner's cart. A user without a cart gets the
// empty-items shape instead of an error.
func (s *CartService) Cart(ctx context.Context, owner *models.User) (*models.Cart, error) {
	cart, err := s.Repo.CartByUser(ctx, owner.UserID)
	if err != nil {
		if repo.IsNotFound(err) {
			return &models.Cart{UserID: owner.UserID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, owner *models.User, bookID, bookName string, quantity uint, price float64) (*models.Cart, error) {
	if bookID == "" || bookName == "" {
		return nil, fmt.Errorf("bookId and bookName are required: %w", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	cart, err := s.Repo.UpsertItem(ctx, owner, bookID, bookName, quantity, price)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, owner *models.User, bookID string, quantity int) (*models.Cart, error) {
	if bookID == "" {
		return nil, fmt.Errorf("bookId is required: %w", ErrValidation)
	}

	cart, err := s.Repo.SetItemQuantity(ctx, owner.UserID, bookID, quantity)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("item not found in cart: %w", ErrNotFound)
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, owner *models.User, bookID string) (*models.Cart, error) {
	if bookID == "" {
		return nil, fmt.Errorf("bookId is required: %w", ErrValidation)
	}

	cart, err := s.Repo.RemoveItem(ctx, owner.UserID, bookID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("item not found in cart: %w", ErrNotFound)
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// Clear deletes the cart wholesale. Clearing a cart that never existed
// still succeeds.
func (s *CartService) Clear(ctx context.Context, owner *models.User) error {
	return s.Repo.DeleteCart(ctx, owner.UserID)
}
