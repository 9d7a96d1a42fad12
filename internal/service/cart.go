package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.CartItems(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	if productID == 0 {
		return nil, apperr.Validation(apperr.CodeValidation, "product_id is required")
	}
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddCartItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveOne decrements a line's quantity, deleting it when it reaches zero.
func (s *CartService) RemoveOne(ctx context.Context, itemID, userID uint) (*models.CartItem, bool, error) {
	item, err := s.Repo.CartItemByID(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.NotFound("Cart item not found")
		}
		return nil, false, err
	}

	if item.Quantity > 1 {
		item.Quantity--
		if err := s.Repo.DB.WithContext(ctx).Save(item).Error; err != nil {
			return nil, false, err
		}
		return item, false, nil
	}

	if err := s.Repo.DeleteCartItem(ctx, itemID, userID); err != nil {
		return nil, false, err
	}
	return item, true, nil
}

func (s *CartService) RemoveAll(ctx context.Context, itemID, userID uint) error {
	if _, err := s.Repo.CartItemByID(ctx, itemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Cart item not found")
		}
		return err
	}
	return s.Repo.DeleteCartItem(ctx, itemID, userID)
}
