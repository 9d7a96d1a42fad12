package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

type ReviewInput struct {
	Rating  int
	Title   string
	Comment string
}

func (in *ReviewInput) validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return apperr.Validation(apperr.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}

// refreshProductRating recomputes the product's average rating and review
// count from scratch after any review mutation.
func (s *ReviewService) refreshProductRating(ctx context.Context, productID uint) error {
	count, sum, err := s.Repo.ReviewStats(ctx, productID)
	if err != nil {
		return err
	}
	rating := decimal.Zero
	if count > 0 {
		rating = decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).Round(2)
	}
	return s.Repo.UpdateProductRating(ctx, productID, rating, int(count))
}

// Create stores a review. Only buyers may review: the reviewer must have a
// live order containing the product, which also marks the review as a
// verified purchase.
func (s *ReviewService) Create(ctx context.Context, productID, userID uint, in ReviewInput) (*models.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if _, err := s.Repo.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}

	orderID, err := s.Repo.PurchaseOrderID(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if orderID == nil {
		return nil, apperr.New(http.StatusForbidden, apperr.CodeNotPurchased,
			"You can only review products you have purchased")
	}

	review := models.Review{
		ProductID:          productID,
		UserID:             userID,
		OrderID:            orderID,
		Rating:             in.Rating,
		Title:              in.Title,
		Comment:            in.Comment,
		IsVerifiedPurchase: true,
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		return nil, err
	}

	if err := s.refreshProductRating(ctx, productID); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Update(ctx context.Context, reviewID, userID uint, in ReviewInput) (*models.Review, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	review, err := s.Repo.ReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Review not found")
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperr.Forbidden("You can only edit your own reviews")
	}

	review.Rating = in.Rating
	review.Title = in.Title
	review.Comment = in.Comment
	if err := s.Repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}

	if err := s.refreshProductRating(ctx, review.ProductID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, reviewID, userID uint) error {
	review, err := s.Repo.ReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Review not found")
		}
		return err
	}
	if review.UserID != userID {
		return apperr.Forbidden("You can only delete your own reviews")
	}

	if err := s.Repo.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	return s.refreshProductRating(ctx, review.ProductID)
}

func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID uint) (*models.Review, error) {
	ok, err := s.Repo.IncrementHelpful(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Review not found")
	}
	return s.Repo.ReviewByID(ctx, reviewID)
}

func (s *ReviewService) ProductReviews(ctx context.Context, productID uint, offset, limit int) ([]models.Review, int64, error) {
	return s.Repo.ReviewsByProduct(ctx, productID, offset, limit)
}
