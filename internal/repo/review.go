package repo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) SaveReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Save(review).Error
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Review{}, id).Error
}

func (r *GormRepo) ReviewByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) ReviewsByProduct(ctx context.Context, productID uint, offset, limit int) ([]models.Review, int64, error) {
	base := r.DB.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// PurchaseOrderID returns the earliest non-cancelled order through which the
// user bought the product, or nil when no such order exists.
func (r *GormRepo) PurchaseOrderID(ctx context.Context, userID, productID uint) (*uint, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Where("orders.status NOT IN ?", []string{models.OrderStatusCancelled, models.OrderStatusReturned}).
		Order("orders.id ASC").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id := order.ID
	return &id, nil
}

// IncrementHelpful bumps the helpful counter; returns false when the review
// does not exist.
func (r *GormRepo) IncrementHelpful(ctx context.Context, reviewID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReviewStats returns the review count and rating sum for a product. Summing
// integers keeps the average exact until the service rounds it.
func (r *GormRepo) ReviewStats(ctx context.Context, productID uint) (int64, int64, error) {
	var agg struct {
		Count int64
		Sum   int64
	}
	err := r.DB.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Count, agg.Sum, nil
}

func (r *GormRepo) UpdateProductRating(ctx context.Context, productID uint, rating decimal.Decimal, totalReviews int) error {
	return r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]interface{}{
			"rating":        rating,
			"total_reviews": totalReviews,
		}).Error
}
