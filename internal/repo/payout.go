package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/models"
)

// payoutSaleStatuses are the order states that count toward a payout.
var payoutSaleStatuses = []string{
	models.OrderStatusConfirmed,
	models.OrderStatusProcessing,
	models.OrderStatusShipped,
	models.OrderStatusDelivered,
}

// OrdersForPayout returns the vendor's payable orders created in [start, end].
func (r *GormRepo) OrdersForPayout(ctx context.Context, vendorID uint, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Where("created_at BETWEEN ? AND ?", start, end).
		Where("status IN ?", payoutSaleStatuses).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) CreatePayout(ctx context.Context, payout *models.VendorPayout) error {
	return r.DB.WithContext(ctx).Create(payout).Error
}

func (r *GormRepo) PayoutByID(ctx context.Context, id uint) (*models.VendorPayout, error) {
	var payout models.VendorPayout
	if err := r.DB.WithContext(ctx).First(&payout, id).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

// NonCancelledPayoutExists reports whether the vendor already has a live
// payout for the period.
func (r *GormRepo) NonCancelledPayoutExists(ctx context.Context, vendorID uint, period string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.VendorPayout{}).
		Where("vendor_id = ? AND period = ? AND status <> ?", vendorID, period, models.PayoutStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) PayoutsByVendor(ctx context.Context, vendorID uint, status string, offset, limit int) ([]models.VendorPayout, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.VendorPayout{}).Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return findPayouts(q, offset, limit)
}

func (r *GormRepo) AllPayouts(ctx context.Context, vendorID uint, status string, offset, limit int) ([]models.VendorPayout, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.VendorPayout{})
	if vendorID != 0 {
		q = q.Where("vendor_id = ?", vendorID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return findPayouts(q, offset, limit)
}

func (r *GormRepo) AllPayoutsByVendor(ctx context.Context, vendorID uint) ([]models.VendorPayout, error) {
	var payouts []models.VendorPayout
	if err := r.DB.WithContext(ctx).Where("vendor_id = ?", vendorID).Find(&payouts).Error; err != nil {
		return nil, err
	}
	return payouts, nil
}

// TransitionPayoutStatus applies updates only while the payout still holds
// fromStatus, so a concurrent transition loses cleanly instead of overwriting.
func (r *GormRepo) TransitionPayoutStatus(ctx context.Context, payoutID uint, fromStatus string, updates map[string]interface{}) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.VendorPayout{}).
		Where("id = ? AND status = ?", payoutID, fromStatus).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ApplyPayoutDeduction is keyed on the previous deductions value; a lost race
// returns false and the caller retries or fails.
func (r *GormRepo) ApplyPayoutDeduction(ctx context.Context, payoutID uint, oldDeductions, newDeductions, newAmount decimal.Decimal, reasons string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.VendorPayout{}).
		Where("id = ? AND status = ? AND deductions = ?", payoutID, models.PayoutStatusPending, oldDeductions).
		Updates(map[string]interface{}{
			"deductions":        newDeductions,
			"amount":            newAmount,
			"deduction_reasons": reasons,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func findPayouts(q *gorm.DB, offset, limit int) ([]models.VendorPayout, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payouts []models.VendorPayout
	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payouts).Error
	if err != nil {
		return nil, 0, err
	}
	return payouts, total, nil
}
