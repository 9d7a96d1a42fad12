package repo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sursrinu/artandcraft-platform/internal/models"
)

func (r *GormRepo) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	return r.DB.WithContext(ctx).Create(vendor).Error
}

func (r *GormRepo) VendorByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.DB.WithContext(ctx).First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *GormRepo) VendorByUserID(ctx context.Context, userID uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *GormRepo) UpdateVendorCommission(ctx context.Context, vendorID uint, rate decimal.Decimal) error {
	return r.DB.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Update("commission_rate", rate).Error
}

func (r *GormRepo) UpdateVendorStatus(ctx context.Context, vendorID uint, status string) error {
	return r.DB.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Update("status", status).Error
}

func (r *GormRepo) CreateBankAccount(ctx context.Context, acc *models.VendorBankAccount) error {
	return r.DB.WithContext(ctx).Create(acc).Error
}

func (r *GormRepo) BankAccountsByVendor(ctx context.Context, vendorID uint) ([]models.VendorBankAccount, error) {
	var accounts []models.VendorBankAccount
	if err := r.DB.WithContext(ctx).Where("vendor_id = ?", vendorID).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *GormRepo) BankAccountByID(ctx context.Context, id uint) (*models.VendorBankAccount, error) {
	var acc models.VendorBankAccount
	if err := r.DB.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// ActiveVerifiedBankAccount returns the vendor's payout-eligible account.
func (r *GormRepo) ActiveVerifiedBankAccount(ctx context.Context, vendorID uint) (*models.VendorBankAccount, error) {
	var acc models.VendorBankAccount
	err := r.DB.WithContext(ctx).
		Where("vendor_id = ? AND is_active = ? AND is_verified = ?", vendorID, true, true).
		First(&acc).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *GormRepo) VerifyBankAccount(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).
		Model(&models.VendorBankAccount{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_verified": true, "verified_at": now}).Error
}
