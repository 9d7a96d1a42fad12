package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

// defaultCommissionRate is the platform cut applied to new vendors.
var defaultCommissionRate = decimal.NewFromInt(10)

type VendorService struct {
	Repo *repo.GormRepo
}

func (s *VendorService) RegisterVendor(ctx context.Context, userID uint, businessName, email string) (*models.Vendor, error) {
	if businessName == "" || email == "" {
		return nil, apperr.Validation(apperr.CodeValidation, "business_name and email are required")
	}

	if _, err := s.Repo.VendorByUserID(ctx, userID); err == nil {
		return nil, apperr.Conflict(apperr.CodeConflict, "User already has a vendor profile")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vendor := models.Vendor{
		UserID:         userID,
		BusinessName:   businessName,
		Email:          email,
		Status:         models.VendorStatusPending,
		CommissionRate: defaultCommissionRate,
	}
	if err := s.Repo.CreateVendor(ctx, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *VendorService) VendorForUser(ctx context.Context, userID uint) (*models.Vendor, error) {
	vendor, err := s.Repo.VendorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor profile not found")
		}
		return nil, err
	}
	return vendor, nil
}

func (s *VendorService) UpdateCommissionRate(ctx context.Context, vendorID uint, rate decimal.Decimal) (*models.Vendor, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperr.Validation(apperr.CodeValidation, "commission rate must be between 0 and 100")
	}

	if _, err := s.Repo.VendorByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor not found")
		}
		return nil, err
	}

	if err := s.Repo.UpdateVendorCommission(ctx, vendorID, rate); err != nil {
		return nil, err
	}
	return s.Repo.VendorByID(ctx, vendorID)
}

func (s *VendorService) UpdateStatus(ctx context.Context, vendorID uint, status string) (*models.Vendor, error) {
	switch status {
	case models.VendorStatusPending, models.VendorStatusApproved,
		models.VendorStatusRejected, models.VendorStatusSuspended:
	default:
		return nil, apperr.Validation(apperr.CodeInvalidStatus, "Invalid vendor status")
	}

	if _, err := s.Repo.VendorByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor not found")
		}
		return nil, err
	}

	if err := s.Repo.UpdateVendorStatus(ctx, vendorID, status); err != nil {
		return nil, err
	}
	return s.Repo.VendorByID(ctx, vendorID)
}

type BankAccountInput struct {
	AccountHolderName string
	BankName          string
	AccountNumber     string
	RoutingNumber     string
	AccountType       string
	Currency          string
}

func (s *VendorService) AddBankAccount(ctx context.Context, vendorID uint, in BankAccountInput) (*models.VendorBankAccount, error) {
	if in.AccountHolderName == "" || in.BankName == "" || in.RoutingNumber == "" {
		return nil, apperr.Validation(apperr.CodeValidation, "account holder, bank name and routing number are required")
	}
	if n := len(in.AccountNumber); n < 8 || n > 20 {
		return nil, apperr.Validation(apperr.CodeValidation, "account number must be 8-20 characters")
	}
	if in.AccountType == "" {
		in.AccountType = "checking"
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	acc := models.VendorBankAccount{
		VendorID:          vendorID,
		AccountHolderName: in.AccountHolderName,
		BankName:          in.BankName,
		AccountNumber:     in.AccountNumber,
		RoutingNumber:     in.RoutingNumber,
		AccountType:       in.AccountType,
		Currency:          in.Currency,
		IsActive:          true,
	}
	if err := s.Repo.CreateBankAccount(ctx, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *VendorService) BankAccounts(ctx context.Context, vendorID uint) ([]models.VendorBankAccount, error) {
	return s.Repo.BankAccountsByVendor(ctx, vendorID)
}

func (s *VendorService) VerifyBankAccount(ctx context.Context, accountID uint) (*models.VendorBankAccount, error) {
	if _, err := s.Repo.BankAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Bank account not found")
		}
		return nil, err
	}
	if err := s.Repo.VerifyBankAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.Repo.BankAccountByID(ctx, accountID)
}
