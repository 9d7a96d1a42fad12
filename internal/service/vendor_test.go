package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/models"
)

func TestVendorService_RegisterVendor(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &VendorService{Repo: r}

	user := models.User{Username: "maker", Email: "maker@example.com", PasswordHash: "x"}
	require.NoError(t, r.DB.Create(&user).Error)

	vendor, err := svc.RegisterVendor(context.Background(), user.ID, "Maker Studio", "studio@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.VendorStatusPending, vendor.Status)
	requireDec(t, "10", vendor.CommissionRate)

	_, err = svc.RegisterVendor(context.Background(), user.ID, "Second Studio", "two@example.com")
	requireCode(t, err, apperr.CodeConflict)

	_, err = svc.RegisterVendor(context.Background(), user.ID, "", "")
	requireCode(t, err, apperr.CodeValidation)
}

func TestVendorService_UpdateCommissionRate(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &VendorService{Repo: r}
	vendor := seedVendor(t, r, "10")

	updated, err := svc.UpdateCommissionRate(context.Background(), vendor.ID, dec(t, "12.5"))
	require.NoError(t, err)
	requireDec(t, "12.5", updated.CommissionRate)

	_, err = svc.UpdateCommissionRate(context.Background(), vendor.ID, dec(t, "-1"))
	requireCode(t, err, apperr.CodeValidation)

	_, err = svc.UpdateCommissionRate(context.Background(), vendor.ID, dec(t, "101"))
	requireCode(t, err, apperr.CodeValidation)

	_, err = svc.UpdateCommissionRate(context.Background(), 999, dec(t, "10"))
	requireCode(t, err, apperr.CodeNotFound)
}

func TestVendorService_BankAccounts(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &VendorService{Repo: r}
	vendor := seedVendor(t, r, "10")

	acc, err := svc.AddBankAccount(context.Background(), vendor.ID, BankAccountInput{
		AccountHolderName: "Maria Maker",
		BankName:          "Craft Bank",
		AccountNumber:     "12345678",
		RoutingNumber:     "021000021",
	})
	require.NoError(t, err)
	assert.Equal(t, "checking", acc.AccountType)
	assert.Equal(t, "USD", acc.Currency)
	assert.False(t, acc.IsVerified)

	_, err = svc.AddBankAccount(context.Background(), vendor.ID, BankAccountInput{
		AccountHolderName: "Maria Maker",
		BankName:          "Craft Bank",
		AccountNumber:     "1234",
		RoutingNumber:     "021000021",
	})
	requireCode(t, err, apperr.CodeValidation)

	verified, err := svc.VerifyBankAccount(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	require.NotNil(t, verified.VerifiedAt)

	accounts, err := svc.BankAccounts(context.Background(), vendor.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
}

func TestVendorService_UpdateStatus(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &VendorService{Repo: r}
	vendor := seedVendor(t, r, "10")

	updated, err := svc.UpdateStatus(context.Background(), vendor.ID, models.VendorStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.VendorStatusSuspended, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), vendor.ID, "frozen")
	requireCode(t, err, apperr.CodeInvalidStatus)
}
