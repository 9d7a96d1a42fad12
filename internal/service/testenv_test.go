package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/db"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return repo.New(gdb)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, code, ae.Code)
}

func seedVendor(t *testing.T, r *repo.GormRepo, commissionRate string) *models.Vendor {
	t.Helper()

	user := models.User{
		Username:     "vendor-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         "user",
	}
	require.NoError(t, r.DB.Create(&user).Error)

	vendor := models.Vendor{
		UserID:         user.ID,
		BusinessName:   "Test Crafts",
		Email:          user.Email,
		Status:         models.VendorStatusApproved,
		CommissionRate: dec(t, commissionRate),
	}
	require.NoError(t, r.DB.Create(&vendor).Error)
	return &vendor
}

func seedBankAccount(t *testing.T, r *repo.GormRepo, vendorID uint, verified bool) *models.VendorBankAccount {
	t.Helper()

	acc := models.VendorBankAccount{
		VendorID:          vendorID,
		AccountHolderName: "Test Vendor",
		BankName:          "Test Bank",
		AccountNumber:     "12345678",
		RoutingNumber:     "021000021",
		AccountType:       "checking",
		Currency:          "USD",
		IsVerified:        verified,
		IsActive:          true,
	}
	require.NoError(t, r.DB.Create(&acc).Error)
	return &acc
}

func seedOrder(t *testing.T, r *repo.GormRepo, vendorID uint, amount, status string, createdAt time.Time) *models.Order {
	t.Helper()

	user := models.User{
		Username:     "buyer-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, r.DB.Create(&user).Error)

	order := models.Order{
		OrderNumber:   "ORD-" + uuid.NewString()[:12],
		UserID:        user.ID,
		VendorID:      vendorID,
		TotalAmount:   dec(t, amount),
		Status:        status,
		PaymentStatus: models.PaymentStatusPaid,
		CreatedAt:     createdAt,
	}
	require.NoError(t, r.DB.Create(&order).Error)
	return &order
}

func seedProduct(t *testing.T, r *repo.GormRepo, vendorID uint, price string, stock int) *models.Product {
	t.Helper()

	product := models.Product{
		VendorID: vendorID,
		Name:     "product-" + uuid.NewString()[:8],
		Price:    dec(t, price),
		Stock:    stock,
	}
	require.NoError(t, r.DB.Create(&product).Error)
	return &product
}
