package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sursrinu/artandcraft-platform/internal/db"
	"github.com/sursrinu/artandcraft-platform/internal/logging"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
	"github.com/sursrinu/artandcraft-platform/internal/service"
)

var testJWTSecret = []byte("test-jwt-secret")

type testEnv struct {
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	vendorSvc := &service.VendorService{Repo: r}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logging.New("error"))
	Register(e, Deps{
		Auth:          &middleware.Auth{JWTSecret: testJWTSecret},
		AuthH:         &AuthHandler{Svc: &service.AuthService{Repo: r, JWTSecret: testJWTSecret, RefreshSecret: []byte("test-refresh-secret")}},
		CartH:         &CartHandler{Svc: &service.CartService{Repo: r}},
		OrderH:        &OrderHandler{Svc: &service.OrderService{Repo: r}, VendorSvc: vendorSvc},
		PayoutH:       &PayoutHandler{Svc: &service.PayoutService{Repo: r}, VendorSvc: vendorSvc},
		ProductH:      &ProductHandler{Svc: &service.ProductService{Repo: r}, VendorSvc: vendorSvc},
		ReviewH:       &ReviewHandler{Svc: &service.ReviewService{Repo: r}},
		UserH:         &UserHandler{Svc: &service.UserService{Repo: r}},
		VendorH:       &VendorHandler{Svc: vendorSvc},
		NotificationH: &NotificationHandler{Svc: &service.NotificationService{Repo: r}},
	})

	return &testEnv{E: e, Repo: r}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// seedVendorUser creates a user with a vendor profile and returns the vendor
// plus a signed access token for the user.
func (env *testEnv) seedVendorUser(t *testing.T, commissionRate string) (*models.Vendor, string) {
	t.Helper()

	user := models.User{
		Username:     "vendor-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         "user",
	}
	require.NoError(t, env.Repo.DB.Create(&user).Error)

	rate, err := decimal.NewFromString(commissionRate)
	require.NoError(t, err)
	vendor := models.Vendor{
		UserID:         user.ID,
		BusinessName:   "Test Crafts",
		Email:          user.Email,
		Status:         models.VendorStatusApproved,
		CommissionRate: rate,
	}
	require.NoError(t, env.Repo.DB.Create(&vendor).Error)

	return &vendor, env.signToken(t, user.ID, "user")
}

func (env *testEnv) seedAdmin(t *testing.T) string {
	t.Helper()

	admin := models.User{
		Username:     "admin-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         "admin",
	}
	require.NoError(t, env.Repo.DB.Create(&admin).Error)
	return env.signToken(t, admin.ID, "admin")
}

func (env *testEnv) signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	token, err := service.SignAccessToken(userID, role, testJWTSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

func (env *testEnv) seedPayableOrder(t *testing.T, vendorID uint, amount string, createdAt time.Time) {
	t.Helper()

	user := models.User{
		Username:     "buyer-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, env.Repo.DB.Create(&user).Error)

	total, err := decimal.NewFromString(amount)
	require.NoError(t, err)
	order := models.Order{
		OrderNumber:   "ORD-" + uuid.NewString()[:12],
		UserID:        user.ID,
		VendorID:      vendorID,
		TotalAmount:   total,
		Status:        models.OrderStatusDelivered,
		PaymentStatus: models.PaymentStatusPaid,
		CreatedAt:     createdAt,
	}
	require.NoError(t, env.Repo.DB.Create(&order).Error)
}

func (env *testEnv) seedVerifiedBankAccount(t *testing.T, vendorID uint) {
	t.Helper()
	require.NoError(t, env.Repo.DB.Create(&models.VendorBankAccount{
		VendorID:          vendorID,
		AccountHolderName: "Test Vendor",
		BankName:          "Test Bank",
		AccountNumber:     "12345678",
		RoutingNumber:     "021000021",
		IsVerified:        true,
		IsActive:          true,
	}).Error)
}
