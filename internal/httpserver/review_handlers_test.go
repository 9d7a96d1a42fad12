package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

func (env *testEnv) seedBuyerUser(t *testing.T) (*models.User, string) {
	t.Helper()

	user := models.User{
		Username:     "buyer-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         "user",
		IsActive:     true,
	}
	require.NoError(t, env.Repo.DB.Create(&user).Error)
	return &user, env.signToken(t, user.ID, "user")
}

func (env *testEnv) seedReviewableProduct(t *testing.T, vendorID, buyerID uint) *models.Product {
	t.Helper()

	product := models.Product{
		VendorID: vendorID,
		Name:     "product-" + uuid.NewString()[:8],
		Price:    decimal.NewFromInt(50),
		Stock:    10,
	}
	require.NoError(t, env.Repo.DB.Create(&product).Error)

	order := models.Order{
		OrderNumber:   "ORD-" + uuid.NewString()[:12],
		UserID:        buyerID,
		VendorID:      vendorID,
		TotalAmount:   decimal.NewFromInt(50),
		Status:        models.OrderStatusDelivered,
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(50), TotalPrice: decimal.NewFromInt(50)},
		},
	}
	require.NoError(t, env.Repo.DB.Create(&order).Error)
	return &product
}

func TestReviewCreate_RequiresPurchase(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	vendor, _ := env.seedVendorUser(t, "10")
	buyer, _ := env.seedBuyerUser(t)
	product := env.seedReviewableProduct(t, vendor.ID, buyer.ID)

	_, strangerToken := env.seedBuyerUser(t)
	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/reviews", product.ID),
		strangerToken, transport.ReviewRequest{Rating: 5})
	require.Equal(t, http.StatusForbidden, rec.Code)

	body := env.decode(t, rec)
	assert.Equal(t, apperr.CodeNotPurchased, body["error"])
}

func TestReviewFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	vendor, _ := env.seedVendorUser(t, "10")
	buyer, token := env.seedBuyerUser(t)
	product := env.seedReviewableProduct(t, vendor.ID, buyer.ID)

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/products/%d/reviews", product.ID),
		token, transport.ReviewRequest{Rating: 4, Title: "lovely", Comment: "as pictured"})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := env.decode(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_verified_purchase"])
	assert.EqualValues(t, buyer.ID, data["user_id"])

	// listing is public
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d/reviews", product.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = env.decode(t, rec)
	reviews := body["data"].(map[string]interface{})["reviews"].([]interface{})
	require.Len(t, reviews, 1)

	// so is the helpful vote
	reviewID := uint(data["id"].(float64))
	rec = env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/reviews/%d/helpful", reviewID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = env.decode(t, rec)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["helpful_count"])

	// the product aggregate follows
	fresh, err := env.Repo.ProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.TotalReviews)
}
