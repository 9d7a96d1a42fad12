package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

func seedBuyer(t *testing.T, r *repo.GormRepo) *models.User {
	t.Helper()

	user := models.User{
		Username:     "buyer-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         "user",
		IsActive:     true,
	}
	require.NoError(t, r.DB.Create(&user).Error)
	return &user
}

func seedPurchase(t *testing.T, r *repo.GormRepo, userID, vendorID, productID uint, status string) *models.Order {
	t.Helper()

	order := models.Order{
		OrderNumber:   "ORD-" + uuid.NewString()[:12],
		UserID:        userID,
		VendorID:      vendorID,
		TotalAmount:   dec(t, "50"),
		Status:        status,
		PaymentStatus: models.PaymentStatusPaid,
		Items: []models.OrderItem{
			{ProductID: productID, Quantity: 1, UnitPrice: dec(t, "50"), TotalPrice: dec(t, "50")},
		},
	}
	require.NoError(t, r.DB.Create(&order).Error)
	return &order
}

func TestReviewService_Create_RequiresPurchase(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	vendor := seedVendor(t, r, "10")
	product := seedProduct(t, r, vendor.ID, "50", 10)

	// no order at all
	stranger := seedBuyer(t, r)
	_, err := svc.Create(context.Background(), product.ID, stranger.ID, ReviewInput{Rating: 5})
	requireCode(t, err, apperr.CodeNotPurchased)

	// a cancelled order does not count as a purchase
	cancelled := seedBuyer(t, r)
	seedPurchase(t, r, cancelled.ID, vendor.ID, product.ID, models.OrderStatusCancelled)
	_, err = svc.Create(context.Background(), product.ID, cancelled.ID, ReviewInput{Rating: 5})
	requireCode(t, err, apperr.CodeNotPurchased)
}

func TestReviewService_Create_VerifiedAndAggregates(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	vendor := seedVendor(t, r, "10")
	product := seedProduct(t, r, vendor.ID, "50", 10)

	first := seedBuyer(t, r)
	order := seedPurchase(t, r, first.ID, vendor.ID, product.ID, models.OrderStatusDelivered)

	review, err := svc.Create(context.Background(), product.ID, first.ID, ReviewInput{
		Rating:  4,
		Title:   "solid craftsmanship",
		Comment: "arrived well packed",
	})
	require.NoError(t, err)
	assert.True(t, review.IsVerifiedPurchase)
	require.NotNil(t, review.OrderID)
	assert.Equal(t, order.ID, *review.OrderID)

	second := seedBuyer(t, r)
	seedPurchase(t, r, second.ID, vendor.ID, product.ID, models.OrderStatusDelivered)
	_, err = svc.Create(context.Background(), product.ID, second.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)

	fresh, err := r.ProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalReviews)
	requireDec(t, "4.5", fresh.Rating)
}

func TestReviewService_Create_InvalidRating(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), 1, 1, ReviewInput{Rating: rating})
		requireCode(t, err, apperr.CodeValidation)
	}
}

func TestReviewService_Create_UnknownProduct(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	buyer := seedBuyer(t, r)

	_, err := svc.Create(context.Background(), 999, buyer.ID, ReviewInput{Rating: 5})
	requireCode(t, err, apperr.CodeNotFound)
}

func TestReviewService_Update_OwnerOnly(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	vendor := seedVendor(t, r, "10")
	product := seedProduct(t, r, vendor.ID, "50", 10)

	owner := seedBuyer(t, r)
	seedPurchase(t, r, owner.ID, vendor.ID, product.ID, models.OrderStatusDelivered)
	review, err := svc.Create(context.Background(), product.ID, owner.ID, ReviewInput{Rating: 4})
	require.NoError(t, err)

	other := seedBuyer(t, r)
	_, err = svc.Update(context.Background(), review.ID, other.ID, ReviewInput{Rating: 1})
	requireCode(t, err, apperr.CodeForbidden)

	updated, err := svc.Update(context.Background(), review.ID, owner.ID, ReviewInput{Rating: 2, Comment: "broke after a week"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)

	fresh, err := r.ProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	requireDec(t, "2", fresh.Rating)
}

func TestReviewService_Delete_RecomputesRating(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	vendor := seedVendor(t, r, "10")
	product := seedProduct(t, r, vendor.ID, "50", 10)

	owner := seedBuyer(t, r)
	seedPurchase(t, r, owner.ID, vendor.ID, product.ID, models.OrderStatusDelivered)
	review, err := svc.Create(context.Background(), product.ID, owner.ID, ReviewInput{Rating: 4})
	require.NoError(t, err)

	other := seedBuyer(t, r)
	err = svc.Delete(context.Background(), review.ID, other.ID)
	requireCode(t, err, apperr.CodeForbidden)

	require.NoError(t, svc.Delete(context.Background(), review.ID, owner.ID))

	fresh, err := r.ProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.TotalReviews)
	requireDec(t, "0", fresh.Rating)
}

func TestReviewService_MarkHelpful(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	vendor := seedVendor(t, r, "10")
	product := seedProduct(t, r, vendor.ID, "50", 10)

	owner := seedBuyer(t, r)
	seedPurchase(t, r, owner.ID, vendor.ID, product.ID, models.OrderStatusDelivered)
	review, err := svc.Create(context.Background(), product.ID, owner.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)

	_, err = svc.MarkHelpful(context.Background(), review.ID)
	require.NoError(t, err)
	bumped, err := svc.MarkHelpful(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, bumped.HelpfulCount)

	_, err = svc.MarkHelpful(context.Background(), 999)
	requireCode(t, err, apperr.CodeNotFound)
}
