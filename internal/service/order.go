package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/logging"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
}

type CreateOrderResult struct {
	Orders      []models.Order  `json:"orders"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// orderCancellableStatuses: anything already shipped, delivered or cancelled
// stays as is.
func orderCancellable(status string) bool {
	switch status {
	case models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		return false
	}
	return true
}

func validOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled,
		models.OrderStatusReturned:
		return true
	}
	return false
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s",
		time.Now().UnixMilli(),
		strings.ToUpper(uuid.NewString()[:8]))
}

// CreateOrder turns the user's cart into one order per vendor, snapshots
// prices into order items and takes stock, all in a single transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, shippingAddress, paymentMethod string) (*CreateOrderResult, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	cartItems, err := s.Repo.CartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperr.Validation(apperr.CodeEmptyCart, "Cart is empty")
	}

	var result CreateOrderResult
	result.TotalAmount = decimal.Zero

	err = s.Repo.Transaction(ctx, func(tr *repo.GormRepo) error {
		type vendorGroup struct {
			vendorID uint
			items    []models.CartItem
			products map[uint]*models.Product
			total    decimal.Decimal
		}

		var groupOrder []uint
		groups := map[uint]*vendorGroup{}

		for i := range cartItems {
			item := cartItems[i]
			product, err := tr.ProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Product not found")
				}
				return err
			}

			g, ok := groups[product.VendorID]
			if !ok {
				g = &vendorGroup{
					vendorID: product.VendorID,
					products: map[uint]*models.Product{},
					total:    decimal.Zero,
				}
				groups[product.VendorID] = g
				groupOrder = append(groupOrder, product.VendorID)
			}
			g.items = append(g.items, item)
			g.products[product.ID] = product
			g.total = g.total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		for _, vendorID := range groupOrder {
			g := groups[vendorID]

			order := models.Order{
				OrderNumber:     newOrderNumber(),
				UserID:          userID,
				VendorID:        vendorID,
				TotalAmount:     g.total.Round(2),
				DiscountAmount:  decimal.Zero,
				TaxAmount:       decimal.Zero,
				ShippingAmount:  decimal.Zero,
				Status:          models.OrderStatusPending,
				PaymentStatus:   models.PaymentStatusPending,
				PaymentMethod:   paymentMethod,
				ShippingAddress: shippingAddress,
			}
			if err := tr.CreateOrder(ctx, &order); err != nil {
				return err
			}

			for _, item := range g.items {
				product := g.products[item.ProductID]
				qty := decimal.NewFromInt(int64(item.Quantity))
				orderItem := models.OrderItem{
					OrderID:            order.ID,
					ProductID:          product.ID,
					Quantity:           item.Quantity,
					UnitPrice:          product.Price,
					DiscountPercentage: product.DiscountPercentage,
					TotalPrice:         product.Price.Mul(qty).Round(2),
				}
				if err := tr.CreateOrderItem(ctx, &orderItem); err != nil {
					return err
				}
				order.Items = append(order.Items, orderItem)

				ok, err := tr.DecrementStock(ctx, product.ID, item.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return apperr.Conflict(apperr.CodeOutOfStock,
						fmt.Sprintf("Insufficient stock for product %d", product.ID))
				}
			}

			if vendor, err := tr.VendorByID(ctx, vendorID); err == nil {
				n := models.Notification{
					UserID:      vendor.UserID,
					Type:        "new_order",
					Title:       "New Order Received",
					Message:     fmt.Sprintf("You have a new order #%s", order.OrderNumber),
					RelatedID:   order.ID,
					RelatedType: "order",
				}
				if err := tr.CreateNotification(ctx, &n); err != nil {
					return err
				}
			}

			result.Orders = append(result.Orders, order)
			result.TotalAmount = result.TotalAmount.Add(order.TotalAmount)
		}

		return tr.ClearCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	for _, order := range result.Orders {
		publish(ctx, s.Producer, TopicOrderEvents, fmt.Sprint(userID), map[string]interface{}{
			"type":         "order_created",
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"vendor_id":    order.VendorID,
			"user_id":      userID,
			"total":        order.TotalAmount,
		})
	}

	l.Info("create_order_success", "orders", len(result.Orders))
	return &result, nil
}

// CancelOrder restores stock and marks the order cancelled. Shipped,
// delivered and already-cancelled orders are left untouched.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.cancel", "order_id", orderID)

	order, err := s.Repo.OrderByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}

	if !orderCancellable(order.Status) {
		return nil, apperr.Validation(apperr.CodeInvalidStatus, "Cannot cancel this order")
	}

	err = s.Repo.Transaction(ctx, func(tr *repo.GormRepo) error {
		items, err := tr.OrderItems(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := tr.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		ok, err := tr.UpdateOrderStatus(ctx, order.ID, order.Status, models.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict(apperr.CodeInvalidStatus, "Order status changed concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderStatusCancelled
	publish(ctx, s.Producer, TopicOrderEvents, fmt.Sprint(userID), map[string]interface{}{
		"type":     "order_cancelled",
		"order_id": order.ID,
		"user_id":  userID,
	})

	l.Info("cancel_order_success")
	return order, nil
}

// UpdateStatus changes an order's fulfilment status. vendorID 0 means the
// caller is an admin and the ownership check is skipped.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, vendorID uint, status string) (*models.Order, error) {
	if !validOrderStatus(status) {
		return nil, apperr.Validation(apperr.CodeInvalidStatus, "Invalid order status")
	}

	order, err := s.Repo.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}

	if vendorID != 0 && order.VendorID != vendorID {
		return nil, apperr.Forbidden("Order belongs to another vendor")
	}

	ok, err := s.Repo.UpdateOrderStatus(ctx, order.ID, order.Status, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict(apperr.CodeInvalidStatus, "Order status changed concurrently")
	}
	order.Status = status

	n := models.Notification{
		UserID:      order.UserID,
		Type:        "order_status_update",
		Title:       "Order Status Updated",
		Message:     fmt.Sprintf("Your order #%s status is now %s", order.OrderNumber, status),
		RelatedID:   order.ID,
		RelatedType: "order",
	}
	if err := s.Repo.CreateNotification(ctx, &n); err != nil {
		logging.FromContext(ctx).Error("notification_error", "error", err)
	}

	publish(ctx, s.Producer, TopicOrderEvents, fmt.Sprint(order.UserID), map[string]interface{}{
		"type":     "order_status_updated",
		"order_id": order.ID,
		"status":   status,
	})

	return order, nil
}

func (s *OrderService) OrderForUser(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	order, err := s.Repo.OrderByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) UserOrders(ctx context.Context, userID uint, status string, offset, limit int) ([]models.Order, int64, error) {
	return s.Repo.OrdersByUser(ctx, userID, status, offset, limit)
}

func (s *OrderService) VendorOrders(ctx context.Context, vendorID uint, status string, offset, limit int) ([]models.Order, int64, error) {
	return s.Repo.OrdersByVendor(ctx, vendorID, status, offset, limit)
}

func (s *OrderService) AllOrders(ctx context.Context, status string, offset, limit int) ([]models.Order, int64, error) {
	return s.Repo.AllOrders(ctx, status, offset, limit)
}
