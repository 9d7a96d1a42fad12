package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/logging"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type OrderHandler struct {
	Svc       *service.OrderService
	VendorSvc *service.VendorService
}

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	result, err := h.Svc.CreateOrder(ctx, middleware.UserID(c), req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, result, "Orders created successfully")
}

func (h *OrderHandler) List(c echo.Context) error {
	page, offset, limit := pageParams(c)
	orders, total, err := h.Svc.UserOrders(c.Request().Context(), middleware.UserID(c), c.QueryParam("status"), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"orders":     orders,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.OrderForUser(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order, "")
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.CancelOrder(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order, "Order cancelled")
}

// VendorList and VendorUpdateStatus act on the vendor profile bound to the
// authenticated user.
func (h *OrderHandler) VendorList(c echo.Context) error {
	ctx := c.Request().Context()
	vendor, err := h.VendorSvc.VendorForUser(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	page, offset, limit := pageParams(c)
	orders, total, err := h.Svc.VendorOrders(ctx, vendor.ID, c.QueryParam("status"), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"orders":     orders,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *OrderHandler) VendorUpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendor, err := h.VendorSvc.VendorForUser(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	order, err := h.Svc.UpdateStatus(ctx, id, vendor.ID, req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order, "Order status updated")
}

func (h *OrderHandler) AdminList(c echo.Context) error {
	page, offset, limit := pageParams(c)
	orders, total, err := h.Svc.AllOrders(c.Request().Context(), c.QueryParam("status"), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"orders":     orders,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *OrderHandler) AdminUpdateStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(c.Request().Context(), id, 0, req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, order, "Order status updated")
}
