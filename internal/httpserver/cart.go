package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type CartHandler struct {
	Svc *service.CartService
}

func (h *CartHandler) GetCart(c echo.Context) error {
	items, err := h.Svc.GetCart(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, items, "")
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	item, err := h.Svc.AddToCart(c.Request().Context(), middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, item, "")
}

func (h *CartHandler) RemoveOne(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	item, deleted, err := h.Svc.RemoveOne(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	if deleted {
		return respond(c, http.StatusOK, map[string]interface{}{"deleted_item": id}, "")
	}
	return respond(c, http.StatusOK, item, "")
}

func (h *CartHandler) RemoveAll(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveAll(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{"deleted_item": id}, "")
}
