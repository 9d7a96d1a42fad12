package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type NotificationHandler struct {
	Svc *service.NotificationService
}

func (h *NotificationHandler) List(c echo.Context) error {
	page, offset, limit := pageParams(c)
	items, total, err := h.Svc.List(c.Request().Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"notifications": items,
		"pagination":    transport.NewPagination(page, limit, total),
	}, "")
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.Svc.MarkRead(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "Notification marked as read")
}
