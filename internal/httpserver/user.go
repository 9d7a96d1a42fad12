package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) AdminList(c echo.Context) error {
	page, offset, limit := pageParams(c)
	users, total, err := h.Svc.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"users":      users,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *UserHandler) AdminGet(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "")
}

func (h *UserHandler) AdminUpdateStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.UpdateUserStatusRequest
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return apperr.Validation(apperr.CodeValidation, "is_active is required")
	}

	user, err := h.Svc.UpdateStatus(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "User status updated")
}
