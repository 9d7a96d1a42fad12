package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type ReviewHandler struct {
	Svc *service.ReviewService
}

func reviewInput(req transport.ReviewRequest) service.ReviewInput {
	return service.ReviewInput{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	}
}

func (h *ReviewHandler) List(c echo.Context) error {
	productID, err := idParam(c)
	if err != nil {
		return err
	}

	page, offset, limit := pageParams(c)
	reviews, total, err := h.Svc.ProductReviews(c.Request().Context(), productID, offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"reviews":    reviews,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *ReviewHandler) Create(c echo.Context) error {
	productID, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	review, err := h.Svc.Create(c.Request().Context(), productID, middleware.UserID(c), reviewInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, review, "Review created")
}

func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	review, err := h.Svc.Update(c.Request().Context(), id, middleware.UserID(c), reviewInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review, "Review updated")
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), id, middleware.UserID(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{"deleted_review": id}, "Review deleted")
}

func (h *ReviewHandler) MarkHelpful(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	review, err := h.Svc.MarkHelpful(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, review, "")
}
