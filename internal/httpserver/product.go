package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type ProductHandler struct {
	Svc       *service.ProductService
	VendorSvc *service.VendorService
}

func productInput(req transport.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:               req.Name,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Stock:              req.Stock,
	}
}

// callerVendorID resolves the vendor scope for write operations. Admins
// operate unscoped (vendor id 0).
func (h *ProductHandler) callerVendorID(c echo.Context) (uint, error) {
	if middleware.Role(c) == "admin" {
		return 0, nil
	}
	vendor, err := h.VendorSvc.VendorForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return 0, err
	}
	return vendor.ID, nil
}

func (h *ProductHandler) List(c echo.Context) error {
	page, offset, limit := pageParams(c)
	products, total, err := h.Svc.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"products":   products,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product, "")
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendor, err := h.VendorSvc.VendorForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	product, err := h.Svc.Create(c.Request().Context(), vendor.ID, productInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, product, "Product created")
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendorID, err := h.callerVendorID(c)
	if err != nil {
		return err
	}

	product, err := h.Svc.Update(c.Request().Context(), id, vendorID, productInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, product, "Product updated")
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	vendorID, err := h.callerVendorID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(c.Request().Context(), id, vendorID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{"deleted_product": id}, "Product deleted")
}

func (h *ProductHandler) CreateCategory(c echo.Context) error {
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	category, err := h.Svc.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, category, "Category created")
}

func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, categories, "")
}
