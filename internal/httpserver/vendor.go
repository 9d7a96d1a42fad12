package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type VendorHandler struct {
	Svc *service.VendorService
}

func (h *VendorHandler) Register(c echo.Context) error {
	var req transport.RegisterVendorRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendor, err := h.Svc.RegisterVendor(c.Request().Context(), middleware.UserID(c), req.BusinessName, req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, vendor, "Vendor profile created")
}

func (h *VendorHandler) Profile(c echo.Context) error {
	vendor, err := h.Svc.VendorForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, vendor, "")
}

func (h *VendorHandler) AddBankAccount(c echo.Context) error {
	var req transport.BankAccountRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendor, err := h.Svc.VendorForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	acc, err := h.Svc.AddBankAccount(c.Request().Context(), vendor.ID, service.BankAccountInput{
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		AccountNumber:     req.AccountNumber,
		RoutingNumber:     req.RoutingNumber,
		AccountType:       req.AccountType,
		Currency:          req.Currency,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, acc, "Bank account added")
}

func (h *VendorHandler) BankAccounts(c echo.Context) error {
	vendor, err := h.Svc.VendorForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	accounts, err := h.Svc.BankAccounts(c.Request().Context(), vendor.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, accounts, "")
}

func (h *VendorHandler) AdminUpdateCommission(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.UpdateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendor, err := h.Svc.UpdateCommissionRate(c.Request().Context(), id, req.CommissionRate)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, vendor, "Commission rate updated")
}

func (h *VendorHandler) AdminUpdateStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.UpdateVendorStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendor, err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, vendor, "Vendor status updated")
}

func (h *VendorHandler) AdminVerifyBankAccount(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	acc, err := h.Svc.VerifyBankAccount(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, acc, "Bank account verified")
}
