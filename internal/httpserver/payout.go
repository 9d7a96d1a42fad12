package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/middleware"
	"github.com/sursrinu/artandcraft-platform/internal/service"
	"github.com/sursrinu/artandcraft-platform/internal/transport"
)

type PayoutHandler struct {
	Svc       *service.PayoutService
	VendorSvc *service.VendorService
}

// Calculate previews the payout figures for the vendor bound to the caller;
// nothing is persisted.
func (h *PayoutHandler) Calculate(c echo.Context) error {
	ctx := c.Request().Context()
	vendor, err := h.VendorSvc.VendorForUser(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	start, end, err := parseDateRange(c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return err
	}

	calc, err := h.Svc.CalculateForVendor(ctx, vendor.ID, start, end)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, calc, "")
}

func (h *PayoutHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.CreatePayoutRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	vendor, err := h.VendorSvc.VendorForUser(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	userID := middleware.UserID(c)
	payout, err := h.Svc.CreatePayout(ctx, vendor.ID, start, end, req.Notes, &userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, payout, "Payout request created")
}

func (h *PayoutHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	vendor, err := h.VendorSvc.VendorForUser(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	page, offset, limit := pageParams(c)
	payouts, total, err := h.Svc.VendorPayouts(ctx, vendor.ID, c.QueryParam("status"), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"payouts":    payouts,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *PayoutHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	payout, err := h.Svc.PayoutByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	// Vendors see only their own payouts; admins see all.
	if middleware.Role(c) != "admin" {
		vendor, err := h.VendorSvc.VendorForUser(c.Request().Context(), middleware.UserID(c))
		if err != nil {
			return err
		}
		if payout.VendorID != vendor.ID {
			return apperr.Forbidden("Payout belongs to another vendor")
		}
	}
	return respond(c, http.StatusOK, payout, "")
}

func (h *PayoutHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	vendor, err := h.VendorSvc.VendorForUser(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	stats, err := h.Svc.Stats(ctx, vendor.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats, "")
}

func (h *PayoutHandler) Cancel(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.CancelRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	payout, err := h.Svc.Cancel(c.Request().Context(), id, req.Reason)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, payout, "Payout cancelled")
}

func (h *PayoutHandler) AdminList(c echo.Context) error {
	page, offset, limit := pageParams(c)

	var vendorID uint
	if raw := c.QueryParam("vendor_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return apperr.Validation(apperr.CodeValidation, "invalid vendor_id")
		}
		vendorID = uint(v)
	}

	payouts, total, err := h.Svc.AllPayouts(c.Request().Context(), vendorID, c.QueryParam("status"), offset, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]interface{}{
		"payouts":    payouts,
		"pagination": transport.NewPagination(page, limit, total),
	}, "")
}

func (h *PayoutHandler) AdminUpdateStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.UpdatePayoutStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}

	payout, err := h.Svc.UpdateStatus(c.Request().Context(), id, req.Status,
		middleware.UserID(c), req.TransactionID, req.FailureReason)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, payout, "Payout status updated")
}

func (h *PayoutHandler) AdminAddDeductions(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req transport.AddDeductionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(apperr.CodeValidation, "invalid body")
	}
	if req.Reason == "" {
		return apperr.Validation(apperr.CodeValidation, "reason is required")
	}

	payout, err := h.Svc.AddDeductions(c.Request().Context(), id, req.Amount, req.Reason)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, payout, "Deduction applied")
}
