package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/logging"
	"github.com/sursrinu/artandcraft-platform/internal/models"
	"github.com/sursrinu/artandcraft-platform/internal/repo"
)

type PayoutService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
}

type PayoutCalculation struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalOrders      int             `json:"total_orders"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	PayoutAmount     decimal.Decimal `json:"payout_amount"`
	Deductions       decimal.Decimal `json:"deductions"`
}

type PayoutStats struct {
	TotalPayouts        int             `json:"total_payouts"`
	TotalPaidOut        decimal.Decimal `json:"total_paid_out"`
	TotalPending        decimal.Decimal `json:"total_pending"`
	TotalProcessing     decimal.Decimal `json:"total_processing"`
	AveragePayoutAmount decimal.Decimal `json:"average_payout_amount"`
	LastPayoutDate      *time.Time      `json:"last_payout_date,omitempty"`
}

// payoutTransitions is the full state machine. Completed, failed and
// cancelled are terminal.
var payoutTransitions = map[string][]string{
	models.PayoutStatusPending:    {models.PayoutStatusProcessing, models.PayoutStatusCancelled},
	models.PayoutStatusProcessing: {models.PayoutStatusCompleted, models.PayoutStatusFailed, models.PayoutStatusCancelled},
	models.PayoutStatusCompleted:  {},
	models.PayoutStatusFailed:     {},
	models.PayoutStatusCancelled:  {},
}

func validPayoutStatus(status string) bool {
	_, ok := payoutTransitions[status]
	return ok
}

func transitionAllowed(from, to string) bool {
	for _, s := range payoutTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// periodLabel derives the bookkeeping period from the range start,
// e.g. "2024-01".
func periodLabel(start time.Time) string {
	return start.Format("2006-01")
}

func newPayoutNumber() string {
	return "PAY-" + uuid.NewString()[:8]
}

// CalculateForVendor computes the recommended payout for the period without
// persisting anything. Only confirmed/processing/shipped/delivered orders
// count; pending, cancelled and returned orders are excluded.
func (s *PayoutService) CalculateForVendor(ctx context.Context, vendorID uint, start, end time.Time) (*PayoutCalculation, error) {
	if start.After(end) {
		return nil, apperr.Validation(apperr.CodeValidation, "startDate must not be after endDate")
	}

	vendor, err := s.Repo.VendorByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor not found")
		}
		return nil, err
	}

	orders, err := s.Repo.OrdersForPayout(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	for _, order := range orders {
		totalSales = totalSales.Add(order.TotalAmount)
	}
	totalSales = totalSales.Round(2)

	commissionAmount := totalSales.Mul(vendor.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
	payoutAmount := totalSales.Sub(commissionAmount)

	return &PayoutCalculation{
		TotalSales:       totalSales,
		TotalOrders:      len(orders),
		CommissionRate:   vendor.CommissionRate,
		CommissionAmount: commissionAmount,
		PayoutAmount:     payoutAmount,
		Deductions:       decimal.Zero,
	}, nil
}

// CreatePayout runs the calculation and persists a pending payout bound to
// the vendor's verified bank account. One live payout per vendor per period.
func (s *PayoutService) CreatePayout(ctx context.Context, vendorID uint, start, end time.Time, notes string, createdBy *uint) (*models.VendorPayout, error) {
	l := logging.FromContext(ctx).With("svc", "payout.create", "vendor_id", vendorID)

	period := periodLabel(start)
	exists, err := s.Repo.NonCancelledPayoutExists(ctx, vendorID, period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(apperr.CodePayoutExists, "Payout already exists for this period")
	}

	calc, err := s.CalculateForVendor(ctx, vendorID, start, end)
	if err != nil {
		return nil, err
	}

	bankAccount, err := s.Repo.ActiveVerifiedBankAccount(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation(apperr.CodeNoBankAccount, "No verified bank account found for vendor")
		}
		return nil, err
	}

	payout := models.VendorPayout{
		VendorID:         vendorID,
		BankAccountID:    &bankAccount.ID,
		PayoutNumber:     newPayoutNumber(),
		Amount:           calc.PayoutAmount,
		Period:           period,
		StartDate:        start,
		EndDate:          end,
		Status:           models.PayoutStatusPending,
		TotalSales:       calc.TotalSales,
		TotalOrders:      calc.TotalOrders,
		CommissionRate:   calc.CommissionRate,
		CommissionAmount: calc.CommissionAmount,
		Deductions:       decimal.Zero,
		Notes:            notes,
		CreatedBy:        createdBy,
	}
	if err := s.Repo.CreatePayout(ctx, &payout); err != nil {
		// Lost a race against a concurrent create; the partial unique index
		// on (vendor_id, period) is the authoritative guard.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(apperr.CodePayoutExists, "Payout already exists for this period")
		}
		return nil, err
	}

	publish(ctx, s.Producer, TopicPayoutEvents, fmt.Sprint(vendorID), map[string]interface{}{
		"type":          "payout_created",
		"payout_id":     payout.ID,
		"payout_number": payout.PayoutNumber,
		"vendor_id":     vendorID,
		"amount":        payout.Amount,
	})

	l.Info("create_payout_success", "payout_number", payout.PayoutNumber)
	return &payout, nil
}

// UpdateStatus advances the payout through its state machine. Transitions
// not in the diagram fail with INVALID_TRANSITION; nothing leaves a terminal
// state.
func (s *PayoutService) UpdateStatus(ctx context.Context, payoutID uint, newStatus string, adminID uint, transactionID, failureReason string) (*models.VendorPayout, error) {
	l := logging.FromContext(ctx).With("svc", "payout.update_status", "payout_id", payoutID)

	if !validPayoutStatus(newStatus) {
		return nil, apperr.Validation(apperr.CodeInvalidStatus,
			"Status must be one of: pending, processing, completed, failed, cancelled")
	}

	payout, err := s.Repo.PayoutByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Payout not found")
		}
		return nil, err
	}

	if !transitionAllowed(payout.Status, newStatus) {
		return nil, apperr.Conflict(apperr.CodeInvalidTransition,
			fmt.Sprintf("Cannot transition payout from %s to %s", payout.Status, newStatus))
	}

	updates := map[string]interface{}{
		"status":       newStatus,
		"processed_by": adminID,
	}
	if newStatus == models.PayoutStatusCompleted {
		updates["processed_at"] = time.Now().UTC()
		updates["transaction_id"] = transactionID
	}
	if newStatus == models.PayoutStatusFailed {
		if failureReason == "" {
			failureReason = "Payment failed"
		}
		updates["failure_reason"] = failureReason
	}

	ok, err := s.Repo.TransitionPayoutStatus(ctx, payout.ID, payout.Status, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict(apperr.CodeInvalidTransition, "Payout status changed concurrently")
	}

	updated, err := s.Repo.PayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}

	if vendor, err := s.Repo.VendorByID(ctx, payout.VendorID); err == nil {
		n := models.Notification{
			UserID:      vendor.UserID,
			Type:        "payout_" + newStatus,
			Title:       "Payout " + newStatus,
			Message:     fmt.Sprintf("Your payout %s has been %s", payout.PayoutNumber, newStatus),
			RelatedID:   payout.ID,
			RelatedType: "payout",
		}
		if err := s.Repo.CreateNotification(ctx, &n); err != nil {
			l.Error("notification_error", "error", err)
		}
	}

	publish(ctx, s.Producer, TopicPayoutEvents, fmt.Sprint(payout.VendorID), map[string]interface{}{
		"type":      "payout_status_updated",
		"payout_id": payout.ID,
		"status":    newStatus,
	})

	l.Info("update_payout_status_success", "status", newStatus)
	return updated, nil
}

// AddDeductions reduces a pending payout's payable amount and appends the
// reason to the deduction log. A deduction that would push the amount below
// zero is rejected and the payout is left unchanged.
func (s *PayoutService) AddDeductions(ctx context.Context, payoutID uint, amount decimal.Decimal, reason string) (*models.VendorPayout, error) {
	if !amount.IsPositive() {
		return nil, apperr.Validation(apperr.CodeValidation, "Deduction amount must be positive")
	}

	payout, err := s.Repo.PayoutByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Payout not found")
		}
		return nil, err
	}

	if payout.Status != models.PayoutStatusPending {
		return nil, apperr.Validation(apperr.CodeInvalidStatus, "Can only add deductions to pending payouts")
	}

	newDeductions := payout.Deductions.Add(amount)
	newAmount := payout.TotalSales.Sub(payout.CommissionAmount).Sub(newDeductions)
	if newAmount.IsNegative() {
		return nil, apperr.Validation(apperr.CodeInvalidDeduction, "Deduction would result in negative payout amount")
	}

	reasons := reason
	if payout.DeductionReasons != "" {
		reasons = payout.DeductionReasons + "\n" + reason
	}

	ok, err := s.Repo.ApplyPayoutDeduction(ctx, payout.ID, payout.Deductions, newDeductions, newAmount, reasons)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict(apperr.CodeInvalidStatus, "Payout changed concurrently, retry the deduction")
	}

	return s.Repo.PayoutByID(ctx, payoutID)
}

// Cancel marks a payout cancelled. Completed and in-flight (processing)
// payouts cannot be cancelled through this path.
func (s *PayoutService) Cancel(ctx context.Context, payoutID uint, reason string) (*models.VendorPayout, error) {
	payout, err := s.Repo.PayoutByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Payout not found")
		}
		return nil, err
	}

	if payout.Status == models.PayoutStatusCompleted || payout.Status == models.PayoutStatusProcessing {
		return nil, apperr.Validation(apperr.CodeCannotCancel,
			fmt.Sprintf("Cannot cancel a %s payout", payout.Status))
	}
	if payout.Status == models.PayoutStatusCancelled {
		return payout, nil
	}

	updates := map[string]interface{}{
		"status":         models.PayoutStatusCancelled,
		"failure_reason": reason,
	}
	ok, err := s.Repo.TransitionPayoutStatus(ctx, payout.ID, payout.Status, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict(apperr.CodeCannotCancel, "Payout status changed concurrently")
	}

	publish(ctx, s.Producer, TopicPayoutEvents, fmt.Sprint(payout.VendorID), map[string]interface{}{
		"type":      "payout_cancelled",
		"payout_id": payout.ID,
	})

	return s.Repo.PayoutByID(ctx, payoutID)
}

// Stats aggregates across all of a vendor's payouts.
func (s *PayoutService) Stats(ctx context.Context, vendorID uint) (*PayoutStats, error) {
	if _, err := s.Repo.VendorByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Vendor not found")
		}
		return nil, err
	}

	payouts, err := s.Repo.AllPayoutsByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	stats := PayoutStats{
		TotalPayouts:        len(payouts),
		TotalPaidOut:        decimal.Zero,
		TotalPending:        decimal.Zero,
		TotalProcessing:     decimal.Zero,
		AveragePayoutAmount: decimal.Zero,
	}

	completed := 0
	for i := range payouts {
		p := payouts[i]
		switch p.Status {
		case models.PayoutStatusCompleted:
			stats.TotalPaidOut = stats.TotalPaidOut.Add(p.Amount)
			completed++
		case models.PayoutStatusPending:
			stats.TotalPending = stats.TotalPending.Add(p.Amount)
		case models.PayoutStatusProcessing:
			stats.TotalProcessing = stats.TotalProcessing.Add(p.Amount)
		}

		if p.ProcessedAt != nil && (stats.LastPayoutDate == nil || p.ProcessedAt.After(*stats.LastPayoutDate)) {
			stats.LastPayoutDate = p.ProcessedAt
		}
	}

	if completed > 0 {
		stats.AveragePayoutAmount = stats.TotalPaidOut.Div(decimal.NewFromInt(int64(completed))).Round(2)
	}
	stats.TotalPaidOut = stats.TotalPaidOut.Round(2)
	stats.TotalPending = stats.TotalPending.Round(2)
	stats.TotalProcessing = stats.TotalProcessing.Round(2)

	return &stats, nil
}

func (s *PayoutService) PayoutByID(ctx context.Context, payoutID uint) (*models.VendorPayout, error) {
	payout, err := s.Repo.PayoutByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Payout not found")
		}
		return nil, err
	}
	return payout, nil
}

func (s *PayoutService) VendorPayouts(ctx context.Context, vendorID uint, status string, offset, limit int) ([]models.VendorPayout, int64, error) {
	return s.Repo.PayoutsByVendor(ctx, vendorID, status, offset, limit)
}

func (s *PayoutService) AllPayouts(ctx context.Context, vendorID uint, status string, offset, limit int) ([]models.VendorPayout, int64, error) {
	return s.Repo.AllPayouts(ctx, vendorID, status, offset, limit)
}
