package transport

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CreatePayoutRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

type UpdatePayoutStatusRequest struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	FailureReason string `json:"failure_reason"`
}

type AddDeductionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type ProductRequest struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	CategoryID         uint            `json:"category_id"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Stock              int             `json:"stock"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RegisterVendorRequest struct {
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
}

type UpdateCommissionRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

type UpdateVendorStatusRequest struct {
	Status string `json:"status"`
}

type BankAccountRequest struct {
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	RoutingNumber     string `json:"routing_number"`
	AccountType       string `json:"account_type"`
	Currency          string `json:"currency"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	pages := (total + int64(perPage) - 1) / int64(perPage)
	return Pagination{Page: page, PerPage: perPage, Total: total, Pages: pages}
}
