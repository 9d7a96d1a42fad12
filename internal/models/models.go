package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	IsActive     bool      `gorm:"default:true"             json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Vendor struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"      json:"id"`
	UserID         uint            `gorm:"uniqueIndex;not null"          json:"user_id"`
	BusinessName   string          `gorm:"not null"                      json:"business_name"`
	Email          string          `gorm:"not null"                      json:"email"`
	Status         string          `gorm:"not null;default:pending;index" json:"status"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null"    json:"commission_rate"`
	CreatedAt      time.Time       `json:"created_at"`
}

const (
	VendorStatusPending   = "pending"
	VendorStatusApproved  = "approved"
	VendorStatusRejected  = "rejected"
	VendorStatusSuspended = "suspended"
)

type VendorBankAccount struct {
	ID                uint       `gorm:"primaryKey"               json:"id"`
	VendorID          uint       `gorm:"index;not null"           json:"vendor_id"`
	AccountHolderName string     `gorm:"not null"                 json:"account_holder_name"`
	BankName          string     `gorm:"not null"                 json:"bank_name"`
	AccountNumber     string     `gorm:"not null"                 json:"account_number"`
	RoutingNumber     string     `gorm:"not null"                 json:"routing_number"`
	AccountType       string     `gorm:"default:checking"         json:"account_type"`
	Currency          string     `gorm:"default:USD"              json:"currency"`
	IsVerified        bool       `gorm:"default:false"            json:"is_verified"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	IsActive          bool       `gorm:"default:true;index"       json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey"      json:"id"`
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement"   json:"id"`
	VendorID           uint            `gorm:"index;not null"             json:"vendor_id"`
	CategoryID         uint            `gorm:"index"                      json:"category_id"`
	Name               string          `gorm:"not null"                   json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	Stock              int             `gorm:"not null;default:0"         json:"stock"`
	Rating             decimal.Decimal `gorm:"type:decimal(3,2);default:0" json:"rating"`
	TotalReviews       int             `gorm:"default:0"                  json:"total_reviews"`
	CreatedAt          time.Time       `json:"created_at"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"                 json:"id"`
	UserID    uint `gorm:"index;not null"             json:"user_id"`
	ProductID uint `gorm:"not null"                   json:"product_id"`
	Quantity  int  `gorm:"default:1;check:quantity>0" json:"quantity"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"       json:"id"`
	OrderNumber     string          `gorm:"unique;not null"                json:"order_number"`
	UserID          uint            `gorm:"index;not null"                 json:"user_id"`
	VendorID        uint            `gorm:"index;not null"                 json:"vendor_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"    json:"total_amount"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2);default:0"   json:"discount_amount"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(10,2);default:0"   json:"tax_amount"`
	ShippingAmount  decimal.Decimal `gorm:"type:decimal(10,2);default:0"   json:"shipping_amount"`
	Status          string          `gorm:"not null;default:pending;index" json:"status"`
	PaymentStatus   string          `gorm:"not null;default:pending"       json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress string          `gorm:"type:text"                      json:"shipping_address"`
	CreatedAt       time.Time       `gorm:"index"                          json:"created_at"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"             json:"items,omitempty"`
}

// OrderItem is a point-in-time snapshot: price and discount are copied from
// the product at checkout and never updated afterwards.
type OrderItem struct {
	ID                 uint            `gorm:"primaryKey"                  json:"id"`
	OrderID            uint            `gorm:"index;not null"              json:"order_id"`
	ProductID          uint            `gorm:"index;not null"              json:"product_id"`
	Quantity           int             `gorm:"default:1"                   json:"quantity"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount_percentage"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt          time.Time       `json:"created_at"`
}

const (
	PayoutStatusPending    = "pending"
	PayoutStatusProcessing = "processing"
	PayoutStatusCompleted  = "completed"
	PayoutStatusFailed     = "failed"
	PayoutStatusCancelled  = "cancelled"
)

type VendorPayout struct {
	ID               uint            `gorm:"primaryKey;autoIncrement"       json:"id"`
	VendorID         uint            `gorm:"index;not null"                 json:"vendor_id"`
	BankAccountID    *uint           `json:"bank_account_id,omitempty"`
	PayoutNumber     string          `gorm:"unique;not null"                json:"payout_number"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null"    json:"amount"`
	Period           string          `gorm:"not null;index"                 json:"period"`
	StartDate        time.Time       `gorm:"not null"                       json:"start_date"`
	EndDate          time.Time       `gorm:"not null"                       json:"end_date"`
	Status           string          `gorm:"not null;default:pending;index" json:"status"`
	TotalSales       decimal.Decimal `gorm:"type:decimal(12,2);default:0"   json:"total_sales"`
	TotalOrders      int             `gorm:"default:0"                      json:"total_orders"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,2);not null"     json:"commission_rate"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0"   json:"commission_amount"`
	Deductions       decimal.Decimal `gorm:"type:decimal(12,2);default:0"   json:"deductions"`
	DeductionReasons string          `gorm:"type:text"                      json:"deduction_reasons"`
	TransactionID    string          `json:"transaction_id"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty"`
	FailureReason    string          `gorm:"type:text"                      json:"failure_reason"`
	Notes            string          `gorm:"type:text"                      json:"notes"`
	CreatedBy        *uint           `json:"created_by,omitempty"`
	ProcessedBy      *uint           `json:"processed_by,omitempty"`
	CreatedAt        time.Time       `gorm:"index"                          json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Review carries a verified-purchase flag: set when the reviewer has an
// order containing the product.
type Review struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID          uint      `gorm:"index;not null"           json:"product_id"`
	UserID             uint      `gorm:"index;not null"           json:"user_id"`
	OrderID            *uint     `json:"order_id,omitempty"`
	Rating             int       `gorm:"not null;index"           json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `gorm:"type:text"                json:"comment"`
	IsVerifiedPurchase bool      `gorm:"default:false"            json:"is_verified_purchase"`
	HelpfulCount       int       `gorm:"default:0"                json:"helpful_count"`
	CreatedAt          time.Time `gorm:"index"                    json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Notification struct {
	ID          uint       `gorm:"primaryKey"         json:"id"`
	UserID      uint       `gorm:"index;not null"     json:"user_id"`
	Type        string     `gorm:"not null"           json:"type"`
	Title       string     `gorm:"not null"           json:"title"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	RelatedID   uint       `json:"related_id"`
	RelatedType string     `json:"related_type"`
	IsRead      bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
