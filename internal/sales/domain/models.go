// Package domain contains the invoice models. An invoice is written exactly
// once: header, items and (when completed) stock effects commit in a single
// transaction, and afterwards only the status column ever changes.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/tax/service"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the invoice lifecycle state.
//
//	COMPLETED --> CANCELLED            (stock stays deducted)
//	HELD      --> COMPLETED/CANCELLED  (held orders never touched stock)
type InvoiceStatus string

const (
	StatusCompleted InvoiceStatus = "COMPLETED"
	StatusHeld      InvoiceStatus = "HELD"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusHeld, StatusCancelled:
		return true
	}
	return false
}

// DiscountType classifies the invoice-level discount.
type DiscountType string

const (
	DiscountFixed      DiscountType = "FIXED"
	DiscountPercentage DiscountType = "PERCENTAGE"
)

// PaymentMethod is how a completed invoice was paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "CARD"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// Invoice is the sale header. Monetary columns store the figures exactly as
// computed at sale time; later price or tax changes never rewrite them.
type Invoice struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID snowflake.ID `gorm:"column:tenant_id;not null;uniqueIndex:ux_invoices_tenant_number,priority:1" json:"tenant_id"`

	InvoiceNumber string        `gorm:"column:invoice_number;type:text;not null;uniqueIndex:ux_invoices_tenant_number,priority:2" json:"invoice_number"`
	Status        InvoiceStatus `gorm:"type:text;not null;index" json:"status"`

	CustomerName  string `gorm:"column:customer_name;type:text" json:"customer_name,omitempty"`
	CustomerPhone string `gorm:"column:customer_phone;type:text" json:"customer_phone,omitempty"`

	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	DiscountType   *DiscountType   `gorm:"column:discount_type;type:text" json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal `gorm:"column:discount_value;type:numeric(12,2);not null;default:0" json:"discount_value"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0" json:"tax_amount"`
	TaxBreakdown   string          `gorm:"column:tax_breakdown;type:text" json:"tax_breakdown,omitempty"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	PaymentMethod  *PaymentMethod  `gorm:"column:payment_method;type:text" json:"payment_method,omitempty"`
	AmountTendered decimal.Decimal `gorm:"column:amount_tendered;type:numeric(12,2);not null;default:0" json:"amount_tendered"`
	ChangeDue      decimal.Decimal `gorm:"column:change_due;type:numeric(12,2);not null;default:0" json:"change_due"`

	Notes     string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy *snowflake.ID `gorm:"column:created_by" json:"created_by,omitempty"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem snapshots one sold line. Name, price and tax figures are
// copied from the catalog at sale time so the invoice stays stable.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"column:tenant_id;not null;index" json:"tenant_id"`
	InvoiceID snowflake.ID `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	ProductID snowflake.ID `gorm:"column:product_id;not null" json:"product_id"`

	ProductName string          `gorm:"column:product_name;type:text;not null" json:"product_name"`
	SKU         string          `gorm:"column:sku;type:text" json:"sku,omitempty"`
	Quantity    decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`

	TaxSlabID *snowflake.ID   `gorm:"column:tax_slab_id" json:"tax_slab_id,omitempty"`
	TaxName   string          `gorm:"column:tax_name;type:text" json:"tax_name,omitempty"`
	TaxRate   decimal.Decimal `gorm:"column:tax_rate;type:numeric(6,3);not null;default:0" json:"tax_rate"`
	TaxAmount decimal.Decimal `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0" json:"tax_amount"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceSequence is the per-tenant invoice counter. It is only ever touched
// through an atomic upsert that increments and returns in one statement.
type InvoiceSequence struct {
	TenantID     snowflake.ID `gorm:"column:tenant_id;primaryKey"`
	LastSequence int64        `gorm:"column:last_sequence;not null"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (InvoiceSequence) TableName() string { return "invoice_sequences" }

// CartTotals is the computed money view of a cart, shared by the live
// preview endpoint and by invoice creation.
type CartTotals struct {
	Subtotal       decimal.Decimal     `json:"subtotal"`
	DiscountAmount decimal.Decimal     `json:"discount_amount"`
	AfterDiscount  decimal.Decimal     `json:"after_discount"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	TaxBreakdown   []service.Component `json:"tax_breakdown"`
	Total          decimal.Decimal     `json:"total"`
}

var (
	ErrInvalidTenant    = errors.New("invalid_tenant")
	ErrEmptyCart        = errors.New("empty_cart")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidDiscount  = errors.New("invalid_discount")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrInvalidPayment   = errors.New("invalid_payment")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrAlreadyCancelled = errors.New("invoice_already_cancelled")
	ErrNotHeld          = errors.New("invoice_not_held")
)
