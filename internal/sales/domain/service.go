package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CartLine is one requested line: the product reference and quantity only.
// Prices and tax always come from the live catalog, never from the caller.
type CartLine struct {
	ProductID snowflake.ID    `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateInvoiceRequest creates a COMPLETED or HELD invoice.
type CreateInvoiceRequest struct {
	Status InvoiceStatus `json:"status"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	DiscountType  *DiscountType   `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`

	PaymentMethod  *PaymentMethod  `json:"payment_method"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`

	Notes string     `json:"notes"`
	Lines []CartLine `json:"lines"`
}

// PreviewRequest computes cart totals without persisting anything.
type PreviewRequest struct {
	DiscountType  *DiscountType   `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Lines         []CartLine      `json:"lines"`
}

// ListRequest filters the invoice listing.
type ListRequest struct {
	Date  string `form:"date"` // YYYY-MM-DD, empty for all
	Limit int    `form:"limit"`
}

// ResumedOrder is what a held order becomes when resumed: the held invoice
// is closed out and the cart is rebuilt from the live catalog so the caller
// re-enters checkout at current prices.
type ResumedOrder struct {
	CancelledInvoice *Invoice   `json:"cancelled_invoice"`
	CustomerName     string     `json:"customer_name"`
	CustomerPhone    string     `json:"customer_phone"`
	Notes            string     `json:"notes"`
	Lines            []CartLine `json:"lines"`
	Totals           CartTotals `json:"totals"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	Get(ctx context.Context, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, req ListRequest) ([]Invoice, error)
	ListHeld(ctx context.Context) ([]Invoice, error)
	Cancel(ctx context.Context, id snowflake.ID) (*Invoice, error)
	Resume(ctx context.Context, id snowflake.ID) (*ResumedOrder, error)
	PreviewTotals(ctx context.Context, req PreviewRequest) (*CartTotals, error)
}
