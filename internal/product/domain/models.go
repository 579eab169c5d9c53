// Package domain contains the product catalog models.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry. SellingPrice is tax-inclusive.
// CurrentStock is owned by the stock ledger: nothing outside a ledger
// operation may write it, and every change is paired with a movement row.
type Product struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID snowflake.ID `gorm:"column:tenant_id;not null;index" json:"tenant_id"`

	Name        string  `gorm:"type:text;not null" json:"name"`
	SKU         string  `gorm:"column:sku;type:text" json:"sku,omitempty"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	TaxSlabID *snowflake.ID `gorm:"column:tax_slab_id;index" json:"tax_slab_id,omitempty"`

	CostPrice    decimal.Decimal `gorm:"column:cost_price;type:numeric(12,2);not null;default:0" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2);not null" json:"selling_price"`

	CurrentStock  decimal.Decimal `gorm:"column:current_stock;type:numeric(12,3);not null;default:0" json:"current_stock"`
	MinStockLevel decimal.Decimal `gorm:"column:min_stock_level;type:numeric(12,3);not null;default:0" json:"min_stock_level"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }

// IsLowStock is derived, never stored.
func (p Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStockLevel)
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidPrice  = errors.New("invalid_price")
	ErrNotFound      = errors.New("not_found")
	ErrDuplicateSKU  = errors.New("duplicate_sku")
)
