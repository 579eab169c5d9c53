// Package domain contains the stock ledger models. The ledger is the only
// writer of products.current_stock: every change to that column is paired
// with exactly one append-only StockMovement row recording the before and
// after quantities.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

func (m MovementType) Valid() bool {
	switch m {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement is one ledger row. For IN/OUT, NewStock = PreviousStock ±
// Quantity; for ADJUSTMENT, NewStock is the given absolute value. Rows are
// never edited or deleted.
type StockMovement struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"column:tenant_id;not null;index" json:"tenant_id"`
	ProductID snowflake.ID `gorm:"column:product_id;not null;index" json:"product_id"`

	MovementType  MovementType    `gorm:"column:movement_type;type:text;not null" json:"movement_type"`
	Quantity      decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	PreviousStock decimal.Decimal `gorm:"column:previous_stock;type:numeric(12,3);not null" json:"previous_stock"`
	NewStock      decimal.Decimal `gorm:"column:new_stock;type:numeric(12,3);not null" json:"new_stock"`

	Reference string        `gorm:"type:text" json:"reference,omitempty"`
	Notes     string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy *snowflake.ID `gorm:"column:created_by" json:"created_by,omitempty"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (StockMovement) TableName() string { return "stock_movements" }

var (
	ErrInvalidTenant       = errors.New("invalid_tenant")
	ErrInvalidMovementType = errors.New("invalid_movement_type")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrProductNotFound     = errors.New("product_not_found")
	ErrInsufficientStock   = errors.New("insufficient_stock")
)
