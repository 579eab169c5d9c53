package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdjustRequest struct {
	ProductID snowflake.ID
	Type      MovementType
	Quantity  decimal.Decimal
	Reference string
	Notes     string
}

type ListRequest struct {
	ProductID *snowflake.ID
	Limit     int
}

// Service is the stock ledger. Adjust runs as its own transaction (manual
// adjustments); ApplyInTx joins a caller's transaction so invoice completion
// commits or rolls back the stock effect together with the invoice rows.
type Service interface {
	Adjust(ctx context.Context, req AdjustRequest) (*StockMovement, error)
	ApplyInTx(ctx context.Context, tx *gorm.DB, req AdjustRequest) (*StockMovement, error)
	ListMovements(ctx context.Context, req ListRequest) ([]StockMovement, error)
}
