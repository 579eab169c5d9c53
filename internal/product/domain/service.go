package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Save(ctx context.Context, req SaveRequest) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type SaveRequest struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Description   *string          `json:"description,omitempty"`
	TaxSlabID     *string          `json:"tax_slab_id,omitempty"`
	CostPrice     decimal.Decimal  `json:"cost_price"`
	SellingPrice  decimal.Decimal  `json:"selling_price"`
	MinStockLevel decimal.Decimal  `json:"min_stock_level"`
	InitialStock  *decimal.Decimal `json:"initial_stock,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}
