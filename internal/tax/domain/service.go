package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Service interface {
	List(ctx context.Context, country string) ([]TaxSlab, error)
	Save(ctx context.Context, req SaveRequest) (*TaxSlab, error)
	Delete(ctx context.Context, id string) error
}

type SaveRequest struct {
	ID             string           `json:"id,omitempty"`
	Country        string           `json:"country"`
	Name           string           `json:"name"`
	TaxType        string           `json:"tax_type"`
	Rate           decimal.Decimal  `json:"rate"`
	Component1Name *string          `json:"component1_name,omitempty"`
	Component1Rate *decimal.Decimal `json:"component1_rate,omitempty"`
	Component2Name *string          `json:"component2_name,omitempty"`
	Component2Rate *decimal.Decimal `json:"component2_rate,omitempty"`
	Description    *string          `json:"description,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
	IsDefault      bool             `json:"is_default"`
	SortOrder      int              `json:"sort_order"`
}
