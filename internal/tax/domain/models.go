// Package domain contains tax slab models. Rates are tax-inclusive
// percentages: a product priced 118.00 under an 18% slab carries 18.00 of
// tax inside the price, extracted by division rather than added on top.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TaxSlab is a tenant+country scoped tax rate, optionally split into two
// named components (e.g. CGST 9% + SGST 9% under an 18% GST slab).
type TaxSlab struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID snowflake.ID `gorm:"column:tenant_id;not null;index:ix_tax_slabs_tenant_country,priority:1" json:"tenant_id"`
	Country  string       `gorm:"type:text;not null;index:ix_tax_slabs_tenant_country,priority:2" json:"country"`

	Name    string          `gorm:"column:tax_name;type:text;not null" json:"name"`
	TaxType string          `gorm:"column:tax_type;type:text" json:"tax_type,omitempty"`
	Rate    decimal.Decimal `gorm:"type:numeric(6,3);not null" json:"rate"`

	Component1Name *string          `gorm:"type:text" json:"component1_name,omitempty"`
	Component1Rate *decimal.Decimal `gorm:"type:numeric(6,3)" json:"component1_rate,omitempty"`
	Component2Name *string          `gorm:"type:text" json:"component2_name,omitempty"`
	Component2Rate *decimal.Decimal `gorm:"type:numeric(6,3)" json:"component2_rate,omitempty"`

	Description *string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsDefault   bool    `gorm:"column:is_default;not null;default:false" json:"is_default"`
	SortOrder   int     `gorm:"column:sort_order;not null;default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TaxSlab) TableName() string { return "tax_slabs" }

func (t *TaxSlab) Validate() error {
	if t.Name == "" {
		return ErrInvalidName
	}
	if t.Rate.IsNegative() || t.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidRate
	}
	return nil
}

// HasComponents reports whether the slab splits its rate into named parts.
func (t *TaxSlab) HasComponents() bool {
	return t.Component1Name != nil && *t.Component1Name != "" &&
		t.Component1Rate != nil && t.Component1Rate.IsPositive()
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidRate   = errors.New("invalid_rate")
	ErrNotFound      = errors.New("not_found")
)
