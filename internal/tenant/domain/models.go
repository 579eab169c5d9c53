// Package domain contains persistence models for tenants and their settings.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// DefaultInvoicePrefix is used when a tenant has not configured one.
const DefaultInvoicePrefix = "INV-"

// Tenant is the isolation boundary; every row in the system is scoped to one.
type Tenant struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Name      string       `gorm:"type:text;not null"`
	IsActive  bool         `gorm:"not null;default:true"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }

// BusinessSettings holds per-tenant storefront configuration consumed by the
// sales engine (invoice prefix, country for tax slabs) and by receipt
// collaborators (currency).
type BusinessSettings struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID       snowflake.ID `gorm:"column:tenant_id;not null;uniqueIndex" json:"tenant_id"`
	BusinessName   string       `gorm:"type:text;not null" json:"business_name"`
	Country        string       `gorm:"type:text;not null;default:'India'" json:"country"`
	CurrencyCode   string       `gorm:"type:char(3);not null;default:'INR'" json:"currency_code"`
	CurrencySymbol string       `gorm:"type:text;not null;default:'₹'" json:"currency_symbol"`
	InvoicePrefix  string       `gorm:"type:text;not null;default:'INV-'" json:"invoice_prefix"`
	InvoiceFooter  string       `gorm:"type:text" json:"invoice_footer,omitempty"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (BusinessSettings) TableName() string { return "business_settings" }

// Prefix returns the configured invoice prefix or the default.
func (b BusinessSettings) Prefix() string {
	if b.InvoicePrefix == "" {
		return DefaultInvoicePrefix
	}
	return b.InvoicePrefix
}

var (
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrNotFound      = errors.New("not_found")
	ErrInvalidName   = errors.New("invalid_name")
)
