// Package seed bootstraps a fresh installation: the default tenant, its
// business settings, and the country's default tax slabs.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/saurabhwebdev/openpos/internal/tax/domain"
	tenantdomain "github.com/saurabhwebdev/openpos/internal/tenant/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultTenantName = "Main Store"

// EnsureDefaultTenant seeds the default tenant and settings if no tenant
// exists yet, then seeds that tenant's tax slabs for the given country.
func EnsureDefaultTenant(db *gorm.DB, country string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := ensureTenantTx(ctx, tx, node, 0)
		if err != nil {
			return err
		}
		if err := ensureSettingsTx(ctx, tx, node, tenant.ID, country); err != nil {
			return err
		}
		return ensureTaxSlabsTx(ctx, tx, node, tenant.ID, country)
	})
}

// EnsureDefaultTenantWithID is the same bootstrap pinned to a fixed tenant
// ID, so self-hosted installs can reference the tenant from config.
func EnsureDefaultTenantWithID(db *gorm.DB, id int64, country string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if id == 0 {
		return EnsureDefaultTenant(db, country)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := ensureTenantTx(ctx, tx, node, snowflake.ID(id))
		if err != nil {
			return err
		}
		if err := ensureSettingsTx(ctx, tx, node, tenant.ID, country); err != nil {
			return err
		}
		return ensureTaxSlabsTx(ctx, tx, node, tenant.ID, country)
	})
}

func ensureTenantTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, id snowflake.ID) (*tenantdomain.Tenant, error) {
	var tenant tenantdomain.Tenant
	query := tx.WithContext(ctx)
	if id != 0 {
		query = query.Where("id = ?", id)
	}
	err := query.Order("created_at").First(&tenant).Error
	if err == nil {
		return &tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if id == 0 {
		id = node.Generate()
	}
	tenant = tenantdomain.Tenant{
		ID:        id,
		Name:      defaultTenantName,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func ensureSettingsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, tenantID snowflake.ID, country string) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&tenantdomain.BusinessSettings{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}

	now := time.Now().UTC()
	settings := tenantdomain.BusinessSettings{
		ID:             node.Generate(),
		TenantID:       tenantID,
		BusinessName:   defaultTenantName,
		Country:        country,
		CurrencyCode:   currencyFor(country),
		CurrencySymbol: currencySymbolFor(country),
		InvoicePrefix:  tenantdomain.DefaultInvoicePrefix,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return tx.WithContext(ctx).Create(&settings).Error
}

func ensureTaxSlabsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, tenantID snowflake.ID, country string) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&taxdomain.TaxSlab{}).
		Where("tenant_id = ? AND country = ?", tenantID, country).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}

	now := time.Now().UTC()
	for _, slab := range DefaultTaxSlabs(tenantID, country) {
		slab.ID = node.Generate()
		slab.CreatedAt = now
		slab.UpdatedAt = now
		if err := tx.WithContext(ctx).Create(&slab).Error; err != nil {
			return err
		}
	}
	return nil
}

func currencyFor(country string) string {
	switch country {
	case "India":
		return "INR"
	case "United States":
		return "USD"
	case "United Kingdom":
		return "GBP"
	case "Canada":
		return "CAD"
	case "Australia":
		return "AUD"
	default:
		return "USD"
	}
}

func currencySymbolFor(country string) string {
	switch country {
	case "India":
		return "₹"
	case "United Kingdom":
		return "£"
	default:
		return "$"
	}
}

// DefaultTaxSlabs returns the starter slab set for a country. India gets the
// GST ladder with CGST/SGST splits plus an inter-state IGST entry; countries
// without a preset get a single zero-rate slab.
func DefaultTaxSlabs(tenantID snowflake.ID, country string) []taxdomain.TaxSlab {
	slab := func(name, taxType string, rate string, sortOrder int) taxdomain.TaxSlab {
		return taxdomain.TaxSlab{
			TenantID:  tenantID,
			Country:   country,
			Name:      name,
			TaxType:   taxType,
			Rate:      decimal.RequireFromString(rate),
			IsActive:  true,
			SortOrder: sortOrder,
		}
	}
	split := func(s taxdomain.TaxSlab, half string) taxdomain.TaxSlab {
		cgst, sgst := "CGST", "SGST"
		r1 := decimal.RequireFromString(half)
		r2 := r1
		s.Component1Name, s.Component1Rate = &cgst, &r1
		s.Component2Name, s.Component2Rate = &sgst, &r2
		return s
	}
	describe := func(s taxdomain.TaxSlab, text string) taxdomain.TaxSlab {
		s.Description = &text
		return s
	}
	markDefault := func(s taxdomain.TaxSlab) taxdomain.TaxSlab {
		s.IsDefault = true
		return s
	}

	switch country {
	case "India":
		return []taxdomain.TaxSlab{
			describe(slab("GST 0% (Exempt)", "GST", "0", 1), "Tax-exempt items"),
			split(slab("GST 5%", "CGST+SGST", "5", 2), "2.5"),
			split(slab("GST 12%", "CGST+SGST", "12", 3), "6"),
			markDefault(describe(split(slab("GST 18%", "CGST+SGST", "18", 4), "9"), "Standard GST rate")),
			split(slab("GST 28%", "CGST+SGST", "28", 5), "14"),
			describe(slab("IGST 18%", "IGST", "18", 6), "Inter-state GST"),
		}
	case "United States":
		return []taxdomain.TaxSlab{
			slab("No Tax", "Sales Tax", "0", 1),
			markDefault(describe(slab("Sales Tax", "Sales Tax", "7", 2), "State sales tax (adjust rate for your state)")),
		}
	case "United Kingdom":
		return []taxdomain.TaxSlab{
			describe(slab("VAT Zero", "VAT", "0", 1), "Zero-rated items"),
			describe(slab("VAT Reduced", "VAT", "5", 2), "Reduced rate items"),
			markDefault(describe(slab("VAT Standard", "VAT", "20", 3), "Standard VAT rate")),
		}
	case "Canada":
		return []taxdomain.TaxSlab{
			slab("No Tax", "GST", "0", 1),
			markDefault(describe(slab("GST", "GST", "5", 2), "Federal GST")),
			describe(slab("HST 13%", "HST", "13", 3), "Ontario HST"),
			describe(slab("HST 15%", "HST", "15", 4), "Atlantic provinces HST"),
		}
	case "Australia":
		return []taxdomain.TaxSlab{
			describe(slab("GST-Free", "GST", "0", 1), "Tax-free items"),
			markDefault(describe(slab("GST", "GST", "10", 2), "Goods and Services Tax")),
		}
	default:
		return []taxdomain.TaxSlab{
			markDefault(slab("No Tax", "Tax", "0", 1)),
		}
	}
}
