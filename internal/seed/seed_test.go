package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	taxdomain "github.com/saurabhwebdev/openpos/internal/tax/domain"
	tenantdomain "github.com/saurabhwebdev/openpos/internal/tenant/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&tenantdomain.Tenant{},
		&tenantdomain.BusinessSettings{},
		&taxdomain.TaxSlab{},
	))
	return db
}

func TestEnsureDefaultTenant_BootstrapsIndia(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, EnsureDefaultTenant(db, "India"))

	var tenant tenantdomain.Tenant
	require.NoError(t, db.First(&tenant).Error)
	assert.Equal(t, "Main Store", tenant.Name)

	var settings tenantdomain.BusinessSettings
	require.NoError(t, db.First(&settings, "tenant_id = ?", tenant.ID).Error)
	assert.Equal(t, "INR", settings.CurrencyCode)
	assert.Equal(t, "INV-", settings.InvoicePrefix)

	var slabs []taxdomain.TaxSlab
	require.NoError(t, db.Order("sort_order").Find(&slabs, "tenant_id = ?", tenant.ID).Error)
	require.Len(t, slabs, 6)

	defaults := 0
	for _, slab := range slabs {
		if slab.IsDefault {
			defaults++
			assert.Equal(t, "GST 18%", slab.Name)
			require.NotNil(t, slab.Component1Rate)
			assert.True(t, slab.Component1Rate.Equal(decimal.RequireFromString("9")))
		}
	}
	assert.Equal(t, 1, defaults)

	// IGST carries no component split
	last := slabs[len(slabs)-1]
	assert.Equal(t, "IGST 18%", last.Name)
	assert.False(t, last.HasComponents())
}

func TestEnsureDefaultTenant_Idempotent(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, EnsureDefaultTenant(db, "India"))
	require.NoError(t, EnsureDefaultTenant(db, "India"))

	var tenants, slabs int64
	require.NoError(t, db.Model(&tenantdomain.Tenant{}).Count(&tenants).Error)
	require.NoError(t, db.Model(&taxdomain.TaxSlab{}).Count(&slabs).Error)
	assert.EqualValues(t, 1, tenants)
	assert.EqualValues(t, 6, slabs)
}

func TestEnsureDefaultTenantWithID_PinsTenant(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, EnsureDefaultTenantWithID(db, 42, "Australia"))

	var tenant tenantdomain.Tenant
	require.NoError(t, db.First(&tenant, "id = ?", 42).Error)

	var slabs []taxdomain.TaxSlab
	require.NoError(t, db.Find(&slabs, "tenant_id = ?", tenant.ID).Error)
	assert.Len(t, slabs, 2)
}

func TestDefaultTaxSlabs_UnknownCountry(t *testing.T) {
	slabs := DefaultTaxSlabs(1, "Atlantis")
	require.Len(t, slabs, 1)
	assert.True(t, slabs[0].IsDefault)
	assert.True(t, slabs[0].Rate.IsZero())
}
