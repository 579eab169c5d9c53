package migration

import (
	"github.com/saurabhwebdev/openpos/internal/config"
	productdomain "github.com/saurabhwebdev/openpos/internal/product/domain"
	salesdomain "github.com/saurabhwebdev/openpos/internal/sales/domain"
	"github.com/saurabhwebdev/openpos/internal/seed"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	taxdomain "github.com/saurabhwebdev/openpos/internal/tax/domain"
	tenantdomain "github.com/saurabhwebdev/openpos/internal/tenant/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite has no versioned migrations; the schema follows the models
			if err := conn.AutoMigrate(
				&tenantdomain.Tenant{},
				&tenantdomain.BusinessSettings{},
				&taxdomain.TaxSlab{},
				&productdomain.Product{},
				&stockdomain.StockMovement{},
				&salesdomain.Invoice{},
				&salesdomain.InvoiceItem{},
				&salesdomain.InvoiceSequence{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultTenantWithID(conn, cfg.DefaultTenantID, cfg.SeedCountry)
	}),
)
