package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	List(ctx context.Context, tenantID snowflake.ID, country string) ([]TaxSlab, error)
	FindByID(ctx context.Context, tenantID, id snowflake.ID) (*TaxSlab, error)
	FindByIDs(ctx context.Context, tenantID snowflake.ID, ids []snowflake.ID) (map[snowflake.ID]*TaxSlab, error)
	Save(ctx context.Context, slab *TaxSlab) error
	ClearOtherDefaults(ctx context.Context, tenantID snowflake.ID, country string, keep snowflake.ID) error
	Delete(ctx context.Context, tenantID, id snowflake.ID) error
	CountByCountry(ctx context.Context, tenantID snowflake.ID, country string) (int64, error)
}
