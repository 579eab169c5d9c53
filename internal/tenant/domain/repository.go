package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	GetTenant(ctx context.Context, id snowflake.ID) (*Tenant, error)
	GetSettings(ctx context.Context, tenantID snowflake.ID) (*BusinessSettings, error)
	SaveSettings(ctx context.Context, settings *BusinessSettings) error
}
