package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type ListFilter struct {
	Search   string
	LowStock bool
}

type Repository interface {
	List(ctx context.Context, tenantID snowflake.ID, filter ListFilter) ([]Product, error)
	FindByID(ctx context.Context, tenantID, id snowflake.ID) (*Product, error)
	FindByIDs(ctx context.Context, tenantID snowflake.ID, ids []snowflake.ID) (map[snowflake.ID]*Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, tenantID, id snowflake.ID) error
}
