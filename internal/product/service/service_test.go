package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/saurabhwebdev/openpos/internal/product/domain"
	"github.com/saurabhwebdev/openpos/internal/product/repository"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	stockservice "github.com/saurabhwebdev/openpos/internal/stock/service"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}, &stockdomain.StockMovement{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	ledger := stockservice.NewService(stockservice.ServiceParams{
		DB:    db,
		Log:   log,
		GenID: node,
	})
	svc := NewService(serviceParams{
		Log:    log,
		GenID:  node,
		Repo:   repository.NewRepository(db),
		Ledger: ledger,
	})
	return svc, db, node
}

func testCtx(node *snowflake.Node) (context.Context, snowflake.ID) {
	tenantID := node.Generate()
	ctx := tenantctx.WithActor(context.Background(), tenantctx.Actor{
		TenantID: tenantID,
		UserID:   node.Generate(),
	})
	return ctx, tenantID
}

func TestSave_CreateWithInitialStock(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx, _ := testCtx(node)

	initial := decimal.RequireFromString("25")
	product, err := svc.Save(ctx, domain.SaveRequest{
		Name:         "Masala Chai 250g",
		SKU:          "CHAI-250",
		SellingPrice: decimal.RequireFromString("118.00"),
		InitialStock: &initial,
	})
	require.NoError(t, err)
	assert.True(t, product.CurrentStock.Equal(initial))

	// the opening balance went through the ledger
	var movement stockdomain.StockMovement
	require.NoError(t, db.First(&movement, "product_id = ?", product.ID).Error)
	assert.Equal(t, stockdomain.MovementAdjustment, movement.MovementType)
	assert.Equal(t, "Initial stock", movement.Reference)
	assert.True(t, movement.NewStock.Equal(initial))
}

func TestSave_UpdateNeverTouchesStock(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx, _ := testCtx(node)

	initial := decimal.RequireFromString("10")
	product, err := svc.Save(ctx, domain.SaveRequest{
		Name:         "Masala Chai 250g",
		SellingPrice: decimal.RequireFromString("118.00"),
		InitialStock: &initial,
	})
	require.NoError(t, err)

	updated, err := svc.Save(ctx, domain.SaveRequest{
		ID:           product.ID.String(),
		Name:         "Masala Chai 500g",
		SellingPrice: decimal.RequireFromString("220.00"),
		InitialStock: &initial, // ignored on update
	})
	require.NoError(t, err)
	assert.Equal(t, "Masala Chai 500g", updated.Name)

	var count int64
	require.NoError(t, db.Model(&stockdomain.StockMovement{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSave_Validation(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := testCtx(node)

	_, err := svc.Save(ctx, domain.SaveRequest{SellingPrice: decimal.RequireFromString("10.00")})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Save(ctx, domain.SaveRequest{Name: "Chai", SellingPrice: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Save(context.Background(), domain.SaveRequest{
		Name:         "Chai",
		SellingPrice: decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
}

func TestList_SearchAndLowStock(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := testCtx(node)

	low := decimal.RequireFromString("2")
	minLevel := decimal.RequireFromString("5")
	_, err := svc.Save(ctx, domain.SaveRequest{
		Name:          "Masala Chai",
		SKU:           "CHAI-250",
		SellingPrice:  decimal.RequireFromString("118.00"),
		MinStockLevel: minLevel,
		InitialStock:  &low,
	})
	require.NoError(t, err)

	plenty := decimal.RequireFromString("100")
	_, err = svc.Save(ctx, domain.SaveRequest{
		Name:         "Filter Coffee",
		SKU:          "COF-500",
		SellingPrice: decimal.RequireFromString("236.00"),
		InitialStock: &plenty,
	})
	require.NoError(t, err)

	found, err := svc.List(ctx, domain.ListFilter{Search: "chai"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Masala Chai", found[0].Name)

	lowStock, err := svc.List(ctx, domain.ListFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, lowStock, 1)
	assert.True(t, lowStock[0].IsLowStock())
}

func TestGetAndDelete(t *testing.T) {
	svc, _, node := newTestService(t)
	ctx, _ := testCtx(node)

	product, err := svc.Save(ctx, domain.SaveRequest{
		Name:         "Chai",
		SellingPrice: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, product.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)

	// another tenant sees nothing
	otherCtx := tenantctx.WithActor(context.Background(), tenantctx.Actor{TenantID: node.Generate()})
	_, err = svc.Get(otherCtx, product.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, product.ID.String()))
	_, err = svc.Get(ctx, product.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
