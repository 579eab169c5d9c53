package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	productdomain "github.com/saurabhwebdev/openpos/internal/product/domain"
	"github.com/saurabhwebdev/openpos/internal/stock/domain"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestLedger(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&productdomain.Product{},
		&domain.StockMovement{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(ServiceParams{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	}).(*Service)

	return svc, db, node
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, tenantID snowflake.ID, stock string) productdomain.Product {
	t.Helper()

	p := productdomain.Product{
		ID:           node.Generate(),
		TenantID:     tenantID,
		Name:         "Masala Chai 250g",
		SKU:          "CHAI-250",
		SellingPrice: decimal.RequireFromString("118.00"),
		CurrentStock: decimal.RequireFromString(stock),
		IsActive:     true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func actorCtx(tenantID, userID snowflake.ID) context.Context {
	return tenantctx.WithActor(context.Background(), tenantctx.Actor{
		TenantID: tenantID,
		UserID:   userID,
		Role:     "cashier",
	})
}

func currentStock(t *testing.T, db *gorm.DB, productID snowflake.ID) decimal.Decimal {
	t.Helper()

	var p productdomain.Product
	require.NoError(t, db.First(&p, "id = ?", productID).Error)
	return p.CurrentStock
}

func TestAdjust_InOutAdjustmentChain(t *testing.T) {
	svc, db, node := newTestLedger(t)
	tenantID := node.Generate()
	userID := node.Generate()
	product := seedProduct(t, db, node, tenantID, "10")
	ctx := actorCtx(tenantID, userID)

	in, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID,
		Type:      domain.MovementIn,
		Quantity:  decimal.RequireFromString("5"),
		Reference: "Purchase order 42",
	})
	require.NoError(t, err)
	assert.True(t, in.PreviousStock.Equal(decimal.RequireFromString("10")))
	assert.True(t, in.NewStock.Equal(decimal.RequireFromString("15")))

	out, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID,
		Type:      domain.MovementOut,
		Quantity:  decimal.RequireFromString("3.5"),
		Reference: "Invoice INV-000007",
	})
	require.NoError(t, err)
	assert.True(t, out.PreviousStock.Equal(decimal.RequireFromString("15")))
	assert.True(t, out.NewStock.Equal(decimal.RequireFromString("11.5")))

	adj, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID,
		Type:      domain.MovementAdjustment,
		Quantity:  decimal.RequireFromString("20"),
		Notes:     "physical count",
	})
	require.NoError(t, err)
	assert.True(t, adj.PreviousStock.Equal(decimal.RequireFromString("11.5")))
	assert.True(t, adj.NewStock.Equal(decimal.RequireFromString("20")))

	// current_stock always agrees with the latest movement's NewStock
	assert.True(t, currentStock(t, db, product.ID).Equal(adj.NewStock))

	movements, err := svc.ListMovements(ctx, domain.ListRequest{ProductID: &product.ID})
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, domain.MovementAdjustment, movements[0].MovementType)
	assert.Equal(t, userID, *movements[0].CreatedBy)
}

func TestAdjust_OutInsufficientStock(t *testing.T) {
	svc, db, node := newTestLedger(t)
	tenantID := node.Generate()
	product := seedProduct(t, db, node, tenantID, "2")
	ctx := actorCtx(tenantID, node.Generate())

	_, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID,
		Type:      domain.MovementOut,
		Quantity:  decimal.RequireFromString("3"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nothing changed, nothing recorded
	assert.True(t, currentStock(t, db, product.ID).Equal(decimal.RequireFromString("2")))
	var count int64
	require.NoError(t, db.Model(&domain.StockMovement{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdjust_ExactStockToZero(t *testing.T) {
	svc, db, node := newTestLedger(t)
	tenantID := node.Generate()
	product := seedProduct(t, db, node, tenantID, "4")
	ctx := actorCtx(tenantID, node.Generate())

	out, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: product.ID,
		Type:      domain.MovementOut,
		Quantity:  decimal.RequireFromString("4"),
	})
	require.NoError(t, err)
	assert.True(t, out.NewStock.IsZero())
	assert.True(t, currentStock(t, db, product.ID).IsZero())
}

func TestAdjust_UnknownProduct(t *testing.T) {
	svc, _, node := newTestLedger(t)
	ctx := actorCtx(node.Generate(), node.Generate())

	_, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: node.Generate(),
		Type:      domain.MovementOut,
		Quantity:  decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdjust_TenantIsolation(t *testing.T) {
	svc, db, node := newTestLedger(t)
	ownerID := node.Generate()
	product := seedProduct(t, db, node, ownerID, "10")

	// another tenant cannot touch the owner's product
	otherCtx := actorCtx(node.Generate(), node.Generate())
	_, err := svc.Adjust(otherCtx, domain.AdjustRequest{
		ProductID: product.ID,
		Type:      domain.MovementIn,
		Quantity:  decimal.RequireFromString("5"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.True(t, currentStock(t, db, product.ID).Equal(decimal.RequireFromString("10")))
}

func TestAdjust_Validation(t *testing.T) {
	svc, _, node := newTestLedger(t)
	tenantID := node.Generate()
	ctx := actorCtx(tenantID, node.Generate())
	productID := node.Generate()

	_, err := svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: productID,
		Type:      domain.MovementOut,
		Quantity:  decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: productID,
		Type:      domain.MovementAdjustment,
		Quantity:  decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Adjust(ctx, domain.AdjustRequest{
		ProductID: productID,
		Type:      domain.MovementType("TRANSFER"),
		Quantity:  decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, err = svc.Adjust(context.Background(), domain.AdjustRequest{
		ProductID: productID,
		Type:      domain.MovementIn,
		Quantity:  decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
}

func TestListMovements_FiltersAndOrder(t *testing.T) {
	svc, db, node := newTestLedger(t)
	tenantID := node.Generate()
	ctx := actorCtx(tenantID, node.Generate())
	first := seedProduct(t, db, node, tenantID, "100")

	second := productdomain.Product{
		ID:           node.Generate(),
		TenantID:     tenantID,
		Name:         "Filter Coffee 500g",
		SKU:          "COF-500",
		SellingPrice: decimal.RequireFromString("236.00"),
		CurrentStock: decimal.RequireFromString("50"),
		IsActive:     true,
	}
	require.NoError(t, db.Create(&second).Error)

	for _, req := range []domain.AdjustRequest{
		{ProductID: first.ID, Type: domain.MovementOut, Quantity: decimal.RequireFromString("1")},
		{ProductID: second.ID, Type: domain.MovementOut, Quantity: decimal.RequireFromString("2")},
		{ProductID: first.ID, Type: domain.MovementIn, Quantity: decimal.RequireFromString("3")},
	} {
		_, err := svc.Adjust(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.ListMovements(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.MovementIn, all[0].MovementType)

	onlyFirst, err := svc.ListMovements(ctx, domain.ListRequest{ProductID: &first.ID})
	require.NoError(t, err)
	require.Len(t, onlyFirst, 2)
	for _, m := range onlyFirst {
		assert.Equal(t, first.ID, m.ProductID)
	}

	limited, err := svc.ListMovements(ctx, domain.ListRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
