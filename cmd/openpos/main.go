package main

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/config"
	"github.com/saurabhwebdev/openpos/internal/logger"
	"github.com/saurabhwebdev/openpos/internal/migration"
	"github.com/saurabhwebdev/openpos/internal/product"
	"github.com/saurabhwebdev/openpos/internal/sales"
	"github.com/saurabhwebdev/openpos/internal/server"
	"github.com/saurabhwebdev/openpos/internal/stock"
	"github.com/saurabhwebdev/openpos/internal/tax"
	"github.com/saurabhwebdev/openpos/internal/tenant"
	"github.com/saurabhwebdev/openpos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		tenant.Module,
		tax.Module,
		stock.Module,
		product.Module,
		sales.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	nodeID := int64(1)
	if raw := os.Getenv("SNOWFLAKE_NODE"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			nodeID = parsed
		}
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		panic(err)
	}
	return node
}
