package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/saurabhwebdev/openpos/internal/config"
	productdomain "github.com/saurabhwebdev/openpos/internal/product/domain"
	salesdomain "github.com/saurabhwebdev/openpos/internal/sales/domain"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	taxdomain "github.com/saurabhwebdev/openpos/internal/tax/domain"
	tenantdomain "github.com/saurabhwebdev/openpos/internal/tenant/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	genID      *snowflake.Node
	salesSvc   salesdomain.Service
	productSvc productdomain.Service
	stockSvc   stockdomain.Service
	taxSvc     taxdomain.Service
	tenantSvc  tenantdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	GenID      *snowflake.Node
	SalesSvc   salesdomain.Service
	ProductSvc productdomain.Service
	StockSvc   stockdomain.Service
	TaxSvc     taxdomain.Service
	TenantSvc  tenantdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		genID:      p.GenID,
		salesSvc:   p.SalesSvc,
		productSvc: p.ProductSvc,
		stockSvc:   p.StockSvc,
		taxSvc:     p.TaxSvc,
		tenantSvc:  p.TenantSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.TenantRequired())

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/held", s.ListHeldInvoices)
	api.GET("/invoices/:id", s.GetInvoice)
	api.POST("/invoices/:id/cancel", s.CancelInvoice)
	api.POST("/invoices/:id/resume", s.ResumeInvoice)

	api.POST("/carts/totals", s.PreviewCartTotals)

	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProduct)
	api.POST("/products", s.SaveProduct)
	api.PUT("/products/:id", s.SaveProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.POST("/stock/adjustments", s.AdjustStock)
	api.GET("/stock/movements", s.ListStockMovements)

	api.GET("/tax-slabs", s.ListTaxSlabs)
	api.POST("/tax-slabs", s.SaveTaxSlab)
	api.PUT("/tax-slabs/:id", s.SaveTaxSlab)
	api.DELETE("/tax-slabs/:id", s.DeleteTaxSlab)

	api.GET("/settings", s.GetSettings)
	api.PUT("/settings", s.UpdateSettings)
}
