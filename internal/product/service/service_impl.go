package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/product/domain"
	stockdomain "github.com/saurabhwebdev/openpos/internal/stock/domain"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	"github.com/saurabhwebdev/openpos/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Ledger stockdomain.Service
}

type Service struct {
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	ledger stockdomain.Service
}

func NewService(p serviceParams) domain.Service {
	return &Service{
		log:    p.Log.Named("product.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		ledger: p.Ledger,
	}
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Product, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	return s.repo.List(ctx, tenantID, filter)
}

func (s *Service) Get(ctx context.Context, rawID string) (*domain.Product, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	id, err := tenantctx.ParseID(rawID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (s *Service) Save(ctx context.Context, req domain.SaveRequest) (*domain.Product, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if !req.SellingPrice.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	now := time.Now().UTC()
	var product *domain.Product
	created := false

	if strings.TrimSpace(req.ID) != "" {
		id, err := tenantctx.ParseID(req.ID)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		product, err = s.repo.FindByID(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	} else {
		created = true
		product = &domain.Product{
			ID:           s.genID.Generate(),
			TenantID:     tenantID,
			CurrentStock: decimal.Zero,
			IsActive:     true,
			CreatedAt:    now,
		}
	}

	product.Name = name
	product.SKU = strings.TrimSpace(req.SKU)
	product.Description = req.Description
	product.CostPrice = req.CostPrice
	product.SellingPrice = req.SellingPrice
	product.MinStockLevel = req.MinStockLevel
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.TaxSlabID = nil
	if req.TaxSlabID != nil && strings.TrimSpace(*req.TaxSlabID) != "" {
		slabID, err := tenantctx.ParseID(*req.TaxSlabID)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		product.TaxSlabID = &slabID
	}
	product.UpdatedAt = now

	if err := s.repo.Save(ctx, product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateSKU
		}
		return nil, err
	}

	// Initial stock enters through the ledger, never by writing
	// current_stock directly.
	if created && req.InitialStock != nil && req.InitialStock.IsPositive() {
		movement, err := s.ledger.Adjust(ctx, stockdomain.AdjustRequest{
			ProductID: product.ID,
			Type:      stockdomain.MovementAdjustment,
			Quantity:  *req.InitialStock,
			Reference: "Initial stock",
		})
		if err != nil {
			return nil, err
		}
		product.CurrentStock = movement.NewStock
	}

	s.log.Info("product saved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Bool("created", created),
	)
	return product, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidTenant
	}
	id, err := tenantctx.ParseID(rawID)
	if err != nil {
		return domain.ErrNotFound
	}
	product, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, tenantID, id)
}
