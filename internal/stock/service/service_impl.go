package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/stock/domain"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParams struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p ServiceParams) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("stock.service"),
		genID: p.GenID,
	}
}

func (s *Service) Adjust(ctx context.Context, req domain.AdjustRequest) (*domain.StockMovement, error) {
	var movement *domain.StockMovement
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		movement, err = s.ApplyInTx(ctx, tx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ApplyInTx applies one movement inside the caller's transaction. IN and OUT
// are expressed as relative updates executed by the database itself
// (current_stock = current_stock ± quantity), with the no-negative guard in
// the WHERE clause, so concurrent sales of the same product cannot lose
// updates or drive stock below zero.
func (s *Service) ApplyInTx(ctx context.Context, tx *gorm.DB, req domain.AdjustRequest) (*domain.StockMovement, error) {
	actor, ok := tenantctx.ActorFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	if !req.Type.Valid() {
		return nil, domain.ErrInvalidMovementType
	}

	now := time.Now().UTC()
	var previous, current decimal.Decimal

	switch req.Type {
	case domain.MovementIn, domain.MovementOut:
		if !req.Quantity.IsPositive() {
			return nil, domain.ErrInvalidQuantity
		}

		var result *gorm.DB
		if req.Type == domain.MovementOut {
			result = tx.WithContext(ctx).Exec(
				`UPDATE products
				 SET current_stock = current_stock - ?, updated_at = ?
				 WHERE tenant_id = ? AND id = ? AND current_stock >= ?`,
				req.Quantity, now, actor.TenantID, req.ProductID, req.Quantity,
			)
		} else {
			result = tx.WithContext(ctx).Exec(
				`UPDATE products
				 SET current_stock = current_stock + ?, updated_at = ?
				 WHERE tenant_id = ? AND id = ?`,
				req.Quantity, now, actor.TenantID, req.ProductID,
			)
		}
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			exists, err := s.productExists(ctx, tx, actor.TenantID, req.ProductID)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, domain.ErrProductNotFound
			}
			return nil, domain.ErrInsufficientStock
		}

		var err error
		current, err = s.readStock(ctx, tx, actor.TenantID, req.ProductID)
		if err != nil {
			return nil, err
		}
		if req.Type == domain.MovementOut {
			previous = current.Add(req.Quantity)
		} else {
			previous = current.Sub(req.Quantity)
		}

	case domain.MovementAdjustment:
		if req.Quantity.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}

		var err error
		previous, err = s.readStock(ctx, tx, actor.TenantID, req.ProductID)
		if err != nil {
			return nil, err
		}

		result := tx.WithContext(ctx).Exec(
			`UPDATE products
			 SET current_stock = ?, updated_at = ?
			 WHERE tenant_id = ? AND id = ?`,
			req.Quantity, now, actor.TenantID, req.ProductID,
		)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, domain.ErrProductNotFound
		}
		current = req.Quantity
	}

	var createdBy *snowflake.ID
	if actor.UserID != 0 {
		userID := actor.UserID
		createdBy = &userID
	}

	movement := &domain.StockMovement{
		ID:            s.genID.Generate(),
		TenantID:      actor.TenantID,
		ProductID:     req.ProductID,
		MovementType:  req.Type,
		Quantity:      req.Quantity,
		PreviousStock: previous,
		NewStock:      current,
		Reference:     req.Reference,
		Notes:         req.Notes,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}
	if err := tx.WithContext(ctx).Create(movement).Error; err != nil {
		return nil, err
	}

	s.log.Info("stock adjusted",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("type", string(req.Type)),
		zap.String("quantity", req.Quantity.String()),
		zap.String("new_stock", current.String()),
	)
	return movement, nil
}

func (s *Service) ListMovements(ctx context.Context, req domain.ListRequest) ([]domain.StockMovement, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if req.ProductID != nil {
		query = query.Where("product_id = ?", *req.ProductID)
	}

	var movements []domain.StockMovement
	err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (s *Service) productExists(ctx context.Context, tx *gorm.DB, tenantID, productID snowflake.ID) (bool, error) {
	var id snowflake.ID
	err := tx.WithContext(ctx).Raw(
		`SELECT id FROM products WHERE tenant_id = ? AND id = ?`,
		tenantID, productID,
	).Scan(&id).Error
	if err != nil {
		return false, err
	}
	return id != 0, nil
}

func (s *Service) readStock(ctx context.Context, tx *gorm.DB, tenantID, productID snowflake.ID) (decimal.Decimal, error) {
	var row struct {
		ID           snowflake.ID
		CurrentStock decimal.Decimal
	}
	err := tx.WithContext(ctx).Raw(
		`SELECT id, current_stock FROM products WHERE tenant_id = ? AND id = ?`,
		tenantID, productID,
	).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	if row.ID == 0 {
		return decimal.Zero, domain.ErrProductNotFound
	}
	return row.CurrentStock, nil
}
