package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/tax/domain"
	"github.com/saurabhwebdev/openpos/internal/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p serviceParams) domain.Service {
	return &Service{
		log:   p.Log.Named("tax.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context, country string) ([]domain.TaxSlab, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}
	return s.repo.List(ctx, tenantID, strings.TrimSpace(country))
}

// Save creates or updates a slab. A slab saved with is_default=true clears
// the default flag on every other slab of the same tenant+country; there is
// no uniqueness constraint backing this.
func (s *Service) Save(ctx context.Context, req domain.SaveRequest) (*domain.TaxSlab, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	now := time.Now().UTC()
	var slab *domain.TaxSlab

	if strings.TrimSpace(req.ID) != "" {
		id, err := tenantctx.ParseID(req.ID)
		if err != nil {
			return nil, domain.ErrNotFound
		}
		slab, err = s.repo.FindByID(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if slab == nil {
			return nil, domain.ErrNotFound
		}
	} else {
		slab = &domain.TaxSlab{
			ID:        s.genID.Generate(),
			TenantID:  tenantID,
			CreatedAt: now,
		}
	}

	slab.Country = strings.TrimSpace(req.Country)
	slab.Name = strings.TrimSpace(req.Name)
	slab.TaxType = strings.TrimSpace(req.TaxType)
	slab.Rate = req.Rate
	slab.Component1Name = req.Component1Name
	slab.Component1Rate = req.Component1Rate
	slab.Component2Name = req.Component2Name
	slab.Component2Rate = req.Component2Rate
	slab.Description = req.Description
	if req.IsActive != nil {
		slab.IsActive = *req.IsActive
	} else if strings.TrimSpace(req.ID) == "" {
		slab.IsActive = true
	}
	slab.IsDefault = req.IsDefault
	slab.SortOrder = req.SortOrder
	slab.UpdatedAt = now

	if err := slab.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, slab); err != nil {
		return nil, err
	}

	if slab.IsDefault {
		if err := s.repo.ClearOtherDefaults(ctx, tenantID, slab.Country, slab.ID); err != nil {
			return nil, err
		}
	}

	s.log.Info("tax slab saved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("slab_id", slab.ID.String()),
		zap.String("name", slab.Name),
	)
	return slab, nil
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
	slab, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if slab == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, tenantID, id)
}
