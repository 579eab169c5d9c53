package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/saurabhwebdev/openpos/internal/tenant/domain"
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
		log:   p.Log.Named("tenant.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) GetSettings(ctx context.Context) (*domain.BusinessSettings, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	settings, err := s.repo.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrNotFound
	}
	return settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (*domain.BusinessSettings, error) {
	tenantID, ok := tenantctx.TenantIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidTenant
	}

	settings, err := s.repo.GetSettings(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &domain.BusinessSettings{
			ID:       s.genID.Generate(),
			TenantID: tenantID,
		}
	}

	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		settings.BusinessName = name
	}
	if req.Country != nil {
		settings.Country = strings.TrimSpace(*req.Country)
	}
	if req.CurrencyCode != nil {
		settings.CurrencyCode = strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
	}
	if req.CurrencySymbol != nil {
		settings.CurrencySymbol = strings.TrimSpace(*req.CurrencySymbol)
	}
	if req.InvoicePrefix != nil {
		settings.InvoicePrefix = strings.TrimSpace(*req.InvoicePrefix)
	}
	if req.InvoiceFooter != nil {
		settings.InvoiceFooter = *req.InvoiceFooter
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
