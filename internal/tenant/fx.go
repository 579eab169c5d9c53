package tenant

import (
	"github.com/saurabhwebdev/openpos/internal/tenant/repository"
	"github.com/saurabhwebdev/openpos/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
