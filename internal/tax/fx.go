package tax

import (
	"github.com/saurabhwebdev/openpos/internal/tax/repository"
	"github.com/saurabhwebdev/openpos/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
