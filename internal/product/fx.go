package product

import (
	"github.com/saurabhwebdev/openpos/internal/product/repository"
	"github.com/saurabhwebdev/openpos/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
