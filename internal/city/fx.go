package city

import (
	"github.com/wisphub/netdesk/internal/city/service"
	"go.uber.org/fx"
)

var Module = fx.Module("city.service",
	fx.Provide(service.NewService),
)
