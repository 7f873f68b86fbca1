package routerproxy

import (
	"github.com/wisphub/netdesk/internal/routerproxy/service"
	"go.uber.org/fx"
)

var Module = fx.Module("routerproxy.service",
	fx.Provide(service.NewService),
)
