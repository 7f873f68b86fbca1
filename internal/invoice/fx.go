package invoice

import (
	"github.com/wisphub/netdesk/internal/invoice/render"
	"github.com/wisphub/netdesk/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
