package customer

import (
	"github.com/wisphub/netdesk/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(service.NewService),
)
