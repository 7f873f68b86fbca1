package auth

import (
	"github.com/wisphub/netdesk/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(service.NewService),
)
