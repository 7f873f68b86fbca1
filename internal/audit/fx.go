package audit

import (
	"github.com/wisphub/netdesk/internal/audit/repository"
	"github.com/wisphub/netdesk/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
