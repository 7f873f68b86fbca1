package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/wisphub/netdesk/internal/audit"
	"github.com/wisphub/netdesk/internal/auth"
	"github.com/wisphub/netdesk/internal/cashflow"
	"github.com/wisphub/netdesk/internal/city"
	"github.com/wisphub/netdesk/internal/clock"
	"github.com/wisphub/netdesk/internal/config"
	"github.com/wisphub/netdesk/internal/customer"
	"github.com/wisphub/netdesk/internal/invoice"
	"github.com/wisphub/netdesk/internal/logger"
	"github.com/wisphub/netdesk/internal/migration"
	"github.com/wisphub/netdesk/internal/revenue"
	"github.com/wisphub/netdesk/internal/routerproxy"
	"github.com/wisphub/netdesk/internal/seed"
	"github.com/wisphub/netdesk/internal/server"
	"github.com/wisphub/netdesk/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		clock.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			if !cfg.IsProduction() && cfg.Bootstrap.EnsureDefaultAdmin {
				return seed.EnsureAdmin(conn, cfg)
			}
			return nil
		}),

		auth.Module,
		audit.Module,
		city.Module,
		customer.Module,
		cashflow.Module,
		revenue.Module,
		invoice.Module,
		routerproxy.Module,

		server.Module,
	)
	app.Run()
}
