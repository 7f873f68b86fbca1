package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/wisphub/netdesk/internal/audit/domain"
	authdomain "github.com/wisphub/netdesk/internal/auth/domain"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	"github.com/wisphub/netdesk/internal/config"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	invoicedomain "github.com/wisphub/netdesk/internal/invoice/domain"
	revenuedomain "github.com/wisphub/netdesk/internal/revenue/domain"
	routerdomain "github.com/wisphub/netdesk/internal/routerproxy/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

type Server struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger

	engine *gin.Engine

	authSvc     authdomain.Service
	citySvc     citydomain.Service
	customerSvc customerdomain.Service
	revenueSvc  revenuedomain.Service
	cashflowSvc cashflowdomain.Service
	invoiceSvc  invoicedomain.Service
	routerSvc   routerdomain.Service
	auditSvc    auditdomain.Service

	loginLimiter *rateLimiter
}

type ServerParam struct {
	fx.In

	Cfg    config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Engine *gin.Engine

	AuthSvc     authdomain.Service
	CitySvc     citydomain.Service
	CustomerSvc customerdomain.Service
	RevenueSvc  revenuedomain.Service
	CashflowSvc cashflowdomain.Service
	InvoiceSvc  invoicedomain.Service
	RouterSvc   routerdomain.Service
	AuditSvc    auditdomain.Service
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	return engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:    p.Cfg,
		db:     p.DB,
		log:    p.Log.Named("server"),
		engine: p.Engine,

		authSvc:     p.AuthSvc,
		citySvc:     p.CitySvc,
		customerSvc: p.CustomerSvc,
		revenueSvc:  p.RevenueSvc,
		cashflowSvc: p.CashflowSvc,
		invoiceSvc:  p.InvoiceSvc,
		routerSvc:   p.RouterSvc,
		auditSvc:    p.AuditSvc,

		loginLimiter: newRateLimiter(10, time.Minute),
	}
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	api.POST("/auth/login", s.Login)

	authed := api.Group("")
	authed.Use(s.requireAuth())

	authed.POST("/auth/confirm-password", s.ConfirmPassword)

	authed.GET("/cities", s.ListCities)
	authed.POST("/cities", s.CreateCity)
	authed.GET("/cities/:id", s.GetCity)
	authed.PATCH("/cities/:id", s.RenameCity)
	authed.DELETE("/cities/:id", s.DeleteCity)

	authed.GET("/customers", s.ListCustomers)
	authed.POST("/customers", s.CreateCustomer)
	authed.GET("/customers/:id", s.GetCustomer)
	authed.PATCH("/customers/:id", s.UpdateCustomer)
	authed.DELETE("/customers/:id", s.DeleteCustomer)
	authed.POST("/customers/:id/transfer", s.TransferCustomer)
	authed.POST("/customers/:id/payments", s.SetMonthlyStatus)
	authed.POST("/customers/:id/discount", s.ApplyDiscount)
	authed.DELETE("/customers/:id/discount", s.RemoveDiscount)
	authed.POST("/customers/:id/suspend", s.SuspendCustomer)
	authed.POST("/customers/:id/resume", s.ResumeCustomer)
	authed.POST("/customers/:id/setup-fee/payments", s.RecordSetupFeePayment)
	authed.GET("/customers/:id/invoice", s.GenerateInvoice)

	authed.GET("/revenue/summary", s.RevenueSummary)
	authed.GET("/revenue/grid", s.RevenueYearlyGrid)

	authed.GET("/cashflow", s.ListCashflowEntries)
	authed.POST("/cashflow", s.CreateCashflowEntry)
	authed.DELETE("/cashflow/:id", s.DeleteCashflowEntry)

	authed.POST("/router/ping", s.RouterPing)
	authed.POST("/router/secrets/list", s.RouterListSecrets)
	authed.POST("/router/secrets/add", s.RouterAddSecret)
	authed.POST("/router/secrets/remove", s.RouterRemoveSecret)
	authed.POST("/router/secrets/toggle", s.RouterToggleSecret)
	authed.POST("/router/disconnect", s.RouterDisconnect)
	authed.POST("/router/profiles", s.RouterListProfiles)

	authed.GET("/audit", s.ListAuditLog)

	if !s.cfg.IsProduction() {
		authed.POST("/test/cleanup", s.TestCleanup)
	}
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
