package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	"github.com/wisphub/netdesk/internal/clock"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	invoicedomain "github.com/wisphub/netdesk/internal/invoice/domain"
	"github.com/wisphub/netdesk/internal/invoice/render"
	"github.com/wisphub/netdesk/internal/receivable"
	"github.com/wisphub/netdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	renderer render.Renderer

	customerRepo repository.Repository[customerdomain.Customer]
	cityRepo     repository.Repository[citydomain.City]
}

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Renderer render.Renderer
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("invoice.service"),
		clock:    p.Clock,
		renderer: p.Renderer,

		customerRepo: repository.ProvideStore[customerdomain.Customer](p.DB),
		cityRepo:     repository.ProvideStore[citydomain.City](p.DB),
	}
}

func (s *Service) Generate(ctx context.Context, req invoicedomain.GenerateInvoiceRequest) (invoicedomain.Invoice, error) {
	if req.Year <= 0 || req.Month < time.January || req.Month > time.December {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidPeriod
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidCustomerID
	}
	customer, err := s.customerRepo.FindOne(ctx, "id = ?", customerID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if customer == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrCustomerNotFound
	}

	cityName := ""
	if city, err := s.cityRepo.FindOne(ctx, "id = ?", customer.CityID); err == nil && city != nil {
		cityName = city.Name
	}

	snap := receivable.BuildSnapshot(customer.Account(), req.Year, req.Month)

	html, err := s.renderer.RenderHTML(render.RenderInput{
		Company: render.CompanyView{
			Name:        "NetDesk ISP",
			FooterNotes: "Thank you for staying connected.",
		},
		Customer: render.CustomerView{
			Name:    customer.Name,
			Phone:   customer.Phone,
			Address: customer.Address,
			City:    cityName,
		},
		Period: render.PeriodView{
			Year:     req.Year,
			Month:    req.Month,
			IssuedAt: s.clock.Now(),
		},
		Charges: render.ChargesView{
			SubscriptionValue: customer.SubscriptionValue,
			Status:            string(snap.CurrentStatus),
			MonthPaid:         snap.CurrentMonthPaid,
			Outstanding:       snap.Outstanding,
			ArrearsMonths:     snap.ArrearsMonths,
			SetupFeeRemaining: customer.SetupFeeRemaining(),
		},
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	return invoicedomain.Invoice{
		CustomerID: customer.ID.String(),
		Year:       req.Year,
		Month:      req.Month,
		HTML:       html,
	}, nil
}
