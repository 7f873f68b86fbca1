package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
	"github.com/wisphub/netdesk/internal/clock"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	"github.com/wisphub/netdesk/internal/receivable"
	revenuedomain "github.com/wisphub/netdesk/internal/revenue/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock

	cashflowSvc cashflowdomain.Service
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	CashflowSvc cashflowdomain.Service
}

func NewService(p ServiceParam) revenuedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("revenue.service"),
		clock: p.Clock,

		cashflowSvc: p.CashflowSvc,
	}
}

func (s *Service) Summary(ctx context.Context, req revenuedomain.SummaryRequest) (revenuedomain.SummaryResponse, error) {
	if req.Year <= 0 || req.Month < time.January || req.Month > time.December {
		return revenuedomain.SummaryResponse{}, revenuedomain.ErrInvalidPeriod
	}

	customers, err := s.listCustomers(ctx, req.CityID)
	if err != nil {
		return revenuedomain.SummaryResponse{}, err
	}

	now := s.clock.Now()
	resp := revenuedomain.SummaryResponse{
		Year:  req.Year,
		Month: req.Month,
	}

	for _, customer := range customers {
		account := customer.Account()
		if !account.Eligible() {
			continue
		}

		snap := receivable.BuildSnapshot(account, req.Year, req.Month)
		bucket := receivable.ClassifySnapshot(snap, req.Year, req.Month, now)
		resp.Totals.Add(snap, bucket)

		line := revenuedomain.CustomerLine{
			CustomerID: customer.ID.String(),
			Name:       customer.Name,
			CityID:     customer.CityID.String(),
			Snapshot:   snap,
			Bucket:     bucket,
		}
		switch bucket {
		case receivable.BucketPaid:
			resp.Paid = append(resp.Paid, line)
		case receivable.BucketPartial:
			resp.Partial = append(resp.Partial, line)
		case receivable.BucketPending:
			resp.Pending = append(resp.Pending, line)
		}
	}

	manual, err := s.cashflowSvc.Totals(ctx, req.Year, req.Month)
	if err != nil {
		return revenuedomain.SummaryResponse{}, err
	}
	resp.ManualIncome = manual.Income
	resp.ManualExpense = manual.Expense
	resp.NetTotal = resp.Totals.PaidAmount + resp.Totals.PartialAmount +
		manual.Income - manual.Expense

	return resp, nil
}

func (s *Service) YearlyGrid(ctx context.Context, year int, cityID string) (revenuedomain.YearlyGridResponse, error) {
	if year <= 0 {
		return revenuedomain.YearlyGridResponse{}, revenuedomain.ErrInvalidPeriod
	}

	customers, err := s.listCustomers(ctx, cityID)
	if err != nil {
		return revenuedomain.YearlyGridResponse{}, err
	}

	resp := revenuedomain.YearlyGridResponse{Year: year}
	for _, customer := range customers {
		account := customer.Account()
		if !account.Eligible() {
			continue
		}

		row := revenuedomain.GridRow{
			CustomerID: customer.ID.String(),
			Name:       customer.Name,
		}
		for month := time.January; month <= time.December; month++ {
			snap := receivable.BuildSnapshot(account, year, month)
			cell := revenuedomain.GridCell{
				Month:  month,
				Billed: billedIn(account, year, month),
				Status: snap.CurrentStatus,
				Paid:   snap.CurrentMonthPaid,
			}
			row.Cells[month-1] = cell
			resp.MonthlyCollected[month-1] += cell.Paid
		}
		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

// billedIn reports whether the account's effective start is at or before the
// given month; key comparison works because the keys sort chronologically.
func billedIn(account receivable.Account, year int, month time.Month) bool {
	if account.StartDate == nil || account.StartDate.IsZero() {
		return true
	}
	return receivable.KeyFor(*account.StartDate) <= receivable.Key(year, month)
}

func (s *Service) listCustomers(ctx context.Context, cityID string) ([]customerdomain.Customer, error) {
	query := s.db.WithContext(ctx).Model(&customerdomain.Customer{})
	if trimmed := strings.TrimSpace(cityID); trimmed != "" {
		id, err := snowflake.ParseString(trimmed)
		if err != nil {
			return nil, revenuedomain.ErrInvalidCity
		}
		query = query.Where("city_id = ?", id)
	}

	var customers []customerdomain.Customer
	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
