package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
	"github.com/wisphub/netdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID     *snowflake.Node
	entryRepo repository.Repository[cashflowdomain.Entry]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) cashflowdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("cashflow.service"),

		genID:     p.GenID,
		entryRepo: repository.ProvideStore[cashflowdomain.Entry](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req cashflowdomain.CreateEntryRequest) (cashflowdomain.Entry, error) {
	if req.Kind != cashflowdomain.KindIncome && req.Kind != cashflowdomain.KindExpense {
		return cashflowdomain.Entry{}, cashflowdomain.ErrInvalidKind
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return cashflowdomain.Entry{}, cashflowdomain.ErrLabelMissing
	}
	if req.Amount < 0 {
		return cashflowdomain.Entry{}, cashflowdomain.ErrNegativeAmount
	}
	if req.OccurredAt.IsZero() {
		return cashflowdomain.Entry{}, cashflowdomain.ErrMissingOccurred
	}

	entry := cashflowdomain.Entry{
		ID:         s.genID.Generate(),
		Kind:       req.Kind,
		Label:      label,
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt.UTC(),
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.entryRepo.Create(ctx, &entry); err != nil {
		return cashflowdomain.Entry{}, err
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, req cashflowdomain.ListEntriesRequest) ([]cashflowdomain.Entry, error) {
	if req.Year <= 0 {
		return nil, cashflowdomain.ErrInvalidPeriod
	}

	start, end, err := periodBounds(req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Model(&cashflowdomain.Entry{}).
		Where("occurred_at >= ? AND occurred_at < ?", start, end)
	if req.Kind != "" {
		if req.Kind != cashflowdomain.KindIncome && req.Kind != cashflowdomain.KindExpense {
			return nil, cashflowdomain.ErrInvalidKind
		}
		query = query.Where("kind = ?", req.Kind)
	}

	var entries []cashflowdomain.Entry
	if err := query.Order("occurred_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	entryID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return cashflowdomain.ErrInvalidEntryID
	}

	entry, err := s.entryRepo.FindOne(ctx, "id = ?", entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return cashflowdomain.ErrEntryNotFound
	}
	return s.entryRepo.Delete(ctx, "id = ?", entryID)
}

func (s *Service) Totals(ctx context.Context, year int, month time.Month) (cashflowdomain.MonthTotals, error) {
	if year <= 0 || month < time.January || month > time.December {
		return cashflowdomain.MonthTotals{}, cashflowdomain.ErrInvalidPeriod
	}

	start, end, err := periodBounds(year, month)
	if err != nil {
		return cashflowdomain.MonthTotals{}, err
	}

	var rows []struct {
		Kind  cashflowdomain.EntryKind
		Total int64
	}
	err = s.db.WithContext(ctx).
		Model(&cashflowdomain.Entry{}).
		Select("kind, COALESCE(SUM(amount), 0) AS total").
		Where("occurred_at >= ? AND occurred_at < ?", start, end).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return cashflowdomain.MonthTotals{}, err
	}

	var totals cashflowdomain.MonthTotals
	for _, row := range rows {
		switch row.Kind {
		case cashflowdomain.KindIncome:
			totals.Income = row.Total
		case cashflowdomain.KindExpense:
			totals.Expense = row.Total
		}
	}
	return totals, nil
}

func periodBounds(year int, month time.Month) (time.Time, time.Time, error) {
	if month == 0 {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), nil
	}
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, cashflowdomain.ErrInvalidPeriod
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}
