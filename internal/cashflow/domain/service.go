package domain

import (
	"context"
	"errors"
	"time"
)

type CreateEntryRequest struct {
	Kind       EntryKind
	Label      string
	Amount     int64
	OccurredAt time.Time
	Notes      string
}

type ListEntriesRequest struct {
	Year  int
	Month time.Month // zero lists the whole year
	Kind  EntryKind  // empty lists both kinds
}

type Service interface {
	Create(ctx context.Context, req CreateEntryRequest) (Entry, error)
	List(ctx context.Context, req ListEntriesRequest) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	Totals(ctx context.Context, year int, month time.Month) (MonthTotals, error)
}

var (
	ErrInvalidEntryID  = errors.New("invalid_entry_id")
	ErrEntryNotFound   = errors.New("entry_not_found")
	ErrInvalidKind     = errors.New("invalid_entry_kind")
	ErrLabelMissing    = errors.New("entry_label_required")
	ErrNegativeAmount  = errors.New("negative_amount")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrMissingOccurred = errors.New("occurred_at_required")
)
