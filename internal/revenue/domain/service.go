package domain

import (
	"context"
	"errors"
)

type Service interface {
	// Summary classifies every eligible customer for the reporting month.
	// Recomputed on every call; it holds no state of its own.
	Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// YearlyGrid renders the per-customer month-by-month tracking view.
	YearlyGrid(ctx context.Context, year int, cityID string) (YearlyGridResponse, error)
}

var (
	ErrInvalidPeriod = errors.New("invalid_period")
	ErrInvalidCity   = errors.New("invalid_city")
)
