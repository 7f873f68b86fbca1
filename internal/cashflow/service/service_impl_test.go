package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCashflowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:cashflow_svc_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&cashflowdomain.Entry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`DELETE FROM cashflow_entries`).Error; err != nil {
		t.Fatalf("reset entries: %v", err)
	}
	return db
}

func newCashflowService(t *testing.T, db *gorm.DB) cashflowdomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestCreateEntryValidation(t *testing.T) {
	svc := newCashflowService(t, setupCashflowTestDB(t))
	ctx := context.Background()
	occurred := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  cashflowdomain.CreateEntryRequest
		want error
	}{
		{"bad kind", cashflowdomain.CreateEntryRequest{Kind: "transfer", Label: "x", Amount: 1, OccurredAt: occurred}, cashflowdomain.ErrInvalidKind},
		{"empty label", cashflowdomain.CreateEntryRequest{Kind: cashflowdomain.KindIncome, Label: "  ", Amount: 1, OccurredAt: occurred}, cashflowdomain.ErrLabelMissing},
		{"negative amount", cashflowdomain.CreateEntryRequest{Kind: cashflowdomain.KindIncome, Label: "x", Amount: -1, OccurredAt: occurred}, cashflowdomain.ErrNegativeAmount},
		{"zero time", cashflowdomain.CreateEntryRequest{Kind: cashflowdomain.KindIncome, Label: "x", Amount: 1}, cashflowdomain.ErrMissingOccurred},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestTotalsGroupsByKind(t *testing.T) {
	svc := newCashflowService(t, setupCashflowTestDB(t))
	ctx := context.Background()

	mustCreate(t, svc, cashflowdomain.KindIncome, "installation job", 5000, time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC))
	mustCreate(t, svc, cashflowdomain.KindIncome, "router sale", 2500, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC))
	mustCreate(t, svc, cashflowdomain.KindExpense, "fuel", 1200, time.Date(2024, time.May, 7, 0, 0, 0, 0, time.UTC))
	// outside the month, must not count
	mustCreate(t, svc, cashflowdomain.KindIncome, "june job", 9999, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))

	totals, err := svc.Totals(ctx, 2024, time.May)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Income != 7500 {
		t.Fatalf("expected income 7500, got %d", totals.Income)
	}
	if totals.Expense != 1200 {
		t.Fatalf("expected expense 1200, got %d", totals.Expense)
	}
}

func TestListFiltersByMonthAndKind(t *testing.T) {
	svc := newCashflowService(t, setupCashflowTestDB(t))
	ctx := context.Background()

	mustCreate(t, svc, cashflowdomain.KindIncome, "may income", 100, time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC))
	mustCreate(t, svc, cashflowdomain.KindExpense, "may expense", 200, time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC))
	mustCreate(t, svc, cashflowdomain.KindIncome, "march income", 300, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC))

	entries, err := svc.List(ctx, cashflowdomain.ListEntriesRequest{Year: 2024, Month: time.May, Kind: cashflowdomain.KindExpense})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Label != "may expense" {
		t.Fatalf("expected only the may expense, got %+v", entries)
	}

	yearWide, err := svc.List(ctx, cashflowdomain.ListEntriesRequest{Year: 2024})
	if err != nil {
		t.Fatalf("list year: %v", err)
	}
	if len(yearWide) != 3 {
		t.Fatalf("expected 3 entries across the year, got %d", len(yearWide))
	}
}

func TestDeleteEntry(t *testing.T) {
	svc := newCashflowService(t, setupCashflowTestDB(t))
	ctx := context.Background()

	entry, err := svc.Create(ctx, cashflowdomain.CreateEntryRequest{
		Kind:       cashflowdomain.KindExpense,
		Label:      "antenna",
		Amount:     800,
		OccurredAt: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, entry.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = svc.Delete(ctx, entry.ID.String())
	if !errors.Is(err, cashflowdomain.ErrEntryNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func mustCreate(t *testing.T, svc cashflowdomain.Service, kind cashflowdomain.EntryKind, label string, amount int64, at time.Time) {
	t.Helper()
	if _, err := svc.Create(context.Background(), cashflowdomain.CreateEntryRequest{
		Kind:       kind,
		Label:      label,
		Amount:     amount,
		OccurredAt: at,
	}); err != nil {
		t.Fatalf("create %s: %v", label, err)
	}
}
