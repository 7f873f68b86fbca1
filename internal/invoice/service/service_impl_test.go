package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	"github.com/wisphub/netdesk/internal/clock"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	invoicedomain "github.com/wisphub/netdesk/internal/invoice/domain"
	"github.com/wisphub/netdesk/internal/invoice/render"
	"github.com/wisphub/netdesk/internal/receivable"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:invoice_svc_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&citydomain.City{}, &customerdomain.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`DELETE FROM customers`).Error; err != nil {
		t.Fatalf("reset customers: %v", err)
	}
	if err := db.Exec(`DELETE FROM cities`).Error; err != nil {
		t.Fatalf("reset cities: %v", err)
	}
	return db
}

func newInvoiceService(t *testing.T, db *gorm.DB) invoicedomain.Service {
	t.Helper()
	return NewService(ServiceParam{
		DB:       db,
		Log:      zap.NewNop(),
		Clock:    clock.Fixed{At: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		Renderer: render.NewRenderer(),
	})
}

func TestGenerateInvoiceRendersCharges(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc := newInvoiceService(t, db)

	city := citydomain.City{ID: 10, Name: "Springfield"}
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}

	start := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	customer := customerdomain.Customer{
		ID:                snowflake.ID(1),
		CityID:            city.ID,
		Name:              "Alice Example",
		Address:           "12 Main St",
		SubscriptionValue: 10000,
		StartDate:         &start,
		MonthlyPayments: datatypes.NewJSONType(customerdomain.MonthlyPayments{
			"2024-04": receivable.StatusPaid,
			"2024-06": receivable.StatusPartial,
		}),
		PartialPayments: datatypes.NewJSONType(customerdomain.PartialPayments{"2024-06": 4000}),
		SetupFeeTotal:   5000,
		SetupFeePaid:    2000,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	invoice, err := svc.Generate(context.Background(), invoicedomain.GenerateInvoiceRequest{
		CustomerID: customer.ID.String(),
		Year:       2024,
		Month:      time.June,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, want := range []string{
		"Alice Example",
		"Springfield",
		"12 Main St",
		"June 2024",
		"Status: partial",
		"USD 100.00", // monthly subscription
		"USD 40.00",  // paid this month
		"USD 160.00", // outstanding: May pending + June remainder
		"USD 30.00",  // setup fee remaining
		"Issued: 2024-06-15",
	} {
		if !strings.Contains(invoice.HTML, want) {
			t.Fatalf("rendered invoice missing %q", want)
		}
	}
}

func TestGenerateInvoiceValidation(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc := newInvoiceService(t, db)
	ctx := context.Background()

	_, err := svc.Generate(ctx, invoicedomain.GenerateInvoiceRequest{CustomerID: "1", Year: 2024, Month: 13})
	if !errors.Is(err, invoicedomain.ErrInvalidPeriod) {
		t.Fatalf("expected invalid period, got %v", err)
	}

	_, err = svc.Generate(ctx, invoicedomain.GenerateInvoiceRequest{CustomerID: "42", Year: 2024, Month: time.June})
	if !errors.Is(err, invoicedomain.ErrCustomerNotFound) {
		t.Fatalf("expected customer not found, got %v", err)
	}
}
