package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	"github.com/wisphub/netdesk/internal/receivable"
	"github.com/wisphub/netdesk/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCustomerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:customer_svc_test?mode=memory&cache=shared"), &gorm.Config{})
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

func newCustomerService(t *testing.T, db *gorm.DB) customerdomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
}

var (
	seedCityNodeOnce sync.Once
	seedCityNode     *snowflake.Node
	seedCityNodeErr  error
)

func seedCity(t *testing.T, db *gorm.DB, name string) citydomain.City {
	t.Helper()
	seedCityNodeOnce.Do(func() {
		seedCityNode, seedCityNodeErr = snowflake.NewNode(2)
	})
	node, err := seedCityNode, seedCityNodeErr
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	city := citydomain.City{
		ID:        node.Generate(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}
	return city
}

func seedSubscriber(t *testing.T, svc customerdomain.Service, city citydomain.City, name string, value int64) customerdomain.Customer {
	t.Helper()
	customer, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		CityID:            city.ID.String(),
		Name:              name,
		SubscriptionValue: value,
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func TestCreateCustomerRequiresExistingCity(t *testing.T) {
	svc := newCustomerService(t, setupCustomerTestDB(t))

	_, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		CityID:            "99999",
		Name:              "Alice",
		SubscriptionValue: 10000,
	})
	if !errors.Is(err, customerdomain.ErrCityNotFound) {
		t.Fatalf("expected city not found, got %v", err)
	}
}

func TestCreateCustomerRejectsNegativeValue(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")

	_, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		CityID:            city.ID.String(),
		Name:              "Alice",
		SubscriptionValue: -1,
	})
	if !errors.Is(err, customerdomain.ErrNegativeAmount) {
		t.Fatalf("expected negative amount, got %v", err)
	}
}

func TestSetMonthlyStatusPartialRecordsAmount(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	customer := seedSubscriber(t, svc, city, "Alice", 10000)
	ctx := context.Background()

	updated, err := svc.SetMonthlyStatus(ctx, customer.ID.String(), customerdomain.SetMonthlyStatusRequest{
		YearMonth: "2024-03",
		Status:    receivable.StatusPartial,
		Amount:    4000,
	})
	if err != nil {
		t.Fatalf("set status: %v", err)
	}

	if got := updated.MonthlyPayments.Data()["2024-03"]; got != receivable.StatusPartial {
		t.Fatalf("expected partial status, got %q", got)
	}
	if got := updated.PartialPayments.Data()["2024-03"]; got != 4000 {
		t.Fatalf("expected partial amount 4000, got %d", got)
	}
	if updated.SubscriptionPaid != 4000 {
		t.Fatalf("expected legacy mirror 4000, got %d", updated.SubscriptionPaid)
	}
}

func TestSetMonthlyStatusClearsPartialOnPaid(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	customer := seedSubscriber(t, svc, city, "Alice", 10000)
	ctx := context.Background()

	if _, err := svc.SetMonthlyStatus(ctx, customer.ID.String(), customerdomain.SetMonthlyStatusRequest{
		YearMonth: "2024-03",
		Status:    receivable.StatusPartial,
		Amount:    4000,
	}); err != nil {
		t.Fatalf("set partial: %v", err)
	}

	updated, err := svc.SetMonthlyStatus(ctx, customer.ID.String(), customerdomain.SetMonthlyStatusRequest{
		YearMonth: "2024-03",
		Status:    receivable.StatusPaid,
	})
	if err != nil {
		t.Fatalf("set paid: %v", err)
	}

	if got := updated.MonthlyPayments.Data()["2024-03"]; got != receivable.StatusPaid {
		t.Fatalf("expected paid status, got %q", got)
	}
	if _, ok := updated.PartialPayments.Data()["2024-03"]; ok {
		t.Fatal("expected stale partial amount to be dropped")
	}
}

func TestSetMonthlyStatusRejectsBadKey(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	customer := seedSubscriber(t, svc, city, "Alice", 10000)

	for _, key := range []string{"2024-3", "2024/03", "202403", "2024-13", ""} {
		_, err := svc.SetMonthlyStatus(context.Background(), customer.ID.String(), customerdomain.SetMonthlyStatusRequest{
			YearMonth: key,
			Status:    receivable.StatusPaid,
		})
		if !errors.Is(err, customerdomain.ErrInvalidMonthKey) {
			t.Fatalf("key %q: expected invalid month key, got %v", key, err)
		}
	}
}

func TestApplyDiscountCapsAtSubscriptionValue(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	customer := seedSubscriber(t, svc, city, "Alice", 10000)

	updated, err := svc.ApplyDiscount(context.Background(), customer.ID.String(), 15000)
	if err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if updated.SubscriptionValue != 0 {
		t.Fatalf("expected value clamped to 0, got %d", updated.SubscriptionValue)
	}
	if updated.DiscountAmount != 10000 {
		t.Fatalf("expected tracked discount 10000, got %d", updated.DiscountAmount)
	}
	if !updated.HasDiscount {
		t.Fatal("expected discount flag set")
	}
}

func TestRemoveDiscountRestoresValue(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	customer := seedSubscriber(t, svc, city, "Alice", 10000)
	ctx := context.Background()

	if _, err := svc.ApplyDiscount(ctx, customer.ID.String(), 3000); err != nil {
		t.Fatalf("apply discount: %v", err)
	}
	if _, err := svc.ApplyDiscount(ctx, customer.ID.String(), 2000); err != nil {
		t.Fatalf("apply second discount: %v", err)
	}

	restored, err := svc.RemoveDiscount(ctx, customer.ID.String())
	if err != nil {
		t.Fatalf("remove discount: %v", err)
	}
	if restored.SubscriptionValue != 10000 {
		t.Fatalf("expected original value restored, got %d", restored.SubscriptionValue)
	}
	if restored.HasDiscount || restored.DiscountAmount != 0 {
		t.Fatalf("expected discount cleared, got flag=%v amount=%d", restored.HasDiscount, restored.DiscountAmount)
	}

	_, err = svc.RemoveDiscount(ctx, customer.ID.String())
	if !errors.Is(err, customerdomain.ErrNoDiscount) {
		t.Fatalf("expected no discount error, got %v", err)
	}
}

func TestTransferRequiresExistingCity(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	origin := seedCity(t, db, "Origin")
	target := seedCity(t, db, "Target")
	customer := seedSubscriber(t, svc, origin, "Alice", 10000)
	ctx := context.Background()

	_, err := svc.Transfer(ctx, customer.ID.String(), "99999")
	if !errors.Is(err, customerdomain.ErrCityNotFound) {
		t.Fatalf("expected city not found, got %v", err)
	}

	moved, err := svc.Transfer(ctx, customer.ID.String(), target.ID.String())
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if moved.CityID != target.ID {
		t.Fatalf("expected customer in target city, got %s", moved.CityID)
	}
}

func TestSetupFeeOverpaymentGoesNegative(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	ctx := context.Background()

	customer, err := svc.Create(ctx, customerdomain.CreateCustomerRequest{
		CityID:            city.ID.String(),
		Name:              "Alice",
		SubscriptionValue: 10000,
		SetupFeeTotal:     5000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.RecordSetupFeePayment(ctx, customer.ID.String(), 7000)
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if got := updated.SetupFeeRemaining(); got != -2000 {
		t.Fatalf("expected remaining -2000 on overpayment, got %d", got)
	}
}

func TestListCustomersPaginates(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		seedSubscriber(t, svc, city, name, 10000)
	}

	first, info, err := svc.List(ctx, customerdomain.ListCustomerRequest{
		Page: pagination.Pagination{PageSize: 2},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 2 || info.TotalSize != 3 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(first), info.TotalSize)
	}
	if info.NextPageToken == "" {
		t.Fatal("expected a next page token")
	}

	second, info, err := svc.List(ctx, customerdomain.ListCustomerRequest{
		Page: pagination.Pagination{PageSize: 2, PageToken: info.NextPageToken},
	})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second) != 1 || second[0].Name != "Carol" {
		t.Fatalf("expected Carol on last page, got %+v", second)
	}
	if info.NextPageToken != "" {
		t.Fatal("expected no further pages")
	}

	_, _, err = svc.List(ctx, customerdomain.ListCustomerRequest{
		Page: pagination.Pagination{PageToken: "garbage"},
	})
	if !errors.Is(err, customerdomain.ErrInvalidPageToken) {
		t.Fatalf("expected invalid page token, got %v", err)
	}
}

func TestSuspendResume(t *testing.T) {
	db := setupCustomerTestDB(t)
	svc := newCustomerService(t, db)
	city := seedCity(t, db, "Springfield")
	customer := seedSubscriber(t, svc, city, "Alice", 10000)
	ctx := context.Background()

	suspended, err := svc.Suspend(ctx, customer.ID.String())
	if err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if !suspended.IsSuspended {
		t.Fatal("expected suspended flag set")
	}

	resumed, err := svc.Resume(ctx, customer.ID.String())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.IsSuspended {
		t.Fatal("expected suspended flag cleared")
	}
}
