package server

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:server_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&citydomain.City{}, &customerdomain.Customer{}, &cashflowdomain.Entry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range []string{"cashflow_entries", "customers", "cities"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset %s: %v", table, err)
		}
	}
	return db
}

func TestDeleteTestDataRemovesPrefixedRows(t *testing.T) {
	db := setupServerTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	e2eCity := citydomain.City{ID: node.Generate(), Name: "e2e-town"}
	keptCity := citydomain.City{ID: node.Generate(), Name: "Springfield"}
	for _, city := range []citydomain.City{e2eCity, keptCity} {
		if err := db.Create(&city).Error; err != nil {
			t.Fatalf("insert city: %v", err)
		}
	}

	customers := []customerdomain.Customer{
		{ID: node.Generate(), CityID: e2eCity.ID, Name: "resident of doomed city"},
		{ID: node.Generate(), CityID: keptCity.ID, Name: "e2e-bob"},
		{ID: node.Generate(), CityID: keptCity.ID, Name: "Alice Example"},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			t.Fatalf("insert customer: %v", err)
		}
	}

	occurred := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
	entries := []cashflowdomain.Entry{
		{ID: node.Generate(), Kind: cashflowdomain.KindIncome, Label: "install", Amount: 5000, OccurredAt: occurred, Notes: "e2e-run-1"},
		{ID: node.Generate(), Kind: cashflowdomain.KindExpense, Label: "fuel", Amount: 1200, OccurredAt: occurred, Notes: "monthly top-up"},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("insert entry: %v", err)
		}
	}

	s := &Server{db: db}
	if err := s.deleteTestData(context.Background(), "e2e-"); err != nil {
		t.Fatalf("deleteTestData: %v", err)
	}

	var cityCount int64
	if err := db.Model(&citydomain.City{}).Count(&cityCount).Error; err != nil {
		t.Fatalf("count cities: %v", err)
	}
	if cityCount != 1 {
		t.Fatalf("city count = %d, want only the kept city", cityCount)
	}

	var names []string
	if err := db.Model(&customerdomain.Customer{}).Order("name").Pluck("name", &names).Error; err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(names) != 1 || names[0] != "Alice Example" {
		t.Fatalf("surviving customers = %v, want only Alice Example", names)
	}

	var notes []string
	if err := db.Model(&cashflowdomain.Entry{}).Pluck("notes", &notes).Error; err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(notes) != 1 || notes[0] != "monthly top-up" {
		t.Fatalf("surviving entries = %v, want only the monthly top-up", notes)
	}
}

func TestDeleteTestDataNoMatchesIsNoop(t *testing.T) {
	db := setupServerTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	occurred := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	entry := cashflowdomain.Entry{ID: node.Generate(), Kind: cashflowdomain.KindIncome, Label: "job", Amount: 100, OccurredAt: occurred, Notes: "keep"}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("insert entry: %v", err)
	}

	s := &Server{db: db}
	if err := s.deleteTestData(context.Background(), "e2e-"); err != nil {
		t.Fatalf("deleteTestData: %v", err)
	}

	var count int64
	if err := db.Model(&cashflowdomain.Entry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if count != 1 {
		t.Fatalf("entry count = %d, want 1", count)
	}
}
