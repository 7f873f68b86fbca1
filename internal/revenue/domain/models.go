package domain

import (
	"time"

	"github.com/wisphub/netdesk/internal/receivable"
)

// CustomerLine is one customer's receivable position inside a summary.
type CustomerLine struct {
	CustomerID string              `json:"customer_id"`
	Name       string              `json:"name"`
	CityID     string              `json:"city_id"`
	Snapshot   receivable.Snapshot `json:"snapshot"`
	Bucket     receivable.Bucket   `json:"bucket"`
}

type SummaryRequest struct {
	Year   int
	Month  time.Month
	CityID string // empty means all cities
}

// SummaryResponse is the revenue view for one reporting month: the three
// classification buckets, their totals, and the month's manual cashflow.
type SummaryResponse struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	Totals  receivable.Summary `json:"totals"`
	Paid    []CustomerLine     `json:"paid"`
	Partial []CustomerLine     `json:"partial"`
	Pending []CustomerLine     `json:"pending"`

	ManualIncome  int64 `json:"manual_income"`
	ManualExpense int64 `json:"manual_expense"`

	// NetTotal = collected subscriptions + manual income - manual expense.
	NetTotal int64 `json:"net_total"`
}

// GridCell is one month of the yearly tracking grid.
type GridCell struct {
	Month  time.Month        `json:"month"`
	Billed bool              `json:"billed"`
	Status receivable.Status `json:"status"`
	Paid   int64             `json:"paid"`
}

type GridRow struct {
	CustomerID string       `json:"customer_id"`
	Name       string       `json:"name"`
	Cells      [12]GridCell `json:"cells"`
}

type YearlyGridResponse struct {
	Year             int       `json:"year"`
	Rows             []GridRow `json:"rows"`
	MonthlyCollected [12]int64 `json:"monthly_collected"`
}
