package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// EntryKind distinguishes manual incomes from expenses.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// Entry is a manually recorded cash movement outside subscription billing
// (equipment purchases, one-off jobs, office costs).
type Entry struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	Kind       EntryKind    `json:"kind" gorm:"type:text;not null;index"`
	Label      string       `json:"label" gorm:"type:text;not null"`
	Amount     int64        `json:"amount" gorm:"not null"`
	OccurredAt time.Time    `json:"occurred_at" gorm:"not null;index"`
	Notes      string       `json:"notes" gorm:"type:text"`
	CreatedAt  time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "cashflow_entries" }

// MonthTotals sums one month's manual movements.
type MonthTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}
