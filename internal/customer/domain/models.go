package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wisphub/netdesk/internal/receivable"
	"gorm.io/datatypes"
)

// MonthlyPayments maps "YYYY-MM" keys to payment statuses. Sparse: absent
// months are pending.
type MonthlyPayments map[string]receivable.Status

// PartialPayments maps "YYYY-MM" keys to the amount actually paid for a
// partial month. This per-month history is the canonical record; the
// SubscriptionPaid column survives only for rows written by older clients.
type PartialPayments map[string]int64

// Customer is the billing subject of the receivable engine.
type Customer struct {
	ID     snowflake.ID `json:"id" gorm:"primaryKey"`
	CityID snowflake.ID `json:"city_id" gorm:"not null;index"`

	Name    string `json:"name" gorm:"type:text;not null;index"`
	Phone   string `json:"phone" gorm:"type:text"`
	Address string `json:"address" gorm:"type:text"`

	// SubscriptionValue is the monthly amount owed in minor currency units.
	// Discounts reduce it in place; it never goes negative.
	SubscriptionValue int64      `json:"subscription_value" gorm:"not null;default:0"`
	StartDate         *time.Time `json:"start_date,omitempty"`

	MonthlyPayments datatypes.JSONType[MonthlyPayments] `json:"monthly_payments" gorm:"type:jsonb"`
	PartialPayments datatypes.JSONType[PartialPayments] `json:"partial_payments" gorm:"type:jsonb"`

	// SubscriptionPaid mirrors the most recent partial amount for legacy
	// readers.
	SubscriptionPaid int64 `json:"subscription_paid" gorm:"not null;default:0"`

	HasDiscount    bool  `json:"has_discount" gorm:"not null;default:false"`
	DiscountAmount int64 `json:"discount_amount" gorm:"not null;default:0"`

	// Setup fee is a one-time ledger independent of the monthly engine.
	// Remaining = total - paid; overpayment is allowed, not an error.
	SetupFeeTotal int64 `json:"setup_fee_total" gorm:"not null;default:0"`
	SetupFeePaid  int64 `json:"setup_fee_paid" gorm:"not null;default:0"`

	IsSuspended bool `json:"is_suspended" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// SetupFeeRemaining derives the outstanding one-time fee. May be negative
// when overpaid.
func (c Customer) SetupFeeRemaining() int64 {
	return c.SetupFeeTotal - c.SetupFeePaid
}

// Account projects the record into the receivable engine's input value. The
// engine receives a copy, never a live reference.
func (c Customer) Account() receivable.Account {
	return receivable.Account{
		SubscriptionValue: c.SubscriptionValue,
		StartDate:         c.StartDate,
		Payments:          c.MonthlyPayments.Data(),
		PartialAmounts:    c.PartialPayments.Data(),
		LegacyPartialPaid: c.SubscriptionPaid,
		Suspended:         c.IsSuspended,
	}
}
