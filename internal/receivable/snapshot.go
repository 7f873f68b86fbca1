package receivable

import "time"

// Status is a month's payment state. Months absent from an account's payment
// record are implicitly pending.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPartial Status = "partial"
	StatusPending Status = "pending"
)

// Normalize maps any value outside the closed status set to pending, so a
// garbage entry written by an older client can never inflate totals.
func (s Status) Normalize() Status {
	switch s {
	case StatusPaid, StatusPartial, StatusPending:
		return s
	default:
		return StatusPending
	}
}

// Account is the engine's view of one customer. All amounts are in minor
// currency units.
type Account struct {
	// SubscriptionValue is the monthly amount owed. Negative values are
	// treated as zero due.
	SubscriptionValue int64

	// StartDate marks the first billed month. Nil means billing starts at
	// January of the reporting year.
	StartDate *time.Time

	// Payments is the sparse month-key → status record.
	Payments map[string]Status

	// PartialAmounts is the per-month partial payment history, keyed like
	// Payments. It is the canonical record for partial months.
	PartialAmounts map[string]int64

	// LegacyPartialPaid is the single "current" partial amount kept by older
	// records. Used only when a partial month has no PartialAmounts entry.
	LegacyPartialPaid int64

	// Suspended accounts are excluded from aggregation entirely.
	Suspended bool
}

// Snapshot is the computed receivable summary for one account at one
// reporting month.
type Snapshot struct {
	Months        int   `json:"months"`
	PaidMonths    int   `json:"paid_months"`
	PartialMonths int   `json:"partial_months"`
	ArrearsMonths int   `json:"arrears_months"`
	TotalDue      int64 `json:"total_due"`
	TotalPaid     int64 `json:"total_paid"`
	Outstanding   int64 `json:"outstanding"`

	// CurrentStatus and CurrentMonthPaid describe the reporting month alone,
	// independent of the cumulative totals. Invoice rendering consumes them.
	CurrentStatus    Status `json:"current_status"`
	CurrentMonthPaid int64  `json:"current_month_paid"`
}

// BuildSnapshot folds an account's sparse payment record over its due-month
// range for the given reporting month. It is a pure function of its inputs:
// no side effects, total over any syntactically valid account.
func BuildSnapshot(a Account, year int, month time.Month) Snapshot {
	value := a.SubscriptionValue
	if value < 0 {
		value = 0
	}

	keys := MonthRange(a.StartDate, year, month)
	currentKey := Key(year, month)

	snap := Snapshot{
		Months:        len(keys),
		TotalDue:      value * int64(len(keys)),
		CurrentStatus: StatusPending,
	}

	for _, key := range keys {
		status := a.Payments[key].Normalize()
		paid := a.monthPaid(key, status, value)

		snap.TotalPaid += paid
		switch status {
		case StatusPaid:
			snap.PaidMonths++
		case StatusPartial:
			snap.PartialMonths++
		}
		if paid < value {
			snap.ArrearsMonths++
		}
		if key == currentKey {
			snap.CurrentStatus = status
			snap.CurrentMonthPaid = paid
		}
	}

	if snap.TotalPaid < snap.TotalDue {
		snap.Outstanding = snap.TotalDue - snap.TotalPaid
	}
	return snap
}

// monthPaid resolves the amount attributed to one month, clamped to
// [0, value] so an overpaid month never offsets other months.
func (a Account) monthPaid(key string, status Status, value int64) int64 {
	var paid int64
	switch status {
	case StatusPaid:
		paid = value
	case StatusPartial:
		if amount, ok := a.PartialAmounts[key]; ok {
			paid = amount
		} else {
			paid = a.LegacyPartialPaid
		}
	}
	if paid < 0 {
		return 0
	}
	if paid > value {
		return value
	}
	return paid
}
