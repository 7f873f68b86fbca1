package receivable

import "time"

// Bucket classifies an account's receivable state at a reporting month.
type Bucket string

const (
	BucketPaid    Bucket = "paid"
	BucketPartial Bucket = "partial"
	BucketPending Bucket = "pending"
)

// ClassifySnapshot places a snapshot into exactly one bucket.
//
// A reporting month strictly after now's calendar month is always pending,
// even when payment entries were pre-populated for it: a future month cannot
// yet be paid.
func ClassifySnapshot(s Snapshot, year int, month time.Month, now time.Time) Bucket {
	if afterReporting(year, month, now.Year(), now.Month()) {
		return BucketPending
	}
	switch {
	case s.Outstanding == 0:
		return BucketPaid
	case s.TotalPaid > 0:
		return BucketPartial
	default:
		return BucketPending
	}
}

// Summary holds per-bucket totals over a set of accounts.
type Summary struct {
	PaidAmount    int64 `json:"paid_amount"`
	PartialAmount int64 `json:"partial_amount"`
	PendingAmount int64 `json:"pending_amount"`
	PaidCount     int   `json:"paid_count"`
	PartialCount  int   `json:"partial_count"`
	PendingCount  int   `json:"pending_count"`
}

// Add folds one classified snapshot into the summary. Paid and partial
// buckets accumulate what was collected; the pending bucket accumulates what
// is still owed.
func (t *Summary) Add(s Snapshot, bucket Bucket) {
	switch bucket {
	case BucketPaid:
		t.PaidAmount += s.TotalPaid
		t.PaidCount++
	case BucketPartial:
		t.PartialAmount += s.TotalPaid
		t.PartialCount++
	case BucketPending:
		t.PendingAmount += s.Outstanding
		t.PendingCount++
	}
}

// Eligible reports whether an account participates in aggregation. Suspended
// accounts and accounts with no positive subscription are skipped.
func (a Account) Eligible() bool {
	return !a.Suspended && a.SubscriptionValue > 0
}

// Aggregate classifies every eligible account for the reporting month and
// returns the bucket totals. Callers apply any city or other filtering to
// the account list beforehand.
func Aggregate(accounts []Account, year int, month time.Month, now time.Time) Summary {
	var totals Summary
	for _, a := range accounts {
		if !a.Eligible() {
			continue
		}
		snap := BuildSnapshot(a, year, month)
		totals.Add(snap, ClassifySnapshot(snap, year, month, now))
	}
	return totals
}
