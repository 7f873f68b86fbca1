package receivable

import (
	"fmt"
	"time"
)

// Key returns the canonical "YYYY-MM" key for a billing month. Zero-padding
// keeps lexicographic order identical to chronological order.
func Key(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// KeyFor returns the billing key for the month containing t.
func KeyFor(t time.Time) string {
	return Key(t.Year(), t.Month())
}

// ParseKey splits a "YYYY-MM" key back into its calendar parts. Only the
// canonical zero-padded form is accepted.
func ParseKey(key string) (int, time.Month, error) {
	var year, month int
	if len(key) != 7 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	if _, err := fmt.Sscanf(key, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month key %q", key)
	}
	return year, time.Month(month), nil
}

// MonthRange returns the ordered billing keys a customer owes for, from the
// effective start month through the reporting month inclusive.
//
// The effective start is the month containing start, or January of the
// reporting year when start is nil. A start after the reporting month
// collapses the range to the reporting month alone: a customer always owes
// at least the current month, so the range is never empty.
func MonthRange(start *time.Time, year int, month time.Month) []string {
	startYear, startMonth := year, time.January
	if start != nil && !start.IsZero() {
		startYear, startMonth = start.Year(), start.Month()
	}

	if afterReporting(startYear, startMonth, year, month) {
		return []string{Key(year, month)}
	}

	keys := make([]string, 0, 12)
	y, m := startYear, startMonth
	for {
		keys = append(keys, Key(y, m))
		if y == year && m == month {
			return keys
		}
		m++
		if m > time.December {
			m = time.January
			y++
		}
	}
}

func afterReporting(y int, m time.Month, reportYear int, reportMonth time.Month) bool {
	if y != reportYear {
		return y > reportYear
	}
	return m > reportMonth
}
