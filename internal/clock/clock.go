package clock

import "time"

// Clock abstracts "now" so time-sensitive policy (the future-month guard)
// can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Fixed is a Clock frozen at a single instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
