package timeutil

import "time"

// Now returns the current time in UTC
// Always use this instead of time.Now() to ensure timezone consistency
func Now() time.Time {
	return time.Now().UTC()
}

// Clock returns the current time. Services take one so tests can pin "now".
type Clock func() time.Time

// FixedClock returns a Clock that always reports t in UTC
func FixedClock(t time.Time) Clock {
	fixed := t.UTC()
	return func() time.Time { return fixed }
}

// AddDays returns t moved forward by the given number of whole days, in UTC
func AddDays(t time.Time, days int) time.Time {
	return t.UTC().AddDate(0, 0, days)
}

// FromUnix converts a unix timestamp in seconds to a UTC time pointer.
// Zero or negative values are treated as "not set" and return nil, which
// matches how the gateway reports absent timestamps.
func FromUnix(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}

// Ptr returns a pointer to a UTC copy of t
func Ptr(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}

// Coalesce returns the first non-nil time
func Coalesce(times ...*time.Time) *time.Time {
	for _, t := range times {
		if t != nil {
			return t
		}
	}
	return nil
}
