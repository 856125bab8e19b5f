package services

import "time"

// Clock supplies the current time to services. Timestamps are kept in UTC at
// whole-second precision so stored values order correctly.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func orSystem(c Clock) Clock {
	if c == nil {
		return SystemClock
	}
	return c
}
