package taskview

import "time"

// Clock supplies the reference instant for day-relative
// classification. It is always injected; nothing in this package
// reads time.Now directly, which keeps every derived view
// reproducible in tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a Clock backed by the real wall clock.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}
