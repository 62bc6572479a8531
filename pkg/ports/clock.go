package ports

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the timer
	// before it fired.
	Stop() bool
}

// Clock abstracts wall-clock time so engines can be driven deterministically in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc schedules f to run once after d and returns a cancellable handle.
	AfterFunc(d time.Duration, f func()) Timer
}
