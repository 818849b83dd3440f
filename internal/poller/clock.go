package poller

import "time"

// Clock abstracts timer scheduling so the poll loop can be driven
// deterministically in tests without real delays.
type Clock interface {
	// After returns a channel that delivers the current time after d.
	After(d time.Duration) <-chan time.Time
}

// systemClock delegates to the time package.
type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns the real-time Clock used outside of tests.
func SystemClock() Clock { return systemClock{} }
