package order

import "time"

// DeliveryClock tracks the time left until an order's due date across
// pause/resume cycles. It is an explicit two-state value: Running, where the
// absolute due date on the order is authoritative, or Paused, where the
// remaining duration captured at freeze time is authoritative and the due
// date is stale until the clock resumes.
//
// The clock freezes when the seller delivers (so review time does not eat
// into the deadline) and when a negotiation opens against an in-progress
// order (so an unbounded negotiation does not burn the seller's time).
// Resuming recomputes the absolute due date from the frozen remainder, so no
// time is gained or lost across a freeze/resume round trip.
//
// The zero value is a running clock.
type DeliveryClock struct {
	paused    bool
	remaining time.Duration
}

// RunningClock returns a clock in the running state.
func RunningClock() DeliveryClock {
	return DeliveryClock{}
}

// PausedClock returns a clock paused with the given remainder.
// Negative remainders (the order was already overdue at freeze time) are
// clamped to zero so resuming never pushes the due date into the past.
func PausedClock(remaining time.Duration) DeliveryClock {
	if remaining < 0 {
		remaining = 0
	}
	return DeliveryClock{paused: true, remaining: remaining}
}

// FreezeClock captures the time left until dueDate as a paused clock.
func FreezeClock(dueDate, now time.Time) DeliveryClock {
	return PausedClock(dueDate.Sub(now))
}

// IsPaused reports whether the clock is paused.
func (c DeliveryClock) IsPaused() bool {
	return c.paused
}

// Remaining returns the frozen remainder. It is zero for a running clock.
func (c DeliveryClock) Remaining() time.Duration {
	return c.remaining
}

// Resume returns the recomputed absolute due date (now plus the frozen
// remainder) and a running clock. Calling Resume on a running clock is a
// programming error; the order aggregate only resumes paused clocks.
func (c DeliveryClock) Resume(now time.Time) (time.Time, DeliveryClock) {
	return now.Add(c.remaining), RunningClock()
}
