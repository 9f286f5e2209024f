// Package schedule runs delayed callbacks on the owner goroutine.
//
// Callbacks never run concurrently with the code that scheduled them. The
// tea scheduler turns timer expirations into messages that the Bubble Tea
// update loop dispatches; the manual scheduler runs callbacks inside Advance.
package schedule

import "time"

// Handle cancels a scheduled callback.
type Handle interface {
	// Cancel prevents the callback from running. Cancelling a callback that
	// already ran, or was already cancelled, does nothing.
	Cancel()
}

// Scheduler schedules fn to run once after d.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Handle
}

// Debouncer restarts a single delayed callback. Each Trigger cancels the
// pending callback before scheduling the new one, so the most recent wins.
type Debouncer struct {
	sched   Scheduler
	delay   time.Duration
	pending Handle
}

// NewDebouncer returns a debouncer that waits delay after the last Trigger.
func NewDebouncer(s Scheduler, delay time.Duration) *Debouncer {
	return &Debouncer{sched: s, delay: delay}
}

// Trigger (re)arms the debouncer with fn.
func (d *Debouncer) Trigger(fn func()) {
	d.Cancel()
	var h Handle
	h = d.sched.Schedule(d.delay, func() {
		if d.pending == h {
			d.pending = nil
		}
		fn()
	})
	d.pending = h
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}

// Pending reports whether a callback is armed.
func (d *Debouncer) Pending() bool { return d.pending != nil }

// Delay returns the debounce interval.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// SetDelay changes the interval used by later triggers.
func (d *Debouncer) SetDelay(delay time.Duration) { d.delay = delay }
