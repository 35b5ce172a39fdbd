// Package debounce groups rapid successive triggers into a single callback
// after a quiet period. It backs live search-as-you-type and config file
// reload, where every intermediate trigger would be wasted work.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Trigger calls into one callback invocation.
//
// All methods are safe for concurrent use. The callback never runs
// concurrently with itself from the same debouncer.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	pending  bool
	seq      uint64 // invalidates stale timer callbacks
	callback func()
}

// New creates a debouncer that invokes callback once no Trigger has arrived
// for at least delay.
func New(delay time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		delay:    delay,
		callback: callback,
	}
}

// Trigger schedules the callback after the quiet period, restarting the
// timer if one is already running.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.seq++
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.pending && d.seq == currentSeq && d.callback != nil {
			d.pending = false
			d.mu.Unlock()
			d.callback()
			return
		}
		d.mu.Unlock()
	})
}

// Flush runs the callback immediately if a call is pending, cancelling the
// scheduled timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++

	if d.pending && d.callback != nil {
		d.pending = false
		d.mu.Unlock()
		d.callback()
		return
	}
	d.mu.Unlock()
}

// Cancel drops any pending call without running the callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
}

// Pending reports whether a callback is scheduled but not yet delivered.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
