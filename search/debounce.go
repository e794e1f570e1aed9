package search

import (
	"sync"
	"time"
)

// DefaultDebounceInterval is the quiet period before a scheduled action runs.
const DefaultDebounceInterval = 300 * time.Millisecond

// Debouncer runs only the most recently scheduled action, once the interval
// has passed without another Schedule call. Actions never run concurrently.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	seq     uint64 // identifies the pending action
	closed  bool

	runMu sync.Mutex // held while an action runs
}

// NewDebouncer returns a Debouncer with the given interval. A non-positive
// interval means DefaultDebounceInterval.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	return &Debouncer{interval: interval}
}

// Interval returns the quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Schedule replaces any pending action with fn and restarts the interval.
// It is a no-op after Stop.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.cancelLocked()
	seq := d.seq
	d.pending = fn
	d.timer = time.AfterFunc(d.interval, func() {
		d.fire(seq, fn)
	})
}

// Run cancels any pending action and runs fn now, after an action already
// in progress has finished. It is a no-op after Stop.
func (d *Debouncer) Run(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.mu.Unlock()

	d.runMu.Lock()
	defer d.runMu.Unlock()
	fn()
}

// Flush runs the pending action now instead of waiting for the interval.
// If the action is already running, Flush waits for it to finish.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.cancelLocked()
	d.mu.Unlock()

	d.runMu.Lock()
	defer d.runMu.Unlock()
	if fn != nil {
		fn()
	}
}

// Cancel drops the pending action, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop drops the pending action, waits for a running one to finish and
// turns later Schedule and Run calls into no-ops. Stop must not be called
// from inside an action.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.cancelLocked()
	d.closed = true
	d.mu.Unlock()

	// Wait for a running action.
	d.runMu.Lock()
	defer d.runMu.Unlock()
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.seq++
}

func (d *Debouncer) fire(seq uint64, fn func()) {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	current := seq == d.seq && !d.closed
	if current {
		d.timer = nil
		d.pending = nil
	}
	d.mu.Unlock()

	if current {
		fn()
	}
}
