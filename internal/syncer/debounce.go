// Package syncer dispatches per-record create/update/delete operations to
// the backend after a per-key debounce window, gated on backend health.
package syncer

import (
	"sync"
	"time"
)

// Debouncer runs at most one pending function per key. Scheduling a key
// that already has a pending entry cancels it and replaces both the delay
// and the function: last write wins within the window.
type Debouncer struct {
	pending map[string]*entry
	mu      sync.Mutex
	stopped bool
}

type entry struct {
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates an empty debouncer.
func NewDebouncer() *Debouncer {
	return &Debouncer{pending: make(map[string]*entry)}
}

// Schedule arranges for fn to run after delay, replacing any pending entry
// for key. The function runs on a timer goroutine.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}

	e := &entry{fn: fn}
	e.timer = time.AfterFunc(delay, func() {
		// A timer that fired while being replaced or stopped still
		// reaches here; it only dispatches when it still owns its
		// map entry.
		d.mu.Lock()
		owner := d.pending[key] == e
		if owner {
			delete(d.pending, key)
		}
		d.mu.Unlock()
		if owner {
			fn()
		}
	})
	d.pending[key] = e
}

// Flush fires every pending entry immediately on the calling goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fns := make([]func(), 0, len(d.pending))
	for key, e := range d.pending {
		// An entry whose timer already fired stays in the map; its
		// callback still owns it and dispatches on its own goroutine.
		if e.timer.Stop() {
			fns = append(fns, e.fn)
			delete(d.pending, key)
		}
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Stop cancels everything pending and rejects further scheduling.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, e := range d.pending {
		e.timer.Stop()
		delete(d.pending, key)
	}
}

// Pending returns the number of keys awaiting dispatch.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
