package autosave

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a snapshot is written.
const DefaultDelay = 2 * time.Second

// Debouncer collapses bursts of triggers per key into one call, run once
// the key has been quiet for the delay.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pending
}

type pending struct {
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates a Debouncer. A non-positive delay means DefaultDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, pending: make(map[string]*pending)}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn for key, replacing any call still waiting for it.
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	p := &pending{fn: fn}
	p.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.pending[key] != p {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()
		fn()
	})
	d.pending[key] = p
}

// Flush runs the pending call for key now. It reports whether one was pending.
func (d *Debouncer) Flush(key string) bool {
	d.mu.Lock()
	p, ok := d.pending[key]
	if ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if ok {
		p.fn()
	}
	return ok
}

// Cancel drops the pending call for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Pending reports whether a call is waiting for key.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[key]
	return ok
}

// Stop drops every pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}
