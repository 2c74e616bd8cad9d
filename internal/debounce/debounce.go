// Package debounce delays an action until its trigger has been quiet for a window.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled action once no new Schedule call
// arrives within the quiescence window. At most one timer is armed at a time.
// The zero value is ready to use.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// Schedule cancels any pending action and arms fn to run after quiet.
// A superseded fn never runs, even if its timer already fired and is waiting on the lock.
func (d *Debouncer) Schedule(fn func(), quiet time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(quiet, func() {
		d.mu.Lock()
		if d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending action.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Pending reports whether an action is armed and has not started.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
