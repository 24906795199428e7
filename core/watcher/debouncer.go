package watcher

import (
	"sync"
	"time"
)

type debounceState int

const (
	stateIdle debounceState = iota
	statePending
)

// Debouncer coalesces bursts of triggers into a single call of fire. It is
// either Idle or Pending with a deadline; every Trigger moves the deadline to
// now+delay, and fire runs once the deadline passes without another Trigger.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	fire     func()
	state    debounceState
	deadline time.Time
	timer    *time.Timer
	// generation invalidates timers that were reset after they already fired.
	generation uint64
}

func NewDebouncer(delay time.Duration, fire func()) *Debouncer {
	return &Debouncer{delay: delay, fire: fire}
}

func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	gen := d.generation
	d.state = statePending
	d.deadline = time.Now().Add(d.delay)
	d.timer = time.AfterFunc(d.delay, func() { d.expire(gen) })
}

func (d *Debouncer) expire(gen uint64) {
	d.mu.Lock()
	if d.state != statePending || gen != d.generation {
		d.mu.Unlock()
		return
	}
	d.state = stateIdle
	d.timer = nil
	d.mu.Unlock()

	d.fire()
}

// Pending reports whether a fire is scheduled and when.
func (d *Debouncer) Pending() (time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deadline, d.state == statePending
}

// Stop drops a scheduled fire and returns to Idle.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
	d.state = stateIdle
}
