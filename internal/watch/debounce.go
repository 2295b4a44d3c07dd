package watch

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer collapses bursts of triggers into one signal sent after delay
// has passed without a further trigger.
type Debouncer struct {
	clock clockwork.Clock
	delay time.Duration
	fire  func()

	mu      sync.Mutex
	timer   clockwork.Timer
	stopped bool
}

// NewDebouncer creates a debouncer that calls fire once per quiet period.
func NewDebouncer(clock clockwork.Clock, delay time.Duration, fire func()) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Debouncer{clock: clock, delay: delay, fire: fire}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, d.fire)
}

// Stop cancels any pending signal. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
