package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events into a single callback.
// Editors and sync tools often emit several events per save; only the
// last event within the quiet interval fires the callback.
type Debouncer struct {
	interval time.Duration
	fire     func(path string)

	mu    sync.Mutex
	timer *time.Timer
	last  string
}

// NewDebouncer creates a debouncer that waits for interval of quiet
// before invoking fire with the path of the last event seen.
func NewDebouncer(interval time.Duration, fire func(path string)) *Debouncer {
	return &Debouncer{interval: interval, fire: fire}
}

// Trigger records an event for path and restarts the quiet timer.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = path

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fireLast)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fireLast() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("debounced callback panicked", slog.Any("error", r))
		}
	}()

	d.mu.Lock()
	path := d.last
	d.mu.Unlock()

	d.fire(path)
}
