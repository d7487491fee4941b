// Package autosave coalesces rapid board mutations into one delayed write of
// the latest snapshot.
package autosave

import (
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/logging"
)

// DefaultWindow is the quiescence window after the last notify.
const DefaultWindow = 250 * time.Millisecond

// Writer persists a full snapshot. store.Persistence satisfies it.
type Writer interface {
	Store(entries []entry.Entry) error
}

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithWindow overrides the quiescence window.
func WithWindow(d time.Duration) Option {
	return func(db *Debouncer) {
		if d > 0 {
			db.window = d
		}
	}
}

// WithAfterFunc replaces the timer source, for tests.
func WithAfterFunc(f AfterFunc) Option {
	return func(db *Debouncer) { db.after = f }
}

// WithLogger sets the logger used for write failures.
func WithLogger(l *slog.Logger) Option {
	return func(db *Debouncer) { db.logger = logging.OrDiscard(l) }
}

// WithOnWrite registers a callback run after every write attempt.
func WithOnWrite(f func(entries []entry.Entry, err error)) Option {
	return func(db *Debouncer) { db.onWrite = f }
}

// Debouncer schedules a write after the window and reschedules on every
// Notify, so only the latest snapshot is written.
type Debouncer struct {
	w       Writer
	window  time.Duration
	after   AfterFunc
	logger  *slog.Logger
	onWrite func([]entry.Entry, error)

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending []entry.Entry
	stopped bool

	writeMu  sync.Mutex
	writes   int
	failures int
}

// New returns a running debouncer writing to w.
func New(w Writer, opts ...Option) *Debouncer {
	d := &Debouncer{
		w:      w,
		window: DefaultWindow,
		after:  realAfterFunc,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify schedules a write of entries, cancelling any pending one.
func (d *Debouncer) Notify(entries []entry.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = entry.Clone(entries)
	d.timer = d.after(d.window, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	entries := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	d.writeMu.Lock()
	err := d.w.Store(entries)
	if err != nil {
		d.failures++
		d.logger.Warn("autosave write failed", "entries", len(entries), "error", err)
	} else {
		d.writes++
		d.logger.Debug("autosave wrote snapshot", "entries", len(entries))
	}
	d.writeMu.Unlock()

	if d.onWrite != nil {
		d.onWrite(entries, err)
	}
}

// Pending reports whether a write is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending write without flushing it and ignores later
// notifies until Start.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// Start re-arms a stopped debouncer.
func (d *Debouncer) Start() {
	d.mu.Lock()
	d.stopped = false
	d.mu.Unlock()
}

// Stats returns the number of successful and failed writes.
func (d *Debouncer) Stats() (writes, failures int) {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	return d.writes, d.failures
}
