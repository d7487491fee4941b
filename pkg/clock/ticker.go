// Package clock publishes the wall-clock tick every timeline derives from.
package clock

import (
	"sync"
	"time"
)

// Interval is the tick cadence.
const Interval = time.Second

// Ticker fires once per interval for the lifetime of a session. Each tick is
// simply "now" at fire time; there is no catch-up.
type Ticker struct {
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	last    time.Time
	ticker  *time.Ticker
	done    chan struct{}
	wg      sync.WaitGroup
	c       chan time.Time
	running bool
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithInterval overrides the cadence.
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithNow overrides the wall clock.
func WithNow(now func() time.Time) Option {
	return func(t *Ticker) {
		if now != nil {
			t.now = now
		}
	}
}

// New returns a stopped ticker.
func New(opts ...Option) *Ticker {
	t := &Ticker{
		interval: Interval,
		now:      time.Now,
		c:        make(chan time.Time, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.last = t.now()
	return t
}

// C delivers ticks. Only the newest undelivered tick is kept.
func (t *Ticker) C() <-chan time.Time {
	return t.c
}

// Now returns the most recently published tick.
func (t *Ticker) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// Running reports whether the timer is active.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Start begins ticking. Starting a running ticker does nothing.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.last = t.now()
	t.ticker = time.NewTicker(t.interval)
	t.done = make(chan struct{})
	t.wg.Add(1)
	go t.loop(t.ticker.C, t.done)
}

func (t *Ticker) loop(ticks <-chan time.Time, done <-chan struct{}) {
	defer t.wg.Done()
	for {
		select {
		case <-done:
			return
		case <-ticks:
			t.publish(t.now())
		}
	}
}

func (t *Ticker) publish(now time.Time) {
	t.mu.Lock()
	t.last = now
	t.mu.Unlock()
	for {
		select {
		case t.c <- now:
			return
		default:
		}
		// Replace a stale tick nobody consumed.
		select {
		case <-t.c:
		default:
		}
	}
}

// Stop stops the timer and waits for the publishing goroutine to exit.
// Stopping a stopped ticker does nothing.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.ticker.Stop()
	close(t.done)
	t.mu.Unlock()
	t.wg.Wait()
}
