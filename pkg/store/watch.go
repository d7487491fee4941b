package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventRecordChanged indicates another process rewrote the record.
	EventRecordChanged EventType = iota

	// EventRecordRemoved indicates another process removed the record.
	EventRecordRemoved
)

func (t EventType) String() string {
	switch t {
	case EventRecordChanged:
		return "changed"
	case EventRecordRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is emitted by Persistence.Watch when the record changes on disk.
type Event struct {
	Type EventType
	At   time.Time
}

// Watch streams change events until ctx is cancelled. Writes made through this
// Persistence are not reported. The channel is closed once ctx is done or the
// watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 8)
	record := filepath.Clean(p.Path())

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			if ev.Type == EventRecordChanged && p.ownWrite() {
				return
			}
			if ev.Type == EventRecordRemoved {
				if _, err := os.Stat(record); err == nil {
					// Recreated within the throttle window.
					if p.ownWrite() {
						return
					}
					ev.Type = EventRecordChanged
				}
			}
			select {
			case events <- ev:
			case <-ctx.Done():
			default:
				// Drop events if the consumer is not ready; the next change
				// produces another one.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != record {
					continue
				}
				typ := EventRecordChanged
				if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					typ = EventRecordRemoved
				}
				throttle.Enqueue(Event{Type: typ}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so listeners see one
// event per burst of filesystem activity instead of one per write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
	stopped bool
	// inflight tracks scheduled flushes; Stop waits on it.
	inflight sync.WaitGroup
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

// Enqueue records ev as the latest event of the burst. It does nothing once
// the throttle is stopped.
func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending = &ev

	if t.timer == nil {
		t.inflight.Add(1)
		t.timer = time.AfterFunc(t.delay, func() {
			defer t.inflight.Done()
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	stopped := t.stopped
	t.mu.Unlock()

	if pending == nil || stopped {
		return
	}
	pending.At = time.Now()
	send(*pending)
}

// Stop cancels any scheduled flush and returns once a flush already running
// has finished, so send is never called after Stop returns.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil && t.timer.Stop() {
		t.inflight.Done()
	}
	t.timer = nil
	t.pending = nil
	t.mu.Unlock()

	t.inflight.Wait()
}
