// Package board owns the canonical ordered collection of timezone entries.
//
// Every mutation replaces the collection with a new immutable Snapshot, so
// consumers detect change by comparing snapshot pointers. Mutations are total:
// an unknown id is a silent no-op that returns the current snapshot.
package board

import (
	"sort"
	"sync"
	"time"

	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// Notifier receives every new snapshot. autosave.Debouncer satisfies it.
type Notifier interface {
	Notify(entries []entry.Entry)
}

// Option configures a Board.
type Option func(*Board)

// WithNotifier schedules persistence on every mutation.
func WithNotifier(n Notifier) Option {
	return func(b *Board) { b.notifier = n }
}

// WithListener registers a callback run after every mutation.
func WithListener(f func(*Snapshot)) Option {
	return func(b *Board) { b.listeners = append(b.listeners, f) }
}

// WithDefaultEntry overrides how the "local now" entry is synthesized.
func WithDefaultEntry(f func() entry.Entry) Option {
	return func(b *Board) { b.defaultEntry = f }
}

// Board is the single source of truth for the entry collection.
type Board struct {
	mu           sync.Mutex
	snap         *Snapshot
	notifier     Notifier
	listeners    []func(*Snapshot)
	defaultEntry func() entry.Entry
}

// LocalEntry synthesizes the entry for the host zone at now.
func LocalEntry(c *zoneinfo.Catalog, now time.Time) entry.Entry {
	tz := zoneinfo.LocalZone()
	offset, err := c.Offset(tz, now)
	if err != nil {
		tz = entry.UTC
		offset = 0
	}
	return entry.Local(tz, offset)
}

// New returns a board holding initial, or a single default entry when
// initial is empty.
func New(initial []entry.Entry, opts ...Option) *Board {
	b := &Board{}
	for _, opt := range opts {
		opt(b)
	}
	if b.defaultEntry == nil {
		b.defaultEntry = func() entry.Entry {
			return LocalEntry(zoneinfo.Default(), time.Now())
		}
	}
	if len(initial) == 0 {
		initial = []entry.Entry{b.defaultEntry()}
	}
	b.snap = newSnapshot(entry.Clone(initial), 0)
	return b
}

// SetNotifier replaces the persistence notifier.
func (b *Board) SetNotifier(n Notifier) {
	b.mu.Lock()
	b.notifier = n
	b.mu.Unlock()
}

// Snapshot returns the current collection.
func (b *Board) Snapshot() *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

// Add appends a new UTC entry.
func (b *Board) Add() *Snapshot {
	return b.mutate(func(cur []entry.Entry) ([]entry.Entry, bool) {
		next := make([]entry.Entry, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, entry.New()), true
	})
}

// Insert appends a prepared entry, assigning an id when it has none. An entry
// whose id is already present is ignored.
func (b *Board) Insert(e entry.Entry) *Snapshot {
	return b.mutate(func(cur []entry.Entry) ([]entry.Entry, bool) {
		if e.ID == "" {
			e.ID = entry.NewID()
		}
		if e.TZ == "" {
			e.TZ = entry.UTC
		}
		for _, x := range cur {
			if x.ID == e.ID {
				return nil, false
			}
		}
		next := make([]entry.Entry, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, e), true
	})
}

// Update patches the entry with id.
func (b *Board) Update(id string, p entry.Patch) *Snapshot {
	return b.mutate(func(cur []entry.Entry) ([]entry.Entry, bool) {
		idx := indexOf(cur, id)
		if idx < 0 {
			return nil, false
		}
		next := entry.Clone(cur)
		next[idx] = next[idx].Apply(p)
		return next, true
	})
}

// Remove drops the entry with id. The last remaining entry is kept so the
// collection is never empty.
func (b *Board) Remove(id string) *Snapshot {
	return b.mutate(func(cur []entry.Entry) ([]entry.Entry, bool) {
		idx := indexOf(cur, id)
		if idx < 0 || len(cur) == 1 {
			return nil, false
		}
		next := make([]entry.Entry, 0, len(cur)-1)
		next = append(next, cur[:idx]...)
		return append(next, cur[idx+1:]...), true
	})
}

// Sort reorders entries by cached offset. Ties keep their relative order.
func (b *Board) Sort() *Snapshot {
	return b.mutate(func(cur []entry.Entry) ([]entry.Entry, bool) {
		next := entry.Clone(cur)
		sort.SliceStable(next, func(i, j int) bool {
			return next[i].OffsetInMinutes < next[j].OffsetInMinutes
		})
		return next, true
	})
}

// Move shifts the entry with id by delta positions, clamped to the bounds.
func (b *Board) Move(id string, delta int) *Snapshot {
	return b.mutate(func(cur []entry.Entry) ([]entry.Entry, bool) {
		idx := indexOf(cur, id)
		if idx < 0 || delta == 0 {
			return nil, false
		}
		to := idx + delta
		if to < 0 {
			to = 0
		}
		if to > len(cur)-1 {
			to = len(cur) - 1
		}
		if to == idx {
			return nil, false
		}
		next := entry.Clone(cur)
		moved := next[idx]
		if to < idx {
			copy(next[to+1:idx+1], next[to:idx])
		} else {
			copy(next[idx:to], next[idx+1:to+1])
		}
		next[to] = moved
		return next, true
	})
}

// Reset replaces the collection with one freshly synthesized default entry.
func (b *Board) Reset() *Snapshot {
	return b.mutate(func([]entry.Entry) ([]entry.Entry, bool) {
		return []entry.Entry{b.defaultEntry()}, true
	})
}

// Replace adopts an imported collection. Empty input resets.
func (b *Board) Replace(entries []entry.Entry) *Snapshot {
	return b.mutate(func([]entry.Entry) ([]entry.Entry, bool) {
		if len(entries) == 0 {
			return []entry.Entry{b.defaultEntry()}, true
		}
		return entry.Clone(entries), true
	})
}

func (b *Board) mutate(f func(cur []entry.Entry) ([]entry.Entry, bool)) *Snapshot {
	b.mu.Lock()
	next, changed := f(b.snap.entries)
	if !changed {
		snap := b.snap
		b.mu.Unlock()
		return snap
	}
	b.snap = newSnapshot(next, b.snap.rev+1)
	snap := b.snap
	notifier := b.notifier
	listeners := b.listeners
	b.mu.Unlock()

	if notifier != nil {
		notifier.Notify(snap.Entries())
	}
	for _, l := range listeners {
		l(snap)
	}
	return snap
}

func indexOf(entries []entry.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
