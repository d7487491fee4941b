// Package scroll keeps independently rendered timeline surfaces scrolled in
// lock-step.
//
// A Synchronizer is driven from one event loop. Notify records a scroll on a
// surface and asks the caller for a frame; Flush runs the single pass for that
// frame. Scrolls applied by the pass itself are ignored.
package scroll

import (
	"sync"
	"time"
)

// FrameInterval is how long the host should wait before calling Flush.
const FrameInterval = 16 * time.Millisecond

// Surface is one horizontally scrollable timeline.
type Surface interface {
	// ScrollOffset is the current position, 0..ScrollRange.
	ScrollOffset() float64
	// ScrollRange is content extent minus visible extent, 0 when nothing
	// overflows.
	ScrollRange() float64
	SetScrollOffset(offset float64)
}

// Synchronizer is the registry of mounted surfaces, keyed by entry id.
type Synchronizer struct {
	mu        sync.Mutex
	surfaces  map[string]Surface
	order     []string
	source    string
	scheduled bool
	syncing   bool
	closed    bool
	passes    int
}

// New returns an empty registry.
func New() *Synchronizer {
	return &Synchronizer{surfaces: map[string]Surface{}}
}

// Register mounts s under key. Registering the same surface again is a no-op;
// a different surface under an existing key replaces the old one. It reports
// whether the registry changed.
func (s *Synchronizer) Register(key string, surface Surface) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || surface == nil {
		return false
	}
	if cur, ok := s.surfaces[key]; ok {
		if cur == surface {
			return false
		}
		s.surfaces[key] = surface
		return true
	}
	s.surfaces[key] = surface
	s.order = append(s.order, key)
	return true
}

// Retain drops every surface whose key is not in keys.
func (s *Synchronizer) Retain(keys []string) {
	keep := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keep[k] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order := s.order[:0]
	for _, k := range s.order {
		if _, ok := keep[k]; ok {
			order = append(order, k)
			continue
		}
		delete(s.surfaces, k)
		if s.source == k {
			s.source = ""
		}
	}
	s.order = order
}

// Len returns the number of mounted surfaces.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.surfaces)
}

// Close tears the registry down. Later calls do nothing.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.surfaces = map[string]Surface{}
	s.order = nil
	s.source = ""
	s.scheduled = false
}

// Notify records that the surface under key scrolled. It returns true when
// the caller must schedule a frame; further notifies before that frame only
// move the source. Notifies caused by a running pass are dropped.
func (s *Synchronizer) Notify(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.syncing {
		return false
	}
	if _, ok := s.surfaces[key]; !ok {
		return false
	}
	s.source = key
	if s.scheduled {
		return false
	}
	s.scheduled = true
	return true
}

// Pending reports whether a frame has been requested and not flushed.
func (s *Synchronizer) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

// Passes counts completed synchronization passes.
func (s *Synchronizer) Passes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes
}

// Flush runs the requested synchronization pass from the most recent source
// and returns the number of surfaces it moved. Without a pending request it
// does nothing.
func (s *Synchronizer) Flush() int {
	s.mu.Lock()
	requested := s.scheduled
	s.scheduled = false
	src, ok := s.surfaces[s.source]
	if !requested || s.closed || !ok || s.syncing {
		s.mu.Unlock()
		return 0
	}
	targets := make([]Surface, 0, len(s.order))
	for _, k := range s.order {
		if k != s.source {
			targets = append(targets, s.surfaces[k])
		}
	}
	s.syncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.syncing = false
		s.passes++
		s.mu.Unlock()
	}()

	fraction := Fraction(src)
	for _, t := range targets {
		t.SetScrollOffset(fraction * t.ScrollRange())
	}
	return len(targets)
}

// Fraction is offset / max(range, 1).
func Fraction(s Surface) float64 {
	r := s.ScrollRange()
	if r < 1 {
		r = 1
	}
	return s.ScrollOffset() / r
}
