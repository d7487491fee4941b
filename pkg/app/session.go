package app

import (
	"context"
	"sync"
	"time"

	"tableflip.dev/zones/pkg/autosave"
	"tableflip.dev/zones/pkg/board"
	"tableflip.dev/zones/pkg/bootstrap"
	"tableflip.dev/zones/pkg/clock"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/scroll"
	"tableflip.dev/zones/pkg/share"
	"tableflip.dev/zones/pkg/store"
	"tableflip.dev/zones/pkg/timeline"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// Session is one interactive lifetime: the board, its autosave, the clock,
// the scroll registry and the storage watch.
type Session struct {
	Board    *board.Board
	Autosave *autosave.Debouncer
	Clock    *clock.Ticker
	Scroll   *scroll.Synchronizer
	Source   bootstrap.Source

	svc    *Service
	events <-chan store.Event
	cancel context.CancelFunc
	once   sync.Once
}

// SessionOption configures a Session before it starts.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	debounce []autosave.Option
	clock    []clock.Option
	noWatch  bool
}

// WithAutosaveOptions passes options to the debouncer.
func WithAutosaveOptions(opts ...autosave.Option) SessionOption {
	return func(c *sessionConfig) { c.debounce = append(c.debounce, opts...) }
}

// WithClockOptions passes options to the ticker.
func WithClockOptions(opts ...clock.Option) SessionOption {
	return func(c *sessionConfig) { c.clock = append(c.clock, opts...) }
}

// WithoutWatch skips the storage watch.
func WithoutWatch() SessionOption {
	return func(c *sessionConfig) { c.noWatch = true }
}

// Start resolves the starting collection and brings up the session. A
// collection that did not come from storage is saved once the autosave
// window passes.
func (s *Service) Start(ctx context.Context, token string, opts ...SessionOption) (*Session, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	cfg := &sessionConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	res := s.Resolve(ctx, token)
	debounceOpts := []autosave.Option{autosave.WithLogger(s.log())}
	if s.AutosaveWindow > 0 {
		debounceOpts = append(debounceOpts, autosave.WithWindow(s.AutosaveWindow))
	}
	deb := autosave.New(s.Persistence, append(debounceOpts, cfg.debounce...)...)

	reg := scroll.New()
	b := board.New(res.Entries,
		board.WithNotifier(deb),
		board.WithDefaultEntry(s.defaultEntry),
		board.WithListener(func(snap *board.Snapshot) { reg.Retain(snap.IDs()) }),
	)

	ctx, cancel := context.WithCancel(ctx)
	sess := &Session{
		Board:    b,
		Autosave: deb,
		Clock:    clock.New(cfg.clock...),
		Scroll:   reg,
		Source:   res.Source,
		svc:      s,
		cancel:   cancel,
	}
	if !cfg.noWatch {
		events, err := s.Persistence.Watch(ctx)
		if err != nil {
			s.log().Warn("app: storage watch unavailable", "err", err)
		}
		sess.events = events
	}
	sess.Clock.Start()
	if res.Source != bootstrap.SourceStorage {
		deb.Notify(b.Snapshot().Entries())
	}
	s.log().Info("app: session started", "source", res.Source.String(), "entries", b.Snapshot().Len())
	return sess, nil
}

// Events delivers storage changes made by other processes. It is nil when
// watching is off or unavailable.
func (ss *Session) Events() <-chan store.Event {
	return ss.events
}

// Reload adopts whatever is on disk now.
func (ss *Session) Reload(ctx context.Context) *board.Snapshot {
	entries, err := ss.svc.Persistence.Load(ctx)
	if err != nil {
		ss.svc.log().Warn("app: reload", "err", err)
		return ss.Board.Snapshot()
	}
	return ss.Board.Replace(entries)
}

// Reset clears storage and starts over with the default entry.
func (ss *Session) Reset() (*board.Snapshot, error) {
	if err := ss.svc.Persistence.Clear(); err != nil {
		return ss.Board.Snapshot(), err
	}
	return ss.Board.Reset(), nil
}

// ZoneEntry resolves zone into an entry for the board.
func (ss *Session) ZoneEntry(zone, label string) (entry.Entry, error) {
	return ss.svc.ZoneEntry(zone, label)
}

// Catalog is the zone table the session resolves against.
func (ss *Session) Catalog() *zoneinfo.Catalog {
	return ss.svc.catalog()
}

// Project builds the timelines of the live board.
func (ss *Session) Project(now time.Time, selected int) []Projection {
	return Project(ss.Board.Snapshot().Entries(), now, timeline.Options{
		Hours:    ss.svc.Hours,
		Selected: selected,
		Catalog:  ss.svc.catalog(),
	})
}

// Share encodes the live board.
func (ss *Session) Share() (share.Link, error) {
	return share.New(ss.svc.ShareBaseURL, ss.Board.Snapshot().Entries())
}

// Stop tears everything down. A pending autosave is dropped, not flushed.
func (ss *Session) Stop() {
	ss.once.Do(func() {
		ss.Clock.Stop()
		ss.Autosave.Stop()
		ss.cancel()
		ss.Scroll.Close()
		ss.svc.log().Info("app: session stopped")
	})
}
