package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tableflip.dev/zones/pkg/board"
	"tableflip.dev/zones/pkg/bootstrap"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/logging"
	"tableflip.dev/zones/pkg/share"
	"tableflip.dev/zones/pkg/store"
	"tableflip.dev/zones/pkg/timeline"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// Service provides high-level operations on the entry collection.
// It wraps persistence, the catalog and the board so UIs and CLIs can share logic.
type Service struct {
	Persistence store.Persistence
	Catalog     *zoneinfo.Catalog
	Logger      *slog.Logger

	// Hours is the timeline length; <= 0 means timeline.DefaultHours.
	Hours int
	// AutosaveWindow is the debounce window of UI sessions.
	AutosaveWindow time.Duration
	// ShareBaseURL roots shared links.
	ShareBaseURL string
	// Now overrides the wall clock.
	Now func() time.Time
}

var (
	ErrNotFound      = errors.New("app: entry not found")
	errNoPersistence = errors.New("app: no persistence configured")
)

// Projection pairs an entry with its timeline.
type Projection struct {
	Entry    entry.Entry
	Timeline timeline.Timeline
}

func (s *Service) catalog() *zoneinfo.Catalog {
	if s.Catalog == nil {
		return zoneinfo.Default()
	}
	return s.Catalog
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) log() *slog.Logger {
	return logging.OrDiscard(s.Logger)
}

func (s *Service) defaultEntry() entry.Entry {
	return bootstrap.Default(s.catalog(), s.now())
}

// Resolve loads the starting collection, preferring token over storage.
func (s *Service) Resolve(ctx context.Context, token string) bootstrap.Result {
	in := bootstrap.Input{
		Token:   token,
		Catalog: s.catalog(),
		Now:     s.now(),
		Logger:  s.log(),
	}
	if s.Persistence != nil {
		in.Storage = s.Persistence
	}
	return bootstrap.Resolve(ctx, in)
}

// Entries lists the current collection. A synthesized default is saved so
// the ids it reports keep working in later calls.
func (s *Service) Entries(ctx context.Context) ([]entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.current(ctx)
}

// current resolves the stored collection, saving the default entry when
// nothing usable was stored.
func (s *Service) current(ctx context.Context) ([]entry.Entry, error) {
	res := s.Resolve(ctx, "")
	if res.Source == bootstrap.SourceDefault {
		if err := s.Persistence.Store(res.Entries); err != nil {
			return nil, fmt.Errorf("app: save default: %w", err)
		}
	}
	return res.Entries, nil
}

// Timelines projects every entry from the given instant.
func (s *Service) Timelines(ctx context.Context, now time.Time, hours, selected int) ([]Projection, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return Project(entries, now, timeline.Options{Hours: hours, Selected: selected, Catalog: s.catalog()}), nil
}

// Project builds the timeline of each entry.
func Project(entries []entry.Entry, now time.Time, opts timeline.Options) []Projection {
	out := make([]Projection, len(entries))
	for i, e := range entries {
		out[i] = Projection{Entry: e, Timeline: timeline.Project(e.TZ, now, opts)}
	}
	return out
}

// Watch subscribes to changes of the durable record.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// ZoneEntry resolves a zone name into an entry ready to insert.
func (s *Service) ZoneEntry(zone, label string) (entry.Entry, error) {
	zone = strings.TrimSpace(zone)
	offset, err := s.catalog().Offset(zone, s.now())
	if err != nil {
		return entry.Entry{}, err
	}
	e := entry.New()
	e.TZ = zone
	e.Label = label
	e.OffsetInMinutes = offset
	return e, nil
}

// Add creates and stores a new entry for zone.
func (s *Service) Add(ctx context.Context, zone, label string) (entry.Entry, error) {
	e, err := s.ZoneEntry(zone, label)
	if err != nil {
		return entry.Entry{}, err
	}
	if _, err := s.mutate(ctx, func(b *board.Board) (*board.Snapshot, error) {
		return b.Insert(e), nil
	}); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// SetLabel renames the entry with the given id.
func (s *Service) SetLabel(ctx context.Context, id, label string) (entry.Entry, error) {
	return s.update(ctx, id, entry.WithLabel(label))
}

// SetZone moves the entry with the given id to zone.
func (s *Service) SetZone(ctx context.Context, id, zone string) (entry.Entry, error) {
	zone = strings.TrimSpace(zone)
	offset, err := s.catalog().Offset(zone, s.now())
	if err != nil {
		return entry.Entry{}, err
	}
	return s.update(ctx, id, entry.WithZone(zone, offset))
}

func (s *Service) update(ctx context.Context, id string, p entry.Patch) (entry.Entry, error) {
	snap, err := s.mutate(ctx, func(b *board.Board) (*board.Snapshot, error) {
		if _, ok := b.Snapshot().Find(id); !ok {
			return nil, ErrNotFound
		}
		return b.Update(id, p), nil
	})
	if err != nil {
		return entry.Entry{}, err
	}
	e, _ := snap.Find(id)
	return e, nil
}

// Remove deletes the entry with the given id.
func (s *Service) Remove(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(b *board.Board) (*board.Snapshot, error) {
		cur := b.Snapshot()
		if _, ok := cur.Find(id); !ok {
			return nil, ErrNotFound
		}
		if cur.Len() == 1 {
			return nil, errors.New("app: cannot remove the last entry")
		}
		return b.Remove(id), nil
	})
	return err
}

// Sort orders the stored collection by offset.
func (s *Service) Sort(ctx context.Context) ([]entry.Entry, error) {
	snap, err := s.mutate(ctx, func(b *board.Board) (*board.Snapshot, error) {
		return b.Sort(), nil
	})
	if err != nil {
		return nil, err
	}
	return snap.Entries(), nil
}

// Import replaces the stored collection with a shared one.
func (s *Service) Import(ctx context.Context, linkOrToken string) ([]entry.Entry, error) {
	entries, err := share.Parse(linkOrToken)
	if err != nil {
		return nil, err
	}
	snap, err := s.mutate(ctx, func(b *board.Board) (*board.Snapshot, error) {
		return b.Replace(entries), nil
	})
	if err != nil {
		return nil, err
	}
	return snap.Entries(), nil
}

// Reset clears storage and starts over with the default entry, which is
// saved right away.
func (s *Service) Reset(ctx context.Context) ([]entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if err := s.Persistence.Clear(); err != nil {
		return nil, err
	}
	entries := []entry.Entry{s.defaultEntry()}
	if err := s.Persistence.Store(entries); err != nil {
		return nil, fmt.Errorf("app: save default: %w", err)
	}
	return entries, nil
}

// Share encodes the current collection into a link.
func (s *Service) Share(ctx context.Context) (share.Link, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return share.Link{}, err
	}
	return share.New(s.ShareBaseURL, entries)
}

// mutate applies f to a board over the stored collection and writes the
// result straight through.
func (s *Service) mutate(ctx context.Context, f func(b *board.Board) (*board.Snapshot, error)) (*board.Snapshot, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	entries, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	b := board.New(entries, board.WithDefaultEntry(s.defaultEntry))
	snap, err := f(b)
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.Store(snap.Entries()); err != nil {
		return nil, fmt.Errorf("app: save: %w", err)
	}
	return snap, nil
}
