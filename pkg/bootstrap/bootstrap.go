// Package bootstrap decides where the initial entry collection comes from.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tableflip.dev/zones/pkg/board"
	"tableflip.dev/zones/pkg/codec"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/logging"
	"tableflip.dev/zones/pkg/store"
	"tableflip.dev/zones/pkg/zoneinfo"
)

// Source names the branch that produced the collection.
type Source int

const (
	SourceDefault Source = iota
	SourceToken
	SourceStorage
)

func (s Source) String() string {
	switch s {
	case SourceToken:
		return "link"
	case SourceStorage:
		return "storage"
	default:
		return "default"
	}
}

// Loader reads the durable record. store.Persistence satisfies it.
type Loader interface {
	Load(ctx context.Context) ([]entry.Entry, error)
}

// Input collects everything resolution may consult. Only Token is optional
// in the sense that an empty token skips the first branch; Storage may be nil.
type Input struct {
	Token   string
	Storage Loader
	Catalog *zoneinfo.Catalog
	Now     time.Time
	Logger  *slog.Logger
}

// Result is the resolved collection, never empty.
type Result struct {
	Entries []entry.Entry
	Source  Source
}

// Resolve applies the load priority: a decodable token, then a readable
// storage record, then one default entry for the local zone. Failures are
// logged and fall through to the next branch.
func Resolve(ctx context.Context, in Input) Result {
	log := logging.OrDiscard(in.Logger)

	if in.Token != "" {
		entries, err := codec.Decode(in.Token)
		switch {
		case err != nil:
			log.Warn("bootstrap: ignoring shared link", "err", err)
		case len(entries) == 0:
			log.Info("bootstrap: shared link holds no entries")
		default:
			return Result{Entries: entries, Source: SourceToken}
		}
	}

	if in.Storage != nil {
		entries, err := in.Storage.Load(ctx)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Debug("bootstrap: nothing persisted")
		case err != nil:
			log.Warn("bootstrap: ignoring stored record", "err", err)
		case len(entries) == 0:
			log.Debug("bootstrap: stored record is empty")
		default:
			return Result{Entries: entries, Source: SourceStorage}
		}
	}

	return Result{Entries: []entry.Entry{Default(in.Catalog, in.Now)}, Source: SourceDefault}
}

// Default synthesizes the local "now" entry.
func Default(c *zoneinfo.Catalog, now time.Time) entry.Entry {
	if c == nil {
		c = zoneinfo.Default()
	}
	if now.IsZero() {
		now = time.Now()
	}
	return board.LocalEntry(c, now)
}
