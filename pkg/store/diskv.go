package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/zones/pkg/codec"
	"tableflip.dev/zones/pkg/entry"
)

// RecordKey is the single key holding the serialized collection.
const RecordKey = "timezones-data"

// ErrNotFound means nothing has been persisted yet.
var ErrNotFound = errors.New("store: no stored record")

// Persistence is the durable storage record for the entry collection.
type Persistence interface {
	// Load returns ErrNotFound when the record is absent, or a codec error when
	// the record does not parse.
	Load(ctx context.Context) ([]entry.Entry, error)
	// Store overwrites the record wholesale.
	Store(entries []entry.Entry) error
	// Clear removes the record. Clearing an absent record is not an error.
	Clear() error
	Path() string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:  basePath,
		Transform: flatTransform,
		// No read cache: the record may be rewritten by another process.
		CacheSizeMax: 0,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string

	mu          sync.Mutex
	lastWritten []byte
}

func flatTransform(string) []string { return []string{} }

func (p *persistence) Path() string {
	return filepath.Join(p.basePath, RecordKey)
}

func (p *persistence) Load(_ context.Context) ([]entry.Entry, error) {
	val, err := p.d.Read(RecordKey)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read record: %w", err)
	}
	if len(bytes.TrimSpace(val)) == 0 {
		return nil, ErrNotFound
	}
	entries, err := codec.Unmarshal(val)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (p *persistence) Store(entries []entry.Entry) error {
	data, err := codec.Marshal(entries)
	if err != nil {
		return fmt.Errorf("store: marshal record: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.d.Write(RecordKey, data); err != nil {
		return fmt.Errorf("store: write record: %w", err)
	}
	p.lastWritten = data
	return nil
}

func (p *persistence) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastWritten = nil
	if err := p.d.Erase(RecordKey); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase record: %w", err)
	}
	return nil
}

// ownWrite reports whether the record on disk is exactly what this process
// last wrote, so the watcher can ignore its own saves.
func (p *persistence) ownWrite() bool {
	data, err := os.ReadFile(p.Path())
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		return errors.Is(err, fs.ErrNotExist) && p.lastWritten == nil
	}
	return p.lastWritten != nil && bytes.Equal(data, p.lastWritten)
}
