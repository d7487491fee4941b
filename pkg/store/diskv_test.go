package store

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"tableflip.dev/zones/pkg/codec"
	"tableflip.dev/zones/pkg/entry"
)

func sampleEntries() []entry.Entry {
	return []entry.Entry{
		{ID: "a", TZ: "UTC", OffsetInMinutes: 0},
		{ID: "b", TZ: "Asia/Tokyo", Label: "Tokyo", Query: "tok", OffsetInMinutes: 540},
	}
}

func TestLoadMissingRecord(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if _, err := p.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreLoadClear(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	if err := p.Store(sampleEntries()); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, sampleEntries()) {
		t.Fatalf("unexpected entries: %#v", got)
	}

	// Overwritten wholesale.
	if err := p.Store(sampleEntries()[:1]); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, err = p.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", len(got))
	}

	if err := p.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := p.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
	if err := p.Clear(); err != nil {
		t.Fatalf("clearing an absent record should succeed: %v", err)
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := os.WriteFile(p.Path(), []byte(`{"not":"a list"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := p.Load(context.Background()); !errors.Is(err, codec.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestLoadRequiresBasePath(t *testing.T) {
	if _, err := Load(testConfig{}); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}
