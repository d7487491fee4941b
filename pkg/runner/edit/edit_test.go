package edit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/store"
	"tableflip.dev/zones/pkg/zoneinfo"
)

func newService(t *testing.T, entries ...entry.Entry) *app.Service {
	t.Helper()
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if len(entries) > 0 {
		if err := p.Store(entries); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return &app.Service{Persistence: p, Catalog: zoneinfo.Default()}
}

func TestLabelAndZone(t *testing.T) {
	svc := newService(t, entry.Entry{ID: "a", TZ: "UTC"}, entry.Entry{ID: "b", TZ: "UTC"})
	ctx := context.Background()
	var buf bytes.Buffer

	if err := (&Label{ID: "a", Label: "home", Out: &buf, Service: svc}).Do(ctx); err != nil {
		t.Fatalf("label: %v", err)
	}
	if err := (&Zone{ID: "a", Zone: "Europe/Berlin", Out: &buf, Service: svc}).Do(ctx); err != nil {
		t.Fatalf("zone: %v", err)
	}
	got, _ := svc.Persistence.Load(ctx)
	if got[0].Label != "home" || got[0].TZ != "Europe/Berlin" || got[0].OffsetInMinutes == 0 {
		t.Fatalf("unexpected entry %+v", got[0])
	}
	if err := (&Zone{ID: "a", Zone: "Mars/Base", Out: &buf, Service: svc}).Do(ctx); !errors.Is(err, zoneinfo.ErrUnknownZone) {
		t.Fatalf("expected ErrUnknownZone, got %v", err)
	}
}

func TestRemoveAndSort(t *testing.T) {
	svc := newService(t,
		entry.Entry{ID: "tokyo", TZ: "Asia/Tokyo", OffsetInMinutes: 540},
		entry.Entry{ID: "ny", TZ: "America/New_York", OffsetInMinutes: -300},
		entry.Entry{ID: "utc", TZ: "UTC"},
	)
	ctx := context.Background()
	var buf bytes.Buffer

	if err := (&Sort{Out: &buf, Service: svc}).Do(ctx); err != nil {
		t.Fatalf("sort: %v", err)
	}
	got, _ := svc.Persistence.Load(ctx)
	if got[0].ID != "ny" || got[1].ID != "utc" || got[2].ID != "tokyo" {
		t.Fatalf("unexpected order %+v", got)
	}
	if err := (&Remove{ID: "missing", Out: &buf, Service: svc}).Do(ctx); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := (&Remove{ID: "utc", Out: &buf, Service: svc}).Do(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got, _ := svc.Persistence.Load(ctx); len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
}
