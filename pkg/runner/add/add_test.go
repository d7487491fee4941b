package add

import (
	"bytes"
	"context"
	"encoding/json"
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

func TestAddZone(t *testing.T) {
	svc := newService(t, entry.Entry{ID: "a", TZ: "UTC"})
	var buf bytes.Buffer
	if err := (&Add{Zone: "Asia/Kolkata", Label: "blr", JSON: true, Out: &buf, Service: svc}).Do(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}
	var e entry.Entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.TZ != "Asia/Kolkata" || e.OffsetInMinutes != 330 || e.Label != "blr" || e.ID == "" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if got, _ := svc.Persistence.Load(context.Background()); len(got) != 2 {
		t.Fatalf("expected 2 stored entries, got %d", len(got))
	}
}

func TestAddNeedsZone(t *testing.T) {
	svc := newService(t)
	if err := (&Add{Service: svc}).Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a zone")
	}
}
