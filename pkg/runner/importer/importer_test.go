package importer

import (
	"bytes"
	"context"
	"testing"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/share"
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

func TestImportReplaces(t *testing.T) {
	svc := newService(t, entry.Entry{ID: "old", TZ: "UTC"})
	want := []entry.Entry{
		{ID: "x", TZ: "Europe/Paris", Label: "paris", OffsetInMinutes: 60},
		{ID: "y", TZ: "Asia/Tokyo", OffsetInMinutes: 540},
	}
	link, err := share.New("", want)
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	var buf bytes.Buffer
	if err := (&Import{Link: link.URL, Out: &buf, Service: svc}).Do(context.Background()); err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := svc.Persistence.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected stored entries %+v", got)
	}
}

func TestImportGarbage(t *testing.T) {
	svc := newService(t, entry.Entry{ID: "old", TZ: "UTC"})
	if err := (&Import{Link: "not-base64!", Service: svc}).Do(context.Background()); err == nil {
		t.Fatalf("expected a decode error")
	}
	if got, _ := svc.Persistence.Load(context.Background()); len(got) != 1 || got[0].ID != "old" {
		t.Fatalf("failed import must not touch storage, got %+v", got)
	}
}
