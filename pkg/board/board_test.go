package board

import (
	"reflect"
	"testing"

	"tableflip.dev/zones/pkg/entry"
)

type countingNotifier struct {
	calls [][]entry.Entry
}

func (n *countingNotifier) Notify(entries []entry.Entry) {
	n.calls = append(n.calls, entries)
}

func fixedDefault() entry.Entry {
	return entry.Entry{ID: "local", TZ: "Europe/Berlin", Label: entry.LocalLabel, OffsetInMinutes: 60}
}

func TestAddThenSortScenario(t *testing.T) {
	n := &countingNotifier{}
	b := New([]entry.Entry{
		{ID: "a", TZ: "UTC", OffsetInMinutes: 0},
		{ID: "b", TZ: "Asia/Tokyo", OffsetInMinutes: 540},
	}, WithNotifier(n))

	snap := b.Add()
	if snap.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", snap.Len())
	}
	added := snap.At(2)
	if added.TZ != "UTC" || added.OffsetInMinutes != 0 || added.Label != "" || added.Query != "" {
		t.Fatalf("unexpected new entry %+v", added)
	}
	if added.ID == "" || added.ID == "a" || added.ID == "b" {
		t.Fatalf("new entry needs a fresh id, got %q", added.ID)
	}

	sorted := b.Sort()
	want := []string{"a", added.ID, "b"}
	if got := sorted.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v, got %v", want, got)
	}
	if len(n.calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(n.calls))
	}
}

func TestSortIsStable(t *testing.T) {
	b := New([]entry.Entry{
		{ID: "x1", TZ: "Asia/Tokyo", OffsetInMinutes: 540},
		{ID: "y1", TZ: "UTC", OffsetInMinutes: 0},
		{ID: "x2", TZ: "Asia/Seoul", OffsetInMinutes: 540},
		{ID: "z", TZ: "America/New_York", OffsetInMinutes: -300},
		{ID: "y2", TZ: "Europe/London", OffsetInMinutes: 0},
		{ID: "x3", TZ: "Asia/Pyongyang", OffsetInMinutes: 540},
	})
	got := b.Sort().IDs()
	want := []string{"z", "y1", "y2", "x1", "x2", "x3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Sorting again keeps the same order.
	if again := b.Sort().IDs(); !reflect.DeepEqual(again, want) {
		t.Fatalf("second sort changed order: %v", again)
	}
}

func TestMutationsReplaceSnapshot(t *testing.T) {
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}})
	before := b.Snapshot()

	after := b.Update("a", entry.WithLabel("home"))
	if before == after {
		t.Fatalf("expected a new snapshot after update")
	}
	if e, _ := before.Find("a"); e.Label != "" {
		t.Fatalf("old snapshot was mutated: %+v", e)
	}
	if e, _ := after.Find("a"); e.Label != "home" {
		t.Fatalf("update not applied: %+v", e)
	}
	if after.Rev() != before.Rev()+1 {
		t.Fatalf("expected rev to advance, got %d -> %d", before.Rev(), after.Rev())
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	n := &countingNotifier{}
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}, {ID: "b", TZ: "UTC"}}, WithNotifier(n))
	cur := b.Snapshot()

	if got := b.Update("missing", entry.WithLabel("x")); got != cur {
		t.Fatalf("update of unknown id should return the current snapshot")
	}
	if got := b.Remove("missing"); got != cur {
		t.Fatalf("remove of unknown id should return the current snapshot")
	}
	if got := b.Move("missing", 1); got != cur {
		t.Fatalf("move of unknown id should return the current snapshot")
	}
	if len(n.calls) != 0 {
		t.Fatalf("no-op mutations must not notify, got %d", len(n.calls))
	}
}

func TestRemove(t *testing.T) {
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}, {ID: "b", TZ: "UTC"}, {ID: "c", TZ: "UTC"}})
	if got := b.Remove("b").IDs(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("unexpected ids after remove: %v", got)
	}
	b.Remove("a")
	last := b.Remove("c")
	if last.Len() != 1 || last.At(0).ID != "c" {
		t.Fatalf("the last entry must be kept, got %v", last.IDs())
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	b := New([]entry.Entry{{ID: "a", TZ: "UTC", Label: "keep", Query: "tok"}})
	snap := b.Update("a", entry.WithZone("Asia/Tokyo", 540))
	e := snap.At(0)
	if e.TZ != "Asia/Tokyo" || e.OffsetInMinutes != 540 {
		t.Fatalf("zone patch not applied: %+v", e)
	}
	if e.Label != "keep" || e.Query != "tok" {
		t.Fatalf("untouched fields changed: %+v", e)
	}
}

func TestNewSynthesizesDefault(t *testing.T) {
	b := New(nil, WithDefaultEntry(fixedDefault))
	snap := b.Snapshot()
	if snap.Len() != 1 || snap.At(0) != fixedDefault() {
		t.Fatalf("expected the default entry, got %+v", snap.Entries())
	}
}

func TestResetAndReplace(t *testing.T) {
	n := &countingNotifier{}
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}, {ID: "b", TZ: "UTC"}},
		WithDefaultEntry(fixedDefault), WithNotifier(n))

	if got := b.Reset().IDs(); !reflect.DeepEqual(got, []string{"local"}) {
		t.Fatalf("unexpected ids after reset: %v", got)
	}
	if got := b.Replace([]entry.Entry{{ID: "z", TZ: "Asia/Tokyo"}}).IDs(); !reflect.DeepEqual(got, []string{"z"}) {
		t.Fatalf("unexpected ids after replace: %v", got)
	}
	if got := b.Replace(nil).IDs(); !reflect.DeepEqual(got, []string{"local"}) {
		t.Fatalf("empty replace should reset, got %v", got)
	}
	if len(n.calls) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(n.calls))
	}
}

func TestInsert(t *testing.T) {
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}})
	snap := b.Insert(entry.Entry{TZ: "Asia/Tokyo", Label: "tokyo", OffsetInMinutes: 540})
	if snap.Len() != 2 || snap.At(1).ID == "" || snap.At(1).Label != "tokyo" {
		t.Fatalf("unexpected insert result %+v", snap.Entries())
	}
	if again := b.Insert(entry.Entry{ID: "a", TZ: "Asia/Tokyo"}); again != snap {
		t.Fatalf("inserting a duplicate id should be a no-op")
	}
}

func TestMove(t *testing.T) {
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}, {ID: "b", TZ: "UTC"}, {ID: "c", TZ: "UTC"}})
	if got := b.Move("c", -1).IDs(); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if got := b.Move("a", 10).IDs(); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Fatalf("unexpected order %v", got)
	}
	cur := b.Snapshot()
	if got := b.Move("c", -1); got != cur {
		t.Fatalf("moving past the front should be a no-op")
	}
}

func TestListenersSeeNewSnapshot(t *testing.T) {
	var seen []*Snapshot
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}}, WithListener(func(s *Snapshot) {
		seen = append(seen, s)
	}))
	snap := b.Add()
	if len(seen) != 1 || seen[0] != snap {
		t.Fatalf("listener did not receive the new snapshot")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := New([]entry.Entry{{ID: "a", TZ: "UTC"}})
	es := b.Snapshot().Entries()
	es[0].Label = "mutated"
	if b.Snapshot().At(0).Label != "" {
		t.Fatalf("Entries must return a copy")
	}
}
