package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/zones/pkg/entry"
	"tableflip.dev/zones/pkg/timeline"
	"tableflip.dev/zones/pkg/zoneinfo"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2025, time.January, 15, 13, 30, 0, 0, time.UTC)

func TestEntriesTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Entries(now,
		entry.Entry{ID: "a", TZ: "Asia/Tokyo", Label: "tokyo office"},
		entry.Entry{ID: "b", TZ: "Mars/Base"},
	)
	out := buf.String()
	for _, want := range []string{"tokyo office", "Asia/Tokyo", "UTC+09:00", "Wed 22:30", "Mars/Base", "unknown zone"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Entries(now)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestTimeline(t *testing.T) {
	var buf bytes.Buffer
	e := entry.Entry{ID: "a", TZ: "Asia/Tokyo", Label: "tokyo"}
	tl := timeline.Project(e.TZ, now, timeline.Options{Hours: 12, Catalog: zoneinfo.Default()})
	(&PrettyPrint{Out: &buf}).Timeline(e, tl)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, clock and two block rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "tokyo" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Wed, Jan 15, 2025, 10:30 PM") || !strings.Contains(lines[1], "UTC+09:00") {
		t.Fatalf("unexpected clock line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "10PM 11PM 12AM") {
		t.Fatalf("unexpected block row %q", lines[2])
	}
}

func TestLabelTruncates(t *testing.T) {
	long := strings.Repeat("x", LabelWidth+10)
	if got := Label(long); len([]rune(got)) != LabelWidth {
		t.Fatalf("expected %d cells, got %q", LabelWidth, got)
	}
	if got := Label("  short "); got != "short" {
		t.Fatalf("unexpected label %q", got)
	}
}
