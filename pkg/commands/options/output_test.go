package options

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"tableflip.dev/zones/pkg/app"
	"tableflip.dev/zones/pkg/codec"
	"tableflip.dev/zones/pkg/zoneinfo"
)

func TestHandleErrorJSON(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{fmt.Errorf("label: %w", app.ErrNotFound), "not_found"},
		{zoneinfo.ErrUnknownZone, "unknown_zone"},
		{fmt.Errorf("import: %w", codec.ErrDecode), "bad_link"},
		{errors.New("disk full"), "error"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		o := &OutputOptions{JSON: true, Out: &buf}
		if err := o.HandleError(tt.err); err != nil {
			t.Fatalf("expected the error to be printed, got %v", err)
		}
		var got ErrorOutput
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("expected JSON, got %v: %s", err, buf.String())
		}
		if got.Kind != tt.kind || got.Error != tt.err.Error() {
			t.Fatalf("unexpected payload %+v for %v", got, tt.err)
		}
	}
}

func TestHandleErrorPassesThrough(t *testing.T) {
	want := errors.New("boom")
	if err := (&OutputOptions{}).HandleError(want); err != want {
		t.Fatalf("expected the error back, got %v", err)
	}
	if err := (&OutputOptions{JSON: true}).HandleError(nil); err != nil {
		t.Fatalf("nil should stay nil, got %v", err)
	}
}
