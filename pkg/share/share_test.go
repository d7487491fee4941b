package share

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atotto/clipboard"

	"tableflip.dev/zones/pkg/codec"
	"tableflip.dev/zones/pkg/entry"
)

var sample = []entry.Entry{
	{ID: "a", TZ: "Europe/Berlin", Label: "office", OffsetInMinutes: 60},
	{ID: "b", TZ: "Asia/Tokyo", Label: "家", OffsetInMinutes: 540},
}

func TestLinkRoundTrip(t *testing.T) {
	link, err := New("", sample)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !strings.HasPrefix(link.URL, DefaultBaseURL+"?data=") {
		t.Fatalf("unexpected url %q", link.URL)
	}
	got, err := Parse(link.URL)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(got, sample) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestBuildKeepsOtherParams(t *testing.T) {
	got, err := Build("https://example.com/zones?theme=dark&data=old#top", "TOKEN")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got != "https://example.com/zones?theme=dark&data=TOKEN" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestExtractToken(t *testing.T) {
	token, err := codec.Encode(sample)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	tests := map[string]struct {
		input string
		want  string
		err   error
	}{
		"bare token":       {input: token, want: token},
		"padded token":     {input: "  " + token + "\n", want: token},
		"full url":         {input: "https://zones.tableflip.dev/?data=" + token, want: token},
		"query only":       {input: "?data=" + token, want: token},
		"param first":      {input: "data=" + token, want: token},
		"with fragment":    {input: "https://x.test/?a=1&data=" + token + "#frag", want: token},
		"url without data": {input: "https://x.test/?a=1", err: ErrNoToken},
		"url no query":     {input: "https://x.test/", err: ErrNoToken},
		"empty":            {input: "   ", err: ErrNoToken},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ExtractToken(tc.input)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("https://x.test/?data=%%%"); !errors.Is(err, codec.ErrDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard on this host")
	}
	var got string
	clipboardWrite = func(s string) error {
		got = s
		return nil
	}
	t.Cleanup(func() { clipboardWrite = clipboard.WriteAll })

	if err := Copy("https://zones.tableflip.dev/?data=x"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if got != "https://zones.tableflip.dev/?data=x" {
		t.Fatalf("clipboard got %q", got)
	}

	clipboardWrite = func(string) error { return errors.New("no display") }
	if err := Copy("x"); !errors.Is(err, ErrClipboard) {
		t.Fatalf("expected ErrClipboard, got %v", err)
	}
}
