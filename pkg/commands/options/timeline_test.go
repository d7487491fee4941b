package options

import "testing"

func TestTimelineOptionsSpan(t *testing.T) {
	o := &TimelineOptions{Span: "1d12h"}
	if err := o.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Hours != 36 {
		t.Fatalf("expected 36 hours, got %d", o.Hours)
	}
}

func TestTimelineOptionsInvalid(t *testing.T) {
	tests := []TimelineOptions{
		{Hours: -1},
		{Hours: 12, Span: "1d"},
		{Span: "soon"},
	}
	for _, o := range tests {
		if err := o.Validate(); err == nil {
			t.Fatalf("expected error for %+v", o)
		}
	}
}
