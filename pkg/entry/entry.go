// Package entry defines the timezone card stored on the board.
package entry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// UTC is the zone assigned to freshly added entries.
	UTC = "UTC"
	// LocalLabel is the label given to the synthesized local entry.
	LocalLabel = "Local"
)

// Entry is one user-configured timezone card.
type Entry struct {
	ID              string `json:"id"`
	TZ              string `json:"tz"`
	Label           string `json:"label"`
	Query           string `json:"query"`
	OffsetInMinutes int    `json:"offsetInMinutes"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	TZ              *string
	Label           *string
	Query           *string
	OffsetInMinutes *int
}

// NewID returns an identifier that is never reused.
func NewID() string {
	return uuid.NewString()
}

// New returns the entry appended by an add operation.
func New() Entry {
	return Entry{
		ID:              NewID(),
		TZ:              UTC,
		OffsetInMinutes: 0,
	}
}

// Local returns the entry representing "local now".
func Local(tz string, offsetInMinutes int) Entry {
	if strings.TrimSpace(tz) == "" {
		tz = UTC
	}
	return Entry{
		ID:              NewID(),
		TZ:              tz,
		Label:           LocalLabel,
		OffsetInMinutes: offsetInMinutes,
	}
}

// Apply returns a copy of e with the non-nil patch fields applied.
func (e Entry) Apply(p Patch) Entry {
	if p.TZ != nil {
		e.TZ = *p.TZ
	}
	if p.Label != nil {
		e.Label = *p.Label
	}
	if p.Query != nil {
		e.Query = *p.Query
	}
	if p.OffsetInMinutes != nil {
		e.OffsetInMinutes = *p.OffsetInMinutes
	}
	return e
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.TZ == nil && p.Label == nil && p.Query == nil && p.OffsetInMinutes == nil
}

// Title is the label, or the zone when no label is set.
func (e Entry) Title() string {
	if strings.TrimSpace(e.Label) != "" {
		return e.Label
	}
	return e.TZ
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s (%s)", e.ID, e.Title(), e.TZ)
}

// WithLabel builds a patch setting the label.
func WithLabel(label string) Patch {
	return Patch{Label: &label}
}

// WithQuery builds a patch setting the picker query.
func WithQuery(query string) Patch {
	return Patch{Query: &query}
}

// WithZone builds a patch setting the zone and its cached offset together.
func WithZone(tz string, offsetInMinutes int) Patch {
	return Patch{TZ: &tz, OffsetInMinutes: &offsetInMinutes}
}

// Clone copies a slice of entries.
func Clone(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
