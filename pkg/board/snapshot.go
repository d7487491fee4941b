package board

import "tableflip.dev/zones/pkg/entry"

// Snapshot is an immutable value of the full collection at one instant.
type Snapshot struct {
	entries []entry.Entry
	rev     uint64
}

func newSnapshot(entries []entry.Entry, rev uint64) *Snapshot {
	return &Snapshot{entries: entries, rev: rev}
}

// Len returns the number of entries.
func (s *Snapshot) Len() int { return len(s.entries) }

// At returns the i-th entry.
func (s *Snapshot) At(i int) entry.Entry { return s.entries[i] }

// Rev counts the mutations since the board was created.
func (s *Snapshot) Rev() uint64 { return s.rev }

// Entries returns a copy of the collection.
func (s *Snapshot) Entries() []entry.Entry {
	return entry.Clone(s.entries)
}

// IDs returns the entry ids in order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ID
	}
	return ids
}

// Find returns the entry with id.
func (s *Snapshot) Find(id string) (entry.Entry, bool) {
	if i := indexOf(s.entries, id); i >= 0 {
		return s.entries[i], true
	}
	return entry.Entry{}, false
}

// Index returns the position of id, or -1.
func (s *Snapshot) Index(id string) int {
	return indexOf(s.entries, id)
}
