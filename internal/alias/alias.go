// Package alias maintains the per-block slot alias table.
//
// An operand name such as ".3" is a back-reference to block position 3.
// When the instruction at position j uses such a name, slot 3 of the table
// is redirected to instruction j. Later writers win.
//
//	pos:    0      1      2      3
//	        (0,0)  (1,1)  (2,2)  (3,3)    after scan of 0..3
//	%x = add %y, %.1      at pos 3
//	        (0,0)  (3,3)  (2,2)  (3,3)
package alias

import (
	"strconv"

	"github.com/mpyw/simplemath/internal/ir"
)

// Default naming convention.
const (
	DefaultSentinel byte = '.'
	DefaultEscape   byte = 'i'
)

// Decoder recognises back-reference names.
type Decoder struct {
	Sentinel byte // first byte of a back-reference
	Escape   byte // second byte that disqualifies a name
}

// NewDecoder returns a Decoder using the default sentinel and escape.
func NewDecoder() Decoder {
	return Decoder{Sentinel: DefaultSentinel, Escape: DefaultEscape}
}

// Decode extracts the back-reference index from name.
//
// The name must be at least two bytes long, start with the sentinel and not
// have the escape as its second byte. The index is the run of decimal digits
// starting at byte 1; anything after the run is ignored.
func (d Decoder) Decode(name string) (int, bool) {
	if len(name) < 2 || name[0] != d.Sentinel || name[1] == d.Escape {
		return 0, false
	}
	end := 1
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 1 {
		return 0, false
	}
	idx, err := strconv.Atoi(name[1:end])
	if err != nil {
		return 0, false // overflow
	}
	return idx, true
}

// Entry is one alias slot: the instruction a position denotes and the
// position number that instruction was scanned at.
type Entry struct {
	Ref ir.Ref
	Pos int
}

// Table maps block positions to alias entries.
type Table struct {
	entries []Entry
}

// NewTable returns an empty table with room for n positions.
func NewTable(n int) *Table {
	return &Table{entries: make([]Entry, 0, n)}
}

// Push appends the identity entry for the next position.
func (t *Table) Push(ref ir.Ref, pos int) {
	t.entries = append(t.entries, Entry{Ref: ref, Pos: pos})
}

// Len returns the number of positions recorded so far.
func (t *Table) Len() int { return len(t.entries) }

// At returns the entry for position i.
func (t *Table) At(i int) Entry { return t.entries[i] }

// Entries returns a copy of all entries in position order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Overwrite redirects slot i. It reports false and leaves the table
// untouched when i is out of range.
func (t *Table) Overwrite(i int, e Entry) bool {
	if i < 0 || i >= len(t.entries) {
		return false
	}
	t.entries[i] = e
	return true
}

// Resolver applies back-references found in operand names to a table.
type Resolver struct {
	decoder Decoder
}

// NewResolver creates a Resolver with the given naming convention.
func NewResolver(d Decoder) *Resolver {
	return &Resolver{decoder: d}
}

// Resolve decodes name and, if it is an in-range back-reference, points the
// referenced slot at the instruction scanned at pos.
// It returns the overwritten slot index.
func (r *Resolver) Resolve(t *Table, name string, ref ir.Ref, pos int) (int, bool) {
	idx, ok := r.decoder.Decode(name)
	if !ok {
		return 0, false
	}
	if !t.Overwrite(idx, Entry{Ref: ref, Pos: pos}) {
		return 0, false
	}
	return idx, true
}
