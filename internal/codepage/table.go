// Package codepage implements the byte->codepoint tables the interpreter
// decodes text through: built-in system codepages, synthetic base+overlay
// tables formed by patching 12 positions from an international-variant
// table, and the fully mapping-defined table backing user-defined RAM
// characters.
//
// The registry is owned per job by the interpreter (a direct field, looked
// up by name), never process-global, so repeated jobs in one process cannot
// see each other's synthesized tables.
package codepage

// Table is a byte->string decode table. Values are strings rather than
// single runes because a handful of international overlay positions (the
// Spanish peseta abbreviation "Pt" at 0x23 of charset 7, see overlay.go)
// decode to more than one character.
type Table struct {
	Name   string
	decode [256]string
}

// Decode returns the decoded string for a single input byte.
func (t *Table) Decode(b byte) string {
	return t.decode[b]
}

// Clone returns a deep copy, used as the base for overlay composition.
func (t *Table) Clone(name string) *Table {
	clone := &Table{Name: name, decode: t.decode}
	return clone
}

// NewFromRuneFunc builds a 256-entry table from a byte->rune decoder,
// typically backed by a golang.org/x/text/encoding/charmap.Charmap.
func NewFromRuneFunc(name string, decodeByte func(byte) rune) *Table {
	t := &Table{Name: name}
	for i := 0; i < 256; i++ {
		r := decodeByte(byte(i))
		if r == 0 && i != 0 {
			r = '?'
		}
		t.decode[i] = string(r)
	}
	return t
}

// NewEmpty builds a table with every position set to the replacement
// character, the starting point for a fully mapping-defined RAM table.
func NewEmpty(name string) *Table {
	t := &Table{Name: name}
	for i := 0; i < 256; i++ {
		t.decode[i] = "�"
	}
	return t
}

// Set assigns the decoded string for a single code point, used when
// installing user-defined RAM character mappings.
func (t *Table) Set(code byte, value string) {
	t.decode[code] = value
}
