package codepage

import (
	"golang.org/x/text/encoding/charmap"
)

// slotID identifies a registered codepage the way ESC ( t does: a (table,
// variant) pair.
type slotID struct {
	table, variant byte
}

// Registry is the per-job codepage table, populated at construction and
// torn down when the job ends.
type Registry struct {
	byName map[string]*Table
	names  map[slotID]string
}

// NewRegistry builds a fresh registry with every built-in codepage this
// implementation renders with full glyph fidelity. Names recognized by
// ESC ( t but not in byName fall through to the unsupported-codepage path
// (fall back to PC437, warn once).
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]*Table),
		names:  make(map[slotID]string),
	}

	r.registerBuiltins()
	r.registerNames()

	return r
}

func (r *Registry) registerBuiltins() {
	add := func(name string, cm *charmap.Charmap) {
		r.byName[name] = NewFromRuneFunc(name, cm.DecodeByte)
	}

	add("cp437", charmap.CodePage437)
	add("cp850", charmap.CodePage850)
	add("cp852", charmap.CodePage852)
	add("cp860", charmap.CodePage860)
	add("cp862", charmap.CodePage862)
	add("cp863", charmap.CodePage863)
	add("cp865", charmap.CodePage865)
	add("cp866", charmap.CodePage866)
	add("iso8859-1", charmap.ISO8859_1)
	add("iso8859-7", charmap.ISO8859_7)
	add("koi8-r", charmap.KOI8R)

	r.byName["italic"] = buildItalicTable(r.byName["cp437"])
}

// registerNames records the full (table,variant) -> display name mapping
// from character_table_mapping, independent of whether a decode table is
// implemented for it. Used for diagnostics (logging which named table was
// requested when it falls back to PC437).
func (r *Registry) registerNames() {
	m := map[slotID]string{
		{0, 0}:   "Italic",
		{1, 0}:   "PC437 (US)",
		{1, 16}:  "PC437 Greek",
		{2, 0}:   "PC932 (Japanese)",
		{3, 0}:   "PC850 (Multilingual)",
		{4, 0}:   "PC851 (Greek)",
		{5, 0}:   "PC853 (Turkish)",
		{6, 0}:   "PC855 (Cyrillic)",
		{7, 0}:   "PC860 (Portugal)",
		{8, 0}:   "PC863 (Canada-French)",
		{9, 0}:   "PC865 (Norway)",
		{10, 0}:  "PC852 (East Europe)",
		{11, 0}:  "PC857 (Turkish)",
		{12, 0}:  "PC862 (Hebrew)",
		{13, 0}:  "PC864 (Arabic)",
		{13, 32}: "PC AR864",
		{14, 0}:  "PC866 (Russian)",
		{15, 0}:  "PC869 (Greek)",
		{16, 0}:  "USSR GOST (Russian)",
		{17, 0}:  "ECMA-94-1",
		{24, 0}:  "PC861 (Iceland)",
		{25, 0}:  "BRASCII",
		{26, 0}:  "Abicomp",
		{27, 0}:  "MAZOWIA (Poland)",
		{29, 16}: "ISO8859-1 (Latin 1)",
		{35, 0}:  "Roman 8",
		{36, 0}:  "PC774 (Lithuania)",
		{41, 0}:  "PC708",
		{42, 0}:  "PC720",
		{127, 1}: "ISO Latin 1",
		{127, 2}: "ISO 8859-2 (ISO Latin 2)",
		{127, 7}: "ISO Latin 7 (Greek)",
	}

	byNameKey := map[slotID]string{
		{1, 0}: "cp437", {10, 0}: "cp852", {7, 0}: "cp860", {8, 0}: "cp863",
		{9, 0}: "cp865", {14, 0}: "cp866", {12, 0}: "cp862",
		{3, 0}: "cp850", {127, 1}: "iso8859-1", {29, 16}: "iso8859-1",
		{127, 7}: "iso8859-7", {16, 0}: "koi8-r",
	}
	r.names = m
	// Give the registered codepages a second, table-number based lookup
	// key so ESC ( t's (d2,d3) identifier can resolve directly.
	for id, name := range byNameKey {
		if t, ok := r.byName[name]; ok {
			r.byName[displayKey(id)] = t
		}
	}
}

func displayKey(id slotID) string {
	return string([]byte{id.table, id.variant})
}

// Lookup resolves a codepage by its registered name (e.g. "cp437",
// "italic", "user_defined").
func (r *Registry) Lookup(name string) (*Table, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// LookupBySlotID resolves the codepage assigned via ESC ( t's (d2,d3) pair,
// returning the human-readable name for diagnostics even when no decode
// table is implemented.
func (r *Registry) LookupBySlotID(table, variant byte) (t *Table, displayName string, ok bool) {
	id := slotID{table, variant}
	displayName = r.names[id]
	if displayName == "" {
		displayName = "unknown"
	}
	t, ok = r.byName[displayKey(id)]
	return t, displayName, ok
}

// Register adds or replaces a named table (used to (re-)install the
// user-defined RAM table).
func (r *Registry) Register(name string, t *Table) {
	r.byName[name] = t
}

// Unregister removes a named table, e.g. when the RAM table's settings
// fingerprint changes.
func (r *Registry) Unregister(name string) {
	delete(r.byName, name)
}

func buildItalicTable(base *Table) *Table {
	// Bytes in 0x80..0xFF re-map to 0x00..0x7F of PC437; no italic bitmap
	// font is shipped, the italic attribute comes from the resolved font.
	t := &Table{Name: "italic"}
	for i := 0; i < 128; i++ {
		t.decode[i] = base.decode[i]
		t.decode[i+128] = base.decode[i]
	}
	return t
}

// LeftToRightReversalCodepages is the set of right-to-left codepages whose
// text runs are reversed for visual ordering. cp720 and cp864 stay listed
// even though their decode tables are not registered yet; they take effect
// as soon as a table under that name exists.
var LeftToRightReversalCodepages = map[string]bool{
	"cp720": true,
	"cp862": true,
	"cp864": true,
}
