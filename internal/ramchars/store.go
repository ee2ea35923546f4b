// Package ramchars implements the user-defined (RAM) character table: the
// mutable codepage built up by ESC & (add glyph), ESC : (copy ROM to RAM)
// and ESC t 2 (shift lower half to upper half), backed by a manually
// editable JSON database that maps a glyph's dot-pattern hash to the
// unicode character a human has decided it represents.
package ramchars

import (
	"fmt"

	"escprender/internal/codepage"
)

// Store owns the RAM character table for one job.
type Store struct {
	db       *Database
	settings Settings
	mapping  map[byte]string
	encoding *codepage.Table
}

// NewStore opens (or creates) the mapping database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := OpenDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, mapping: map[byte]string{}}, nil
}

// SetSettings records the traits in effect for characters about to be
// defined. If they differ from the traits used to build the characters
// currently in RAM, the table is invalidated.
func (s *Store) SetSettings(settings Settings) {
	if settings != s.settings {
		s.mapping = map[byte]string{}
		s.encoding = nil
	}
	s.settings = settings
}

// FromROM copies a ROM codepage's decoding into RAM - ESC :. On 9-pin
// printers all 256 positions of base are copied; on ESC/P2 printers only
// 0-127.
func (s *Store) FromROM(base *codepage.Table, pins int) {
	n := 128
	if pins == 9 {
		n = 256
	}
	s.mapping = make(map[byte]string, n)
	for i := 0; i < n; i++ {
		s.mapping[byte(i)] = base.Decode(byte(i))
	}
	s.rebuild()
}

// ShiftUpperCharset copies the lower 128 positions of the current RAM table
// to the upper 128 - ESC t 2. Lower-half positions with no definition
// decode as the replacement character in both halves; definitions that were
// already in the upper half are dropped.
func (s *Store) ShiftUpperCharset() {
	shifted := make(map[byte]string, 256)
	for code, v := range s.mapping {
		if code < 0x80 {
			shifted[code] = v
			shifted[code+0x80] = v
		}
	}
	for i := 0; i < 128; i++ {
		if _, ok := shifted[byte(i)]; !ok {
			shifted[byte(i)] = "�"
			shifted[byte(i+0x80)] = "�"
		}
	}
	s.mapping = shifted
	s.rebuild()
}

// AddChar assigns the next glyph sent via ESC & to code, looking its
// dot-pattern hash up in the manual mapping database.
func (s *Store) AddChar(dots []byte, code byte) {
	hash := GlyphHash(dots)
	decoded, _ := s.db.Lookup(hash, code, s.settings)
	s.mapping[code] = decoded
	s.rebuild()
}

// Empty reports whether no RAM characters are currently defined.
func (s *Store) Empty() bool {
	return len(s.mapping) == 0
}

// Clear empties the RAM table. The recorded settings fingerprint is kept.
func (s *Store) Clear() {
	s.mapping = map[byte]string{}
	s.encoding = nil
}

// Table returns the codepage table backing the current RAM characters.
func (s *Store) Table() *codepage.Table {
	if s.encoding == nil {
		s.rebuild()
	}
	return s.encoding
}

// Save persists the manual mapping database to disk.
func (s *Store) Save() error {
	if err := s.db.Save(); err != nil {
		return fmt.Errorf("ramchars: %w", err)
	}
	return nil
}

func (s *Store) rebuild() {
	t := codepage.NewEmpty("user_defined")
	for code, v := range s.mapping {
		t.Set(code, v)
	}
	s.encoding = t
}
