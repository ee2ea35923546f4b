package ramchars

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escprender/internal/codepage"
)

func TestSettingsChangeResetsTable(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	s.SetSettings(Settings{Mode: 1})
	s.db.entries[GlyphHash([]byte{0x01, 0x02})+"_65"] = entry{Settings: Settings{Mode: 1}, Code: 0x41, Decoded: "A"}
	s.AddChar([]byte{0x01, 0x02}, 0x41)
	assert.NotEqual(t, codepage.NewEmpty("user_defined").Decode(0x41), s.Table().Decode(0x41))

	s.SetSettings(Settings{Mode: 2})
	assert.Equal(t, "�", s.Table().Decode(0x41))
}

func TestFromROMCopies128For24Pin(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	base := codepage.NewFromRuneFunc("cp437", func(b byte) rune { return rune(b) })
	s.FromROM(base, 24)

	assert.Equal(t, string(rune(0x41)), s.Table().Decode(0x41))
	assert.Equal(t, "�", s.Table().Decode(0xC1))
}

func TestFromROMCopies256For9Pin(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	base := codepage.NewFromRuneFunc("italic", func(b byte) rune { return rune(b % 128) })
	s.FromROM(base, 9)

	assert.Equal(t, string(rune(0x41)), s.Table().Decode(0x41))
	assert.Equal(t, string(rune(0x41)), s.Table().Decode(0xC1))
}

func TestShiftUpperCharset(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	s.SetSettings(Settings{Mode: 1})
	s.AddChar([]byte{0xAA}, 0x41)
	lower := s.Table().Decode(0x41)

	s.ShiftUpperCharset()
	assert.Equal(t, lower, s.Table().Decode(0x41|0x80))
}

func TestAddCharReusesExistingDatabaseEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := NewStore(path)
	require.NoError(t, err)

	s.SetSettings(Settings{Mode: 1})
	s.AddChar([]byte{0x01, 0x02, 0x03}, 0x41)
	s.db.entries[GlyphHash([]byte{0x01, 0x02, 0x03})+"_65"] = entry{Settings: Settings{Mode: 1}, Code: 0x41, Decoded: "A"}

	s.AddChar([]byte{0x01, 0x02, 0x03}, 0x41)
	assert.Equal(t, "A", s.Table().Decode(0x41))
}

func TestClearResetsEncoding(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	s.SetSettings(Settings{Mode: 1})
	s.AddChar([]byte{0x01}, 0x41)
	s.Clear()

	assert.Equal(t, "�", s.Table().Decode(0x41))
}
