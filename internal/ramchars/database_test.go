package ramchars

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDatabaseMissingFileIsEmpty(t *testing.T) {
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, db.entries)
}

func TestLookupUnknownGlyphDefaultsToReplacement(t *testing.T) {
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	decoded, ok := db.Lookup("abc1234", 0x41, Settings{Mode: 1})
	assert.False(t, ok)
	assert.Equal(t, "�", decoded)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	db, err := OpenDatabase(path)
	require.NoError(t, err)
	db.Lookup("abc1234", 0x41, Settings{Mode: 1, ProportionalSpacing: true})
	db.entries["abc1234_65"] = entry{
		Settings: Settings{Mode: 1, ProportionalSpacing: true},
		Code:     0x41,
		Decoded:  "A",
	}
	require.NoError(t, db.Save())

	reloaded, err := OpenDatabase(path)
	require.NoError(t, err)
	decoded, ok := reloaded.Lookup("abc1234", 0x41, Settings{Mode: 1, ProportionalSpacing: true})
	assert.True(t, ok)
	assert.Equal(t, "A", decoded)
}

func TestGlyphHashIsStableAndShort(t *testing.T) {
	h1 := GlyphHash([]byte{0x01, 0x02, 0x03})
	h2 := GlyphHash([]byte{0x01, 0x02, 0x03})
	h3 := GlyphHash([]byte{0x01, 0x02, 0x04})

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 7)
}
