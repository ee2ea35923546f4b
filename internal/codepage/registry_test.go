package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltinLookup(t *testing.T) {
	r := NewRegistry()

	t1, ok := r.Lookup("cp437")
	require.True(t, ok)
	assert.Equal(t, "A", t1.Decode('A'))
}

func TestRegistryItalicIsUpperHalfRemap(t *testing.T) {
	r := NewRegistry()

	base, ok := r.Lookup("cp437")
	require.True(t, ok)
	italic, ok := r.Lookup("italic")
	require.True(t, ok)

	assert.Equal(t, base.Decode(0x41), italic.Decode(0x41))
	assert.Equal(t, base.Decode(0x41), italic.Decode(0xC1))
}

func TestRegistryLookupBySlotIDUnknownFallsBack(t *testing.T) {
	r := NewRegistry()

	_, name, ok := r.LookupBySlotID(99, 0)
	assert.False(t, ok)
	assert.Equal(t, "unknown", name)
}

func TestRegistryLookupBySlotIDKnownName(t *testing.T) {
	r := NewRegistry()

	tbl, name, ok := r.LookupBySlotID(1, 0)
	require.True(t, ok)
	assert.Equal(t, "PC437 (US)", name)
	assert.Equal(t, "A", tbl.Decode('A'))
}

func TestRegistryRegisterUnregisterRAMTable(t *testing.T) {
	r := NewRegistry()

	ram := NewEmpty("user_defined")
	ram.Set(0x41, "X")
	r.Register("user_defined", ram)

	got, ok := r.Lookup("user_defined")
	require.True(t, ok)
	assert.Equal(t, "X", got.Decode(0x41))

	r.Unregister("user_defined")
	_, ok = r.Lookup("user_defined")
	assert.False(t, ok)
}

func TestOverlayComposition(t *testing.T) {
	r := NewRegistry()
	base, _ := r.Lookup("cp437")

	overlaid := Overlay(base, 2) // Germany

	for b := 0; b < 256; b++ {
		isOverlayPos := false
		for _, pos := range overlayPositions {
			if byte(b) == pos {
				isOverlayPos = true
			}
		}
		if isOverlayPos {
			continue
		}
		assert.Equal(t, base.Decode(byte(b)), overlaid.Decode(byte(b)), "position %d should be unchanged", b)
	}

	assert.Equal(t, "Ä", overlaid.Decode(0x5B))
	assert.Equal(t, "ß", overlaid.Decode(0x7E))
}
