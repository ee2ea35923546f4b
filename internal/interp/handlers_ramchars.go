package interp

import (
	"escprender/internal/fontresolver"
	"escprender/internal/token"
)

// hDefineUserDefinedRAMCharacters implements ESC & NUL n m (triple, dots)*:
// each code in [n..m] gets a spacing triple followed by rows*a1 dot-column
// bytes. The settings fingerprint is recorded first so a trait change
// invalidates stale glyphs.
func (it *Interpreter) hDefineUserDefinedRAMCharacters(t token.Token) error {
	if it.RAM == nil || len(t.Params) < 3 {
		return nil
	}
	n, m := int(t.Params[1]), int(t.Params[2])
	it.RAM.SetSettings(it.currentSettingsFingerprint())

	const rows = 3
	idx := 3
	for code := n; code <= m; code++ {
		if idx+3 > len(t.Params) {
			break
		}
		triple := t.Params[idx : idx+3]
		idx += 3
		a1 := int(triple[1])
		glyphLen := rows * a1
		if idx+glyphLen > len(t.Params) {
			break
		}
		glyph := t.Params[idx : idx+glyphLen]
		idx += glyphLen
		it.RAM.AddChar(glyph, byte(code))
	}
	it.Registry.Register("user_defined", it.RAM.Table())
	return nil
}

// hCopyROMToRAM implements ESC : NUL n NUL: copies the currently active
// decoding table into RAM; n is only checked against the known typefaces.
// Ignored in multipoint mode or when n names an unknown typeface.
func (it *Interpreter) hCopyROMToRAM(t token.Token) error {
	if it.RAM == nil || it.State.MultipointMode || len(t.Params) < 3 {
		return nil
	}
	typeface := int(t.Params[1])
	if _, ok := fontresolver.DefaultTypefaceTable[typeface]; !ok {
		return nil
	}

	base, ok := it.activeDecodeTable()
	if !ok {
		return nil
	}
	it.RAM.SetSettings(it.currentSettingsFingerprint())
	it.RAM.FromROM(base, it.State.Pins)
	it.Registry.Register("user_defined", it.RAM.Table())
	return nil
}
