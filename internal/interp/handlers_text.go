package interp

import (
	"escprender/internal/backend"
	"escprender/internal/codepage"
	"escprender/internal/fontresolver"
	"escprender/internal/raster"
	"escprender/internal/token"
)

// hText implements the literal text run token: decode through the active
// codepage, resolve a font, compute baseline/rise/scale, draw, and advance
// the cursor per glyph.
func (it *Interpreter) hText(t token.Token) error {
	table, ok := it.activeDecodeTable()
	if !ok {
		it.warnUnsupportedCodepage(it.State.ActiveCharacterTable, "active table")
		table, _ = it.Registry.Lookup("cp437")
	}

	reversed := it.State.CharacterTables[it.State.ActiveCharacterTable].Name != "" &&
		codepage.LeftToRightReversalCodepages[it.State.CharacterTables[it.State.ActiveCharacterTable].Name]

	runes := make([]string, 0, len(t.Params))
	for _, b := range t.Params {
		runes = append(runes, table.Decode(b))
	}
	if reversed {
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
	}

	typefaceName := it.typefaceFamilyName()
	font, err := it.Fonts.Resolve(typefaceName, it.State.Condensed, it.State.Italic, it.State.Bold, "")
	if err != nil {
		return wrapBackendErr(err)
	}
	it.Page.SetFont(font.FamilyName, it.State.PointSize)
	it.Page.SetColor(colorFor(it.State.Color))

	baseline := it.State.CursorY - it.baselineOffsetIn()
	rise := 0.0
	pointSize := it.State.PointSize
	if it.State.Scripting != ScriptNone && pointSize > 8 {
		rise = pointSize / 3.0 / 72.0
		if it.State.Scripting == ScriptSub {
			rise = -rise
		}
		pointSize = pointSize * 2.0 / 3.0
	}

	hScale := 100.0
	switch {
	case it.State.DoubleWidth || it.State.DoubleWidthMulti:
		if it.State.DoubleHeight {
			hScale = 100.0
		} else {
			hScale = 200.0
		}
	case it.State.DoubleHeight:
		hScale = 50.0
	}
	if it.State.Condensed && it.CondensedFallback && font.Path == "" {
		// No condensed font file resolved: approximate the condensed face
		// by narrowing glyphs to the condensed pitch ratio.
		hScale *= 10.0 / 17.14
	}

	mode := backend.RenderFill
	switch it.State.CharacterStyle {
	case StyleOutline:
		mode = backend.RenderStroke
	case StyleShadow, StyleOutlineShadow:
		mode = backend.RenderFillStroke
	}

	for _, s := range runes {
		for _, ch := range s {
			x := it.State.CursorX * raster.PointsPerInch
			y := (baseline + rise) * raster.PointsPerInch

			it.Page.DrawTextRun(x, y, string(ch), it.State.IntercharacterSpaceIn()*raster.PointsPerInch, hScale, rise*raster.PointsPerInch, mode)

			if it.State.CharacterStyle == StyleShadow || it.State.CharacterStyle == StyleOutlineShadow {
				it.Page.DrawTextRun(x+1, y-1, string(ch), it.State.IntercharacterSpaceIn()*raster.PointsPerInch, hScale, rise*raster.PointsPerInch, backend.RenderFill)
			}

			advance := it.Fonts.AdvanceWidth(font, ch, pointSize)
			if advance <= 0 {
				advance = it.State.CharAdvanceIn()
			}
			advance *= hScale / 100.0
			advance += it.State.IntercharacterSpaceIn()
			it.State.CursorX += advance
		}
	}

	return nil
}

// activeDecodeTable resolves the codepage currently selected via
// ActiveCharacterTable, composed with the international overlay.
func (it *Interpreter) activeDecodeTable() (*codepage.Table, bool) {
	slot := it.State.activeTableSlot()
	if slot.Sentinel == sentinelUserDefined && (it.RAM == nil || it.RAM.Empty()) {
		// Nothing defined (or the definitions were invalidated by a
		// settings change): codes fall through to the base encoding.
		return it.Registry.Lookup("cp437")
	}
	var ramTable *codepage.Table
	if it.RAM != nil {
		ramTable = it.RAM.Table()
	}
	base, ok := it.State.resolveTable(slot, it.Registry, ramTable)
	if !ok {
		return nil, false
	}
	if slot.Sentinel == "" && slot.Name != "" {
		return codepage.Overlay(base, it.State.InternationalCharset), true
	}
	return base, true
}

// typefaceFamilyName resolves the current typeface id to the substring the
// font resolver contract matches against.
func (it *Interpreter) typefaceFamilyName() string {
	if name, ok := fontresolver.DefaultTypefaceTable[it.State.Typeface]; ok {
		return name
	}
	return fontresolver.DefaultTypefaceTable[0]
}

func colorFor(c int) backend.Color {
	switch c {
	case 1:
		return backend.Color{R: 1, G: 0, B: 1} // magenta
	case 2:
		return backend.Color{R: 0, G: 1, B: 1} // cyan
	case 3:
		return backend.Color{R: 0.5, G: 0, B: 1} // violet
	case 4:
		return backend.Color{R: 1, G: 1, B: 0} // yellow
	case 5:
		return backend.Color{R: 1, G: 0, B: 0} // red
	case 6:
		return backend.Color{R: 0, G: 1, B: 0} // green
	default:
		return backend.Color{R: 0, G: 0, B: 0} // black
	}
}
