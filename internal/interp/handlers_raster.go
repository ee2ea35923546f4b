package interp

import (
	"escprender/internal/raster"
	"escprender/internal/token"
)

// hSetUnit implements ESC ( U n: redefines the "defined unit" denominator
// used by ESC $, ESC ( c and friends.
func (it *Interpreter) hSetUnit(t token.Token) error {
	if len(t.Params) < 1 || t.Params[0] == 0 {
		return nil
	}
	it.State.DefinedUnitDenom = 3600 / int(t.Params[0])
	return nil
}

// hSetGraphicsMode implements ESC ( G m: toggles graphics mode. The
// argument may arrive as the byte value or its ASCII digit.
func (it *Interpreter) hSetGraphicsMode(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	it.State.GraphicsMode = t.Params[0]&1 != 0
	return nil
}

// hSwitchMicroweaveMode implements ESC ( i m.
func (it *Interpreter) hSwitchMicroweaveMode(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	it.State.MicroweaveMode = t.Params[0]&1 != 0
	return nil
}

// hPrintRasterGraphics implements ESC . c v h m nL nH data: one band of
// raster dots. v and h are each a dot pitch directly, in units of 1/3600in.
func (it *Interpreter) hPrintRasterGraphics(t token.Token) error {
	if !it.State.GraphicsMode || len(t.Params) < 6 {
		return nil
	}
	vCode, hCode := t.Params[1], t.Params[2]
	bandHeight := int(t.Params[3])
	hDotCount := int(t.Params[5])<<8 | int(t.Params[4])
	data := t.Params[6:]

	if vCode == 0 || hCode == 0 {
		return nil
	}
	vResIn := float64(vCode) / 3600.0
	hResIn := float64(hCode) / 3600.0

	it.Page.SetColor(colorFor(it.State.Color))
	raster.RasterRows(it.Page, it.RendererKind, data, bandHeight, hDotCount,
		it.State.CursorX, it.State.CursorY, hResIn, vResIn)
	it.State.CursorX += float64(hDotCount) * hResIn
	return nil
}

// hSelectLineScore implements ESC ( - m d1 d2: continuous/broken underline,
// strikethrough and overscore lines. Only the underline case is modeled;
// strikethrough/overscore are logged as unsupported.
func (it *Interpreter) hSelectLineScore(t token.Token) error {
	if len(t.Params) < 3 {
		return nil
	}
	kind, style := t.Params[1], t.Params[2]
	if kind != 1 {
		it.logUnsupportedOnce("select_line_score:strikethrough_or_overscore")
		return nil
	}
	it.SetUnderline(style != 0)
	return nil
}

// hPrintDataAsCharacters implements ESC ( ^ nL nH data: the following bytes
// are drawn as glyphs through the active table, bypassing control-code
// interpretation entirely.
func (it *Interpreter) hPrintDataAsCharacters(t token.Token) error {
	if len(t.Params) < 2 {
		return nil
	}
	return it.hText(token.Token{Command: "text", Params: t.Params[2:], Offset: t.Offset})
}
