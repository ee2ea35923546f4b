package interp

import (
	"escprender/internal/raster"
	"escprender/internal/token"
)

// hPrintTIFFRasterGraphics implements the ESC . 2 entry point into the
// TIFF-compressed raster sub-machine: record the v/h densities and anchor
// the relative-motion commands at the current cursor.
func (it *Interpreter) hPrintTIFFRasterGraphics(t token.Token) error {
	// The tokenizer is in the sub-machine alphabet from here until EXIT_EX,
	// whether or not the density setup below succeeds.
	it.inTIFFRaster = true
	if !it.State.GraphicsMode || len(t.Params) < 6 {
		return nil
	}
	vCode, hCode := t.Params[1], t.Params[2]
	if vCode == 0 || hCode == 0 {
		return nil
	}
	// v and h are each a dot pitch directly, in units of 1/3600in;
	// TIFFVResDPI/TIFFHResDPI are stored as dots-per-inch so the XFER path
	// can divide by them directly.
	it.State.TIFFVResDPI = 3600.0 / float64(vCode)
	it.State.TIFFHResDPI = 3600.0 / float64(hCode)
	it.State.TIFFBandHeight = int(t.Params[3])
	it.State.TIFFHDotCount = int(t.Params[5])<<8 | int(t.Params[4])
	it.State.tiffAnchorX = it.State.CursorX
	it.State.tiffAnchorY = it.State.CursorY
	return nil
}

// hExitTIFFRasterGraphics implements EXIT_EX (0xE3): leaves the sub-machine
// and returns the cursor to ordinary text-mode semantics.
func (it *Interpreter) hExitTIFFRasterGraphics(_ token.Token) error {
	it.inTIFFRaster = false
	return nil
}

// hClearEx implements CLR_EX (0xE1): resets the current raster position back
// to the graphic's anchor.
func (it *Interpreter) hClearEx(_ token.Token) error {
	it.State.CursorX = it.State.tiffAnchorX
	it.State.CursorY = it.State.tiffAnchorY
	return nil
}

// hSetPrintingColorEx implements the TIFF sub-machine's 0x80-0x84 COLR
// selectors: black, magenta, cyan, yellow. Color combinations (0x83) are
// ignored. COLR moves the horizontal position back to the left-most print
// position.
func (it *Interpreter) hSetPrintingColorEx(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	c := int(t.Params[0] & 0x0F)
	switch c {
	case 0, 1, 2, 4:
		it.State.Color = c
	default:
		return nil
	}
	return it.hCarriageReturn(t)
}

// hSetMovxUnit8Dots / hSetMovxUnit1Dot implement MOVXBYTE (0xE4) and MOVXDOT
// (0xE5): select whether a following MOVX's argument is counted in bytes (8
// dots) or single dots. Both move the horizontal position back to the
// left-most print position.
func (it *Interpreter) hSetMovxUnit8Dots(t token.Token) error {
	it.State.MovxUnitDots = 8
	return it.hCarriageReturn(t)
}

func (it *Interpreter) hSetMovxUnit1Dot(t token.Token) error {
	it.State.MovxUnitDots = 1
	return it.hCarriageReturn(t)
}

// hMovx implements the MOVX alphabet: signed relative horizontal motion in
// units of MovxUnitDots dots, each one defined unit wide.
func (it *Interpreter) hMovx(t token.Token) error {
	n := tiffMovArg(t.Params, true)
	it.State.CursorX += float64(n) * float64(it.State.MovxUnitDots) / float64(it.VerticalDefinedUnit())
	return nil
}

// hMovy implements the MOVY alphabet: unsigned downward motion in defined
// units, with an implicit carriage return first.
func (it *Interpreter) hMovy(t token.Token) error {
	n := tiffMovArg(t.Params, false)
	if err := it.hCarriageReturn(t); err != nil {
		return err
	}
	it.State.CursorY -= float64(n) / float64(it.VerticalDefinedUnit())
	return nil
}

// tiffMovArg decodes the MOVX/MOVY payload tokenized by token.movToken: the
// first byte is the command byte itself. For F=0 the second byte repeats
// the #BC nibble; for F=1 the rest (1 or 2 bytes) hold the little-endian
// magnitude. MOVX is signed two's complement at the width the
// #BC nibble names (4, 8, or 16 bits); MOVY is always unsigned.
func tiffMovArg(params []byte, signed bool) int {
	if len(params) < 1 {
		return 0
	}
	cmd := params[0]
	cmdBC := int(cmd & 0x0F)
	f := (cmd>>4)&1 == 1

	raw := params[1:]
	switch {
	case !f:
		if signed && cmdBC&0x08 != 0 {
			return cmdBC - 0x10
		}
		return cmdBC
	case len(raw) == 1:
		u := int(raw[0])
		if signed && u >= 0x80 {
			return u - 0x100
		}
		return u
	case len(raw) == 2:
		u := int(raw[1])<<8 | int(raw[0])
		if signed && u >= 0x8000 {
			return u - 0x10000
		}
		return u
	}
	return 0
}

// hTransferRasterGraphicsData implements XFER: one decompressed row printed
// at the current raster position, advancing cursor_x by the row's full dot
// width at the graphic's horizontal resolution.
func (it *Interpreter) hTransferRasterGraphicsData(t token.Token) error {
	if len(t.Params) < 2 || it.State.TIFFHResDPI <= 0 {
		return nil
	}
	data := t.Params[2:]
	hResIn := 1.0 / it.State.TIFFHResDPI
	it.Page.SetColor(colorFor(it.State.Color))
	raster.TIFFRow(it.Page, it.RendererKind, data, it.State.CursorX, it.State.CursorY, hResIn)
	it.State.CursorX += float64(len(data)*8) * hResIn
	return nil
}
