package interp

import "escprender/internal/token"

// hCarriageReturn implements CR: flush any open underline run, move to the
// left margin, start a fresh underline run if underline is active.
func (it *Interpreter) hCarriageReturn(_ token.Token) error {
	if it.inTIFFRaster {
		it.State.CursorX = it.State.tiffAnchorX
		return nil
	}
	it.flushUnderline()
	it.State.CursorX = it.State.LeftMargin
	if it.State.Underline {
		it.startUnderline()
	}
	return nil
}

// hLineFeed implements LF: cancels single-line double-width, performs a CR,
// advances the cursor down by one line, then runs end-of-page handling.
func (it *Interpreter) hLineFeed(t token.Token) error {
	it.State.DoubleWidth = false
	if err := it.hCarriageReturn(t); err != nil {
		return err
	}
	it.State.CursorY -= it.State.LineSpacingIn
	return it.checkEndOfPage()
}

// hFormFeed implements FF: cancels single-line double-width and
// unconditionally starts a new page.
func (it *Interpreter) hFormFeed(_ token.Token) error {
	it.State.DoubleWidth = false
	return it.newPage()
}

// hBackspace implements BS: moves left by one character's pitch + extra
// intercharacter space, ignored if it would cross the left margin.
func (it *Interpreter) hBackspace(_ token.Token) error {
	step := it.State.CharAdvanceIn() + it.State.IntercharacterSpaceIn()
	if it.State.CursorX-step < it.State.LeftMargin {
		return nil
	}
	it.State.CursorX -= step
	return nil
}

// hHorizontalTab implements HT: moves to the smallest tab stop strictly
// greater than the current cursor, not exceeding the right margin.
func (it *Interpreter) hHorizontalTab(_ token.Token) error {
	best := -1.0
	for _, stop := range it.State.HorizontalTabs {
		if stop <= 0 {
			continue
		}
		x := it.State.LeftMargin + stop
		if x > it.State.CursorX && x <= it.State.RightMargin {
			if best < 0 || x < best {
				best = x
			}
		}
	}
	if best >= 0 {
		it.State.CursorX = best
	}
	return nil
}

// hVerticalTab implements VT: behaves like CR when no vertical tab stop
// remains past the cursor, otherwise advances to the next one.
func (it *Interpreter) hVerticalTab(t token.Token) error {
	best := -1.0
	for _, stop := range it.State.VerticalTabs {
		if stop <= 0 {
			continue
		}
		y := it.State.TopMargin - stop
		if y < it.State.CursorY && (best < 0 || y > best) {
			best = y
		}
	}
	if best < 0 {
		return it.hCarriageReturn(t)
	}
	it.State.CursorY = best
	return it.checkEndOfPage()
}

// hSetAbsoluteHorizontalPosition implements ESC $: absolute horizontal
// position in defined units from the left margin, ignored if it would
// exceed the right margin.
func (it *Interpreter) hSetAbsoluteHorizontalPosition(t token.Token) error {
	n := le16(t.Params)
	unit := it.HorizontalDefinedUnit()
	x := it.State.LeftMargin + float64(n)/float64(unit)
	if x > it.State.RightMargin {
		return nil
	}
	it.State.CursorX = x
	return nil
}

// hSetRelativeHorizontalPosition implements ESC \: signed relative
// horizontal motion; default unit is 1/120 (draft) or 1/180 (LQ), fixed to
// 1/120 on 9-pin.
func (it *Interpreter) hSetRelativeHorizontalPosition(t token.Token) error {
	n := sle16(t.Params)
	unit := 120
	switch {
	case it.State.Pins == 9:
	case it.State.DefinedUnitDenom != 0:
		unit = it.State.DefinedUnitDenom
	case it.State.PrintMode == LQ:
		unit = 180
	}
	x := it.State.CursorX + float64(n)/float64(unit)
	if x < it.State.LeftMargin || x > it.State.RightMargin {
		return nil
	}
	it.State.CursorX = x
	return nil
}

// hSetAbsoluteVerticalPosition implements ESC ( V: absolute vertical motion
// in defined units (default 1/360). Moving below bottom_margin advances to
// the next page.
func (it *Interpreter) hSetAbsoluteVerticalPosition(t token.Token) error {
	n := le16(t.Params)
	y := it.State.TopMargin - float64(n)/float64(it.VerticalDefinedUnit())
	it.State.CursorY = y
	return it.checkEndOfPage()
}

// hSetRelativeVerticalPosition implements ESC ( v: relative vertical
// motion. Negative motion beyond 179/360in is ignored; moving above
// top_margin is ignored.
func (it *Interpreter) hSetRelativeVerticalPosition(t token.Token) error {
	n := sle16(t.Params)
	amplitude := float64(n) / float64(it.VerticalDefinedUnit())
	if amplitude < 0 && -amplitude > 179.0/360.0 {
		return nil
	}
	y := it.State.CursorY - amplitude
	if y > it.State.TopMargin {
		return nil
	}
	it.State.CursorY = y
	return it.checkEndOfPage()
}

// hAdvancePrintPositionVertically implements ESC J: advance by n/180in (or
// n/216 on 9-pin).
func (it *Interpreter) hAdvancePrintPositionVertically(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := t.Params[0]
	denom := 180.0
	if it.State.Pins == 9 {
		denom = 216.0
	}
	it.State.CursorY -= float64(n) / denom
	return it.checkEndOfPage()
}

// checkEndOfPage implements the shared end-of-page rule: if cursor_y falls
// below the bottom threshold, finalize the current page and restart at the
// top margin.
func (it *Interpreter) checkEndOfPage() error {
	threshold := it.State.BottomMargin
	if it.State.Pins == 9 && it.State.SingleSheets {
		threshold = it.State.PrintableArea.Bottom
	}
	if it.State.CursorY >= threshold {
		return nil
	}
	return it.newPage()
}

func (it *Interpreter) newPage() error {
	if it.pageOpen {
		it.Page.EndPage()
	}
	it.Page.BeginPage(it.State.PageWidthIn*72, it.State.PageHeightIn*72)
	it.pageOpen = true
	it.State.CursorX = it.State.LeftMargin
	it.State.CursorY = it.State.TopMargin
	return nil
}

// le16 decodes a little-endian nL,nH pair.
func le16(b []byte) int {
	if len(b) < 2 {
		return 0
	}
	return int(b[1])<<8 | int(b[0])
}

// sle16 decodes a little-endian signed 16-bit nL,nH pair.
func sle16(b []byte) int {
	u := le16(b)
	if u >= 0x8000 {
		return u - 0x10000
	}
	return u
}
