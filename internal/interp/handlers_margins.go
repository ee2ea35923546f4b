package interp

import "escprender/internal/token"

// columnWidthIn returns the width of one margin column: pitch cpi, or 1/10in
// during proportional spacing.
func (it *Interpreter) columnWidthIn() float64 {
	if it.State.ProportionalSpacing {
		return 0.1
	}
	return 1.0 / it.State.PitchCPI
}

// hSetLeftMargin implements ESC l: set left margin in columns from the
// printable left edge, CR afterwards. Rejected (left unchanged) if it would
// violate left+epsilon <= right or fall outside the printable area.
func (it *Interpreter) hSetLeftMargin(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0])
	candidate := it.State.PrintableArea.Left + float64(n)*it.columnWidthIn()
	if candidate >= it.State.RightMargin || candidate < it.State.PrintableArea.Left {
		return it.hCarriageReturn(t)
	}
	it.State.LeftMargin = candidate
	return it.hCarriageReturn(t)
}

// hSetRightMargin implements ESC Q: analogous to ESC l for the right edge.
func (it *Interpreter) hSetRightMargin(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0])
	candidate := it.State.PrintableArea.Left + float64(n)*it.columnWidthIn()
	if candidate <= it.State.LeftMargin || candidate > it.State.PrintableArea.Right {
		return it.hCarriageReturn(t)
	}
	it.State.RightMargin = candidate
	return it.hCarriageReturn(t)
}

// hSetBottomMargin implements ESC N: bottom margin on continuous paper, n
// lines of current spacing measured up from the bottom of the printable
// area. Ignored on
// single-sheet stock.
func (it *Interpreter) hSetBottomMargin(t token.Token) error {
	if it.State.SingleSheets || len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0])
	candidate := it.State.PrintableArea.Bottom + float64(n)*it.State.LineSpacingIn
	if candidate >= it.State.TopMargin {
		return nil
	}
	it.State.BottomMargin = candidate
	return nil
}

// hCancelTopBottomMargins implements ESC O: reset top and bottom margins to
// the printable area.
func (it *Interpreter) hCancelTopBottomMargins(_ token.Token) error {
	it.State.TopMargin = it.State.PrintableArea.Top
	it.State.BottomMargin = it.State.PrintableArea.Bottom
	return nil
}

// hSetPageFormat implements ESC ( c: top and bottom margins in defined
// units (default 1/360in), both measured down from the top edge of the
// page. A bottom margin that would make the printing window taller than
// 22in or than the current page length is pulled back up; the cursor is
// reset to the new top afterwards.
func (it *Interpreter) hSetPageFormat(t token.Token) error {
	if len(t.Params) < 4 {
		return nil
	}
	unit := float64(it.VerticalDefinedUnit())
	top := float64(le16(t.Params[0:2])) / unit
	bottom := float64(le16(t.Params[2:4])) / unit

	topMargin := it.State.PageHeightIn - top
	bottomMargin := it.State.PageHeightIn - bottom
	if bottomMargin >= topMargin {
		return nil
	}

	windowLength := topMargin - bottomMargin
	switch {
	case windowLength > 22:
		bottomMargin = it.State.PageHeightIn - 22
		windowLength = 22
	case windowLength > it.State.PageLengthIn:
		bottomMargin = it.State.PageHeightIn - it.State.PageLengthIn
		windowLength = topMargin - bottomMargin
	}

	it.State.TopMargin = topMargin
	it.State.BottomMargin = bottomMargin
	it.State.CursorY = it.State.TopMargin
	it.State.PageLengthIn = windowLength
	return nil
}

// hSetPageLengthDefinedUnit implements ESC ( C: page length in defined
// units (default 1/360in), clamped to 22in; cancels top/bottom margins.
func (it *Interpreter) hSetPageLengthDefinedUnit(t token.Token) error {
	if len(t.Params) < 2 {
		return nil
	}
	pl := float64(le16(t.Params)) / float64(it.VerticalDefinedUnit())
	if pl <= 0 {
		return nil
	}
	if pl > 22 {
		pl = 22
	}
	it.State.PageLengthIn = pl
	return it.hCancelTopBottomMargins(t)
}

// hSetPageLengthLines implements ESC C n: page length in lines of current
// spacing; cancels top/bottom margins.
func (it *Interpreter) hSetPageLengthLines(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0])
	if n < 1 || n > 127 {
		return nil
	}
	pl := float64(n) * it.State.LineSpacingIn
	if pl > 22 {
		pl = 22
	}
	it.State.PageLengthIn = pl
	return it.hCancelTopBottomMargins(t)
}

// hSetPageLengthInches implements ESC C NUL n: page length directly in
// inches, 1 <= n <= 22; cancels top/bottom margins.
func (it *Interpreter) hSetPageLengthInches(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0])
	if n < 1 || n > 22 {
		return nil
	}
	it.State.PageLengthIn = float64(n)
	return it.hCancelTopBottomMargins(t)
}
