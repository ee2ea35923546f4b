package interp

import "escprender/internal/raster"

// baselineOffsetIn is the vertical distance from cursor_y down to the text
// baseline; the underline stroke is drawn one point below that baseline.
func (it *Interpreter) baselineOffsetIn() float64 {
	if it.State.Pins == 9 {
		return 7.0 / 72.0
	}
	return 20.0 / 180.0
}

// SetUnderline transitions the underline attribute: turning underline on
// records the run's start; turning it off emits the stroke.
func (it *Interpreter) SetUnderline(on bool) {
	if on == it.State.Underline {
		return
	}
	if on {
		it.State.Underline = true
		it.startUnderline()
		return
	}
	it.flushUnderline()
	it.State.Underline = false
}

func (it *Interpreter) startUnderline() {
	it.State.underlineStartX = it.State.CursorX
	it.State.underlineY = it.State.CursorY - it.baselineOffsetIn()
}

// flushUnderline emits the accumulated stroke from the run's start to the
// current cursor, called on CR/LF and on the falling edge of underline.
func (it *Interpreter) flushUnderline() {
	if !it.State.Underline {
		return
	}
	x1 := it.State.underlineStartX * raster.PointsPerInch
	x2 := it.State.CursorX * raster.PointsPerInch
	// One point below the baseline, clear of the glyphs it underlines.
	y := it.State.underlineY*raster.PointsPerInch - 1
	if x2 > x1 {
		it.Page.SetColor(colorFor(it.State.Color))
		it.Page.DrawLine(x1, y, x2, y)
	}
}
