package interp

import "escprender/internal/token"

// hSetHorizontalTabs implements ESC D: an ordered list of tab stops, each
// n columns of the current pitch from the left margin. ESC D NUL clears
// all. Tabs persist even when they fall outside the current margins.
func (it *Interpreter) hSetHorizontalTabs(t token.Token) error {
	if len(t.Params) == 0 || t.Params[0] == 0 {
		it.State.HorizontalTabs = nil
		return nil
	}

	colWidth := 1.0 / it.State.PitchCPI
	var tabs []float64
	for i, b := range t.Params {
		if b == 0 {
			break
		}
		if i > 0 && b <= t.Params[i-1] {
			break
		}
		tabs = append(tabs, float64(b)*colWidth)
	}
	it.State.HorizontalTabs = tabs
	return nil
}

// hSetVerticalTabs implements ESC B: an ordered list of tab stops, each n
// lines of the current spacing from the top margin.
func (it *Interpreter) hSetVerticalTabs(t token.Token) error {
	if len(t.Params) == 0 || t.Params[0] == 0 {
		it.State.VerticalTabs = nil
		return nil
	}

	var tabs []float64
	for i, b := range t.Params {
		if b == 0 {
			break
		}
		if i > 0 && b <= t.Params[i-1] {
			break
		}
		tabs = append(tabs, float64(b)*it.State.LineSpacingIn)
	}
	it.State.VerticalTabs = tabs
	return nil
}
