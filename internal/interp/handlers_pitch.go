package interp

import "escprender/internal/token"

func (it *Interpreter) hSelect10cpi(_ token.Token) error {
	it.State.PitchCPI = 10
	it.cancelMultipoint()
	return nil
}

func (it *Interpreter) hSelect12cpi(_ token.Token) error {
	it.State.PitchCPI = 12
	it.cancelMultipoint()
	return nil
}

func (it *Interpreter) hSelect15cpi(_ token.Token) error {
	it.State.PitchCPI = 15
	it.cancelMultipoint()
	return nil
}

// hSwitchProportionalMode implements ESC p n: enable/disable proportional
// spacing. Entering proportional while in draft forces LQ until
// proportional is released, then restores the prior mode.
func (it *Interpreter) hSwitchProportionalMode(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	on := t.Params[0]&1 != 0
	it.cancelMultipoint()

	if on {
		if !it.State.ProportionalSpacing && it.State.PrintMode == Draft {
			it.State.savedPrintMode = it.State.PrintMode
			it.State.PrintMode = LQ
			it.State.forcedLQByProportional = true
		}
		it.State.ProportionalSpacing = true
		it.syncRAMSettings()
		return nil
	}

	it.State.ProportionalSpacing = false
	if it.State.forcedLQByProportional {
		it.State.PrintMode = it.State.savedPrintMode
		it.State.forcedLQByProportional = false
	}
	it.syncRAMSettings()
	return nil
}

var allowedPointSizes = []float64{8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32}

func nearestAllowedPointSize(v float64) float64 {
	best := allowedPointSizes[0]
	bestDist := abs2(v - best)
	for _, p := range allowedPointSizes[1:] {
		d := abs2(v - p)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func abs2(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// hSelectFontByPitchAndPoint implements ESC X m nL nH: enters multipoint
// (scalable-font) mode. m=1 sets proportional, m>=5 sets pitch=m/360;
// point size is (nH<<8|nL)/2, snapped to the nearest allowed size.
func (it *Interpreter) hSelectFontByPitchAndPoint(t token.Token) error {
	if len(t.Params) < 3 {
		return nil
	}
	m, nL, nH := t.Params[0], t.Params[1], t.Params[2]

	it.State.MultipointMode = true
	if m == 1 {
		it.State.ProportionalSpacing = true
		it.syncRAMSettings()
	} else if m >= 5 {
		it.State.PitchCPI = 360.0 / float64(m)
	}

	raw := float64(int(nH)<<8|int(nL)) / 2.0
	if raw > 0 {
		it.State.PointSize = nearestAllowedPointSize(raw)
	}
	return nil
}

// hSetHorizontalMotionIndex implements ESC c nL nH: HMI = ((nH<<8)|nL)/360,
// clamped to 3in; cancels extra_intercharacter_space.
func (it *Interpreter) hSetHorizontalMotionIndex(t token.Token) error {
	if len(t.Params) < 2 {
		return nil
	}
	hmi := float64(le16(t.Params)) / 360.0
	if hmi > 3 {
		hmi = 3
	}
	it.State.CharacterWidthIn = hmi
	it.State.ExtraIntercharacterSpaceIn = 0
	return nil
}

// hSetIntercharacterSpace implements ESC SP n: n/180 in LQ mode, n/120 in
// draft mode or on a 9-pin printer.
func (it *Interpreter) hSetIntercharacterSpace(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	denom := 180.0
	if it.State.PrintMode == Draft || it.State.Pins == 9 {
		denom = 120.0
	}
	it.State.ExtraIntercharacterSpaceIn = float64(t.Params[0]) / denom
	return nil
}

// hSelectTypeface implements ESC k n: selects the typeface id used by the
// font resolver.
func (it *Interpreter) hSelectTypeface(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	it.State.Typeface = int(t.Params[0])
	return nil
}

// hSelectLetterQualityOrDraft implements ESC x n: 0 selects draft, 1
// selects LQ. The argument may arrive as the byte value or its ASCII digit.
func (it *Interpreter) hSelectLetterQualityOrDraft(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	if t.Params[0]&1 == 0 {
		it.State.PrintMode = Draft
	} else {
		it.State.PrintMode = LQ
	}
	it.State.forcedLQByProportional = false
	it.syncRAMSettings()
	return nil
}
