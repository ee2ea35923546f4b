package interp

import "escprender/internal/token"

func (it *Interpreter) hSetItalic(_ token.Token) error   { it.State.Italic = true; return nil }
func (it *Interpreter) hUnsetItalic(_ token.Token) error { it.State.Italic = false; return nil }
func (it *Interpreter) hSetBold(_ token.Token) error     { it.State.Bold = true; return nil }
func (it *Interpreter) hUnsetBold(_ token.Token) error   { it.State.Bold = false; return nil }

// hSetDoubleStrikePrinting implements ESC G: rendered identically to bold,
// tracked as its own attribute since it is independently cancellable
// (ESC H).
func (it *Interpreter) hSetDoubleStrikePrinting(_ token.Token) error {
	it.State.DoubleStrike = true
	return nil
}

func (it *Interpreter) hUnsetDoubleStrikePrinting(_ token.Token) error {
	it.State.DoubleStrike = false
	return nil
}

// hSwitchUnderline implements ESC - n: bit0 selects on/off, emitted through
// the explicit setter so the stroke-on-falling-edge contract runs in one
// place.
func (it *Interpreter) hSwitchUnderline(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	it.SetUnderline(t.Params[0]&1 != 0)
	return nil
}

func (it *Interpreter) hSelectCondensedPrinting(_ token.Token) error {
	it.State.Condensed = true
	return nil
}

func (it *Interpreter) hUnsetCondensedPrinting(_ token.Token) error {
	it.State.Condensed = false
	return nil
}

func (it *Interpreter) hSelectDoubleWidthPrinting(_ token.Token) error {
	it.State.DoubleWidth = true
	return nil
}

func (it *Interpreter) hUnsetDoubleWidthPrinting(_ token.Token) error {
	it.State.DoubleWidth = false
	return nil
}

// hSwitchDoubleWidthPrinting implements ESC W n: multi-line double width.
func (it *Interpreter) hSwitchDoubleWidthPrinting(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	it.State.DoubleWidthMulti = t.Params[0]&1 != 0
	return nil
}

// hSwitchDoubleHeightPrinting implements ESC w n: doubles point_size while
// active.
func (it *Interpreter) hSwitchDoubleHeightPrinting(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	on := t.Params[0]&1 != 0
	if on && !it.State.DoubleHeight {
		it.State.PointSize *= 2
	}
	if !on && it.State.DoubleHeight {
		it.State.PointSize /= 2
	}
	it.State.DoubleHeight = on
	return nil
}

// hSetScriptPrinting implements ESC S n: 0 superscript, 1 subscript. The
// argument may arrive as the byte value or its ASCII digit.
func (it *Interpreter) hSetScriptPrinting(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	if t.Params[0]&1 == 0 {
		it.State.Scripting = ScriptSuper
	} else {
		it.State.Scripting = ScriptSub
	}
	it.syncRAMSettings()
	return nil
}

func (it *Interpreter) hUnsetScriptPrinting(_ token.Token) error {
	it.State.Scripting = ScriptNone
	it.syncRAMSettings()
	return nil
}

// hSelectCharacterStyle implements ESC q n: 0 none, 1 outline, 2 shadow,
// 3 outline+shadow.
func (it *Interpreter) hSelectCharacterStyle(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	switch t.Params[0] {
	case 0:
		it.State.CharacterStyle = StyleNone
	case 1:
		it.State.CharacterStyle = StyleOutline
	case 2:
		it.State.CharacterStyle = StyleShadow
	case 3:
		it.State.CharacterStyle = StyleOutlineShadow
	}
	return nil
}

// hMasterSelect implements ESC ! n: a bitmask that sets pitch, proportional,
// condensed, bold, double-strike, double-width-multi, italic, underline in
// one shot, canceling any attribute whose bit is not set. Also cancels
// multipoint mode.
func (it *Interpreter) hMasterSelect(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := t.Params[0]

	if n&0x01 != 0 {
		it.State.PitchCPI = 12
	} else {
		it.State.PitchCPI = 10
	}
	it.State.ProportionalSpacing = n&0x02 != 0
	it.State.Condensed = n&0x04 != 0
	it.State.Bold = n&0x08 != 0
	it.State.DoubleStrike = n&0x10 != 0
	it.State.DoubleWidthMulti = n&0x20 != 0
	it.State.Italic = n&0x40 != 0
	it.SetUnderline(n&0x80 != 0)

	it.cancelMultipoint()
	it.syncRAMSettings()
	return nil
}

func (it *Interpreter) hSetUpperControlCodes(_ token.Token) error {
	it.State.UpperControlCodesPrinting = true
	return nil
}

func (it *Interpreter) hUnsetUpperControlCodes(_ token.Token) error {
	it.State.UpperControlCodesPrinting = false
	return nil
}
