package interp

import "escprender/internal/token"

// Pins implements token.StateQuery.
func (it *Interpreter) Pins() int { return it.State.Pins }

// Draft implements token.StateQuery.
func (it *Interpreter) Draft() bool { return it.State.PrintMode == Draft }

// HorizontalDefinedUnit implements token.StateQuery: the denominator set by
// ESC ( U, or 60 (the command-specific default for ESC $) when none has
// been set. 9-pin printers fix it at 60 regardless.
func (it *Interpreter) HorizontalDefinedUnit() int {
	if it.State.Pins == 9 {
		return 60
	}
	if it.State.DefinedUnitDenom != 0 {
		return it.State.DefinedUnitDenom
	}
	return 60
}

// VerticalDefinedUnit returns the denominator set by ESC ( U, or 360, the
// default for the vertical-motion and page-format commands.
func (it *Interpreter) VerticalDefinedUnit() int {
	if it.State.DefinedUnitDenom != 0 {
		return it.State.DefinedUnitDenom
	}
	return 360
}

// KLYZBytesPerColumn implements token.StateQuery: the column byte width of
// the density currently assigned to shorthand letter K, L, Y, or Z.
func (it *Interpreter) KLYZBytesPerColumn(letter byte) int {
	idx, ok := klyzLetterIndex(letter)
	if !ok {
		return 1
	}
	bpc, ok := token.BitImageBytesPerColumn(it.State.KLYZDensities[idx])
	if !ok {
		return 1
	}
	return bpc
}
