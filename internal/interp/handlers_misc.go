package interp

import "escprender/internal/token"

// hBeeper implements BEL: audible only on physical hardware, a no-op here.
func (it *Interpreter) hBeeper(_ token.Token) error { return nil }

// hCancelLine implements CAN: discards the current line's buffered output on
// real hardware. There is no print buffer to unwind in a streaming
// interpreter, so this is a no-op.
func (it *Interpreter) hCancelLine(_ token.Token) error { return nil }

// hDeleteLastCharInBuffer implements DEL: same rationale as hCancelLine.
func (it *Interpreter) hDeleteLastCharInBuffer(_ token.Token) error { return nil }
