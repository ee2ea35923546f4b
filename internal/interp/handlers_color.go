package interp

import "escprender/internal/token"

// hSetPrintingColor implements ESC r n: select one of the seven-color ribbon
// positions. Out-of-range values are ignored.
func (it *Interpreter) hSetPrintingColor(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0])
	if n < 0 || n > 6 {
		return nil
	}
	if it.State.GraphicsMode && n != 0 && n != 1 && n != 2 && n != 4 {
		// Raster printing only has CMYK ink; the extended ribbon colors
		// exist for text and bit-image output.
		return nil
	}
	it.State.Color = n
	return nil
}
