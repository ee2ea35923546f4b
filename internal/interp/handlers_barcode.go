package interp

import (
	"escprender/internal/backend"
	"escprender/internal/raster"
	"escprender/internal/token"
)

// hBarcode implements ESC ( B: dispatches to the configured barcode
// renderer with the header fields decoded into backend.BarcodeParams.
func (it *Interpreter) hBarcode(t token.Token) error {
	if it.Barcodes == nil || len(t.Params) < 8 {
		return nil
	}
	header := t.Params[:8]
	data := t.Params[8:]
	flags := header[7]

	denom, minLen := 180.0, 45.0/180.0
	if it.State.Pins == 9 {
		denom, minLen = 72.0, 18.0/72.0
	}
	barLenIn := float64(le16(header[5:7])) / denom
	if barLenIn < minLen {
		barLenIn = minLen
	}
	if barLenIn > 22 {
		barLenIn = 22
	}
	if backend.Symbology(header[2]) == backend.POSTNET {
		barLenIn = 0.125
	}

	params := backend.BarcodeParams{
		Symbology:     backend.Symbology(header[2]),
		Value:         string(data),
		ModuleWidthPt: float64(header[3]) / denom * raster.PointsPerInch,
		BarHeightPt:   barLenIn * raster.PointsPerInch,
		GenerateCheck: flags&0x01 != 0,
		HumanReadable: flags&0x02 == 0,
		FlagUnderBars: flags&0x04 != 0,
		Color:         colorFor(it.State.Color),
	}

	x := it.State.CursorX * raster.PointsPerInch
	y := it.State.CursorY * raster.PointsPerInch
	if err := it.Barcodes.Render(it.Page, x, y, params); err != nil {
		return wrapBackendErr(err)
	}
	return nil
}
