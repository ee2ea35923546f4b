// Package barcode implements the default BarcodeRenderer, built on
// github.com/boombuler/barcode. The library only speaks raw 1-bit images;
// this package turns that into the vector FillRect calls the page backend
// actually understands.
package barcode

import (
	"fmt"
	"image/color"

	gobarcode "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"

	"escprender/internal/backend"
)

// DefaultRenderer is the built-in BarcodeRenderer wired by pkg/escprender
// when the caller does not supply its own.
type DefaultRenderer struct{}

// New returns the default barcode renderer.
func New() *DefaultRenderer { return &DefaultRenderer{} }

func (r *DefaultRenderer) Render(page backend.Page, x, y float64, params backend.BarcodeParams) error {
	if params.Symbology == backend.UPCE {
		return fmt.Errorf("barcode: UPC-E is not supported")
	}
	if params.Symbology == backend.POSTNET {
		return r.renderPOSTNET(page, x, y, params)
	}

	bc, err := encode(params)
	if err != nil {
		return fmt.Errorf("barcode: %w", err)
	}

	page.SetColor(params.Color)
	moduleWidth := params.ModuleWidthPt
	if moduleWidth <= 0 {
		moduleWidth = 1
	}

	bounds := bc.Bounds()
	for col := bounds.Min.X; col < bounds.Max.X; col++ {
		if !isBlack(bc.At(col, bounds.Min.Y)) {
			continue
		}
		cx := x + float64(col-bounds.Min.X)*moduleWidth
		page.FillRect(cx, y, moduleWidth, params.BarHeightPt)
	}

	if params.HumanReadable {
		textY := y - 10
		width := float64(bounds.Dx()) * moduleWidth
		page.DrawTextRun(x+width/2-float64(len(params.Value))*3, textY, params.Value, 0, 100, 0, backend.RenderFill)
	}

	return nil
}

func encode(params backend.BarcodeParams) (gobarcode.Barcode, error) {
	switch params.Symbology {
	case backend.EAN13, backend.EAN8, backend.UPCA:
		return ean.Encode(params.Value)
	case backend.Interleaved2of5:
		return twooffive.Encode(params.Value, true)
	case backend.Code39:
		return code39.Encode(params.Value, params.GenerateCheck, false)
	case backend.Code128:
		return code128.Encode(params.Value)
	}
	return nil, fmt.Errorf("unsupported symbology %d", params.Symbology)
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return (r + g + b) < (3 * 0x8000)
}

// postnetPatterns maps each digit 0-9 to its 5-bar full(true)/half(false)
// pattern (2-of-5 code, the two full bars carry the information; the check
// digit pattern 11000 maps to 0). Encoded by table here since
// boombuler/barcode does not ship a POSTNET encoder.
var postnetPatterns = map[rune][5]bool{
	'0': {true, true, false, false, false},
	'1': {false, false, false, true, true},
	'2': {false, false, true, false, true},
	'3': {false, false, true, true, false},
	'4': {false, true, false, false, true},
	'5': {false, true, false, true, false},
	'6': {false, true, true, false, false},
	'7': {true, false, false, false, true},
	'8': {true, false, false, true, false},
	'9': {true, false, true, false, false},
}

func (r *DefaultRenderer) renderPOSTNET(page backend.Page, x, y float64, params backend.BarcodeParams) error {
	const (
		fullHeight = 0.125 * 72 // POSTNET full bar is fixed at 0.125in
		halfHeight = 0.050 * 72 // USPS short bar height
		barWidth   = 1.0
		barGap     = 1.5
	)

	page.SetColor(params.Color)

	sum := 0
	col := x
	draw := func(full bool) {
		h := halfHeight
		if full {
			h = fullHeight
		}
		page.FillRect(col, y, barWidth, h)
		col += barWidth + barGap
	}

	draw(true) // leading frame bar
	for _, ch := range params.Value {
		pattern, ok := postnetPatterns[ch]
		if !ok {
			continue
		}
		for _, full := range pattern {
			draw(full)
		}
		sum += int(ch - '0')
	}

	if params.GenerateCheck {
		check := (10 - sum%10) % 10
		checkRune := rune('0' + check)
		if pattern, ok := postnetPatterns[checkRune]; ok {
			for _, full := range pattern {
				draw(full)
			}
		}
	}
	draw(true) // trailing frame bar

	return nil
}
