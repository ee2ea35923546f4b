// Package raster converts bit-image and raster-graphics command payloads
// into individual dot draw calls at the correct (x,y) in page units.
// BitImageColumns returns the advanced cursor_x; RasterRows and TIFFRow
// return nothing, and their callers advance cursor_x themselves.
package raster

import "escprender/internal/backend"

// PointsPerInch converts inches to PDF points, the unit every backend call
// is made in.
const PointsPerInch = 72.0

// Renderer selects how a set dot is painted.
type Renderer int

const (
	RendererDots Renderer = iota
	RendererRectangles
)

// Dot draws a single set bit at the given page, in inches, converting to
// points and dispatching to FillCircle or FillRect per the configured
// renderer.
func Dot(page backend.Page, renderer Renderer, xIn, yIn, hResolutionIn float64) {
	x := xIn * PointsPerInch
	y := yIn * PointsPerInch
	side := hResolutionIn * PointsPerInch
	switch renderer {
	case RendererRectangles:
		page.FillRect(x, y, side, side)
	default:
		page.FillCircle(x, y, side/2)
	}
}

// BitImageColumns renders ESC * / ESC K,L,Y,Z / ESC ^ payloads: data is
// bytesPerColumn-wide big-endian columns, MSB pin 0. When doubleSpeed is
// set, a bit in a column is suppressed if the same bit was set in the
// previous column.
//
// Returns the new cursor_x (cursorX advanced by hResolutionIn per column).
func BitImageColumns(page backend.Page, renderer Renderer, data []byte, bytesPerColumn int, cursorX, cursorY, hResolutionIn, vResolutionIn float64, doubleSpeed bool) float64 {
	pins := bytesPerColumn * 8
	var prevBits []bool

	for col := 0; col+bytesPerColumn <= len(data); col += bytesPerColumn {
		bits := make([]bool, pins)
		for i := 0; i < bytesPerColumn; i++ {
			b := data[col+i]
			for bit := 0; bit < 8; bit++ {
				pin := i*8 + bit
				bits[pin] = b&(0x80>>uint(bit)) != 0
			}
		}

		for pin := 0; pin < pins; pin++ {
			set := bits[pin]
			if doubleSpeed && prevBits != nil && prevBits[pin] {
				set = false
			}
			if set {
				y := cursorY - float64(pin)*vResolutionIn
				Dot(page, renderer, cursorX, y, hResolutionIn)
			}
		}

		prevBits = bits
		cursorX += hResolutionIn
	}

	return cursorX
}

// RasterRows renders ESC . 0/1 payloads: rows top-to-bottom, columns
// left-to-right, one bit per dot, bandHeight rows of ceil(hDotCount/8)
// bytes each. Bits beyond hDotCount in a row's last byte are ignored.
func RasterRows(page backend.Page, renderer Renderer, data []byte, bandHeight, hDotCount int, cursorX, cursorY, hResolutionIn, vResolutionIn float64) {
	rowBytes := (hDotCount + 7) / 8

	for row := 0; row < bandHeight; row++ {
		base := row * rowBytes
		if base+rowBytes > len(data) {
			break
		}
		y := cursorY - float64(row)*vResolutionIn
		for dot := 0; dot < hDotCount; dot++ {
			byteIdx := base + dot/8
			bitIdx := uint(dot % 8)
			if data[byteIdx]&(0x80>>bitIdx) != 0 {
				x := cursorX + float64(dot)*hResolutionIn
				Dot(page, renderer, x, y, hResolutionIn)
			}
		}
	}
}

// TIFFRow renders one decompressed row from the TIFF-compressed-mode XFER
// command: a single-row, left-to-right bit pattern printed at the current
// color and position.
func TIFFRow(page backend.Page, renderer Renderer, data []byte, cursorX, cursorY, hResolutionIn float64) {
	for byteIdx, b := range data {
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>uint(bit)) != 0 {
				dot := byteIdx*8 + bit
				x := cursorX + float64(dot)*hResolutionIn
				Dot(page, renderer, x, cursorY, hResolutionIn)
			}
		}
	}
}
