// Package backend defines the trait boundaries the interpreter draws
// against: a page-drawing surface, a font resolver, and a barcode
// renderer. The core never talks to a PDF library directly; it only calls
// these contracts.
package backend

// RenderMode selects how a text run's glyphs are painted, mirroring the PDF
// text rendering modes (fill, stroke, fill+stroke) used by outline/shadow
// character styles.
type RenderMode int

const (
	RenderFill RenderMode = iota
	RenderStroke
	RenderFillStroke
)

// Color is an RGB triple in the 0-1 range, already resolved from the
// printer's 0..6 color enumeration.
type Color struct {
	R, G, B float64
}

// Page is the page-drawing surface contract. All coordinates are in PDF
// points (1/72 in), origin bottom-left, matching the interpreter's
// inch-based geometry scaled by 72.
type Page interface {
	BeginPage(widthPt, heightPt float64)
	SetFont(familyName string, sizePt float64)
	SetColor(c Color)
	SetLineWidth(pt float64)
	DrawTextRun(xPt, yPt float64, text string, charSpacePt, hScalePct, risePt float64, mode RenderMode)
	DrawLine(x1, y1, x2, y2 float64)
	FillCircle(x, y, r float64)
	FillRect(x, y, w, h float64)
	EndPage()
	Finalize() error
}

// ResolvedFont is what the font resolver hands back for one (typeface,
// condensed, italic, bold) lookup.
type ResolvedFont struct {
	// Path is a font file on the host filesystem, or "" when BuiltIn is set.
	Path string
	// BuiltIn names a PDF-standard font ("Times-Roman", "Courier", ...) to
	// use when no scalable font file resolves.
	BuiltIn string
	// FamilyName is what gets passed to Page.SetFont.
	FamilyName string
}

// FontResolver maps a requested typeface + attribute set to a concrete font.
type FontResolver interface {
	Resolve(familySubstring string, condensed, italic, bold bool, searchPath string) (ResolvedFont, error)
	// AdvanceWidth returns the measured glyph advance, in inches, for r at
	// the given point size under the resolved font. Used by the
	// text-drawing cursor advance.
	AdvanceWidth(font ResolvedFont, r rune, pointSize float64) float64
}

// Symbology identifies which barcode family to render.
type Symbology int

const (
	EAN13 Symbology = iota
	EAN8
	Interleaved2of5
	UPCA
	UPCE
	Code39
	Code128
	POSTNET
)

// BarcodeParams bundles the ESC ( B header fields the interpreter has
// already parsed.
type BarcodeParams struct {
	Symbology     Symbology
	Value         string
	BarHeightPt   float64
	ModuleWidthPt float64
	HumanReadable bool
	GenerateCheck bool
	FlagUnderBars bool
	Color         Color
}

// BarcodeRenderer draws a barcode anchored at (x,y).
type BarcodeRenderer interface {
	Render(page Page, x, y float64, params BarcodeParams) error
}
