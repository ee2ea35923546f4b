// Package interp is the interpreter / state machine: it consumes the token
// stream produced by internal/token, maintains the printer state, and
// issues drawing calls against the internal/backend contracts.
package interp

import "escprender/internal/codepage"

// PrintMode is the active print quality.
type PrintMode int

const (
	Draft PrintMode = iota
	LQ
)

// Scripting selects super/subscript rendering.
type Scripting int

const (
	ScriptNone Scripting = iota
	ScriptSuper
	ScriptSub
)

// CharacterStyle selects outline/shadow text rendering (ESC q).
type CharacterStyle int

const (
	StyleNone CharacterStyle = iota
	StyleOutline
	StyleShadow
	StyleOutlineShadow
)

// TableSlot is what a character_tables[] slot currently points to: either a
// named registry codepage, or one of the two sentinels.
type TableSlot struct {
	// Sentinel is "italic", "user_defined", or "" when Name names a real
	// registered codepage.
	Sentinel string
	Name     string
}

const (
	sentinelItalic      = "italic"
	sentinelUserDefined = "user_defined"
)

// Margins holds one rectangle of the page geometry.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// State is the full printer state one job mutates. All lengths are in
// inches; the origin is bottom-left.
type State struct {
	// Page geometry.
	PageWidthIn, PageHeightIn float64
	PrintableArea             Margins
	TopMargin                 float64
	BottomMargin              float64
	LeftMargin                float64
	RightMargin               float64
	PageLengthIn              float64
	CursorX, CursorY          float64

	// Typography.
	PitchCPI                   float64
	PointSize                  float64
	ProportionalSpacing        bool
	ExtraIntercharacterSpaceIn float64
	CharacterWidthIn           float64 // HMI override; 0 means unset
	MultipointMode             bool

	// Attributes.
	Italic           bool
	Bold             bool
	Condensed        bool
	DoubleStrike     bool
	DoubleWidth      bool // single line (SO / ESC SO / DC4)
	DoubleWidthMulti bool // ESC W
	DoubleHeight     bool // ESC w
	Underline        bool
	PrintMode        PrintMode
	Scripting        Scripting
	CharacterStyle   CharacterStyle
	Color            int // 0..6

	// Character tables and encodings.
	CharacterTables      [4]TableSlot
	ActiveCharacterTable int
	InternationalCharset int

	// Tabulation, inches from left/top margin; 0 means unset.
	HorizontalTabs []float64
	VerticalTabs   []float64

	// Line spacing.
	LineSpacingIn float64

	// Graphics state.
	GraphicsMode          bool
	MicroweaveMode        bool
	VerticalResolutionIn  float64
	HorizontalResolutionIn float64
	BytesPerColumn        int
	BytesPerLine          int
	DoubleSpeedBitImage   bool
	KLYZDensities         [4]byte // K, L, Y, Z -> density index
	MovxUnitDots          int     // 1 or 8, set by MOVXDOT/MOVXBYTE

	// UpperControlCodesPrinting toggles whether 0x80-0x9F are printed as
	// characters (true, ESC 6) or treated as control codes (false, ESC 7).
	UpperControlCodesPrinting bool

	// Config-derived, constant for the job.
	Pins              int
	SingleSheets      bool
	AutomaticLinefeed bool
	DefinedUnitDenom  int // ESC ( U override; 0 means "use command default"

	// Underline run tracking: the x at which the current run started.
	underlineStartX float64
	underlineY      float64

	// Typeface is the typeface id selected by ESC k.
	Typeface int

	// savedPrintMode/forcedLQByProportional implement "in draft+
	// proportional, force LQ until proportional is released".
	savedPrintMode          PrintMode
	forcedLQByProportional  bool

	// savedActiveBeforeRAM remembers the active table slot across an ESC %
	// switch to the user-defined set, so a following ESC % 0 can restore it.
	savedActiveBeforeRAM int

	// TIFF-compressed raster sub-machine state, live only between ESC . 2 and EXIT_EX.
	TIFFHResDPI    float64
	TIFFVResDPI    float64
	TIFFBandHeight int
	TIFFHDotCount  int
	tiffAnchorX    float64
	tiffAnchorY    float64
}

// NewState builds the initial per-job state from job configuration; all
// state is instantiated at job start, nothing survives across jobs.
func NewState(pageWidthIn, pageHeightIn float64, printable Margins, pins int, singleSheets, automaticLinefeed bool) *State {
	s := &State{
		PageWidthIn:       pageWidthIn,
		PageHeightIn:      pageHeightIn,
		PrintableArea:     printable,
		Pins:              pins,
		SingleSheets:      singleSheets,
		AutomaticLinefeed: automaticLinefeed,
	}
	s.resetMargins()
	s.resetDefaults()
	return s
}

func (s *State) resetMargins() {
	s.TopMargin = s.PrintableArea.Top
	s.BottomMargin = s.PrintableArea.Bottom
	s.LeftMargin = s.PrintableArea.Left
	s.RightMargin = s.PrintableArea.Right
	s.PageLengthIn = s.PageHeightIn
	s.CursorX = s.LeftMargin
	s.CursorY = s.TopMargin
}

func (s *State) resetDefaults() {
	s.PitchCPI = 10
	s.PointSize = 10.85 // 10cpi draft's nominal point size, used only for scalable-font fallback
	s.ProportionalSpacing = false
	s.ExtraIntercharacterSpaceIn = 0
	s.CharacterWidthIn = 0
	s.MultipointMode = false

	s.Italic = false
	s.Bold = false
	s.Condensed = false
	s.DoubleStrike = false
	s.DoubleWidth = false
	s.DoubleWidthMulti = false
	s.DoubleHeight = false
	s.Underline = false
	s.PrintMode = Draft
	s.Scripting = ScriptNone
	s.CharacterStyle = StyleNone
	s.Color = 0

	s.CharacterTables = [4]TableSlot{
		{Sentinel: sentinelItalic},
		{Name: "cp437"},
		{Sentinel: sentinelUserDefined},
		{Name: "cp437"},
	}
	s.ActiveCharacterTable = 1
	s.InternationalCharset = 0

	s.HorizontalTabs = defaultHorizontalTabs(s.PitchCPI, s.ProportionalSpacing)
	s.VerticalTabs = nil

	s.LineSpacingIn = 1.0 / 6.0

	s.GraphicsMode = false
	s.MicroweaveMode = false
	s.KLYZDensities = [4]byte{0, 1, 2, 3}
	s.MovxUnitDots = 1
}

// ResetPrinter implements ESC @: NOT a full reset. Only graphics and
// microweave mode, the four table slots, the tab stops, and multipoint
// mode are touched; margins, pitch, and attributes are left alone.
func (s *State) ResetPrinter() {
	s.GraphicsMode = false
	s.MicroweaveMode = false
	s.CharacterTables = [4]TableSlot{
		{Sentinel: sentinelItalic},
		{Name: "cp437"},
		{Sentinel: sentinelUserDefined},
		{Name: "cp437"},
	}
	s.MultipointMode = false
	s.CharacterWidthIn = 0
	s.HorizontalTabs = defaultHorizontalTabs(s.PitchCPI, s.ProportionalSpacing)
	s.VerticalTabs = nil
}

// defaultHorizontalTabs builds the printer's power-on tab stops: one every
// eight characters at the current pitch.
func defaultHorizontalTabs(pitchCPI float64, proportional bool) []float64 {
	pitchIn := 1.0 / pitchCPI
	if proportional {
		pitchIn = 1.0 / 10.0
	}
	tabs := make([]float64, 32)
	for i := 1; i <= 32; i++ {
		tabs[i-1] = float64(8*i) * pitchIn
	}
	return tabs
}

// activeTableSlot returns the TableSlot currently selected by
// ActiveCharacterTable.
func (s *State) activeTableSlot() TableSlot {
	return s.CharacterTables[s.ActiveCharacterTable]
}

// resolveTable looks up the decode table for slot, consulting reg for named
// codepages and ram for the user_defined sentinel. ok is false only when a
// named codepage fails to resolve.
func (s *State) resolveTable(slot TableSlot, reg *codepage.Registry, ramTable *codepage.Table) (*codepage.Table, bool) {
	switch slot.Sentinel {
	case sentinelItalic:
		t, ok := reg.Lookup("italic")
		return t, ok
	case sentinelUserDefined:
		return ramTable, true
	}
	t, ok := reg.Lookup(slot.Name)
	return t, ok
}
