package interp

import (
	"testing"

	"escprender/internal/backend"
	"escprender/internal/codepage"
	"escprender/internal/logging"
	"escprender/internal/metrics"
	"escprender/internal/ramchars"
	"escprender/internal/raster"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// stubFonts is a minimal backend.FontResolver returning a fixed advance, so
// cursor-position assertions in these tests don't depend on real font
// metrics.
type stubFonts struct{ advanceIn float64 }

func (f *stubFonts) Resolve(family string, condensed, italic, bold bool, search string) (backend.ResolvedFont, error) {
	return backend.ResolvedFont{BuiltIn: "Courier", FamilyName: "Courier"}, nil
}

func (f *stubFonts) AdvanceWidth(font backend.ResolvedFont, r rune, pointSize float64) float64 {
	return f.advanceIn
}

func newTestInterpreter(t *testing.T) (*Interpreter, *backend.Recording) {
	t.Helper()
	state := NewState(8.5, 11, Margins{Top: 11, Bottom: 0, Left: 0, Right: 8.5}, 24, true, false)
	reg := codepage.NewRegistry()
	ram, err := ramchars.NewStore(t.TempDir() + "/ram.json")
	if err != nil {
		t.Fatalf("ramchars.NewStore: %v", err)
	}
	page := &backend.Recording{}
	log := logging.NewJobLogger(zap.NewNop(), "test")
	mreg := metrics.NewRegistry(prometheus.NewRegistry())

	it := New(state, reg, ram, page, &stubFonts{advanceIn: 0.1}, nil, log, mreg, raster.RendererDots)
	return it, page
}

func TestDefaultTextAndTabs(t *testing.T) {
	it, page := newTestInterpreter(t)

	// ESC @, HT, 'H', HT, 'H': default tab stops sit every 0.8in, so the
	// two glyphs land at 0.8in and 1.6in from the left margin.
	data := []byte{0x1B, 0x40, 0x09, 0x48, 0x09, 0x48}
	if err := it.Run(data); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var got []backend.Call
	for _, c := range page.Calls {
		if c.Name == "draw_text_run" {
			got = append(got, c)
		}
	}

	baselineY := (it.State.TopMargin - 20.0/180.0) * 72
	textRun := func(xIn float64) backend.Call {
		return backend.Call{Name: "draw_text_run", Args: []interface{}{
			(it.State.LeftMargin + xIn) * 72, baselineY, "H", 0.0, 100.0, 0.0, backend.RenderFill,
		}}
	}
	want := []backend.Call{textRun(0.8), textRun(1.6)}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("draw_text_run calls mismatch (-want +got):\n%s", diff)
	}
}

func TestBitImageAdjacencySuppression(t *testing.T) {
	it, page := newTestInterpreter(t)

	// ESC @, ESC * 2 2 0 0x7F 0x7F.
	data := []byte{0x1B, 0x40, 0x1B, 0x2A, 0x02, 0x02, 0x00, 0x7F, 0x7F}
	startX := it.State.CursorX
	if err := it.Run(data); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantX := startX + 2.0/120.0
	if !almostEqual(it.State.CursorX, wantX) {
		t.Errorf("cursor_x after bit image = %v, want %v", it.State.CursorX, wantX)
	}

	dots := 0
	for _, c := range page.Calls {
		if c.Name == "fill_circle" {
			dots++
		}
	}
	// 0x7F = 0111_1111, 7 dots set in column 1; column 2 is AND'd with NOT
	// column 1 so every bit is suppressed.
	if dots != 7 {
		t.Errorf("dots drawn = %d, want 7 (adjacency suppression of column 2)", dots)
	}
}

func TestTIFFModeXferProducesOneRow(t *testing.T) {
	it, page := newTestInterpreter(t)

	startX := it.State.LeftMargin
	startY := it.State.CursorY

	// ESC @, ESC ( G 1 0 1 (enter graphics mode),
	// ESC . 2 0x14 0x14 1 0 0, XFER 0x2A (F=0, #BC=10: direct byte
	// count, no length byte), 10 raster bytes all set, EXIT.
	raster10 := make([]byte, 10)
	for i := range raster10 {
		raster10[i] = 0xFF
	}
	data := []byte{0x1B, 0x40, 0x1B, 0x28, 0x47, 0x01, 0x00, 0x01}
	data = append(data, 0x1B, 0x2E, 0x02, 0x14, 0x14, 0x01, 0x00, 0x00)
	data = append(data, 0x2A) // XFER, F=0, #BC=10
	data = append(data, raster10...)
	data = append(data, 0xE3) // EXIT

	if err := it.Run(data); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantX := startX + 80.0/180.0
	if !almostEqual(it.State.CursorX, wantX) {
		t.Errorf("cursor_x after EXIT = %v, want %v", it.State.CursorX, wantX)
	}
	if !almostEqual(it.State.CursorY, startY) {
		t.Errorf("cursor_y changed across TIFF XFER, want unchanged: got %v want %v", it.State.CursorY, startY)
	}

	dots := 0
	for _, c := range page.Calls {
		if c.Name == "fill_circle" || c.Name == "fill_rect" {
			dots++
		}
	}
	if dots != 80 {
		t.Errorf("dots drawn = %d, want 80", dots)
	}
}

func TestInternationalOverlayFrance(t *testing.T) {
	it, _ := newTestInterpreter(t)

	table, ok := it.Registry.Lookup("cp437")
	if !ok {
		t.Fatal("cp437 not registered")
	}
	overlaid := codepage.Overlay(table, 1) // France

	if got := overlaid.Decode(0x40); got != "à" {
		t.Errorf("0x40 under France overlay = %q, want \"à\"", got)
	}
	if got := overlaid.Decode(0x5B); got != "°" {
		t.Errorf("0x5B under France overlay = %q, want \"°\"", got)
	}
	if got, want := overlaid.Decode('A'), table.Decode('A'); got != want {
		t.Errorf("non-overlay position changed: got %q, want %q", got, want)
	}
}

func TestMarginClamp(t *testing.T) {
	it, _ := newTestInterpreter(t)

	// ESC Q 0x7F at default 1/10 pitch and 8.5in page: 127 columns * 0.1in =
	// 12.7in from the printable left edge, past the 8.5in right edge, so it
	// must be rejected and the margin retained.
	before := it.State.RightMargin
	if err := it.Run([]byte{0x1B, 0x51, 0x7F}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if it.State.RightMargin != before {
		t.Errorf("right margin changed to %v despite being past the printable edge, want unchanged %v", it.State.RightMargin, before)
	}
}

func TestResetPrinterRestoresTableSlotsAndGraphicsMode(t *testing.T) {
	it, _ := newTestInterpreter(t)

	it.State.GraphicsMode = true
	it.State.MicroweaveMode = true
	it.State.MultipointMode = true
	it.State.CharacterTables[1] = TableSlot{Name: "cp850"}

	it.State.ResetPrinter()

	if it.State.GraphicsMode || it.State.MicroweaveMode || it.State.MultipointMode {
		t.Error("ESC @ must clear graphics_mode, microweave_mode and multipoint_mode")
	}
	if it.State.CharacterTables[1].Name != "cp437" {
		t.Errorf("slot 1 after ESC @ = %+v, want default cp437", it.State.CharacterTables[1])
	}
}

func TestUnderlineSpansStartToStop(t *testing.T) {
	it, page := newTestInterpreter(t)

	// Underline on, advance one inch, underline off: the falling edge must
	// stroke exactly that inch, one point below the baseline.
	it.SetUnderline(true)
	it.State.CursorX += 1.0
	it.SetUnderline(false)

	y := (it.State.CursorY-20.0/180.0)*72 - 1
	want := []backend.Call{
		{Name: "set_color", Args: []interface{}{backend.Color{}}},
		{Name: "draw_line", Args: []interface{}{it.State.LeftMargin * 72, y, (it.State.LeftMargin + 1.0) * 72, y}},
	}
	if diff := cmp.Diff(want, page.Calls, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("underline calls mismatch (-want +got):\n%s", diff)
	}
}

func TestTiffMovArgSignExtension(t *testing.T) {
	cases := []struct {
		name   string
		params []byte
		signed bool
		want   int
	}{
		{"f0 positive", []byte{0x43, 0x03}, true, 3},
		{"f0 negative 4-bit", []byte{0x4F, 0x0F}, true, -1},
		{"f1 one byte negative", []byte{0x51, 0xFF}, true, -1},
		{"f1 two bytes negative", []byte{0x52, 0xFE, 0xFF}, true, -2},
		{"unsigned keeps magnitude", []byte{0x71, 0xFF}, false, 255},
	}
	for _, c := range cases {
		if got := tiffMovArg(c.params, c.signed); got != c.want {
			t.Errorf("%s: tiffMovArg = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestSettingsChangeInvalidatesRAMCharacters(t *testing.T) {
	it, _ := newTestInterpreter(t)

	// ESC & defines code 0x41 with a 3-dot-wide glyph (triple 0,3,0 then
	// 9 dot bytes), then ESC x 1 switches to LQ, changing the settings
	// fingerprint.
	data := []byte{0x1B, 0x26, 0x00, 0x41, 0x41, 0x00, 0x03, 0x00}
	data = append(data, make([]byte, 9)...)
	if err := it.Run(data); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if it.RAM.Empty() {
		t.Fatal("ESC & should leave a defined RAM character")
	}

	if err := it.Run([]byte{0x1B, 0x78, 0x01}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !it.RAM.Empty() {
		t.Error("print-quality change must invalidate the RAM character table")
	}
}

func almostEqual(a, b float64) bool {
	const eps = 1e-6
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
