package token

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuery struct{}

func (fakeQuery) Pins() int                  { return 0 }
func (fakeQuery) Draft() bool                { return false }
func (fakeQuery) HorizontalDefinedUnit() int { return 60 }

func (fakeQuery) KLYZBytesPerColumn(byte) int { return 1 }

func collect(t *testing.T, data []byte) []Token {
	t.Helper()
	tok := New(data, fakeQuery{})
	var out []Token
	for {
		tt, err := tok.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, tt)
	}
	return out
}

func TestTextRun(t *testing.T) {
	toks := collect(t, []byte("HELLO"))
	require.Len(t, toks, 1)
	assert.Equal(t, "text", toks[0].Command)
	assert.Equal(t, []byte("HELLO"), toks[0].Params)
}

func TestTextRunStopsAtControl(t *testing.T) {
	toks := collect(t, []byte("AB\rCD"))
	require.Len(t, toks, 3)
	assert.Equal(t, "text", toks[0].Command)
	assert.Equal(t, []byte("AB"), toks[0].Params)
	assert.Equal(t, "carriage_return", toks[1].Command)
	assert.Equal(t, "text", toks[2].Command)
}

func TestResetPrinter(t *testing.T) {
	toks := collect(t, []byte{0x1B, '@'})
	require.Len(t, toks, 1)
	assert.Equal(t, "reset_printer", toks[0].Command)
}

func TestFixedParamEscape(t *testing.T) {
	toks := collect(t, []byte{0x1B, 'l', 0x05})
	require.Len(t, toks, 1)
	assert.Equal(t, "set_left_margin", toks[0].Command)
	assert.Equal(t, []byte{0x05}, toks[0].Params)
}

func TestNulTerminatedTabs(t *testing.T) {
	toks := collect(t, []byte{0x1B, 'D', 5, 10, 15, 0})
	require.Len(t, toks, 1)
	assert.Equal(t, "set_horizontal_tabs", toks[0].Command)
	assert.Equal(t, []byte{5, 10, 15, 0}, toks[0].Params)
}

func TestPageLengthLinesVsInches(t *testing.T) {
	toks := collect(t, []byte{0x1B, 'C', 10})
	require.Len(t, toks, 1)
	assert.Equal(t, "set_page_length_lines", toks[0].Command)

	toks = collect(t, []byte{0x1B, 'C', 0, 5})
	require.Len(t, toks, 1)
	assert.Equal(t, "set_page_length_inches", toks[0].Command)
}

func TestBitImageHeaderDescribed(t *testing.T) {
	data := []byte{0x1B, '*', 0, 2, 0, 0xAA, 0xBB} // density 0 => 1 byte/col, 2 cols
	toks := collect(t, data)
	require.Len(t, toks, 1)
	assert.Equal(t, "select_bit_image", toks[0].Command)
	assert.Equal(t, []byte{0, 2, 0, 0xAA, 0xBB}, toks[0].Params)
}

func TestParenFixedAssignCharacterTable(t *testing.T) {
	data := []byte{0x1B, '(', 't', 0x03, 0x00, 1, 2, 3}
	toks := collect(t, data)
	require.Len(t, toks, 1)
	assert.Equal(t, "assign_character_table", toks[0].Command)
	assert.Equal(t, []byte{1, 2, 3}, toks[0].Params)
}

func TestRasterGraphicsRaw(t *testing.T) {
	// c=0 (raw), v=20, h=20, m=1, nL=8,nH=0 => 1 row, ceil(8/8)=1 byte
	data := []byte{0x1B, '.', 0, 20, 20, 1, 8, 0, 0xFF}
	toks := collect(t, data)
	require.Len(t, toks, 1)
	assert.Equal(t, "print_raster_graphics", toks[0].Command)
	assert.Equal(t, byte(0xFF), toks[0].Params[len(toks[0].Params)-1])
}

func TestTIFFSubmodeRoundTrip(t *testing.T) {
	// Enter TIFF mode, then a MOVX with F=0 #BC=3, then EXIT.
	data := []byte{
		0x1B, '.', 2, 20, 20, 1, 0x00, 0x00, // enter tiff
		0x43,                                 // MOVX header byte (0x40|3), F=0
		0xE3,                                 // EXIT
	}
	toks := collect(t, data)
	require.Len(t, toks, 3)
	assert.Equal(t, "print_tiff_raster_graphics", toks[0].Command)
	assert.Equal(t, "set_relative_horizontal_position", toks[1].Command)
	assert.Equal(t, []byte{0x43, 0x03}, toks[1].Params)
	assert.Equal(t, "exit_tiff_raster_graphics", toks[2].Command)
}

type wideKLYZQuery struct{ fakeQuery }

func (wideKLYZQuery) KLYZBytesPerColumn(byte) int { return 3 }

func TestKLYZPayloadSizeFollowsQuery(t *testing.T) {
	// ESC L with 2 columns: 2 bytes at the default 1 byte/column, 6 bytes
	// once ESC ? has remapped the letter to a 24-pin density.
	data := []byte{0x1B, 'L', 2, 0, 1, 2, 3, 4, 5, 6}

	tok := New(data, fakeQuery{})
	tt, err := tok.Next()
	require.NoError(t, err)
	assert.Equal(t, "select_120dpi_graphics", tt.Command)
	assert.Len(t, tt.Params, 2+2)

	tok = New(data, wideKLYZQuery{})
	tt, err = tok.Next()
	require.NoError(t, err)
	assert.Len(t, tt.Params, 2+6)
}

func TestRasterRLEPayloadIsDecompressed(t *testing.T) {
	// c=1 (RLE), band height 1, 32 dots => 4 decompressed bytes, encoded as
	// a repeat run: counter 0xFD (4 copies) of 0xAA. The byte after the run
	// must survive as the next token.
	data := []byte{0x1B, '.', 1, 20, 20, 1, 32, 0, 0xFD, 0xAA, 'Z'}
	toks := collect(t, data)
	require.Len(t, toks, 2)
	assert.Equal(t, "print_raster_graphics", toks[0].Command)
	assert.Equal(t, []byte{0xAA, 0xAA, 0xAA, 0xAA}, toks[0].Params[6:])
	assert.Equal(t, "text", toks[1].Command)
	assert.Equal(t, []byte{'Z'}, toks[1].Params)
}

func TestUnexpectedSequence(t *testing.T) {
	tok := New([]byte{0x1B, 0x01}, fakeQuery{})
	_, err := tok.Next()
	require.Error(t, err)
	var use *UnexpectedSequenceError
	require.ErrorAs(t, err, &use)
}
