package token

import (
	"io"

	"escprender/internal/rle"
)

// nextTIFF tokenizes one command of the TIFF-compressed graphics
// sub-machine entered by ESC . 2 and exited by EXIT_EX (0xE3).
func (t *Tokenizer) nextTIFF() (Token, error) {
	start := t.pos
	b, ok := t.byteAt(t.pos)
	if !ok {
		return Token{}, io.EOF
	}

	switch {
	case b >= 0x80 && b <= 0x84:
		t.pos++
		return Token{Command: "set_printing_color_ex", Params: []byte{b}, Offset: start}, nil
	case b == 0xE1:
		t.pos++
		return Token{Command: "clear_ex", Offset: start}, nil
	case b == 0xE2:
		t.pos++
		return Token{Command: "carriage_return", Offset: start}, nil
	case b == 0xE3:
		t.pos++
		t.inTIFF = false
		return Token{Command: "exit_tiff_raster_graphics", Offset: start}, nil
	case b == 0xE4:
		t.pos++
		return Token{Command: "set_movx_unit_8dots", Offset: start}, nil
	case b == 0xE5:
		t.pos++
		return Token{Command: "set_movx_unit_1dot", Offset: start}, nil
	case (b >= 0x20 && b <= 0x2F) || b == 0x31 || b == 0x32:
		return t.xferToken(start, b)
	case (b >= 0x60 && b <= 0x6F) || b == 0x71 || b == 0x72:
		return t.movToken(start, b, "set_relative_vertical_position")
	case (b >= 0x40 && b <= 0x4F) || b == 0x51 || b == 0x52:
		return t.movToken(start, b, "set_relative_horizontal_position")
	}

	return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "tiff: unrecognized command byte"}
}

// movToken decodes the shared MOVX/MOVY #BC-nibble length encoding: the low
// nibble of cmd either IS the value (F=0, 4-bit range) or names how many
// extra bytes follow it (F=1, #BC in {1,2}). Sign interpretation of the
// resulting bytes is the interpreter's job (MOVY is unsigned, MOVX signed).
func (t *Tokenizer) movToken(start int, cmd byte, command string) (Token, error) {
	t.pos++
	cmdBC := cmd & 0x0F
	f := (cmd>>4)&1 == 1

	var raw []byte
	switch {
	case !f:
		raw = []byte{cmdBC}
	case cmdBC == 1:
		b, ok := t.byteAt(t.pos)
		if !ok {
			return Token{}, &UnexpectedSequenceError{Offset: start, Detail: command + ": truncated"}
		}
		t.pos++
		raw = []byte{b}
	case cmdBC == 2:
		two := t.take(2)
		if len(two) < 2 {
			return Token{}, &UnexpectedSequenceError{Offset: start, Detail: command + ": truncated"}
		}
		raw = two
	default:
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: command + ": invalid #BC"}
	}

	return Token{Command: command, Params: append([]byte{cmd}, raw...), Offset: start}, nil
}

// xferToken decodes one line of TIFF-compressed raster data. The header
// byte's #BC nibble with its F flag names either the byte count directly,
// or how many following length bytes (nL, optionally nH) hold it; the
// payload itself is always TIFF-RLE and is decompressed eagerly so the
// token carries ready-to-paint raster bytes.
func (t *Tokenizer) xferToken(start int, cmd byte) (Token, error) {
	t.pos++

	cmdBC := cmd & 0x0F
	f := (cmd>>4)&1 == 1

	// Only F=1 forms carry explicit length bytes;
	// the F=0 form's byte count is the #BC nibble itself and data follows
	// the command byte immediately.
	var nL, nH byte
	var expected int
	switch {
	case !f:
		expected = int(cmdBC)
	case cmdBC == 1:
		b, ok := t.byteAt(t.pos)
		if !ok {
			return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "transfer_raster_graphics_data: truncated header"}
		}
		t.pos++
		nL = b
		expected = int(nL)
	case cmdBC == 2:
		two := t.take(2)
		if len(two) < 2 {
			return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "transfer_raster_graphics_data: truncated header"}
		}
		nL, nH = two[0], two[1]
		expected = int(nH)<<8 | int(nL)
	default:
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "transfer_raster_graphics_data: invalid #BC"}
	}

	decoded, consumed := rle.DecompressN(t.data[t.pos:], expected)
	t.pos += consumed

	return Token{Command: "transfer_raster_graphics_data", Params: append([]byte{cmd, nL}, decoded...), Offset: start}, nil
}
