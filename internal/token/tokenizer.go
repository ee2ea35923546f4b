package token

import (
	"io"

	"escprender/internal/rle"
)

const esc = 0x1B

var singleByteControls = map[byte]string{
	0x07: "beeper",
	0x08: "backspace",
	0x09: "h_tab",
	0x0A: "line_feed",
	0x0B: "v_tab",
	0x0C: "form_feed",
	0x0D: "carriage_return",
	0x0E: "select_double_width_printing",
	0x0F: "select_condensed_printing",
	0x12: "unset_condensed_printing",
	0x14: "unset_double_width_printing",
	0x18: "cancel_line",
	0x7F: "delete_last_char_in_buffer",
}

// Tokenizer lazily converts a byte buffer into Tokens. It never buffers the
// whole output: each call to Next scans exactly one token's worth of input.
type Tokenizer struct {
	data   []byte
	pos    int
	query  StateQuery
	inTIFF bool
}

// New builds a Tokenizer over data. query supplies the interpreter state
// needed to size a handful of variable-length escape sequences.
func New(data []byte, query StateQuery) *Tokenizer {
	return &Tokenizer{data: data, query: query}
}

// Offset returns the tokenizer's current byte position, for diagnostics.
func (t *Tokenizer) Offset() int { return t.pos }

func (t *Tokenizer) byteAt(i int) (byte, bool) {
	if i < 0 || i >= len(t.data) {
		return 0, false
	}
	return t.data[i], true
}

func (t *Tokenizer) take(n int) []byte {
	end := t.pos + n
	if end > len(t.data) {
		end = len(t.data)
	}
	out := t.data[t.pos:end]
	t.pos = end
	return out
}

// Next returns the next token, io.EOF when the input is exhausted, or an
// *UnexpectedSequenceError.
func (t *Tokenizer) Next() (Token, error) {
	if t.pos >= len(t.data) {
		return Token{}, io.EOF
	}

	if t.inTIFF {
		return t.nextTIFF()
	}

	start := t.pos
	b := t.data[t.pos]

	if b == esc {
		return t.nextEscape()
	}

	if cmd, ok := singleByteControls[b]; ok {
		t.pos++
		return Token{Command: cmd, Offset: start}, nil
	}

	// Literal text run: the maximal stretch of bytes that are neither ESC
	// nor a recognized single-byte control.
	i := t.pos
	for i < len(t.data) {
		c := t.data[i]
		if c == esc {
			break
		}
		if _, isControl := singleByteControls[c]; isControl {
			break
		}
		i++
	}
	text := t.data[t.pos:i]
	t.pos = i
	return Token{Command: "text", Params: text, Offset: start}, nil
}

func (t *Tokenizer) nextEscape() (Token, error) {
	start := t.pos
	sel, ok := t.byteAt(t.pos + 1)
	if !ok {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "ESC at end of stream"}
	}

	switch sel {
	case '@':
		t.pos += 2
		return Token{Command: "reset_printer", Offset: start}, nil
	case '0', '1', '2':
		t.pos += 2
		names := map[byte]string{'0': "set_18_line_spacing", '1': "set_772_line_spacing", '2': "unset_18_line_spacing"}
		return Token{Command: names[sel], Offset: start}, nil
	case '3':
		return t.fixedParamEscape(start, "set_n180_line_spacing", 1)
	case '+':
		return t.fixedParamEscape(start, "set_n360_line_spacing", 1)
	case 'A':
		return t.fixedParamEscape(start, "set_n60_line_spacing", 1)
	case 'l':
		return t.fixedParamEscape(start, "set_left_margin", 1)
	case 'Q':
		return t.fixedParamEscape(start, "set_right_margin", 1)
	case 'N':
		return t.fixedParamEscape(start, "set_bottom_margin", 1)
	case 'O':
		t.pos += 2
		return Token{Command: "cancel_top_bottom_margins", Offset: start}, nil
	case 'C':
		return t.pageLengthEscape(start)
	case '$':
		return t.fixedParamEscape(start, "set_absolute_horizontal_print_position", 2)
	case '\\':
		return t.fixedParamEscape(start, "set_relative_horizontal_print_position", 2)
	case 'J':
		return t.fixedParamEscape(start, "advance_print_position_vertically", 1)
	case 'D':
		return t.nulTerminatedEscape(start, "set_horizontal_tabs", 32)
	case 'B':
		return t.nulTerminatedEscape(start, "set_vertical_tabs", 16)
	case 'k':
		return t.fixedParamEscape(start, "select_typeface", 1)
	case 'X':
		return t.fixedParamEscape(start, "select_font_by_pitch_and_point", 3)
	case 'P':
		t.pos += 2
		return Token{Command: "select_10cpi", Offset: start}, nil
	case 'M':
		t.pos += 2
		return Token{Command: "select_12cpi", Offset: start}, nil
	case 'g':
		t.pos += 2
		return Token{Command: "select_15cpi", Offset: start}, nil
	case 'p':
		return t.fixedParamEscape(start, "switch_proportional_mode", 1)
	case 'x':
		return t.fixedParamEscape(start, "select_letter_quality_or_draft", 1)
	case 'c':
		return t.fixedParamEscape(start, "set_horizontal_motion_index", 2)
	case ' ':
		return t.fixedParamEscape(start, "set_intercharacter_space", 1)
	case '!':
		return t.fixedParamEscape(start, "master_select", 1)
	case '4':
		t.pos += 2
		return Token{Command: "set_italic", Offset: start}, nil
	case '5':
		t.pos += 2
		return Token{Command: "unset_italic", Offset: start}, nil
	case 'E':
		t.pos += 2
		return Token{Command: "set_bold", Offset: start}, nil
	case 'F':
		t.pos += 2
		return Token{Command: "unset_bold", Offset: start}, nil
	case '-':
		return t.fixedParamEscape(start, "switch_underline", 1)
	case 0x0F: // ESC SI
		t.pos += 2
		return Token{Command: "select_condensed_printing", Offset: start}, nil
	case 0x0E: // ESC SO
		t.pos += 2
		return Token{Command: "select_double_width_printing", Offset: start}, nil
	case 'W':
		return t.fixedParamEscape(start, "switch_double_width_printing", 1)
	case 'w':
		return t.fixedParamEscape(start, "switch_double_height_printing", 1)
	case 'G':
		t.pos += 2
		return Token{Command: "set_double_strike_printing", Offset: start}, nil
	case 'H':
		t.pos += 2
		return Token{Command: "unset_double_strike_printing", Offset: start}, nil
	case 'S':
		return t.fixedParamEscape(start, "set_script_printing", 1)
	case 'T':
		t.pos += 2
		return Token{Command: "unset_script_printing", Offset: start}, nil
	case 'q':
		return t.fixedParamEscape(start, "select_character_style", 1)
	case 'r':
		return t.fixedParamEscape(start, "set_printing_color", 1)
	case 't':
		return t.fixedParamEscape(start, "select_character_table", 1)
	case 'R':
		return t.fixedParamEscape(start, "select_international_charset", 1)
	case '&':
		return t.ramCharactersEscape(start)
	case ':':
		return t.fixedParamEscape(start, "copy_ROM_to_RAM", 3)
	case '%':
		return t.fixedParamEscape(start, "select_user_defined_set", 1)
	case '6':
		t.pos += 2
		return Token{Command: "set_upper_control_codes_printing", Offset: start}, nil
	case '7':
		t.pos += 2
		return Token{Command: "unset_upper_control_codes_printing", Offset: start}, nil
	case '*':
		return t.bitImageEscape(start)
	case '?':
		return t.fixedParamEscape(start, "reassign_bit_image_mode", 2)
	case 'K', 'L', 'Y', 'Z':
		return t.klyzEscape(start, sel)
	case '^':
		return t.nine9PinGraphicsEscape(start)
	case '.':
		return t.rasterGraphicsEscape(start)
	case '(':
		return t.parenEscape(start)
	}

	return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "unrecognized escape selector"}
}

func (t *Tokenizer) fixedParamEscape(start int, command string, n int) (Token, error) {
	t.pos = start + 2
	params := t.take(n)
	if len(params) < n {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: command + ": truncated parameters"}
	}
	return Token{Command: command, Params: params, Offset: start}, nil
}

func (t *Tokenizer) nulTerminatedEscape(start int, command string, max int) (Token, error) {
	t.pos = start + 2
	var out []byte
	for len(out) < max {
		b, ok := t.byteAt(t.pos)
		if !ok {
			return Token{}, &UnexpectedSequenceError{Offset: start, Detail: command + ": unterminated list"}
		}
		t.pos++
		out = append(out, b)
		if b == 0 {
			break
		}
		if len(out) > 1 && b <= out[len(out)-2] {
			break
		}
	}
	return Token{Command: command, Params: out, Offset: start}, nil
}

func (t *Tokenizer) pageLengthEscape(start int) (Token, error) {
	t.pos = start + 2
	first, ok := t.byteAt(t.pos)
	if !ok {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "set_page_length: truncated"}
	}
	if first == 0 {
		t.pos++
		params := t.take(1)
		return Token{Command: "set_page_length_inches", Params: params, Offset: start}, nil
	}
	params := t.take(1)
	return Token{Command: "set_page_length_lines", Params: params, Offset: start}, nil
}

// ramCharactersEscape tokenizes ESC & NUL n m then, for each code in
// [n..m], a 3-byte spacing triple (a0,a1,a2) followed by rows*a1 dot bytes.
// rows depends on interpreter state (script mode halves it on ESC/P2); the
// tokenizer uses the conservative ESC/P2-normal value of 3 rows and lets the
// interpreter re-slice if its own state says otherwise, since the triple's
// a1 is self-describing per character.
func (t *Tokenizer) ramCharactersEscape(start int) (Token, error) {
	t.pos = start + 2
	header := t.take(3) // NUL, n, m
	if len(header) < 3 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "define_user_defined_ram_characters: truncated header"}
	}
	n, m := int(header[1]), int(header[2])
	if m < n {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "define_user_defined_ram_characters: last < first"}
	}

	const rows = 3
	out := append([]byte{}, header...)
	for code := n; code <= m; code++ {
		triple := t.take(3)
		if len(triple) < 3 {
			return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "define_user_defined_ram_characters: truncated triple"}
		}
		out = append(out, triple...)
		a1 := int(triple[1])
		glyph := t.take(rows * a1)
		out = append(out, glyph...)
	}

	return Token{Command: "define_user_defined_ram_characters", Params: out, Offset: start}, nil
}

// validBitImageDensities is the set of density codes ESC * accepts.
var validBitImageDensities = map[byte]bool{
	0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true,
	32: true, 33: true, 38: true, 39: true, 40: true,
	64: true, 65: true, 70: true, 71: true, 72: true, 73: true,
}

// BitImageBytesPerColumn returns the column byte width a density code
// implies: 8 dot rows below 32, 24 rows below 64, 48 rows above.
func BitImageBytesPerColumn(m byte) (int, bool) {
	if !validBitImageDensities[m] {
		return 0, false
	}
	switch {
	case m < 32:
		return 1, true
	case m < 64:
		return 3, true
	default:
		return 6, true
	}
}

func (t *Tokenizer) bitImageEscape(start int) (Token, error) {
	t.pos = start + 2
	header := t.take(3) // m, nL, nH
	if len(header) < 3 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "select_bit_image: truncated header"}
	}
	m := header[0]
	bpc, ok := BitImageBytesPerColumn(m)
	if !ok {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "select_bit_image: unknown density"}
	}
	cols := int(header[2])<<8 | int(header[1])
	data := t.take(bpc * cols)
	return Token{Command: "select_bit_image", Params: append(header, data...), Offset: start}, nil
}

func (t *Tokenizer) klyzEscape(start int, sel byte) (Token, error) {
	commands := map[byte]string{'K': "select_60dpi_graphics", 'L': "select_120dpi_graphics", 'Y': "select_120dpi_double_speed_graphics", 'Z': "select_240dpi_graphics"}
	t.pos = start + 2
	header := t.take(2) // nL, nH
	if len(header) < 2 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "select_xdpi_graphics: truncated header"}
	}
	cols := int(header[1])<<8 | int(header[0])
	// Column byte width depends on the density currently mapped to this
	// letter (ESC ? can remap it), which only the interpreter knows.
	bpc := 1
	if t.query != nil {
		bpc = t.query.KLYZBytesPerColumn(sel)
	}
	data := t.take(bpc * cols)
	return Token{Command: commands[sel], Params: append(header, data...), Offset: start}, nil
}

func (t *Tokenizer) nine9PinGraphicsEscape(start int) (Token, error) {
	t.pos = start + 2
	header := t.take(3) // m, nL, nH
	if len(header) < 3 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "select_60_120dpi_9pins_graphics: truncated header"}
	}
	cols := int(header[2])<<8 | int(header[1])
	data := t.take(2 * cols)
	return Token{Command: "select_60_120dpi_9pins_graphics", Params: append(header, data...), Offset: start}, nil
}

func (t *Tokenizer) rasterGraphicsEscape(start int) (Token, error) {
	t.pos = start + 2
	header := t.take(6) // c, v, h, m, nL, nH
	if len(header) < 6 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "print_raster_graphics: truncated header"}
	}
	compression := header[0]
	bandHeight := int(header[3])
	hDotCount := int(header[5])<<8 | int(header[4])
	if bandHeight != 1 && bandHeight != 8 && bandHeight != 24 && bandHeight != 48 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "print_raster_graphics: invalid band height"}
	}
	expected := bandHeight * ((hDotCount + 7) / 8)

	switch compression {
	case 0:
		data := t.take(expected)
		return Token{Command: "print_raster_graphics", Params: append(header, data...), Offset: start}, nil
	case 1:
		decoded, consumed := rle.DecompressN(t.data[t.pos:], expected)
		t.pos += consumed
		// header aliases t.data; appending decoded bytes in place would
		// overwrite not-yet-consumed input.
		params := append(append(make([]byte, 0, len(header)+len(decoded)), header...), decoded...)
		return Token{Command: "print_raster_graphics", Params: params, Offset: start}, nil
	case 2:
		t.inTIFF = true
		return Token{Command: "print_tiff_raster_graphics", Params: header, Offset: start}, nil
	}
	return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "print_raster_graphics: invalid compression flag"}
}

func (t *Tokenizer) parenEscape(start int) (Token, error) {
	sub, ok := t.byteAt(t.pos + 2)
	if !ok {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "ESC ( truncated"}
	}

	switch sub {
	case 'C':
		return t.parenFixed(start, "set_page_length_defined_unit", 2, 2)
	case 'c':
		return t.parenFixed(start, "set_page_format", 2, 4)
	case 'V':
		return t.parenFixed(start, "set_absolute_vertical_print_position", 2, 2)
	case 'v':
		return t.parenFixed(start, "set_relative_vertical_print_position", 2, 2)
	case 'U':
		return t.parenFixed(start, "set_unit", 2, 1)
	case 't':
		return t.parenFixed(start, "assign_character_table", 2, 3)
	case '-':
		return t.parenFixed(start, "select_line_score", 2, 3)
	case 'G':
		return t.parenFixed(start, "set_graphics_mode", 2, 1)
	case 'i':
		return t.parenFixed(start, "switch_microweave_mode", 2, 1)
	case '^':
		return t.parenHeaderDescribed(start, "print_data_as_characters", 0)
	case 'B':
		return t.parenBarcode(start)
	}

	return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "ESC ( : unrecognized sub-command"}
}

// parenFixed consumes sub-letter + skipLen header bytes (a literal length
// prefix the grammar hard-codes, e.g. "\x02\x00") then dataLen data bytes.
func (t *Tokenizer) parenFixed(start int, command string, skipLen, dataLen int) (Token, error) {
	t.pos = start + 3 // ESC ( <sub>
	t.take(skipLen)
	data := t.take(dataLen)
	if len(data) < dataLen {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: command + ": truncated"}
	}
	return Token{Command: command, Params: data, Offset: start}, nil
}

// parenHeaderDescribed consumes sub-letter, a 2-byte little-endian length,
// then that many data bytes. extra is added on top of the decoded length
// (the only caller passes 0; barcode is tokenized by parenBarcode).
func (t *Tokenizer) parenHeaderDescribed(start int, command string, extra int) (Token, error) {
	t.pos = start + 3
	header := t.take(2)
	if len(header) < 2 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: command + ": truncated header"}
	}
	n := int(header[1])<<8 | int(header[0])
	data := t.take(n + extra)
	return Token{Command: command, Params: append(header, data...), Offset: start}, nil
}

func (t *Tokenizer) parenBarcode(start int) (Token, error) {
	t.pos = start + 3
	header := t.take(8) // nL, nH, type, moduleWidth, spaceAdj, v1, v2, flags
	if len(header) < 8 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "barcode: truncated header"}
	}
	total := int(header[1])<<8 | int(header[0])
	dataLen := total - 6
	if dataLen < 0 {
		return Token{}, &UnexpectedSequenceError{Offset: start, Detail: "barcode: invalid length"}
	}
	data := t.take(dataLen)
	return Token{Command: "barcode", Params: append(header, data...), Offset: start}, nil
}
