package codepage

// overlayPositions are the 12 fixed byte positions patched by an
// international-charset overlay.
var overlayPositions = [12]byte{0x23, 0x24, 0x40, 0x5B, 0x5C, 0x5D, 0x5E, 0x60, 0x7B, 0x7C, 0x7D, 0x7E}

// internationalCharsets holds one entry per ESC R variant: each patches the
// 12 positions above with a country-specific glyph. Index 64 is the "Legal"
// variant.
var internationalCharsets = map[int]map[byte]string{
	0: { // USA
		0x23: "#", 0x24: "$", 0x40: "@", 0x5B: "[", 0x5C: "\\", 0x5D: "]",
		0x5E: "^", 0x60: "`", 0x7B: "{", 0x7C: "|", 0x7D: "}", 0x7E: "~",
	},
	1: { // France
		0x23: "#", 0x24: "$", 0x40: "à", 0x5B: "°", 0x5C: "ç", 0x5D: "§",
		0x5E: "^", 0x60: "`", 0x7B: "é", 0x7C: "ù", 0x7D: "è", 0x7E: "¨",
	},
	2: { // Germany
		0x23: "#", 0x24: "$", 0x40: "§", 0x5B: "Ä", 0x5C: "Ö", 0x5D: "Ü",
		0x5E: "^", 0x60: "`", 0x7B: "ä", 0x7C: "ö", 0x7D: "ü", 0x7E: "ß",
	},
	3: { // United Kingdom
		0x23: "£", 0x24: "$", 0x40: "@", 0x5B: "[", 0x5C: "\\", 0x5D: "]",
		0x5E: "^", 0x60: "`", 0x7B: "{", 0x7C: "|", 0x7D: "}", 0x7E: "~",
	},
	4: { // Denmark I
		0x23: "#", 0x24: "$", 0x40: "@", 0x5B: "Æ", 0x5C: "Ø", 0x5D: "Å",
		0x5E: "^", 0x60: "`", 0x7B: "æ", 0x7C: "ø", 0x7D: "å", 0x7E: "~",
	},
	5: { // Sweden
		0x23: "#", 0x24: "¤", 0x40: "É", 0x5B: "Ä", 0x5C: "Ö", 0x5D: "Å",
		0x5E: "Ü", 0x60: "é", 0x7B: "ä", 0x7C: "ö", 0x7D: "å", 0x7E: "ü",
	},
	6: { // Italy
		0x23: "#", 0x24: "$", 0x40: "@", 0x5B: "°", 0x5C: "\\", 0x5D: "é",
		0x5E: "^", 0x60: "ù", 0x7B: "à", 0x7C: "ò", 0x7D: "è", 0x7E: "ì",
	},
	7: { // Spain I
		0x23: "Pt", 0x24: "$", 0x40: "@", 0x5B: "¡", 0x5C: "Ñ", 0x5D: "¿",
		0x5E: "^", 0x60: "`", 0x7B: "¨", 0x7C: "ñ", 0x7D: "}", 0x7E: "~",
	},
	8: { // Japan (English)
		0x23: "#", 0x24: "$", 0x40: "@", 0x5B: "[", 0x5C: "¥", 0x5D: "]",
		0x5E: "^", 0x60: "`", 0x7B: "{", 0x7C: "|", 0x7D: "}", 0x7E: "~",
	},
	9: { // Norway
		0x23: "#", 0x24: "¤", 0x40: "É", 0x5B: "Æ", 0x5C: "Ø", 0x5D: "Å",
		0x5E: "Ü", 0x60: "é", 0x7B: "æ", 0x7C: "ø", 0x7D: "å", 0x7E: "ü",
	},
	10: { // Denmark II
		0x23: "#", 0x24: "$", 0x40: "É", 0x5B: "Æ", 0x5C: "Ø", 0x5D: "Å",
		0x5E: "Ü", 0x60: "é", 0x7B: "æ", 0x7C: "ø", 0x7D: "å", 0x7E: "ü",
	},
	11: { // Spain II
		0x23: "#", 0x24: "$", 0x40: "á", 0x5B: "¡", 0x5C: "Ñ", 0x5D: "¿",
		0x5E: "é", 0x60: "`", 0x7B: "í", 0x7C: "ñ", 0x7D: "ó", 0x7E: "ú",
	},
	12: { // Latin America
		0x23: "#", 0x24: "$", 0x40: "á", 0x5B: "¡", 0x5C: "Ñ", 0x5D: "¿",
		0x5E: "é", 0x60: "ü", 0x7B: "í", 0x7C: "ñ", 0x7D: "ó", 0x7E: "ú",
	},
	13: { // Korea
		0x23: "#", 0x24: "$", 0x40: "@", 0x5B: "[", 0x5C: "₩", 0x5D: "]",
		0x5E: "^", 0x60: "`", 0x7B: "{", 0x7C: "|", 0x7D: "}", 0x7E: "~",
	},
	64: { // Legal
		0x23: "#", 0x24: "$", 0x40: "§", 0x5B: "°", 0x5C: "’", 0x5D: "”",
		0x5E: "¶", 0x60: "`", 0x7B: "©", 0x7C: "®", 0x7D: "†", 0x7E: "™",
	},
}

// Overlay returns a table equal to base except at the 12 fixed positions,
// where it uses intlCharset's glyph.
func Overlay(base *Table, intlCharset int) *Table {
	patch, ok := internationalCharsets[intlCharset]
	if !ok {
		return base
	}

	out := base.Clone(base.Name)
	for _, pos := range overlayPositions {
		if v, ok := patch[pos]; ok {
			out.Set(pos, v)
		}
	}
	return out
}

// SupportedInternationalCharsets lists the valid ESC R argument values.
func SupportedInternationalCharsets() []int {
	keys := make([]int, 0, len(internationalCharsets))
	for k := range internationalCharsets {
		keys = append(keys, k)
	}
	return keys
}
