package ramchars

import (
	"crypto/sha256"
	"encoding/hex"
)

// GlyphHash fingerprints the raw dot-column bytes of a user-defined
// character (the payload of ESC &). The hash depends on the dot bytes only;
// the database keys entries by hash and code together, so the same glyph
// assigned to the same code reuses its entry across jobs. Truncated to 7 hex characters: collisions within a
// single mapping database are harmless (worst case, a stale glyph keeps an
// old manual mapping and a human re-edits it), and short keys keep the JSON
// file readable for manual editing, which is the point of the database.
func GlyphHash(dots []byte) string {
	sum := sha256.Sum256(dots)
	return hex.EncodeToString(sum[:])[:7]
}
