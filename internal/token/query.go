package token

// StateQuery is the cooperative channel the tokenizer uses to ask the
// interpreter for the piece of state a length-bearing or state-dependent
// escape sequence needs at tokenize time.
type StateQuery interface {
	// Pins returns 9, 24, 48, or 0 for a nozzle-based ESC/P2 printer.
	Pins() int
	// Draft reports whether the current print quality is draft (affects
	// the default unit for ESC \).
	Draft() bool
	// HorizontalDefinedUnit returns the denominator set by ESC ( U, or the
	// command-specific default when none has been set.
	HorizontalDefinedUnit() int
	// KLYZBytesPerColumn returns the column byte width of the density
	// currently assigned to shorthand letter K, L, Y, or Z.
	KLYZBytesPerColumn(letter byte) int
}
