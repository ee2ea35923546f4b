package interp

// CharAdvanceIn returns the horizontal distance, in inches, that one
// character of the currently selected pitch occupies — the basis for BS
// and (as a fallback) the text cursor advance when no font resolver
// measurement is available.
//
// ESC c's HMI override takes precedence over pitch entirely. Otherwise,
// condensed mode rescales cpi: halved width on proportional spacing,
// 10cpi -> 17.14cpi, 12cpi -> 20cpi, 15cpi unaffected.
func (s *State) CharAdvanceIn() float64 {
	if s.CharacterWidthIn > 0 {
		return s.CharacterWidthIn
	}

	cpi := s.PitchCPI
	if s.Condensed {
		switch {
		case s.ProportionalSpacing:
			cpi = cpi * 2 // half width => double cpi
		case roughlyEqual(cpi, 10):
			cpi = 17.14
		case roughlyEqual(cpi, 12):
			cpi = 20
		case roughlyEqual(cpi, 15):
			// condensed has no effect at 15cpi
		}
	}

	advance := 1.0 / cpi
	if s.DoubleWidth || s.DoubleWidthMulti {
		advance *= 2
	}
	return advance
}

func roughlyEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.01
}

// IntercharacterSpaceIn returns the extra_intercharacter_space contribution
// for the current attribute state.
func (s *State) IntercharacterSpaceIn() float64 {
	space := s.ExtraIntercharacterSpaceIn
	if s.DoubleWidth || s.DoubleWidthMulti {
		space *= 2
	}
	return space
}
