package interp

import (
	"escprender/internal/codepage"
	"escprender/internal/token"
)

// hResetPrinter implements ESC @.
func (it *Interpreter) hResetPrinter(_ token.Token) error {
	it.State.ResetPrinter()
	if it.RAM != nil {
		it.RAM.Clear()
	}
	return nil
}

// hAssignCharacterTable implements ESC ( t d1 d2 d3: assigns the registered
// codepage (d2,d3) to slot d1. (0,0) is the italic sentinel; an
// unresolvable pair falls back to PC437 with a once-per-job-per-slot
// warning.
func (it *Interpreter) hAssignCharacterTable(t token.Token) error {
	if len(t.Params) < 3 {
		return nil
	}
	slot := int(t.Params[0]) & 0x03
	d2, d3 := t.Params[1], t.Params[2]

	if d2 == 0 && d3 == 0 {
		it.State.CharacterTables[slot] = TableSlot{Sentinel: sentinelItalic}
		return nil
	}

	tbl, name, ok := it.Registry.LookupBySlotID(d2, d3)
	if !ok {
		it.warnUnsupportedCodepage(slot, name)
		it.State.CharacterTables[slot] = TableSlot{Name: "cp437"}
		return nil
	}
	it.State.CharacterTables[slot] = TableSlot{Name: tbl.Name}
	return nil
}

func (it *Interpreter) warnUnsupportedCodepage(slot int, requested string) {
	if it.warnedCodepageSlots[slot] {
		return
	}
	it.warnedCodepageSlots[slot] = true
	if it.Log != nil {
		it.Log.LogUnsupportedCodepage(slot, requested)
	}
}

// hSelectCharacterTable implements ESC t n: select the active slot. Slot 2
// selected while it still holds the user-defined sentinel triggers the
// RAM-table upper-half shift; slot 2 reassigned to a real codepage via
// ESC ( t is honored as that codepage instead.
func (it *Interpreter) hSelectCharacterTable(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0]) & 0x03
	it.State.ActiveCharacterTable = n
	if n == 2 && it.State.CharacterTables[2].Sentinel == sentinelUserDefined && it.RAM != nil {
		it.RAM.ShiftUpperCharset()
	}
	return nil
}

// hSelectInternationalCharset implements ESC R n: select the 12-position
// overlay. Out-of-range values are ignored.
func (it *Interpreter) hSelectInternationalCharset(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	n := int(t.Params[0])
	valid := false
	for _, c := range codepage.SupportedInternationalCharsets() {
		if c == n {
			valid = true
			break
		}
	}
	if !valid {
		return nil
	}
	it.State.InternationalCharset = n
	return nil
}

// hSelectUserDefinedSet implements ESC % n: switches between the ROM table
// currently active and the user-defined (RAM) table at slot 2.
func (it *Interpreter) hSelectUserDefinedSet(t token.Token) error {
	if len(t.Params) < 1 {
		return nil
	}
	on := t.Params[0]&1 != 0
	if on {
		it.State.savedActiveBeforeRAM = it.State.ActiveCharacterTable
		it.State.ActiveCharacterTable = 2
		return nil
	}
	it.State.ActiveCharacterTable = it.State.savedActiveBeforeRAM
	return nil
}
