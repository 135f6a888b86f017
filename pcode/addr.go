// Package pcode defines the address model and microcode operation taxonomy
// that the analysis packages (lattice, state, location, cpa, ...) interpret.
// It has no dependency on any concrete instruction set; disassembler is the
// concrete provider for M68000.
package pcode

import "fmt"

// Addr identifies a single microcode step: the machine instruction it
// belongs to and its position (slot) within that instruction's expansion.
// Slot 0 is always the real decoded operation; slot boundary synthesizes a
// direct Branch to the next instruction (see Store.GetOp).
type Addr struct {
	Machine uint64
	Slot    uint8
}

// Less orders addresses lexicographically by (Machine, Slot).
func (a Addr) Less(b Addr) bool {
	if a.Machine != b.Machine {
		return a.Machine < b.Machine
	}
	return a.Slot < b.Slot
}

func (a Addr) String() string {
	return fmt.Sprintf("%08x:%d", a.Machine, a.Slot)
}

// Next returns the address of the first slot of the following machine
// instruction, given that instruction's byte size. Slot is reset to 0.
func (a Addr) Next(instructionSize uint64) Addr {
	return Addr{Machine: a.Machine + instructionSize, Slot: 0}
}

// NextSlot returns the address of the following slot within the same
// machine instruction.
func (a Addr) NextSlot() Addr {
	return Addr{Machine: a.Machine, Slot: a.Slot + 1}
}
