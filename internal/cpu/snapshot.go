package cpu

import (
	"fmt"
	"strings"
)

// Snapshot is a copy of the CPU state at an instruction boundary. It holds
// no references into the CPU, so it can be handed to other goroutines.
type Snapshot struct {
	A, B, C, D, E, H, L uint8
	PSW                 uint8
	SP, PC              uint16

	InterruptsEnabled bool
	Halted            bool
	Cycles            uint64
}

// Snapshot returns a copy of the current register and flag state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		PSW:               c.PSW(),
		SP:                c.SP,
		PC:                c.PC,
		InterruptsEnabled: c.interruptsEnabled,
		Halted:            c.halted,
		Cycles:            c.cycles,
	}
}

// Flag returns the state of the given flag in the snapshot.
func (s Snapshot) Flag(flag Flag) bool {
	return s.PSW&(1<<flag) != 0
}

// String returns the snapshot on a single line, in the layout CPU traces
// are usually compared in.
func (s Snapshot) String() string {
	flags := []byte("szapc")
	for i, f := range []Flag{FlagSign, FlagZero, FlagAuxCarry, FlagParity, FlagCarry} {
		if s.Flag(f) {
			flags[i] -= 'a' - 'A'
		}
	}
	return fmt.Sprintf("PC: %04X, AF: %02X%02X, BC: %02X%02X, DE: %02X%02X, HL: %02X%02X, SP: %04X, %s, CYC: %d",
		s.PC, s.A, s.PSW, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, flags, s.Cycles)
}

// Disassemble decodes the instruction at address, returning its text and
// length in bytes.
func (c *CPU) Disassemble(address uint16) (string, uint8) {
	instruction := InstructionSet[c.mem.Read(address)]
	name := instruction.name
	switch instruction.length {
	case 2:
		name = strings.Replace(name, "d8", fmt.Sprintf("%02XH", c.mem.Read(address+1)), 1)
	case 3:
		operand := fmt.Sprintf("%04XH", c.Read16(address+1))
		name = strings.NewReplacer("d16", operand, "a16", operand).Replace(name)
	}
	return name, instruction.length
}
