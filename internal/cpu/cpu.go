// Package cpu implements the Intel 8080 instruction set.
//
// A CPU owns its registers, flags and (by default) its 64 KiB of memory. The
// host drives it by calling Step, which executes exactly one instruction and
// returns the number of clock cycles it took, and by calling RaiseInterrupt
// or Interrupt between steps. All hardware beyond memory is reached through
// the io.Ports the CPU was constructed with.
package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/go8080/internal/io"
	"github.com/thelolagemann/go8080/internal/ram"
	"github.com/thelolagemann/go8080/internal/types"
	"github.com/thelolagemann/go8080/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the 8080 as fitted to most arcade
	// boards of the era.
	ClockSpeed = 2000000

	// DefaultInterruptVector is the address RaiseInterrupt jumps to unless
	// the CPU was built with WithInterruptVector. It is the RST 1 vector.
	DefaultInterruptVector uint16 = 0x0008

	// haltCycles is the number of cycles reported for a Step taken while
	// the CPU is halted.
	haltCycles = 4
	// interruptCycles is the cost of servicing an interrupt, the same as
	// executing the RST instruction the interrupting device supplies.
	interruptCycles = 11
)

var (
	// ErrImageOverflow is returned when a program image would extend past
	// the top of the address space.
	ErrImageOverflow = errors.New("program image overflows address space")
	// ErrInvalidRST is returned by Interrupt when asked for a restart number
	// outside 0-7.
	ErrInvalidRST = errors.New("invalid restart number")
	// ErrNotInitialized is returned when a CPU that was not created with New
	// is asked to run.
	ErrNotInitialized = errors.New("cpu not initialized, use New")
)

// CPU represents the 8080 CPU. It is responsible for executing instructions.
// A CPU must be created with New, the zero value returns ErrNotInitialized.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	types.Registers

	// f holds the condition flags in PSW layout.
	f uint8

	interruptsEnabled bool
	halted            bool

	mem    ram.RAM
	ports  io.Ports
	policy Policy
	vector uint16
	log    log.Logger

	// power-on values restored by Reset
	entry, stack uint16

	cycles uint64
	// taken is set by conditional calls and returns when the condition
	// held, selecting the longer cycle count.
	taken bool
}

// New returns a CPU in its power-on state: all registers and flags clear,
// interrupts disabled, PC at the entry point and SP at the initial stack
// pointer (both 0 unless set with options).
func New(opts ...Opt) *CPU {
	c := &CPU{
		ports:  io.NullPorts{},
		policy: PolicyAlias,
		vector: DefaultInterruptVector,
		log:    log.NewNullLogger(),
	}
	c.Registers.Pair()

	for _, opt := range opts {
		opt(c)
	}
	if c.mem == nil {
		c.mem = ram.NewRAM()
	}

	c.Reset()
	return c
}

// Reset restores the power-on state without touching memory.
func (c *CPU) Reset() {
	c.A, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0
	c.f = flagsFixed
	c.PC = c.entry
	c.SP = c.stack
	c.interruptsEnabled = false
	c.halted = false
	c.taken = false
}

// Load copies a raw program image into memory starting at base.
func (c *CPU) Load(base uint16, data []byte) error {
	if !c.initialized() {
		return ErrNotInitialized
	}
	if int(base)+len(data) > ram.Size {
		return fmt.Errorf("loading %d bytes at %04X: %w", len(data), base, ErrImageOverflow)
	}
	for i, b := range data {
		c.mem.Write(base+uint16(i), b)
	}
	return nil
}

// Memory returns the memory the CPU addresses.
func (c *CPU) Memory() ram.RAM {
	return c.mem
}

// Read returns the byte at the given address.
func (c *CPU) Read(address uint16) uint8 {
	return c.mem.Read(address)
}

// Write writes a byte to the given address.
func (c *CPU) Write(address uint16, value uint8) {
	c.mem.Write(address, value)
}

// Read16 returns the little endian word at the given address. The high byte
// is read from address+1, wrapping at the top of memory.
func (c *CPU) Read16(address uint16) uint16 {
	return uint16(c.mem.Read(address)) | uint16(c.mem.Read(address+1))<<8
}

// Write16 writes a little endian word to the given address.
func (c *CPU) Write16(address uint16, value uint16) {
	c.mem.Write(address, uint8(value))
	c.mem.Write(address+1, uint8(value>>8))
}

// InterruptsEnabled returns the state of the interrupt enable flip-flop.
func (c *CPU) InterruptsEnabled() bool {
	return c.interruptsEnabled
}

// Halted returns true if the CPU has executed HLT and is waiting for an
// interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Cycles returns the number of cycles executed since the CPU was created,
// including those spent servicing interrupts.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Step executes a single instruction and returns the number of cycles it
// took. A halted CPU does not fetch, it idles for 4 cycles. An error is only
// returned for undefined opcodes when the CPU decodes strictly, in which
// case PC is left pointing at the offending opcode.
func (c *CPU) Step() (uint8, error) {
	if !c.initialized() {
		return 0, ErrNotInitialized
	}
	if c.halted {
		c.cycles += haltCycles
		return haltCycles, nil
	}

	address := c.PC
	opcode := c.readInstruction()
	instruction := &InstructionSet[opcode]

	if instruction.undefined {
		if c.policy == PolicyFault {
			c.PC = address
			return 0, &DecodeError{Opcode: opcode, Address: address}
		}
		c.log.Debugf("undefined opcode %02X at %04X executed as %s", opcode, address, instruction.name)
	}

	c.taken = false
	instruction.fn(c)

	cycles := instruction.cycles
	if c.taken {
		cycles = instruction.taken
	}
	c.cycles += uint64(cycles)
	return cycles, nil
}

// Idle advances a halted CPU by the given number of cycles, as if Step had
// been called until they passed. It returns false, doing nothing, if the CPU
// is not halted.
func (c *CPU) Idle(cycles uint64) bool {
	if !c.halted {
		return false
	}
	c.cycles += cycles
	return true
}

func (c *CPU) initialized() bool {
	return c.mem != nil && c.BC != nil && c.log != nil
}

// readInstruction reads the next instruction from memory.
func (c *CPU) readInstruction() uint8 {
	value := c.mem.Read(c.PC)
	c.PC++
	return value
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	value := c.mem.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little endian 16-bit operand.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// registerIndex returns a Register pointer for the given 3-bit register
// field of an opcode. Index 6 is the memory operand and has no register.
func (c *CPU) registerIndex(index uint8) *types.Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// operand returns the value of the register selected by index, reading
// memory at HL for index 6.
func (c *CPU) operand(index uint8) uint8 {
	if index == 6 {
		return c.mem.Read(c.HL.Uint16())
	}
	return *c.registerIndex(index)
}

// setOperand stores value into the register selected by index, writing
// memory at HL for index 6.
func (c *CPU) setOperand(index uint8, value uint8) {
	if index == 6 {
		c.mem.Write(c.HL.Uint16(), value)
		return
	}
	*c.registerIndex(index) = value
}

// registerPair returns the register pair selected by the 2-bit pair field
// of an opcode. Index 3 (SP or PSW depending on the instruction) is handled
// by the caller.
func (c *CPU) registerPair(index uint8) *types.RegisterPair {
	switch index {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	panic(fmt.Sprintf("invalid register pair index: %d", index))
}
