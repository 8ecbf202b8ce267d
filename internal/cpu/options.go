package cpu

import (
	"github.com/thelolagemann/go8080/internal/io"
	"github.com/thelolagemann/go8080/internal/ram"
	"github.com/thelolagemann/go8080/pkg/log"
)

// Policy decides what the CPU does with the twelve opcodes the 8080
// documentation leaves undefined.
type Policy uint8

const (
	// PolicyAlias executes undefined opcodes the way the silicon does:
	// 0x08-0x38 as NOP, 0xCB as JMP, 0xD9 as RET and 0xDD, 0xED, 0xFD as
	// CALL.
	PolicyAlias Policy = iota
	// PolicyFault refuses undefined opcodes with a DecodeError.
	PolicyFault
)

// Opt is a function that modifies a CPU during construction.
type Opt func(c *CPU)

// WithPorts attaches the machine the CPU talks to through IN and OUT.
func WithPorts(p io.Ports) Opt {
	return func(c *CPU) {
		c.ports = p
	}
}

// WithMemory replaces the default flat RAM, allowing machines to map ROM
// or mirrored regions.
func WithMemory(m ram.RAM) Opt {
	return func(c *CPU) {
		c.mem = m
	}
}

// WithLogger sets the logger, the null logger is used otherwise.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// WithEntryPoint sets the power-on program counter.
func WithEntryPoint(pc uint16) Opt {
	return func(c *CPU) {
		c.entry = pc
	}
}

// WithStackPointer sets the power-on stack pointer.
func WithStackPointer(sp uint16) Opt {
	return func(c *CPU) {
		c.stack = sp
	}
}

// WithInterruptVector sets the address RaiseInterrupt transfers control to.
func WithInterruptVector(vector uint16) Opt {
	return func(c *CPU) {
		c.vector = vector
	}
}

// WithStrictDecoding makes the CPU fault on undefined opcodes instead of
// executing their aliases.
func WithStrictDecoding() Opt {
	return func(c *CPU) {
		c.policy = PolicyFault
	}
}
