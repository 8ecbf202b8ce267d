package cpu

import "github.com/thelolagemann/go8080/internal/types"

// Flag is the bit position of a condition flag within the PSW byte.
type Flag = uint8

const (
	FlagCarry    Flag = 0
	FlagParity   Flag = 2
	FlagAuxCarry Flag = 4
	FlagZero     Flag = 6
	FlagSign     Flag = 7
)

const (
	// flagsMask selects the bits of the PSW that hold flags.
	flagsMask = types.Bit7 | types.Bit6 | types.Bit4 | types.Bit2 | types.Bit0
	// flagsFixed is the bit that always reads as 1 in the PSW, bits 3 and
	// 5 always read as 0.
	flagsFixed = types.Bit1
)

// clearFlag clears a flag.
func (c *CPU) clearFlag(flag Flag) {
	c.f &^= 1 << flag
}

// setFlag sets a flag.
func (c *CPU) setFlag(flag Flag) {
	c.f |= 1 << flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.f&(1<<flag) != 0
}

// shouldSetFlag sets or clears flag according to value.
func (c *CPU) shouldSetFlag(flag Flag, value bool) {
	if value {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

// setZSP sets the zero, sign and parity flags from an 8-bit result.
func (c *CPU) setZSP(result uint8) {
	c.shouldSetFlag(FlagZero, result == 0)
	c.shouldSetFlag(FlagSign, result&types.Bit7 != 0)
	c.shouldSetFlag(FlagParity, types.EvenParity(result))
}

// Flag returns the state of the given flag.
func (c *CPU) Flag(flag Flag) bool {
	return c.isFlagSet(flag)
}

// SetFlag sets the given flag to value.
func (c *CPU) SetFlag(flag Flag, value bool) {
	c.shouldSetFlag(flag&7, value)
	c.f = c.f&flagsMask | flagsFixed
}

// PSW returns the flags materialised as the byte PUSH PSW stores:
//
//	bit 7 6 5  4 3 2 1 0
//	    S Z 0 AC 0 P 1 CY
func (c *CPU) PSW() uint8 {
	return c.f
}

// SetPSW loads the flags from a PSW byte. The fixed bits are forced to their
// constant values.
func (c *CPU) SetPSW(value uint8) {
	c.f = value&flagsMask | flagsFixed
}
