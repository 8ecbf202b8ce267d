package cpu

import "github.com/thelolagemann/go8080/internal/types"

// carryOut reports whether adding a, b and carry produced a carry out of
// the given bit.
func carryOut(bit uint8, a, b uint8, carry bool) bool {
	result := uint16(a) + uint16(b)
	if carry {
		result++
	}
	return (result^uint16(a)^uint16(b))&(1<<bit) != 0
}

// add is a helper function for adding a byte to the accumulator and
// setting the flags accordingly.
//
// Used by:
//
//	ADD r, ADD M, ADI d8
//	ADC r, ADC M, ACI d8
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Set if carry from bit 7.
//	AC - Set if carry from bit 3.
func (c *CPU) add(n uint8, withCarry bool) {
	carry := withCarry && c.isFlagSet(FlagCarry)
	result := c.A + n
	if carry {
		result++
	}

	c.shouldSetFlag(FlagCarry, carryOut(8, c.A, n, carry))
	c.shouldSetFlag(FlagAuxCarry, carryOut(4, c.A, n, carry))
	c.setZSP(result)
	c.A = result
}

// subtract returns A - n, optionally less the borrow, and sets the flags.
// The 8080 subtracts by adding the two's complement, so the auxiliary
// carry is the carry out of bit 3 of A + ^n + 1 rather than a borrow.
//
// Used by:
//
//	SUB r, SUB M, SUI d8
//	SBB r, SBB M, SBI d8
//	CMP r, CMP M, CPI d8
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Set if a borrow was needed.
//	AC - Set if carry from bit 3 of the complemented addition.
func (c *CPU) subtract(n uint8, withBorrow bool) uint8 {
	carry := !(withBorrow && c.isFlagSet(FlagCarry))
	result := c.A + ^n
	if carry {
		result++
	}

	c.shouldSetFlag(FlagCarry, !carryOut(8, c.A, ^n, carry))
	c.shouldSetFlag(FlagAuxCarry, carryOut(4, c.A, ^n, carry))
	c.setZSP(result)
	return result
}

// sub subtracts n from the accumulator.
func (c *CPU) sub(n uint8, withBorrow bool) {
	c.A = c.subtract(n, withBorrow)
}

// compare compares n to the accumulator, setting the flags as SUB would
// without storing the result.
//
//	CMP r, CMP M, CPI d8
func (c *CPU) compare(n uint8) {
	c.subtract(n, false)
}

// and performs a bitwise AND operation on n and the accumulator.
//
//	ANA r, ANA M, ANI d8
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Reset.
//	AC - Set to bit 3 of A OR n.
func (c *CPU) and(n uint8) {
	c.shouldSetFlag(FlagAuxCarry, (c.A|n)&types.Bit3 != 0)
	c.A &= n
	c.clearFlag(FlagCarry)
	c.setZSP(c.A)
}

// xor performs a bitwise XOR operation on n and the accumulator.
//
//	XRA r, XRA M, XRI d8
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Reset.
//	AC - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.clearFlag(FlagCarry)
	c.clearFlag(FlagAuxCarry)
	c.setZSP(c.A)
}

// or performs a bitwise OR operation on n and the accumulator.
//
//	ORA r, ORA M, ORI d8
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Reset.
//	AC - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.clearFlag(FlagCarry)
	c.clearFlag(FlagAuxCarry)
	c.setZSP(c.A)
}

// increment n by 1 and set the flags accordingly.
//
//	INR r, INR M
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Not affected.
//	AC - Set if carry from bit 3.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 1
	c.shouldSetFlag(FlagAuxCarry, incremented&0x0F == 0)
	c.setZSP(incremented)
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DCR r, DCR M
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Not affected.
//	AC - Set unless the low nibble borrowed.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 1
	c.shouldSetFlag(FlagAuxCarry, decremented&0x0F != 0x0F)
	c.setZSP(decremented)
	return decremented
}

// addHL adds value to HL.
//
//	DAD B, DAD D, DAD H, DAD SP
//
// Flags affected:
//
//	CY - Set if carry from bit 15.
func (c *CPU) addHL(value uint16) {
	sum := uint32(c.HL.Uint16()) + uint32(value)
	c.shouldSetFlag(FlagCarry, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// decimalAdjust adjusts the accumulator to packed BCD after an addition.
//
//	DAA
//
// Flags affected:
//
//	Z  - Set if result is zero.
//	S  - Set if bit 7 of the result is set.
//	P  - Set if the result has even parity.
//	CY - Set if the high nibble was corrected, otherwise unchanged.
//	AC - Set if the low nibble correction carried.
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(FlagCarry)
	correction := uint8(0)
	low, high := c.A&0x0F, c.A>>4

	if c.isFlagSet(FlagAuxCarry) || low > 9 {
		correction += 0x06
	}
	if carry || high > 9 || (high >= 9 && low > 9) {
		correction += 0x60
		carry = true
	}

	c.add(correction, false)
	c.shouldSetFlag(FlagCarry, carry)
}

// rotateLeft rotates the accumulator left by 1 bit. Bit 7 is copied to
// both the carry flag and bit 0.
//
//	RLC
//
// Flags affected:
//
//	CY - Contains old bit 7 data.
func (c *CPU) rotateLeft() {
	carry := c.A >> 7
	c.A = c.A<<1 | carry
	c.shouldSetFlag(FlagCarry, carry == 1)
}

// rotateRight rotates the accumulator right by 1 bit. Bit 0 is copied to
// both the carry flag and bit 7.
//
//	RRC
//
// Flags affected:
//
//	CY - Contains old bit 0 data.
func (c *CPU) rotateRight() {
	carry := c.A & types.Bit0
	c.A = c.A>>1 | carry<<7
	c.shouldSetFlag(FlagCarry, carry == 1)
}

// rotateLeftThroughCarry rotates the accumulator left by 1 bit. The carry
// flag is copied to bit 0, and bit 7 is copied to the carry flag.
//
//	RAL
//
// Flags affected:
//
//	CY - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry() {
	carry := c.A&types.Bit7 != 0
	c.A <<= 1
	if c.isFlagSet(FlagCarry) {
		c.A |= types.Bit0
	}
	c.shouldSetFlag(FlagCarry, carry)
}

// rotateRightThroughCarry rotates the accumulator right by 1 bit. The carry
// flag is copied to bit 7, and bit 0 is copied to the carry flag.
//
//	RAR
//
// Flags affected:
//
//	CY - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry() {
	carry := c.A&types.Bit0 != 0
	c.A >>= 1
	if c.isFlagSet(FlagCarry) {
		c.A |= types.Bit7
	}
	c.shouldSetFlag(FlagCarry, carry)
}
