package cpu

// push pushes a 16-bit value onto the stack, high byte first, so that the
// low byte ends up at the new SP.
func (c *CPU) push(value uint16) {
	c.SP--
	c.mem.Write(c.SP, uint8(value>>8))
	c.SP--
	c.mem.Write(c.SP, uint8(value))
}

// pop pops a 16-bit value off the stack.
func (c *CPU) pop() uint16 {
	low := c.mem.Read(c.SP)
	c.SP++
	high := c.mem.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// pushPSW pushes the accumulator and the flags.
//
//	PUSH PSW
func (c *CPU) pushPSW() {
	c.push(uint16(c.A)<<8 | uint16(c.PSW()))
}

// popPSW pops the accumulator and the flags. The fixed bits of the flag
// byte are restored to their constant values whatever was on the stack.
//
//	POP PSW
func (c *CPU) popPSW() {
	value := c.pop()
	c.A = uint8(value >> 8)
	c.SetPSW(uint8(value))
}

// exchangeStackTop swaps HL with the word on top of the stack.
//
//	XTHL
func (c *CPU) exchangeStackTop() {
	low := c.mem.Read(c.SP)
	high := c.mem.Read(c.SP + 1)
	c.mem.Write(c.SP, c.L)
	c.mem.Write(c.SP+1, c.H)
	c.H, c.L = high, low
}
