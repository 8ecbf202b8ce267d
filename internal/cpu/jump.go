package cpu

// condition evaluates the 3-bit condition field (bits 3-5) of a
// conditional jump, call or return.
//
//	000 NZ  001 Z
//	010 NC  011 C
//	100 PO  101 PE
//	110 P   111 M
func (c *CPU) condition(opcode uint8) bool {
	var flag Flag
	switch opcode >> 4 & 0x3 {
	case 0:
		flag = FlagZero
	case 1:
		flag = FlagCarry
	case 2:
		flag = FlagParity
	case 3:
		flag = FlagSign
	}
	return c.isFlagSet(flag) == (opcode>>3&1 == 1)
}

// jumpAbsolute reads a 16-bit address and jumps to it if shouldJump is
// true. The operand is consumed either way.
//
//	JMP a16
//	Jcc a16
func (c *CPU) jumpAbsolute(shouldJump bool) {
	address := c.readOperand16()
	if shouldJump {
		c.PC = address
	}
}

// call reads a 16-bit address and, if shouldCall is true, pushes the
// address of the next instruction and jumps to it.
//
//	CALL a16
//	Ccc a16
func (c *CPU) call(shouldCall bool) {
	address := c.readOperand16()
	if shouldCall {
		c.push(c.PC)
		c.PC = address
		c.taken = true
	}
}

// ret pops the return address into PC if shouldReturn is true.
//
//	RET
//	Rcc
func (c *CPU) ret(shouldReturn bool) {
	if shouldReturn {
		c.PC = c.pop()
		c.taken = true
	}
}

// restart pushes PC and jumps to the restart vector n*8.
//
//	RST n
func (c *CPU) restart(n uint8) {
	c.push(c.PC)
	c.PC = uint16(n&7) << 3
}
