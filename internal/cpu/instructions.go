package cpu

import "fmt"

// registerNames are the operand names of the 3-bit register field.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// pairNames are the operand names of the 2-bit pair field, as used by
// LXI, INX, DCX and DAD. PUSH and POP name pair 3 PSW instead.
var pairNames = [4]string{"B", "D", "H", "SP"}

// conditionNames are the suffixes of the 3-bit condition field.
var conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// operandCycles returns cycles for a register operand, or the memory
// cycles for the M operand.
func operandCycles(index uint8, register, memory uint8) uint8 {
	if index == 6 {
		return memory
	}
	return register
}

func init() {
	defineDataTransfer()
	defineArithmetic()
	defineLogical()
	defineBranch()
	defineStack()
	defineControl()

	// undocumented opcodes, aliased to what the silicon executes
	for _, opcode := range []uint8{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		defineUndefined(opcode, 0x00)
	}
	defineUndefined(0xCB, 0xC3)
	defineUndefined(0xD9, 0xC9)
	for _, opcode := range []uint8{0xDD, 0xED, 0xFD} {
		defineUndefined(opcode, 0xCD)
	}
}

func defineDataTransfer() {
	// 0x40 - 0x7F - MOV d, s (0x76 is HLT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue
			}
			d, s := dst, src
			DefineInstruction(0x40|d<<3|s, fmt.Sprintf("MOV %s,%s", registerNames[d], registerNames[s]), 1,
				operandCycles(d, operandCycles(s, 5, 7), 7),
				func(c *CPU) {
					c.setOperand(d, c.operand(s))
				})
		}
	}

	// 0x06, 0x0E ... 0x3E - MVI r, d8
	for r := uint8(0); r < 8; r++ {
		reg := r
		DefineInstruction(reg<<3|0x06, fmt.Sprintf("MVI %s,d8", registerNames[reg]), 2, operandCycles(reg, 7, 10), func(c *CPU) {
			c.setOperand(reg, c.readOperand())
		})
	}

	// 0x01, 0x11, 0x21 - LXI rp, d16
	for p := uint8(0); p < 3; p++ {
		pair := p
		DefineInstruction(pair<<4|0x01, fmt.Sprintf("LXI %s,d16", pairNames[pair]), 3, 10, func(c *CPU) {
			c.registerPair(pair).SetUint16(c.readOperand16())
		})
	}
	DefineInstruction(0x31, "LXI SP,d16", 3, 10, func(c *CPU) {
		c.SP = c.readOperand16()
	})

	DefineInstruction(0x02, "STAX B", 1, 7, func(c *CPU) {
		c.mem.Write(c.BC.Uint16(), c.A)
	})
	DefineInstruction(0x12, "STAX D", 1, 7, func(c *CPU) {
		c.mem.Write(c.DE.Uint16(), c.A)
	})
	DefineInstruction(0x0A, "LDAX B", 1, 7, func(c *CPU) {
		c.A = c.mem.Read(c.BC.Uint16())
	})
	DefineInstruction(0x1A, "LDAX D", 1, 7, func(c *CPU) {
		c.A = c.mem.Read(c.DE.Uint16())
	})
	DefineInstruction(0x22, "SHLD a16", 3, 16, func(c *CPU) {
		address := c.readOperand16()
		c.mem.Write(address, c.L)
		c.mem.Write(address+1, c.H)
	})
	DefineInstruction(0x2A, "LHLD a16", 3, 16, func(c *CPU) {
		address := c.readOperand16()
		c.L = c.mem.Read(address)
		c.H = c.mem.Read(address + 1)
	})
	DefineInstruction(0x32, "STA a16", 3, 13, func(c *CPU) {
		c.mem.Write(c.readOperand16(), c.A)
	})
	DefineInstruction(0x3A, "LDA a16", 3, 13, func(c *CPU) {
		c.A = c.mem.Read(c.readOperand16())
	})
	DefineInstruction(0xEB, "XCHG", 1, 4, func(c *CPU) {
		c.D, c.H = c.H, c.D
		c.E, c.L = c.L, c.E
	})
}

func defineArithmetic() {
	// 0x80 - 0xBF - ALU operations on registers and M. The logical half
	// (ANA, XRA, ORA, CMP) is defined by defineLogical.
	for r := uint8(0); r < 8; r++ {
		src := r
		cycles := operandCycles(src, 4, 7)
		DefineInstruction(0x80|src, "ADD "+registerNames[src], 1, cycles, func(c *CPU) {
			c.add(c.operand(src), false)
		})
		DefineInstruction(0x88|src, "ADC "+registerNames[src], 1, cycles, func(c *CPU) {
			c.add(c.operand(src), true)
		})
		DefineInstruction(0x90|src, "SUB "+registerNames[src], 1, cycles, func(c *CPU) {
			c.sub(c.operand(src), false)
		})
		DefineInstruction(0x98|src, "SBB "+registerNames[src], 1, cycles, func(c *CPU) {
			c.sub(c.operand(src), true)
		})
	}
	DefineInstruction(0xC6, "ADI d8", 2, 7, func(c *CPU) {
		c.add(c.readOperand(), false)
	})
	DefineInstruction(0xCE, "ACI d8", 2, 7, func(c *CPU) {
		c.add(c.readOperand(), true)
	})
	DefineInstruction(0xD6, "SUI d8", 2, 7, func(c *CPU) {
		c.sub(c.readOperand(), false)
	})
	DefineInstruction(0xDE, "SBI d8", 2, 7, func(c *CPU) {
		c.sub(c.readOperand(), true)
	})

	// 0x04, 0x0C ... 0x3C - INR r; 0x05, 0x0D ... 0x3D - DCR r
	for r := uint8(0); r < 8; r++ {
		reg := r
		cycles := operandCycles(reg, 5, 10)
		DefineInstruction(reg<<3|0x04, "INR "+registerNames[reg], 1, cycles, func(c *CPU) {
			c.setOperand(reg, c.increment(c.operand(reg)))
		})
		DefineInstruction(reg<<3|0x05, "DCR "+registerNames[reg], 1, cycles, func(c *CPU) {
			c.setOperand(reg, c.decrement(c.operand(reg)))
		})
	}

	// 0x03, 0x13, 0x23 - INX rp; 0x0B, 0x1B, 0x2B - DCX rp; 0x09 ... - DAD rp
	for p := uint8(0); p < 3; p++ {
		pair := p
		DefineInstruction(pair<<4|0x03, "INX "+pairNames[pair], 1, 5, func(c *CPU) {
			rp := c.registerPair(pair)
			rp.SetUint16(rp.Uint16() + 1)
		})
		DefineInstruction(pair<<4|0x0B, "DCX "+pairNames[pair], 1, 5, func(c *CPU) {
			rp := c.registerPair(pair)
			rp.SetUint16(rp.Uint16() - 1)
		})
		DefineInstruction(pair<<4|0x09, "DAD "+pairNames[pair], 1, 10, func(c *CPU) {
			c.addHL(c.registerPair(pair).Uint16())
		})
	}
	DefineInstruction(0x33, "INX SP", 1, 5, func(c *CPU) {
		c.SP++
	})
	DefineInstruction(0x3B, "DCX SP", 1, 5, func(c *CPU) {
		c.SP--
	})
	DefineInstruction(0x39, "DAD SP", 1, 10, func(c *CPU) {
		c.addHL(c.SP)
	})

	DefineInstruction(0x27, "DAA", 1, 4, func(c *CPU) {
		c.decimalAdjust()
	})
}

func defineLogical() {
	for r := uint8(0); r < 8; r++ {
		src := r
		cycles := operandCycles(src, 4, 7)
		DefineInstruction(0xA0|src, "ANA "+registerNames[src], 1, cycles, func(c *CPU) {
			c.and(c.operand(src))
		})
		DefineInstruction(0xA8|src, "XRA "+registerNames[src], 1, cycles, func(c *CPU) {
			c.xor(c.operand(src))
		})
		DefineInstruction(0xB0|src, "ORA "+registerNames[src], 1, cycles, func(c *CPU) {
			c.or(c.operand(src))
		})
		DefineInstruction(0xB8|src, "CMP "+registerNames[src], 1, cycles, func(c *CPU) {
			c.compare(c.operand(src))
		})
	}
	DefineInstruction(0xE6, "ANI d8", 2, 7, func(c *CPU) {
		c.and(c.readOperand())
	})
	DefineInstruction(0xEE, "XRI d8", 2, 7, func(c *CPU) {
		c.xor(c.readOperand())
	})
	DefineInstruction(0xF6, "ORI d8", 2, 7, func(c *CPU) {
		c.or(c.readOperand())
	})
	DefineInstruction(0xFE, "CPI d8", 2, 7, func(c *CPU) {
		c.compare(c.readOperand())
	})

	DefineInstruction(0x07, "RLC", 1, 4, func(c *CPU) {
		c.rotateLeft()
	})
	DefineInstruction(0x0F, "RRC", 1, 4, func(c *CPU) {
		c.rotateRight()
	})
	DefineInstruction(0x17, "RAL", 1, 4, func(c *CPU) {
		c.rotateLeftThroughCarry()
	})
	DefineInstruction(0x1F, "RAR", 1, 4, func(c *CPU) {
		c.rotateRightThroughCarry()
	})
	DefineInstruction(0x2F, "CMA", 1, 4, func(c *CPU) {
		c.A = ^c.A
	})
	DefineInstruction(0x37, "STC", 1, 4, func(c *CPU) {
		c.setFlag(FlagCarry)
	})
	DefineInstruction(0x3F, "CMC", 1, 4, func(c *CPU) {
		c.shouldSetFlag(FlagCarry, !c.isFlagSet(FlagCarry))
	})
}

func defineBranch() {
	DefineInstruction(0xC3, "JMP a16", 3, 10, func(c *CPU) {
		c.jumpAbsolute(true)
	})
	DefineInstruction(0xCD, "CALL a16", 3, 17, func(c *CPU) {
		c.call(true)
	})
	DefineInstruction(0xC9, "RET", 1, 10, func(c *CPU) {
		c.ret(true)
	})
	DefineInstruction(0xE9, "PCHL", 1, 5, func(c *CPU) {
		c.PC = c.HL.Uint16()
	})

	// 0xC0 - 0xFF, condition in bits 3-5
	for cc := uint8(0); cc < 8; cc++ {
		opcode := 0xC0 | cc<<3
		defineConditional(opcode, "R"+conditionNames[cc], 1, 5, 11, func(c *CPU) {
			c.ret(c.condition(opcode))
		})
		DefineInstruction(opcode|0x02, "J"+conditionNames[cc]+" a16", 3, 10, func(c *CPU) {
			c.jumpAbsolute(c.condition(opcode))
		})
		defineConditional(opcode|0x04, "C"+conditionNames[cc]+" a16", 3, 11, 17, func(c *CPU) {
			c.call(c.condition(opcode))
		})

		n := cc
		DefineInstruction(opcode|0x07, fmt.Sprintf("RST %d", n), 1, 11, func(c *CPU) {
			c.restart(n)
		})
	}
}

func defineStack() {
	for p := uint8(0); p < 3; p++ {
		pair := p
		DefineInstruction(0xC5|pair<<4, "PUSH "+pairNames[pair], 1, 11, func(c *CPU) {
			c.push(c.registerPair(pair).Uint16())
		})
		DefineInstruction(0xC1|pair<<4, "POP "+pairNames[pair], 1, 10, func(c *CPU) {
			c.registerPair(pair).SetUint16(c.pop())
		})
	}
	DefineInstruction(0xF5, "PUSH PSW", 1, 11, func(c *CPU) {
		c.pushPSW()
	})
	DefineInstruction(0xF1, "POP PSW", 1, 10, func(c *CPU) {
		c.popPSW()
	})
	DefineInstruction(0xE3, "XTHL", 1, 18, func(c *CPU) {
		c.exchangeStackTop()
	})
	DefineInstruction(0xF9, "SPHL", 1, 5, func(c *CPU) {
		c.SP = c.HL.Uint16()
	})
}

func defineControl() {
	DefineInstruction(0x00, "NOP", 1, 4, func(c *CPU) {})
	DefineInstruction(0x76, "HLT", 1, 7, func(c *CPU) {
		c.halted = true
	})
	DefineInstruction(0xF3, "DI", 1, 4, func(c *CPU) {
		c.interruptsEnabled = false
	})
	DefineInstruction(0xFB, "EI", 1, 4, func(c *CPU) {
		c.interruptsEnabled = true
	})
	DefineInstruction(0xDB, "IN d8", 2, 10, func(c *CPU) {
		c.A = c.ports.In(c.readOperand())
	})
	DefineInstruction(0xD3, "OUT d8", 2, 10, func(c *CPU) {
		c.ports.Out(c.readOperand(), c.A)
	})
}
