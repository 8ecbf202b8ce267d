package cpu

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	name      string     // mnemonic, with operands
	length    uint8      // bytes, including the opcode
	cycles    uint8      // cycles, or cycles when the condition fails
	taken     uint8      // cycles when a conditional call or return is taken
	fn        func(*CPU) // fn called when executing the instruction
	undefined bool       // opcode is not documented, fn is its alias
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string { return i.name }

// Length returns the encoded length of the instruction in bytes.
func (i Instruction) Length() uint8 { return i.length }

// Cycles returns the number of cycles the instruction takes. For
// conditional calls and returns this is the count when the condition
// fails.
func (i Instruction) Cycles() uint8 { return i.cycles }

// TakenCycles returns the number of cycles a conditional call or return
// takes when its condition holds. For every other instruction it is the
// same as Cycles.
func (i Instruction) TakenCycles() uint8 { return i.taken }

// Defined returns false for the opcodes the 8080 documentation leaves
// undefined.
func (i Instruction) Defined() bool { return !i.undefined }

// InstructionSet holds all 256 opcodes, indexed by opcode.
var InstructionSet [256]Instruction

// DefineInstruction defines the instruction for opcode in the
// InstructionSet.
func DefineInstruction(opcode uint8, name string, length, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		length: length,
		cycles: cycles,
		taken:  cycles,
		fn:     fn,
	}
}

// defineConditional defines a conditional call or return, which takes a
// different number of cycles depending on the outcome.
func defineConditional(opcode uint8, name string, length, cycles, taken uint8, fn func(*CPU)) {
	DefineInstruction(opcode, name, length, cycles, fn)
	InstructionSet[opcode].taken = taken
}

// defineUndefined aliases an undocumented opcode to the instruction the
// hardware actually executes for it.
func defineUndefined(opcode, alias uint8) {
	i := InstructionSet[alias]
	i.name = "*" + i.name
	i.undefined = true
	InstructionSet[opcode] = i
}
