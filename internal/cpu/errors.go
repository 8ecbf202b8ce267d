package cpu

import "fmt"

// DecodeError is returned by Step when the CPU decodes strictly and meets
// an opcode with no defined behaviour.
type DecodeError struct {
	Opcode  uint8
	Address uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undefined opcode %02X at %04X", e.Opcode, e.Address)
}
