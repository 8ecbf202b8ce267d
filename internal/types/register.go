package types

// Register represents an 8080 Register which is used to hold an 8-bit value.
// The CPU has 7 general purpose registers: A, B, C, D, E, H and L. The flags
// are not held in a register, they are materialised into the PSW byte when
// pushed onto the stack.
type Register = uint8

// RegisterPair represents a pair of 8080 Registers which is used to hold a
// 16-bit value. The CPU has 3 register pairs: BC, DE and HL. A pair owns no
// storage of its own, it is a view over its two halves.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers represents the 8080 CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// Pair binds the register pair views to the registers in r. It must be
// called once the Registers value has reached its final address.
func (r *Registers) Pair() {
	r.BC = &RegisterPair{High: &r.B, Low: &r.C}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L}
}
