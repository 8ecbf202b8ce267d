package invaders

// ShiftRegister is the external 16-bit shift register the board provides,
// since the 8080 can only shift by one bit at a time.
//
//	write port 4  shift data in: value = value>>8 | data<<8
//	write port 2  set the shift amount (bits 0-2)
//	read port 3   the 8 bits starting offset bits below the top
type ShiftRegister struct {
	value  uint16
	offset uint8
}

// Write shifts data into the high byte, moving the old high byte into the
// low byte.
func (s *ShiftRegister) Write(data uint8) {
	s.value = s.value>>8 | uint16(data)<<8
}

// SetOffset sets the shift amount. Only the low three bits are wired.
func (s *ShiftRegister) SetOffset(offset uint8) {
	s.offset = offset & 0x07
}

// Read returns the shifted result.
func (s *ShiftRegister) Read() uint8 {
	return uint8(s.value >> (8 - s.offset))
}
