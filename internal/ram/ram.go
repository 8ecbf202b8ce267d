// Package ram provides the flat 64 KiB memory of the 8080.
package ram

// Size is the number of addressable bytes, the full 16-bit address space.
const Size = 0x10000

// RAM represents a block of memory addressed by the CPU. Every 16-bit
// address is valid, so there are no out of range accesses.
type RAM interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Flat is a RAM backed by a single 64 KiB array with no protection or
// mirroring.
type Flat struct {
	data [Size]uint8
}

// NewRAM returns a new, zeroed, Flat RAM.
func NewRAM() *Flat {
	return &Flat{}
}

// Read returns the value at the given address.
func (r *Flat) Read(address uint16) uint8 {
	return r.data[address]
}

// Write writes the value to the given address.
func (r *Flat) Write(address uint16, value uint8) {
	r.data[address] = value
}

// Slice returns a copy of the bytes from start to end inclusive. If end is
// below start the range wraps around the top of memory.
func (r *Flat) Slice(start, end uint16) []byte {
	out := make([]byte, 0, int(end-start)+1)
	for a := start; ; a++ {
		out = append(out, r.data[a])
		if a == end {
			break
		}
	}
	return out
}

// Bytes exposes the backing array. Callers must not retain it across
// writes made by the CPU if they need a stable copy.
func (r *Flat) Bytes() []byte {
	return r.data[:]
}
