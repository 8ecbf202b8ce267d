package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// parityTable holds true for every byte with an even number of set bits.
var parityTable = func() [256]bool {
	var t [256]bool
	for i := 0; i < 256; i++ {
		ones := 0
		for v := i; v != 0; v >>= 1 {
			ones += v & 1
		}
		t[i] = ones%2 == 0
	}
	return t
}()

// EvenParity returns true if value has an even number of set bits.
func EvenParity(value uint8) bool {
	return parityTable[value]
}

// SetBits returns value with the bits of mask set or cleared.
func SetBits(value, mask uint8, set bool) uint8 {
	if set {
		return value | mask
	}
	return value &^ mask
}
