package cpu

import "testing"

func TestStack_RoundTrip(t *testing.T) {
	pairs := []struct {
		name  string
		push  uint8
		pop   uint8
		value func(c *CPU) uint16
		set   func(c *CPU, v uint16)
	}{
		{"B", 0xC5, 0xC1, func(c *CPU) uint16 { return c.BC.Uint16() }, func(c *CPU, v uint16) { c.BC.SetUint16(v) }},
		{"D", 0xD5, 0xD1, func(c *CPU) uint16 { return c.DE.Uint16() }, func(c *CPU, v uint16) { c.DE.SetUint16(v) }},
		{"H", 0xE5, 0xE1, func(c *CPU) uint16 { return c.HL.Uint16() }, func(c *CPU, v uint16) { c.HL.SetUint16(v) }},
		{"PSW", 0xF5, 0xF1,
			func(c *CPU) uint16 { return uint16(c.A)<<8 | uint16(c.PSW()) },
			func(c *CPU, v uint16) { c.A = uint8(v >> 8); c.SetPSW(uint8(v)) }},
	}
	values := []uint16{0x0000, 0x1234, 0xFFFF, 0x8001, 0x00D7}

	for _, p := range pairs {
		p := p
		t.Run(p.name, func(t *testing.T) {
			for _, sp := range []uint16{0xF000, 0x0000, 0x0001} {
				for _, v := range values {
					c := newTestCPU(t, p.push, p.pop)
					c.SP = sp
					p.set(c, v)
					want := p.value(c)

					step(t, c)
					p.set(c, 0)
					step(t, c)

					if got := p.value(c); got != want {
						t.Errorf("SP %04X: expected %04X, got %04X", sp, want, got)
					}
					if c.SP != sp {
						t.Errorf("expected SP to return to %04X, got %04X", sp, c.SP)
					}
				}
			}
		})
	}
}

func TestStack_Wrap(t *testing.T) {
	c := newTestCPU(t, 0xC5) // PUSH B
	c.SP = 0x0000
	c.BC.SetUint16(0xBEEF)
	step(t, c)

	if c.SP != 0xFFFE {
		t.Errorf("expected SP to be FFFE, got %04X", c.SP)
	}
	if c.Read(0xFFFF) != 0xBE || c.Read(0xFFFE) != 0xEF {
		t.Errorf("expected high byte at FFFF and low byte at FFFE, got %02X %02X", c.Read(0xFFFF), c.Read(0xFFFE))
	}
}

func TestStack_PSWFixedBits(t *testing.T) {
	c := newTestCPU(t, 0xF1) // POP PSW
	c.Write16(0xF000, 0x42FF)
	step(t, c)

	if c.A != 0x42 {
		t.Errorf("expected A to be 42, got %02X", c.A)
	}
	if c.PSW() != 0xD7 {
		t.Errorf("expected PSW D7, got %02X", c.PSW())
	}

	c = newTestCPU(t, 0xF1)
	c.Write16(0xF000, 0x0000)
	step(t, c)
	if c.PSW() != 0x02 {
		t.Errorf("expected PSW 02, got %02X", c.PSW())
	}
}

func TestStack_XTHL(t *testing.T) {
	c := newTestCPU(t, 0xE3)
	c.SP = 0x2000
	c.Write16(0x2000, 0xCAFE)
	c.HL.SetUint16(0x1234)

	if cycles := step(t, c); cycles != 18 {
		t.Errorf("expected 18 cycles, got %d", cycles)
	}
	if c.HL.Uint16() != 0xCAFE {
		t.Errorf("expected HL to be CAFE, got %04X", c.HL.Uint16())
	}
	if c.Read16(0x2000) != 0x1234 {
		t.Errorf("expected stack top to be 1234, got %04X", c.Read16(0x2000))
	}
	if c.SP != 0x2000 {
		t.Errorf("expected SP unchanged, got %04X", c.SP)
	}
}

func TestStack_SPHL(t *testing.T) {
	c := newTestCPU(t, 0xF9)
	c.HL.SetUint16(0x3FFF)
	step(t, c)
	if c.SP != 0x3FFF {
		t.Errorf("expected SP to be 3FFF, got %04X", c.SP)
	}
}
