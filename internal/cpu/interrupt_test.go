package cpu

import (
	"errors"
	"testing"
)

func TestRaiseInterrupt_Disabled(t *testing.T) {
	c := newTestCPU(t, 0x00)
	c.PC = 0x1234
	before := c.Snapshot()

	if c.RaiseInterrupt() {
		t.Error("expected interrupt to be dropped")
	}
	if after := c.Snapshot(); after != before {
		t.Errorf("expected state unchanged\n%s\n%s", before, after)
	}
	if c.Read16(0xEFFE) != 0 {
		t.Errorf("expected nothing pushed, got %04X", c.Read16(0xEFFE))
	}
}

func TestRaiseInterrupt_Enabled(t *testing.T) {
	c := newTestCPU(t, 0xFB) // EI
	c.Write(0x1234, 0x00)
	step(t, c)
	if !c.InterruptsEnabled() {
		t.Fatal("expected EI to enable interrupts")
	}
	c.PC = 0x1234

	if !c.RaiseInterrupt() {
		t.Fatal("expected interrupt to be serviced")
	}
	if c.InterruptsEnabled() {
		t.Error("expected interrupts to be disabled")
	}
	if c.PC != DefaultInterruptVector {
		t.Errorf("expected PC to be %04X, got %04X", DefaultInterruptVector, c.PC)
	}
	if c.SP != 0xEFFE || c.Read16(c.SP) != 0x1234 {
		t.Errorf("expected 1234 pushed at EFFE, got %04X at %04X", c.Read16(c.SP), c.SP)
	}
	if c.Cycles() != 4+interruptCycles {
		t.Errorf("expected %d cycles, got %d", 4+interruptCycles, c.Cycles())
	}

	// a second request is dropped until the handler re-enables
	if c.RaiseInterrupt() {
		t.Error("expected nested interrupt to be dropped")
	}
}

func TestRaiseInterrupt_Vector(t *testing.T) {
	c := New(WithInterruptVector(0x0038), WithStackPointer(0x2400))
	c.Write(0, 0xFB)
	step(t, c)
	c.RaiseInterrupt()
	if c.PC != 0x0038 {
		t.Errorf("expected PC to be 0038, got %04X", c.PC)
	}
}

func TestInterrupt(t *testing.T) {
	for n := uint8(0); n < 8; n++ {
		c := newTestCPU(t, 0xFB)
		step(t, c)
		ok, err := c.Interrupt(n)
		if err != nil || !ok {
			t.Fatalf("RST %d: expected serviced, got %v %v", n, ok, err)
		}
		if c.PC != uint16(n)<<3 {
			t.Errorf("RST %d: expected PC %04X, got %04X", n, uint16(n)<<3, c.PC)
		}
	}

	c := New()
	if _, err := c.Interrupt(8); !errors.Is(err, ErrInvalidRST) {
		t.Errorf("expected ErrInvalidRST, got %v", err)
	}
}

func TestHalt(t *testing.T) {
	c := newTestCPU(t, 0xFB, 0x76, 0x00) // EI; HLT; NOP
	step(t, c)
	if cycles := step(t, c); cycles != 7 {
		t.Errorf("expected HLT to take 7 cycles, got %d", cycles)
	}
	if !c.Halted() {
		t.Fatal("expected CPU to be halted")
	}

	for i := 0; i < 3; i++ {
		if cycles := step(t, c); cycles != haltCycles {
			t.Errorf("expected halted step to take %d cycles, got %d", haltCycles, cycles)
		}
	}
	if c.PC != 0x0002 {
		t.Errorf("expected PC to stay at 0002, got %04X", c.PC)
	}

	if !c.RaiseInterrupt() {
		t.Fatal("expected interrupt to be serviced")
	}
	if c.Halted() {
		t.Error("expected interrupt to wake the CPU")
	}
	if c.Read16(c.SP) != 0x0002 {
		t.Errorf("expected return address 0002, got %04X", c.Read16(c.SP))
	}
}

func TestHalt_InterruptsDisabled(t *testing.T) {
	c := newTestCPU(t, 0x76)
	step(t, c)
	if c.RaiseInterrupt() {
		t.Error("expected interrupt to be dropped")
	}
	if !c.Halted() {
		t.Error("expected CPU to stay halted")
	}
}

func TestDisableInterrupts(t *testing.T) {
	c := newTestCPU(t, 0xFB, 0xF3) // EI; DI
	step(t, c)
	step(t, c)
	if c.InterruptsEnabled() {
		t.Error("expected DI to disable interrupts")
	}
}
