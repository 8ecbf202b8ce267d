package cpu

import "fmt"

// RaiseInterrupt signals an interrupt to the CPU. It is only serviced if
// interrupts are enabled, otherwise the request is dropped and false is
// returned; there is no pending state. Servicing an interrupt disables
// interrupts, wakes the CPU from HLT, pushes PC and jumps to the interrupt
// vector. A CPU not created with New never accepts an interrupt.
func (c *CPU) RaiseInterrupt() bool {
	return c.serviceInterrupt(c.vector)
}

// Interrupt signals an interrupt on behalf of a device that places RST n
// on the data bus, jumping to the vector n*8. It follows the same rules as
// RaiseInterrupt.
func (c *CPU) Interrupt(n uint8) (bool, error) {
	if n > 7 {
		return false, fmt.Errorf("RST %d: %w", n, ErrInvalidRST)
	}
	if !c.initialized() {
		return false, ErrNotInitialized
	}
	return c.serviceInterrupt(uint16(n) << 3), nil
}

func (c *CPU) serviceInterrupt(vector uint16) bool {
	if !c.initialized() {
		return false
	}
	if !c.interruptsEnabled {
		c.log.Debugf("interrupt to %04X dropped, interrupts disabled", vector)
		return false
	}

	c.interruptsEnabled = false
	c.halted = false
	c.push(c.PC)
	c.PC = vector
	c.cycles += interruptCycles
	return true
}
