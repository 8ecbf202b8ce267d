// Package io defines the port interface the 8080 uses to talk to the
// machine it is installed in, along with a couple of generic
// implementations.
package io

import "fmt"

// Ports is the capability boundary between the CPU and the hardware it
// drives. The CPU calls In exactly once for every IN instruction and Out
// exactly once for every OUT instruction, passing the port number taken
// from the instruction operand. Neither call may block.
type Ports interface {
	In(port uint8) uint8
	Out(port uint8, value uint8)
}

// NullPorts is a Ports that has nothing attached. Reads return 0 and
// writes are discarded.
type NullPorts struct{}

// In implements Ports.
func (NullPorts) In(uint8) uint8 { return 0 }

// Out implements Ports.
func (NullPorts) Out(uint8, uint8) {}

// PortMap dispatches port accesses to handlers registered per port.
// Accesses to ports without a handler are passed to the Unmapped hooks,
// if set, and otherwise read as 0 and are discarded.
type PortMap struct {
	readers [256]func() uint8
	writers [256]func(uint8)

	// UnmappedRead, if set, is called for reads of ports with no reader.
	UnmappedRead func(port uint8) uint8
	// UnmappedWrite, if set, is called for writes to ports with no writer.
	UnmappedWrite func(port uint8, value uint8)
}

// NewPortMap returns an empty PortMap.
func NewPortMap() *PortMap {
	return &PortMap{}
}

// Reserve registers the read and write handlers of a port. Either may be
// nil. A port can only be reserved once.
func (p *PortMap) Reserve(port uint8, read func() uint8, write func(uint8)) {
	if p.readers[port] != nil || p.writers[port] != nil {
		panic(fmt.Sprintf("port %02X has already been reserved", port))
	}
	p.readers[port] = read
	p.writers[port] = write
}

// In implements Ports.
func (p *PortMap) In(port uint8) uint8 {
	if r := p.readers[port]; r != nil {
		return r()
	}
	if p.UnmappedRead != nil {
		return p.UnmappedRead(port)
	}
	return 0
}

// Out implements Ports.
func (p *PortMap) Out(port uint8, value uint8) {
	if w := p.writers[port]; w != nil {
		w(value)
		return
	}
	if p.UnmappedWrite != nil {
		p.UnmappedWrite(port, value)
	}
}

var (
	_ Ports = NullPorts{}
	_ Ports = (*PortMap)(nil)
)
