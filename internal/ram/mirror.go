package ram

// Mapped wraps a RAM with a read-only region and a mirrored region, the
// layout most 8080 arcade boards use. Writes that land in the read-only
// region are dropped, and addresses at or above MirrorStart are folded back
// onto the MirrorSize bytes that begin at MirrorBase.
type Mapped struct {
	RAM

	ReadOnlyEnd uint16 // writes below this address are ignored

	MirrorBase  uint16
	MirrorSize  uint16
	MirrorStart uint16 // zero disables mirroring
}

func (m *Mapped) resolve(address uint16) uint16 {
	if m.MirrorStart != 0 && address >= m.MirrorStart {
		return m.MirrorBase + (address-m.MirrorBase)%m.MirrorSize
	}
	return address
}

// Read returns the value at the given address after mirroring.
func (m *Mapped) Read(address uint16) uint8 {
	return m.RAM.Read(m.resolve(address))
}

// Write writes the value to the given address after mirroring, unless the
// address falls into the read-only region.
func (m *Mapped) Write(address uint16, value uint8) {
	address = m.resolve(address)
	if address < m.ReadOnlyEnd {
		return
	}
	m.RAM.Write(address, value)
}
