package ram

import "testing"

func TestFlat(t *testing.T) {
	r := NewRAM()
	r.Write(0x0000, 0x01)
	r.Write(0xFFFF, 0x02)
	if r.Read(0x0000) != 0x01 || r.Read(0xFFFF) != 0x02 {
		t.Errorf("expected 01 and 02, got %02X and %02X", r.Read(0x0000), r.Read(0xFFFF))
	}

	if got := r.Slice(0xFFFF, 0x0000); len(got) != 2 || got[0] != 0x02 || got[1] != 0x01 {
		t.Errorf("expected slice to wrap, got % X", got)
	}
	if len(r.Bytes()) != Size {
		t.Errorf("expected %d bytes, got %d", Size, len(r.Bytes()))
	}
}

func TestMapped(t *testing.T) {
	m := &Mapped{
		RAM:         NewRAM(),
		ReadOnlyEnd: 0x2000,
		MirrorBase:  0x2000,
		MirrorSize:  0x2000,
		MirrorStart: 0x4000,
	}

	t.Run("read only", func(t *testing.T) {
		m.Write(0x1FFF, 0xAA)
		if m.Read(0x1FFF) != 0x00 {
			t.Errorf("expected write to be dropped, got %02X", m.Read(0x1FFF))
		}
		m.Write(0x2000, 0xAA)
		if m.Read(0x2000) != 0xAA {
			t.Errorf("expected AA, got %02X", m.Read(0x2000))
		}
	})
	t.Run("mirror", func(t *testing.T) {
		m.Write(0x4001, 0x55)
		if m.Read(0x2001) != 0x55 {
			t.Errorf("expected mirror write to land at 2001, got %02X", m.Read(0x2001))
		}
		if m.Read(0x6001) != 0x55 || m.Read(0xE001) != 0x55 {
			t.Error("expected every mirror to read the same byte")
		}
	})
}
