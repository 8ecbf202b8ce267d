package invaders

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/pkg/utils"
)

func newTestMachine(t *testing.T, rom []byte, opts ...Opt) *Machine {
	t.Helper()
	m, err := New(rom, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func run(t *testing.T, m *Machine, steps int) {
	t.Helper()
	for i := 0; i < steps; i++ {
		if _, err := m.CPU.Step(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestShiftRegister(t *testing.T) {
	var s ShiftRegister
	s.Write(0xAB)
	s.Write(0xCD)

	tests := []struct {
		offset   uint8
		expected uint8
	}{
		{0, 0xCD},
		{3, 0x6D},
		{7, 0xD5},
		{0xFF, 0xD5}, // only bits 0-2 are wired
	}
	for _, tt := range tests {
		s.SetOffset(tt.offset)
		if got := s.Read(); got != tt.expected {
			t.Errorf("offset %d: expected %02X, got %02X", tt.offset, tt.expected, got)
		}
	}
}

func TestShiftRegister_Ports(t *testing.T) {
	m := newTestMachine(t, []byte{
		0x3E, 0xAB, 0xD3, 0x04, // MVI A,ABH; OUT 4
		0x3E, 0xCD, 0xD3, 0x04, // MVI A,CDH; OUT 4
		0x3E, 0x03, 0xD3, 0x02, // MVI A,03H; OUT 2
		0xDB, 0x03, // IN 3
	})
	run(t, m, 7)
	if m.CPU.A != 0x6D {
		t.Errorf("expected A to be 6D, got %02X", m.CPU.A)
	}
}

func TestInputs(t *testing.T) {
	m := newTestMachine(t, []byte{0xDB, 0x01}) // IN 1

	if in := m.Inputs(); in[0] != 0x0E || in[1] != 0x08 || in[2] != 0x00 {
		t.Errorf("unexpected power on inputs % X", in)
	}

	m.Press(ButtonCoin)
	m.Press(ButtonP1Left)
	run(t, m, 1)
	if m.CPU.A != 0x29 {
		t.Errorf("expected port 1 to read 29, got %02X", m.CPU.A)
	}

	m.Release(ButtonCoin)
	m.Press(ButtonP2Fire)
	if in := m.Inputs(); in[1] != 0x28 || in[2] != 0x10 {
		t.Errorf("unexpected inputs % X", in)
	}
}

func TestKeys(t *testing.T) {
	m := newTestMachine(t, nil)
	if !m.Key('c', true) {
		t.Fatal("expected c to be bound")
	}
	if m.Inputs()[1]&0x01 == 0 {
		t.Error("expected coin to be pressed")
	}
	m.Key('c', false)
	if m.Inputs()[1]&0x01 != 0 {
		t.Error("expected coin to be released")
	}
	if m.Key('z', true) {
		t.Error("expected z to be unbound")
	}
}

func TestConfig(t *testing.T) {
	m := newTestMachine(t, nil, WithConfig(Config{Ships: 6, ExtraShipAt1000: true, HideCoinInfo: true}))
	if m.Inputs()[2] != 0x8B {
		t.Errorf("expected DIP switches 8B, got %02X", m.Inputs()[2])
	}
	if !m.Key('w', true) {
		t.Error("expected default keys when none are configured")
	}

	if _, err := New(nil, WithConfig(Config{Ships: 2})); err == nil {
		t.Error("expected an error for 2 ships")
	}
}

func TestSound(t *testing.T) {
	var events []SoundEvent
	m := newTestMachine(t, []byte{
		0x3E, 0x01, 0xD3, 0x03,
		0x3E, 0x03, 0xD3, 0x03,
		0x3E, 0x02, 0xD3, 0x03,
		0x3E, 0x00, 0xD3, 0x03,
		0x3E, 0x11, 0xD3, 0x05,
	}, WithSoundListener(func(e SoundEvent) {
		events = append(events, e)
	}))
	run(t, m, 10)

	expected := []SoundEvent{
		{SoundUFO, true},
		{SoundShot, true},
		{SoundUFO, false},
		{SoundFleet1, true},
		{SoundUFOHit, true},
	}
	if len(events) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, events)
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("event %d: expected %v %v, got %v %v", i, expected[i].Sound, expected[i].Playing, events[i].Sound, events[i].Playing)
		}
	}
}

func TestMemoryMap(t *testing.T) {
	m := newTestMachine(t, []byte{
		0x3E, 0x55, // MVI A,55H
		0x32, 0x00, 0x00, // STA 0000H
		0x32, 0x10, 0x40, // STA 4010H
	})
	run(t, m, 3)

	if m.CPU.Read(0x0000) != 0x3E {
		t.Errorf("expected ROM to be write protected, got %02X", m.CPU.Read(0x0000))
	}
	if m.CPU.Read(0x2010) != 0x55 {
		t.Errorf("expected mirror write to land at 2010, got %02X", m.CPU.Read(0x2010))
	}
	if m.Memory()[0x2010] != 0x55 {
		t.Error("expected Memory to expose work RAM")
	}
}

// interruptROM enables interrupts and spins, with handlers at RST 1 and
// RST 2 that re-enable interrupts and return.
func interruptROM() []byte {
	rom := make([]byte, 0x20)
	copy(rom, []byte{0xFB, 0x00, 0xC3, 0x01, 0x00})
	copy(rom[0x08:], []byte{0xFB, 0xC9})
	copy(rom[0x10:], []byte{0xFB, 0xC9})
	return rom
}

func TestRunFrame(t *testing.T) {
	m := newTestMachine(t, interruptROM())

	for frame := uint64(0); frame < 3; frame++ {
		stats, err := m.RunFrame()
		if err != nil {
			t.Fatal(err)
		}
		if stats.Frame != frame {
			t.Errorf("expected frame %d, got %d", frame, stats.Frame)
		}
		if stats.Interrupts != 2 || stats.Dropped != 0 {
			t.Errorf("expected 2 interrupts serviced, got %d (%d dropped)", stats.Interrupts, stats.Dropped)
		}
		if stats.Cycles < CyclesPerFrame-40 || stats.Cycles > CyclesPerFrame+40 {
			t.Errorf("expected about %d cycles, got %d", CyclesPerFrame, stats.Cycles)
		}
		if m.CPU.PC != 0x0010 {
			t.Errorf("expected frame to end in the RST 2 handler, got PC %04X", m.CPU.PC)
		}
	}
	if m.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", m.Frames())
	}
}

func TestRunFrame_InterruptsDisabled(t *testing.T) {
	m := newTestMachine(t, []byte{0xC3, 0x00, 0x00}) // JMP 0000H
	stats, err := m.RunFrame()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Interrupts != 0 || stats.Dropped != 2 {
		t.Errorf("expected 2 dropped interrupts, got %d serviced %d dropped", stats.Interrupts, stats.Dropped)
	}
}

func TestRunFrame_Halted(t *testing.T) {
	rom := interruptROM()
	rom[1] = 0x76 // HLT
	m := newTestMachine(t, rom)
	stats, err := m.RunFrame()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Interrupts != 2 {
		t.Errorf("expected interrupts to wake the CPU, got %d", stats.Interrupts)
	}
	// EI, HLT, then EI, RET, JMP, HLT after the mid screen interrupt; the
	// halts are skipped straight to the next event
	if stats.Instructions != 6 {
		t.Errorf("expected 6 instructions, got %d", stats.Instructions)
	}
	if stats.Cycles != CyclesPerFrame+11 {
		t.Errorf("expected %d cycles, got %d", CyclesPerFrame+11, stats.Cycles)
	}
	if m.scheduler.Cycle() != CyclesPerFrame {
		t.Errorf("expected scheduler at cycle %d, got %d", CyclesPerFrame, m.scheduler.Cycle())
	}
}

func TestRunFrame_HaltedInterruptsDisabled(t *testing.T) {
	m := newTestMachine(t, []byte{0x76}) // HLT
	stats, err := m.RunFrame()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Dropped != 2 || stats.Interrupts != 0 {
		t.Errorf("expected both interrupts dropped, got %d serviced and %d dropped", stats.Interrupts, stats.Dropped)
	}
	if !m.CPU.Halted() {
		t.Error("expected the CPU to stay halted")
	}
}

func TestRunFrame_Fault(t *testing.T) {
	m := newTestMachine(t, []byte{0x00, 0x08}, WithCPUOptions(cpu.WithStrictDecoding()))
	_, err := m.RunFrame()
	var decodeErr *cpu.DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Address != 0x0001 {
		t.Errorf("expected decode error at 0001, got %v", err)
	}
}

func TestFrame(t *testing.T) {
	m := newTestMachine(t, nil)
	m.CPU.Write(VRAMStart, 0x01)    // line 0, x 0
	m.CPU.Write(VRAMStart+31, 0x80) // line 0, x 255
	m.CPU.Write(VRAMStart+32, 0x02) // line 1, x 1
	m.CPU.Write(VRAMEnd, 0x80)      // line 223, x 255

	frame := m.Frame()
	if b := frame.Bounds(); b.Dx() != ScreenWidth || b.Dy() != ScreenHeight {
		t.Fatalf("expected %dx%d, got %v", ScreenWidth, ScreenHeight, b)
	}

	lit := map[[2]int]bool{{0, 255}: true, {0, 0}: true, {1, 254}: true, {223, 0}: true}
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if got := frame.ColorIndexAt(x, y) == 1; got != lit[[2]int{x, y}] {
				t.Errorf("pixel %d,%d: expected lit %v", x, y, !got)
			}
		}
	}

	shot := m.Screenshot(2)
	if b := shot.Bounds(); b.Dx() != ScreenWidth*2 || b.Dy() != ScreenHeight*2 {
		t.Fatalf("expected %dx%d, got %v", ScreenWidth*2, ScreenHeight*2, b)
	}
	white := color.RGBAModel.Convert(color.White)
	for _, p := range [][2]int{{0, 510}, {1, 511}, {0, 0}, {447, 1}} {
		if shot.At(p[0], p[1]) != white {
			t.Errorf("expected scaled pixel %v to be white", p)
		}
	}
	if shot.At(2, 2) == white {
		t.Error("expected unlit pixel to be black")
	}
}

func TestLoadROMSet(t *testing.T) {
	dir := t.TempDir()
	for i, f := range ROMFiles {
		chip := make([]byte, 0x800)
		chip[0] = byte(i + 1)
		if err := os.WriteFile(filepath.Join(dir, f.Name), chip, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rom, err := LoadROMSet(dir)
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range ROMFiles {
		if rom[f.Address] != byte(i+1) {
			t.Errorf("%s: expected %02X at %04X, got %02X", f.Name, i+1, f.Address, rom[f.Address])
		}
	}

	m := newTestMachine(t, rom)
	if m.Checksum() != utils.Checksum(rom) {
		t.Error("expected machine checksum to match the ROM")
	}

	os.Remove(filepath.Join(dir, "invaders.e"))
	if _, err := LoadROMSet(dir); !errors.Is(err, ErrMissingROM) {
		t.Errorf("expected ErrMissingROM, got %v", err)
	}
}

// TestAttractMode runs the real game for a few seconds if the ROM set has
// been placed in testdata.
func TestAttractMode(t *testing.T) {
	path := filepath.Join("testdata", "invaders")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("%s not found", path)
	}
	rom, err := LoadROMSet(path)
	if err != nil {
		t.Fatal(err)
	}
	m := newTestMachine(t, rom, WithCPUOptions(cpu.WithStrictDecoding()))
	for i := 0; i < 5*FrameRate; i++ {
		if _, err := m.RunFrame(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}

	lit := 0
	for _, b := range m.VRAM() {
		if b != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected the attract mode to draw something")
	}
}
