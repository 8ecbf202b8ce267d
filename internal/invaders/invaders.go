// Package invaders provides an emulation of the Taito/Midway Space
// Invaders arcade board built around the 8080.
//
// Memory map:
//
//	0000-1FFF  ROM (invaders.h, .g, .f, .e)
//	2000-23FF  work RAM
//	2400-3FFF  video RAM, 1 bit per pixel
//	4000-FFFF  mirrors of 2000-3FFF
//
// The board interrupts the CPU twice per frame. When the beam reaches the
// middle of the screen it places RST 1 on the bus, and at the start of the
// vertical blank RST 2.
package invaders

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/internal/io"
	"github.com/thelolagemann/go8080/internal/ram"
	"github.com/thelolagemann/go8080/internal/scheduler"
	"github.com/thelolagemann/go8080/internal/types"
	"github.com/thelolagemann/go8080/pkg/log"
	"github.com/thelolagemann/go8080/pkg/utils"
)

const (
	// FrameRate is the refresh rate of the monitor.
	FrameRate = 60
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = cpu.ClockSpeed / FrameRate

	// ROMSize is the size of the program ROM.
	ROMSize = 0x2000
	// RAMStart is the start of work RAM.
	RAMStart = 0x2000
	// RAMSize is the size of work and video RAM together.
	RAMSize = 0x2000
	// VRAMStart is the start of video RAM.
	VRAMStart = 0x2400
	// VRAMEnd is the last byte of video RAM.
	VRAMEnd = 0x3FFF

	// StackTop is where the stack pointer points at power on. The game sets
	// its own before using it.
	StackTop = 0x2400

	midScreenRST = 1
	vblankRST    = 2
)

// ErrMissingROM is returned when a ROM set lacks one of its chips.
var ErrMissingROM = errors.New("missing ROM")

// ROMFiles are the four ROM chips of the board and the address each is
// mapped at.
var ROMFiles = []struct {
	Name    string
	Address uint16
}{
	{"invaders.h", 0x0000},
	{"invaders.g", 0x0800},
	{"invaders.f", 0x1000},
	{"invaders.e", 0x1800},
}

// LoadROMSet assembles the program ROM from a directory or archive
// holding the four chips.
func LoadROMSet(path string) ([]byte, error) {
	files, err := utils.LoadArchive(path)
	if err != nil {
		return nil, err
	}

	rom := make([]byte, ROMSize)
	for _, f := range ROMFiles {
		data, ok := files[f.Name]
		if !ok {
			return nil, fmt.Errorf("%s: %s: %w", path, f.Name, ErrMissingROM)
		}
		if len(data) > 0x800 {
			return nil, fmt.Errorf("%s: %s is %d bytes, expected at most 2048", path, f.Name, len(data))
		}
		copy(rom[f.Address:], data)
	}
	return rom, nil
}

// FrameStats summarises the work done in one frame.
type FrameStats struct {
	Frame        uint64
	Cycles       uint64
	Instructions uint64
	// Interrupts counts the interrupts serviced, Dropped those raised while
	// the game had interrupts disabled.
	Interrupts int
	Dropped    int
}

// Machine is a Space Invaders board.
type Machine struct {
	CPU *cpu.CPU

	rom   *ram.Flat
	mem   *ram.Mapped
	ports *io.PortMap
	shift ShiftRegister

	inputs   [3]uint8 // input ports 0-2
	sound    [2]uint8 // last writes to ports 3 and 5
	listener func(SoundEvent)

	scheduler *scheduler.Scheduler
	config    Config
	log       log.Logger
	cpuOpts   []cpu.Opt

	frameDone  bool
	lastCycles uint64 // CPU cycles the scheduler has been ticked to
	frames     uint64
	stats      FrameStats
	checksum   uint64
}

// New returns a Machine with rom mapped at 0x0000. rom may be shorter than
// ROMSize.
func New(rom []byte, opts ...Opt) (*Machine, error) {
	if len(rom) > ROMSize {
		return nil, fmt.Errorf("ROM is %d bytes, expected at most %d", len(rom), ROMSize)
	}

	m := &Machine{
		rom:       ram.NewRAM(),
		ports:     io.NewPortMap(),
		scheduler: scheduler.NewScheduler(),
		config:    DefaultConfig(),
		log:       log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.config.Validate(); err != nil {
		return nil, err
	}
	if m.config.Keys == nil {
		m.config.Keys = DefaultKeys
	}

	copy(m.rom.Bytes(), rom)
	m.checksum = utils.Checksum(rom)
	m.mem = &ram.Mapped{
		RAM:         m.rom,
		ReadOnlyEnd: ROMSize,
		MirrorBase:  RAMStart,
		MirrorSize:  RAMSize,
		MirrorStart: RAMStart + RAMSize,
	}

	m.inputs = [3]uint8{
		types.Bit1 | types.Bit2 | types.Bit3,
		types.Bit3,
		m.config.dipSwitches(),
	}
	m.reservePorts()

	cpuOpts := []cpu.Opt{
		cpu.WithMemory(m.mem),
		cpu.WithPorts(m.ports),
		cpu.WithStackPointer(StackTop),
		cpu.WithLogger(m.log),
	}
	m.CPU = cpu.New(append(cpuOpts, m.cpuOpts...)...)

	m.scheduler.RegisterEvent(scheduler.MidScreen, m.midScreen)
	m.scheduler.RegisterEvent(scheduler.VBlank, m.vblank)
	m.scheduler.ScheduleEvent(scheduler.MidScreen, CyclesPerFrame/2)
	m.scheduler.ScheduleEvent(scheduler.VBlank, CyclesPerFrame)

	m.log.Debugf("loaded %d byte ROM, checksum %016x", len(rom), m.checksum)
	return m, nil
}

func (m *Machine) reservePorts() {
	m.ports.Reserve(0, func() uint8 { return m.inputs[0] }, nil)
	m.ports.Reserve(1, func() uint8 { return m.inputs[1] }, nil)
	m.ports.Reserve(2, func() uint8 { return m.inputs[2] }, m.shift.SetOffset)
	m.ports.Reserve(3, m.shift.Read, func(v uint8) { m.writeSound(3, v) })
	m.ports.Reserve(4, nil, m.shift.Write)
	m.ports.Reserve(5, nil, func(v uint8) { m.writeSound(5, v) })
	m.ports.Reserve(6, nil, func(uint8) {}) // watchdog

	m.ports.UnmappedRead = func(port uint8) uint8 {
		m.log.Debugf("read from unmapped port %02X", port)
		return 0
	}
	m.ports.UnmappedWrite = func(port uint8, value uint8) {
		m.log.Debugf("write of %02X to unmapped port %02X", value, port)
	}
}

// Checksum returns the xxhash of the ROM the machine was built with.
func (m *Machine) Checksum() uint64 {
	return m.checksum
}

// Frames returns the number of frames run.
func (m *Machine) Frames() uint64 {
	return m.frames
}

// Inputs returns the current values of input ports 0-2.
func (m *Machine) Inputs() [3]uint8 {
	return m.inputs
}

// Shift returns the shift register.
func (m *Machine) Shift() *ShiftRegister {
	return &m.shift
}

// Memory returns the 64 KiB backing the address space, with the work and
// video RAM at their canonical addresses.
func (m *Machine) Memory() []byte {
	return m.rom.Bytes()
}

// VRAM returns a copy of video RAM.
func (m *Machine) VRAM() []byte {
	return m.rom.Slice(VRAMStart, VRAMEnd)
}

func (m *Machine) midScreen() {
	m.interrupt(midScreenRST)
	m.scheduler.ScheduleEvent(scheduler.MidScreen, CyclesPerFrame)
}

func (m *Machine) vblank() {
	m.interrupt(vblankRST)
	m.scheduler.ScheduleEvent(scheduler.VBlank, CyclesPerFrame)
	m.frameDone = true
}

func (m *Machine) interrupt(n uint8) {
	// n is always a valid restart number
	if ok, _ := m.CPU.Interrupt(n); ok {
		m.stats.Interrupts++
	} else {
		m.stats.Dropped++
	}
}

// RunFrame runs the CPU for one frame, up to and including the vertical
// blank interrupt. It stops early if the CPU faults.
func (m *Machine) RunFrame() (FrameStats, error) {
	m.frameDone = false
	m.stats = FrameStats{Frame: m.frames}

	start := m.CPU.Cycles()
	for !m.frameDone {
		// a halted CPU can only be woken by the next event
		if m.CPU.Halted() && m.CPU.InterruptsEnabled() {
			if until, ok := m.scheduler.Until(); ok {
				m.CPU.Idle(until)
				m.lastCycles = m.CPU.Cycles()
				m.scheduler.Skip()
				continue
			}
		}

		if _, err := m.CPU.Step(); err != nil {
			m.stats.Cycles = m.CPU.Cycles() - start
			m.log.Errorf("cpu fault at cycle %d, pending events %s", m.scheduler.Cycle(), m.scheduler)
			return m.stats, err
		}
		m.stats.Instructions++

		// servicing an interrupt costs cycles too, they are picked up by
		// the next tick
		now := m.CPU.Cycles()
		m.scheduler.Tick(now - m.lastCycles)
		m.lastCycles = now
	}

	m.frames++
	m.stats.Cycles = m.CPU.Cycles() - start
	return m.stats, nil
}
