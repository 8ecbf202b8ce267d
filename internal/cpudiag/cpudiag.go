// Package cpudiag runs CP/M diagnostic programs, such as cpudiag.bin and
// TST8080.COM, against the CPU.
//
// Just enough of CP/M is provided for them to report their results: the
// program is loaded at the transient program area (0x0100), a warm boot at
// 0x0000 ends the run and a BDOS entry at 0x0005 prints to the console.
// Both are tiny 8080 stubs that hand control to the harness with an OUT:
//
//	0000  OUT 00H     ; warm boot, stop
//	0005  OUT 01H     ; BDOS call, function in C
//	0007  RET
package cpudiag

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/pkg/log"
)

const (
	// LoadAddress is the start of the CP/M transient program area.
	LoadAddress uint16 = 0x0100
	// StackTop is where the stack starts. A return address of 0x0000 is
	// left on it so a program that RETs from its entry point warm boots.
	StackTop uint16 = 0xF000

	bdosAddress = 0x0005

	portWarmBoot = 0x00
	portBDOS     = 0x01

	// BDOS functions
	consoleOutput = 0x02
	printString   = 0x09
)

// ErrStepLimit is returned by Run when the program has not warm booted
// after the given number of instructions.
var ErrStepLimit = errors.New("step limit reached")

// ErrProgramTooLarge is returned by New when a program would reach the
// return address left below StackTop.
var ErrProgramTooLarge = errors.New("program overlaps the stack")

// Result summarises a finished run.
type Result struct {
	// Output is everything the program printed through the BDOS.
	Output string
	// Instructions is the number of instructions executed.
	Instructions uint64
	// Cycles is the number of cycles executed.
	Cycles uint64
}

// Harness drives a CPU loaded with a CP/M program.
type Harness struct {
	CPU *cpu.CPU

	console bytes.Buffer
	out     io.Writer
	trace   io.Writer
	log     log.Logger

	cpuOpts []cpu.Opt
	patches []patch
	exited  bool
}

type patch struct {
	address uint16
	data    []byte
}

// New loads program at LoadAddress and installs the CP/M stubs. Console
// output is copied to out as it is printed, which may be nil.
func New(program []byte, out io.Writer, opts ...Opt) (*Harness, error) {
	h := &Harness{
		log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.out = &h.console
	if out != nil {
		h.out = io.MultiWriter(&h.console, out)
	}

	cpuOpts := []cpu.Opt{
		cpu.WithPorts(h),
		cpu.WithEntryPoint(LoadAddress),
		cpu.WithStackPointer(StackTop - 2),
		cpu.WithLogger(h.log),
	}
	h.CPU = cpu.New(append(cpuOpts, h.cpuOpts...)...)

	if end := int(LoadAddress) + len(program); end > int(StackTop-2) {
		return nil, fmt.Errorf("%d bytes ending at %04X: %w", len(program), end, ErrProgramTooLarge)
	}
	if err := h.CPU.Load(LoadAddress, program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	h.CPU.Write16(StackTop-2, 0x0000)
	if err := h.CPU.Load(0x0000, []byte{0xD3, portWarmBoot}); err != nil {
		return nil, fmt.Errorf("installing warm boot: %w", err)
	}
	if err := h.CPU.Load(bdosAddress, []byte{0xD3, portBDOS, 0xC9}); err != nil {
		return nil, fmt.Errorf("installing BDOS: %w", err)
	}

	for _, p := range h.patches {
		if err := h.CPU.Load(p.address, p.data); err != nil {
			return nil, fmt.Errorf("patching %04X: %w", p.address, err)
		}
	}

	return h, nil
}

// Exited returns true once the program has warm booted.
func (h *Harness) Exited() bool {
	return h.exited
}

// Output returns the console output so far.
func (h *Harness) Output() string {
	return h.console.String()
}

// Run executes the program until it warm boots. A limit of 0 runs without
// bound, otherwise ErrStepLimit is returned after limit instructions. The
// result is valid even when an error is returned.
func (h *Harness) Run(limit uint64) (Result, error) {
	var instructions uint64
	for !h.exited {
		if limit != 0 && instructions >= limit {
			return h.result(instructions), fmt.Errorf("after %d instructions at %04X: %w", instructions, h.CPU.PC, ErrStepLimit)
		}

		if h.trace != nil {
			text, _ := h.CPU.Disassemble(h.CPU.PC)
			fmt.Fprintf(h.trace, "%-16s %s\n", text, h.CPU.Snapshot())
		}

		if _, err := h.CPU.Step(); err != nil {
			return h.result(instructions), err
		}
		instructions++
	}

	h.log.Debugf("program exited after %d instructions, %d cycles", instructions, h.CPU.Cycles())
	return h.result(instructions), nil
}

func (h *Harness) result(instructions uint64) Result {
	return Result{
		Output:       h.console.String(),
		Instructions: instructions,
		Cycles:       h.CPU.Cycles(),
	}
}

// In implements io.Ports. Nothing is attached for reading.
func (h *Harness) In(port uint8) uint8 {
	h.log.Debugf("read from unmapped port %02X", port)
	return 0
}

// Out implements io.Ports.
func (h *Harness) Out(port uint8, _ uint8) {
	switch port {
	case portWarmBoot:
		h.exited = true
	case portBDOS:
		h.bdos()
	default:
		h.log.Debugf("write to unmapped port %02X", port)
	}
}

// bdos performs the BDOS function selected by register C.
func (h *Harness) bdos() {
	c := h.CPU
	switch c.C {
	case consoleOutput:
		h.out.Write([]byte{c.E})
	case printString:
		var line []byte
		for address := c.DE.Uint16(); c.Read(address) != '$'; address++ {
			line = append(line, c.Read(address))
			if len(line) > 0xFFFF {
				break // unterminated
			}
		}
		h.out.Write(line)
	default:
		h.log.Debugf("unsupported BDOS function %02X", c.C)
	}
}
