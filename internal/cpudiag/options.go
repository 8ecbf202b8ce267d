package cpudiag

import (
	"io"

	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/pkg/log"
)

// Opt configures a Harness.
type Opt func(h *Harness)

// WithLogger sets the logger used by the harness and its CPU.
func WithLogger(l log.Logger) Opt {
	return func(h *Harness) {
		h.log = l
	}
}

// WithTrace writes the disassembly and CPU state before every instruction
// to w.
func WithTrace(w io.Writer) Opt {
	return func(h *Harness) {
		h.trace = w
	}
}

// WithCPUOptions passes options through to the CPU, e.g.
// cpu.WithStrictDecoding.
func WithCPUOptions(opts ...cpu.Opt) Opt {
	return func(h *Harness) {
		h.cpuOpts = append(h.cpuOpts, opts...)
	}
}

// WithPatch overwrites memory at address after the program is loaded.
func WithPatch(address uint16, data ...byte) Opt {
	return func(h *Harness) {
		h.patches = append(h.patches, patch{address: address, data: data})
	}
}

// CPUDiagStackFix corrects the stack pointer of the widely circulated
// cpudiag.bin, which was assembled for the wrong origin and sets its
// stack to 06ADH instead of 07ADH.
func CPUDiagStackFix() Opt {
	return WithPatch(0x0170, 0x07)
}
