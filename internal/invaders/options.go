package invaders

import (
	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/pkg/log"
)

// Opt configures a Machine.
type Opt func(m *Machine)

// WithConfig sets the DIP switches and key bindings.
func WithConfig(c Config) Opt {
	return func(m *Machine) {
		m.config = c
	}
}

// WithLogger sets the logger used by the machine and its CPU.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) {
		m.log = l
	}
}

// WithSoundListener registers fn to receive sound events. fn is called on
// the emulation goroutine and must not block.
func WithSoundListener(fn func(SoundEvent)) Opt {
	return func(m *Machine) {
		m.listener = fn
	}
}

// WithCPUOptions passes options through to the CPU.
func WithCPUOptions(opts ...cpu.Opt) Opt {
	return func(m *Machine) {
		m.cpuOpts = append(m.cpuOpts, opts...)
	}
}
