//go:build !(linux || darwin || freebsd)

package terminal

import "os"

// Terminal is unavailable on this platform.
type Terminal struct{}

// Open always fails on this platform.
func Open(*os.File) (*Terminal, error) {
	return nil, ErrUnsupported
}

// Input returns nil.
func (t *Terminal) Input() *os.File {
	return nil
}

// Restore does nothing.
func (t *Terminal) Restore() error {
	return nil
}
