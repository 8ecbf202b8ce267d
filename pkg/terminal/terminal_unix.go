//go:build linux || darwin || freebsd

package terminal

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal is a terminal switched into cbreak mode, so keys are read as
// they are typed.
type Terminal struct {
	input *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// Open switches input into cbreak mode. Restore must be called to return
// it to canonical mode.
func Open(input *os.File) (*Terminal, error) {
	if input == nil {
		return nil, fmt.Errorf("terminal requires an input file")
	}

	t := &Terminal{input: input}
	if err := termios.Tcgetattr(input.Fd(), &t.canAttr); err != nil {
		return nil, err
	}
	t.cbreakAttr = t.canAttr
	termios.Cfmakecbreak(&t.cbreakAttr)

	if err := termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &t.cbreakAttr); err != nil {
		return nil, err
	}
	return t, nil
}

// Input returns the file keys are read from.
func (t *Terminal) Input() *os.File {
	return t.input
}

// Restore returns the terminal to canonical mode.
func (t *Terminal) Restore() error {
	return termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
}
