//go:build nosdl

package display

import (
	"image"

	"github.com/thelolagemann/go8080/pkg/audio"
)

type Window struct{}

func Open(string, int, int, int) (*Window, error) { return nil, ErrUnavailable }

func (w *Window) Render(*image.Paletted) error { return ErrUnavailable }
func (w *Window) Poll() ([]KeyEvent, bool)     { return nil, true }
func (w *Window) Close()                       {}

type Speaker struct{}

func OpenSpeaker(*audio.Mixer) (*Speaker, error) { return nil, ErrUnavailable }

func (s *Speaker) Fill() error { return ErrUnavailable }
func (s *Speaker) Close()      {}
