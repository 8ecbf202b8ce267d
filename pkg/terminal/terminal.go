// Package terminal reads single key presses from a terminal, for driving
// the machines without a window.
//
// Terminals report only that a key was typed, never that it was let go,
// so Holder turns each key into a press lasting a fixed number of frames.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// ErrUnsupported is returned by Open on platforms without termios.
var ErrUnsupported = errors.New("terminal input is not supported on this platform")

// DefaultHoldFrames is how long a typed key is held down for.
const DefaultHoldFrames = 6

// ReadKeys sends every rune read from r until ctx is done or r fails.
// The channel is closed when reading stops.
func ReadKeys(ctx context.Context, r io.Reader) <-chan rune {
	keys := make(chan rune, 16)
	go func() {
		defer close(keys)

		in := bufio.NewReader(r)
		for {
			key, _, err := in.ReadRune()
			if err != nil {
				return
			}
			select {
			case keys <- key:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}

// Holder tracks keys that are being held down.
type Holder struct {
	frames int
	held   map[rune]int
}

// NewHolder returns a Holder that holds each key for frames frames.
func NewHolder(frames int) *Holder {
	if frames <= 0 {
		frames = DefaultHoldFrames
	}
	return &Holder{frames: frames, held: make(map[rune]int)}
}

// Tap holds key down, or keeps holding it if it already is. It returns
// true if the key was newly pressed.
func (h *Holder) Tap(key rune) bool {
	_, held := h.held[key]
	h.held[key] = h.frames
	return !held
}

// Tick advances one frame and returns the keys to release.
func (h *Holder) Tick() []rune {
	var released []rune
	for key, left := range h.held {
		if left <= 1 {
			delete(h.held, key)
			released = append(released, key)
			continue
		}
		h.held[key] = left - 1
	}
	return released
}

// Held returns the number of keys being held.
func (h *Holder) Held() int {
	return len(h.held)
}
