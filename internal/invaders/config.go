package invaders

import (
	"fmt"

	"github.com/thelolagemann/go8080/internal/types"
)

// Config holds the DIP switch settings of the cabinet, and the keyboard
// bindings of its controls.
type Config struct {
	// Ships is the number of ships per game, 3 to 6.
	Ships int
	// ExtraShipAt1000 awards the bonus ship at 1000 points instead of 1500.
	ExtraShipAt1000 bool
	// HideCoinInfo removes the coin information from the demo screen.
	HideCoinInfo bool

	// Keys binds keyboard keys to buttons.
	Keys map[rune]Button
}

// DefaultKeys are the bindings used when a Config has none.
var DefaultKeys = map[rune]Button{
	'c': ButtonCoin,
	'1': ButtonP1Start,
	'2': ButtonP2Start,
	'w': ButtonP1Fire,
	'a': ButtonP1Left,
	'd': ButtonP1Right,
	'i': ButtonP2Fire,
	'j': ButtonP2Left,
	'l': ButtonP2Right,
	't': ButtonTilt,
}

// DefaultConfig returns the factory settings: 3 ships, bonus at 1500 and
// coin info shown.
func DefaultConfig() Config {
	return Config{
		Ships: 3,
		Keys:  DefaultKeys,
	}
}

// Validate reports a setting the DIP switches cannot represent.
func (c Config) Validate() error {
	if c.Ships < 3 || c.Ships > 6 {
		return fmt.Errorf("ships must be between 3 and 6, got %d", c.Ships)
	}
	return nil
}

// dipSwitches returns the switch bits of input port 2.
func (c Config) dipSwitches() uint8 {
	v := uint8(c.Ships-3) & 0x03
	v = types.SetBits(v, types.Bit3, c.ExtraShipAt1000)
	v = types.SetBits(v, types.Bit7, c.HideCoinInfo)
	return v
}
