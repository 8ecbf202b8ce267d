package invaders

import "github.com/thelolagemann/go8080/internal/types"

// Button is a control on the cabinet.
type Button uint8

const (
	ButtonCoin Button = iota
	ButtonP1Start
	ButtonP2Start
	ButtonP1Fire
	ButtonP1Left
	ButtonP1Right
	ButtonP2Fire
	ButtonP2Left
	ButtonP2Right
	ButtonTilt

	buttons
)

// buttonBits maps each button to its input port and bit. All inputs are
// active high.
//
//	Port 1                         Port 2
//	bit 0 = coin                   bit 0 = DIP3 ships (low)
//	bit 1 = 2P start               bit 1 = DIP5 ships (high)
//	bit 2 = 1P start               bit 2 = tilt
//	bit 3 = always 1               bit 3 = DIP6 extra ship at 1000
//	bit 4 = 1P fire                bit 4 = 2P fire
//	bit 5 = 1P left                bit 5 = 2P left
//	bit 6 = 1P right               bit 6 = 2P right
//	bit 7 = not connected          bit 7 = DIP7 coin info off
var buttonBits = [buttons]struct {
	port uint8
	mask uint8
}{
	ButtonCoin:    {1, types.Bit0},
	ButtonP2Start: {1, types.Bit1},
	ButtonP1Start: {1, types.Bit2},
	ButtonP1Fire:  {1, types.Bit4},
	ButtonP1Left:  {1, types.Bit5},
	ButtonP1Right: {1, types.Bit6},
	ButtonTilt:    {2, types.Bit2},
	ButtonP2Fire:  {2, types.Bit4},
	ButtonP2Left:  {2, types.Bit5},
	ButtonP2Right: {2, types.Bit6},
}

var buttonNames = [buttons]string{
	"coin", "1p start", "2p start",
	"1p fire", "1p left", "1p right",
	"2p fire", "2p left", "2p right",
	"tilt",
}

func (b Button) String() string {
	if b >= buttons {
		return "unknown"
	}
	return buttonNames[b]
}

// Press holds a button down until it is released.
func (m *Machine) Press(b Button) {
	if b >= buttons {
		return
	}
	bits := buttonBits[b]
	m.inputs[bits.port] = types.SetBits(m.inputs[bits.port], bits.mask, true)
}

// Release lets go of a button.
func (m *Machine) Release(b Button) {
	if b >= buttons {
		return
	}
	bits := buttonBits[b]
	m.inputs[bits.port] = types.SetBits(m.inputs[bits.port], bits.mask, false)
}

// Key presses or releases the button bound to key in the machine's Config.
// It returns false if key is not bound.
func (m *Machine) Key(key rune, pressed bool) bool {
	b, ok := m.config.Keys[key]
	if !ok {
		return false
	}
	if pressed {
		m.Press(b)
	} else {
		m.Release(b)
	}
	return true
}
