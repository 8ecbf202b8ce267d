package invaders

import "github.com/thelolagemann/go8080/internal/types"

// Sound is one of the discrete sound circuits on the board.
type Sound uint8

const (
	SoundUFO Sound = iota
	SoundShot
	SoundPlayerDie
	SoundInvaderDie
	SoundExtendedPlay
	SoundFleet1
	SoundFleet2
	SoundFleet3
	SoundFleet4
	SoundUFOHit
)

var soundNames = [...]string{
	"ufo", "shot", "player die", "invader die", "extended play",
	"fleet 1", "fleet 2", "fleet 3", "fleet 4", "ufo hit",
}

func (s Sound) String() string {
	if int(s) >= len(soundNames) {
		return "unknown"
	}
	return soundNames[s]
}

// SoundEvent is emitted when the game triggers a sound. Every sound starts
// on the rising edge of its bit, the UFO loops and also stops on the
// falling edge.
type SoundEvent struct {
	Sound Sound
	// Playing is false only when the UFO loop stops.
	Playing bool
}

// soundBits maps the bits of the two sound ports to sounds.
//
//	Port 3                      Port 5
//	bit 0 = UFO (repeats)       bit 0 = fleet movement 1
//	bit 1 = shot                bit 1 = fleet movement 2
//	bit 2 = flash (player die)  bit 2 = fleet movement 3
//	bit 3 = invader die         bit 3 = fleet movement 4
//	bit 4 = extended play       bit 4 = UFO hit
//	bit 5 = amp enable
var soundBits = map[uint8][]struct {
	mask  uint8
	sound Sound
}{
	3: {
		{types.Bit0, SoundUFO},
		{types.Bit1, SoundShot},
		{types.Bit2, SoundPlayerDie},
		{types.Bit3, SoundInvaderDie},
		{types.Bit4, SoundExtendedPlay},
	},
	5: {
		{types.Bit0, SoundFleet1},
		{types.Bit1, SoundFleet2},
		{types.Bit2, SoundFleet3},
		{types.Bit3, SoundFleet4},
		{types.Bit4, SoundUFOHit},
	},
}

// writeSound latches a sound port write and emits events for the edges.
func (m *Machine) writeSound(port uint8, value uint8) {
	latch := &m.sound[0]
	if port == 5 {
		latch = &m.sound[1]
	}
	old := *latch
	*latch = value
	if old == value || m.listener == nil {
		return
	}

	for _, b := range soundBits[port] {
		rising := value&b.mask != 0 && old&b.mask == 0
		falling := value&b.mask == 0 && old&b.mask != 0
		switch {
		case rising:
			m.listener(SoundEvent{Sound: b.sound, Playing: true})
		case falling && b.sound == SoundUFO:
			m.listener(SoundEvent{Sound: b.sound, Playing: false})
		}
	}
}
