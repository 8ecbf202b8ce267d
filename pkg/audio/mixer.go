package audio

import (
	"sync"

	"github.com/thelolagemann/go8080/internal/invaders"
	"github.com/thelolagemann/go8080/pkg/utils"
)

type voice struct {
	sound invaders.Sound
	pos   int
	loop  bool
}

// Mixer sums the sounds being played into one stream. Play is safe to call
// from the emulation while another goroutine calls Mix.
type Mixer struct {
	samples map[invaders.Sound][]int16
	voices  []voice

	mu sync.Mutex
}

// NewMixer returns a Mixer playing samples.
func NewMixer(samples map[invaders.Sound][]int16) *Mixer {
	return &Mixer{samples: samples}
}

// Play starts or stops a sound. It has the signature of an invaders sound
// listener. A sound already playing is restarted, except the UFO which
// loops until it is stopped.
func (m *Mixer) Play(e invaders.SoundEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.samples[e.Sound]; !ok {
		return
	}

	for i := 0; i < len(m.voices); i++ {
		if m.voices[i].sound != e.Sound {
			continue
		}
		if e.Playing && m.voices[i].loop {
			return
		}
		m.voices = append(m.voices[:i], m.voices[i+1:]...)
		i--
	}

	if e.Playing {
		m.voices = append(m.voices, voice{sound: e.Sound, loop: e.Sound == invaders.SoundUFO})
	}
}

// Playing returns the number of sounds playing.
func (m *Mixer) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Mix fills out with the next samples of every playing sound, clipped to
// 16 bits. Sounds that reach their end are dropped, unless they loop.
func (m *Mixer) Mix(out []int16) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range out {
		var sum int
		for v := range m.voices {
			voice := &m.voices[v]
			data := m.samples[voice.sound]
			if voice.pos >= len(data) {
				if !voice.loop || len(data) == 0 {
					continue
				}
				voice.pos = 0
			}
			sum += int(data[voice.pos])
			voice.pos++
		}
		out[i] = int16(utils.Clamp(-32768, sum, 32767))
	}

	// drop finished voices
	playing := m.voices[:0]
	for _, voice := range m.voices {
		if voice.loop || voice.pos < len(m.samples[voice.sound]) {
			playing = append(playing, voice)
		}
	}
	m.voices = playing
}
