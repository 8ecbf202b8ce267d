// Package audio plays the sound effects of the invaders machine from
// recorded samples, the board's own sound circuits being analogue.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"
	"github.com/thelolagemann/go8080/internal/invaders"
)

// SampleRate is the rate samples are converted to and mixed at.
const SampleRate = 22050

// ErrNoSamples is returned by LoadSamples when a directory holds none of
// the sample files.
var ErrNoSamples = errors.New("no samples found")

// SampleFiles names the WAV file played for each sound. There is no
// sample for the extended play chime.
var SampleFiles = map[invaders.Sound]string{
	invaders.SoundUFO:        "ufo_lowpitch.wav",
	invaders.SoundShot:       "shoot.wav",
	invaders.SoundPlayerDie:  "explosion.wav",
	invaders.SoundInvaderDie: "invaderkilled.wav",
	invaders.SoundFleet1:     "fastinvader1.wav",
	invaders.SoundFleet2:     "fastinvader2.wav",
	invaders.SoundFleet3:     "fastinvader3.wav",
	invaders.SoundFleet4:     "fastinvader4.wav",
	invaders.SoundUFOHit:     "ufo_highpitch.wav",
}

// LoadSamples decodes the sample files found in dir, converted to mono at
// rate. Missing files are skipped, those sounds stay silent.
func LoadSamples(dir string, rate int) (map[invaders.Sound][]int16, error) {
	samples := make(map[invaders.Sound][]int16)
	for sound, name := range SampleFiles {
		f, err := os.Open(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}

		data, err := Decode(f, rate)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		samples[sound] = data
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoSamples)
	}
	return samples, nil
}

// Decode reads a WAV file, keeping the first channel only, and resamples
// it to rate.
func Decode(r io.ReadSeeker, rate int) ([]int16, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	mono := make([]int16, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		mono = append(mono, toInt16(buf.Data[i], int(dec.BitDepth)))
	}

	return resample(mono, int(dec.SampleRate), rate), nil
}

// toInt16 scales a sample of the given bit depth to 16 bits. 8-bit WAV
// samples are unsigned.
func toInt16(v, depth int) int16 {
	switch {
	case depth == 8:
		return int16((v - 128) << 8)
	case depth > 16:
		return int16(v >> (depth - 16))
	default:
		return int16(v)
	}
}

// resample converts samples from one rate to another by picking the
// nearest earlier sample.
func resample(samples []int16, from, to int) []int16 {
	if from == to || from <= 0 || to <= 0 {
		return samples
	}

	out := make([]int16, len(samples)*to/from)
	for i := range out {
		out[i] = samples[i*from/to]
	}
	return out
}
