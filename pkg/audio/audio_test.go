package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/thelolagemann/go8080/internal/invaders"
)

func writeWAV(t *testing.T, path string, rate, depth, channels int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, depth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: depth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoot.wav")
	// stereo, the right channel is dropped
	writeWAV(t, path, 11025, 16, 2, []int{100, -1, 200, -1, 300, -1, 400, -1})

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := Decode(f, 22050)
	if err != nil {
		t.Fatal(err)
	}
	expected := []int16{100, 100, 200, 200, 300, 300, 400, 400}
	if len(got) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sample %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestToInt16(t *testing.T) {
	for _, tt := range []struct {
		v, depth int
		expected int16
	}{
		{128, 8, 0},
		{255, 8, 127 << 8},
		{0, 8, -128 << 8},
		{-1234, 16, -1234},
		{0x123456, 24, 0x1234},
	} {
		if got := toInt16(tt.v, tt.depth); got != tt.expected {
			t.Errorf("toInt16(%d, %d): expected %d, got %d", tt.v, tt.depth, tt.expected, got)
		}
	}
}

func TestLoadSamples(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSamples(dir, SampleRate); !errors.Is(err, ErrNoSamples) {
		t.Errorf("expected ErrNoSamples, got %v", err)
	}

	writeWAV(t, filepath.Join(dir, "shoot.wav"), SampleRate, 16, 1, []int{1, 2, 3})
	samples, err := LoadSamples(dir, SampleRate)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Errorf("expected 1 sample, got %d", len(samples))
	}
	if len(samples[invaders.SoundShot]) != 3 {
		t.Errorf("expected 3 shot samples, got %d", len(samples[invaders.SoundShot]))
	}

	if err := os.WriteFile(filepath.Join(dir, "explosion.wav"), []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSamples(dir, SampleRate); err == nil {
		t.Error("expected an error for an invalid file")
	}
}

func TestMixer(t *testing.T) {
	m := NewMixer(map[invaders.Sound][]int16{
		invaders.SoundShot: {1000, 2000},
		invaders.SoundUFO:  {10, 20, 30},
	})

	t.Run("one shot", func(t *testing.T) {
		m.Play(invaders.SoundEvent{Sound: invaders.SoundShot, Playing: true})
		out := make([]int16, 4)
		m.Mix(out)
		expected := []int16{1000, 2000, 0, 0}
		for i := range expected {
			if out[i] != expected[i] {
				t.Errorf("sample %d: expected %d, got %d", i, expected[i], out[i])
			}
		}
		if m.Playing() != 0 {
			t.Errorf("expected finished sound to be dropped, got %d playing", m.Playing())
		}
	})

	t.Run("ufo loops", func(t *testing.T) {
		m.Play(invaders.SoundEvent{Sound: invaders.SoundUFO, Playing: true})
		// a second start does not restart the loop
		m.Play(invaders.SoundEvent{Sound: invaders.SoundUFO, Playing: true})
		out := make([]int16, 5)
		m.Mix(out)
		expected := []int16{10, 20, 30, 10, 20}
		for i := range expected {
			if out[i] != expected[i] {
				t.Errorf("sample %d: expected %d, got %d", i, expected[i], out[i])
			}
		}
		if m.Playing() != 1 {
			t.Errorf("expected 1 playing, got %d", m.Playing())
		}

		m.Play(invaders.SoundEvent{Sound: invaders.SoundUFO, Playing: false})
		if m.Playing() != 0 {
			t.Errorf("expected ufo to stop, got %d playing", m.Playing())
		}
	})

	t.Run("clipping", func(t *testing.T) {
		loud := NewMixer(map[invaders.Sound][]int16{
			invaders.SoundShot:       {30000},
			invaders.SoundInvaderDie: {30000},
		})
		loud.Play(invaders.SoundEvent{Sound: invaders.SoundShot, Playing: true})
		loud.Play(invaders.SoundEvent{Sound: invaders.SoundInvaderDie, Playing: true})
		out := make([]int16, 1)
		loud.Mix(out)
		if out[0] != 32767 {
			t.Errorf("expected 32767, got %d", out[0])
		}
	})

	t.Run("missing sample", func(t *testing.T) {
		m.Play(invaders.SoundEvent{Sound: invaders.SoundFleet1, Playing: true})
		if m.Playing() != 0 {
			t.Errorf("expected sound without a sample to be ignored, got %d playing", m.Playing())
		}
	})
}
