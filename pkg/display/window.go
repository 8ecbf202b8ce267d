//go:build !nosdl

package display

import (
	"image"

	"github.com/thelolagemann/go8080/pkg/audio"
	"github.com/veandco/go-sdl2/sdl"
)

// arrows are bound to the keys of the second player.
var arrows = map[sdl.Keycode]rune{
	sdl.K_LEFT:  'j',
	sdl.K_RIGHT: 'l',
	sdl.K_UP:    'i',
}

// Window is an SDL window showing the screen. It must be used from the
// main thread.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	rects    []sdl.Rect
}

// Open creates a window of width x height screen pixels.
func Open(title string, width, height, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width*scale), int32(height*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}
	if err := renderer.SetLogicalSize(int32(width), int32(height)); err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	return &Window{window: window, renderer: renderer}, nil
}

// Render draws img and presents it.
func (w *Window) Render(img *image.Paletted) error {
	if err := w.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	if err := w.renderer.Clear(); err != nil {
		return err
	}

	w.rects = w.rects[:0]
	for _, s := range Spans(img) {
		w.rects = append(w.rects, sdl.Rect{X: int32(s.X), Y: int32(s.Y), W: int32(s.W), H: 1})
	}
	if len(w.rects) > 0 {
		if err := w.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
			return err
		}
		if err := w.renderer.FillRects(w.rects); err != nil {
			return err
		}
	}

	w.renderer.Present()
	return nil
}

// Poll drains pending events. It returns the key events and whether the
// window was closed.
func (w *Window) Poll() ([]KeyEvent, bool) {
	var keys []KeyEvent
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return keys, true
		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				return keys, true
			}
			key, ok := arrows[ev.Keysym.Sym]
			if !ok {
				if ev.Keysym.Sym <= 0 || ev.Keysym.Sym >= 0x80 {
					continue
				}
				key = rune(ev.Keysym.Sym)
			}
			keys = append(keys, KeyEvent{Key: key, Pressed: ev.Type == sdl.KEYDOWN})
		}
	}
	return keys, false
}

// Close destroys the window.
func (w *Window) Close() {
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
}

// Speaker feeds a Mixer to the default audio device.
type Speaker struct {
	id    sdl.AudioDeviceID
	mixer *audio.Mixer

	samples []int16
	buf     []byte
}

// OpenSpeaker opens the default audio device for mixer.
func OpenSpeaker(mixer *audio.Mixer) (*Speaker, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	spec := &sdl.AudioSpec{
		Freq:     audio.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  1024,
	}
	var actual sdl.AudioSpec
	id, err := sdl.OpenAudioDevice("", false, spec, &actual, 0)
	if err != nil {
		return nil, err
	}
	sdl.PauseAudioDevice(id, false)

	return &Speaker{
		id:      id,
		mixer:   mixer,
		samples: make([]int16, audio.SampleRate/FrameRate),
	}, nil
}

// Fill queues mixed audio until two frames are buffered.
func (s *Speaker) Fill() error {
	frame := uint32(len(s.samples) * 2)
	for sdl.GetQueuedAudioSize(s.id) < 2*frame {
		s.mixer.Mix(s.samples)
		s.buf = pcm(s.buf, s.samples)
		if err := sdl.QueueAudio(s.id, s.buf); err != nil {
			return err
		}
	}
	return nil
}

// Close stops playback and closes the device.
func (s *Speaker) Close() {
	sdl.ClearQueuedAudio(s.id)
	sdl.CloseAudioDevice(s.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
