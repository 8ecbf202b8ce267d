package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/thelolagemann/go8080/internal/cpu"
	"github.com/thelolagemann/go8080/internal/cpudiag"
	"github.com/thelolagemann/go8080/internal/invaders"
	"github.com/thelolagemann/go8080/pkg/audio"
	"github.com/thelolagemann/go8080/pkg/display"
	"github.com/thelolagemann/go8080/pkg/log"
	"github.com/thelolagemann/go8080/pkg/monitor"
	"github.com/thelolagemann/go8080/pkg/stats"
	"github.com/thelolagemann/go8080/pkg/terminal"
	"github.com/thelolagemann/go8080/pkg/utils"
)

var (
	romFile    = flag.String("rom", "", "The program to load: a CP/M .COM file, or the invaders ROM set as a directory or archive")
	machine    = flag.String("machine", "cpudiag", "The machine to emulate. Can be cpudiag or invaders")
	frames     = flag.Uint64("frames", 0, "Frames to run the invaders machine for, 0 runs until interrupted")
	limit      = flag.Uint64("limit", 0, "Instructions to run a CP/M program for, 0 for no limit")
	ships      = flag.Int("ships", 3, "Ships per game on the invaders machine, 3 to 6")
	trace      = flag.Bool("trace", false, "Print every instruction executed by a CP/M program")
	strict     = flag.Bool("strict", false, "Fault on undefined opcodes instead of running their aliases")
	stackFix   = flag.Bool("stackfix", false, "Patch the stack pointer setup of CPUDIAG.BIN")
	monitorAt  = flag.String("monitor", "", "Serve machine state to websocket clients at this address")
	plotFile   = flag.String("plot", "", "Save a plot of the work done per frame to this file")
	screenshot = flag.String("screenshot", "", "Save the screen of the invaders machine to this file on exit")
	scale      = flag.Int("scale", 2, "Scale of the screenshot and window, 1 to 8")
	keyboard   = flag.Bool("keyboard", false, "Play the invaders machine from the terminal using the default key bindings")
	window     = flag.Bool("window", false, "Show the invaders machine in a window, playable with the default key bindings")
	sounds     = flag.String("sounds", "", "Play the invaders sound effects from the WAV files in this directory")
	statsView  = flag.Bool("statsview", false, "Serve live charts of the Go runtime (requires the statsview build tag)")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

func init() {
	// SDL must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	logger := log.New(*debug)
	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *statsView {
		if stats.RuntimeViewAvailable() {
			stats.LaunchRuntimeView(os.Stdout)
		} else {
			logger.Errorf("statsview is not available in this build")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var cpuOpts []cpu.Opt
	if *strict {
		cpuOpts = append(cpuOpts, cpu.WithStrictDecoding())
	}

	var err error
	switch *machine {
	case "cpudiag":
		err = runCPUDiag(logger, cpuOpts)
	case "invaders":
		err = runInvaders(ctx, logger, cpuOpts)
	default:
		err = fmt.Errorf("unknown machine %q", *machine)
	}
	if err != nil {
		logger.Fatal(err.Error())
	}
}

func runCPUDiag(logger log.Logger, cpuOpts []cpu.Opt) error {
	program, err := utils.LoadFile(*romFile)
	if err != nil {
		return err
	}
	logger.Debugf("loaded %s (%s)", *romFile, utils.Fingerprint(program))

	opts := []cpudiag.Opt{
		cpudiag.WithLogger(logger),
		cpudiag.WithCPUOptions(cpuOpts...),
	}
	if *trace {
		opts = append(opts, cpudiag.WithTrace(os.Stdout))
	}
	if *stackFix {
		opts = append(opts, cpudiag.CPUDiagStackFix())
	}

	h, err := cpudiag.New(program, os.Stdout, opts...)
	if err != nil {
		return err
	}

	result, err := h.Run(*limit)
	fmt.Println()
	logger.Infof("%d instructions, %d cycles", result.Instructions, result.Cycles)
	logger.Infof("final state: %s", h.CPU.Snapshot())
	return err
}

func runInvaders(ctx context.Context, logger log.Logger, cpuOpts []cpu.Opt) error {
	rom, err := invaders.LoadROMSet(*romFile)
	if err != nil {
		return err
	}

	config := invaders.DefaultConfig()
	config.Ships = utils.Clamp(3, *ships, 6)
	opts := []invaders.Opt{
		invaders.WithConfig(config),
		invaders.WithLogger(logger),
		invaders.WithCPUOptions(cpuOpts...),
	}

	f := &frontend{holder: terminal.NewHolder(terminal.DefaultHoldFrames)}
	if *sounds != "" {
		samples, err := audio.LoadSamples(*sounds, audio.SampleRate)
		if err != nil {
			return err
		}
		mixer := audio.NewMixer(samples)
		f.speaker, err = display.OpenSpeaker(mixer)
		if err != nil {
			return err
		}
		defer f.speaker.Close()
		logger.Debugf("loaded %d sound samples from %s", len(samples), *sounds)
		opts = append(opts, invaders.WithSoundListener(mixer.Play))
	} else {
		opts = append(opts, invaders.WithSoundListener(func(e invaders.SoundEvent) {
			logger.Debugf("sound %s playing=%t", e.Sound, e.Playing)
		}))
	}

	m, err := invaders.New(rom, opts...)
	if err != nil {
		return err
	}
	logger.Infof("loaded ROM set %s (%016x)", *romFile, m.Checksum())

	if *monitorAt != "" {
		f.hub = monitor.NewHub(monitor.WithLogger(logger))
		go func() {
			if err := f.hub.ListenAndServe(ctx, *monitorAt); err != nil {
				logger.Errorf("monitor: %v", err)
			}
		}()
	}

	if *keyboard {
		term, err := terminal.Open(os.Stdin)
		if err != nil {
			return err
		}
		defer term.Restore()
		f.keys = terminal.ReadKeys(ctx, term.Input())
	}

	if *window {
		f.window, err = display.Open("go8080 - "+*romFile, invaders.ScreenWidth, invaders.ScreenHeight, utils.Clamp(1, *scale, 8))
		if err != nil {
			return err
		}
		defer f.window.Close()
	}

	collector := stats.NewCollector(stats.DefaultWindow)
	runErr := runFrames(ctx, m, f, collector, logger)

	logger.Infof("%s", collector.Totals())
	if *plotFile != "" {
		if err := collector.SavePlot(*plotFile); err != nil && !errors.Is(err, stats.ErrNoFrames) {
			logger.Errorf("saving plot: %v", err)
		}
	}
	if *screenshot != "" {
		if err := utils.SaveImage(*screenshot, m.Screenshot(utils.Clamp(1, *scale, 8))); err != nil {
			logger.Errorf("saving screenshot: %v", err)
		}
	}
	return runErr
}

// frontend holds the optional ways of watching and playing the machine.
type frontend struct {
	hub     *monitor.Hub
	keys    <-chan rune
	holder  *terminal.Holder
	window  *display.Window
	speaker *display.Speaker
}

func (f *frontend) realtime() bool {
	return f.hub != nil || f.keys != nil || f.window != nil || f.speaker != nil
}

// runFrames runs the machine until ctx is done, the window is closed or the
// frame count is reached. Frames are paced to the display rate while
// anything is watching or playing.
func runFrames(ctx context.Context, m *invaders.Machine, f *frontend, collector *stats.Collector, logger log.Logger) error {
	var pace <-chan time.Time
	if f.realtime() {
		t := time.NewTicker(time.Second / invaders.FrameRate)
		defer t.Stop()
		pace = t.C
	}

	for *frames == 0 || m.Frames() < *frames {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()
		s, err := m.RunFrame()
		collector.Add(s, time.Since(start))
		if err != nil {
			return err
		}
		if s.Dropped > 0 {
			logger.Debugf("frame %d: %d interrupts dropped", s.Frame, s.Dropped)
		}

		if f.hub != nil {
			if err := f.hub.Publish(m.CPU.Snapshot(), m.Memory()); err != nil {
				logger.Errorf("publishing frame %d: %v", s.Frame, err)
			}
		}
		if f.window != nil {
			if err := f.window.Render(m.Frame()); err != nil {
				return err
			}
			keys, quit := f.window.Poll()
			if quit {
				return nil
			}
			for _, k := range keys {
				m.Key(k.Key, k.Pressed)
			}
		}
		if f.speaker != nil {
			if err := f.speaker.Fill(); err != nil {
				logger.Errorf("queueing audio: %v", err)
			}
		}
		f.applyInputs(m)

		if pace == nil {
			continue
		}
		select {
		case <-pace:
		case <-ctx.Done():
			return nil
		}
	}
	return nil
}

// applyInputs passes on the buttons pressed by monitor clients and typed
// at the terminal since the last frame.
func (f *frontend) applyInputs(m *invaders.Machine) {
	for _, key := range f.holder.Tick() {
		m.Key(key, false)
	}

	for {
		select {
		case key, ok := <-f.keys:
			if !ok {
				f.keys = nil
				continue
			}
			f.holder.Tap(key)
			m.Key(key, true)
		case in := <-inputs(f.hub):
			if in.Pressed {
				m.Press(invaders.Button(in.Button))
			} else {
				m.Release(invaders.Button(in.Button))
			}
		default:
			return
		}
	}
}

func inputs(hub *monitor.Hub) <-chan monitor.InputEvent {
	if hub == nil {
		return nil
	}
	return hub.Inputs()
}
