package core

import (
	"runtime"
	"time"

	"github.com/hubastard/prism/engine/logger"
)

// Run wires the display and graphics context and executes the main loop.
// All rendering happens on the calling goroutine, which is locked to its OS
// thread for the lifetime of the loop.
func Run(app App, cfg Config, newDisplay func(Config) (Display, error), newRenderer func(Display, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	logger.SetLevel(cfg.Level())

	disp, err := newDisplay(cfg)
	if err != nil {
		logger.Error("display setup failed: %v", err)
		return err
	}

	rend, err := newRenderer(disp, cfg)
	if err != nil {
		logger.Error("gfx setup failed: %v", err)
		return err
	}
	defer rend.Discard()

	eng := &Engine{Display: disp, Renderer: rend, Input: NewInput(), start: time.Now()}
	disp.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		if m, ok := ev.(EventDisplayModified); ok {
			if m.Attrs.FramebufferWidth < 1 || m.Attrs.FramebufferHeight < 1 {
				return
			}
			rend.HandleEvent(ev)
		}
		app.OnEvent(eng, ev)
	})

	app.OnStart(eng)

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
	)

	for !disp.QuitRequested() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (display emits via callback)
		disp.ProcessEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			app.OnUpdate(eng, float64(tick)/float64(time.Second))
			accum -= tick
			steps++
		}
		alpha := float64(accum) / float64(tick)

		app.OnRender(eng, alpha)

		// presents the display and advances the frame index
		rend.CommitFrame()
		eng.frame++
	}

	app.OnShutdown(eng)
	logger.Info("engine exit after %d frames", eng.frame)
	return nil
}
