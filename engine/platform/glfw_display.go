// Package platform provides the window system side of the engine: a GLFW
// window with an OpenGL 3.3 core context that implements glbackend.Display.
package platform

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/prism/engine/core"
	glbackend "github.com/hubastard/prism/engine/gfx/gl"
	"github.com/hubastard/prism/engine/gfx/gl/glcore"
	"github.com/hubastard/prism/engine/logger"
)

// GLFWDisplay is a window and its GL context. It must be created and used
// on the main OS thread.
type GLFWDisplay struct {
	win   *glfw.Window
	fns   *glcore.Functions
	attrs core.DisplayAttrs
	onEv  func(core.Event)
}

var _ glbackend.Display = (*GLFWDisplay)(nil)

// NewGLFWDisplay opens a window as described by cfg and makes its context
// current.
func NewGLFWDisplay(cfg core.Config) (*GLFWDisplay, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	applyFramebufferHints(cfg)

	var monitor *glfw.Monitor
	if !cfg.Windowed {
		monitor = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("platform: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	fns, err := glcore.Init()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("platform: load GL: %w", err)
	}

	d := &GLFWDisplay{win: win, fns: fns, attrs: cfg.DisplayAttrs()}
	d.updateSize()
	logger.With(logger.Fields{
		"width":  d.attrs.FramebufferWidth,
		"height": d.attrs.FramebufferHeight,
	}).Info("platform: window %q open", cfg.Title)

	win.SetCloseCallback(func(*glfw.Window) { d.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
		d.updateSize()
		d.emit(core.EventDisplayModified{Attrs: d.attrs})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		d.emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown || action == glfw.Repeat {
			return
		}
		d.emit(core.EventKey{Key: k, Down: action == glfw.Press, Mods: translateMods(mods)})
	})
	return d, nil
}

func applyFramebufferHints(cfg core.Config) {
	samples := 0
	if cfg.SampleCount > 1 {
		samples = cfg.SampleCount
	}
	glfw.WindowHint(glfw.Samples, samples)
	depth, stencil := 0, 0
	switch cfg.DepthFormat {
	case core.PixelFormatDEPTH:
		depth = 24
	case core.PixelFormatDEPTHSTENCIL:
		depth, stencil = 24, 8
	}
	glfw.WindowHint(glfw.DepthBits, depth)
	glfw.WindowHint(glfw.StencilBits, stencil)
	if cfg.HighDPI {
		glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
		glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)
	} else {
		glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.False)
	}
}

func (d *GLFWDisplay) updateSize() {
	d.attrs.WindowWidth, d.attrs.WindowHeight = d.win.GetSize()
	d.attrs.FramebufferWidth, d.attrs.FramebufferHeight = d.win.GetFramebufferSize()
}

func (d *GLFWDisplay) emit(ev core.Event) {
	if d.onEv != nil {
		d.onEv(ev)
	}
}

// Destroy closes the window and shuts GLFW down.
func (d *GLFWDisplay) Destroy() {
	d.win.Destroy()
	glfw.Terminate()
}

func (d *GLFWDisplay) DisplayAttrs() core.DisplayAttrs      { return d.attrs }
func (d *GLFWDisplay) ProcessEvents()                       { glfw.PollEvents() }
func (d *GLFWDisplay) Present()                             { d.win.SwapBuffers() }
func (d *GLFWDisplay) QuitRequested() bool                  { return d.win.ShouldClose() }
func (d *GLFWDisplay) SetEventCallback(cb func(core.Event)) { d.onEv = cb }
func (d *GLFWDisplay) GL() glbackend.Functions              { return d.fns }
func (d *GLFWDisplay) BindDefaultFramebuffer()              { d.fns.BindFramebuffer(gl.FRAMEBUFFER, 0) }

// RequestClose makes QuitRequested report true after the current frame.
func (d *GLFWDisplay) RequestClose() { d.win.SetShouldClose(true) }

func (d *GLFWDisplay) SetTitle(title string) {
	d.attrs.WindowTitle = title
	d.win.SetTitle(title)
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeySpace:
		return core.KeySpace
	case glfw.KeyW:
		return core.KeyW
	case glfw.KeyA:
		return core.KeyA
	case glfw.KeyS:
		return core.KeyS
	case glfw.KeyD:
		return core.KeyD
	case glfw.KeyM:
		return core.KeyM
	default:
		return core.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
