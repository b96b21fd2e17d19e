package core

import "time"

// App defines the application hooks driven by Run.
type App interface {
	OnStart(e *Engine)                 // called once after display/gfx init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // record render commands for this frame
	OnEvent(e *Engine, ev Event)       // input/display events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Display  Display
	Renderer Renderer
	Input    *Input
	start    time.Time
	frame    uint64
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// FrameIndex returns the number of committed frames.
func (e *Engine) FrameIndex() uint64 { return e.frame }

// Display is the window/display manager collaborator. Backends extend it
// with access to their native default render target.
type Display interface {
	DisplayAttrs() DisplayAttrs
	ProcessEvents()
	Present()
	QuitRequested() bool
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer is the part of the graphics context the frame loop drives.
type Renderer interface {
	HandleEvent(ev Event)
	CommitFrame()
	Discard()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventDisplayModified is sent when the framebuffer size or format changed.
type EventDisplayModified struct{ Attrs DisplayAttrs }

func (EventDisplayModified) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyM
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
