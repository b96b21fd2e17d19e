package glbackend

import (
	"errors"

	"github.com/hubastard/prism/engine/core"
)

// ErrNoContext is returned when the display has no current GL context.
var ErrNoContext = errors.New("glbackend: display has no GL context")

// Display is the window system side of the GL backend. The context behind
// GL must be current on the calling thread.
type Display interface {
	core.Display
	GL() Functions
	// BindDefaultFramebuffer binds the window system framebuffer, which is
	// not always object 0 (e.g. on iOS).
	BindDefaultFramebuffer()
}
