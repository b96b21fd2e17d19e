package metal

import (
	"errors"

	"github.com/hubastard/prism/engine/core"
)

// ErrNoDevice is returned when the display has not created a device yet.
var ErrNoDevice = errors.New("metal: display has no device")

// Display owns the device, the layer and the per-frame command buffer.
type Display interface {
	core.Display
	Device() Device
	// CommandBuffer is the command buffer of the current frame. Present
	// commits it and starts the next one.
	CommandBuffer() CommandBuffer
	// DefaultPassDescriptor describes the current drawable. It is nil when
	// the layer has no drawable to hand out this frame.
	DefaultPassDescriptor() *RenderPassDescriptor
}
