package d3d11

import (
	"errors"

	"github.com/hubastard/prism/engine/core"
)

// ErrNoDevice is returned when the display has not created a device yet.
var ErrNoDevice = errors.New("d3d11: display has no device")

// Display owns the device, the swap chain and the default render target.
type Display interface {
	core.Display
	Device() Device
	DeviceContext() DeviceContext
	// RenderTargetView and DepthStencilView are the views of the current
	// swap chain back buffer. They change when the window is resized.
	RenderTargetView() RenderTargetView
	DepthStencilView() DepthStencilView
}
