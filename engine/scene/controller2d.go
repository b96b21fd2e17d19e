package scene

import "github.com/hubastard/prism/engine/core"

// OrthoController2D moves a camera with WASD.
type OrthoController2D struct {
	MoveSpeed float32
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{MoveSpeed: 1, Camera: cam}
}

func (cc *OrthoController2D) Update(in *core.Input, dt float32) {
	step := cc.MoveSpeed * dt / cc.Camera.Zoom()
	var dx, dy float32
	if in.IsKeyDown(core.KeyW) {
		dy += step
	}
	if in.IsKeyDown(core.KeyS) {
		dy -= step
	}
	if in.IsKeyDown(core.KeyA) {
		dx -= step
	}
	if in.IsKeyDown(core.KeyD) {
		dx += step
	}
	if dx != 0 || dy != 0 {
		cc.Camera.Move(dx, dy)
	}
}
