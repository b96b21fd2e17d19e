// Package scene holds the camera math the sample programs render with.
package scene

import "github.com/go-gl/mathgl/mgl32"

const minZoom = 0.05

// OrthoCamera2D is an orthographic camera looking down -Z with a position,
// a rotation around Z and a zoom factor.
type OrthoCamera2D struct {
	halfW, halfH float32
	pos          mgl32.Vec2
	rotation     float32
	zoom         float32
	vp           mgl32.Mat4
	dirty        bool
}

// NewOrtho2D returns a camera that maps a halfW x halfH extent around the
// origin onto clip space.
func NewOrtho2D(halfW, halfH float32) *OrthoCamera2D {
	return &OrthoCamera2D{halfW: halfW, halfH: halfH, zoom: 1, dirty: true}
}

// SetExtent changes the visible half extent, e.g. after a resize.
func (c *OrthoCamera2D) SetExtent(halfW, halfH float32) {
	c.halfW, c.halfH = halfW, halfH
	c.dirty = true
}

func (c *OrthoCamera2D) Position() mgl32.Vec2 { return c.pos }
func (c *OrthoCamera2D) Rotation() float32    { return c.rotation }
func (c *OrthoCamera2D) Zoom() float32        { return c.zoom }

func (c *OrthoCamera2D) Move(dx, dy float32) {
	c.pos = c.pos.Add(mgl32.Vec2{dx, dy})
	c.dirty = true
}

func (c *OrthoCamera2D) Rotate(rad float32) {
	c.rotation += rad
	c.dirty = true
}

// SetZoom clamps z to a small positive minimum.
func (c *OrthoCamera2D) SetZoom(z float32) {
	c.zoom = max(z, minZoom)
	c.dirty = true
}

// ViewProj returns the column-major view-projection matrix.
func (c *OrthoCamera2D) ViewProj() mgl32.Mat4 {
	if c.dirty {
		w, h := c.halfW/c.zoom, c.halfH/c.zoom
		proj := mgl32.Ortho(-w, w, -h, h, -1, 1)
		view := mgl32.HomogRotate3DZ(-c.rotation).Mul4(mgl32.Translate3D(-c.pos.X(), -c.pos.Y(), 0))
		c.vp = proj.Mul4(view)
		c.dirty = false
	}
	return c.vp
}
