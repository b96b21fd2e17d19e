package renderer2d

import "github.com/hubastard/prism/engine/resource"

// SubTexture2D describes a UV sub-rect of a texture.
type SubTexture2D struct {
	Texture resource.Id
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// FromPixels builds a subtexture from pixel coordinates within an atlas.
func FromPixels(tex resource.Id, x, y, w, h, atlasW, atlasH int) SubTexture2D {
	return SubTexture2D{
		Texture: tex,
		U0:      float32(x) / float32(atlasW),
		V0:      float32(y) / float32(atlasH),
		U1:      float32(x+w) / float32(atlasW),
		V1:      float32(y+h) / float32(atlasH),
	}
}

// FromGrid builds a subtexture from cell (cx, cy) of a grid of cw x ch cells.
func FromGrid(tex resource.Id, cx, cy, cw, ch, atlasW, atlasH int) SubTexture2D {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch, atlasW, atlasH)
}
