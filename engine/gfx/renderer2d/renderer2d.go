// Package renderer2d batches textured 2D quads into one stream mesh per
// frame on top of a gfx.Context.
package renderer2d

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/prism/engine/colors"
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
)

// ErrSetup is returned by New when one of the batch resources could not be
// created.
var ErrSetup = errors.New("renderer2d: setup failed")

const (
	vertsPerQuad = 4
	indsPerQuad  = 6
	// floats per vertex: pos2 + color4 + uv2
	vStride = 8
	// 16-bit indices address at most 64k vertices.
	maxQuadsLimit = (math.MaxUint16 + 1) / vertsPerQuad
)

// VertexLayout is the vertex format a batch shader must accept.
func VertexLayout() core.VertexLayout {
	var l core.VertexLayout
	l.Add(core.AttrPosition, core.VertexFloat2).
		Add(core.AttrColor0, core.VertexFloat4).
		Add(core.AttrTexCoord0, core.VertexFloat2)
	return l
}

// Statistics captures the counts of the last submitted frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
	Dropped      int
}

func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }
func (s Statistics) TotalIndexCount() int  { return s.QuadCount * indsPerQuad }

type run struct {
	tex       resource.Id
	firstQuad int
	numQuads  int
}

// Renderer2D collects quads between Begin and End. All quads of a frame are
// uploaded with a single vertex update, so End may only be called once per
// frame. Consecutive quads sharing a texture are drawn with one call.
type Renderer2D struct {
	c        *gfx.Context
	label    resource.Label
	mesh     resource.Id
	pipeline resource.Id
	white    resource.Id
	vpHash   uint64
	maxQuads int

	vp    mgl32.Mat4
	verts []float32
	runs  []run
	stats Statistics
}

// New creates the batch resources under their own resource label. shader
// must take VertexLayout as input, a vertex uniform block at slot 0
// holding one mat4, and one fragment texture.
func New(c *gfx.Context, shader core.ShaderDesc, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 || maxQuads > maxQuadsLimit {
		maxQuads = maxQuadsLimit
	}
	idx := shader.UniformBlockIndexByStageAndSlot(core.StageVS, 0)
	if idx < 0 {
		return nil, fmt.Errorf("%w: shader %q has no vertex uniform block", ErrSetup, shader.Locator)
	}
	rd := &Renderer2D{
		c:        c,
		vpHash:   shader.UniformBlocks[idx].Layout.TypeHash,
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
	}

	rd.label = c.PushResourceLabel()
	defer c.PopResourceLabel()

	layout := VertexLayout()
	desc := core.NewDynamicMeshDesc(core.UsageStream, layout, maxQuads*vertsPerQuad, core.IndexUInt16, maxQuads*indsPerQuad,
		core.PrimitiveGroup{NumElements: maxQuads * indsPerQuad})
	desc.IndexUsage = core.UsageImmutable
	desc.IndexDataOffset = 0
	rd.mesh = c.CreateMesh(desc, c.Arena().Uint16s(quadIndices(maxQuads)...))

	rd.white = c.CreateTexture(core.NewTextureFromPixelData2D(1, 1, 1, core.PixelFormatRGBA8), []byte{255, 255, 255, 255})

	shd := c.CreateShader(shader)
	attrs := c.DisplayAttrs()
	pip := core.NewPipelineDesc(shd, layout)
	pip.BlendState.BlendEnabled = true
	pip.BlendState.SrcFactorRGB = core.BlendSrcAlpha
	pip.BlendState.DstFactorRGB = core.BlendOneMinusSrcAlpha
	pip.BlendState.ColorFormat = attrs.ColorPixelFormat
	pip.BlendState.DepthFormat = attrs.DepthPixelFormat
	pip.RasterizerState.SampleCount = attrs.SampleCount
	rd.pipeline = c.CreatePipeline(pip)

	for _, id := range []resource.Id{rd.mesh, rd.white, shd, rd.pipeline} {
		if st := c.QueryResourceState(id); st != resource.StateValid {
			c.DestroyResources(rd.label)
			return nil, fmt.Errorf("%w: %s is %s", ErrSetup, id, st)
		}
	}
	return rd, nil
}

func quadIndices(numQuads int) []uint16 {
	out := make([]uint16, 0, numQuads*indsPerQuad)
	for q := range numQuads {
		v := uint16(q * vertsPerQuad)
		out = append(out, v, v+2, v+1, v+1, v+2, v+3)
	}
	return out
}

// Discard destroys the batch resources.
func (rd *Renderer2D) Discard() { rd.c.DestroyResources(rd.label) }

// Begin starts collecting quads transformed by the view-projection vp.
func (rd *Renderer2D) Begin(vp mgl32.Mat4) {
	rd.vp = vp
	rd.verts = rd.verts[:0]
	rd.runs = rd.runs[:0]
	rd.stats = Statistics{}
}

// End uploads the collected quads and draws them into the current pass.
func (rd *Renderer2D) End() {
	if len(rd.runs) == 0 {
		return
	}
	c := rd.c
	c.UpdateVertices(rd.mesh, c.Arena().Float32s(rd.verts...))
	c.ApplyDrawState(rd.pipeline, rd.mesh)
	c.ApplyUniforms(core.StageVS, 0, rd.vpHash, rd.vp[:]...)
	for _, r := range rd.runs {
		c.ApplyTextures(core.StageFS, r.tex)
		c.DrawElements(r.firstQuad*indsPerQuad, r.numQuads*indsPerQuad, 1)
		rd.stats.DrawCalls++
	}
}

// White returns the 1x1 white texture solid quads are drawn with.
func (rd *Renderer2D) White() resource.Id { return rd.white }

// Stats returns the counters of the current frame.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid quad centered at x, y.
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.push(x, y, w, h, color, rotationRad, rd.white, 0, 0, 1, 1)
}

// DrawTexturedQuad draws tex tinted by tint.
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex resource.Id, tint colors.Color, rotationRad float32) {
	rd.push(x, y, w, h, tint, rotationRad, tex, 0, 0, 1, 1)
}

// DrawSubTexQuad draws the sub rectangle of an atlas.
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.push(x, y, w, h, tint, rotationRad, sub.Texture, sub.U0, sub.V0, sub.U1, sub.V1)
}

func (rd *Renderer2D) push(x, y, w, h float32, color colors.Color, rotationRad float32, tex resource.Id, u0, v0, u1, v1 float32) {
	if rd.stats.QuadCount >= rd.maxQuads {
		if rd.stats.Dropped == 0 {
			logger.Warn("renderer2d: more than %d quads, dropping the rest", rd.maxQuads)
		}
		rd.stats.Dropped++
		return
	}
	hw, hh := w*0.5, h*0.5
	corners := [vertsPerQuad][4]float32{
		{-hw, hh, u0, v0},
		{hw, hh, u1, v0},
		{-hw, -hh, u0, v1},
		{hw, -hh, u1, v1},
	}
	rot := mgl32.Rotate2D(rotationRad)
	for _, p := range corners {
		pos := rot.Mul2x1(mgl32.Vec2{p[0], p[1]})
		rd.verts = append(rd.verts,
			pos[0]+x, pos[1]+y,
			color[0], color[1], color[2], color[3],
			p[2], p[3],
		)
	}

	if n := len(rd.runs); n > 0 && rd.runs[n-1].tex == tex {
		rd.runs[n-1].numQuads++
	} else {
		rd.runs = append(rd.runs, run{tex: tex, firstQuad: rd.stats.QuadCount, numQuads: 1})
		rd.stats.TextureCount++
	}
	rd.stats.QuadCount++
}
