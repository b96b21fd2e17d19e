//go:build !d3d11 && !metal

package renderer2d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/prism/engine/colors"
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx"
	glbackend "github.com/hubastard/prism/engine/gfx/gl"
	"github.com/hubastard/prism/engine/gfx/gl/gltest"
	"github.com/hubastard/prism/engine/resource"
)

type testDisplay struct{ *gltest.Display }

func (d testDisplay) GL() glbackend.Functions { return d.Fake }

func batchShader() core.ShaderDesc {
	d := core.ShaderDesc{Locator: "shd:batch", Inputs: VertexLayout()}
	d.SetSource(core.GLSL330, "#version 330\nvoid main() {}", "#version 330\nvoid main() {}")
	var ub core.UniformBlockLayout
	ub.Add("vp", core.UniformMat4)
	d.AddUniformBlock("vsParams", core.StageVS, 0, ub)
	d.AddTexture("tex", core.StageFS, 0, core.Texture2D)
	return d
}

func newTestBatch(t *testing.T, maxQuads int) (*gfx.Context, *gltest.Fake, *Renderer2D) {
	t.Helper()
	disp := testDisplay{gltest.NewDisplay(320, 240)}
	cfg := core.DefaultConfig()
	cfg.Width, cfg.Height = 320, 240
	c, err := gfx.New(disp, cfg)
	require.NoError(t, err)
	t.Cleanup(c.Discard)
	rd, err := New(c, batchShader(), maxQuads)
	require.NoError(t, err)
	disp.Fake.Reset()
	return c, disp.Fake, rd
}

func TestBatchGroupsQuadsByTexture(t *testing.T) {
	c, fake, rd := newTestBatch(t, 8)
	atlas := c.CreateTexture(core.NewTexture2DDesc(16, 16, 1, core.PixelFormatRGBA8, core.UsageImmutable), nil)

	c.BeginPass(resource.InvalidId, nil)
	rd.Begin(mgl32.Ident4())
	rd.DrawQuad(0, 0, 1, 1, colors.Red, 0)
	rd.DrawQuad(2, 0, 1, 1, colors.Green, 0)
	rd.DrawSubTexQuad(0, 2, 1, 1, FromGrid(atlas, 1, 0, 8, 8, 16, 16), colors.White, 0)
	rd.DrawQuad(4, 0, 1, 1, colors.Blue, 0)
	rd.End()
	c.EndPass()

	draws := fake.Find("DrawElements")
	require.Len(t, draws, 3)
	assert.Equal(t, int32(12), draws[0].Args[1])
	assert.Equal(t, 0, draws[0].Args[3])
	assert.Equal(t, int32(6), draws[1].Args[1])
	assert.Equal(t, 12*2, draws[1].Args[3])
	assert.Equal(t, 18*2, draws[2].Args[3])
	assert.Equal(t, 1, fake.Count("BufferSubData"), "one vertex upload per frame")

	st := rd.Stats()
	assert.Equal(t, Statistics{DrawCalls: 3, QuadCount: 4, TextureCount: 3}, st)
	assert.Equal(t, 16, st.TotalVertexCount())
	assert.Equal(t, 1, c.FrameInfo().NumUpdateVertices)
}

func TestBatchDropsOverflow(t *testing.T) {
	c, fake, rd := newTestBatch(t, 2)
	c.BeginPass(resource.InvalidId, nil)
	rd.Begin(mgl32.Ident4())
	for range 3 {
		rd.DrawQuad(0, 0, 1, 1, colors.White, 0)
	}
	rd.End()
	c.EndPass()
	assert.Equal(t, 2, rd.Stats().QuadCount)
	assert.Equal(t, 1, rd.Stats().Dropped)
	assert.Equal(t, int32(12), fake.Find("DrawElements")[0].Args[1])
}

func TestBatchVertices(t *testing.T) {
	_, _, rd := newTestBatch(t, 1)
	rd.Begin(mgl32.Ident4())
	rd.DrawQuad(10, 20, 2, 4, colors.Red, 0)
	require.Len(t, rd.verts, vertsPerQuad*vStride)
	// top-left corner: pos, color, uv
	assert.Equal(t, []float32{9, 22, 1, 0, 0, 1, 0, 0}, rd.verts[:vStride])

	rd.Begin(mgl32.Ident4())
	rd.DrawQuad(0, 0, 2, 2, colors.Red, mgl32.DegToRad(90))
	assert.InDelta(t, -1, rd.verts[0], 1e-6)
	assert.InDelta(t, -1, rd.verts[1], 1e-6)
}

func TestEmptyFrameDrawsNothing(t *testing.T) {
	c, fake, rd := newTestBatch(t, 4)
	c.BeginPass(resource.InvalidId, nil)
	fake.Reset()
	rd.Begin(mgl32.Ident4())
	rd.End()
	c.EndPass()
	assert.Zero(t, fake.Count("BufferSubData"))
	assert.Zero(t, fake.Count("DrawElements"))
}

func TestNewRequiresVertexUniformBlock(t *testing.T) {
	disp := testDisplay{gltest.NewDisplay(32, 32)}
	cfg := core.DefaultConfig()
	c, err := gfx.New(disp, cfg)
	require.NoError(t, err)
	defer c.Discard()

	shd := batchShader()
	shd.UniformBlocks = nil
	_, err = New(c, shd, 4)
	assert.ErrorIs(t, err, ErrSetup)
}

func TestDiscardReleasesResources(t *testing.T) {
	c, fake, rd := newTestBatch(t, 4)
	rd.Discard()
	assert.Zero(t, fake.Live("Buffer"))
	assert.Zero(t, fake.Live("Texture"))
	assert.Equal(t, resource.StateInvalid, c.QueryResourceState(rd.pipeline))
}
