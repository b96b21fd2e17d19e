package d3d11

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
	"github.com/hubastard/prism/engine/scratch"
)

type drawFixture struct {
	r   *Renderer
	f   *Factory
	dev *fakeDevice
	msh Mesh
	shd Shader
	pip Pipeline
	tex Texture
}

func newDrawFixture(t *testing.T) *drawFixture {
	t.Helper()
	r, f, dev := newTestBackend(t)
	fx := &drawFixture{r: r, f: f, dev: dev}
	require.Equal(t, core.ResourceValid, f.InitMesh(&fx.msh, core.NewFullScreenQuadDesc(false), nil))
	require.Equal(t, core.ResourceValid, f.InitShader(&fx.shd, testShaderDesc()))
	require.Equal(t, core.ResourceValid, f.InitPipeline(&fx.pip, core.NewPipelineDesc(resource.InvalidId, quadLayout()), &fx.shd))
	require.Equal(t, core.ResourceValid, f.InitTexture(&fx.tex, core.NewTexture2DDesc(4, 4, 1, core.PixelFormatRGBA8, core.UsageDynamic), nil))
	dev.reset()
	return fx
}

func (fx *drawFixture) beginDefaultPass() {
	action := core.NewPassAction()
	fx.r.BeginPass(nil, [core.MaxNumColorAttachments]*Texture{}, nil, &action)
}

func TestQueryFeature(t *testing.T) {
	r, _, _ := newTestBackend(t)
	assert.True(t, r.QueryFeature(core.FeatureOriginTopLeft))
	assert.False(t, r.QueryFeature(core.FeatureOriginBottomLeft))
	assert.True(t, r.QueryFeature(core.FeatureTextureCompressionDXT))
	assert.False(t, r.QueryFeature(core.FeatureTextureCompressionPVRTC))
	assert.False(t, r.QueryFeature(core.FeatureNativeTexture))
	assert.True(t, r.QueryFeature(core.FeatureMultipleRenderTarget))
}

func TestBeginDefaultPassClears(t *testing.T) {
	fx := newDrawFixture(t)
	action := core.ClearPassAction(mgl32.Vec4{0.25, 0.5, 0.75, 1}, 1, 0)
	fx.r.BeginPass(nil, [core.MaxNumColorAttachments]*Texture{}, nil, &action)

	assert.Equal(t, 640, fx.r.PassAttrs().FramebufferWidth)
	om := fx.dev.find("OMSetRenderTargets")
	require.Len(t, om, 1)
	assert.Equal(t, []any{[]RenderTargetView{0x1000}, DepthStencilView(0x1001)}, om[0].args)
	assert.Equal(t, []any{RenderTargetView(0x1000), [4]float32{0.25, 0.5, 0.75, 1}}, fx.dev.find("ClearRenderTargetView")[0].args)
	assert.Equal(t, []any{DepthStencilView(0x1001), ClearDepth | ClearStencil, float32(1), uint8(0)}, fx.dev.find("ClearDepthStencilView")[0].args)
	vp := fx.dev.find("RSSetViewports")[0].args[0].([]Viewport)
	assert.Equal(t, []Viewport{{Width: 640, Height: 480, MaxDepth: 1}}, vp)

	fx.r.EndPass()
	fx.dev.reset()
	load := core.LoadPassAction()
	fx.r.BeginPass(nil, [core.MaxNumColorAttachments]*Texture{}, nil, &load)
	assert.Zero(t, fx.dev.count("ClearRenderTargetView"))
	assert.Zero(t, fx.dev.count("ClearDepthStencilView"))
}

func TestBeginPassUnbindsTextures(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	assert.Equal(t, 1, fx.dev.count("PSSetShaderResources"))
	srvs := fx.dev.find("PSSetShaderResources")[0].args[1].([]ShaderResourceView)
	assert.Len(t, srvs, core.MaxNumFragmentTextures)
}

func TestOffscreenPassAndResolve(t *testing.T) {
	r, f, dev := newTestBackend(t)
	var c0, c1 Texture
	rt := core.NewRenderTargetDesc(32, 32, core.PixelFormatRGBA8, core.PixelFormatDEPTHSTENCIL, 4)
	require.Equal(t, core.ResourceValid, f.InitTexture(&c0, rt, nil))
	rt.DepthFormat = core.PixelFormatNone
	require.Equal(t, core.ResourceValid, f.InitTexture(&c1, rt, nil))
	colors := [core.MaxNumColorAttachments]*Texture{&c0, &c1}
	var rp RenderPass
	require.Equal(t, core.ResourceValid, f.InitRenderPass(&rp, core.PassDesc{}, colors, &c0))
	dev.reset()

	action := core.NewPassAction()
	action.LoadColor(1)
	r.BeginPass(&rp, colors, &c0, &action)
	assert.Equal(t, 32, r.PassAttrs().FramebufferWidth)
	assert.Equal(t, 4, r.PassAttrs().SampleCount)
	om := dev.find("OMSetRenderTargets")[0]
	assert.Equal(t, []RenderTargetView{rp.rtvs[0], rp.rtvs[1]}, om.args[0])
	assert.Equal(t, rp.dsv, om.args[1])
	clears := dev.find("ClearRenderTargetView")
	require.Len(t, clears, 1, "attachment 1 loads")
	assert.Equal(t, rp.rtvs[0], clears[0].args[0])
	assert.Equal(t, 1, dev.count("ClearDepthStencilView"))

	r.EndPass()
	resolves := dev.find("ResolveSubresource")
	require.Len(t, resolves, 2)
	assert.Equal(t, []any{Object(c1.texture2D), uint32(0), Object(c1.msaaTexture), uint32(0), FormatR8G8B8A8UNorm}, resolves[1].args)
	assert.Panics(t, r.EndPass)
}

func TestEndPassWithoutMSAASkipsResolve(t *testing.T) {
	r, f, dev := newTestBackend(t)
	var c Texture
	require.Equal(t, core.ResourceValid, f.InitTexture(&c, core.NewRenderTargetDesc(8, 8, core.PixelFormatRGBA8, core.PixelFormatNone, 1), nil))
	colors := [core.MaxNumColorAttachments]*Texture{&c}
	var rp RenderPass
	require.Equal(t, core.ResourceValid, f.InitRenderPass(&rp, core.PassDesc{}, colors, nil))

	action := core.NewPassAction()
	r.BeginPass(&rp, colors, nil, &action)
	assert.Zero(t, dev.count("ClearDepthStencilView"), "pass has no depth-stencil view")
	r.EndPass()
	assert.Zero(t, dev.count("ResolveSubresource"))
}

func TestViewportAndScissorOrigin(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.dev.reset()

	fx.r.ApplyViewPort(10, 20, 100, 50, false)
	vp := fx.dev.find("RSSetViewports")[0].args[0].([]Viewport)
	assert.Equal(t, float32(410), vp[0].TopLeftY, "bottom-left origin is flipped")
	fx.r.ApplyViewPort(10, 20, 100, 50, true)
	vp = fx.dev.find("RSSetViewports")[1].args[0].([]Viewport)
	assert.Equal(t, float32(20), vp[0].TopLeftY)

	fx.r.ApplyScissorRect(10, 20, 100, 50, false)
	rect := fx.dev.find("RSSetScissorRects")[0].args[0].([]Rect)
	assert.Equal(t, Rect{Left: 10, Top: 410, Right: 110, Bottom: 460}, rect[0])
	fx.r.ApplyScissorRect(10, 20, 100, 50, true)
	rect = fx.dev.find("RSSetScissorRects")[1].args[0].([]Rect)
	assert.Equal(t, Rect{Left: 10, Top: 20, Right: 110, Bottom: 70}, rect[0])
}

func TestApplyDrawStateElidesRedundantState(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.dev.reset()

	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	first := len(fx.dev.calls)
	assert.Equal(t, []any{fx.pip.rasterizerState}, fx.dev.find("RSSetState")[0].args)
	assert.Equal(t, []any{fx.pip.depthStencilState, uint32(0)}, fx.dev.find("OMSetDepthStencilState")[0].args)
	assert.Equal(t, []any{fx.pip.blendState, [4]float32{1, 1, 1, 1}, uint32(0xFFFFFFFF)}, fx.dev.find("OMSetBlendState")[0].args)
	vbs := fx.dev.find("IASetVertexBuffers")[0]
	assert.Equal(t, []Buffer{fx.msh.vertexBuffer, 0, 0, 0}, vbs.args[1])
	assert.Equal(t, []uint32{20, 0, 0, 0}, vbs.args[2])
	assert.Equal(t, []any{fx.msh.indexBuffer, FormatR16UInt, uint32(0)}, fx.dev.find("IASetIndexBuffer")[0].args)
	assert.Equal(t, []any{TopologyTriangleList}, fx.dev.find("IASetPrimitiveTopology")[0].args)
	assert.Equal(t, 1, fx.dev.count("IASetInputLayout"))
	assert.Equal(t, 1, fx.dev.count("VSSetShader"))
	assert.Equal(t, 1, fx.dev.count("PSSetShader"))
	cbs := fx.dev.find("PSSetConstantBuffers")
	require.Len(t, cbs, 1)
	assert.Equal(t, []any{uint32(0), []Buffer{fx.shd.constantBuffers[core.StageFS][0]}}, cbs[0].args)
	assert.Zero(t, fx.dev.count("VSSetConstantBuffers"))

	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	assert.Len(t, fx.dev.calls, first, "second apply issues no calls")

	fx.r.ResetStateCache()
	fx.dev.reset()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	assert.Equal(t, first, len(fx.dev.calls))
}

func TestApplyDrawStateChecksPassFormats(t *testing.T) {
	fx := newDrawFixture(t)
	fx.pip.Desc.BlendState.DepthFormat = core.PixelFormatDEPTH
	fx.beginDefaultPass()
	assert.Panics(t, func() { fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh}) })

	ignoreAsserts(t)
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.dev.reset()
	fx.r.Draw(0, 1)
	assert.Zero(t, fx.dev.count("DrawIndexed"))
}

func TestNilMeshCancelsDraws(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()

	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{nil})
	fx.dev.reset()
	fx.r.Draw(0, 1)
	fx.r.DrawElements(0, 3, 2)
	fx.r.ApplyUniformBlock(core.StageFS, 0, 0, make([]byte, 16))
	fx.r.ApplyTextures(core.StageFS, []*Texture{&fx.tex})
	assert.Empty(t, fx.dev.calls)

	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.r.Draw(0, 1)
	assert.Equal(t, 1, fx.dev.count("DrawIndexed"))
}

func TestNilTextureCancelsDraws(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.r.ApplyTextures(core.StageFS, []*Texture{nil})
	fx.dev.reset()
	fx.r.Draw(0, 1)
	assert.Zero(t, fx.dev.count("DrawIndexed"))
}

func TestApplyTexturesBindsViewsAndSamplers(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.dev.reset()

	fx.r.ApplyTextures(core.StageFS, []*Texture{&fx.tex})
	fx.r.ApplyTextures(core.StageFS, []*Texture{&fx.tex})
	srvs := fx.dev.find("PSSetShaderResources")
	require.Len(t, srvs, 1, "second bind is cached")
	assert.Equal(t, []any{uint32(0), []ShaderResourceView{fx.tex.srv}}, srvs[0].args)
	assert.Equal(t, []any{uint32(0), []SamplerState{fx.tex.sampler}}, fx.dev.find("PSSetSamplers")[0].args)

	fx.r.ApplyTextures(core.StageVS, []*Texture{&fx.tex})
	assert.Equal(t, 1, fx.dev.count("VSSetShaderResources"))
	assert.Panics(t, func() { fx.r.ApplyTextures(core.StageVS, make([]*Texture, core.MaxNumVertexTextures+1)) })
}

func TestDrawIndexedAndInstanced(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.dev.reset()

	fx.r.Draw(0, 1)
	fx.r.Draw(0, 3)
	fx.r.Draw(7, 1)
	fx.r.DrawElements(3, 3, 1)

	draws := fx.dev.find("DrawIndexed")
	require.Len(t, draws, 2)
	assert.Equal(t, []any{uint32(6), uint32(0), int32(0)}, draws[0].args)
	assert.Equal(t, uint32(3), draws[1].args[1])
	inst := fx.dev.find("DrawIndexedInstanced")
	require.Len(t, inst, 1)
	assert.Equal(t, []any{uint32(6), uint32(3), uint32(0), int32(0), uint32(0)}, inst[0].args)
}

func TestDrawNonIndexed(t *testing.T) {
	fx := newDrawFixture(t)
	desc := core.NewDynamicMeshDesc(core.UsageDynamic, quadLayout(), 3, core.IndexNone, 0, core.PrimitiveGroup{NumElements: 3})
	var msh Mesh
	require.Equal(t, core.ResourceValid, fx.f.InitMesh(&msh, desc, nil))
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&msh})
	fx.dev.reset()

	fx.r.Draw(0, 1)
	fx.r.Draw(0, 2)
	assert.Equal(t, []any{uint32(3), uint32(0)}, fx.dev.find("Draw")[0].args)
	assert.Equal(t, []any{uint32(3), uint32(2), uint32(0), uint32(0)}, fx.dev.find("DrawInstanced")[0].args)
}

func TestApplyUniformBlock(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	hash := fx.shd.Desc.UniformBlocks[0].Layout.TypeHash

	data := scratch.NewArena(64).Float32s(1, 0.5, 0.25, 1)
	fx.r.ApplyUniformBlock(core.StageFS, 0, hash, data)
	ups := fx.dev.find("UpdateSubresource")
	require.Len(t, ups, 1)
	assert.Equal(t, []any{Object(fx.shd.constantBuffers[core.StageFS][0]), uint32(0), data}, ups[0].args)

	assert.Panics(t, func() { fx.r.ApplyUniformBlock(core.StageFS, 0, hash+1, data) }, "type hash mismatch")
	assert.Panics(t, func() { fx.r.ApplyUniformBlock(core.StageFS, 0, hash, data[:12]) }, "not a multiple of 16")
	assert.Panics(t, func() { fx.r.ApplyUniformBlock(core.StageVS, 0, hash, data) }, "no block at slot")
	assert.Panics(t, func() { fx.r.ApplyUniformBlock(core.StageFS, 0, hash, make([]byte, 32)) }, "too large")
}

func TestApplyUniformBlockUploadsInReleaseMode(t *testing.T) {
	logger.SetAssertMode(logger.AssertLog)
	defer logger.SetAssertMode(logger.AssertPanic)
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	hash := fx.shd.Desc.UniformBlocks[0].Layout.TypeHash
	arena := scratch.NewArena(64)

	fx.r.ApplyUniformBlock(core.StageFS, 0, hash+1, arena.Float32s(0, 1, 0, 1))
	fx.r.ApplyUniformBlock(core.StageFS, 0, hash, arena.Float32s(1, 1, 0, 1, 9, 9, 9, 9))
	ups := fx.dev.find("UpdateSubresource")
	require.Len(t, ups, 2, "type mismatch still uploads")
	assert.Len(t, ups[1].args[2], 16, "oversized data is clipped to the block")
}

func TestDrawRejectsBadPrimGroup(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.dev.reset()

	assert.False(t, fx.r.Draw(-1, 1))
	assert.False(t, fx.r.Draw(fx.msh.NumPrimGroups(), 1))
	assert.Zero(t, fx.dev.count("DrawIndexed"))
	assert.True(t, fx.r.Draw(0, 1))
	assert.Equal(t, 1, fx.dev.count("DrawIndexed"))
}

func TestSingleUpdatePerFrame(t *testing.T) {
	r, f, dev := newTestBackend(t)
	desc := core.NewDynamicMeshDesc(core.UsageStream, quadLayout(), 4, core.IndexUInt16, 6, core.PrimitiveGroup{NumElements: 6})
	var msh Mesh
	require.Equal(t, core.ResourceValid, f.InitMesh(&msh, desc, nil))
	data := make([]byte, 4*20)
	data[0] = 0x5A

	r.UpdateVertices(&msh, data)
	assert.Equal(t, []any{Object(msh.vertexBuffer), uint32(0), MapWriteDiscard}, dev.find("Map")[0].args)
	assert.Equal(t, 1, dev.count("Unmap"))
	assert.Equal(t, byte(0x5A), dev.mappedData(Object(msh.vertexBuffer), 0)[0])

	assert.Panics(t, func() { r.UpdateVertices(&msh, data) })
	r.UpdateIndices(&msh, make([]byte, 12))
	assert.Equal(t, 2, dev.count("Map"), "index buffer has its own budget")

	ignoreAsserts(t)
	r.UpdateVertices(&msh, data)
	assert.Equal(t, 2, dev.count("Map"), "second update in a frame is dropped")

	r.CommitFrame()
	r.UpdateVertices(&msh, data)
	assert.Equal(t, 3, dev.count("Map"))
}

func TestUpdateImmutableMeshAsserts(t *testing.T) {
	fx := newDrawFixture(t)
	assert.Panics(t, func() { fx.r.UpdateVertices(&fx.msh, make([]byte, 16)) })
	assert.Panics(t, func() { fx.r.UpdateIndices(&fx.msh, make([]byte, 4)) })
}

func TestUpdateTextureHonorsRowPitch(t *testing.T) {
	fx := newDrawFixture(t)
	fx.dev.rowPitch = 32
	img := core.PackedImageData(core.PixelFormatRGBA8, 4, 4, 1, 1)
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	fx.r.UpdateTexture(&fx.tex, data, img)

	require.Equal(t, 1, fx.dev.count("Map"))
	mapped := fx.dev.mappedData(Object(fx.tex.texture2D), 0)
	assert.Equal(t, data[:16], mapped[:16])
	assert.Equal(t, data[16:32], mapped[32:48], "second row starts at the mapped row pitch")
	assert.Equal(t, data[48:64], mapped[96:112])
	assert.Panics(t, func() { fx.r.UpdateTexture(&fx.tex, data, img) })
}

func TestInvalidatePipelineStateRestoresDefaults(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.dev.reset()

	fx.r.InvalidatePipelineState()
	assert.Equal(t, []any{BlendState(0), [4]float32{}, uint32(0xFFFFFFFF)}, fx.dev.find("OMSetBlendState")[0].args)
	assert.Equal(t, []any{DepthStencilState(0), uint32(0xFF)}, fx.dev.find("OMSetDepthStencilState")[0].args)
	assert.Equal(t, []any{RasterizerState(0)}, fx.dev.find("RSSetState")[0].args)

	fx.dev.reset()
	fx.r.Draw(0, 1)
	assert.Empty(t, fx.dev.calls, "pipeline is forgotten")
}

func TestCommitFrameResetsPassState(t *testing.T) {
	fx := newDrawFixture(t)
	fx.beginDefaultPass()
	fx.r.ApplyDrawState(&fx.pip, &fx.shd, []*Mesh{&fx.msh})
	fx.r.EndPass()
	fx.r.CommitFrame()
	assert.Equal(t, int64(1), fx.r.FrameIndex())

	fx.dev.reset()
	fx.r.Draw(0, 1)
	assert.Empty(t, fx.dev.calls)
	assert.Panics(t, fx.r.EndPass)
}
