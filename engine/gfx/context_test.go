//go:build !d3d11 && !metal

package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/prism/engine/core"
	glbackend "github.com/hubastard/prism/engine/gfx/gl"
	"github.com/hubastard/prism/engine/gfx/gl/gltest"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
)

type testDisplay struct{ *gltest.Display }

func (d testDisplay) GL() glbackend.Functions { return d.Fake }

type noContextDisplay struct{ *gltest.Display }

func (noContextDisplay) GL() glbackend.Functions { return nil }

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.Width, cfg.Height = 640, 480
	cfg.PoolSizes = core.PoolSizes{Mesh: 4, Texture: 4, Shader: 2, Pipeline: 2, Pass: 2}
	cfg.ClearColor = [4]float32{0.5, 0.25, 0, 1}
	return cfg
}

func newTestContext(t *testing.T) (*Context, testDisplay) {
	t.Helper()
	disp := testDisplay{gltest.NewDisplay(640, 480)}
	c, err := New(disp, testConfig())
	require.NoError(t, err)
	t.Cleanup(c.Discard)
	disp.Fake.Reset()
	return c, disp
}

func ignoreAsserts(t *testing.T) {
	prev := logger.GetAssertMode()
	logger.SetAssertMode(logger.AssertIgnore)
	t.Cleanup(func() { logger.SetAssertMode(prev) })
}

func quadLayout() core.VertexLayout {
	var l core.VertexLayout
	l.Add(core.AttrPosition, core.VertexFloat3).Add(core.AttrTexCoord0, core.VertexFloat2)
	return l
}

func testShaderDesc() core.ShaderDesc {
	d := core.ShaderDesc{Locator: "shd:test", Inputs: quadLayout()}
	d.SetSource(core.GLSL330, "#version 330\nvoid main() {}", "#version 330\nvoid main() {}")
	var ub core.UniformBlockLayout
	ub.Add("color", core.UniformVec4)
	d.AddUniformBlock("fsParams", core.StageFS, 0, ub)
	d.AddTexture("tex", core.StageFS, 0, core.Texture2D)
	return d
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0
	_, err := New(testDisplay{gltest.NewDisplay(16, 16)}, cfg)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestNewRejectsForeignDisplay(t *testing.T) {
	_, err := New(gltest.NewDisplay(16, 16), testConfig())
	assert.ErrorIs(t, err, ErrBackendSetup)
}

func TestNewWithoutContext(t *testing.T) {
	_, err := New(noContextDisplay{gltest.NewDisplay(16, 16)}, testConfig())
	assert.ErrorIs(t, err, ErrBackendSetup)
	assert.ErrorIs(t, err, glbackend.ErrNoContext)
}

func TestPoolsSizedFromConfig(t *testing.T) {
	c, _ := newTestContext(t)
	assert.Equal(t, 4, c.QueryFreeSlots(core.ResourceMesh))
	assert.Equal(t, 4, c.QueryFreeSlots(core.ResourceTexture))
	assert.Equal(t, 2, c.QueryFreeSlots(core.ResourceShader))
	assert.Equal(t, 2, c.QueryFreeSlots(core.ResourcePipeline))
	assert.Equal(t, 2, c.QueryFreeSlots(core.ResourcePass))
	assert.Zero(t, c.QueryFreeSlots(core.NumResourceTypes))
}

func TestQueryFeatureForwardsToBackend(t *testing.T) {
	c, _ := newTestContext(t)
	assert.True(t, c.QueryFeature(core.FeatureOriginBottomLeft))
	assert.False(t, c.QueryFeature(core.FeatureTextureCompressionPVRTC))
}

func TestCommitFramePresents(t *testing.T) {
	c, disp := newTestContext(t)
	c.BeginPass(resource.InvalidId, nil)
	c.EndPass()
	c.Arena().Alloc(32)
	require.Equal(t, 1, c.FrameInfo().NumPasses)

	c.CommitFrame()
	assert.Equal(t, 1, disp.Presented)
	assert.Equal(t, int64(1), c.Renderer().FrameIndex())
	assert.Equal(t, core.FrameInfo{}, c.FrameInfo())
	assert.Zero(t, c.Arena().Len())
}

func TestCommitFrameInsidePassAsserts(t *testing.T) {
	c, disp := newTestContext(t)
	c.BeginPass(resource.InvalidId, nil)
	assert.Panics(t, c.CommitFrame)

	ignoreAsserts(t)
	c.CommitFrame()
	assert.Equal(t, 1, disp.Presented)
	c.BeginPass(resource.InvalidId, nil)
	c.EndPass()
}

func TestDisplayModifiedResetsStateCache(t *testing.T) {
	fx := newDrawFixture(t)
	fx.c.BeginPass(resource.InvalidId, nil)
	fx.c.ApplyDrawState(fx.pip, fx.msh)
	fx.fake.Reset()
	fx.c.ApplyDrawState(fx.pip, fx.msh)
	require.Zero(t, fx.fake.Count("UseProgram"))

	fx.disp.Resize(800, 600)
	fx.c.HandleEvent(core.EventDisplayModified{Attrs: fx.disp.Attrs})
	fx.fake.Reset()
	fx.c.ApplyDrawState(fx.pip, fx.msh)
	assert.Equal(t, 1, fx.fake.Count("UseProgram"))
	fx.c.EndPass()
}

func TestOtherEventsKeepStateCache(t *testing.T) {
	c, disp := newTestContext(t)
	c.HandleEvent(core.EventKey{Key: core.KeySpace, Down: true})
	assert.Empty(t, disp.Fake.Calls)
}

func TestDiscardReleasesEverything(t *testing.T) {
	disp := testDisplay{gltest.NewDisplay(64, 64)}
	c, err := New(disp, testConfig())
	require.NoError(t, err)

	c.CreateMesh(core.NewFullScreenQuadDesc(false), nil)
	c.CreateTexture(core.NewRenderTargetDesc(16, 16, core.PixelFormatRGBA8, core.PixelFormatDEPTHSTENCIL, 1), nil)
	shd := c.CreateShader(testShaderDesc())
	c.CreatePipeline(core.NewPipelineDesc(shd, quadLayout()))
	c.PushResourceLabel()
	c.CreateTexture(core.NewTexture2DDesc(4, 4, 1, core.PixelFormatRGBA8, core.UsageImmutable), nil)

	c.Discard()
	for _, kind := range []string{"Buffer", "Texture", "Renderbuffer", "Program", "Shader"} {
		assert.Zero(t, disp.Fake.Live(kind), kind)
	}
	assert.NotPanics(t, c.Discard)
}

func TestNoThreadGuard(t *testing.T) {
	c, _ := newTestContext(t)
	done := make(chan resource.Id)
	go func() { done <- c.CreateMesh(core.NewFullScreenQuadDesc(false), nil) }()
	id := <-done
	assert.Equal(t, resource.StateValid, c.QueryResourceState(id))
}
