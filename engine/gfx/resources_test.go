//go:build !d3d11 && !metal

package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/resource"
)

func TestHandleIdentity(t *testing.T) {
	c, _ := newTestContext(t)
	desc := core.NewFullScreenQuadDesc(true)
	id := c.CreateMesh(desc, nil)
	require.True(t, id.IsValid())
	assert.Equal(t, core.ResourceMesh, id.Type)
	require.NotNil(t, c.Mesh(id))
	assert.Equal(t, desc, c.Mesh(id).Desc)

	c.Destroy(id)
	assert.Nil(t, c.Mesh(id))
	assert.Equal(t, resource.StateInvalid, c.QueryResourceState(id))

	again := c.CreateMesh(desc, nil)
	assert.Equal(t, id.Slot, again.Slot, "freed slot is reused first")
	assert.NotEqual(t, id, again)
	assert.Nil(t, c.Mesh(id), "stale id does not alias the new mesh")
	assert.NotPanics(t, func() { c.Destroy(id) })
	assert.Equal(t, resource.StateValid, c.QueryResourceState(again))
}

func TestPoolExhaustion(t *testing.T) {
	c, _ := newTestContext(t)
	for range 4 {
		require.True(t, c.CreateMesh(core.NewFullScreenQuadDesc(false), nil).IsValid())
	}
	assert.Zero(t, c.QueryFreeSlots(core.ResourceMesh))
	id := c.CreateMesh(core.NewFullScreenQuadDesc(false), nil)
	assert.Equal(t, resource.InvalidId, id)
	assert.Equal(t, resource.InvalidId, c.AllocMesh(""))
}

func TestSharedLocator(t *testing.T) {
	c, disp := newTestContext(t)
	desc := core.NewTexture2DDesc(4, 4, 1, core.PixelFormatRGBA8, core.UsageImmutable)
	desc.Locator = "tex:shared"

	a := c.CreateTexture(desc, nil)
	b := c.CreateTexture(desc, nil)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, disp.Fake.Count("GenTexture"))
	assert.Equal(t, 2, c.QueryResourceInfo(a).UseCount)
	assert.Equal(t, a, c.LookupResource("tex:shared"))
	assert.Equal(t, resource.InvalidId, c.LookupResource("tex:missing"))

	c.Destroy(a)
	c.Destroy(a)
	assert.Equal(t, resource.StateValid, c.QueryResourceState(a))
	c.Destroy(a)
	assert.Equal(t, resource.StateInvalid, c.QueryResourceState(a))
	assert.Zero(t, disp.Fake.Live("Texture"))
}

func TestLabels(t *testing.T) {
	c, _ := newTestContext(t)
	outside := c.CreateMesh(core.NewFullScreenQuadDesc(false), nil)

	label := c.PushResourceLabel()
	msh := c.CreateMesh(core.NewFullScreenQuadDesc(false), nil)
	tex := c.CreateTexture(core.NewRenderTargetDesc(8, 8, core.PixelFormatRGBA8, core.PixelFormatNone, 1), nil)
	pass := c.CreatePass(core.NewPassDesc(tex, resource.InvalidId))
	assert.Equal(t, label, c.PopResourceLabel())

	info := c.QueryResourceInfo(msh)
	assert.Equal(t, label, info.Label)
	assert.Equal(t, resource.StateValid, info.State)
	assert.Equal(t, resource.DefaultLabel, c.QueryResourceInfo(outside).Label)

	c.PushExistingResourceLabel(label)
	late := c.CreateMesh(core.NewFullScreenQuadDesc(true), nil)
	c.PopResourceLabel()

	c.DestroyResources(label)
	for _, id := range []resource.Id{msh, tex, pass, late} {
		assert.Equal(t, resource.StateInvalid, c.QueryResourceState(id), id.String())
	}
	assert.Equal(t, resource.StateValid, c.QueryResourceState(outside))
	assert.Equal(t, resource.InvalidLabel, c.QueryResourceInfo(msh).Label)
}

func TestPopLabelUnderflowAsserts(t *testing.T) {
	c, _ := newTestContext(t)
	assert.Panics(t, func() { c.PopResourceLabel() })
	ignoreAsserts(t)
	assert.Equal(t, resource.InvalidLabel, c.PopResourceLabel())
}

func TestUnsupportedFormatFails(t *testing.T) {
	c, disp := newTestContext(t)
	desc := core.NewTexture2DDesc(16, 16, 1, core.PixelFormatPVRTC4_RGBA, core.UsageImmutable)
	id := c.CreateTexture(desc, nil)
	require.True(t, id.IsValid())
	assert.Equal(t, resource.StateFailed, c.QueryResourceState(id))
	assert.Nil(t, c.Texture(id))
	assert.Equal(t, 3, c.QueryFreeSlots(core.ResourceTexture), "failed resources stay allocated")

	c.Destroy(id)
	assert.Equal(t, 4, c.QueryFreeSlots(core.ResourceTexture))
	assert.Zero(t, disp.Fake.Live("Texture"))
}

func TestPipelineNeedsValidShader(t *testing.T) {
	c, _ := newTestContext(t)
	pip := c.CreatePipeline(core.NewPipelineDesc(resource.InvalidId, quadLayout()))
	assert.Equal(t, resource.StateFailed, c.QueryResourceState(pip))

	shd := c.CreateShader(testShaderDesc())
	c.Destroy(shd)
	pip = c.CreatePipeline(core.NewPipelineDesc(shd, quadLayout()))
	assert.Equal(t, resource.StateFailed, c.QueryResourceState(pip))
}

func TestPassNeedsValidAttachments(t *testing.T) {
	c, _ := newTestContext(t)
	rt := c.CreateTexture(core.NewRenderTargetDesc(8, 8, core.PixelFormatRGBA8, core.PixelFormatDEPTHSTENCIL, 1), nil)
	c.Destroy(rt)
	pass := c.CreatePass(core.NewPassDesc(rt, resource.InvalidId))
	assert.Equal(t, resource.StateFailed, c.QueryResourceState(pass))

	rt = c.CreateTexture(core.NewRenderTargetDesc(8, 8, core.PixelFormatRGBA8, core.PixelFormatDEPTHSTENCIL, 1), nil)
	pass = c.CreatePass(core.NewPassDesc(rt, rt))
	assert.Equal(t, resource.StateValid, c.QueryResourceState(pass))
	assert.NotNil(t, c.Pass(pass))
}

func TestAsyncCreation(t *testing.T) {
	c, disp := newTestContext(t)
	msh := c.AllocMesh("msh:async")
	assert.Equal(t, resource.StatePending, c.QueryResourceState(msh))
	assert.Zero(t, disp.Fake.Count("GenBuffer"))

	assert.Equal(t, resource.StateValid, c.InitMesh(msh, core.NewFullScreenQuadDesc(false), nil))
	assert.Equal(t, resource.StateValid, c.QueryResourceState(msh))
	assert.Equal(t, "msh:async", c.QueryResourceInfo(msh).Locator)
	assert.Panics(t, func() { c.InitMesh(msh, core.NewFullScreenQuadDesc(false), nil) }, "already initialized")

	tex := c.AllocTexture("tex:async")
	c.FailResource(tex)
	assert.Equal(t, resource.StateFailed, c.QueryResourceState(tex))
	c.FailResource(msh)
	assert.Equal(t, resource.StateValid, c.QueryResourceState(msh), "only pending resources fail")

	tex = c.AllocTexture("tex:async2")
	st := c.InitTexture(tex, core.NewTextureFromPixelData2D(4, 4, 1, core.PixelFormatRGBA8), make([]byte, 64))
	assert.Equal(t, resource.StateValid, st)
}

func TestInitAfterDestroyIsIgnored(t *testing.T) {
	c, disp := newTestContext(t)
	msh := c.AllocMesh("msh:gone")
	c.Destroy(msh)
	assert.Equal(t, resource.StateInvalid, c.InitMesh(msh, core.NewFullScreenQuadDesc(false), nil))
	assert.Zero(t, disp.Fake.Count("GenBuffer"))

	tex := c.AllocTexture("tex:gone")
	c.Destroy(tex)
	assert.Equal(t, resource.StateInvalid, c.InitTexture(tex, core.NewTexture2DDesc(4, 4, 1, core.PixelFormatRGBA8, core.UsageImmutable), nil))
}

func TestPlaceholderMustBeMeshOrTexture(t *testing.T) {
	c, _ := newTestContext(t)
	shd := c.CreateShader(testShaderDesc())
	assert.Panics(t, func() { c.SetPlaceholder(shd) })
}
