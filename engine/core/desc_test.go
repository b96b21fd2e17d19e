package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/hubastard/prism/engine/resource"
)

func TestPassActionDefaults(t *testing.T) {
	a := NewPassAction()
	assert.Equal(t, ClearAll, a.Flags)
	assert.Equal(t, float32(1), a.Depth)
	assert.Zero(t, a.Stencil)
	for _, c := range a.Color {
		assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, c)
	}
}

func TestPassActionOneActionPerSlot(t *testing.T) {
	a := NewPassAction()
	a.LoadColor(1)
	assert.False(t, a.ClearsColor(1))
	assert.True(t, a.LoadsColor(1))
	assert.True(t, a.ClearsColor(0))

	a.ClearColor(1, mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, a.ClearsColor(1))
	assert.False(t, a.LoadsColor(1))

	a.DontCareColor(1)
	assert.False(t, a.ClearsColor(1))
	assert.False(t, a.LoadsColor(1))

	a.LoadDepthStencil()
	assert.True(t, a.LoadsDepthStencil())
	assert.False(t, a.ClearsDepthStencil())
	a.ClearDepthStencil(0.5, 3)
	assert.True(t, a.ClearsDepthStencil())
	assert.False(t, a.LoadsDepthStencil())
	assert.Equal(t, float32(0.5), a.Depth)

	assert.Equal(t, LoadAll, LoadPassAction().Flags)
	assert.Zero(t, DontCarePassAction().Flags)
}

func TestPackedImageData(t *testing.T) {
	d := NewTextureFromPixelData2D(4, 4, 3, PixelFormatRGBA8)
	assert.Equal(t, 1, d.ImageData.NumFaces)
	assert.Equal(t, [3]int{0, 64, 80}, [3]int(d.ImageData.Offsets[0][:3]))
	assert.Equal(t, [3]int{64, 16, 4}, [3]int(d.ImageData.Sizes[0][:3]))
	assert.Equal(t, UsageImmutable, d.Usage)

	dxt := PackedImageData(PixelFormatDXT1, 8, 8, 6, 1)
	assert.Equal(t, 32, dxt.Sizes[5][0])
	assert.Equal(t, 5*32, dxt.Offsets[5][0])
}

func TestMeshDescOffsets(t *testing.T) {
	var l VertexLayout
	l.Add(AttrPosition, VertexFloat3)
	d := NewMeshDesc(l, 4, IndexUInt16, 6, PrimitiveGroup{0, 6})
	assert.Equal(t, 0, d.VertexDataOffset)
	assert.Equal(t, 48, d.IndexDataOffset)

	d = NewMeshDesc(l, 3, IndexNone, 0)
	assert.Equal(t, NoDataOffset, d.IndexDataOffset)

	d = NewDynamicMeshDesc(UsageStream, l, 16, IndexNone, 0)
	assert.Equal(t, NoDataOffset, d.VertexDataOffset)
	assert.Equal(t, UsageStream, d.VertexUsage)
}

func TestShaderDescLookups(t *testing.T) {
	var d ShaderDesc
	var ub UniformBlockLayout
	ub.Add("mvp", UniformMat4)
	d.AddUniformBlock("vsParams", StageVS, 0, ub)
	d.AddUniformBlock("fsParams", StageFS, 0, ub)
	d.AddTexture("tex", StageFS, 0, Texture2D)
	assert.Equal(t, 1, d.UniformBlockIndexByStageAndSlot(StageFS, 0))
	assert.Equal(t, -1, d.UniformBlockIndexByStageAndSlot(StageVS, 1))
	assert.Equal(t, 0, d.TextureIndexByStageAndSlot(StageFS, 0))
	assert.Equal(t, -1, d.TextureIndexByStageAndSlot(StageVS, 0))
	assert.Equal(t, 1, d.NumTextures(StageFS))
	assert.True(t, d.Programs[HLSL5].Empty())
}

func TestPipelineAndPassDefaults(t *testing.T) {
	shd := resource.Id{Type: ResourceShader}
	p := NewPipelineDesc(shd)
	assert.Equal(t, CmpAlways, p.DepthStencilState.DepthCmpFunc)
	assert.False(t, p.DepthStencilState.DepthWriteEnabled)
	assert.Equal(t, BlendOne, p.BlendState.SrcFactorRGB)
	assert.Equal(t, PixelFormatDEPTHSTENCIL, p.BlendState.DepthFormat)
	assert.Equal(t, 1, p.RasterizerState.SampleCount)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, p.BlendColor)

	tex := resource.Id{Type: ResourceTexture, Slot: 1}
	pd := NewPassDesc(tex, resource.InvalidId)
	assert.Equal(t, 1, pd.NumColorAttachments())
	assert.False(t, pd.DepthStencilTexture.IsValid())
}
