package d3d11

import "github.com/hubastard/prism/engine/core"

// Mesh is a vertex buffer plus optional index buffer. Dynamic and stream
// buffers are rewritten with discard maps, so one native buffer each is
// enough.
type Mesh struct {
	Desc              core.MeshDesc
	VertexBufferAttrs core.VertexBufferAttrs
	IndexBufferAttrs  core.IndexBufferAttrs
	PrimGroups        []core.PrimitiveGroup

	vertexBuffer       Buffer
	indexBuffer        Buffer
	vbUpdateFrameIndex int64
	ibUpdateFrameIndex int64
}

func (m *Mesh) NumPrimGroups() int { return len(m.PrimGroups) }

func (m *Mesh) reset(desc core.MeshDesc) {
	*m = Mesh{Desc: desc, vbUpdateFrameIndex: -1, ibUpdateFrameIndex: -1}
}

// Texture is a texture or render target. Render targets with a sample
// count above one render into msaaTexture and resolve into texture2D.
type Texture struct {
	Desc  core.TextureDesc
	Attrs core.TextureAttrs

	texture2D           Texture2D
	texture3D           Texture3D
	srv                 ShaderResourceView
	sampler             SamplerState
	depthStencilTexture Texture2D
	msaaTexture         Texture2D
	colorFormat         Format
	updateFrameIndex    int64
}

func (t *Texture) reset(desc core.TextureDesc) {
	*t = Texture{Desc: desc, updateFrameIndex: -1}
}

// Shader is a vertex and pixel shader pair with one constant buffer per
// declared uniform block.
type Shader struct {
	Desc core.ShaderDesc

	vertexShader    VertexShader
	pixelShader     PixelShader
	constantBuffers [core.NumShaderStages][core.MaxNumUniformBlocksPerStage]Buffer
}

func (s *Shader) reset(desc core.ShaderDesc) { *s = Shader{Desc: desc} }

// Pipeline holds the immutable state objects of one pipeline.
type Pipeline struct {
	Desc core.PipelineDesc

	inputLayout       InputLayout
	rasterizerState   RasterizerState
	depthStencilState DepthStencilState
	blendState        BlendState
	topology          PrimitiveTopology
	vertexStrides     [core.MaxNumInputMeshes]uint32
}

// RenderPass holds one render target view per color attachment and an
// optional depth-stencil view.
type RenderPass struct {
	Desc core.PassDesc

	rtvs [core.MaxNumColorAttachments]RenderTargetView
	dsv  DepthStencilView
}
