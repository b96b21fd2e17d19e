package metal

import "github.com/hubastard/prism/engine/core"

// Mesh is a vertex buffer plus optional index buffer. Dynamic and stream
// buffers get one native buffer per frame in flight; each update moves on
// to the next one so the GPU never reads memory the CPU is writing.
type Mesh struct {
	Desc              core.MeshDesc
	VertexBufferAttrs core.VertexBufferAttrs
	IndexBufferAttrs  core.IndexBufferAttrs
	PrimGroups        []core.PrimitiveGroup

	vertexBuffers      [core.MaxInflightFrames]Buffer
	indexBuffers       [core.MaxInflightFrames]Buffer
	numVertexSlots     int
	numIndexSlots      int
	activeVertexSlot   int
	activeIndexSlot    int
	vbUpdateFrameIndex int64
	ibUpdateFrameIndex int64
}

func (m *Mesh) NumPrimGroups() int { return len(m.PrimGroups) }

func (m *Mesh) reset(desc core.MeshDesc) {
	*m = Mesh{Desc: desc, vbUpdateFrameIndex: -1, ibUpdateFrameIndex: -1}
}

func (m *Mesh) vertexBuffer() Buffer { return m.vertexBuffers[m.activeVertexSlot] }
func (m *Mesh) indexBuffer() Buffer  { return m.indexBuffers[m.activeIndexSlot] }

// Texture is a texture or render target. Multisampled render targets draw
// into msaaTexture and resolve into the texture at the end of a pass.
type Texture struct {
	Desc  core.TextureDesc
	Attrs core.TextureAttrs

	textures         [core.MaxInflightFrames]TextureObject
	numSlots         int
	activeSlot       int
	sampler          SamplerState
	msaaTexture      TextureObject
	depthTexture     TextureObject
	pixelFormat      PixelFormat
	depthFormat      PixelFormat
	updateFrameIndex int64
}

func (t *Texture) reset(desc core.TextureDesc) {
	*t = Texture{Desc: desc, updateFrameIndex: -1}
}

func (t *Texture) texture() TextureObject { return t.textures[t.activeSlot] }

// Shader holds the vertex and fragment functions. Uniform blocks live in
// the renderer's per-frame uniform buffer.
type Shader struct {
	Desc core.ShaderDesc

	vsLibrary  Library
	fsLibrary  Library
	vsFunction Function
	fsFunction Function
}

func (s *Shader) reset(desc core.ShaderDesc) { *s = Shader{Desc: desc} }

// Pipeline holds the pipeline and depth-stencil state objects plus the
// encoder state Metal keeps outside of them.
type Pipeline struct {
	Desc core.PipelineDesc

	pipelineState     RenderPipelineState
	depthStencilState DepthStencilState
	primType          PrimitiveType
	cullMode          CullMode
	winding           Winding
}

// RenderPass keeps a pass descriptor with the attachments filled in; load
// actions and clear values are set per BeginPass.
type RenderPass struct {
	Desc core.PassDesc

	descriptor RenderPassDescriptor
	hasDepth   bool
	hasStencil bool
}
