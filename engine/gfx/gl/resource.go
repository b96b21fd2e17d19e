package glbackend

import (
	"github.com/hubastard/prism/engine/core"
)

const (
	vb = 0
	ib = 1
)

// meshBuffer is one vertex or index buffer. Stream buffers rotate through
// several GL buffers so a frame never overwrites one still in flight.
type meshBuffer struct {
	updateFrameIndex int64
	numSlots         int
	activeSlot       int
	glBuffers        [core.MaxInflightFrames]uint32
}

func (b *meshBuffer) active() uint32 { return b.glBuffers[b.activeSlot] }

// Mesh is a vertex buffer plus optional index buffer.
type Mesh struct {
	Desc              core.MeshDesc
	VertexBufferAttrs core.VertexBufferAttrs
	IndexBufferAttrs  core.IndexBufferAttrs
	PrimGroups        []core.PrimitiveGroup

	buffers [2]meshBuffer
}

func (m *Mesh) NumPrimGroups() int { return len(m.PrimGroups) }

func (m *Mesh) reset(desc core.MeshDesc) {
	*m = Mesh{Desc: desc}
	for i := range m.buffers {
		m.buffers[i].updateFrameIndex = -1
		m.buffers[i].numSlots = 1
	}
}

// VertexBuffer returns the GL buffer draws currently read vertices from.
func (m *Mesh) VertexBuffer() uint32 { return m.buffers[vb].active() }

// IndexBuffer returns the GL buffer draws currently read indices from.
func (m *Mesh) IndexBuffer() uint32 { return m.buffers[ib].active() }

// Texture is a texture or render target.
type Texture struct {
	Desc  core.TextureDesc
	Attrs core.TextureAttrs

	glTarget            uint32
	glDepthRenderbuffer uint32
	glMSAARenderbuffer  uint32
	updateFrameIndex    int64
	numSlots            int
	activeSlot          int
	glTextures          [core.MaxInflightFrames]uint32
	nativeHandles       bool
}

func (t *Texture) reset(desc core.TextureDesc) {
	*t = Texture{Desc: desc, updateFrameIndex: -1, numSlots: 1}
}

// GLTexture returns the GL texture object draws currently sample.
func (t *Texture) GLTexture() uint32 { return t.glTextures[t.activeSlot] }

// Shader is a linked GL program.
type Shader struct {
	Desc core.ShaderDesc

	glProgram uint32
	// uniform location of the vec4 array backing each uniform block
	uniformBlocks [core.NumShaderStages][core.MaxNumUniformBlocksPerStage]int32
	// texture unit per sampler; vertex samplers first, then fragment
	samplers [core.MaxNumVertexTextures + core.MaxNumFragmentTextures]int32
}

func (s *Shader) reset(desc core.ShaderDesc) {
	*s = Shader{Desc: desc}
	for stage := range s.uniformBlocks {
		for slot := range s.uniformBlocks[stage] {
			s.uniformBlocks[stage][slot] = -1
		}
	}
	for i := range s.samplers {
		s.samplers[i] = -1
	}
}

func samplerIndex(stage core.ShaderStage, slot int) int {
	if stage == core.StageFS {
		return core.MaxNumVertexTextures + slot
	}
	return slot
}

// Program returns the GL program object.
func (s *Shader) Program() uint32 { return s.glProgram }

// vertexAttr is the VertexAttribPointer state of one attribute location.
type vertexAttr struct {
	index      uint32
	enabled    bool
	vbIndex    int
	divisor    uint32
	stride     int32
	size       int32
	normalized bool
	offset     int
	xtype      uint32
}

// Pipeline is the resolved fixed-function state plus vertex attribute
// mapping for one shader.
type Pipeline struct {
	Desc core.PipelineDesc

	glAttrs    [core.NumVertexAttrs]vertexAttr
	glPrimType uint32
}

// RenderPass is a framebuffer object over a set of render target textures.
type RenderPass struct {
	Desc core.PassDesc

	glFramebuffer        uint32
	glResolveFramebuffer [core.MaxNumColorAttachments]uint32
}
