package core

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/prism/engine/resource"
)

// MeshDesc describes a vertex buffer with an optional index buffer. Initial
// content comes from one combined blob passed at creation; the offsets
// locate each buffer within it.
type MeshDesc struct {
	Locator string

	// FullScreenQuad ignores the layout and data and builds a quad covering
	// clip space; FlipV swaps the V texture coordinate.
	FullScreenQuad bool
	FlipV          bool

	VertexUsage      Usage
	IndexUsage       Usage
	Layout           VertexLayout
	NumVertices      int
	NumIndices       int
	IndexType        IndexType
	PrimGroups       []PrimitiveGroup
	VertexDataOffset int
	IndexDataOffset  int
}

// NewMeshDesc describes an immutable mesh whose vertices start the data blob,
// immediately followed by the indices.
func NewMeshDesc(layout VertexLayout, numVertices int, indexType IndexType, numIndices int, groups ...PrimitiveGroup) MeshDesc {
	d := MeshDesc{
		Layout:           layout,
		NumVertices:      numVertices,
		NumIndices:       numIndices,
		IndexType:        indexType,
		PrimGroups:       groups,
		VertexDataOffset: 0,
		IndexDataOffset:  NoDataOffset,
	}
	if indexType != IndexNone {
		d.IndexDataOffset = numVertices * layout.ByteSize()
	}
	return d
}

// NewDynamicMeshDesc describes a mesh without initial content that is
// filled through UpdateVertices/UpdateIndices.
func NewDynamicMeshDesc(usage Usage, layout VertexLayout, numVertices int, indexType IndexType, numIndices int, groups ...PrimitiveGroup) MeshDesc {
	d := NewMeshDesc(layout, numVertices, indexType, numIndices, groups...)
	d.VertexUsage, d.IndexUsage = usage, usage
	d.VertexDataOffset, d.IndexDataOffset = NoDataOffset, NoDataOffset
	return d
}

// NewFullScreenQuadDesc requests the built-in full-screen quad.
func NewFullScreenQuadDesc(flipV bool) MeshDesc {
	return MeshDesc{
		FullScreenQuad:   true,
		FlipV:            flipV,
		VertexDataOffset: NoDataOffset,
		IndexDataOffset:  NoDataOffset,
	}
}

// ImageDataAttrs locates every face/mip surface inside a texture data blob.
type ImageDataAttrs struct {
	NumFaces   int
	NumMipMaps int
	Offsets    [MaxNumTextureFaces][MaxNumTextureMipMaps]int
	Sizes      [MaxNumTextureFaces][MaxNumTextureMipMaps]int
}

// TextureDesc describes a texture or render target.
type TextureDesc struct {
	Locator      string
	Type         TextureType
	RenderTarget bool
	Width        int
	Height       int
	// Depth is the depth of 3D textures and the layer count of array
	// textures.
	Depth       int
	NumMipMaps  int
	Usage       Usage
	ColorFormat PixelFormat
	// DepthFormat adds a depth buffer to render targets.
	DepthFormat PixelFormat
	SampleCount int
	Sampler     SamplerState
	// NativeTextures injects existing native texture objects instead of
	// creating new ones.
	NativeTextures [MaxInflightFrames]uintptr
	ImageData      ImageDataAttrs
}

func defaultTextureDesc() TextureDesc {
	return TextureDesc{
		Type:        Texture2D,
		Width:       1,
		Height:      1,
		Depth:       1,
		NumMipMaps:  1,
		ColorFormat: PixelFormatRGBA8,
		DepthFormat: PixelFormatNone,
		SampleCount: 1,
		Sampler: SamplerState{
			MinFilter: FilterNearest,
			MagFilter: FilterNearest,
			WrapU:     WrapRepeat,
			WrapV:     WrapRepeat,
			WrapW:     WrapRepeat,
		},
	}
}

// NewTexture2DDesc describes an empty 2D texture, typically dynamic.
func NewTexture2DDesc(w, h, numMips int, format PixelFormat, usage Usage) TextureDesc {
	d := defaultTextureDesc()
	d.Width, d.Height, d.NumMipMaps = w, h, numMips
	d.ColorFormat = format
	d.Usage = usage
	return d
}

// NewRenderTargetDesc describes an offscreen render target. depthFormat may
// be PixelFormatNone.
func NewRenderTargetDesc(w, h int, colorFormat, depthFormat PixelFormat, sampleCount int) TextureDesc {
	d := defaultTextureDesc()
	d.RenderTarget = true
	d.Width, d.Height = w, h
	d.ColorFormat = colorFormat
	d.DepthFormat = depthFormat
	d.SampleCount = max(sampleCount, 1)
	d.Sampler.WrapU = WrapClampToEdge
	d.Sampler.WrapV = WrapClampToEdge
	d.Sampler.WrapW = WrapClampToEdge
	return d
}

// NewTextureFromPixelData2D describes an immutable 2D texture whose mip
// chain is packed tightly, largest first, in the data blob.
func NewTextureFromPixelData2D(w, h, numMips int, format PixelFormat) TextureDesc {
	d := NewTexture2DDesc(w, h, numMips, format, UsageImmutable)
	d.ImageData = PackedImageData(format, w, h, 1, numMips)
	return d
}

// PackedImageData computes offsets and sizes for numFaces faces of numMips
// mips each, packed face by face.
func PackedImageData(format PixelFormat, w, h, numFaces, numMips int) ImageDataAttrs {
	a := ImageDataAttrs{NumFaces: numFaces, NumMipMaps: numMips}
	off := 0
	for f := 0; f < numFaces; f++ {
		for m := 0; m < numMips; m++ {
			size := ImagePitch(format, max(w>>m, 1), max(h>>m, 1))
			a.Offsets[f][m] = off
			a.Sizes[f][m] = size
			off += size
		}
	}
	return a
}

// ShaderProgram holds one language's sources or byte code.
type ShaderProgram struct {
	VSSource   string
	FSSource   string
	VSByteCode []byte
	FSByteCode []byte
	VSEntry    string
	FSEntry    string
}

func (p ShaderProgram) Empty() bool {
	return p.VSSource == "" && p.FSSource == "" && len(p.VSByteCode) == 0 && len(p.FSByteCode) == 0
}

// UniformBlockDesc declares a uniform block bound to a stage slot.
type UniformBlockDesc struct {
	Name   string
	Stage  ShaderStage
	Slot   int
	Layout UniformBlockLayout
}

// TextureBindDesc declares a sampler bound to a stage slot.
type TextureBindDesc struct {
	Name  string
	Stage ShaderStage
	Slot  int
	Type  TextureType
}

// ShaderDesc describes a vertex/fragment shader pair and its reflection
// metadata.
type ShaderDesc struct {
	Locator       string
	Programs      [NumShaderLangs]ShaderProgram
	Inputs        VertexLayout
	UniformBlocks []UniformBlockDesc
	Textures      []TextureBindDesc
}

// SetSource sets the vertex and fragment source for lang.
func (d *ShaderDesc) SetSource(lang ShaderLang, vs, fs string) {
	d.Programs[lang].VSSource = vs
	d.Programs[lang].FSSource = fs
}

// SetByteCode sets precompiled vertex and fragment code for lang.
func (d *ShaderDesc) SetByteCode(lang ShaderLang, vs, fs []byte) {
	d.Programs[lang].VSByteCode = vs
	d.Programs[lang].FSByteCode = fs
}

// AddUniformBlock declares a uniform block at stage/slot.
func (d *ShaderDesc) AddUniformBlock(name string, stage ShaderStage, slot int, layout UniformBlockLayout) {
	d.UniformBlocks = append(d.UniformBlocks, UniformBlockDesc{Name: name, Stage: stage, Slot: slot, Layout: layout})
}

// AddTexture declares a texture sampler at stage/slot.
func (d *ShaderDesc) AddTexture(name string, stage ShaderStage, slot int, t TextureType) {
	d.Textures = append(d.Textures, TextureBindDesc{Name: name, Stage: stage, Slot: slot, Type: t})
}

// UniformBlockIndexByStageAndSlot returns the index into UniformBlocks, or -1.
func (d *ShaderDesc) UniformBlockIndexByStageAndSlot(stage ShaderStage, slot int) int {
	for i, ub := range d.UniformBlocks {
		if ub.Stage == stage && ub.Slot == slot {
			return i
		}
	}
	return -1
}

// TextureIndexByStageAndSlot returns the index into Textures, or -1.
func (d *ShaderDesc) TextureIndexByStageAndSlot(stage ShaderStage, slot int) int {
	for i, t := range d.Textures {
		if t.Stage == stage && t.Slot == slot {
			return i
		}
	}
	return -1
}

// NumTextures returns the number of textures declared for stage.
func (d *ShaderDesc) NumTextures(stage ShaderStage) int {
	n := 0
	for _, t := range d.Textures {
		if t.Stage == stage {
			n++
		}
	}
	return n
}

// PipelineDesc describes the complete fixed-function state plus the shader
// and vertex layouts needed to issue a draw.
type PipelineDesc struct {
	Locator           string
	Shader            resource.Id
	Layouts           [MaxNumInputMeshes]VertexLayout
	PrimType          PrimitiveType
	DepthStencilState DepthStencilState
	BlendState        BlendState
	BlendColor        mgl32.Vec4
	RasterizerState   RasterizerState
}

// NewPipelineDesc returns a triangle-list pipeline with default state for
// shader.
func NewPipelineDesc(shader resource.Id, layouts ...VertexLayout) PipelineDesc {
	d := PipelineDesc{
		Shader:            shader,
		PrimType:          PrimTriangles,
		DepthStencilState: DefaultDepthStencilState(),
		BlendState:        DefaultBlendState(),
		BlendColor:        mgl32.Vec4{1, 1, 1, 1},
		RasterizerState:   DefaultRasterizerState(),
	}
	copy(d.Layouts[:], layouts)
	return d
}

// AttachmentDesc selects the surface of a texture a pass renders into.
type AttachmentDesc struct {
	Texture  resource.Id
	MipLevel int
	// Slice is the cube face, array layer or 3D depth slice.
	Slice int
}

// PassDesc describes the attachments of an offscreen render pass.
type PassDesc struct {
	Locator             string
	ColorAttachments    [MaxNumColorAttachments]AttachmentDesc
	DepthStencilTexture resource.Id
}

// NewPassDesc renders into colorTex and an optional depthTex (which may be
// resource.InvalidId, or the color texture itself when it carries a depth
// buffer).
func NewPassDesc(colorTex, depthTex resource.Id) PassDesc {
	d := PassDesc{DepthStencilTexture: depthTex}
	for i := range d.ColorAttachments {
		d.ColorAttachments[i].Texture = resource.InvalidId
	}
	d.ColorAttachments[0].Texture = colorTex
	return d
}

// NumColorAttachments counts the leading valid color attachments.
func (d PassDesc) NumColorAttachments() int {
	n := 0
	for n < MaxNumColorAttachments && d.ColorAttachments[n].Texture.IsValid() {
		n++
	}
	return n
}
