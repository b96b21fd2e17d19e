package core

import "github.com/hubastard/prism/engine/resource"

// Fixed capacities shared by all backends.
const (
	MaxNumColorAttachments       = 4
	MaxNumInputMeshes            = 4
	MaxNumVertexLayoutComponents = 16
	MaxVertexStride              = 248
	MaxNumPrimGroups             = 16
	MaxNumUniformBlocksPerStage  = 4
	MaxNumVertexTextures         = 4
	MaxNumFragmentTextures       = 12
	MaxNumShaderTextures         = MaxNumFragmentTextures
	MaxNumTextureFaces           = 6
	MaxNumTextureMipMaps         = 12
	MaxNumTextureArrayLayers     = 128
	MaxInflightFrames            = 2
	// NoDataOffset marks a mesh buffer without initial content.
	NoDataOffset = -1
)

// Resource types stored in resource.Id.Type.
const (
	ResourceTexture resource.Type = iota
	ResourceMesh
	ResourceShader
	ResourcePipeline
	ResourcePass
	NumResourceTypes
)

// ResourceState is what a Factory reports after initializing a resource.
type ResourceState = resource.State

const (
	ResourceSetup   = resource.StateSetup
	ResourcePending = resource.StatePending
	ResourceValid   = resource.StateValid
	ResourceFailed  = resource.StateFailed
)

// Usage describes how often a resource's content changes.
type Usage uint8

const (
	UsageImmutable Usage = iota
	UsageDynamic
	UsageStream
)

func (u Usage) String() string {
	switch u {
	case UsageImmutable:
		return "immutable"
	case UsageDynamic:
		return "dynamic"
	case UsageStream:
		return "stream"
	}
	return "invalid"
}

// IndexType selects 16- or 32-bit indices.
type IndexType uint8

const (
	IndexNone IndexType = iota
	IndexUInt16
	IndexUInt32
)

// ByteSize returns the size of one index.
func (t IndexType) ByteSize() int {
	switch t {
	case IndexUInt16:
		return 2
	case IndexUInt32:
		return 4
	}
	return 0
}

type PrimitiveType uint8

const (
	PrimPoints PrimitiveType = iota
	PrimLines
	PrimLineStrip
	PrimTriangles
	PrimTriangleStrip
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimPoints:
		return "Points"
	case PrimLines:
		return "Lines"
	case PrimLineStrip:
		return "LineStrip"
	case PrimTriangles:
		return "Triangles"
	case PrimTriangleStrip:
		return "TriangleStrip"
	}
	return "Invalid"
}

type ShaderStage uint8

const (
	StageVS ShaderStage = iota
	StageFS
	NumShaderStages
)

func (s ShaderStage) String() string {
	if s == StageVS {
		return "vs"
	}
	return "fs"
}

type TextureType uint8

const (
	Texture2D TextureType = iota
	TextureCube
	Texture3D
	TextureArray
)

type TextureFilterMode uint8

const (
	FilterNearest TextureFilterMode = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapNearest
	FilterLinearMipmapLinear
)

type TextureWrapMode uint8

const (
	WrapRepeat TextureWrapMode = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

// ShaderLang is the shading language a backend consumes.
type ShaderLang uint8

const (
	GLSL330 ShaderLang = iota
	GLSLES3
	HLSL5
	MSL
	NumShaderLangs
)

func (l ShaderLang) String() string {
	switch l {
	case GLSL330:
		return "glsl330"
	case GLSLES3:
		return "glsles3"
	case HLSL5:
		return "hlsl5"
	case MSL:
		return "metal"
	}
	return "invalid"
}

// Face selects polygon sides.
type Face uint8

const (
	FaceFront Face = 1 << iota
	FaceBack
	FaceBoth = FaceFront | FaceBack
)

type CompareFunc uint8

const (
	CmpNever CompareFunc = iota
	CmpLess
	CmpEqual
	CmpLessEqual
	CmpGreater
	CmpNotEqual
	CmpGreaterEqual
	CmpAlways
)

type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncrClamp
	StencilDecrClamp
	StencilInvert
	StencilIncrWrap
	StencilDecrWrap
)

type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusDstColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcAlphaSaturated
	BlendBlendColor
	BlendOneMinusBlendColor
	BlendBlendAlpha
	BlendOneMinusBlendAlpha
)

type BlendOperation uint8

const (
	BlendOpAdd BlendOperation = iota
	BlendOpSubtract
	BlendOpReverseSubtract
)

// VertexStepFunction classifies vertex buffer data as per-vertex or
// per-instance.
type VertexStepFunction uint8

const (
	StepPerVertex VertexStepFunction = iota
	StepPerInstance
)

// PixelChannel is a bit mask of color/depth/stencil channels.
type PixelChannel uint8

const (
	ChannelNone  PixelChannel = 0
	ChannelRed   PixelChannel = 1 << 0
	ChannelGreen PixelChannel = 1 << 1
	ChannelBlue  PixelChannel = 1 << 2
	ChannelAlpha PixelChannel = 1 << 3

	ChannelStencil PixelChannel = 1 << 4
	ChannelDepth   PixelChannel = 1 << 5

	ChannelRGB          = ChannelRed | ChannelGreen | ChannelBlue
	ChannelRGBA         = ChannelRGB | ChannelAlpha
	ChannelDepthStencil = ChannelDepth | ChannelStencil
	ChannelAll          = ChannelRGBA | ChannelDepthStencil
)

// Feature is an optional rendering capability queried at runtime.
type Feature uint8

const (
	FeatureTextureCompressionDXT Feature = iota
	FeatureTextureCompressionPVRTC
	FeatureTextureCompressionATC
	FeatureTextureCompressionETC2
	FeatureTextureFloat
	FeatureTextureHalfFloat
	FeatureInstancing
	FeatureOriginBottomLeft
	FeatureOriginTopLeft
	FeatureMSAARenderTargets
	FeaturePackedVertexFormat10_2
	FeatureNativeTexture
	FeatureMultipleRenderTarget
	FeatureTexture3D
	FeatureTextureArray
	NumFeatures
)

var featureNames = [...]string{
	"TextureCompressionDXT",
	"TextureCompressionPVRTC",
	"TextureCompressionATC",
	"TextureCompressionETC2",
	"TextureFloat",
	"TextureHalfFloat",
	"Instancing",
	"OriginBottomLeft",
	"OriginTopLeft",
	"MSAARenderTargets",
	"PackedVertexFormat_10_2",
	"NativeTexture",
	"MultipleRenderTarget",
	"Texture3D",
	"TextureArray",
}

func (f Feature) String() string {
	if int(f) < len(featureNames) {
		return featureNames[f]
	}
	return "Invalid"
}

// PrimitiveGroup is a range of elements (vertices or indices) in a mesh.
type PrimitiveGroup struct {
	BaseElement int
	NumElements int
}
