package d3d11

// D3D11 and DXGI enum values. They mirror d3d11.h and dxgiformat.h so a
// native Device implementation can pass them through unchanged.

type Format uint32

const (
	FormatUnknown           Format = 0
	FormatR32G32B32A32Float Format = 2
	FormatR32G32B32Float    Format = 6
	FormatR16G16B16A16Float Format = 10
	FormatR16G16B16A16SNorm Format = 13
	FormatR16G16B16A16SInt  Format = 14
	FormatR32G32Float       Format = 16
	FormatR10G10B10A2UNorm  Format = 24
	FormatR8G8B8A8UNorm     Format = 28
	FormatR8G8B8A8UInt      Format = 30
	FormatR8G8B8A8SNorm     Format = 31
	FormatR8G8B8A8SInt      Format = 32
	FormatR16G16SNorm       Format = 37
	FormatR16G16SInt        Format = 38
	FormatR32Float          Format = 41
	FormatR32UInt           Format = 42
	FormatD24UNormS8UInt    Format = 45
	FormatR16Float          Format = 54
	FormatD16UNorm          Format = 55
	FormatR16UInt           Format = 57
	FormatR8UNorm           Format = 61
	FormatBC1UNorm          Format = 71
	FormatBC2UNorm          Format = 74
	FormatBC3UNorm          Format = 77
	FormatB5G6R5UNorm       Format = 85
	FormatB5G5R5A1UNorm     Format = 86
	FormatB4G4R4A4UNorm     Format = 115
)

type ResourceUsage uint32

const (
	UsageDefault ResourceUsage = iota
	UsageImmutable
	UsageDynamic
	UsageStaging
)

type BindFlag uint32

const (
	BindVertexBuffer   BindFlag = 0x1
	BindIndexBuffer    BindFlag = 0x2
	BindConstantBuffer BindFlag = 0x4
	BindShaderResource BindFlag = 0x8
	BindRenderTarget   BindFlag = 0x20
	BindDepthStencil   BindFlag = 0x40
)

type CPUAccessFlag uint32

const CPUAccessWrite CPUAccessFlag = 0x10000

type ResourceMiscFlag uint32

const ResourceMiscTextureCube ResourceMiscFlag = 0x4

type ClearFlag uint32

const (
	ClearDepth   ClearFlag = 0x1
	ClearStencil ClearFlag = 0x2
)

type MapType uint32

const MapWriteDiscard MapType = 4

type PrimitiveTopology uint32

const (
	TopologyUndefined     PrimitiveTopology = 0
	TopologyPointList     PrimitiveTopology = 1
	TopologyLineList      PrimitiveTopology = 2
	TopologyLineStrip     PrimitiveTopology = 3
	TopologyTriangleList  PrimitiveTopology = 4
	TopologyTriangleStrip PrimitiveTopology = 5
)

type FillMode uint32

const (
	FillWireframe FillMode = 2
	FillSolid     FillMode = 3
)

type CullMode uint32

const (
	CullNone  CullMode = 1
	CullFront CullMode = 2
	CullBack  CullMode = 3
)

type ComparisonFunc uint32

const (
	ComparisonNever ComparisonFunc = iota + 1
	ComparisonLess
	ComparisonEqual
	ComparisonLessEqual
	ComparisonGreater
	ComparisonNotEqual
	ComparisonGreaterEqual
	ComparisonAlways
)

type StencilOp uint32

const (
	StencilOpKeep StencilOp = iota + 1
	StencilOpZero
	StencilOpReplace
	StencilOpIncrSat
	StencilOpDecrSat
	StencilOpInvert
	StencilOpIncr
	StencilOpDecr
)

type DepthWriteMask uint32

const (
	DepthWriteMaskZero DepthWriteMask = 0
	DepthWriteMaskAll  DepthWriteMask = 1
)

type Blend uint32

const (
	BlendZero           Blend = 1
	BlendOne            Blend = 2
	BlendSrcColor       Blend = 3
	BlendInvSrcColor    Blend = 4
	BlendSrcAlpha       Blend = 5
	BlendInvSrcAlpha    Blend = 6
	BlendDestAlpha      Blend = 7
	BlendInvDestAlpha   Blend = 8
	BlendDestColor      Blend = 9
	BlendInvDestColor   Blend = 10
	BlendSrcAlphaSat    Blend = 11
	BlendBlendFactor    Blend = 14
	BlendInvBlendFactor Blend = 15
)

type BlendOp uint32

const (
	BlendOpAdd BlendOp = iota + 1
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

type ColorWriteEnable uint8

const (
	ColorWriteRed   ColorWriteEnable = 1
	ColorWriteGreen ColorWriteEnable = 2
	ColorWriteBlue  ColorWriteEnable = 4
	ColorWriteAlpha ColorWriteEnable = 8
	ColorWriteAll   ColorWriteEnable = 15
)

type InputClassification uint32

const (
	InputPerVertexData InputClassification = iota
	InputPerInstanceData
)

type Filter uint32

const (
	FilterMinMagMipPoint             Filter = 0x00
	FilterMinMagPointMipLinear       Filter = 0x01
	FilterMinPointMagLinearMipPoint  Filter = 0x04
	FilterMinPointMagMipLinear       Filter = 0x05
	FilterMinLinearMagMipPoint       Filter = 0x10
	FilterMinLinearMagPointMipLinear Filter = 0x11
	FilterMinMagLinearMipPoint       Filter = 0x14
	FilterMinMagMipLinear            Filter = 0x15
)

type TextureAddressMode uint32

const (
	AddressWrap   TextureAddressMode = 1
	AddressMirror TextureAddressMode = 2
	AddressClamp  TextureAddressMode = 3
)

type SRVDimension uint32

const (
	SRVDimensionTexture2D      SRVDimension = 4
	SRVDimensionTexture2DArray SRVDimension = 5
	SRVDimensionTexture3D      SRVDimension = 8
	SRVDimensionTextureCube    SRVDimension = 9
)

type RTVDimension uint32

const (
	RTVDimensionTexture2D        RTVDimension = 4
	RTVDimensionTexture2DArray   RTVDimension = 5
	RTVDimensionTexture2DMS      RTVDimension = 6
	RTVDimensionTexture2DMSArray RTVDimension = 7
	RTVDimensionTexture3D        RTVDimension = 8
)

type DSVDimension uint32

const (
	DSVDimensionTexture2D   DSVDimension = 3
	DSVDimensionTexture2DMS DSVDimension = 5
)

const float32Max = 3.402823466e+38
