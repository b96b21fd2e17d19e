package metal

// Metal enum values as declared in the Metal framework headers.

const (
	NumVertexAttributes = 16
	MaxVertexBuffers    = 8
	MaxColorAttachments = 4
)

type GPUFamily int

const (
	GPUFamilyApple1 GPUFamily = 1001
	GPUFamilyMac2   GPUFamily = 2002
)

type ResourceOptions uint32

const (
	ResourceStorageModeShared         ResourceOptions = 0
	ResourceCPUCacheModeWriteCombined ResourceOptions = 1
	ResourceStorageModePrivate        ResourceOptions = 2 << 4
)

type StorageMode uint32

const (
	StorageModeShared StorageMode = iota
	StorageModeManaged
	StorageModePrivate
)

type TextureUsage uint32

const (
	TextureUsageShaderRead   TextureUsage = 0x1
	TextureUsageRenderTarget TextureUsage = 0x4
)

type TextureType uint32

const (
	TextureType2D            TextureType = 2
	TextureType2DArray       TextureType = 3
	TextureType2DMultisample TextureType = 4
	TextureTypeCube          TextureType = 5
	TextureType3D            TextureType = 7
)

type PixelFormat uint32

const (
	PixelFormatInvalid              PixelFormat = 0
	PixelFormatR8Unorm              PixelFormat = 10
	PixelFormatR16Float             PixelFormat = 25
	PixelFormatB5G6R5Unorm          PixelFormat = 40
	PixelFormatA1BGR5Unorm          PixelFormat = 41
	PixelFormatABGR4Unorm           PixelFormat = 42
	PixelFormatR32Float             PixelFormat = 55
	PixelFormatRGBA8Unorm           PixelFormat = 70
	PixelFormatBGRA8Unorm           PixelFormat = 80
	PixelFormatRGB10A2Unorm         PixelFormat = 90
	PixelFormatRGBA16Float          PixelFormat = 115
	PixelFormatRGBA32Float          PixelFormat = 125
	PixelFormatBC1RGBA              PixelFormat = 130
	PixelFormatBC2RGBA              PixelFormat = 132
	PixelFormatBC3RGBA              PixelFormat = 134
	PixelFormatPVRTCRGB2BPP         PixelFormat = 160
	PixelFormatPVRTCRGB4BPP         PixelFormat = 162
	PixelFormatPVRTCRGBA2BPP        PixelFormat = 164
	PixelFormatPVRTCRGBA4BPP        PixelFormat = 166
	PixelFormatETC2RGB8             PixelFormat = 180
	PixelFormatETC2RGB8sRGB         PixelFormat = 181
	PixelFormatDepth32Float         PixelFormat = 252
	PixelFormatDepth32FloatStencil8 PixelFormat = 260
)

type VertexFormat uint32

const (
	VertexFormatInvalid               VertexFormat = 0
	VertexFormatUChar4                VertexFormat = 3
	VertexFormatChar4                 VertexFormat = 6
	VertexFormatUChar4Normalized      VertexFormat = 9
	VertexFormatChar4Normalized       VertexFormat = 12
	VertexFormatShort2                VertexFormat = 16
	VertexFormatShort4                VertexFormat = 18
	VertexFormatShort2Normalized      VertexFormat = 22
	VertexFormatShort4Normalized      VertexFormat = 24
	VertexFormatFloat                 VertexFormat = 28
	VertexFormatFloat2                VertexFormat = 29
	VertexFormatFloat3                VertexFormat = 30
	VertexFormatFloat4                VertexFormat = 31
	VertexFormatUInt1010102Normalized VertexFormat = 41
)

type VertexStepFunction uint32

const (
	VertexStepFunctionConstant VertexStepFunction = iota
	VertexStepFunctionPerVertex
	VertexStepFunctionPerInstance
)

type PrimitiveType uint32

const (
	PrimitiveTypePoint PrimitiveType = iota
	PrimitiveTypeLine
	PrimitiveTypeLineStrip
	PrimitiveTypeTriangle
	PrimitiveTypeTriangleStrip
)

type IndexType uint32

const (
	IndexTypeUInt16 IndexType = iota
	IndexTypeUInt32
)

type CullMode uint32

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

type Winding uint32

const (
	WindingClockwise Winding = iota
	WindingCounterClockwise
)

type CompareFunction uint32

const (
	CompareFunctionNever CompareFunction = iota
	CompareFunctionLess
	CompareFunctionEqual
	CompareFunctionLessEqual
	CompareFunctionGreater
	CompareFunctionNotEqual
	CompareFunctionGreaterEqual
	CompareFunctionAlways
)

type StencilOperation uint32

const (
	StencilOperationKeep StencilOperation = iota
	StencilOperationZero
	StencilOperationReplace
	StencilOperationIncrementClamp
	StencilOperationDecrementClamp
	StencilOperationInvert
	StencilOperationIncrementWrap
	StencilOperationDecrementWrap
)

type BlendFactor uint32

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSourceColor
	BlendFactorOneMinusSourceColor
	BlendFactorSourceAlpha
	BlendFactorOneMinusSourceAlpha
	BlendFactorDestinationColor
	BlendFactorOneMinusDestinationColor
	BlendFactorDestinationAlpha
	BlendFactorOneMinusDestinationAlpha
	BlendFactorSourceAlphaSaturated
	BlendFactorBlendColor
	BlendFactorOneMinusBlendColor
	BlendFactorBlendAlpha
	BlendFactorOneMinusBlendAlpha
)

type BlendOperation uint32

const (
	BlendOperationAdd BlendOperation = iota
	BlendOperationSubtract
	BlendOperationReverseSubtract
	BlendOperationMin
	BlendOperationMax
)

type ColorWriteMask uint32

const (
	ColorWriteMaskNone  ColorWriteMask = 0
	ColorWriteMaskAlpha ColorWriteMask = 1
	ColorWriteMaskBlue  ColorWriteMask = 2
	ColorWriteMaskGreen ColorWriteMask = 4
	ColorWriteMaskRed   ColorWriteMask = 8
	ColorWriteMaskAll   ColorWriteMask = 15
)

type LoadAction uint32

const (
	LoadActionDontCare LoadAction = iota
	LoadActionLoad
	LoadActionClear
)

type StoreAction uint32

const (
	StoreActionDontCare StoreAction = iota
	StoreActionStore
	StoreActionMultisampleResolve
)

type SamplerMinMagFilter uint32

const (
	SamplerMinMagFilterNearest SamplerMinMagFilter = iota
	SamplerMinMagFilterLinear
)

type SamplerMipFilter uint32

const (
	SamplerMipFilterNotMipmapped SamplerMipFilter = iota
	SamplerMipFilterNearest
	SamplerMipFilterLinear
)

type SamplerAddressMode uint32

const (
	SamplerAddressModeClampToEdge SamplerAddressMode = iota
	SamplerAddressModeMirrorClampToEdge
	SamplerAddressModeRepeat
	SamplerAddressModeMirrorRepeat
)
