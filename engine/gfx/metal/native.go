package metal

// Object is a native Metal object, an Objective-C id on Apple platforms.
// Zero is nil.
type Object uintptr

type (
	Buffer              Object
	TextureObject       Object
	SamplerState        Object
	Library             Object
	Function            Object
	RenderPipelineState Object
	DepthStencilState   Object
)

// Device creates Metal objects. Objects are returned retained; Release
// balances that.
type Device interface {
	SupportsFamily(f GPUFamily) bool
	NewBuffer(data []byte, length int, opts ResourceOptions) (Buffer, error)
	// Contents is the CPU-visible memory of a shared buffer.
	Contents(buf Buffer) []byte
	NewTexture(desc *TextureDescriptor) (TextureObject, error)
	// ReplaceRegion uploads one mip of one slice (cube face or array layer).
	ReplaceRegion(tex TextureObject, region Region, mip, slice int, data []byte, bytesPerRow, bytesPerImage int)
	NewSamplerState(desc *SamplerDescriptor) (SamplerState, error)
	NewLibraryWithSource(src string) (Library, error)
	NewLibraryWithData(data []byte) (Library, error)
	NewFunction(lib Library, name string) (Function, error)
	NewRenderPipelineState(desc *RenderPipelineDescriptor) (RenderPipelineState, error)
	NewDepthStencilState(desc *DepthStencilDescriptor) (DepthStencilState, error)
	Release(obj Object)
}

// CommandBuffer is the command buffer of one frame.
type CommandBuffer interface {
	RenderCommandEncoder(desc *RenderPassDescriptor) RenderCommandEncoder
}

// RenderCommandEncoder records the commands of one render pass. State set
// on an encoder does not carry over to the next one.
type RenderCommandEncoder interface {
	SetViewport(vp Viewport)
	SetScissorRect(r ScissorRect)
	SetRenderPipelineState(s RenderPipelineState)
	SetDepthStencilState(s DepthStencilState)
	SetStencilReferenceValue(ref uint32)
	SetBlendColor(r, g, b, a float32)
	SetCullMode(m CullMode)
	SetFrontFacingWinding(w Winding)
	SetDepthBias(bias, slopeScale, clamp float32)

	SetVertexBuffer(buf Buffer, offset, index int)
	SetFragmentBuffer(buf Buffer, offset, index int)
	SetVertexTexture(tex TextureObject, index int)
	SetFragmentTexture(tex TextureObject, index int)
	SetVertexSamplerState(s SamplerState, index int)
	SetFragmentSamplerState(s SamplerState, index int)

	DrawPrimitives(prim PrimitiveType, start, count, instances int)
	DrawIndexedPrimitives(prim PrimitiveType, count int, indexType IndexType, indexBuffer Buffer, indexOffset, instances int)
	EndEncoding()
}

type Region struct {
	X, Y, Z       int
	Width, Height int
	Depth         int
}

type TextureDescriptor struct {
	TextureType      TextureType
	PixelFormat      PixelFormat
	Width            int
	Height           int
	Depth            int
	MipmapLevelCount int
	SampleCount      int
	ArrayLength      int
	StorageMode      StorageMode
	Usage            TextureUsage
}

type SamplerDescriptor struct {
	MinFilter    SamplerMinMagFilter
	MagFilter    SamplerMinMagFilter
	MipFilter    SamplerMipFilter
	SAddressMode SamplerAddressMode
	TAddressMode SamplerAddressMode
	RAddressMode SamplerAddressMode
}

type VertexAttributeDescriptor struct {
	Format      VertexFormat
	Offset      int
	BufferIndex int
}

type VertexBufferLayoutDescriptor struct {
	Stride       int
	StepFunction VertexStepFunction
	StepRate     int
}

// VertexDescriptor maps vertex attributes (by attribute index) to buffer
// layouts (by buffer index).
type VertexDescriptor struct {
	Attributes [NumVertexAttributes]VertexAttributeDescriptor
	Layouts    [MaxVertexBuffers]VertexBufferLayoutDescriptor
}

type RenderPipelineColorAttachmentDescriptor struct {
	PixelFormat                 PixelFormat
	WriteMask                   ColorWriteMask
	BlendingEnabled             bool
	SourceRGBBlendFactor        BlendFactor
	DestinationRGBBlendFactor   BlendFactor
	RGBBlendOperation           BlendOperation
	SourceAlphaBlendFactor      BlendFactor
	DestinationAlphaBlendFactor BlendFactor
	AlphaBlendOperation         BlendOperation
}

type RenderPipelineDescriptor struct {
	VertexFunction               Function
	FragmentFunction             Function
	VertexDescriptor             VertexDescriptor
	ColorAttachments             [MaxColorAttachments]RenderPipelineColorAttachmentDescriptor
	DepthAttachmentPixelFormat   PixelFormat
	StencilAttachmentPixelFormat PixelFormat
	SampleCount                  int
	AlphaToCoverageEnabled       bool
}

type StencilDescriptor struct {
	StencilFailureOperation   StencilOperation
	DepthFailureOperation     StencilOperation
	DepthStencilPassOperation StencilOperation
	StencilCompareFunction    CompareFunction
	ReadMask                  uint32
	WriteMask                 uint32
}

type DepthStencilDescriptor struct {
	DepthCompareFunction CompareFunction
	DepthWriteEnabled    bool
	// StencilEnabled selects whether the face descriptors are set at all.
	StencilEnabled   bool
	FrontFaceStencil StencilDescriptor
	BackFaceStencil  StencilDescriptor
}

type RenderPassColorAttachment struct {
	Texture           TextureObject
	Level             int
	Slice             int
	DepthPlane        int
	LoadAction        LoadAction
	StoreAction       StoreAction
	ClearColor        [4]float64
	ResolveTexture    TextureObject
	ResolveLevel      int
	ResolveSlice      int
	ResolveDepthPlane int
}

type RenderPassDepthAttachment struct {
	Texture     TextureObject
	LoadAction  LoadAction
	StoreAction StoreAction
	ClearDepth  float64
}

type RenderPassStencilAttachment struct {
	Texture      TextureObject
	LoadAction   LoadAction
	StoreAction  StoreAction
	ClearStencil uint32
}

type RenderPassDescriptor struct {
	ColorAttachments  [MaxColorAttachments]RenderPassColorAttachment
	DepthAttachment   RenderPassDepthAttachment
	StencilAttachment RenderPassStencilAttachment
}

type Viewport struct {
	OriginX, OriginY float64
	Width, Height    float64
	ZNear, ZFar      float64
}

type ScissorRect struct {
	X, Y          int
	Width, Height int
}
