package metal

import "github.com/hubastard/prism/engine/core"

// pixelFormat returns PixelFormatInvalid for formats the device cannot
// sample. The 16-bit and mobile compressed formats need an Apple GPU, the
// BC formats a Mac GPU.
func pixelFormat(dev Device, f core.PixelFormat) PixelFormat {
	switch f {
	case core.PixelFormatRGBA8:
		return PixelFormatRGBA8Unorm
	case core.PixelFormatRGBA32F:
		return PixelFormatRGBA32Float
	case core.PixelFormatRGBA16F:
		return PixelFormatRGBA16Float
	case core.PixelFormatR32F:
		return PixelFormatR32Float
	case core.PixelFormatR16F:
		return PixelFormatR16Float
	case core.PixelFormatR10G10B10A2:
		return PixelFormatRGB10A2Unorm
	case core.PixelFormatL8:
		return PixelFormatR8Unorm
	case core.PixelFormatDEPTH:
		return PixelFormatDepth32Float
	case core.PixelFormatDEPTHSTENCIL:
		return PixelFormatDepth32FloatStencil8
	}
	if dev.SupportsFamily(GPUFamilyApple1) {
		switch f {
		case core.PixelFormatRGBA4:
			return PixelFormatABGR4Unorm
		case core.PixelFormatR5G6B5:
			return PixelFormatB5G6R5Unorm
		case core.PixelFormatR5G5B5A1:
			return PixelFormatA1BGR5Unorm
		case core.PixelFormatPVRTC2_RGB:
			return PixelFormatPVRTCRGB2BPP
		case core.PixelFormatPVRTC4_RGB:
			return PixelFormatPVRTCRGB4BPP
		case core.PixelFormatPVRTC2_RGBA:
			return PixelFormatPVRTCRGBA2BPP
		case core.PixelFormatPVRTC4_RGBA:
			return PixelFormatPVRTCRGBA4BPP
		case core.PixelFormatETC2_RGB8:
			return PixelFormatETC2RGB8
		case core.PixelFormatETC2_SRGB8:
			return PixelFormatETC2RGB8sRGB
		}
	}
	if dev.SupportsFamily(GPUFamilyMac2) {
		switch f {
		case core.PixelFormatDXT1:
			return PixelFormatBC1RGBA
		case core.PixelFormatDXT3:
			return PixelFormatBC2RGBA
		case core.PixelFormatDXT5:
			return PixelFormatBC3RGBA
		}
	}
	return PixelFormatInvalid
}

func textureType(t core.TextureType) TextureType {
	switch t {
	case core.TextureCube:
		return TextureTypeCube
	case core.Texture3D:
		return TextureType3D
	case core.TextureArray:
		return TextureType2DArray
	}
	return TextureType2D
}

func resourceOptions(u core.Usage) ResourceOptions {
	if u == core.UsageImmutable {
		return ResourceStorageModeShared
	}
	return ResourceCPUCacheModeWriteCombined
}

// numSlots is the number of native objects behind a buffer or texture of
// the given usage.
func numSlots(u core.Usage) int {
	if u == core.UsageImmutable {
		return 1
	}
	return core.MaxInflightFrames
}

var vertexFormatTable = [...]VertexFormat{
	core.VertexFloat:     VertexFormatFloat,
	core.VertexFloat2:    VertexFormatFloat2,
	core.VertexFloat3:    VertexFormatFloat3,
	core.VertexFloat4:    VertexFormatFloat4,
	core.VertexByte4:     VertexFormatChar4,
	core.VertexByte4N:    VertexFormatChar4Normalized,
	core.VertexUByte4:    VertexFormatUChar4,
	core.VertexUByte4N:   VertexFormatUChar4Normalized,
	core.VertexShort2:    VertexFormatShort2,
	core.VertexShort2N:   VertexFormatShort2Normalized,
	core.VertexShort4:    VertexFormatShort4,
	core.VertexShort4N:   VertexFormatShort4Normalized,
	core.VertexUInt10_2N: VertexFormatUInt1010102Normalized,
}

func stepFunction(f core.VertexStepFunction) VertexStepFunction {
	if f == core.StepPerInstance {
		return VertexStepFunctionPerInstance
	}
	return VertexStepFunctionPerVertex
}

func cullMode(enabled bool, f core.Face) CullMode {
	switch {
	case !enabled:
		return CullModeNone
	case f == core.FaceFront:
		return CullModeFront
	}
	return CullModeBack
}

var compareFuncTable = [...]CompareFunction{
	core.CmpNever:        CompareFunctionNever,
	core.CmpLess:         CompareFunctionLess,
	core.CmpEqual:        CompareFunctionEqual,
	core.CmpLessEqual:    CompareFunctionLessEqual,
	core.CmpGreater:      CompareFunctionGreater,
	core.CmpNotEqual:     CompareFunctionNotEqual,
	core.CmpGreaterEqual: CompareFunctionGreaterEqual,
	core.CmpAlways:       CompareFunctionAlways,
}

var stencilOpTable = [...]StencilOperation{
	core.StencilKeep:      StencilOperationKeep,
	core.StencilZero:      StencilOperationZero,
	core.StencilReplace:   StencilOperationReplace,
	core.StencilIncrClamp: StencilOperationIncrementClamp,
	core.StencilDecrClamp: StencilOperationDecrementClamp,
	core.StencilInvert:    StencilOperationInvert,
	core.StencilIncrWrap:  StencilOperationIncrementWrap,
	core.StencilDecrWrap:  StencilOperationDecrementWrap,
}

var blendFactorTable = [...]BlendFactor{
	core.BlendZero:               BlendFactorZero,
	core.BlendOne:                BlendFactorOne,
	core.BlendSrcColor:           BlendFactorSourceColor,
	core.BlendOneMinusSrcColor:   BlendFactorOneMinusSourceColor,
	core.BlendSrcAlpha:           BlendFactorSourceAlpha,
	core.BlendOneMinusSrcAlpha:   BlendFactorOneMinusSourceAlpha,
	core.BlendDstColor:           BlendFactorDestinationColor,
	core.BlendOneMinusDstColor:   BlendFactorOneMinusDestinationColor,
	core.BlendDstAlpha:           BlendFactorDestinationAlpha,
	core.BlendOneMinusDstAlpha:   BlendFactorOneMinusDestinationAlpha,
	core.BlendSrcAlphaSaturated:  BlendFactorSourceAlphaSaturated,
	core.BlendBlendColor:         BlendFactorBlendColor,
	core.BlendOneMinusBlendColor: BlendFactorOneMinusBlendColor,
	core.BlendBlendAlpha:         BlendFactorBlendAlpha,
	core.BlendOneMinusBlendAlpha: BlendFactorOneMinusBlendAlpha,
}

var blendOpTable = [...]BlendOperation{
	core.BlendOpAdd:             BlendOperationAdd,
	core.BlendOpSubtract:        BlendOperationSubtract,
	core.BlendOpReverseSubtract: BlendOperationReverseSubtract,
}

func colorWriteMask(m core.PixelChannel) ColorWriteMask {
	var res ColorWriteMask
	if m&core.ChannelRed != 0 {
		res |= ColorWriteMaskRed
	}
	if m&core.ChannelGreen != 0 {
		res |= ColorWriteMaskGreen
	}
	if m&core.ChannelBlue != 0 {
		res |= ColorWriteMaskBlue
	}
	if m&core.ChannelAlpha != 0 {
		res |= ColorWriteMaskAlpha
	}
	return res
}

func minMagFilter(m core.TextureFilterMode) SamplerMinMagFilter {
	switch m {
	case core.FilterLinear, core.FilterLinearMipmapNearest, core.FilterLinearMipmapLinear:
		return SamplerMinMagFilterLinear
	}
	return SamplerMinMagFilterNearest
}

func mipFilter(m core.TextureFilterMode) SamplerMipFilter {
	switch m {
	case core.FilterNearestMipmapNearest, core.FilterLinearMipmapNearest:
		return SamplerMipFilterNearest
	case core.FilterNearestMipmapLinear, core.FilterLinearMipmapLinear:
		return SamplerMipFilterLinear
	}
	return SamplerMipFilterNotMipmapped
}

func addressMode(m core.TextureWrapMode) SamplerAddressMode {
	switch m {
	case core.WrapRepeat:
		return SamplerAddressModeRepeat
	case core.WrapMirroredRepeat:
		return SamplerAddressModeMirrorRepeat
	}
	return SamplerAddressModeClampToEdge
}

func indexType(t core.IndexType) IndexType {
	if t == core.IndexUInt32 {
		return IndexTypeUInt32
	}
	return IndexTypeUInt16
}

func primitiveType(t core.PrimitiveType) PrimitiveType {
	switch t {
	case core.PrimPoints:
		return PrimitiveTypePoint
	case core.PrimLines:
		return PrimitiveTypeLine
	case core.PrimLineStrip:
		return PrimitiveTypeLineStrip
	case core.PrimTriangleStrip:
		return PrimitiveTypeTriangleStrip
	}
	return PrimitiveTypeTriangle
}
