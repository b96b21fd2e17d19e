package d3d11

import (
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
)

// renderTargetFormat returns FormatUnknown for formats that cannot be
// rendered to.
func renderTargetFormat(f core.PixelFormat) Format {
	switch f {
	case core.PixelFormatRGBA8:
		return FormatR8G8B8A8UNorm
	case core.PixelFormatRGBA32F:
		return FormatR32G32B32A32Float
	case core.PixelFormatRGBA16F:
		return FormatR16G16B16A16Float
	case core.PixelFormatR10G10B10A2:
		return FormatR10G10B10A2UNorm
	case core.PixelFormatDEPTH:
		return FormatD16UNorm
	case core.PixelFormatDEPTHSTENCIL:
		return FormatD24UNormS8UInt
	}
	return FormatUnknown
}

// textureFormat returns FormatUnknown for formats without a DXGI
// equivalent, e.g. 24-bit RGB and the mobile compressed formats.
func textureFormat(f core.PixelFormat) Format {
	switch f {
	case core.PixelFormatRGBA8:
		return FormatR8G8B8A8UNorm
	case core.PixelFormatRGBA4:
		return FormatB4G4R4A4UNorm
	case core.PixelFormatR5G6B5:
		return FormatB5G6R5UNorm
	case core.PixelFormatR5G5B5A1:
		return FormatB5G5R5A1UNorm
	case core.PixelFormatRGBA32F:
		return FormatR32G32B32A32Float
	case core.PixelFormatRGBA16F:
		return FormatR16G16B16A16Float
	case core.PixelFormatR32F:
		return FormatR32Float
	case core.PixelFormatR16F:
		return FormatR16Float
	case core.PixelFormatR10G10B10A2:
		return FormatR10G10B10A2UNorm
	case core.PixelFormatL8:
		return FormatR8UNorm
	case core.PixelFormatDXT1:
		return FormatBC1UNorm
	case core.PixelFormatDXT3:
		return FormatBC2UNorm
	case core.PixelFormatDXT5:
		return FormatBC3UNorm
	case core.PixelFormatDEPTH:
		return FormatD16UNorm
	case core.PixelFormatDEPTHSTENCIL:
		return FormatD24UNormS8UInt
	}
	return FormatUnknown
}

func resourceUsage(u core.Usage) ResourceUsage {
	if u == core.UsageImmutable {
		return UsageImmutable
	}
	return UsageDynamic
}

func cpuAccess(u core.Usage) CPUAccessFlag {
	if u == core.UsageImmutable {
		return 0
	}
	return CPUAccessWrite
}

// Shaders generated for D3D11 name every vertex input TEXCOORDn with n the
// vertex attribute.
const semanticName = "TEXCOORD"

var inputElementFormatTable = [...]Format{
	core.VertexFloat:     FormatR32Float,
	core.VertexFloat2:    FormatR32G32Float,
	core.VertexFloat3:    FormatR32G32B32Float,
	core.VertexFloat4:    FormatR32G32B32A32Float,
	core.VertexByte4:     FormatR8G8B8A8SInt,
	core.VertexByte4N:    FormatR8G8B8A8SNorm,
	core.VertexUByte4:    FormatR8G8B8A8UInt,
	core.VertexUByte4N:   FormatR8G8B8A8UNorm,
	core.VertexShort2:    FormatR16G16SInt,
	core.VertexShort2N:   FormatR16G16SNorm,
	core.VertexShort4:    FormatR16G16B16A16SInt,
	core.VertexShort4N:   FormatR16G16B16A16SNorm,
	core.VertexUInt10_2N: FormatR10G10B10A2UNorm,
}

func cullMode(enabled bool, f core.Face) CullMode {
	switch {
	case !enabled:
		return CullNone
	case f == core.FaceFront:
		return CullFront
	}
	return CullBack
}

var compareFuncTable = [...]ComparisonFunc{
	core.CmpNever:        ComparisonNever,
	core.CmpLess:         ComparisonLess,
	core.CmpEqual:        ComparisonEqual,
	core.CmpLessEqual:    ComparisonLessEqual,
	core.CmpGreater:      ComparisonGreater,
	core.CmpNotEqual:     ComparisonNotEqual,
	core.CmpGreaterEqual: ComparisonGreaterEqual,
	core.CmpAlways:       ComparisonAlways,
}

var stencilOpTable = [...]StencilOp{
	core.StencilKeep:      StencilOpKeep,
	core.StencilZero:      StencilOpZero,
	core.StencilReplace:   StencilOpReplace,
	core.StencilIncrClamp: StencilOpIncrSat,
	core.StencilDecrClamp: StencilOpDecrSat,
	core.StencilInvert:    StencilOpInvert,
	core.StencilIncrWrap:  StencilOpIncr,
	core.StencilDecrWrap:  StencilOpDecr,
}

var blendFactorTable = [...]Blend{
	core.BlendZero:               BlendZero,
	core.BlendOne:                BlendOne,
	core.BlendSrcColor:           BlendSrcColor,
	core.BlendOneMinusSrcColor:   BlendInvSrcColor,
	core.BlendSrcAlpha:           BlendSrcAlpha,
	core.BlendOneMinusSrcAlpha:   BlendInvSrcAlpha,
	core.BlendDstColor:           BlendDestColor,
	core.BlendOneMinusDstColor:   BlendInvDestColor,
	core.BlendDstAlpha:           BlendDestAlpha,
	core.BlendOneMinusDstAlpha:   BlendInvDestAlpha,
	core.BlendSrcAlphaSaturated:  BlendSrcAlphaSat,
	core.BlendBlendColor:         BlendBlendFactor,
	core.BlendOneMinusBlendColor: BlendInvBlendFactor,
	core.BlendBlendAlpha:         BlendBlendFactor,
	core.BlendOneMinusBlendAlpha: BlendInvBlendFactor,
}

var blendOpTable = [...]BlendOp{
	core.BlendOpAdd:             BlendOpAdd,
	core.BlendOpSubtract:        BlendOpSubtract,
	core.BlendOpReverseSubtract: BlendOpRevSubtract,
}

func colorWriteMask(m core.PixelChannel) ColorWriteEnable {
	var res ColorWriteEnable
	if m&core.ChannelRed != 0 {
		res |= ColorWriteRed
	}
	if m&core.ChannelGreen != 0 {
		res |= ColorWriteGreen
	}
	if m&core.ChannelBlue != 0 {
		res |= ColorWriteBlue
	}
	if m&core.ChannelAlpha != 0 {
		res |= ColorWriteAlpha
	}
	return res
}

func inputClassification(f core.VertexStepFunction) InputClassification {
	if f == core.StepPerInstance {
		return InputPerInstanceData
	}
	return InputPerVertexData
}

func isLinear(m core.TextureFilterMode) bool {
	return m == core.FilterLinear || m == core.FilterLinearMipmapNearest || m == core.FilterLinearMipmapLinear
}

// samplerFilter folds the separate mag and min/mip filters into one D3D11
// filter. Mag filters with a mip component are invalid.
func samplerFilter(magFilter, minFilter core.TextureFilterMode) Filter {
	if !logger.Assert(magFilter == core.FilterNearest || magFilter == core.FilterLinear, "d3d11: invalid mag filter %d", magFilter) {
		return FilterMinMagMipPoint
	}
	var f Filter
	if magFilter == core.FilterLinear {
		f |= 0x04
	}
	if isLinear(minFilter) {
		f |= 0x10
	}
	if minFilter == core.FilterNearestMipmapLinear || minFilter == core.FilterLinearMipmapLinear {
		f |= 0x01
	}
	return f
}

func addressMode(m core.TextureWrapMode) TextureAddressMode {
	switch m {
	case core.WrapRepeat:
		return AddressWrap
	case core.WrapMirroredRepeat:
		return AddressMirror
	}
	return AddressClamp
}

func indexFormat(t core.IndexType) Format {
	switch t {
	case core.IndexUInt16:
		return FormatR16UInt
	case core.IndexUInt32:
		return FormatR32UInt
	}
	return FormatUnknown
}

func primitiveTopology(t core.PrimitiveType) PrimitiveTopology {
	switch t {
	case core.PrimPoints:
		return TopologyPointList
	case core.PrimLines:
		return TopologyLineList
	case core.PrimLineStrip:
		return TopologyLineStrip
	case core.PrimTriangleStrip:
		return TopologyTriangleStrip
	}
	return TopologyTriangleList
}
