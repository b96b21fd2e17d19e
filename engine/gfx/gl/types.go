package glbackend

import (
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
)

func texImageFormat(f core.PixelFormat) uint32 {
	switch f {
	case core.PixelFormatRGBA8, core.PixelFormatR5G5B5A1, core.PixelFormatRGBA4,
		core.PixelFormatRGBA32F, core.PixelFormatRGBA16F, core.PixelFormatR10G10B10A2:
		return glRGBA
	case core.PixelFormatRGB8, core.PixelFormatR5G6B5:
		return glRGB
	case core.PixelFormatL8, core.PixelFormatR32F, core.PixelFormatR16F:
		return glRed
	case core.PixelFormatDEPTH:
		return glDepthComponent
	case core.PixelFormatDEPTHSTENCIL:
		return glDepthStencil
	}
	return compressedFormat(f)
}

func compressedFormat(f core.PixelFormat) uint32 {
	switch f {
	case core.PixelFormatDXT1:
		return glCompressedRGBAS3TCDXT1
	case core.PixelFormatDXT3:
		return glCompressedRGBAS3TCDXT3
	case core.PixelFormatDXT5:
		return glCompressedRGBAS3TCDXT5
	case core.PixelFormatPVRTC2_RGB:
		return glCompressedRGBPVRTC2
	case core.PixelFormatPVRTC4_RGB:
		return glCompressedRGBPVRTC4
	case core.PixelFormatPVRTC2_RGBA:
		return glCompressedRGBAPVRTC2
	case core.PixelFormatPVRTC4_RGBA:
		return glCompressedRGBAPVRTC4
	case core.PixelFormatETC2_RGB8:
		return glCompressedRGB8ETC2
	case core.PixelFormatETC2_SRGB8:
		return glCompressedSRGB8ETC2
	}
	logger.Assert(false, "gl: invalid pixel format %s", f)
	return 0
}

func texImageInternalFormat(f core.PixelFormat) uint32 {
	switch f {
	case core.PixelFormatRGBA8:
		return glRGBA8
	case core.PixelFormatR5G5B5A1:
		return glRGB5A1
	case core.PixelFormatRGBA4:
		return glRGBA4
	case core.PixelFormatR10G10B10A2:
		return glRGB10A2
	case core.PixelFormatRGBA32F:
		return glRGBA32F
	case core.PixelFormatRGBA16F:
		return glRGBA16F
	case core.PixelFormatR32F:
		return glR32F
	case core.PixelFormatR16F:
		return glR16F
	case core.PixelFormatRGB8:
		return glRGB8
	case core.PixelFormatL8:
		return glR8
	case core.PixelFormatDEPTH:
		return glDepthComponent16
	case core.PixelFormatDEPTHSTENCIL:
		return glDepth24Stencil8
	case core.PixelFormatR5G6B5:
		return glRGB5
	}
	return compressedFormat(f)
}

func texImageType(f core.PixelFormat) uint32 {
	switch f {
	case core.PixelFormatRGBA32F, core.PixelFormatR32F:
		return glFloat
	case core.PixelFormatRGBA16F, core.PixelFormatR16F:
		return glHalfFloat
	case core.PixelFormatRGBA8, core.PixelFormatRGB8, core.PixelFormatL8:
		return glUnsignedByte
	case core.PixelFormatR10G10B10A2:
		return glUnsignedInt2101010Rev
	case core.PixelFormatR5G5B5A1:
		return glUnsignedShort5551
	case core.PixelFormatR5G6B5:
		return glUnsignedShort565
	case core.PixelFormatRGBA4:
		return glUnsignedShort4444
	case core.PixelFormatDEPTH:
		return glUnsignedShort
	case core.PixelFormatDEPTHSTENCIL:
		return glUnsignedInt248
	}
	logger.Assert(false, "gl: no pixel type for %s", f)
	return 0
}

func depthAttachmentFormat(f core.PixelFormat) uint32 {
	if f == core.PixelFormatDEPTH {
		return glDepthComponent16
	}
	return glDepth24Stencil8
}

func indexType(t core.IndexType) uint32 {
	if t == core.IndexUInt32 {
		return glUnsignedInt
	}
	return glUnsignedShort
}

func primitiveType(t core.PrimitiveType) uint32 {
	switch t {
	case core.PrimPoints:
		return glPoints
	case core.PrimLines:
		return glLines
	case core.PrimLineStrip:
		return glLineStrip
	case core.PrimTriangleStrip:
		return glTriangleStrip
	}
	return glTriangles
}

func shaderStage(s core.ShaderStage) uint32 {
	if s == core.StageFS {
		return glFragmentShader
	}
	return glVertexShader
}

func filterMode(m core.TextureFilterMode) uint32 {
	switch m {
	case core.FilterLinear:
		return glLinear
	case core.FilterNearestMipmapNearest:
		return glNearestMipmapNearest
	case core.FilterNearestMipmapLinear:
		return glNearestMipmapLinear
	case core.FilterLinearMipmapNearest:
		return glLinearMipmapNearest
	case core.FilterLinearMipmapLinear:
		return glLinearMipmapLinear
	}
	return glNearest
}

func wrapMode(m core.TextureWrapMode) uint32 {
	switch m {
	case core.WrapClampToEdge:
		return glClampToEdge
	case core.WrapMirroredRepeat:
		return glMirroredRepeat
	}
	return glRepeat
}

func textureTarget(t core.TextureType) uint32 {
	switch t {
	case core.TextureCube:
		return glTextureCubeMap
	case core.Texture3D:
		return glTexture3D
	case core.TextureArray:
		return glTexture2DArray
	}
	return glTexture2D
}

func bufferUsage(u core.Usage) uint32 {
	switch u {
	case core.UsageDynamic:
		return glDynamicDraw
	case core.UsageStream:
		return glStreamDraw
	}
	return glStaticDraw
}

func cubeFaceTarget(face int) uint32 {
	return glTextureCubeMapPositiveX + uint32(min(max(face, 0), 5))
}

var compareFuncTable = [...]uint32{
	core.CmpNever:        glNever,
	core.CmpLess:         glLess,
	core.CmpEqual:        glEqual,
	core.CmpLessEqual:    glLequal,
	core.CmpGreater:      glGreater,
	core.CmpNotEqual:     glNotequal,
	core.CmpGreaterEqual: glGequal,
	core.CmpAlways:       glAlways,
}

var stencilOpTable = [...]uint32{
	core.StencilKeep:      glKeep,
	core.StencilZero:      glZero,
	core.StencilReplace:   glReplace,
	core.StencilIncrClamp: glIncr,
	core.StencilDecrClamp: glDecr,
	core.StencilInvert:    glInvert,
	core.StencilIncrWrap:  glIncrWrap,
	core.StencilDecrWrap:  glDecrWrap,
}

var blendFactorTable = [...]uint32{
	core.BlendZero:               glZero,
	core.BlendOne:                glOne,
	core.BlendSrcColor:           glSrcColor,
	core.BlendOneMinusSrcColor:   glOneMinusSrcColor,
	core.BlendSrcAlpha:           glSrcAlpha,
	core.BlendOneMinusSrcAlpha:   glOneMinusSrcAlpha,
	core.BlendDstColor:           glDstColor,
	core.BlendOneMinusDstColor:   glOneMinusDstColor,
	core.BlendDstAlpha:           glDstAlpha,
	core.BlendOneMinusDstAlpha:   glOneMinusDstAlpha,
	core.BlendSrcAlphaSaturated:  glSrcAlphaSaturate,
	core.BlendBlendColor:         glConstantColor,
	core.BlendOneMinusBlendColor: glOneMinusConstantColor,
	core.BlendBlendAlpha:         glConstantAlpha,
	core.BlendOneMinusBlendAlpha: glOneMinusConstantAlpha,
}

var blendOpTable = [...]uint32{
	core.BlendOpAdd:             glFuncAdd,
	core.BlendOpSubtract:        glFuncSubtract,
	core.BlendOpReverseSubtract: glFuncReverseSubtract,
}

func cullFace(f core.Face) uint32 {
	switch f {
	case core.FaceFront:
		return glFront
	case core.FaceBoth:
		return glFrontAndBack
	}
	return glBack
}

// vertexFormatTable maps vertex formats to VertexAttribPointer arguments.
var vertexFormatTable = [...]struct {
	size       int32
	xtype      uint32
	normalized bool
}{
	core.VertexFloat:     {1, glFloat, false},
	core.VertexFloat2:    {2, glFloat, false},
	core.VertexFloat3:    {3, glFloat, false},
	core.VertexFloat4:    {4, glFloat, false},
	core.VertexByte4:     {4, glByte, false},
	core.VertexByte4N:    {4, glByte, true},
	core.VertexUByte4:    {4, glUnsignedByte, false},
	core.VertexUByte4N:   {4, glUnsignedByte, true},
	core.VertexShort2:    {2, glShort, false},
	core.VertexShort2N:   {2, glShort, true},
	core.VertexShort4:    {4, glShort, false},
	core.VertexShort4N:   {4, glShort, true},
	core.VertexUInt10_2N: {4, glUnsignedInt2101010Rev, true},
}
