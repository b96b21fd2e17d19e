package core

// StencilState is the stencil configuration of one polygon face.
type StencilState struct {
	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
	CmpFunc     CompareFunc
}

// DepthStencilState is the depth and stencil part of a pipeline.
type DepthStencilState struct {
	DepthCmpFunc      CompareFunc
	DepthWriteEnabled bool
	StencilEnabled    bool
	StencilReadMask   uint8
	StencilWriteMask  uint8
	StencilRef        uint8
	StencilFront      StencilState
	StencilBack       StencilState
}

// DefaultDepthStencilState passes every fragment and writes nothing.
func DefaultDepthStencilState() DepthStencilState {
	def := StencilState{FailOp: StencilKeep, DepthFailOp: StencilKeep, PassOp: StencilKeep, CmpFunc: CmpAlways}
	return DepthStencilState{
		DepthCmpFunc:     CmpAlways,
		StencilReadMask:  0xFF,
		StencilWriteMask: 0xFF,
		StencilFront:     def,
		StencilBack:      def,
	}
}

// BlendState is the blending and color output part of a pipeline.
type BlendState struct {
	BlendEnabled   bool
	SrcFactorRGB   BlendFactor
	DstFactorRGB   BlendFactor
	OpRGB          BlendOperation
	SrcFactorAlpha BlendFactor
	DstFactorAlpha BlendFactor
	OpAlpha        BlendOperation
	ColorWriteMask PixelChannel
	ColorFormat    PixelFormat
	DepthFormat    PixelFormat
	MRTCount       int
}

func DefaultBlendState() BlendState {
	return BlendState{
		SrcFactorRGB:   BlendOne,
		DstFactorRGB:   BlendZero,
		OpRGB:          BlendOpAdd,
		SrcFactorAlpha: BlendOne,
		DstFactorAlpha: BlendZero,
		OpAlpha:        BlendOpAdd,
		ColorWriteMask: ChannelRGBA,
		ColorFormat:    PixelFormatRGBA8,
		DepthFormat:    PixelFormatDEPTHSTENCIL,
		MRTCount:       1,
	}
}

// RasterizerState is the rasterizer part of a pipeline.
type RasterizerState struct {
	CullFaceEnabled        bool
	ScissorTestEnabled     bool
	DitherEnabled          bool
	AlphaToCoverageEnabled bool
	CullFace               Face
	SampleCount            int
	DepthBias              float32
	DepthBiasSlopeScale    float32
	DepthBiasClamp         float32
}

func DefaultRasterizerState() RasterizerState {
	return RasterizerState{
		DitherEnabled: true,
		CullFace:      FaceBack,
		SampleCount:   1,
	}
}

// SamplerState describes texture sampling.
type SamplerState struct {
	MinFilter TextureFilterMode
	MagFilter TextureFilterMode
	WrapU     TextureWrapMode
	WrapV     TextureWrapMode
	WrapW     TextureWrapMode
}
