package glbackend

// GL enum values used by the backend. They mirror the khronos headers so the
// package does not need cgo; glcore passes them through unchanged.
const (
	glZero = 0
	glOne  = 1

	glDepthBufferBit   = 0x00000100
	glStencilBufferBit = 0x00000400
	glColorBufferBit   = 0x00004000

	glPoints        = 0x0000
	glLines         = 0x0001
	glLineStrip     = 0x0003
	glTriangles     = 0x0004
	glTriangleStrip = 0x0005

	glNever    = 0x0200
	glLess     = 0x0201
	glEqual    = 0x0202
	glLequal   = 0x0203
	glGreater  = 0x0204
	glNotequal = 0x0205
	glGequal   = 0x0206
	glAlways   = 0x0207

	glSrcColor              = 0x0300
	glOneMinusSrcColor      = 0x0301
	glSrcAlpha              = 0x0302
	glOneMinusSrcAlpha      = 0x0303
	glDstAlpha              = 0x0304
	glOneMinusDstAlpha      = 0x0305
	glDstColor              = 0x0306
	glOneMinusDstColor      = 0x0307
	glSrcAlphaSaturate      = 0x0308
	glConstantColor         = 0x8001
	glOneMinusConstantColor = 0x8002
	glConstantAlpha         = 0x8003
	glOneMinusConstantAlpha = 0x8004

	glFuncAdd             = 0x8006
	glFuncSubtract        = 0x800A
	glFuncReverseSubtract = 0x800B

	glKeep     = 0x1E00
	glReplace  = 0x1E01
	glIncr     = 0x1E02
	glDecr     = 0x1E03
	glInvert   = 0x150A
	glIncrWrap = 0x8507
	glDecrWrap = 0x8508

	glFront        = 0x0404
	glBack         = 0x0405
	glFrontAndBack = 0x0408
	glCW           = 0x0900

	glCullFace              = 0x0B44
	glDepthTest             = 0x0B71
	glStencilTest           = 0x0B90
	glDither                = 0x0BD0
	glBlend                 = 0x0BE2
	glScissorTest           = 0x0C11
	glPolygonOffsetFill     = 0x8037
	glMultisample           = 0x809D
	glSampleAlphaToCoverage = 0x809E
	glProgramPointSize      = 0x8642

	glByte                    = 0x1400
	glUnsignedByte            = 0x1401
	glShort                   = 0x1402
	glUnsignedShort           = 0x1403
	glUnsignedInt             = 0x1405
	glFloat                   = 0x1406
	glHalfFloat               = 0x140B
	glUnsignedShort4444       = 0x8033
	glUnsignedShort5551       = 0x8034
	glUnsignedShort565        = 0x8363
	glUnsignedInt2101010Rev   = 0x8368
	glUnsignedInt248          = 0x84FA
	glDepthComponent          = 0x1902
	glRed                     = 0x1903
	glRGB                     = 0x1907
	glRGBA                    = 0x1908
	glDepthStencil            = 0x84F9
	glRGB5                    = 0x8050
	glRGB8                    = 0x8051
	glRGBA4                   = 0x8056
	glRGB5A1                  = 0x8057
	glRGBA8                   = 0x8058
	glRGB10A2                 = 0x8059
	glR8                      = 0x8229
	glR16F                    = 0x822D
	glR32F                    = 0x822E
	glRGBA32F                 = 0x8814
	glRGBA16F                 = 0x881A
	glDepthComponent16        = 0x81A5
	glDepth24Stencil8         = 0x88F0
	glCompressedRGBAS3TCDXT1  = 0x83F1
	glCompressedRGBAS3TCDXT3  = 0x83F2
	glCompressedRGBAS3TCDXT5  = 0x83F3
	glCompressedRGBPVRTC4     = 0x8C00
	glCompressedRGBPVRTC2     = 0x8C01
	glCompressedRGBAPVRTC4    = 0x8C02
	glCompressedRGBAPVRTC2    = 0x8C03
	glCompressedRGB8ETC2      = 0x9274
	glCompressedSRGB8ETC2     = 0x9275
	glTexture2D               = 0x0DE1
	glTexture3D               = 0x806F
	glTexture2DArray          = 0x8C1A
	glTextureCubeMap          = 0x8513
	glTextureCubeMapPositiveX = 0x8515
	glTextureMagFilter        = 0x2800
	glTextureMinFilter        = 0x2801
	glTextureWrapS            = 0x2802
	glTextureWrapT            = 0x2803
	glTextureWrapR            = 0x8072
	glTextureMaxLevel         = 0x813D
	glNearest                 = 0x2600
	glLinear                  = 0x2601
	glNearestMipmapNearest    = 0x2700
	glLinearMipmapNearest     = 0x2701
	glNearestMipmapLinear     = 0x2702
	glLinearMipmapLinear      = 0x2703
	glRepeat                  = 0x2901
	glClampToEdge             = 0x812F
	glMirroredRepeat          = 0x8370
	glTexture0                = 0x84C0

	glArrayBuffer        = 0x8892
	glElementArrayBuffer = 0x8893
	glStreamDraw         = 0x88E0
	glStaticDraw         = 0x88E4
	glDynamicDraw        = 0x88E8

	glFramebuffer                  = 0x8D40
	glReadFramebuffer              = 0x8CA8
	glDrawFramebuffer              = 0x8CA9
	glRenderbuffer                 = 0x8D41
	glFramebufferBinding           = 0x8CA6
	glColorAttachment0             = 0x8CE0
	glDepthAttachment              = 0x8D00
	glStencilAttachment            = 0x8D20
	glFramebufferComplete          = 0x8CD5
	glFramebufferIncompleteAttach  = 0x8CD6
	glFramebufferMissingAttach     = 0x8CD7
	glFramebufferUnsupported       = 0x8CDD
	glFramebufferIncompleteSamples = 0x8D56
	glFramebufferUndefined         = 0x8219
	glColor                        = 0x1800

	glVertexShader   = 0x8B31
	glFragmentShader = 0x8B30
	glCompileStatus  = 0x8B81
	glLinkStatus     = 0x8B82

	glMaxTextureSize               = 0x0D33
	glMaxViewportDims              = 0x0D3A
	glMaxCubeMapTextureSize        = 0x851C
	glMaxVertexAttribs             = 0x8869
	glMaxCombinedTextureImageUnits = 0x8B4D
	glMaxVertexTextureImageUnits   = 0x8B4C
	glMaxVertexUniformComponents   = 0x8B4A
	glMaxFragmentUniformComponents = 0x8B49
	glMaxColorAttachments          = 0x8CDF
	glMax3DTextureSize             = 0x8073
	glVendor                       = 0x1F00
	glRendererString               = 0x1F01
	glVersion                      = 0x1F02
	glExtensions                   = 0x1F03
	glShadingLanguageVersion       = 0x8B8C
)
