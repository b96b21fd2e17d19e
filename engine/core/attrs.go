package core

// VertexBufferAttrs are the derived properties of a mesh's vertex buffer.
type VertexBufferAttrs struct {
	NumVertices int
	Layout      VertexLayout
	BufferUsage Usage
}

func (a VertexBufferAttrs) ByteSize() int { return a.NumVertices * a.Layout.ByteSize() }

// IndexBufferAttrs are the derived properties of a mesh's index buffer.
type IndexBufferAttrs struct {
	NumIndices  int
	Type        IndexType
	BufferUsage Usage
}

func (a IndexBufferAttrs) ByteSize() int { return a.NumIndices * a.Type.ByteSize() }

// TextureAttrs are the derived properties of a texture.
type TextureAttrs struct {
	Locator        string
	Type           TextureType
	ColorFormat    PixelFormat
	DepthFormat    PixelFormat
	SampleCount    int
	TextureUsage   Usage
	Width          int
	Height         int
	Depth          int
	NumMipMaps     int
	IsRenderTarget bool
	HasDepthBuffer bool
}

// DisplayAttrs describes the current default framebuffer or, for offscreen
// passes, the pass attachments.
type DisplayAttrs struct {
	WindowWidth       int
	WindowHeight      int
	WindowPosX        int
	WindowPosY        int
	FramebufferWidth  int
	FramebufferHeight int
	ColorPixelFormat  PixelFormat
	DepthPixelFormat  PixelFormat
	SampleCount       int
	Windowed          bool
	SwapInterval      int
	WindowTitle       string
}

// DisplayAttrsFromTexture describes a render target as a display.
func DisplayAttrsFromTexture(t TextureAttrs) DisplayAttrs {
	return DisplayAttrs{
		WindowWidth:       t.Width,
		WindowHeight:      t.Height,
		FramebufferWidth:  t.Width,
		FramebufferHeight: t.Height,
		ColorPixelFormat:  t.ColorFormat,
		DepthPixelFormat:  t.DepthFormat,
		SampleCount:       t.SampleCount,
		SwapInterval:      1,
	}
}

// FrameInfo counts render commands issued in the current frame.
type FrameInfo struct {
	NumPasses            int
	NumApplyViewPort     int
	NumApplyScissorRect  int
	NumApplyDrawState    int
	NumApplyUniformBlock int
	NumApplyTextures     int
	NumUpdateVertices    int
	NumUpdateIndices     int
	NumUpdateTextures    int
	NumDraw              int
	NumDrawInstanced     int
}
