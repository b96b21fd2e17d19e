package glbackend

// Functions is the subset of the GL 3.3 core / GLES3 API the backend calls.
// Object names are returned instead of written through pointers and client
// memory is passed as slices; glcore adapts this to go-gl, gltest records
// it for tests.
type Functions interface {
	GetIntegerv(pname uint32) int32
	GetString(name uint32) string

	Enable(capability uint32)
	Disable(capability uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	DepthFunc(fn uint32)
	DepthMask(flag bool)
	StencilFunc(fn uint32, ref int32, mask uint32)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilOp(fail, zfail, zpass uint32)
	StencilOpSeparate(face, fail, zfail, zpass uint32)
	StencilMask(mask uint32)
	StencilMaskSeparate(face, mask uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	ColorMask(r, g, b, a bool)
	BlendColor(r, g, b, a float32)
	FrontFace(mode uint32)
	CullFace(mode uint32)
	PolygonOffset(factor, units float32)
	Viewport(x, y, w, h int32)
	Scissor(x, y, w, h int32)

	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	ClearStencil(s int32)
	Clear(mask uint32)
	ClearBufferfv(buffer uint32, drawBuffer int32, value [4]float32)
	ClearBufferfi(buffer uint32, drawBuffer int32, depth float32, stencil int32)

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target, buf uint32)
	// BufferData allocates size bytes; data may be nil or shorter than size.
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)

	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribDivisor(index, divisor uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawArraysInstanced(mode uint32, first, count, instances int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32)

	GenTexture() uint32
	DeleteTexture(tex uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, tex uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, level int32, internalFormat int32, w, h int32, format, xtype uint32, data []byte)
	TexImage3D(target uint32, level int32, internalFormat int32, w, h, d int32, format, xtype uint32, data []byte)
	CompressedTexImage2D(target uint32, level int32, internalFormat uint32, w, h int32, data []byte)
	CompressedTexImage3D(target uint32, level int32, internalFormat uint32, w, h, d int32, data []byte)
	TexSubImage2D(target uint32, level int32, x, y, w, h int32, format, xtype uint32, data []byte)

	GenRenderbuffer() uint32
	DeleteRenderbuffer(rb uint32)
	BindRenderbuffer(target, rb uint32)
	RenderbufferStorage(target, internalFormat uint32, w, h int32)
	RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, w, h int32)

	GenFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target, fb uint32)
	FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32)
	FramebufferTextureLayer(target, attachment, tex uint32, level, layer int32)
	FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32)
	CheckFramebufferStatus(target uint32) uint32
	DrawBuffers(bufs []uint32)
	ReadBuffer(src uint32)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	BindAttribLocation(program, index uint32, name string)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v int32)
	// Uniform4fv uploads len(v)/4 vec4s.
	Uniform4fv(location int32, v []float32)
}
