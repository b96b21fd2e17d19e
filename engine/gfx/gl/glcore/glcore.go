// Package glcore binds the GL backend to the OpenGL 3.3 core profile
// through go-gl.
package glcore

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Functions calls straight into go-gl. The zero value is usable once Init
// succeeded on a thread with a current context.
type Functions struct{}

// Init loads the GL entry points of the current context.
func Init() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return &Functions{}, nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

// cstr returns a NUL terminated copy of s for go-gl's *uint8 parameters.
func cstr(s string) *uint8 {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	return gl.Str(s)
}

func (Functions) GetIntegerv(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (Functions) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (Functions) Enable(capability uint32)  { gl.Enable(capability) }
func (Functions) Disable(capability uint32) { gl.Disable(capability) }

func (Functions) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Functions) BindVertexArray(vao uint32)   { gl.BindVertexArray(vao) }
func (Functions) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Functions) DepthFunc(fn uint32)                           { gl.DepthFunc(fn) }
func (Functions) DepthMask(flag bool)                           { gl.DepthMask(flag) }
func (Functions) StencilFunc(fn uint32, ref int32, mask uint32) { gl.StencilFunc(fn, ref, mask) }
func (Functions) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}
func (Functions) StencilOp(fail, zfail, zpass uint32) { gl.StencilOp(fail, zfail, zpass) }
func (Functions) StencilOpSeparate(face, fail, zfail, zpass uint32) {
	gl.StencilOpSeparate(face, fail, zfail, zpass)
}
func (Functions) StencilMask(mask uint32)               { gl.StencilMask(mask) }
func (Functions) StencilMaskSeparate(face, mask uint32) { gl.StencilMaskSeparate(face, mask) }
func (Functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}
func (Functions) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}
func (Functions) ColorMask(r, g, b, a bool)           { gl.ColorMask(r, g, b, a) }
func (Functions) BlendColor(r, g, b, a float32)       { gl.BlendColor(r, g, b, a) }
func (Functions) FrontFace(mode uint32)               { gl.FrontFace(mode) }
func (Functions) CullFace(mode uint32)                { gl.CullFace(mode) }
func (Functions) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }
func (Functions) Viewport(x, y, w, h int32)           { gl.Viewport(x, y, w, h) }
func (Functions) Scissor(x, y, w, h int32)            { gl.Scissor(x, y, w, h) }

func (Functions) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (Functions) ClearDepth(depth float64)      { gl.ClearDepth(depth) }
func (Functions) ClearStencil(s int32)          { gl.ClearStencil(s) }
func (Functions) Clear(mask uint32)             { gl.Clear(mask) }

func (Functions) ClearBufferfv(buffer uint32, drawBuffer int32, value [4]float32) {
	gl.ClearBufferfv(buffer, drawBuffer, &value[0])
}

func (Functions) ClearBufferfi(buffer uint32, drawBuffer int32, depth float32, stencil int32) {
	gl.ClearBufferfi(buffer, drawBuffer, depth, stencil)
}

func (Functions) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (Functions) DeleteBuffer(buf uint32)       { gl.DeleteBuffers(1, &buf) }
func (Functions) BindBuffer(target, buf uint32) { gl.BindBuffer(target, buf) }

func (Functions) BufferData(target uint32, size int, data []byte, usage uint32) {
	if len(data) < size {
		gl.BufferData(target, size, nil, usage)
		if len(data) > 0 {
			gl.BufferSubData(target, 0, len(data), ptr(data))
		}
		return
	}
	gl.BufferData(target, size, ptr(data), usage)
}

func (Functions) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), ptr(data))
}

func (Functions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (Functions) EnableVertexAttribArray(index uint32)      { gl.EnableVertexAttribArray(index) }
func (Functions) DisableVertexAttribArray(index uint32)     { gl.DisableVertexAttribArray(index) }
func (Functions) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (Functions) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }
func (Functions) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	gl.DrawArraysInstanced(mode, first, count, instances)
}
func (Functions) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}
func (Functions) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	gl.DrawElementsInstanced(mode, count, xtype, gl.PtrOffset(offset), instances)
}

func (Functions) GenTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (Functions) DeleteTexture(tex uint32)                        { gl.DeleteTextures(1, &tex) }
func (Functions) ActiveTexture(unit uint32)                       { gl.ActiveTexture(unit) }
func (Functions) BindTexture(target, tex uint32)                  { gl.BindTexture(target, tex) }
func (Functions) TexParameteri(target, pname uint32, param int32) { gl.TexParameteri(target, pname, param) }

func (Functions) TexImage2D(target uint32, level int32, internalFormat int32, w, h int32, format, xtype uint32, data []byte) {
	gl.TexImage2D(target, level, internalFormat, w, h, 0, format, xtype, ptr(data))
}

func (Functions) TexImage3D(target uint32, level int32, internalFormat int32, w, h, d int32, format, xtype uint32, data []byte) {
	gl.TexImage3D(target, level, internalFormat, w, h, d, 0, format, xtype, ptr(data))
}

func (Functions) CompressedTexImage2D(target uint32, level int32, internalFormat uint32, w, h int32, data []byte) {
	gl.CompressedTexImage2D(target, level, internalFormat, w, h, 0, int32(len(data)), ptr(data))
}

func (Functions) CompressedTexImage3D(target uint32, level int32, internalFormat uint32, w, h, d int32, data []byte) {
	gl.CompressedTexImage3D(target, level, internalFormat, w, h, d, 0, int32(len(data)), ptr(data))
}

func (Functions) TexSubImage2D(target uint32, level int32, x, y, w, h int32, format, xtype uint32, data []byte) {
	gl.TexSubImage2D(target, level, x, y, w, h, format, xtype, ptr(data))
}

func (Functions) GenRenderbuffer() uint32 {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return rb
}

func (Functions) DeleteRenderbuffer(rb uint32)       { gl.DeleteRenderbuffers(1, &rb) }
func (Functions) BindRenderbuffer(target, rb uint32) { gl.BindRenderbuffer(target, rb) }
func (Functions) RenderbufferStorage(target, internalFormat uint32, w, h int32) {
	gl.RenderbufferStorage(target, internalFormat, w, h)
}
func (Functions) RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, w, h int32) {
	gl.RenderbufferStorageMultisample(target, samples, internalFormat, w, h)
}

func (Functions) GenFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (Functions) DeleteFramebuffer(fb uint32)       { gl.DeleteFramebuffers(1, &fb) }
func (Functions) BindFramebuffer(target, fb uint32) { gl.BindFramebuffer(target, fb) }
func (Functions) FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, tex, level)
}
func (Functions) FramebufferTextureLayer(target, attachment, tex uint32, level, layer int32) {
	gl.FramebufferTextureLayer(target, attachment, tex, level, layer)
}
func (Functions) FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32) {
	gl.FramebufferRenderbuffer(target, attachment, rbTarget, rb)
}
func (Functions) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (Functions) DrawBuffers(bufs []uint32) {
	if len(bufs) == 0 {
		return
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (Functions) ReadBuffer(src uint32) { gl.ReadBuffer(src) }
func (Functions) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (Functions) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (Functions) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csrc, nil)
}

func (Functions) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Functions) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (f Functions) GetShaderInfoLog(shader uint32) string {
	n := f.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	if n <= 1 {
		return ""
	}
	log := strings.Repeat("\x00", int(n))
	gl.GetShaderInfoLog(shader, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Functions) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }
func (Functions) CreateProgram() uint32               { return gl.CreateProgram() }
func (Functions) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (Functions) BindAttribLocation(program, index uint32, name string) {
	gl.BindAttribLocation(program, index, cstr(name))
}
func (Functions) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Functions) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (f Functions) GetProgramInfoLog(program uint32) string {
	n := f.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	if n <= 1 {
		return ""
	}
	log := strings.Repeat("\x00", int(n))
	gl.GetProgramInfoLog(program, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Functions) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (Functions) UseProgram(program uint32)    { gl.UseProgram(program) }
func (Functions) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, cstr(name))
}
func (Functions) Uniform1i(location, v int32) { gl.Uniform1i(location, v) }

func (Functions) Uniform4fv(location int32, v []float32) {
	if len(v) < 4 {
		return
	}
	gl.Uniform4fv(location, int32(len(v)/4), &v[0])
}
