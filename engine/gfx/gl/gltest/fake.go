// Package gltest provides a recording stand-in for a GL context so the GL
// backend can be tested without a window or driver. Fake satisfies
// glbackend.Functions; wrap Display to add the GL accessor:
//
//	type display struct{ *gltest.Display }
//
//	func (d display) GL() glbackend.Functions { return d.Fake }
package gltest

import (
	"fmt"
	"slices"

	"github.com/hubastard/prism/engine/core"
)

// Enum values the fake interprets.
const (
	compileStatus       = 0x8B81
	linkStatus          = 0x8B82
	versionString       = 0x1F02
	extensionsString    = 0x1F03
	framebufferComplete = 0x8CD5
	framebufferBinding  = 0x8CA6
	framebufferTarget   = 0x8D40
	readFramebuffer     = 0x8CA8
	drawFramebuffer     = 0x8CA9
)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string { return fmt.Sprintf("%s%v", c.Name, c.Args) }

// Fake records every call. Object names are handed out from one counter
// starting at 1 so they are never zero.
type Fake struct {
	Calls []Call

	Version    string
	Extensions string
	Integers   map[uint32]int32

	FailCompile bool
	FailLink    bool
	// FramebufferStatus is returned by CheckFramebufferStatus; zero means
	// complete.
	FramebufferStatus uint32
	// MissingUniforms lists names GetUniformLocation reports as -1.
	MissingUniforms map[string]bool

	nextName   uint32
	nextLoc    int32
	live       map[string]int
	boundFB    map[uint32]uint32
	uniformVec map[int32][]float32
}

// NewFake returns a fake GL 3.3 core context with plausible limits.
func NewFake() *Fake {
	return &Fake{
		Version: "3.3.0 gltest",
		Integers: map[uint32]int32{
			0x0D33: 4096, // MAX_TEXTURE_SIZE
			0x851C: 4096, // MAX_CUBE_MAP_TEXTURE_SIZE
			0x0D3A: 8192, // MAX_VIEWPORT_DIMS
			0x8869: 16,   // MAX_VERTEX_ATTRIBS
			0x8B4A: 1024, // MAX_VERTEX_UNIFORM_COMPONENTS
			0x8B4D: 32,   // MAX_COMBINED_TEXTURE_IMAGE_UNITS
			0x8B4C: 16,   // MAX_VERTEX_TEXTURE_IMAGE_UNITS
			0x8B49: 1024, // MAX_FRAGMENT_UNIFORM_COMPONENTS
			0x8CDF: 4,    // MAX_COLOR_ATTACHMENTS
		},
		MissingUniforms: map[string]bool{},
		live:            map[string]int{},
		boundFB:         map[uint32]uint32{},
		uniformVec:      map[int32][]float32{},
	}
}

func (f *Fake) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *Fake) gen(kind string) uint32 {
	f.nextName++
	f.live[kind]++
	f.record("Gen"+kind, f.nextName)
	return f.nextName
}

func (f *Fake) del(kind string, name uint32) {
	f.live[kind]--
	f.record("Delete"+kind, name)
}

// Reset forgets the recorded calls but keeps object bookkeeping.
func (f *Fake) Reset() { f.Calls = f.Calls[:0] }

// Count returns how often name was called.
func (f *Fake) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns all recorded calls of name in order.
func (f *Fake) Find(name string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the sequence of call names, handy for order assertions.
func (f *Fake) Names() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Name
	}
	return out
}

// Live returns the number of undeleted objects of a kind, e.g. "Buffer".
func (f *Fake) Live(kind string) int { return f.live[kind] }

// Uniform returns the last vec4 array uploaded to loc.
func (f *Fake) Uniform(loc int32) []float32 { return f.uniformVec[loc] }

func (f *Fake) GetIntegerv(pname uint32) int32 {
	if pname == framebufferBinding {
		return int32(f.boundFB[framebufferTarget])
	}
	return f.Integers[pname]
}

func (f *Fake) GetString(name uint32) string {
	switch name {
	case versionString:
		return f.Version
	case extensionsString:
		return f.Extensions
	}
	return "gltest"
}

func (f *Fake) Enable(capability uint32)  { f.record("Enable", capability) }
func (f *Fake) Disable(capability uint32) { f.record("Disable", capability) }

func (f *Fake) GenVertexArray() uint32       { return f.gen("VertexArray") }
func (f *Fake) BindVertexArray(vao uint32)   { f.record("BindVertexArray", vao) }
func (f *Fake) DeleteVertexArray(vao uint32) { f.del("VertexArray", vao) }
func (f *Fake) DepthFunc(fn uint32)          { f.record("DepthFunc", fn) }
func (f *Fake) DepthMask(flag bool)          { f.record("DepthMask", flag) }
func (f *Fake) StencilOp(fail, zfail, zpass uint32) {
	f.record("StencilOp", fail, zfail, zpass)
}

func (f *Fake) StencilFunc(fn uint32, ref int32, mask uint32) {
	f.record("StencilFunc", fn, ref, mask)
}

func (f *Fake) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	f.record("StencilFuncSeparate", face, fn, ref, mask)
}

func (f *Fake) StencilOpSeparate(face, fail, zfail, zpass uint32) {
	f.record("StencilOpSeparate", face, fail, zfail, zpass)
}

func (f *Fake) StencilMask(mask uint32) { f.record("StencilMask", mask) }

func (f *Fake) StencilMaskSeparate(face, mask uint32) {
	f.record("StencilMaskSeparate", face, mask)
}

func (f *Fake) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *Fake) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	f.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (f *Fake) ColorMask(r, g, b, a bool)           { f.record("ColorMask", r, g, b, a) }
func (f *Fake) BlendColor(r, g, b, a float32)       { f.record("BlendColor", r, g, b, a) }
func (f *Fake) FrontFace(mode uint32)               { f.record("FrontFace", mode) }
func (f *Fake) CullFace(mode uint32)                { f.record("CullFace", mode) }
func (f *Fake) PolygonOffset(factor, units float32) { f.record("PolygonOffset", factor, units) }
func (f *Fake) Viewport(x, y, w, h int32)           { f.record("Viewport", x, y, w, h) }
func (f *Fake) Scissor(x, y, w, h int32)            { f.record("Scissor", x, y, w, h) }
func (f *Fake) ClearColor(r, g, b, a float32)       { f.record("ClearColor", r, g, b, a) }
func (f *Fake) ClearDepth(depth float64)            { f.record("ClearDepth", depth) }
func (f *Fake) ClearStencil(s int32)                { f.record("ClearStencil", s) }
func (f *Fake) Clear(mask uint32)                   { f.record("Clear", mask) }

func (f *Fake) ClearBufferfv(buffer uint32, drawBuffer int32, value [4]float32) {
	f.record("ClearBufferfv", buffer, drawBuffer, value)
}

func (f *Fake) ClearBufferfi(buffer uint32, drawBuffer int32, depth float32, stencil int32) {
	f.record("ClearBufferfi", buffer, drawBuffer, depth, stencil)
}

func (f *Fake) GenBuffer() uint32             { return f.gen("Buffer") }
func (f *Fake) DeleteBuffer(buf uint32)       { f.del("Buffer", buf) }
func (f *Fake) BindBuffer(target, buf uint32) { f.record("BindBuffer", target, buf) }

func (f *Fake) BufferData(target uint32, size int, data []byte, usage uint32) {
	f.record("BufferData", target, size, slices.Clone(data), usage)
}

func (f *Fake) BufferSubData(target uint32, offset int, data []byte) {
	f.record("BufferSubData", target, offset, slices.Clone(data))
}

func (f *Fake) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	f.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (f *Fake) EnableVertexAttribArray(index uint32)  { f.record("EnableVertexAttribArray", index) }
func (f *Fake) DisableVertexAttribArray(index uint32) { f.record("DisableVertexAttribArray", index) }

func (f *Fake) VertexAttribDivisor(index, divisor uint32) {
	f.record("VertexAttribDivisor", index, divisor)
}

func (f *Fake) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays", mode, first, count)
}

func (f *Fake) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	f.record("DrawArraysInstanced", mode, first, count, instances)
}

func (f *Fake) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	f.record("DrawElements", mode, count, xtype, offset)
}

func (f *Fake) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	f.record("DrawElementsInstanced", mode, count, xtype, offset, instances)
}

func (f *Fake) GenTexture() uint32             { return f.gen("Texture") }
func (f *Fake) DeleteTexture(tex uint32)       { f.del("Texture", tex) }
func (f *Fake) ActiveTexture(unit uint32)      { f.record("ActiveTexture", unit) }
func (f *Fake) BindTexture(target, tex uint32) { f.record("BindTexture", target, tex) }

func (f *Fake) TexParameteri(target, pname uint32, param int32) {
	f.record("TexParameteri", target, pname, param)
}

func (f *Fake) TexImage2D(target uint32, level int32, internalFormat int32, w, h int32, format, xtype uint32, data []byte) {
	f.record("TexImage2D", target, level, internalFormat, w, h, format, xtype, len(data))
}

func (f *Fake) TexImage3D(target uint32, level int32, internalFormat int32, w, h, d int32, format, xtype uint32, data []byte) {
	f.record("TexImage3D", target, level, internalFormat, w, h, d, format, xtype, len(data))
}

func (f *Fake) CompressedTexImage2D(target uint32, level int32, internalFormat uint32, w, h int32, data []byte) {
	f.record("CompressedTexImage2D", target, level, internalFormat, w, h, len(data))
}

func (f *Fake) CompressedTexImage3D(target uint32, level int32, internalFormat uint32, w, h, d int32, data []byte) {
	f.record("CompressedTexImage3D", target, level, internalFormat, w, h, d, len(data))
}

func (f *Fake) TexSubImage2D(target uint32, level int32, x, y, w, h int32, format, xtype uint32, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, w, h, format, xtype, len(data))
}

func (f *Fake) GenRenderbuffer() uint32            { return f.gen("Renderbuffer") }
func (f *Fake) DeleteRenderbuffer(rb uint32)       { f.del("Renderbuffer", rb) }
func (f *Fake) BindRenderbuffer(target, rb uint32) { f.record("BindRenderbuffer", target, rb) }

func (f *Fake) RenderbufferStorage(target, internalFormat uint32, w, h int32) {
	f.record("RenderbufferStorage", target, internalFormat, w, h)
}

func (f *Fake) RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, w, h int32) {
	f.record("RenderbufferStorageMultisample", target, samples, internalFormat, w, h)
}

func (f *Fake) GenFramebuffer() uint32      { return f.gen("Framebuffer") }
func (f *Fake) DeleteFramebuffer(fb uint32) { f.del("Framebuffer", fb) }

func (f *Fake) BindFramebuffer(target, fb uint32) {
	f.record("BindFramebuffer", target, fb)
	switch target {
	case framebufferTarget:
		f.boundFB[framebufferTarget] = fb
		f.boundFB[readFramebuffer] = fb
		f.boundFB[drawFramebuffer] = fb
	default:
		f.boundFB[target] = fb
	}
}

// BoundFramebuffer returns the framebuffer bound to target.
func (f *Fake) BoundFramebuffer(target uint32) uint32 { return f.boundFB[target] }

func (f *Fake) FramebufferTexture2D(target, attachment, texTarget, tex uint32, level int32) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, tex, level)
}

func (f *Fake) FramebufferTextureLayer(target, attachment, tex uint32, level, layer int32) {
	f.record("FramebufferTextureLayer", target, attachment, tex, level, layer)
}

func (f *Fake) FramebufferRenderbuffer(target, attachment, rbTarget, rb uint32) {
	f.record("FramebufferRenderbuffer", target, attachment, rbTarget, rb)
}

func (f *Fake) CheckFramebufferStatus(target uint32) uint32 {
	f.record("CheckFramebufferStatus", target)
	if f.FramebufferStatus != 0 {
		return f.FramebufferStatus
	}
	return framebufferComplete
}

func (f *Fake) DrawBuffers(bufs []uint32) { f.record("DrawBuffers", slices.Clone(bufs)) }
func (f *Fake) ReadBuffer(src uint32)     { f.record("ReadBuffer", src) }

func (f *Fake) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	f.record("BlitFramebuffer", srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (f *Fake) CreateShader(xtype uint32) uint32 {
	f.nextName++
	f.live["Shader"]++
	f.record("CreateShader", xtype, f.nextName)
	return f.nextName
}

func (f *Fake) ShaderSource(shader uint32, src string) { f.record("ShaderSource", shader, src) }
func (f *Fake) CompileShader(shader uint32)            { f.record("CompileShader", shader) }

func (f *Fake) GetShaderiv(shader, pname uint32) int32 {
	if pname == compileStatus && f.FailCompile {
		return 0
	}
	return 1
}

func (f *Fake) GetShaderInfoLog(shader uint32) string {
	if f.FailCompile {
		return "0:1(1): error: syntax error"
	}
	return ""
}

func (f *Fake) DeleteShader(shader uint32) { f.del("Shader", shader) }

func (f *Fake) CreateProgram() uint32 {
	f.nextName++
	f.live["Program"]++
	f.record("CreateProgram", f.nextName)
	return f.nextName
}

func (f *Fake) AttachShader(program, shader uint32) { f.record("AttachShader", program, shader) }

func (f *Fake) BindAttribLocation(program, index uint32, name string) {
	f.record("BindAttribLocation", program, index, name)
}

func (f *Fake) LinkProgram(program uint32) { f.record("LinkProgram", program) }

func (f *Fake) GetProgramiv(program, pname uint32) int32 {
	if pname == linkStatus && f.FailLink {
		return 0
	}
	return 1
}

func (f *Fake) GetProgramInfoLog(program uint32) string {
	if f.FailLink {
		return "error: vertex output not consumed"
	}
	return ""
}

func (f *Fake) DeleteProgram(program uint32) { f.del("Program", program) }
func (f *Fake) UseProgram(program uint32)    { f.record("UseProgram", program) }

func (f *Fake) GetUniformLocation(program uint32, name string) int32 {
	if f.MissingUniforms[name] {
		return -1
	}
	loc := f.nextLoc
	f.nextLoc++
	f.record("GetUniformLocation", program, name, loc)
	return loc
}

func (f *Fake) Uniform1i(location, v int32) { f.record("Uniform1i", location, v) }

func (f *Fake) Uniform4fv(location int32, v []float32) {
	v = slices.Clone(v)
	f.uniformVec[location] = v
	f.record("Uniform4fv", location, v)
}

// Display is a window-less display over a Fake.
type Display struct {
	Fake      *Fake
	Attrs     core.DisplayAttrs
	Presented int
	Quit      bool

	cb func(core.Event)
}

// NewDisplay returns a w x h RGBA8 display with a depth-stencil buffer.
func NewDisplay(w, h int) *Display {
	return &Display{
		Fake: NewFake(),
		Attrs: core.DisplayAttrs{
			WindowWidth:       w,
			WindowHeight:      h,
			FramebufferWidth:  w,
			FramebufferHeight: h,
			ColorPixelFormat:  core.PixelFormatRGBA8,
			DepthPixelFormat:  core.PixelFormatDEPTHSTENCIL,
			SampleCount:       1,
			Windowed:          true,
			SwapInterval:      1,
			WindowTitle:       "gltest",
		},
	}
}

func (d *Display) DisplayAttrs() core.DisplayAttrs      { return d.Attrs }
func (d *Display) ProcessEvents()                       {}
func (d *Display) Present()                             { d.Presented++ }
func (d *Display) QuitRequested() bool                  { return d.Quit }
func (d *Display) SetTitle(title string)                { d.Attrs.WindowTitle = title }
func (d *Display) SetEventCallback(cb func(core.Event)) { d.cb = cb }

func (d *Display) BindDefaultFramebuffer() { d.Fake.BindFramebuffer(framebufferTarget, 0) }

// Resize changes the framebuffer size and notifies the event callback.
func (d *Display) Resize(w, h int) {
	d.Attrs.WindowWidth, d.Attrs.WindowHeight = w, h
	d.Attrs.FramebufferWidth, d.Attrs.FramebufferHeight = w, h
	if d.cb != nil {
		d.cb(core.EventDisplayModified{Attrs: d.Attrs})
	}
}
