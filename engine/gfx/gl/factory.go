package glbackend

import (
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/scratch"
)

// Factory creates and destroys the GL objects behind gfx resources. It
// shares the renderer's context and keeps the renderer's binding cache
// consistent with the bindings it changes.
type Factory struct {
	gl   Functions
	r    *Renderer
	caps *Caps
}

func NewFactory(r *Renderer) *Factory {
	return &Factory{gl: r.gl, r: r, caps: r.caps}
}

// InitMesh creates the vertex and index buffers of msh. data holds the
// initial content at the desc's data offsets and may be nil.
func (f *Factory) InitMesh(msh *Mesh, desc core.MeshDesc, data []byte) core.ResourceState {
	msh.reset(desc)
	if desc.FullScreenQuad {
		return f.initFullScreenQuad(msh, desc.FlipV)
	}
	return f.initStdMesh(msh, desc, data)
}

func (f *Factory) initStdMesh(msh *Mesh, desc core.MeshDesc, data []byte) core.ResourceState {
	if !logger.Assert(len(desc.PrimGroups) <= core.MaxNumPrimGroups, "gl: mesh %q has %d primitive groups", desc.Locator, len(desc.PrimGroups)) {
		return core.ResourceFailed
	}
	msh.VertexBufferAttrs = core.VertexBufferAttrs{NumVertices: desc.NumVertices, Layout: desc.Layout, BufferUsage: desc.VertexUsage}
	msh.IndexBufferAttrs = core.IndexBufferAttrs{NumIndices: desc.NumIndices, Type: desc.IndexType, BufferUsage: desc.IndexUsage}
	msh.PrimGroups = append([]core.PrimitiveGroup(nil), desc.PrimGroups...)

	if desc.NumVertices > 0 {
		init, ok := bufferContent(data, desc.VertexDataOffset, msh.VertexBufferAttrs.ByteSize())
		if !logger.Assert(ok, "gl: mesh %q vertex data out of range", desc.Locator) {
			return core.ResourceFailed
		}
		f.createBuffers(&msh.buffers[vb], glArrayBuffer, desc.VertexUsage, msh.VertexBufferAttrs.ByteSize(), init)
	}
	if desc.IndexType != core.IndexNone {
		init, ok := bufferContent(data, desc.IndexDataOffset, msh.IndexBufferAttrs.ByteSize())
		if !logger.Assert(ok, "gl: mesh %q index data out of range", desc.Locator) {
			f.DestroyMesh(msh)
			return core.ResourceFailed
		}
		f.createBuffers(&msh.buffers[ib], glElementArrayBuffer, desc.IndexUsage, msh.IndexBufferAttrs.ByteSize(), init)
	}
	return core.ResourceValid
}

// bufferContent slices the initial content of one buffer out of data. A
// nil result with ok set means the buffer starts uninitialized.
func bufferContent(data []byte, offset, size int) ([]byte, bool) {
	if data == nil || offset == core.NoDataOffset {
		return nil, true
	}
	if offset < 0 || offset+size > len(data) {
		return nil, false
	}
	return data[offset : offset+size], true
}

func (f *Factory) createBuffers(buf *meshBuffer, target uint32, usage core.Usage, size int, data []byte) {
	buf.numSlots = 1
	if usage == core.UsageStream {
		buf.numSlots = core.MaxInflightFrames
	}
	for i := 0; i < buf.numSlots; i++ {
		buf.glBuffers[i] = f.createBuffer(target, size, data, usage)
	}
}

func (f *Factory) createBuffer(target uint32, size int, data []byte, usage core.Usage) uint32 {
	f.r.InvalidateMeshState()
	b := f.gl.GenBuffer()
	f.gl.BindBuffer(target, b)
	f.gl.BufferData(target, size, data, bufferUsage(usage))
	f.r.InvalidateMeshState()
	return b
}

// initFullScreenQuad builds a quad covering clip space with texcoords; V
// points up unless flipV.
func (f *Factory) initFullScreenQuad(msh *Mesh, flipV bool) core.ResourceState {
	var layout core.VertexLayout
	layout.Add(core.AttrPosition, core.VertexFloat3).Add(core.AttrTexCoord0, core.VertexFloat2)
	msh.VertexBufferAttrs = core.VertexBufferAttrs{NumVertices: 4, Layout: layout, BufferUsage: core.UsageImmutable}
	msh.IndexBufferAttrs = core.IndexBufferAttrs{NumIndices: 6, Type: core.IndexUInt16, BufferUsage: core.UsageImmutable}
	msh.PrimGroups = []core.PrimitiveGroup{{BaseElement: 0, NumElements: 6}}

	topV, botV := float32(1), float32(0)
	if flipV {
		topV, botV = 0, 1
	}
	arena := scratch.Default()
	mark := arena.Mark()
	defer arena.Release(mark)
	vertices := arena.Float32s(
		-1, +1, 0, 0, topV,
		+1, +1, 0, 1, topV,
		+1, -1, 0, 1, botV,
		-1, -1, 0, 0, botV,
	)
	indices := arena.Uint16s(0, 2, 1, 0, 3, 2)

	f.createBuffers(&msh.buffers[vb], glArrayBuffer, core.UsageImmutable, len(vertices), vertices)
	f.createBuffers(&msh.buffers[ib], glElementArrayBuffer, core.UsageImmutable, len(indices), indices)
	return core.ResourceValid
}

// DestroyMesh deletes the mesh's GL buffers.
func (f *Factory) DestroyMesh(msh *Mesh) {
	f.r.InvalidateMeshState()
	for i := range msh.buffers {
		buf := &msh.buffers[i]
		for s := 0; s < buf.numSlots; s++ {
			if buf.glBuffers[s] != 0 {
				f.gl.DeleteBuffer(buf.glBuffers[s])
			}
		}
	}
	msh.reset(core.MeshDesc{})
}

// InitTexture creates a texture, and for render targets the MSAA and depth
// renderbuffers. data holds the surfaces located by desc.ImageData.
func (f *Factory) InitTexture(tex *Texture, desc core.TextureDesc, data []byte) core.ResourceState {
	tex.reset(desc)
	if !f.caps.HasTextureFormat(desc.ColorFormat) {
		logger.Warn("gl: texture %q: pixel format %s not supported", desc.Locator, desc.ColorFormat)
		return core.ResourceFailed
	}
	if desc.Type == core.Texture3D && !f.caps.HasFeature(core.FeatureTexture3D) {
		logger.Warn("gl: texture %q: 3D textures not supported", desc.Locator)
		return core.ResourceFailed
	}
	if desc.Type == core.TextureArray && !f.caps.HasFeature(core.FeatureTextureArray) {
		logger.Warn("gl: texture %q: array textures not supported", desc.Locator)
		return core.ResourceFailed
	}
	if desc.RenderTarget && !logger.Assert(desc.ColorFormat.IsValidRenderTargetColorFormat(), "gl: %s is not a render target format", desc.ColorFormat) {
		return core.ResourceFailed
	}

	target := textureTarget(desc.Type)
	tex.glTarget = target
	if desc.Usage == core.UsageStream {
		tex.numSlots = core.MaxInflightFrames
	}

	if desc.NativeTextures[0] != 0 {
		for i := 0; i < tex.numSlots; i++ {
			tex.glTextures[i] = uint32(desc.NativeTextures[i])
		}
		tex.nativeHandles = true
	} else {
		for i := 0; i < tex.numSlots; i++ {
			t, ok := f.createTexture(desc, target, data)
			if !ok {
				f.DestroyTexture(tex)
				return core.ResourceFailed
			}
			tex.glTextures[i] = t
		}
	}

	if desc.RenderTarget {
		w, h := int32(desc.Width), int32(desc.Height)
		msaa := desc.SampleCount > 1 && f.caps.HasFeature(core.FeatureMSAARenderTargets)
		if msaa {
			tex.glMSAARenderbuffer = f.gl.GenRenderbuffer()
			f.gl.BindRenderbuffer(glRenderbuffer, tex.glMSAARenderbuffer)
			f.gl.RenderbufferStorageMultisample(glRenderbuffer, int32(desc.SampleCount), texImageInternalFormat(desc.ColorFormat), w, h)
		}
		if desc.DepthFormat.IsValidRenderTargetDepthFormat() {
			tex.glDepthRenderbuffer = f.gl.GenRenderbuffer()
			f.gl.BindRenderbuffer(glRenderbuffer, tex.glDepthRenderbuffer)
			format := depthAttachmentFormat(desc.DepthFormat)
			if msaa {
				f.gl.RenderbufferStorageMultisample(glRenderbuffer, int32(desc.SampleCount), format, w, h)
			} else {
				f.gl.RenderbufferStorage(glRenderbuffer, format, w, h)
			}
		}
		f.gl.BindRenderbuffer(glRenderbuffer, 0)
	}

	tex.Attrs = core.TextureAttrs{
		Locator:        desc.Locator,
		Type:           desc.Type,
		ColorFormat:    desc.ColorFormat,
		DepthFormat:    desc.DepthFormat,
		SampleCount:    max(desc.SampleCount, 1),
		TextureUsage:   desc.Usage,
		Width:          desc.Width,
		Height:         desc.Height,
		Depth:          desc.Depth,
		NumMipMaps:     desc.NumMipMaps,
		IsRenderTarget: desc.RenderTarget,
		HasDepthBuffer: tex.glDepthRenderbuffer != 0,
	}
	f.r.InvalidateTextureState()
	return core.ResourceValid
}

func (f *Factory) createTexture(desc core.TextureDesc, target uint32, data []byte) (uint32, bool) {
	fn := f.gl
	f.r.InvalidateTextureState()
	t := fn.GenTexture()
	fn.ActiveTexture(glTexture0)
	fn.BindTexture(target, t)

	minFilter, magFilter := desc.Sampler.MinFilter, desc.Sampler.MagFilter
	if desc.NumMipMaps == 1 {
		fn.TexParameteri(target, glTextureMaxLevel, 0)
		switch minFilter {
		case core.FilterNearestMipmapNearest, core.FilterNearestMipmapLinear:
			minFilter = core.FilterNearest
		case core.FilterLinearMipmapNearest, core.FilterLinearMipmapLinear:
			minFilter = core.FilterLinear
		}
	}
	fn.TexParameteri(target, glTextureMinFilter, int32(filterMode(minFilter)))
	fn.TexParameteri(target, glTextureMagFilter, int32(filterMode(magFilter)))
	if desc.Type == core.TextureCube {
		fn.TexParameteri(target, glTextureWrapS, glClampToEdge)
		fn.TexParameteri(target, glTextureWrapT, glClampToEdge)
	} else {
		fn.TexParameteri(target, glTextureWrapS, int32(wrapMode(desc.Sampler.WrapU)))
		fn.TexParameteri(target, glTextureWrapT, int32(wrapMode(desc.Sampler.WrapV)))
		if desc.Type == core.Texture3D {
			fn.TexParameteri(target, glTextureWrapR, int32(wrapMode(desc.Sampler.WrapW)))
		}
	}

	numFaces := 1
	if desc.Type == core.TextureCube {
		numFaces = 6
	}
	compressed := desc.ColorFormat.IsCompressed()
	internal := texImageInternalFormat(desc.ColorFormat)
	var format, xtype uint32
	if !compressed {
		format, xtype = texImageFormat(desc.ColorFormat), texImageType(desc.ColorFormat)
	}
	img := &desc.ImageData
	for face := 0; face < numFaces; face++ {
		faceTarget := target
		if desc.Type == core.TextureCube {
			faceTarget = cubeFaceTarget(face)
		}
		for m := 0; m < desc.NumMipMaps; m++ {
			var surface []byte
			if data != nil && m < img.NumMipMaps {
				off, size := img.Offsets[face][m], img.Sizes[face][m]
				if !logger.Assert(off >= 0 && off+size <= len(data), "gl: texture %q face %d mip %d outside of data", desc.Locator, face, m) {
					fn.DeleteTexture(t)
					return 0, false
				}
				surface = data[off : off+size]
			}
			w, h := int32(max(desc.Width>>m, 1)), int32(max(desc.Height>>m, 1))
			switch desc.Type {
			case core.Texture3D, core.TextureArray:
				d := int32(desc.Depth)
				if desc.Type == core.Texture3D {
					d = int32(max(desc.Depth>>m, 1))
				}
				if compressed {
					fn.CompressedTexImage3D(faceTarget, int32(m), internal, w, h, d, surface)
				} else {
					fn.TexImage3D(faceTarget, int32(m), int32(internal), w, h, d, format, xtype, surface)
				}
			default:
				if compressed {
					fn.CompressedTexImage2D(faceTarget, int32(m), internal, w, h, surface)
				} else {
					fn.TexImage2D(faceTarget, int32(m), int32(internal), w, h, format, xtype, surface)
				}
			}
		}
	}
	return t, true
}

// DestroyTexture deletes the texture objects and renderbuffers. Injected
// native textures are left alone.
func (f *Factory) DestroyTexture(tex *Texture) {
	f.r.InvalidateTextureState()
	if !tex.nativeHandles {
		for i := 0; i < tex.numSlots; i++ {
			if tex.glTextures[i] != 0 {
				f.gl.DeleteTexture(tex.glTextures[i])
			}
		}
	}
	if tex.glDepthRenderbuffer != 0 {
		f.gl.DeleteRenderbuffer(tex.glDepthRenderbuffer)
	}
	if tex.glMSAARenderbuffer != 0 {
		f.gl.DeleteRenderbuffer(tex.glMSAARenderbuffer)
	}
	tex.reset(core.TextureDesc{})
}

func (f *Factory) compileShader(stage core.ShaderStage, src, locator string) uint32 {
	fn := f.gl
	s := fn.CreateShader(shaderStage(stage))
	fn.ShaderSource(s, src)
	fn.CompileShader(s)
	ok := fn.GetShaderiv(s, glCompileStatus) != 0
	if msg := fn.GetShaderInfoLog(s); msg != "" {
		logger.With(logger.Fields{"shader": locator, "stage": stage}).Warn("gl: compile log:\n%s", msg)
	}
	if !ok {
		fn.DeleteShader(s)
		return 0
	}
	return s
}

// InitShader compiles and links the program for the context's shading
// language and resolves the uniform block and sampler locations.
func (f *Factory) InitShader(shd *Shader, desc core.ShaderDesc) core.ResourceState {
	shd.reset(desc)
	f.r.InvalidateShaderState()
	fn := f.gl

	lang := f.caps.ShaderLang()
	prog := desc.Programs[lang]
	if prog.VSSource == "" || prog.FSSource == "" {
		logger.Warn("gl: shader %q has no %s source", desc.Locator, lang)
		return core.ResourceFailed
	}
	vs := f.compileShader(core.StageVS, prog.VSSource, desc.Locator)
	if vs == 0 {
		return core.ResourceFailed
	}
	fs := f.compileShader(core.StageFS, prog.FSSource, desc.Locator)
	if fs == 0 {
		fn.DeleteShader(vs)
		return core.ResourceFailed
	}

	p := fn.CreateProgram()
	fn.AttachShader(p, vs)
	fn.AttachShader(p, fs)
	for attr := core.VertexAttr(0); attr < core.NumVertexAttrs; attr++ {
		fn.BindAttribLocation(p, uint32(attr), attr.String())
	}
	fn.LinkProgram(p)
	fn.DeleteShader(vs)
	fn.DeleteShader(fs)
	linked := fn.GetProgramiv(p, glLinkStatus) != 0
	if msg := fn.GetProgramInfoLog(p); msg != "" {
		logger.With(logger.Fields{"shader": desc.Locator}).Warn("gl: link log:\n%s", msg)
	}
	if !linked {
		logger.Warn("gl: shader %q failed to link", desc.Locator)
		fn.DeleteProgram(p)
		return core.ResourceFailed
	}
	shd.glProgram = p

	f.r.useProgram(p)
	for _, ub := range desc.UniformBlocks {
		loc := fn.GetUniformLocation(p, ub.Name)
		if loc == -1 {
			logger.Warn("gl: shader %q: uniform block %q not found", desc.Locator, ub.Name)
			continue
		}
		shd.uniformBlocks[ub.Stage][ub.Slot] = loc
	}
	unit := int32(0)
	for _, t := range desc.Textures {
		loc := fn.GetUniformLocation(p, t.Name)
		if loc == -1 {
			logger.Warn("gl: shader %q: sampler %q not found", desc.Locator, t.Name)
			continue
		}
		shd.samplers[samplerIndex(t.Stage, t.Slot)] = unit
		fn.Uniform1i(loc, unit)
		unit++
	}
	f.r.InvalidateShaderState()
	return core.ResourceValid
}

func (f *Factory) DestroyShader(shd *Shader) {
	f.r.InvalidateShaderState()
	if shd.glProgram != 0 {
		f.gl.DeleteProgram(shd.glProgram)
	}
	shd.reset(core.ShaderDesc{})
}

// InitPipeline maps every vertex input of shd to a component of one of the
// input layouts.
func (f *Factory) InitPipeline(pip *Pipeline, desc core.PipelineDesc, shd *Shader) core.ResourceState {
	*pip = Pipeline{Desc: desc, glPrimType: primitiveType(desc.PrimType)}
	inputs := shd.Desc.Inputs
	for i := range pip.glAttrs {
		pip.glAttrs[i].index = uint32(i)
	}
	for li, layout := range desc.Layouts {
		for ci, c := range layout.Components() {
			if !inputs.Contains(c.Attr) {
				continue
			}
			a := &pip.glAttrs[c.Attr]
			if !logger.Assert(!a.enabled, "gl: pipeline %q: attribute %s in more than one layout", desc.Locator, c.Attr) {
				return core.ResourceFailed
			}
			vf := vertexFormatTable[c.Format]
			a.enabled = true
			a.vbIndex = li
			if layout.StepFunction == core.StepPerInstance {
				a.divisor = uint32(layout.Rate())
			}
			a.stride = int32(layout.ByteSize())
			a.offset = layout.ComponentByteOffset(ci)
			a.size = vf.size
			a.xtype = vf.xtype
			a.normalized = vf.normalized
		}
	}
	for _, c := range inputs.Components() {
		if !pip.glAttrs[c.Attr].enabled {
			logger.Warn("gl: pipeline %q: shader input %s not provided by any vertex layout", desc.Locator, c.Attr)
			return core.ResourceFailed
		}
	}
	return core.ResourceValid
}

func (f *Factory) DestroyPipeline(pip *Pipeline) {
	f.r.InvalidateMeshState()
	*pip = Pipeline{}
}

// InitRenderPass creates the framebuffer for the attachments; for MSAA
// targets it also creates one resolve framebuffer per color attachment.
func (f *Factory) InitRenderPass(rp *RenderPass, desc core.PassDesc, colors [core.MaxNumColorAttachments]*Texture, depth *Texture) core.ResourceState {
	*rp = RenderPass{Desc: desc}
	if !logger.Assert(colors[0] != nil, "gl: pass %q without color attachment", desc.Locator) {
		return core.ResourceFailed
	}
	fn := f.gl
	f.r.InvalidateTextureState()
	orig := uint32(fn.GetIntegerv(glFramebufferBinding))
	defer func() {
		fn.BindFramebuffer(glFramebuffer, orig)
		f.r.InvalidateTextureState()
	}()

	rp.glFramebuffer = fn.GenFramebuffer()
	fn.BindFramebuffer(glFramebuffer, rp.glFramebuffer)

	msaa := colors[0].glMSAARenderbuffer != 0
	for i, t := range colors {
		if t == nil {
			continue
		}
		att := desc.ColorAttachments[i]
		if msaa {
			fn.FramebufferRenderbuffer(glFramebuffer, glColorAttachment0+uint32(i), glRenderbuffer, t.glMSAARenderbuffer)
		} else {
			f.attachTexture(t, glColorAttachment0+uint32(i), att)
		}
	}
	if depth != nil && depth.glDepthRenderbuffer != 0 {
		fn.FramebufferRenderbuffer(glFramebuffer, glDepthAttachment, glRenderbuffer, depth.glDepthRenderbuffer)
		if depth.Attrs.DepthFormat.IsDepthStencil() {
			fn.FramebufferRenderbuffer(glFramebuffer, glStencilAttachment, glRenderbuffer, depth.glDepthRenderbuffer)
		}
	}
	if !f.checkFramebuffer(desc.Locator) {
		f.DestroyRenderPass(rp)
		return core.ResourceFailed
	}

	if msaa {
		for i, t := range colors {
			if t == nil {
				continue
			}
			rp.glResolveFramebuffer[i] = fn.GenFramebuffer()
			fn.BindFramebuffer(glFramebuffer, rp.glResolveFramebuffer[i])
			f.attachTexture(t, glColorAttachment0, desc.ColorAttachments[i])
			if !f.checkFramebuffer(desc.Locator) {
				f.DestroyRenderPass(rp)
				return core.ResourceFailed
			}
		}
	}
	return core.ResourceValid
}

func (f *Factory) attachTexture(t *Texture, attachment uint32, att core.AttachmentDesc) {
	switch t.Attrs.Type {
	case core.Texture2D:
		f.gl.FramebufferTexture2D(glFramebuffer, attachment, glTexture2D, t.GLTexture(), int32(att.MipLevel))
	case core.TextureCube:
		f.gl.FramebufferTexture2D(glFramebuffer, attachment, cubeFaceTarget(att.Slice), t.GLTexture(), int32(att.MipLevel))
	default:
		f.gl.FramebufferTextureLayer(glFramebuffer, attachment, t.GLTexture(), int32(att.MipLevel), int32(att.Slice))
	}
}

func (f *Factory) checkFramebuffer(locator string) bool {
	status := f.gl.CheckFramebufferStatus(glFramebuffer)
	if status == glFramebufferComplete {
		return true
	}
	var reason string
	switch status {
	case glFramebufferUndefined:
		reason = "undefined"
	case glFramebufferIncompleteAttach:
		reason = "incomplete attachment"
	case glFramebufferMissingAttach:
		reason = "missing attachment"
	case glFramebufferUnsupported:
		reason = "unsupported"
	case glFramebufferIncompleteSamples:
		reason = "incomplete multisample"
	default:
		reason = "unknown"
	}
	logger.Warn("gl: pass %q: framebuffer incomplete (%s, 0x%X)", locator, reason, status)
	return false
}

func (f *Factory) DestroyRenderPass(rp *RenderPass) {
	if rp.glFramebuffer != 0 {
		f.gl.DeleteFramebuffer(rp.glFramebuffer)
	}
	for _, fb := range rp.glResolveFramebuffer {
		if fb != 0 {
			f.gl.DeleteFramebuffer(fb)
		}
	}
	*rp = RenderPass{}
}
