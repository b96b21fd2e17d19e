package glbackend

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/scratch"
)

const maxTextureUnits = core.MaxNumVertexTextures + core.MaxNumFragmentTextures

// Renderer executes render commands on the current GL context and mirrors
// the bound GL state to skip redundant calls. It is not safe for concurrent
// use; every call must come from the thread owning the context.
type Renderer struct {
	gl   Functions
	disp Display
	caps *Caps

	frameIndex int64
	vao        uint32

	rpValid        bool
	rpAttrs        core.DisplayAttrs
	curPass        *RenderPass
	curColors      [core.MaxNumColorAttachments]*Texture
	curDepth       *Texture
	curPipeline    *Pipeline
	curShader      *Shader
	curPrimaryMesh *Mesh

	depthStencil core.DepthStencilState
	blend        core.BlendState
	blendColor   mgl32.Vec4
	raster       core.RasterizerState
	viewport     [4]int32
	scissor      [4]int32

	program        uint32
	vertexBuffer   uint32
	indexBuffer    uint32
	attrs          [core.NumVertexAttrs]vertexAttr
	attrVBs        [core.NumVertexAttrs]uint32
	textures       [maxTextureUnits]uint32
	textureTargets [maxTextureUnits]uint32

	uniforms []float32
}

// NewRenderer sets up the renderer on the display's GL context and puts
// the context into a known default state.
func NewRenderer(disp Display) (*Renderer, error) {
	fn := disp.GL()
	if fn == nil {
		return nil, ErrNoContext
	}
	r := &Renderer{gl: fn, disp: disp}
	r.caps = queryCaps(fn)

	r.vao = fn.GenVertexArray()
	fn.BindVertexArray(r.vao)
	fn.Enable(glProgramPointSize)

	r.setupDepthStencilState()
	r.setupBlendState()
	r.setupRasterizerState()
	r.InvalidateMeshState()
	return r, nil
}

// Discard releases the renderer's own GL objects.
func (r *Renderer) Discard() {
	r.InvalidateMeshState()
	r.InvalidateShaderState()
	r.InvalidateTextureState()
	if r.vao != 0 {
		r.gl.BindVertexArray(0)
		r.gl.DeleteVertexArray(r.vao)
		r.vao = 0
	}
}

func (r *Renderer) Caps() *Caps          { return r.caps }
func (r *Renderer) FrameIndex() int64    { return r.frameIndex }
func (r *Renderer) Functions() Functions { return r.gl }

// QueryFeature reports whether the context supports f.
func (r *Renderer) QueryFeature(f core.Feature) bool {
	switch f {
	case core.FeatureOriginBottomLeft, core.FeatureNativeTexture:
		return true
	case core.FeatureOriginTopLeft:
		return false
	}
	return r.caps.HasFeature(f)
}

// PassAttrs describes the render target of the current pass.
func (r *Renderer) PassAttrs() core.DisplayAttrs { return r.rpAttrs }

// ResetStateCache forces the context back into the default state and
// forgets every cached binding.
func (r *Renderer) ResetStateCache() {
	r.gl.BindVertexArray(r.vao)
	r.setupDepthStencilState()
	r.setupBlendState()
	r.setupRasterizerState()
	r.InvalidateMeshState()
	r.InvalidateShaderState()
	r.InvalidateTextureState()
	r.viewport = [4]int32{}
	r.scissor = [4]int32{}
}

// CommitFrame ends the frame. Presenting is up to the display.
func (r *Renderer) CommitFrame() {
	r.rpValid = false
	r.curPass = nil
	r.curColors = [core.MaxNumColorAttachments]*Texture{}
	r.curDepth = nil
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
	r.frameIndex++
}

// ApplyViewPort sets the viewport in pixels of the current pass.
func (r *Renderer) ApplyViewPort(x, y, w, h int, originTopLeft bool) {
	if originTopLeft {
		y = r.rpAttrs.FramebufferHeight - (y + h)
	}
	vp := [4]int32{int32(x), int32(y), int32(w), int32(h)}
	if vp != r.viewport {
		r.viewport = vp
		r.gl.Viewport(vp[0], vp[1], vp[2], vp[3])
	}
}

// ApplyScissorRect sets the scissor rectangle; it only has an effect with
// pipelines that enable the scissor test.
func (r *Renderer) ApplyScissorRect(x, y, w, h int, originTopLeft bool) {
	if originTopLeft {
		y = r.rpAttrs.FramebufferHeight - (y + h)
	}
	sc := [4]int32{int32(x), int32(y), int32(w), int32(h)}
	if sc != r.scissor {
		r.scissor = sc
		r.gl.Scissor(sc[0], sc[1], sc[2], sc[3])
	}
}

// BeginPass starts rendering into pass, or into the default framebuffer
// when pass is nil. colors and depth are the pass attachments resolved by
// the caller.
func (r *Renderer) BeginPass(pass *RenderPass, colors [core.MaxNumColorAttachments]*Texture, depth *Texture, action *core.PassAction) {
	fn := r.gl
	if pass == nil {
		r.rpAttrs = r.disp.DisplayAttrs()
		r.disp.BindDefaultFramebuffer()
	} else {
		if !logger.Assert(colors[0] != nil, "gl: pass without color attachment") {
			return
		}
		r.rpAttrs = core.DisplayAttrsFromTexture(colors[0].Attrs)
		fn.BindFramebuffer(glFramebuffer, pass.glFramebuffer)
		var bufs [core.MaxNumColorAttachments]uint32
		n := 0
		for n < len(colors) && colors[n] != nil {
			bufs[n] = glColorAttachment0 + uint32(n)
			n++
		}
		fn.DrawBuffers(bufs[:n])
	}
	r.curPass = pass
	r.curColors = colors
	r.curDepth = depth
	r.rpValid = true

	r.ApplyViewPort(0, 0, r.rpAttrs.FramebufferWidth, r.rpAttrs.FramebufferHeight, false)

	// clears obey the write masks and scissor
	if r.raster.ScissorTestEnabled {
		r.raster.ScissorTestEnabled = false
		fn.Disable(glScissorTest)
	}
	if r.blend.ColorWriteMask != core.ChannelRGBA {
		r.blend.ColorWriteMask = core.ChannelRGBA
		fn.ColorMask(true, true, true, true)
	}
	if !r.depthStencil.DepthWriteEnabled {
		r.depthStencil.DepthWriteEnabled = true
		fn.DepthMask(true)
	}
	if r.depthStencil.StencilWriteMask != 0xFF {
		r.depthStencil.StencilWriteMask = 0xFF
		fn.StencilMask(0xFF)
	}

	if pass == nil {
		var mask uint32
		if action.ClearsColor(0) {
			c := action.Color[0]
			fn.ClearColor(c[0], c[1], c[2], c[3])
			mask |= glColorBufferBit
		}
		if action.ClearsDepthStencil() {
			fn.ClearDepth(float64(action.Depth))
			fn.ClearStencil(int32(action.Stencil))
			mask |= glDepthBufferBit | glStencilBufferBit
		}
		if mask != 0 {
			fn.Clear(mask)
		}
		return
	}
	for i, t := range colors {
		if t != nil && action.ClearsColor(i) {
			fn.ClearBufferfv(glColor, int32(i), [4]float32(action.Color[i]))
		}
	}
	if depth != nil && action.ClearsDepthStencil() {
		fn.ClearBufferfi(glDepthStencil, 0, action.Depth, int32(action.Stencil))
	}
}

// EndPass finishes the current pass, resolving multisampled attachments
// into their textures.
func (r *Renderer) EndPass() {
	if !logger.Assert(r.rpValid, "gl: EndPass outside of a pass") {
		return
	}
	fn := r.gl
	if p := r.curPass; p != nil && r.curColors[0] != nil && r.curColors[0].glMSAARenderbuffer != 0 {
		fn.BindFramebuffer(glReadFramebuffer, p.glFramebuffer)
		w, h := int32(r.rpAttrs.FramebufferWidth), int32(r.rpAttrs.FramebufferHeight)
		drawBuf := [1]uint32{glColorAttachment0}
		for i, t := range r.curColors {
			if t == nil {
				break
			}
			fn.BindFramebuffer(glDrawFramebuffer, p.glResolveFramebuffer[i])
			fn.ReadBuffer(glColorAttachment0 + uint32(i))
			fn.DrawBuffers(drawBuf[:])
			fn.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, glColorBufferBit, glNearest)
		}
	}
	r.disp.BindDefaultFramebuffer()
	r.curPass = nil
	r.curColors = [core.MaxNumColorAttachments]*Texture{}
	r.curDepth = nil
	r.rpValid = false
}

// ApplyDrawState binds a pipeline and its input meshes. A nil mesh (still
// loading) cancels the following draws until the next ApplyDrawState.
func (r *Renderer) ApplyDrawState(pip *Pipeline, shd *Shader, meshes []*Mesh) {
	if !logger.Assert(pip != nil && shd != nil, "gl: ApplyDrawState without pipeline") {
		r.curPipeline = nil
		return
	}
	if !logger.Assert(len(meshes) > 0 && len(meshes) <= core.MaxNumInputMeshes, "gl: %d input meshes", len(meshes)) {
		r.curPipeline = nil
		return
	}
	for _, m := range meshes {
		if m == nil {
			r.curPipeline = nil
			return
		}
	}
	if !r.checkPassCompatible(pip) {
		r.curPipeline = nil
		return
	}

	r.curPipeline = pip
	r.curShader = shd
	r.curPrimaryMesh = meshes[0]

	r.applyDepthStencilState(&pip.Desc.DepthStencilState)
	r.applyBlendState(&pip.Desc.BlendState)
	if pip.Desc.BlendColor != r.blendColor {
		c := pip.Desc.BlendColor
		r.blendColor = c
		r.gl.BlendColor(c[0], c[1], c[2], c[3])
	}
	r.applyRasterizerState(&pip.Desc.RasterizerState)

	r.useProgram(shd.glProgram)
	r.bindIndexBuffer(meshes[0].buffers[ib].active())

	fn := r.gl
	for i := range pip.glAttrs {
		attr := &pip.glAttrs[i]
		cur := &r.attrs[i]
		var buf uint32
		if attr.enabled {
			if !logger.Assert(attr.vbIndex < len(meshes), "gl: attribute %d reads missing mesh %d", i, attr.vbIndex) {
				r.curPipeline = nil
				return
			}
			buf = meshes[attr.vbIndex].buffers[vb].active()
		}
		if *cur == *attr && r.attrVBs[i] == buf {
			continue
		}
		if attr.enabled {
			r.bindVertexBuffer(buf)
			fn.VertexAttribPointer(attr.index, attr.size, attr.xtype, attr.normalized, attr.stride, attr.offset)
			if !cur.enabled {
				fn.EnableVertexAttribArray(attr.index)
			}
		} else if cur.enabled {
			fn.DisableVertexAttribArray(attr.index)
		}
		if cur.divisor != attr.divisor {
			fn.VertexAttribDivisor(attr.index, attr.divisor)
		}
		*cur = *attr
		r.attrVBs[i] = buf
	}
}

func (r *Renderer) checkPassCompatible(pip *Pipeline) bool {
	bs := &pip.Desc.BlendState
	ok := logger.Assert(bs.ColorFormat == r.rpAttrs.ColorPixelFormat,
		"gl: pipeline color format %s does not match pass %s", bs.ColorFormat, r.rpAttrs.ColorPixelFormat)
	ok = ok && logger.Assert(bs.DepthFormat == r.rpAttrs.DepthPixelFormat,
		"gl: pipeline depth format %s does not match pass %s", bs.DepthFormat, r.rpAttrs.DepthPixelFormat)
	ok = ok && logger.Assert(pip.Desc.RasterizerState.SampleCount == r.rpAttrs.SampleCount,
		"gl: pipeline sample count %d does not match pass %d", pip.Desc.RasterizerState.SampleCount, r.rpAttrs.SampleCount)
	if ok && r.curPass != nil {
		n := 0
		for n < len(r.curColors) && r.curColors[n] != nil {
			n++
		}
		ok = logger.Assert(bs.MRTCount == n, "gl: pipeline MRT count %d does not match %d pass attachments", bs.MRTCount, n)
	}
	return ok
}

// ApplyUniformBlock uploads a uniform block of the current shader. data
// must be a multiple of 16 bytes.
func (r *Renderer) ApplyUniformBlock(stage core.ShaderStage, slot int, typeHash uint64, data []byte) {
	if r.curPipeline == nil {
		return
	}
	if !logger.Assert(len(data)%16 == 0, "gl: uniform block size %d not a multiple of 16", len(data)) {
		return
	}
	shd := r.curShader
	idx := shd.Desc.UniformBlockIndexByStageAndSlot(stage, slot)
	if !logger.Assert(idx >= 0, "gl: shader %q has no uniform block at %d/%d", shd.Desc.Locator, stage, slot) {
		return
	}
	ub := &shd.Desc.UniformBlocks[idx]
	// layout drift is only fatal in debug builds, release builds log and upload
	logger.Assert(ub.Layout.TypeHash == typeHash, "gl: uniform block %q type mismatch", ub.Name)
	if limit := scratch.RoundUp(ub.Layout.ByteSize(), 16); !logger.Assert(len(data) <= limit, "gl: uniform block %q too large (%d bytes)", ub.Name, len(data)) {
		data = data[:limit]
	}
	loc := shd.uniformBlocks[stage][slot]
	if loc == -1 {
		return
	}
	r.uniforms = scratch.Float32sFrom(r.uniforms, data)
	r.gl.Uniform4fv(loc, r.uniforms)
}

// ApplyTextures binds the textures of one shader stage. A nil texture
// cancels the following draws.
func (r *Renderer) ApplyTextures(stage core.ShaderStage, textures []*Texture) {
	if r.curPipeline == nil {
		return
	}
	maxSlots := core.MaxNumVertexTextures
	if stage == core.StageFS {
		maxSlots = core.MaxNumFragmentTextures
	}
	if !logger.Assert(len(textures) <= maxSlots, "gl: %d textures for stage %d", len(textures), stage) {
		return
	}
	for _, t := range textures {
		if t == nil {
			r.curPipeline = nil
			return
		}
	}
	for slot, t := range textures {
		unit := r.curShader.samplers[samplerIndex(stage, slot)]
		if unit == -1 {
			continue
		}
		r.bindTexture(int(unit), t.glTarget, t.GLTexture())
	}
}

// Draw renders a primitive group of the primary mesh. Out of range groups
// are skipped; placeholder meshes may have fewer groups. It reports whether
// a draw call was issued.
func (r *Renderer) Draw(primGroupIndex, numInstances int) bool {
	if r.curPipeline == nil {
		return false
	}
	msh := r.curPrimaryMesh
	if primGroupIndex < 0 || primGroupIndex >= msh.NumPrimGroups() {
		return false
	}
	g := msh.PrimGroups[primGroupIndex]
	return r.DrawElements(g.BaseElement, g.NumElements, numInstances)
}

// DrawElements renders numElements elements starting at baseElement,
// indexed if the primary mesh has indices and instanced if numInstances > 1.
func (r *Renderer) DrawElements(baseElement, numElements, numInstances int) bool {
	if r.curPipeline == nil {
		return false
	}
	if !logger.Assert(r.rpValid, "gl: draw outside of a pass") {
		return false
	}
	fn := r.gl
	prim := r.curPipeline.glPrimType
	it := r.curPrimaryMesh.IndexBufferAttrs.Type
	if it != core.IndexNone {
		offset := baseElement * it.ByteSize()
		if numInstances > 1 {
			fn.DrawElementsInstanced(prim, int32(numElements), indexType(it), offset, int32(numInstances))
		} else {
			fn.DrawElements(prim, int32(numElements), indexType(it), offset)
		}
		return true
	}
	if numInstances > 1 {
		fn.DrawArraysInstanced(prim, int32(baseElement), int32(numElements), int32(numInstances))
	} else {
		fn.DrawArrays(prim, int32(baseElement), int32(numElements))
	}
	return true
}

// obtainUpdate claims buf for this frame's single update and rotates to the
// next GL buffer.
func (r *Renderer) obtainUpdate(buf *meshBuffer) bool {
	if !logger.Assert(buf.updateFrameIndex != r.frameIndex, "gl: only one update per frame and buffer allowed") {
		return false
	}
	buf.updateFrameIndex = r.frameIndex
	buf.activeSlot = (buf.activeSlot + 1) % buf.numSlots
	return true
}

// UpdateVertices overwrites the start of a dynamic vertex buffer.
func (r *Renderer) UpdateVertices(msh *Mesh, data []byte) {
	buf := &msh.buffers[vb]
	if !logger.Assert(msh.VertexBufferAttrs.BufferUsage != core.UsageImmutable, "gl: update of immutable vertex buffer") ||
		!logger.Assert(len(data) <= msh.VertexBufferAttrs.ByteSize(), "gl: %d bytes exceed vertex buffer", len(data)) {
		return
	}
	if !r.obtainUpdate(buf) {
		return
	}
	r.bindVertexBuffer(buf.active())
	r.gl.BufferSubData(glArrayBuffer, 0, data)
}

// UpdateIndices overwrites the start of a dynamic index buffer.
func (r *Renderer) UpdateIndices(msh *Mesh, data []byte) {
	buf := &msh.buffers[ib]
	if !logger.Assert(msh.IndexBufferAttrs.BufferUsage != core.UsageImmutable, "gl: update of immutable index buffer") ||
		!logger.Assert(len(data) <= msh.IndexBufferAttrs.ByteSize(), "gl: %d bytes exceed index buffer", len(data)) {
		return
	}
	if !r.obtainUpdate(buf) {
		return
	}
	r.bindIndexBuffer(buf.active())
	r.gl.BufferSubData(glElementArrayBuffer, 0, data)
}

// UpdateTexture replaces the mip chain of a dynamic uncompressed 2D texture.
func (r *Renderer) UpdateTexture(tex *Texture, data []byte, img core.ImageDataAttrs) {
	a := &tex.Attrs
	if !logger.Assert(a.Type == core.Texture2D && a.TextureUsage != core.UsageImmutable && !a.ColorFormat.IsCompressed(),
		"gl: texture %q cannot be updated", a.Locator) {
		return
	}
	if !logger.Assert(img.NumFaces == 1 && img.NumMipMaps <= a.NumMipMaps, "gl: update has %d faces, %d mips", img.NumFaces, img.NumMipMaps) {
		return
	}
	if !logger.Assert(tex.updateFrameIndex != r.frameIndex, "gl: only one update per frame and texture allowed") {
		return
	}
	tex.updateFrameIndex = r.frameIndex
	tex.activeSlot = (tex.activeSlot + 1) % tex.numSlots

	r.bindTexture(0, tex.glTarget, tex.GLTexture())
	format, xtype := texImageFormat(a.ColorFormat), texImageType(a.ColorFormat)
	for m := 0; m < img.NumMipMaps; m++ {
		w, h := max(a.Width>>m, 1), max(a.Height>>m, 1)
		off, size := img.Offsets[0][m], img.Sizes[0][m]
		if !logger.Assert(off+size <= len(data), "gl: mip %d outside of update data", m) {
			return
		}
		r.gl.TexSubImage2D(glTexture2D, int32(m), 0, 0, int32(w), int32(h), format, xtype, data[off:off+size])
	}
}

// InvalidateMeshState unbinds all buffers and disables every attribute.
func (r *Renderer) InvalidateMeshState() {
	fn := r.gl
	fn.BindBuffer(glArrayBuffer, 0)
	fn.BindBuffer(glElementArrayBuffer, 0)
	r.vertexBuffer = 0
	r.indexBuffer = 0
	for i := range r.attrs {
		fn.DisableVertexAttribArray(uint32(i))
		r.attrs[i] = vertexAttr{index: uint32(i)}
		r.attrVBs[i] = 0
	}
}

// InvalidateShaderState unbinds the program.
func (r *Renderer) InvalidateShaderState() {
	r.gl.UseProgram(0)
	r.program = 0
}

// InvalidatePipelineState puts the fixed-function state back to defaults
// and forgets the current pipeline.
func (r *Renderer) InvalidatePipelineState() {
	r.setupDepthStencilState()
	r.setupBlendState()
	r.setupRasterizerState()
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
}

// InvalidateTextureState forgets all texture bindings.
func (r *Renderer) InvalidateTextureState() {
	r.textures = [maxTextureUnits]uint32{}
	r.textureTargets = [maxTextureUnits]uint32{}
}

func (r *Renderer) useProgram(p uint32) {
	if p != r.program {
		r.program = p
		r.gl.UseProgram(p)
	}
}

func (r *Renderer) bindVertexBuffer(b uint32) {
	if b != r.vertexBuffer {
		r.vertexBuffer = b
		r.gl.BindBuffer(glArrayBuffer, b)
	}
}

func (r *Renderer) bindIndexBuffer(b uint32) {
	if b != r.indexBuffer {
		r.indexBuffer = b
		r.gl.BindBuffer(glElementArrayBuffer, b)
	}
}

func (r *Renderer) bindTexture(unit int, target, tex uint32) {
	if r.textures[unit] == tex && r.textureTargets[unit] == target {
		return
	}
	r.textures[unit] = tex
	r.textureTargets[unit] = target
	r.gl.ActiveTexture(glTexture0 + uint32(unit))
	r.gl.BindTexture(target, tex)
}

func (r *Renderer) setupDepthStencilState() {
	r.depthStencil = core.DefaultDepthStencilState()
	fn := r.gl
	fn.Enable(glDepthTest)
	fn.DepthFunc(glAlways)
	fn.DepthMask(false)
	fn.Disable(glStencilTest)
	fn.StencilFunc(glAlways, 0, 0xFFFFFFFF)
	fn.StencilOp(glKeep, glKeep, glKeep)
	fn.StencilMask(0xFFFFFFFF)
}

func (r *Renderer) setupBlendState() {
	r.blend = core.DefaultBlendState()
	r.blendColor = mgl32.Vec4{1, 1, 1, 1}
	fn := r.gl
	fn.Disable(glBlend)
	fn.BlendFuncSeparate(glOne, glZero, glOne, glZero)
	fn.BlendEquationSeparate(glFuncAdd, glFuncAdd)
	fn.ColorMask(true, true, true, true)
	fn.BlendColor(1, 1, 1, 1)
}

func (r *Renderer) setupRasterizerState() {
	r.raster = core.DefaultRasterizerState()
	fn := r.gl
	fn.Disable(glCullFace)
	fn.FrontFace(glCW)
	fn.CullFace(glBack)
	fn.Disable(glPolygonOffsetFill)
	fn.Disable(glSampleAlphaToCoverage)
	fn.Disable(glScissorTest)
	fn.Enable(glDither)
	fn.Enable(glMultisample)
}

func (r *Renderer) applyDepthStencilState(ds *core.DepthStencilState) {
	cur := &r.depthStencil
	if *cur == *ds {
		return
	}
	fn := r.gl
	if ds.DepthCmpFunc != cur.DepthCmpFunc {
		fn.DepthFunc(compareFuncTable[ds.DepthCmpFunc])
	}
	if ds.DepthWriteEnabled != cur.DepthWriteEnabled {
		fn.DepthMask(ds.DepthWriteEnabled)
	}
	if ds.StencilEnabled != cur.StencilEnabled {
		enable(fn, glStencilTest, ds.StencilEnabled)
	}
	r.applyStencilFace(glFront, ds, &ds.StencilFront, &cur.StencilFront)
	r.applyStencilFace(glBack, ds, &ds.StencilBack, &cur.StencilBack)
	*cur = *ds
}

func (r *Renderer) applyStencilFace(face uint32, ds *core.DepthStencilState, s, cur *core.StencilState) {
	old := &r.depthStencil
	fn := r.gl
	if s.CmpFunc != cur.CmpFunc || ds.StencilReadMask != old.StencilReadMask || ds.StencilRef != old.StencilRef {
		fn.StencilFuncSeparate(face, compareFuncTable[s.CmpFunc], int32(ds.StencilRef), uint32(ds.StencilReadMask))
	}
	if s.FailOp != cur.FailOp || s.DepthFailOp != cur.DepthFailOp || s.PassOp != cur.PassOp {
		fn.StencilOpSeparate(face, stencilOpTable[s.FailOp], stencilOpTable[s.DepthFailOp], stencilOpTable[s.PassOp])
	}
	if ds.StencilWriteMask != old.StencilWriteMask {
		fn.StencilMaskSeparate(face, uint32(ds.StencilWriteMask))
	}
}

func (r *Renderer) applyBlendState(bs *core.BlendState) {
	cur := &r.blend
	if *cur == *bs {
		return
	}
	fn := r.gl
	if bs.BlendEnabled != cur.BlendEnabled {
		enable(fn, glBlend, bs.BlendEnabled)
	}
	if bs.SrcFactorRGB != cur.SrcFactorRGB || bs.DstFactorRGB != cur.DstFactorRGB ||
		bs.SrcFactorAlpha != cur.SrcFactorAlpha || bs.DstFactorAlpha != cur.DstFactorAlpha {
		fn.BlendFuncSeparate(blendFactorTable[bs.SrcFactorRGB], blendFactorTable[bs.DstFactorRGB],
			blendFactorTable[bs.SrcFactorAlpha], blendFactorTable[bs.DstFactorAlpha])
	}
	if bs.OpRGB != cur.OpRGB || bs.OpAlpha != cur.OpAlpha {
		fn.BlendEquationSeparate(blendOpTable[bs.OpRGB], blendOpTable[bs.OpAlpha])
	}
	if bs.ColorWriteMask != cur.ColorWriteMask {
		m := bs.ColorWriteMask
		fn.ColorMask(m&core.ChannelRed != 0, m&core.ChannelGreen != 0, m&core.ChannelBlue != 0, m&core.ChannelAlpha != 0)
	}
	*cur = *bs
}

func (r *Renderer) applyRasterizerState(rs *core.RasterizerState) {
	cur := &r.raster
	if *cur == *rs {
		return
	}
	fn := r.gl
	if rs.CullFaceEnabled != cur.CullFaceEnabled {
		enable(fn, glCullFace, rs.CullFaceEnabled)
	}
	if rs.CullFace != cur.CullFace {
		fn.CullFace(cullFace(rs.CullFace))
	}
	if rs.ScissorTestEnabled != cur.ScissorTestEnabled {
		enable(fn, glScissorTest, rs.ScissorTestEnabled)
	}
	if rs.DitherEnabled != cur.DitherEnabled {
		enable(fn, glDither, rs.DitherEnabled)
	}
	if rs.AlphaToCoverageEnabled != cur.AlphaToCoverageEnabled {
		enable(fn, glSampleAlphaToCoverage, rs.AlphaToCoverageEnabled)
	}
	if rs.SampleCount != cur.SampleCount {
		enable(fn, glMultisample, rs.SampleCount > 1)
	}
	if rs.DepthBias != cur.DepthBias || rs.DepthBiasSlopeScale != cur.DepthBiasSlopeScale {
		biased := rs.DepthBias != 0 || rs.DepthBiasSlopeScale != 0
		if biased != (cur.DepthBias != 0 || cur.DepthBiasSlopeScale != 0) {
			enable(fn, glPolygonOffsetFill, biased)
		}
		if biased {
			fn.PolygonOffset(rs.DepthBiasSlopeScale, rs.DepthBias)
		}
	}
	*cur = *rs
}

func enable(fn Functions, capability uint32, on bool) {
	if on {
		fn.Enable(capability)
	} else {
		fn.Disable(capability)
	}
}
