package metal

import (
	"fmt"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/scratch"
)

const (
	// vertexBufferBase is the first buffer index used for vertex buffers.
	// Indices below it hold uniform blocks.
	vertexBufferBase = core.MaxNumUniformBlocksPerStage

	// uniformAlign is the buffer offset alignment Metal requires for
	// constant buffers on macOS.
	uniformAlign = 256

	defaultUniformBufferSize = 4 * 1024 * 1024
)

type Option func(*Renderer)

// WithUniformBufferSize sets the size of each per-frame uniform buffer.
func WithUniformBufferSize(n int) Option {
	return func(r *Renderer) { r.uniformBufferSize = n }
}

// Renderer records render commands into one encoder per pass. Uniform
// data is appended to a per-frame buffer; with MaxInflightFrames buffers
// the CPU never writes a buffer the GPU still reads, provided the display
// blocks in Present while that many frames are in flight. It is not safe
// for concurrent use.
type Renderer struct {
	dev  Device
	disp Display

	frameIndex   int64
	releaseQueue releaseQueue

	uniformBufferSize int
	uniformBuffers    [core.MaxInflightFrames]Buffer
	uniformOffset     int

	encoder        RenderCommandEncoder
	rpValid        bool
	rpAttrs        core.DisplayAttrs
	curPass        *RenderPass
	numColors      int
	curPipeline    *Pipeline
	curShader      *Shader
	curPrimaryMesh *Mesh

	// encoder state cache, reset with every new encoder
	boundPipeline *Pipeline
	vertexBuffers [core.MaxNumInputMeshes]Buffer
	vsTextures    [core.MaxNumVertexTextures]TextureObject
	vsSamplers    [core.MaxNumVertexTextures]SamplerState
	fsTextures    [core.MaxNumFragmentTextures]TextureObject
	fsSamplers    [core.MaxNumFragmentTextures]SamplerState
}

// NewRenderer sets up the renderer on the display's device and allocates
// the uniform buffers.
func NewRenderer(disp Display, opts ...Option) (*Renderer, error) {
	dev := disp.Device()
	if dev == nil {
		return nil, ErrNoDevice
	}
	r := &Renderer{dev: dev, disp: disp, uniformBufferSize: defaultUniformBufferSize}
	for _, opt := range opts {
		opt(r)
	}
	for i := range r.uniformBuffers {
		buf, err := dev.NewBuffer(nil, r.uniformBufferSize, ResourceCPUCacheModeWriteCombined)
		if err != nil {
			r.Discard()
			return nil, fmt.Errorf("metal: creating uniform buffer: %w", err)
		}
		r.uniformBuffers[i] = buf
	}
	r.resetCache()
	return r, nil
}

// Discard ends an open pass and releases the uniform buffers and every
// queued object right away.
func (r *Renderer) Discard() {
	if r.encoder != nil {
		r.encoder.EndEncoding()
		r.encoder = nil
	}
	r.releaseQueue.releaseAll(r.dev)
	for i, buf := range r.uniformBuffers {
		if buf != 0 {
			r.dev.Release(Object(buf))
			r.uniformBuffers[i] = 0
		}
	}
}

func (r *Renderer) FrameIndex() int64 { return r.frameIndex }

// release queues obj for release once the current frame has completed.
func (r *Renderer) release(obj Object) {
	r.releaseQueue.push(r.frameIndex, obj)
}

func (r *Renderer) QueryFeature(f core.Feature) bool {
	switch f {
	case core.FeatureOriginTopLeft,
		core.FeatureInstancing,
		core.FeatureTextureFloat,
		core.FeatureTextureHalfFloat,
		core.FeatureMSAARenderTargets,
		core.FeatureMultipleRenderTarget,
		core.FeaturePackedVertexFormat10_2,
		core.FeatureTexture3D,
		core.FeatureTextureArray:
		return true
	case core.FeatureTextureCompressionDXT:
		return r.dev.SupportsFamily(GPUFamilyMac2)
	case core.FeatureTextureCompressionPVRTC, core.FeatureTextureCompressionETC2:
		return r.dev.SupportsFamily(GPUFamilyApple1)
	}
	return false
}

func (r *Renderer) PassAttrs() core.DisplayAttrs { return r.rpAttrs }

func (r *Renderer) resetCache() {
	r.boundPipeline = nil
	r.vertexBuffers = [core.MaxNumInputMeshes]Buffer{}
	r.vsTextures = [core.MaxNumVertexTextures]TextureObject{}
	r.vsSamplers = [core.MaxNumVertexTextures]SamplerState{}
	r.fsTextures = [core.MaxNumFragmentTextures]TextureObject{}
	r.fsSamplers = [core.MaxNumFragmentTextures]SamplerState{}
}

// ResetStateCache forgets every cached binding. The next commands set
// their state again.
func (r *Renderer) ResetStateCache() {
	r.resetCache()
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
}

// CommitFrame ends the frame and releases objects no frame in flight can
// reference anymore. Committing the command buffer is up to the display.
func (r *Renderer) CommitFrame() {
	if r.encoder != nil {
		r.encoder.EndEncoding()
		r.encoder = nil
	}
	r.rpValid = false
	r.curPass = nil
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
	r.frameIndex++
	r.uniformOffset = 0
	r.releaseQueue.collect(r.dev, r.frameIndex, core.MaxInflightFrames)
}

// ApplyViewPort sets the viewport in pixels of the current pass. Metal
// measures from the top-left corner.
func (r *Renderer) ApplyViewPort(x, y, w, h int, originTopLeft bool) {
	if r.encoder == nil {
		return
	}
	if !originTopLeft {
		y = r.rpAttrs.FramebufferHeight - (y + h)
	}
	r.encoder.SetViewport(Viewport{
		OriginX: float64(x),
		OriginY: float64(y),
		Width:   float64(w),
		Height:  float64(h),
		ZNear:   0,
		ZFar:    1,
	})
}

// ApplyScissorRect sets the scissor rect, clipped to the framebuffer since
// Metal rejects rects reaching outside of it.
func (r *Renderer) ApplyScissorRect(x, y, w, h int, originTopLeft bool) {
	if r.encoder == nil {
		return
	}
	if !originTopLeft {
		y = r.rpAttrs.FramebufferHeight - (y + h)
	}
	fbw, fbh := r.rpAttrs.FramebufferWidth, r.rpAttrs.FramebufferHeight
	x0, y0 := min(max(x, 0), fbw), min(max(y, 0), fbh)
	x1, y1 := min(max(x+w, x0), fbw), min(max(y+h, y0), fbh)
	r.encoder.SetScissorRect(ScissorRect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0})
}

// BeginPass starts a render encoder for pass, or for the current drawable
// when pass is nil. Without a drawable the pass is skipped: every command
// up to EndPass does nothing.
func (r *Renderer) BeginPass(pass *RenderPass, colors [core.MaxNumColorAttachments]*Texture, depth *Texture, action *core.PassAction) {
	var pd RenderPassDescriptor
	numColors, hasDepth, hasStencil := 0, false, false
	if pass == nil {
		r.rpAttrs = r.disp.DisplayAttrs()
		def := r.disp.DefaultPassDescriptor()
		if def != nil {
			pd = *def
			numColors = 1
			hasDepth = pd.DepthAttachment.Texture != 0
			hasStencil = pd.StencilAttachment.Texture != 0
		}
	} else {
		if !logger.Assert(colors[0] != nil, "metal: pass without color attachment") {
			return
		}
		r.rpAttrs = core.DisplayAttrsFromTexture(colors[0].Attrs)
		pd = pass.descriptor
		for numColors < len(colors) && colors[numColors] != nil {
			numColors++
		}
		hasDepth, hasStencil = pass.hasDepth, pass.hasStencil
	}
	r.curPass = pass
	r.numColors = numColors
	r.rpValid = true
	r.resetCache()
	if numColors == 0 {
		r.encoder = nil
		return
	}

	for i := 0; i < numColors; i++ {
		ca := &pd.ColorAttachments[i]
		switch {
		case action.ClearsColor(i):
			ca.LoadAction = LoadActionClear
			c := action.Color[i]
			ca.ClearColor = [4]float64{float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])}
		case action.LoadsColor(i):
			ca.LoadAction = LoadActionLoad
		default:
			ca.LoadAction = LoadActionDontCare
		}
	}
	dsLoad := LoadActionDontCare
	switch {
	case action.ClearsDepthStencil():
		dsLoad = LoadActionClear
	case action.LoadsDepthStencil():
		dsLoad = LoadActionLoad
	}
	if hasDepth {
		pd.DepthAttachment.LoadAction = dsLoad
		pd.DepthAttachment.ClearDepth = float64(action.Depth)
	}
	if hasStencil {
		pd.StencilAttachment.LoadAction = dsLoad
		pd.StencilAttachment.ClearStencil = uint32(action.Stencil)
	}
	r.encoder = r.disp.CommandBuffer().RenderCommandEncoder(&pd)
	r.ApplyViewPort(0, 0, r.rpAttrs.FramebufferWidth, r.rpAttrs.FramebufferHeight, true)
}

// EndPass ends the encoder of the current pass. Multisampled attachments
// resolve through their store action.
func (r *Renderer) EndPass() {
	if !logger.Assert(r.rpValid, "metal: EndPass outside of a pass") {
		return
	}
	if r.encoder != nil {
		r.encoder.EndEncoding()
		r.encoder = nil
	}
	r.curPass = nil
	r.curPipeline = nil
	r.rpValid = false
}

// ApplyDrawState binds a pipeline and its input meshes. A nil mesh (still
// loading) cancels the following draws until the next ApplyDrawState.
func (r *Renderer) ApplyDrawState(pip *Pipeline, shd *Shader, meshes []*Mesh) {
	if !logger.Assert(pip != nil && shd != nil, "metal: ApplyDrawState without pipeline") {
		r.curPipeline = nil
		return
	}
	if !logger.Assert(len(meshes) > 0 && len(meshes) <= core.MaxNumInputMeshes, "metal: %d input meshes", len(meshes)) {
		r.curPipeline = nil
		return
	}
	for _, m := range meshes {
		if m == nil {
			r.curPipeline = nil
			return
		}
	}
	if r.encoder == nil || !r.checkPassCompatible(pip) {
		r.curPipeline = nil
		return
	}
	r.curPipeline = pip
	r.curShader = shd
	r.curPrimaryMesh = meshes[0]

	enc := r.encoder
	if pip != r.boundPipeline {
		r.boundPipeline = pip
		d := &pip.Desc
		enc.SetRenderPipelineState(pip.pipelineState)
		enc.SetDepthStencilState(pip.depthStencilState)
		enc.SetStencilReferenceValue(uint32(d.DepthStencilState.StencilRef))
		enc.SetBlendColor(d.BlendColor[0], d.BlendColor[1], d.BlendColor[2], d.BlendColor[3])
		enc.SetCullMode(pip.cullMode)
		enc.SetFrontFacingWinding(pip.winding)
		rs := &d.RasterizerState
		enc.SetDepthBias(rs.DepthBias, rs.DepthBiasSlopeScale, rs.DepthBiasClamp)
	}
	for i, m := range meshes {
		if buf := m.vertexBuffer(); buf != r.vertexBuffers[i] {
			r.vertexBuffers[i] = buf
			enc.SetVertexBuffer(buf, 0, vertexBufferBase+i)
		}
	}
}

func (r *Renderer) checkPassCompatible(pip *Pipeline) bool {
	bs := &pip.Desc.BlendState
	ok := logger.Assert(bs.ColorFormat == r.rpAttrs.ColorPixelFormat,
		"metal: pipeline color format %s does not match pass %s", bs.ColorFormat, r.rpAttrs.ColorPixelFormat)
	ok = ok && logger.Assert(bs.DepthFormat == r.rpAttrs.DepthPixelFormat,
		"metal: pipeline depth format %s does not match pass %s", bs.DepthFormat, r.rpAttrs.DepthPixelFormat)
	ok = ok && logger.Assert(pip.Desc.RasterizerState.SampleCount == r.rpAttrs.SampleCount,
		"metal: pipeline sample count %d does not match pass %d", pip.Desc.RasterizerState.SampleCount, r.rpAttrs.SampleCount)
	if ok && r.curPass != nil {
		ok = logger.Assert(bs.MRTCount == r.numColors, "metal: pipeline MRT count %d does not match %d pass attachments", bs.MRTCount, r.numColors)
	}
	return ok
}

// ApplyUniformBlock appends data to this frame's uniform buffer and binds
// it at stage/slot.
func (r *Renderer) ApplyUniformBlock(stage core.ShaderStage, slot int, typeHash uint64, data []byte) {
	if r.curPipeline == nil {
		return
	}
	shd := r.curShader
	idx := shd.Desc.UniformBlockIndexByStageAndSlot(stage, slot)
	if !logger.Assert(idx >= 0, "metal: shader %q has no uniform block at %d/%d", shd.Desc.Locator, stage, slot) {
		return
	}
	ub := &shd.Desc.UniformBlocks[idx]
	// layout drift is only fatal in debug builds, release builds log and upload
	logger.Assert(ub.Layout.TypeHash == typeHash, "metal: uniform block %q type mismatch", ub.Name)
	if limit := scratch.RoundUp(ub.Layout.ByteSize(), 16); !logger.Assert(len(data) <= limit, "metal: uniform block %q too large (%d bytes)", ub.Name, len(data)) {
		data = data[:limit]
	}
	if !logger.Assert(r.uniformOffset+len(data) <= r.uniformBufferSize, "metal: uniform buffer exhausted (%d bytes)", r.uniformBufferSize) {
		return
	}
	buf := r.uniformBuffers[r.frameIndex%core.MaxInflightFrames]
	off := r.uniformOffset
	copy(r.dev.Contents(buf)[off:], data)
	r.uniformOffset = scratch.RoundUp(off+len(data), uniformAlign)

	if stage == core.StageVS {
		r.encoder.SetVertexBuffer(buf, off, slot)
	} else {
		r.encoder.SetFragmentBuffer(buf, off, slot)
	}
}

// ApplyTextures binds the textures and samplers of one shader stage. A nil
// texture cancels the following draws.
func (r *Renderer) ApplyTextures(stage core.ShaderStage, textures []*Texture) {
	if r.curPipeline == nil {
		return
	}
	texs, samplers := r.fsTextures[:], r.fsSamplers[:]
	setTexture, setSampler := r.encoder.SetFragmentTexture, r.encoder.SetFragmentSamplerState
	if stage == core.StageVS {
		texs, samplers = r.vsTextures[:], r.vsSamplers[:]
		setTexture, setSampler = r.encoder.SetVertexTexture, r.encoder.SetVertexSamplerState
	}
	if !logger.Assert(len(textures) <= len(texs), "metal: %d textures for stage %d", len(textures), stage) {
		return
	}
	for _, t := range textures {
		if t == nil {
			r.curPipeline = nil
			return
		}
	}
	for slot, t := range textures {
		if tex := t.texture(); tex != texs[slot] {
			texs[slot] = tex
			setTexture(tex, slot)
		}
		if t.sampler != samplers[slot] {
			samplers[slot] = t.sampler
			setSampler(t.sampler, slot)
		}
	}
}

// Draw renders a primitive group of the primary mesh. Out of range groups
// are skipped. It reports whether a draw call was issued.
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

func (r *Renderer) DrawElements(baseElement, numElements, numInstances int) bool {
	if r.curPipeline == nil {
		return false
	}
	if !logger.Assert(r.rpValid, "metal: draw outside of a pass") {
		return false
	}
	prim := r.curPipeline.primType
	inst := max(numInstances, 1)
	msh := r.curPrimaryMesh
	if it := msh.IndexBufferAttrs.Type; it != core.IndexNone {
		offset := baseElement * it.ByteSize()
		r.encoder.DrawIndexedPrimitives(prim, numElements, indexType(it), msh.indexBuffer(), offset, inst)
		return true
	}
	r.encoder.DrawPrimitives(prim, baseElement, numElements, inst)
	return true
}

// UpdateVertices writes data into the next vertex buffer slot of msh and
// makes it the active one.
func (r *Renderer) UpdateVertices(msh *Mesh, data []byte) {
	if !logger.Assert(msh.VertexBufferAttrs.BufferUsage != core.UsageImmutable, "metal: update of immutable vertex buffer") ||
		!logger.Assert(len(data) <= msh.VertexBufferAttrs.ByteSize(), "metal: %d bytes exceed vertex buffer", len(data)) ||
		!logger.Assert(msh.vbUpdateFrameIndex != r.frameIndex, "metal: only one update per frame and buffer allowed") {
		return
	}
	msh.vbUpdateFrameIndex = r.frameIndex
	msh.activeVertexSlot = (msh.activeVertexSlot + 1) % msh.numVertexSlots
	copy(r.dev.Contents(msh.vertexBuffer()), data)
}

func (r *Renderer) UpdateIndices(msh *Mesh, data []byte) {
	if !logger.Assert(msh.IndexBufferAttrs.BufferUsage != core.UsageImmutable, "metal: update of immutable index buffer") ||
		!logger.Assert(len(data) <= msh.IndexBufferAttrs.ByteSize(), "metal: %d bytes exceed index buffer", len(data)) ||
		!logger.Assert(msh.ibUpdateFrameIndex != r.frameIndex, "metal: only one update per frame and buffer allowed") {
		return
	}
	msh.ibUpdateFrameIndex = r.frameIndex
	msh.activeIndexSlot = (msh.activeIndexSlot + 1) % msh.numIndexSlots
	copy(r.dev.Contents(msh.indexBuffer()), data)
}

// UpdateTexture replaces the mip chain of a dynamic uncompressed 2D
// texture in its next slot.
func (r *Renderer) UpdateTexture(tex *Texture, data []byte, img core.ImageDataAttrs) {
	a := &tex.Attrs
	if !logger.Assert(a.Type == core.Texture2D && a.TextureUsage != core.UsageImmutable && !a.ColorFormat.IsCompressed(),
		"metal: texture %q cannot be updated", a.Locator) {
		return
	}
	if !logger.Assert(img.NumFaces == 1 && img.NumMipMaps <= a.NumMipMaps, "metal: update has %d faces, %d mips", img.NumFaces, img.NumMipMaps) {
		return
	}
	if !logger.Assert(tex.updateFrameIndex != r.frameIndex, "metal: only one update per frame and texture allowed") {
		return
	}
	tex.updateFrameIndex = r.frameIndex
	tex.activeSlot = (tex.activeSlot + 1) % tex.numSlots

	t := tex.texture()
	for mip := 0; mip < img.NumMipMaps; mip++ {
		off, size := img.Offsets[0][mip], img.Sizes[0][mip]
		if !logger.Assert(off+size <= len(data), "metal: mip %d outside of update data", mip) {
			return
		}
		w, h := max(a.Width>>mip, 1), max(a.Height>>mip, 1)
		r.dev.ReplaceRegion(t, Region{Width: w, Height: h, Depth: 1}, mip, 0, data[off:off+size], core.RowPitch(a.ColorFormat, w), 0)
	}
}

// The Invalidate methods only drop cached bindings: encoder state does not
// outlive the encoder, and destroyed objects stay alive in the release
// queue until no frame uses them.

func (r *Renderer) InvalidateMeshState() {
	r.vertexBuffers = [core.MaxNumInputMeshes]Buffer{}
}

func (r *Renderer) InvalidateShaderState() {
	r.boundPipeline = nil
	r.curPipeline = nil
	r.curShader = nil
}

func (r *Renderer) InvalidatePipelineState() {
	r.boundPipeline = nil
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
}

func (r *Renderer) InvalidateTextureState() {
	r.vsTextures = [core.MaxNumVertexTextures]TextureObject{}
	r.vsSamplers = [core.MaxNumVertexTextures]SamplerState{}
	r.fsTextures = [core.MaxNumFragmentTextures]TextureObject{}
	r.fsSamplers = [core.MaxNumFragmentTextures]SamplerState{}
}
