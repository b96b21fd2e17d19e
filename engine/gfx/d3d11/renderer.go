package d3d11

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/scratch"
)

const noStencilRef = 0xFFFF

// Renderer records render commands on the immediate device context and
// caches the bound objects to skip redundant state changes. It is not safe
// for concurrent use.
type Renderer struct {
	dev  Device
	ctx  DeviceContext
	disp Display

	frameIndex int64

	rpValid        bool
	rpAttrs        core.DisplayAttrs
	curPass        *RenderPass
	curColors      [core.MaxNumColorAttachments]*Texture
	curPipeline    *Pipeline
	curShader      *Shader
	curPrimaryMesh *Mesh

	rtvs              [core.MaxNumColorAttachments]RenderTargetView
	numRTVs           int
	dsv               DepthStencilView
	rasterizerState   RasterizerState
	depthStencilState DepthStencilState
	stencilRef        uint32
	blendState        BlendState
	blendColor        mgl32.Vec4

	vertexBuffers [core.MaxNumInputMeshes]Buffer
	vertexStrides [core.MaxNumInputMeshes]uint32
	vertexOffsets [core.MaxNumInputMeshes]uint32
	indexBuffer   Buffer
	inputLayout   InputLayout
	topology      PrimitiveTopology

	vertexShader    VertexShader
	pixelShader     PixelShader
	constantBuffers [core.NumShaderStages][core.MaxNumUniformBlocksPerStage]Buffer

	vsSRVs     [core.MaxNumVertexTextures]ShaderResourceView
	vsSamplers [core.MaxNumVertexTextures]SamplerState
	psSRVs     [core.MaxNumFragmentTextures]ShaderResourceView
	psSamplers [core.MaxNumFragmentTextures]SamplerState
}

// NewRenderer sets up the renderer on the display's device.
func NewRenderer(disp Display) (*Renderer, error) {
	dev, ctx := disp.Device(), disp.DeviceContext()
	if dev == nil || ctx == nil {
		return nil, ErrNoDevice
	}
	r := &Renderer{dev: dev, ctx: ctx, disp: disp}
	r.resetCache()
	return r, nil
}

// Discard unbinds everything from the device context.
func (r *Renderer) Discard() {
	r.ctx.ClearState()
	r.resetCache()
}

func (r *Renderer) FrameIndex() int64 { return r.frameIndex }

func (r *Renderer) QueryFeature(f core.Feature) bool {
	switch f {
	case core.FeatureTextureCompressionDXT,
		core.FeatureTextureFloat,
		core.FeatureTextureHalfFloat,
		core.FeatureInstancing,
		core.FeatureOriginTopLeft,
		core.FeatureMSAARenderTargets,
		core.FeatureMultipleRenderTarget,
		core.FeaturePackedVertexFormat10_2,
		core.FeatureTexture3D,
		core.FeatureTextureArray:
		return true
	}
	return false
}

func (r *Renderer) PassAttrs() core.DisplayAttrs { return r.rpAttrs }

func (r *Renderer) resetCache() {
	r.rtvs = [core.MaxNumColorAttachments]RenderTargetView{}
	r.numRTVs = 0
	r.dsv = 0
	r.rasterizerState = 0
	r.depthStencilState = 0
	r.stencilRef = noStencilRef
	r.blendState = 0
	r.blendColor = mgl32.Vec4{}
	r.vertexBuffers = [core.MaxNumInputMeshes]Buffer{}
	r.vertexStrides = [core.MaxNumInputMeshes]uint32{}
	r.vertexOffsets = [core.MaxNumInputMeshes]uint32{}
	r.indexBuffer = 0
	r.inputLayout = 0
	r.topology = TopologyUndefined
	r.vertexShader = 0
	r.pixelShader = 0
	r.constantBuffers = [core.NumShaderStages][core.MaxNumUniformBlocksPerStage]Buffer{}
	r.vsSRVs = [core.MaxNumVertexTextures]ShaderResourceView{}
	r.vsSamplers = [core.MaxNumVertexTextures]SamplerState{}
	r.psSRVs = [core.MaxNumFragmentTextures]ShaderResourceView{}
	r.psSamplers = [core.MaxNumFragmentTextures]SamplerState{}
}

// ResetStateCache clears the device context state and forgets every cached
// binding.
func (r *Renderer) ResetStateCache() {
	r.ctx.ClearState()
	r.resetCache()
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
}

// CommitFrame ends the frame. Presenting the swap chain is up to the
// display.
func (r *Renderer) CommitFrame() {
	r.rpValid = false
	r.curPass = nil
	r.curColors = [core.MaxNumColorAttachments]*Texture{}
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
	r.frameIndex++
}

// ApplyViewPort sets the viewport in pixels of the current pass. D3D11
// measures from the top-left corner.
func (r *Renderer) ApplyViewPort(x, y, w, h int, originTopLeft bool) {
	if !originTopLeft {
		y = r.rpAttrs.FramebufferHeight - (y + h)
	}
	vp := [1]Viewport{{
		TopLeftX: float32(x),
		TopLeftY: float32(y),
		Width:    float32(w),
		Height:   float32(h),
		MaxDepth: 1,
	}}
	r.ctx.RSSetViewports(vp[:])
}

func (r *Renderer) ApplyScissorRect(x, y, w, h int, originTopLeft bool) {
	if !originTopLeft {
		y = r.rpAttrs.FramebufferHeight - (y + h)
	}
	rect := [1]Rect{{Left: int32(x), Top: int32(y), Right: int32(x + w), Bottom: int32(y + h)}}
	r.ctx.RSSetScissorRects(rect[:])
}

// BeginPass starts rendering into pass, or into the swap chain when pass
// is nil.
func (r *Renderer) BeginPass(pass *RenderPass, colors [core.MaxNumColorAttachments]*Texture, depth *Texture, action *core.PassAction) {
	// a render target may still be bound as shader input
	r.InvalidateTextureState()

	var rtvs [core.MaxNumColorAttachments]RenderTargetView
	n := 0
	var dsv DepthStencilView
	if pass == nil {
		r.rpAttrs = r.disp.DisplayAttrs()
		rtvs[0], n = r.disp.RenderTargetView(), 1
		dsv = r.disp.DepthStencilView()
	} else {
		if !logger.Assert(colors[0] != nil, "d3d11: pass without color attachment") {
			return
		}
		r.rpAttrs = core.DisplayAttrsFromTexture(colors[0].Attrs)
		for n < len(colors) && colors[n] != nil {
			rtvs[n] = pass.rtvs[n]
			n++
		}
		dsv = pass.dsv
	}
	r.rtvs, r.numRTVs, r.dsv = rtvs, n, dsv
	r.ctx.OMSetRenderTargets(rtvs[:n], dsv)

	r.curPass = pass
	r.curColors = colors
	r.rpValid = true
	r.ApplyViewPort(0, 0, r.rpAttrs.FramebufferWidth, r.rpAttrs.FramebufferHeight, true)

	for i := 0; i < n; i++ {
		if action.ClearsColor(i) && rtvs[i] != 0 {
			r.ctx.ClearRenderTargetView(rtvs[i], [4]float32(action.Color[i]))
		}
	}
	if action.ClearsDepthStencil() && dsv != 0 {
		r.ctx.ClearDepthStencilView(dsv, ClearDepth|ClearStencil, action.Depth, action.Stencil)
	}
}

// EndPass finishes the current pass, resolving multisampled attachments
// into their textures.
func (r *Renderer) EndPass() {
	if !logger.Assert(r.rpValid, "d3d11: EndPass outside of a pass") {
		return
	}
	if p := r.curPass; p != nil {
		for i, t := range r.curColors {
			if t == nil {
				break
			}
			if t.msaaTexture == 0 {
				continue
			}
			att := p.Desc.ColorAttachments[i]
			sub := CalcSubresource(att.MipLevel, att.Slice, t.Attrs.NumMipMaps)
			r.ctx.ResolveSubresource(Object(t.texture2D), sub, Object(t.msaaTexture), 0, t.colorFormat)
		}
	}
	r.curPass = nil
	r.curColors = [core.MaxNumColorAttachments]*Texture{}
	r.rpValid = false
}

// ApplyDrawState binds a pipeline and its input meshes. A nil mesh (still
// loading) cancels the following draws until the next ApplyDrawState.
func (r *Renderer) ApplyDrawState(pip *Pipeline, shd *Shader, meshes []*Mesh) {
	if !logger.Assert(pip != nil && shd != nil, "d3d11: ApplyDrawState without pipeline") {
		r.curPipeline = nil
		return
	}
	if !logger.Assert(len(meshes) > 0 && len(meshes) <= core.MaxNumInputMeshes, "d3d11: %d input meshes", len(meshes)) {
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

	ctx := r.ctx
	if pip.rasterizerState != r.rasterizerState {
		r.rasterizerState = pip.rasterizerState
		ctx.RSSetState(pip.rasterizerState)
	}
	ref := uint32(pip.Desc.DepthStencilState.StencilRef)
	if pip.depthStencilState != r.depthStencilState || ref != r.stencilRef {
		r.depthStencilState, r.stencilRef = pip.depthStencilState, ref
		ctx.OMSetDepthStencilState(pip.depthStencilState, ref)
	}
	if pip.blendState != r.blendState || pip.Desc.BlendColor != r.blendColor {
		r.blendState, r.blendColor = pip.blendState, pip.Desc.BlendColor
		ctx.OMSetBlendState(pip.blendState, [4]float32(pip.Desc.BlendColor), 0xFFFFFFFF)
	}

	var bufs [core.MaxNumInputMeshes]Buffer
	for i, m := range meshes {
		bufs[i] = m.vertexBuffer
	}
	if bufs != r.vertexBuffers || pip.vertexStrides != r.vertexStrides {
		r.vertexBuffers, r.vertexStrides = bufs, pip.vertexStrides
		ctx.IASetVertexBuffers(0, bufs[:], r.vertexStrides[:], r.vertexOffsets[:])
	}
	if pip.topology != r.topology {
		r.topology = pip.topology
		ctx.IASetPrimitiveTopology(pip.topology)
	}
	if ib := meshes[0].indexBuffer; ib != r.indexBuffer {
		r.indexBuffer = ib
		ctx.IASetIndexBuffer(ib, indexFormat(meshes[0].IndexBufferAttrs.Type), 0)
	}
	if pip.inputLayout != r.inputLayout {
		r.inputLayout = pip.inputLayout
		ctx.IASetInputLayout(pip.inputLayout)
	}

	if shd.vertexShader != r.vertexShader {
		r.vertexShader = shd.vertexShader
		ctx.VSSetShader(shd.vertexShader)
	}
	if shd.pixelShader != r.pixelShader {
		r.pixelShader = shd.pixelShader
		ctx.PSSetShader(shd.pixelShader)
	}
	for slot := 0; slot < core.MaxNumUniformBlocksPerStage; slot++ {
		if cb := shd.constantBuffers[core.StageVS][slot]; cb != r.constantBuffers[core.StageVS][slot] {
			r.constantBuffers[core.StageVS][slot] = cb
			ctx.VSSetConstantBuffers(uint32(slot), []Buffer{cb})
		}
		if cb := shd.constantBuffers[core.StageFS][slot]; cb != r.constantBuffers[core.StageFS][slot] {
			r.constantBuffers[core.StageFS][slot] = cb
			ctx.PSSetConstantBuffers(uint32(slot), []Buffer{cb})
		}
	}
}

func (r *Renderer) checkPassCompatible(pip *Pipeline) bool {
	bs := &pip.Desc.BlendState
	ok := logger.Assert(bs.ColorFormat == r.rpAttrs.ColorPixelFormat,
		"d3d11: pipeline color format %s does not match pass %s", bs.ColorFormat, r.rpAttrs.ColorPixelFormat)
	ok = ok && logger.Assert(bs.DepthFormat == r.rpAttrs.DepthPixelFormat,
		"d3d11: pipeline depth format %s does not match pass %s", bs.DepthFormat, r.rpAttrs.DepthPixelFormat)
	ok = ok && logger.Assert(pip.Desc.RasterizerState.SampleCount == r.rpAttrs.SampleCount,
		"d3d11: pipeline sample count %d does not match pass %d", pip.Desc.RasterizerState.SampleCount, r.rpAttrs.SampleCount)
	if ok && r.curPass != nil {
		ok = logger.Assert(bs.MRTCount == r.numRTVs, "d3d11: pipeline MRT count %d does not match %d pass attachments", bs.MRTCount, r.numRTVs)
	}
	return ok
}

// ApplyUniformBlock copies data into the constant buffer of the uniform
// block at stage/slot of the current shader.
func (r *Renderer) ApplyUniformBlock(stage core.ShaderStage, slot int, typeHash uint64, data []byte) {
	if r.curPipeline == nil {
		return
	}
	if !logger.Assert(len(data)%16 == 0, "d3d11: uniform block size %d not a multiple of 16", len(data)) {
		return
	}
	shd := r.curShader
	idx := shd.Desc.UniformBlockIndexByStageAndSlot(stage, slot)
	if !logger.Assert(idx >= 0, "d3d11: shader %q has no uniform block at %d/%d", shd.Desc.Locator, stage, slot) {
		return
	}
	ub := &shd.Desc.UniformBlocks[idx]
	// layout drift is only fatal in debug builds, release builds log and upload
	logger.Assert(ub.Layout.TypeHash == typeHash, "d3d11: uniform block %q type mismatch", ub.Name)
	if limit := scratch.RoundUp(ub.Layout.ByteSize(), 16); !logger.Assert(len(data) <= limit, "d3d11: uniform block %q too large (%d bytes)", ub.Name, len(data)) {
		data = data[:limit]
	}
	cb := shd.constantBuffers[stage][slot]
	if cb == 0 {
		return
	}
	r.ctx.UpdateSubresource(Object(cb), 0, data)
}

// ApplyTextures binds the views and samplers of one shader stage. A nil
// texture cancels the following draws.
func (r *Renderer) ApplyTextures(stage core.ShaderStage, textures []*Texture) {
	if r.curPipeline == nil {
		return
	}
	srvs, samplers := r.psSRVs[:], r.psSamplers[:]
	setSRVs, setSamplers := r.ctx.PSSetShaderResources, r.ctx.PSSetSamplers
	if stage == core.StageVS {
		srvs, samplers = r.vsSRVs[:], r.vsSamplers[:]
		setSRVs, setSamplers = r.ctx.VSSetShaderResources, r.ctx.VSSetSamplers
	}
	if !logger.Assert(len(textures) <= len(srvs), "d3d11: %d textures for stage %d", len(textures), stage) {
		return
	}
	for _, t := range textures {
		if t == nil {
			r.curPipeline = nil
			return
		}
	}
	for slot, t := range textures {
		if t.srv != srvs[slot] {
			srvs[slot] = t.srv
			setSRVs(uint32(slot), []ShaderResourceView{t.srv})
		}
		if t.sampler != samplers[slot] {
			samplers[slot] = t.sampler
			setSamplers(uint32(slot), []SamplerState{t.sampler})
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
	if !logger.Assert(r.rpValid, "d3d11: draw outside of a pass") {
		return false
	}
	base, num, inst := uint32(baseElement), uint32(numElements), uint32(numInstances)
	if r.curPrimaryMesh.IndexBufferAttrs.Type != core.IndexNone {
		if numInstances > 1 {
			r.ctx.DrawIndexedInstanced(num, inst, base, 0, 0)
		} else {
			r.ctx.DrawIndexed(num, base, 0)
		}
		return true
	}
	if numInstances > 1 {
		r.ctx.DrawInstanced(num, inst, base, 0)
	} else {
		r.ctx.Draw(num, base)
	}
	return true
}

// writeBuffer replaces the start of buf through a discard map.
func (r *Renderer) writeBuffer(buf Buffer, data []byte) {
	m, err := r.ctx.Map(Object(buf), 0, MapWriteDiscard)
	if err != nil {
		logger.Error("d3d11: mapping buffer failed: %v", err)
		return
	}
	copy(m.Data, data)
	r.ctx.Unmap(Object(buf), 0)
}

func (r *Renderer) UpdateVertices(msh *Mesh, data []byte) {
	if !logger.Assert(msh.VertexBufferAttrs.BufferUsage != core.UsageImmutable, "d3d11: update of immutable vertex buffer") ||
		!logger.Assert(len(data) <= msh.VertexBufferAttrs.ByteSize(), "d3d11: %d bytes exceed vertex buffer", len(data)) ||
		!logger.Assert(msh.vbUpdateFrameIndex != r.frameIndex, "d3d11: only one update per frame and buffer allowed") {
		return
	}
	msh.vbUpdateFrameIndex = r.frameIndex
	r.writeBuffer(msh.vertexBuffer, data)
}

func (r *Renderer) UpdateIndices(msh *Mesh, data []byte) {
	if !logger.Assert(msh.IndexBufferAttrs.BufferUsage != core.UsageImmutable, "d3d11: update of immutable index buffer") ||
		!logger.Assert(len(data) <= msh.IndexBufferAttrs.ByteSize(), "d3d11: %d bytes exceed index buffer", len(data)) ||
		!logger.Assert(msh.ibUpdateFrameIndex != r.frameIndex, "d3d11: only one update per frame and buffer allowed") {
		return
	}
	msh.ibUpdateFrameIndex = r.frameIndex
	r.writeBuffer(msh.indexBuffer, data)
}

// UpdateTexture replaces the mip chain of a dynamic uncompressed 2D
// texture, honoring the row pitch of the mapped memory.
func (r *Renderer) UpdateTexture(tex *Texture, data []byte, img core.ImageDataAttrs) {
	a := &tex.Attrs
	if !logger.Assert(a.Type == core.Texture2D && a.TextureUsage != core.UsageImmutable && !a.ColorFormat.IsCompressed(),
		"d3d11: texture %q cannot be updated", a.Locator) {
		return
	}
	if !logger.Assert(img.NumFaces == 1 && img.NumMipMaps <= a.NumMipMaps, "d3d11: update has %d faces, %d mips", img.NumFaces, img.NumMipMaps) {
		return
	}
	if !logger.Assert(tex.updateFrameIndex != r.frameIndex, "d3d11: only one update per frame and texture allowed") {
		return
	}
	tex.updateFrameIndex = r.frameIndex

	res := Object(tex.texture2D)
	for mip := 0; mip < img.NumMipMaps; mip++ {
		off, size := img.Offsets[0][mip], img.Sizes[0][mip]
		if !logger.Assert(off+size <= len(data), "d3d11: mip %d outside of update data", mip) {
			return
		}
		src := data[off : off+size]
		w, h := max(a.Width>>mip, 1), max(a.Height>>mip, 1)
		rowSize := core.RowPitch(a.ColorFormat, w)
		m, err := r.ctx.Map(res, uint32(mip), MapWriteDiscard)
		if err != nil {
			logger.Error("d3d11: mapping texture %q failed: %v", a.Locator, err)
			return
		}
		pitch := int(m.RowPitch)
		if pitch == 0 {
			pitch = rowSize
		}
		for y := 0; y < h && (y+1)*rowSize <= len(src); y++ {
			copy(m.Data[y*pitch:], src[y*rowSize:(y+1)*rowSize])
		}
		r.ctx.Unmap(res, uint32(mip))
	}
}

// InvalidateMeshState unbinds the vertex and index buffers and the input
// layout.
func (r *Renderer) InvalidateMeshState() {
	var bufs [core.MaxNumInputMeshes]Buffer
	r.ctx.IASetVertexBuffers(0, bufs[:], r.vertexStrides[:], r.vertexOffsets[:])
	r.ctx.IASetIndexBuffer(0, FormatUnknown, 0)
	r.ctx.IASetInputLayout(0)
	r.ctx.IASetPrimitiveTopology(TopologyUndefined)
	r.vertexBuffers = bufs
	r.vertexStrides = [core.MaxNumInputMeshes]uint32{}
	r.indexBuffer = 0
	r.inputLayout = 0
	r.topology = TopologyUndefined
}

// InvalidateShaderState unbinds the shaders and constant buffers.
func (r *Renderer) InvalidateShaderState() {
	r.ctx.VSSetShader(0)
	r.ctx.PSSetShader(0)
	var cbs [core.MaxNumUniformBlocksPerStage]Buffer
	r.ctx.VSSetConstantBuffers(0, cbs[:])
	r.ctx.PSSetConstantBuffers(0, cbs[:])
	r.vertexShader = 0
	r.pixelShader = 0
	r.constantBuffers = [core.NumShaderStages][core.MaxNumUniformBlocksPerStage]Buffer{}
}

// InvalidatePipelineState restores the default fixed-function state and
// forgets the current pipeline.
func (r *Renderer) InvalidatePipelineState() {
	r.ctx.OMSetBlendState(0, [4]float32{}, 0xFFFFFFFF)
	r.ctx.OMSetDepthStencilState(0, 0xFF)
	r.ctx.RSSetState(0)
	r.blendState = 0
	r.blendColor = mgl32.Vec4{}
	r.depthStencilState = 0
	r.stencilRef = noStencilRef
	r.rasterizerState = 0
	r.curPipeline = nil
	r.curShader = nil
	r.curPrimaryMesh = nil
}

// InvalidateTextureState unbinds all shader resource views and samplers.
func (r *Renderer) InvalidateTextureState() {
	r.ctx.VSSetShaderResources(0, make([]ShaderResourceView, core.MaxNumVertexTextures))
	r.ctx.VSSetSamplers(0, make([]SamplerState, core.MaxNumVertexTextures))
	r.ctx.PSSetShaderResources(0, make([]ShaderResourceView, core.MaxNumFragmentTextures))
	r.ctx.PSSetSamplers(0, make([]SamplerState, core.MaxNumFragmentTextures))
	r.vsSRVs = [core.MaxNumVertexTextures]ShaderResourceView{}
	r.vsSamplers = [core.MaxNumVertexTextures]SamplerState{}
	r.psSRVs = [core.MaxNumFragmentTextures]ShaderResourceView{}
	r.psSamplers = [core.MaxNumFragmentTextures]SamplerState{}
}
