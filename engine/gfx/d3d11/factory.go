package d3d11

import (
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/scratch"
)

// Factory creates and releases the D3D11 objects behind gfx resources.
type Factory struct {
	dev Device
	r   *Renderer

	// reused between texture creations
	subresources []SubresourceData
}

func NewFactory(r *Renderer) *Factory {
	return &Factory{dev: r.dev, r: r}
}

func (f *Factory) release(obj Object) {
	if obj != 0 {
		f.dev.Release(obj)
	}
}

func (f *Factory) fail(what, locator string, err error) core.ResourceState {
	logger.With(logger.Fields{"resource": locator, "error": err}).Warn("d3d11: creating %s failed", what)
	return core.ResourceFailed
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
	if !logger.Assert(len(desc.PrimGroups) <= core.MaxNumPrimGroups, "d3d11: mesh %q has %d primitive groups", desc.Locator, len(desc.PrimGroups)) {
		return core.ResourceFailed
	}
	msh.VertexBufferAttrs = core.VertexBufferAttrs{NumVertices: desc.NumVertices, Layout: desc.Layout, BufferUsage: desc.VertexUsage}
	msh.IndexBufferAttrs = core.IndexBufferAttrs{NumIndices: desc.NumIndices, Type: desc.IndexType, BufferUsage: desc.IndexUsage}
	msh.PrimGroups = append([]core.PrimitiveGroup(nil), desc.PrimGroups...)

	if desc.NumVertices > 0 {
		size := msh.VertexBufferAttrs.ByteSize()
		init, ok := bufferContent(data, desc.VertexDataOffset, size)
		if !logger.Assert(ok, "d3d11: mesh %q vertex data out of range", desc.Locator) {
			return core.ResourceFailed
		}
		buf, err := f.createBuffer(init, size, BindVertexBuffer, desc.VertexUsage)
		if err != nil {
			return f.fail("vertex buffer", desc.Locator, err)
		}
		msh.vertexBuffer = buf
	}
	if desc.IndexType != core.IndexNone {
		size := msh.IndexBufferAttrs.ByteSize()
		init, ok := bufferContent(data, desc.IndexDataOffset, size)
		if !logger.Assert(ok, "d3d11: mesh %q index data out of range", desc.Locator) {
			f.DestroyMesh(msh)
			return core.ResourceFailed
		}
		buf, err := f.createBuffer(init, size, BindIndexBuffer, desc.IndexUsage)
		if err != nil {
			f.DestroyMesh(msh)
			return f.fail("index buffer", desc.Locator, err)
		}
		msh.indexBuffer = buf
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

func (f *Factory) createBuffer(data []byte, size int, bind BindFlag, usage core.Usage) (Buffer, error) {
	desc := BufferDesc{
		ByteWidth:      uint32(size),
		Usage:          resourceUsage(usage),
		BindFlags:      bind,
		CPUAccessFlags: cpuAccess(usage),
	}
	return f.dev.CreateBuffer(&desc, data)
}

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

	var err error
	if msh.vertexBuffer, err = f.createBuffer(vertices, len(vertices), BindVertexBuffer, core.UsageImmutable); err != nil {
		return f.fail("vertex buffer", "full screen quad", err)
	}
	if msh.indexBuffer, err = f.createBuffer(indices, len(indices), BindIndexBuffer, core.UsageImmutable); err != nil {
		f.DestroyMesh(msh)
		return f.fail("index buffer", "full screen quad", err)
	}
	return core.ResourceValid
}

func (f *Factory) DestroyMesh(msh *Mesh) {
	f.r.InvalidateMeshState()
	f.release(Object(msh.vertexBuffer))
	f.release(Object(msh.indexBuffer))
	msh.reset(core.MeshDesc{})
}

// subresourceData locates every face/slice/mip surface of data in the
// order CreateTexture2D/3D expect them.
func (f *Factory) subresourceData(desc *core.TextureDesc, data []byte) ([]SubresourceData, bool) {
	if data == nil {
		return nil, true
	}
	img := &desc.ImageData
	if img.NumMipMaps != desc.NumMipMaps {
		return nil, false
	}
	numFaces, numSlices := 1, 1
	switch desc.Type {
	case core.TextureCube:
		numFaces = 6
	case core.TextureArray:
		numSlices = desc.Depth
	}
	sliceSize := len(data) / numSlices
	if sliceSize*numSlices != len(data) {
		return nil, false
	}
	subs := f.subresources[:0]
	for face := 0; face < numFaces; face++ {
		for slice := 0; slice < numSlices; slice++ {
			for mip := 0; mip < img.NumMipMaps; mip++ {
				off := slice*sliceSize + img.Offsets[face][mip]
				end := off + img.Sizes[face][mip]
				if end > len(data) {
					return nil, false
				}
				w, h := max(desc.Width>>mip, 1), max(desc.Height>>mip, 1)
				sub := SubresourceData{Data: data[off:end], RowPitch: uint32(core.RowPitch(desc.ColorFormat, w))}
				if desc.Type == core.Texture3D {
					sub.SlicePitch = uint32(core.ImagePitch(desc.ColorFormat, w, h))
				}
				subs = append(subs, sub)
			}
		}
	}
	f.subresources = subs
	return subs, true
}

func arraySize(desc *core.TextureDesc) uint32 {
	switch desc.Type {
	case core.TextureCube:
		return 6
	case core.TextureArray:
		return uint32(desc.Depth)
	}
	return 1
}

func srvDesc(desc *core.TextureDesc, format Format) ShaderResourceViewDesc {
	d := ShaderResourceViewDesc{Format: format, MipLevels: uint32(desc.NumMipMaps)}
	switch desc.Type {
	case core.TextureCube:
		d.Dimension = SRVDimensionTextureCube
	case core.Texture3D:
		d.Dimension = SRVDimensionTexture3D
	case core.TextureArray:
		d.Dimension = SRVDimensionTexture2DArray
		d.ArraySize = uint32(desc.Depth)
	default:
		d.Dimension = SRVDimensionTexture2D
	}
	return d
}

// InitTexture creates the texture, its view and sampler, and for render
// targets the MSAA and depth-stencil textures.
func (f *Factory) InitTexture(tex *Texture, desc core.TextureDesc, data []byte) core.ResourceState {
	tex.reset(desc)
	if desc.NativeTextures[0] != 0 {
		logger.Warn("d3d11: texture %q: native textures not supported", desc.Locator)
		return core.ResourceFailed
	}
	var format Format
	if desc.RenderTarget {
		format = renderTargetFormat(desc.ColorFormat)
		if !logger.Assert(format != FormatUnknown, "d3d11: %s is not a render target format", desc.ColorFormat) {
			return core.ResourceFailed
		}
	} else {
		format = textureFormat(desc.ColorFormat)
		if format == FormatUnknown {
			logger.Warn("d3d11: texture %q: pixel format %s not supported", desc.Locator, desc.ColorFormat)
			return core.ResourceFailed
		}
	}
	tex.colorFormat = format

	initial, ok := f.subresourceData(&desc, data)
	if !logger.Assert(ok, "d3d11: texture %q: image data does not match the texture", desc.Locator) {
		return core.ResourceFailed
	}

	usage, bind, access := resourceUsage(desc.Usage), BindShaderResource, cpuAccess(desc.Usage)
	if desc.RenderTarget {
		usage, bind, access = UsageDefault, BindShaderResource|BindRenderTarget, 0
	}
	var res Object
	if desc.Type == core.Texture3D {
		td := Texture3DDesc{
			Width:          uint32(desc.Width),
			Height:         uint32(desc.Height),
			Depth:          uint32(desc.Depth),
			MipLevels:      uint32(desc.NumMipMaps),
			Format:         format,
			Usage:          usage,
			BindFlags:      bind,
			CPUAccessFlags: access,
		}
		t, err := f.dev.CreateTexture3D(&td, initial)
		if err != nil {
			return f.fail("3D texture", desc.Locator, err)
		}
		tex.texture3D = t
		res = Object(t)
	} else {
		td := Texture2DDesc{
			Width:          uint32(desc.Width),
			Height:         uint32(desc.Height),
			MipLevels:      uint32(desc.NumMipMaps),
			ArraySize:      arraySize(&desc),
			Format:         format,
			SampleCount:    1,
			Usage:          usage,
			BindFlags:      bind,
			CPUAccessFlags: access,
		}
		if desc.Type == core.TextureCube {
			td.MiscFlags = ResourceMiscTextureCube
		}
		t, err := f.dev.CreateTexture2D(&td, initial)
		if err != nil {
			return f.fail("texture", desc.Locator, err)
		}
		tex.texture2D = t
		res = Object(t)

		if desc.RenderTarget && desc.SampleCount > 1 {
			td.SampleCount = uint32(desc.SampleCount)
			td.MipLevels = 1
			td.BindFlags = BindRenderTarget
			td.MiscFlags = 0
			if tex.msaaTexture, err = f.dev.CreateTexture2D(&td, nil); err != nil {
				f.DestroyTexture(tex)
				return f.fail("MSAA texture", desc.Locator, err)
			}
		}
	}

	sd := srvDesc(&desc, format)
	var err error
	if tex.srv, err = f.dev.CreateShaderResourceView(res, &sd); err != nil {
		f.DestroyTexture(tex)
		return f.fail("shader resource view", desc.Locator, err)
	}

	if desc.RenderTarget && desc.DepthFormat.IsValidRenderTargetDepthFormat() {
		dd := Texture2DDesc{
			Width:       uint32(desc.Width),
			Height:      uint32(desc.Height),
			MipLevels:   1,
			ArraySize:   1,
			Format:      renderTargetFormat(desc.DepthFormat),
			SampleCount: uint32(max(desc.SampleCount, 1)),
			Usage:       UsageDefault,
			BindFlags:   BindDepthStencil,
		}
		if tex.depthStencilTexture, err = f.dev.CreateTexture2D(&dd, nil); err != nil {
			f.DestroyTexture(tex)
			return f.fail("depth-stencil texture", desc.Locator, err)
		}
	}

	smp := SamplerDesc{
		Filter:         samplerFilter(desc.Sampler.MagFilter, desc.Sampler.MinFilter),
		AddressU:       addressMode(desc.Sampler.WrapU),
		AddressV:       addressMode(desc.Sampler.WrapV),
		AddressW:       addressMode(desc.Sampler.WrapW),
		MaxAnisotropy:  1,
		ComparisonFunc: ComparisonNever,
		BorderColor:    [4]float32{1, 1, 1, 1},
		MinLOD:         -float32Max,
		MaxLOD:         float32Max,
	}
	if tex.sampler, err = f.dev.CreateSamplerState(&smp); err != nil {
		f.DestroyTexture(tex)
		return f.fail("sampler state", desc.Locator, err)
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
		HasDepthBuffer: tex.depthStencilTexture != 0,
	}
	return core.ResourceValid
}

func (f *Factory) DestroyTexture(tex *Texture) {
	f.r.InvalidateTextureState()
	f.release(Object(tex.texture2D))
	f.release(Object(tex.texture3D))
	f.release(Object(tex.srv))
	f.release(Object(tex.sampler))
	f.release(Object(tex.depthStencilTexture))
	f.release(Object(tex.msaaTexture))
	tex.reset(core.TextureDesc{})
}

// InitShader creates the shaders from HLSL5 byte code and one constant
// buffer per uniform block.
func (f *Factory) InitShader(shd *Shader, desc core.ShaderDesc) core.ResourceState {
	shd.reset(desc)
	f.r.InvalidateShaderState()

	prog := desc.Programs[core.HLSL5]
	if len(prog.VSByteCode) == 0 || len(prog.FSByteCode) == 0 {
		logger.Warn("d3d11: shader %q has no %s byte code", desc.Locator, core.HLSL5)
		return core.ResourceFailed
	}
	var err error
	if shd.vertexShader, err = f.dev.CreateVertexShader(prog.VSByteCode); err != nil {
		return f.fail("vertex shader", desc.Locator, err)
	}
	if shd.pixelShader, err = f.dev.CreatePixelShader(prog.FSByteCode); err != nil {
		f.DestroyShader(shd)
		return f.fail("pixel shader", desc.Locator, err)
	}
	for _, ub := range desc.UniformBlocks {
		size := ub.Layout.ByteSize()
		if !logger.Assert(size > 0 && ub.Slot >= 0 && ub.Slot < core.MaxNumUniformBlocksPerStage,
			"d3d11: shader %q: invalid uniform block %q", desc.Locator, ub.Name) {
			f.DestroyShader(shd)
			return core.ResourceFailed
		}
		cb := BufferDesc{
			ByteWidth: uint32(scratch.RoundUp(size, 16)),
			Usage:     UsageDefault,
			BindFlags: BindConstantBuffer,
		}
		buf, err := f.dev.CreateBuffer(&cb, nil)
		if err != nil {
			f.DestroyShader(shd)
			return f.fail("constant buffer", desc.Locator, err)
		}
		shd.constantBuffers[ub.Stage][ub.Slot] = buf
	}
	return core.ResourceValid
}

func (f *Factory) DestroyShader(shd *Shader) {
	f.r.InvalidateShaderState()
	f.release(Object(shd.vertexShader))
	f.release(Object(shd.pixelShader))
	for stage := range shd.constantBuffers {
		for _, cb := range shd.constantBuffers[stage] {
			f.release(Object(cb))
		}
	}
	shd.reset(core.ShaderDesc{})
}

// InitPipeline builds the input layout from the non-empty layouts in slot
// order and creates the rasterizer, depth-stencil and blend state objects.
func (f *Factory) InitPipeline(pip *Pipeline, desc core.PipelineDesc, shd *Shader) core.ResourceState {
	*pip = Pipeline{Desc: desc, topology: primitiveTopology(desc.PrimType)}

	var elems [core.NumVertexAttrs]InputElementDesc
	var provided [core.NumVertexAttrs]bool
	n := 0
	for slot, layout := range desc.Layouts {
		pip.vertexStrides[slot] = uint32(layout.ByteSize())
		for ci, c := range layout.Components() {
			if !logger.Assert(!provided[c.Attr], "d3d11: pipeline %q: attribute %s in more than one layout", desc.Locator, c.Attr) {
				return core.ResourceFailed
			}
			provided[c.Attr] = true
			e := InputElementDesc{
				SemanticName:      semanticName,
				SemanticIndex:     uint32(c.Attr),
				Format:            inputElementFormatTable[c.Format],
				InputSlot:         uint32(slot),
				AlignedByteOffset: uint32(layout.ComponentByteOffset(ci)),
				InputSlotClass:    inputClassification(layout.StepFunction),
			}
			if layout.StepFunction == core.StepPerInstance {
				e.InstanceDataStepRate = uint32(layout.Rate())
			}
			elems[n] = e
			n++
		}
	}
	for _, c := range shd.Desc.Inputs.Components() {
		if !provided[c.Attr] {
			logger.Warn("d3d11: pipeline %q: shader input %s not provided by any vertex layout", desc.Locator, c.Attr)
			return core.ResourceFailed
		}
	}

	var err error
	vsCode := shd.Desc.Programs[core.HLSL5].VSByteCode
	if pip.inputLayout, err = f.dev.CreateInputLayout(elems[:n], vsCode); err != nil {
		return f.fail("input layout", desc.Locator, err)
	}

	rs := &desc.RasterizerState
	rd := RasterizerDesc{
		FillMode:             FillSolid,
		CullMode:             cullMode(rs.CullFaceEnabled, rs.CullFace),
		DepthBias:            int32(rs.DepthBias),
		DepthBiasClamp:       rs.DepthBiasClamp,
		SlopeScaledDepthBias: rs.DepthBiasSlopeScale,
		DepthClipEnable:      true,
		ScissorEnable:        rs.ScissorTestEnabled,
		MultisampleEnable:    rs.SampleCount > 1,
	}
	if pip.rasterizerState, err = f.dev.CreateRasterizerState(&rd); err != nil {
		f.DestroyPipeline(pip)
		return f.fail("rasterizer state", desc.Locator, err)
	}

	ds := &desc.DepthStencilState
	dd := DepthStencilDesc{
		DepthEnable:      true,
		DepthWriteMask:   DepthWriteMaskZero,
		DepthFunc:        compareFuncTable[ds.DepthCmpFunc],
		StencilEnable:    ds.StencilEnabled,
		StencilReadMask:  ds.StencilReadMask,
		StencilWriteMask: ds.StencilWriteMask,
		FrontFace:        stencilOpDesc(&ds.StencilFront),
		BackFace:         stencilOpDesc(&ds.StencilBack),
	}
	if ds.DepthWriteEnabled {
		dd.DepthWriteMask = DepthWriteMaskAll
	}
	if pip.depthStencilState, err = f.dev.CreateDepthStencilState(&dd); err != nil {
		f.DestroyPipeline(pip)
		return f.fail("depth-stencil state", desc.Locator, err)
	}

	bs := &desc.BlendState
	if !logger.Assert(bs.MRTCount <= core.MaxNumColorAttachments, "d3d11: pipeline %q: MRT count %d", desc.Locator, bs.MRTCount) {
		f.DestroyPipeline(pip)
		return core.ResourceFailed
	}
	bd := BlendDesc{AlphaToCoverageEnable: rs.AlphaToCoverageEnabled}
	bd.RenderTarget[0] = RenderTargetBlendDesc{
		BlendEnable:           bs.BlendEnabled,
		SrcBlend:              blendFactorTable[bs.SrcFactorRGB],
		DestBlend:             blendFactorTable[bs.DstFactorRGB],
		BlendOp:               blendOpTable[bs.OpRGB],
		SrcBlendAlpha:         blendFactorTable[bs.SrcFactorAlpha],
		DestBlendAlpha:        blendFactorTable[bs.DstFactorAlpha],
		BlendOpAlpha:          blendOpTable[bs.OpAlpha],
		RenderTargetWriteMask: colorWriteMask(bs.ColorWriteMask),
	}
	if pip.blendState, err = f.dev.CreateBlendState(&bd); err != nil {
		f.DestroyPipeline(pip)
		return f.fail("blend state", desc.Locator, err)
	}
	return core.ResourceValid
}

func stencilOpDesc(s *core.StencilState) DepthStencilOpDesc {
	return DepthStencilOpDesc{
		StencilFailOp:      stencilOpTable[s.FailOp],
		StencilDepthFailOp: stencilOpTable[s.DepthFailOp],
		StencilPassOp:      stencilOpTable[s.PassOp],
		StencilFunc:        compareFuncTable[s.CmpFunc],
	}
}

func (f *Factory) DestroyPipeline(pip *Pipeline) {
	f.r.InvalidatePipelineState()
	f.release(Object(pip.inputLayout))
	f.release(Object(pip.rasterizerState))
	f.release(Object(pip.depthStencilState))
	f.release(Object(pip.blendState))
	*pip = Pipeline{}
}

// InitRenderPass creates a render target view per color attachment, on
// the MSAA texture for multisampled targets, plus the depth-stencil view.
func (f *Factory) InitRenderPass(rp *RenderPass, desc core.PassDesc, colors [core.MaxNumColorAttachments]*Texture, depth *Texture) core.ResourceState {
	*rp = RenderPass{Desc: desc}
	if !logger.Assert(colors[0] != nil, "d3d11: pass %q without color attachment", desc.Locator) {
		return core.ResourceFailed
	}
	msaa := colors[0].msaaTexture != 0
	for i, t := range colors {
		if t == nil {
			continue
		}
		att := desc.ColorAttachments[i]
		rd := RenderTargetViewDesc{Format: t.colorFormat}
		res := Object(t.texture2D)
		switch {
		case t.msaaTexture != 0:
			res = Object(t.msaaTexture)
		case t.texture3D != 0:
			res = Object(t.texture3D)
		}
		switch t.Attrs.Type {
		case core.Texture2D:
			if msaa {
				rd.Dimension = RTVDimensionTexture2DMS
			} else {
				rd.Dimension = RTVDimensionTexture2D
				rd.MipSlice = uint32(att.MipLevel)
			}
		case core.TextureCube, core.TextureArray:
			rd.FirstSlice, rd.NumSlices = uint32(att.Slice), 1
			if msaa {
				rd.Dimension = RTVDimensionTexture2DMSArray
			} else {
				rd.Dimension = RTVDimensionTexture2DArray
				rd.MipSlice = uint32(att.MipLevel)
			}
		case core.Texture3D:
			if !logger.Assert(!msaa, "d3d11: pass %q: 3D textures cannot be multisampled", desc.Locator) {
				f.DestroyRenderPass(rp)
				return core.ResourceFailed
			}
			rd.Dimension = RTVDimensionTexture3D
			rd.MipSlice = uint32(att.MipLevel)
			rd.FirstSlice, rd.NumSlices = uint32(att.Slice), 1
		}
		rtv, err := f.dev.CreateRenderTargetView(res, &rd)
		if err != nil {
			f.DestroyRenderPass(rp)
			return f.fail("render target view", desc.Locator, err)
		}
		rp.rtvs[i] = rtv
	}

	if depth != nil && depth.depthStencilTexture != 0 {
		dd := DepthStencilViewDesc{Format: renderTargetFormat(depth.Attrs.DepthFormat), Dimension: DSVDimensionTexture2D}
		if msaa {
			dd.Dimension = DSVDimensionTexture2DMS
		}
		dsv, err := f.dev.CreateDepthStencilView(Object(depth.depthStencilTexture), &dd)
		if err != nil {
			f.DestroyRenderPass(rp)
			return f.fail("depth-stencil view", desc.Locator, err)
		}
		rp.dsv = dsv
	}
	return core.ResourceValid
}

func (f *Factory) DestroyRenderPass(rp *RenderPass) {
	for _, rtv := range rp.rtvs {
		f.release(Object(rtv))
	}
	f.release(Object(rp.dsv))
	*rp = RenderPass{}
}
