package metal

import (
	"bytes"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/scratch"
)

// defaultEntry is the entry point name shader cross-compilers give MSL
// functions.
const defaultEntry = "main0"

// Factory creates the Metal objects behind gfx resources. Destroyed
// objects go through the renderer's release queue since frames in flight
// may still use them.
type Factory struct {
	dev Device
	r   *Renderer
}

func NewFactory(r *Renderer) *Factory {
	return &Factory{dev: r.dev, r: r}
}

func (f *Factory) fail(what, locator string, err error) core.ResourceState {
	logger.With(logger.Fields{"resource": locator, "error": err}).Warn("metal: creating %s failed", what)
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
	if !logger.Assert(len(desc.PrimGroups) <= core.MaxNumPrimGroups, "metal: mesh %q has %d primitive groups", desc.Locator, len(desc.PrimGroups)) {
		return core.ResourceFailed
	}
	msh.VertexBufferAttrs = core.VertexBufferAttrs{NumVertices: desc.NumVertices, Layout: desc.Layout, BufferUsage: desc.VertexUsage}
	msh.IndexBufferAttrs = core.IndexBufferAttrs{NumIndices: desc.NumIndices, Type: desc.IndexType, BufferUsage: desc.IndexUsage}
	msh.PrimGroups = append([]core.PrimitiveGroup(nil), desc.PrimGroups...)

	if desc.NumVertices > 0 {
		size := msh.VertexBufferAttrs.ByteSize()
		init, ok := bufferContent(data, desc.VertexDataOffset, size)
		if !logger.Assert(ok, "metal: mesh %q vertex data out of range", desc.Locator) {
			return core.ResourceFailed
		}
		msh.numVertexSlots = numSlots(desc.VertexUsage)
		for i := 0; i < msh.numVertexSlots; i++ {
			buf, err := f.dev.NewBuffer(init, size, resourceOptions(desc.VertexUsage))
			if err != nil {
				f.DestroyMesh(msh)
				return f.fail("vertex buffer", desc.Locator, err)
			}
			msh.vertexBuffers[i] = buf
		}
	}
	if desc.IndexType != core.IndexNone {
		size := msh.IndexBufferAttrs.ByteSize()
		init, ok := bufferContent(data, desc.IndexDataOffset, size)
		if !logger.Assert(ok, "metal: mesh %q index data out of range", desc.Locator) {
			f.DestroyMesh(msh)
			return core.ResourceFailed
		}
		msh.numIndexSlots = numSlots(desc.IndexUsage)
		for i := 0; i < msh.numIndexSlots; i++ {
			buf, err := f.dev.NewBuffer(init, size, resourceOptions(desc.IndexUsage))
			if err != nil {
				f.DestroyMesh(msh)
				return f.fail("index buffer", desc.Locator, err)
			}
			msh.indexBuffers[i] = buf
		}
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
	msh.numVertexSlots, msh.numIndexSlots = 1, 1
	if msh.vertexBuffers[0], err = f.dev.NewBuffer(vertices, len(vertices), ResourceStorageModeShared); err != nil {
		return f.fail("vertex buffer", "full screen quad", err)
	}
	if msh.indexBuffers[0], err = f.dev.NewBuffer(indices, len(indices), ResourceStorageModeShared); err != nil {
		f.DestroyMesh(msh)
		return f.fail("index buffer", "full screen quad", err)
	}
	return core.ResourceValid
}

func (f *Factory) DestroyMesh(msh *Mesh) {
	f.r.InvalidateMeshState()
	for i := range msh.vertexBuffers {
		f.r.release(Object(msh.vertexBuffers[i]))
		f.r.release(Object(msh.indexBuffers[i]))
	}
	msh.reset(core.MeshDesc{})
}

func (f *Factory) storageMode() StorageMode {
	if f.dev.SupportsFamily(GPUFamilyMac2) {
		return StorageModeManaged
	}
	return StorageModeShared
}

// InitTexture creates the texture and its sampler, and for render targets
// the MSAA and depth textures. Dynamic textures get one native texture per
// frame in flight.
func (f *Factory) InitTexture(tex *Texture, desc core.TextureDesc, data []byte) core.ResourceState {
	tex.reset(desc)
	if desc.NativeTextures[0] != 0 {
		logger.Warn("metal: texture %q: native textures not supported", desc.Locator)
		return core.ResourceFailed
	}
	if desc.RenderTarget && !logger.Assert(desc.ColorFormat.IsValidRenderTargetColorFormat(), "metal: %s is not a render target format", desc.ColorFormat) {
		return core.ResourceFailed
	}
	format := pixelFormat(f.dev, desc.ColorFormat)
	if format == PixelFormatInvalid {
		logger.Warn("metal: texture %q: pixel format %s not supported", desc.Locator, desc.ColorFormat)
		return core.ResourceFailed
	}
	tex.pixelFormat = format
	if data != nil && !logger.Assert(desc.ImageData.NumMipMaps == desc.NumMipMaps, "metal: texture %q: image data does not match the texture", desc.Locator) {
		return core.ResourceFailed
	}

	td := TextureDescriptor{
		TextureType:      textureType(desc.Type),
		PixelFormat:      format,
		Width:            desc.Width,
		Height:           desc.Height,
		Depth:            1,
		MipmapLevelCount: desc.NumMipMaps,
		SampleCount:      1,
		ArrayLength:      1,
		StorageMode:      f.storageMode(),
		Usage:            TextureUsageShaderRead,
	}
	switch desc.Type {
	case core.Texture3D:
		td.Depth = desc.Depth
	case core.TextureArray:
		td.ArrayLength = desc.Depth
	}
	tex.numSlots = numSlots(desc.Usage)
	if desc.RenderTarget {
		td.StorageMode = StorageModePrivate
		td.Usage |= TextureUsageRenderTarget
		tex.numSlots = 1
	}
	for i := 0; i < tex.numSlots; i++ {
		t, err := f.dev.NewTexture(&td)
		if err != nil {
			f.DestroyTexture(tex)
			return f.fail("texture", desc.Locator, err)
		}
		tex.textures[i] = t
		if data != nil && !f.upload(t, &desc, data) {
			f.DestroyTexture(tex)
			logger.Assert(false, "metal: texture %q: image data does not match the texture", desc.Locator)
			return core.ResourceFailed
		}
	}

	var err error
	if desc.RenderTarget && desc.SampleCount > 1 {
		md := td
		md.TextureType = TextureType2DMultisample
		md.MipmapLevelCount = 1
		md.SampleCount = desc.SampleCount
		md.Usage = TextureUsageRenderTarget
		if tex.msaaTexture, err = f.dev.NewTexture(&md); err != nil {
			f.DestroyTexture(tex)
			return f.fail("MSAA texture", desc.Locator, err)
		}
	}
	if desc.RenderTarget && desc.DepthFormat.IsValidRenderTargetDepthFormat() {
		tex.depthFormat = pixelFormat(f.dev, desc.DepthFormat)
		dd := TextureDescriptor{
			TextureType:      TextureType2D,
			PixelFormat:      tex.depthFormat,
			Width:            desc.Width,
			Height:           desc.Height,
			Depth:            1,
			MipmapLevelCount: 1,
			SampleCount:      max(desc.SampleCount, 1),
			ArrayLength:      1,
			StorageMode:      StorageModePrivate,
			Usage:            TextureUsageRenderTarget,
		}
		if dd.SampleCount > 1 {
			dd.TextureType = TextureType2DMultisample
		}
		if tex.depthTexture, err = f.dev.NewTexture(&dd); err != nil {
			f.DestroyTexture(tex)
			return f.fail("depth texture", desc.Locator, err)
		}
	}

	smp := &desc.Sampler
	sd := SamplerDescriptor{
		MinFilter:    minMagFilter(smp.MinFilter),
		MagFilter:    minMagFilter(smp.MagFilter),
		MipFilter:    mipFilter(smp.MinFilter),
		SAddressMode: addressMode(smp.WrapU),
		TAddressMode: addressMode(smp.WrapV),
		RAddressMode: addressMode(smp.WrapW),
	}
	if tex.sampler, err = f.dev.NewSamplerState(&sd); err != nil {
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
		HasDepthBuffer: tex.depthTexture != 0,
	}
	return core.ResourceValid
}

// upload copies every face/slice/mip surface of data into t.
func (f *Factory) upload(t TextureObject, desc *core.TextureDesc, data []byte) bool {
	img := &desc.ImageData
	numFaces, numSlices := 1, 1
	switch desc.Type {
	case core.TextureCube:
		numFaces = 6
	case core.TextureArray:
		numSlices = desc.Depth
	}
	sliceSize := len(data) / numSlices
	if sliceSize*numSlices != len(data) {
		return false
	}
	for face := 0; face < numFaces; face++ {
		for slice := 0; slice < numSlices; slice++ {
			for mip := 0; mip < img.NumMipMaps; mip++ {
				off := slice*sliceSize + img.Offsets[face][mip]
				end := off + img.Sizes[face][mip]
				if end > len(data) {
					return false
				}
				w, h := max(desc.Width>>mip, 1), max(desc.Height>>mip, 1)
				region := Region{Width: w, Height: h, Depth: 1}
				bytesPerRow, bytesPerImage := core.RowPitch(desc.ColorFormat, w), 0
				if desc.Type == core.Texture3D {
					region.Depth = max(desc.Depth>>mip, 1)
					bytesPerImage = core.ImagePitch(desc.ColorFormat, w, h)
				}
				if desc.ColorFormat.IsPVRTC() {
					// PVRTC uploads take no pitch
					bytesPerRow, bytesPerImage = 0, 0
				}
				f.dev.ReplaceRegion(t, region, mip, face+slice, data[off:end], bytesPerRow, bytesPerImage)
			}
		}
	}
	return true
}

func (f *Factory) DestroyTexture(tex *Texture) {
	f.r.InvalidateTextureState()
	for _, t := range tex.textures {
		f.r.release(Object(t))
	}
	f.r.release(Object(tex.msaaTexture))
	f.r.release(Object(tex.depthTexture))
	f.r.release(Object(tex.sampler))
	tex.reset(core.TextureDesc{})
}

// InitShader creates the vertex and fragment functions from MSL byte code
// or, failing that, MSL source. When both stages share their code they
// share one library.
func (f *Factory) InitShader(shd *Shader, desc core.ShaderDesc) core.ResourceState {
	shd.reset(desc)
	f.r.InvalidateShaderState()

	prog := desc.Programs[core.MSL]
	if prog.Empty() {
		logger.Warn("metal: shader %q has no %s code", desc.Locator, core.MSL)
		return core.ResourceFailed
	}
	for _, ub := range desc.UniformBlocks {
		if !logger.Assert(ub.Layout.ByteSize() > 0 && ub.Slot >= 0 && ub.Slot < core.MaxNumUniformBlocksPerStage,
			"metal: shader %q: invalid uniform block %q", desc.Locator, ub.Name) {
			return core.ResourceFailed
		}
	}

	var err error
	if shd.vsLibrary, err = f.newLibrary(prog.VSByteCode, prog.VSSource); err != nil {
		return f.fail("vertex shader library", desc.Locator, err)
	}
	fsLib := shd.vsLibrary
	if !sameCode(&prog) {
		if shd.fsLibrary, err = f.newLibrary(prog.FSByteCode, prog.FSSource); err != nil {
			f.DestroyShader(shd)
			return f.fail("fragment shader library", desc.Locator, err)
		}
		fsLib = shd.fsLibrary
	}
	if shd.vsFunction, err = f.dev.NewFunction(shd.vsLibrary, entry(prog.VSEntry)); err != nil {
		f.DestroyShader(shd)
		return f.fail("vertex function", desc.Locator, err)
	}
	if shd.fsFunction, err = f.dev.NewFunction(fsLib, entry(prog.FSEntry)); err != nil {
		f.DestroyShader(shd)
		return f.fail("fragment function", desc.Locator, err)
	}
	return core.ResourceValid
}

func (f *Factory) newLibrary(byteCode []byte, src string) (Library, error) {
	if len(byteCode) > 0 {
		return f.dev.NewLibraryWithData(byteCode)
	}
	return f.dev.NewLibraryWithSource(src)
}

func sameCode(p *core.ShaderProgram) bool {
	if len(p.VSByteCode) > 0 {
		return bytes.Equal(p.VSByteCode, p.FSByteCode)
	}
	return p.VSSource == p.FSSource
}

func entry(name string) string {
	if name == "" {
		return defaultEntry
	}
	return name
}

func (f *Factory) DestroyShader(shd *Shader) {
	f.r.InvalidateShaderState()
	f.r.release(Object(shd.vsFunction))
	f.r.release(Object(shd.fsFunction))
	f.r.release(Object(shd.vsLibrary))
	f.r.release(Object(shd.fsLibrary))
	shd.reset(core.ShaderDesc{})
}

// InitPipeline creates the render pipeline state, with a vertex attribute
// for every shader input, and the depth-stencil state. Vertex buffers sit
// behind the uniform block buffer indices.
func (f *Factory) InitPipeline(pip *Pipeline, desc core.PipelineDesc, shd *Shader) core.ResourceState {
	rs := &desc.RasterizerState
	*pip = Pipeline{
		Desc:     desc,
		primType: primitiveType(desc.PrimType),
		cullMode: cullMode(rs.CullFaceEnabled, rs.CullFace),
		winding:  WindingCounterClockwise,
	}

	var vd VertexDescriptor
	var provided [core.NumVertexAttrs]bool
	var attrs [core.NumVertexAttrs]VertexAttributeDescriptor
	for slot, layout := range desc.Layouts {
		if layout.Empty() {
			continue
		}
		index := vertexBufferBase + slot
		vd.Layouts[index] = VertexBufferLayoutDescriptor{
			Stride:       layout.ByteSize(),
			StepFunction: stepFunction(layout.StepFunction),
			StepRate:     layout.Rate(),
		}
		for ci, c := range layout.Components() {
			if !logger.Assert(!provided[c.Attr], "metal: pipeline %q: attribute %s in more than one layout", desc.Locator, c.Attr) {
				return core.ResourceFailed
			}
			provided[c.Attr] = true
			attrs[c.Attr] = VertexAttributeDescriptor{
				Format:      vertexFormatTable[c.Format],
				Offset:      layout.ComponentByteOffset(ci),
				BufferIndex: index,
			}
		}
	}
	for _, c := range shd.Desc.Inputs.Components() {
		if !provided[c.Attr] {
			logger.Warn("metal: pipeline %q: shader input %s not provided by any vertex layout", desc.Locator, c.Attr)
			return core.ResourceFailed
		}
		vd.Attributes[c.Attr] = attrs[c.Attr]
	}

	bs := &desc.BlendState
	if !logger.Assert(bs.MRTCount <= core.MaxNumColorAttachments, "metal: pipeline %q: MRT count %d", desc.Locator, bs.MRTCount) {
		return core.ResourceFailed
	}
	pd := RenderPipelineDescriptor{
		VertexFunction:         shd.vsFunction,
		FragmentFunction:       shd.fsFunction,
		VertexDescriptor:       vd,
		SampleCount:            max(rs.SampleCount, 1),
		AlphaToCoverageEnabled: rs.AlphaToCoverageEnabled,
	}
	for i := 0; i < max(bs.MRTCount, 1); i++ {
		pd.ColorAttachments[i] = RenderPipelineColorAttachmentDescriptor{
			PixelFormat:                 pixelFormat(f.dev, bs.ColorFormat),
			WriteMask:                   colorWriteMask(bs.ColorWriteMask),
			BlendingEnabled:             bs.BlendEnabled,
			SourceRGBBlendFactor:        blendFactorTable[bs.SrcFactorRGB],
			DestinationRGBBlendFactor:   blendFactorTable[bs.DstFactorRGB],
			RGBBlendOperation:           blendOpTable[bs.OpRGB],
			SourceAlphaBlendFactor:      blendFactorTable[bs.SrcFactorAlpha],
			DestinationAlphaBlendFactor: blendFactorTable[bs.DstFactorAlpha],
			AlphaBlendOperation:         blendOpTable[bs.OpAlpha],
		}
	}
	if bs.DepthFormat.IsValidRenderTargetDepthFormat() {
		pd.DepthAttachmentPixelFormat = pixelFormat(f.dev, bs.DepthFormat)
		if bs.DepthFormat == core.PixelFormatDEPTHSTENCIL {
			pd.StencilAttachmentPixelFormat = pd.DepthAttachmentPixelFormat
		}
	}
	var err error
	if pip.pipelineState, err = f.dev.NewRenderPipelineState(&pd); err != nil {
		return f.fail("render pipeline state", desc.Locator, err)
	}

	ds := &desc.DepthStencilState
	dd := DepthStencilDescriptor{
		DepthCompareFunction: compareFuncTable[ds.DepthCmpFunc],
		DepthWriteEnabled:    ds.DepthWriteEnabled,
		StencilEnabled:       ds.StencilEnabled,
	}
	if ds.StencilEnabled {
		dd.FrontFaceStencil = stencilDescriptor(&ds.StencilFront, ds)
		dd.BackFaceStencil = stencilDescriptor(&ds.StencilBack, ds)
	}
	if pip.depthStencilState, err = f.dev.NewDepthStencilState(&dd); err != nil {
		f.DestroyPipeline(pip)
		return f.fail("depth-stencil state", desc.Locator, err)
	}
	return core.ResourceValid
}

func stencilDescriptor(s *core.StencilState, ds *core.DepthStencilState) StencilDescriptor {
	return StencilDescriptor{
		StencilFailureOperation:   stencilOpTable[s.FailOp],
		DepthFailureOperation:     stencilOpTable[s.DepthFailOp],
		DepthStencilPassOperation: stencilOpTable[s.PassOp],
		StencilCompareFunction:    compareFuncTable[s.CmpFunc],
		ReadMask:                  uint32(ds.StencilReadMask),
		WriteMask:                 uint32(ds.StencilWriteMask),
	}
}

func (f *Factory) DestroyPipeline(pip *Pipeline) {
	f.r.InvalidatePipelineState()
	f.r.release(Object(pip.pipelineState))
	f.r.release(Object(pip.depthStencilState))
	*pip = Pipeline{}
}

// InitRenderPass fills in the attachments of the pass descriptor. For
// multisampled targets the MSAA texture is rendered to and resolved into
// the attachment texture.
func (f *Factory) InitRenderPass(rp *RenderPass, desc core.PassDesc, colors [core.MaxNumColorAttachments]*Texture, depth *Texture) core.ResourceState {
	*rp = RenderPass{Desc: desc}
	if !logger.Assert(colors[0] != nil, "metal: pass %q without color attachment", desc.Locator) {
		return core.ResourceFailed
	}
	for i, t := range colors {
		if t == nil {
			continue
		}
		att := desc.ColorAttachments[i]
		ca := &rp.descriptor.ColorAttachments[i]
		level, slice, plane := att.MipLevel, att.Slice, 0
		if t.Attrs.Type == core.Texture3D {
			slice, plane = 0, att.Slice
		}
		if t.msaaTexture != 0 {
			if !logger.Assert(t.Attrs.Type == core.Texture2D, "metal: pass %q: only 2D textures can be multisampled", desc.Locator) {
				*rp = RenderPass{}
				return core.ResourceFailed
			}
			ca.Texture = t.msaaTexture
			ca.StoreAction = StoreActionMultisampleResolve
			ca.ResolveTexture = t.texture()
			ca.ResolveLevel, ca.ResolveSlice, ca.ResolveDepthPlane = level, slice, plane
		} else {
			ca.Texture = t.texture()
			ca.StoreAction = StoreActionStore
			ca.Level, ca.Slice, ca.DepthPlane = level, slice, plane
		}
	}
	if depth != nil && depth.depthTexture != 0 {
		rp.hasDepth = true
		rp.descriptor.DepthAttachment = RenderPassDepthAttachment{Texture: depth.depthTexture, StoreAction: StoreActionDontCare}
		if depth.Attrs.DepthFormat == core.PixelFormatDEPTHSTENCIL {
			rp.hasStencil = true
			rp.descriptor.StencilAttachment = RenderPassStencilAttachment{Texture: depth.depthTexture, StoreAction: StoreActionDontCare}
		}
	}
	return core.ResourceValid
}

// DestroyRenderPass forgets the attachments; a pass owns no Metal objects.
func (f *Factory) DestroyRenderPass(rp *RenderPass) {
	*rp = RenderPass{}
}
