package metal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hubastard/prism/engine/core"
)

var errFake = errors.New("fake: out of memory")

type call struct {
	name string
	args []any
}

// fakeDevice records device and encoder calls in one log. Objects are
// numbered from one counter so they are never zero.
type fakeDevice struct {
	calls    []call
	families map[GPUFamily]bool

	// failOn makes the named New call fail.
	failOn string

	next     Object
	live     map[Object]string
	contents map[Buffer][]byte
}

func newFakeDevice(families ...GPUFamily) *fakeDevice {
	f := &fakeDevice{
		families: map[GPUFamily]bool{},
		live:     map[Object]string{},
		contents: map[Buffer][]byte{},
	}
	for _, fam := range families {
		f.families[fam] = true
	}
	return f
}

func (f *fakeDevice) record(name string, args ...any) {
	f.calls = append(f.calls, call{name: name, args: args})
}

func (f *fakeDevice) create(kind string, args ...any) (Object, error) {
	f.record("New"+kind, args...)
	if f.failOn == kind {
		return 0, errFake
	}
	f.next++
	f.live[f.next] = kind
	return f.next, nil
}

func (f *fakeDevice) reset() { f.calls = f.calls[:0] }

func (f *fakeDevice) find(name string) []call {
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeDevice) count(name string) int { return len(f.find(name)) }

func (f *fakeDevice) numLive() int { return len(f.live) }

func (f *fakeDevice) SupportsFamily(fam GPUFamily) bool { return f.families[fam] }

func (f *fakeDevice) NewBuffer(data []byte, length int, opts ResourceOptions) (Buffer, error) {
	o, err := f.create("Buffer", slices.Clone(data), length, opts)
	if err != nil {
		return 0, err
	}
	mem := make([]byte, length)
	copy(mem, data)
	f.contents[Buffer(o)] = mem
	return Buffer(o), nil
}

func (f *fakeDevice) Contents(buf Buffer) []byte { return f.contents[buf] }

func (f *fakeDevice) NewTexture(desc *TextureDescriptor) (TextureObject, error) {
	o, err := f.create("Texture", *desc)
	return TextureObject(o), err
}

func (f *fakeDevice) ReplaceRegion(tex TextureObject, region Region, mip, slice int, data []byte, bytesPerRow, bytesPerImage int) {
	f.record("ReplaceRegion", tex, region, mip, slice, slices.Clone(data), bytesPerRow, bytesPerImage)
}

func (f *fakeDevice) NewSamplerState(desc *SamplerDescriptor) (SamplerState, error) {
	o, err := f.create("SamplerState", *desc)
	return SamplerState(o), err
}

func (f *fakeDevice) NewLibraryWithSource(src string) (Library, error) {
	o, err := f.create("LibraryWithSource", src)
	return Library(o), err
}

func (f *fakeDevice) NewLibraryWithData(data []byte) (Library, error) {
	o, err := f.create("LibraryWithData", len(data))
	return Library(o), err
}

func (f *fakeDevice) NewFunction(lib Library, name string) (Function, error) {
	o, err := f.create("Function", lib, name)
	return Function(o), err
}

func (f *fakeDevice) NewRenderPipelineState(desc *RenderPipelineDescriptor) (RenderPipelineState, error) {
	o, err := f.create("RenderPipelineState", *desc)
	return RenderPipelineState(o), err
}

func (f *fakeDevice) NewDepthStencilState(desc *DepthStencilDescriptor) (DepthStencilState, error) {
	o, err := f.create("DepthStencilState", *desc)
	return DepthStencilState(o), err
}

func (f *fakeDevice) Release(obj Object) {
	if _, ok := f.live[obj]; !ok {
		panic(fmt.Sprintf("release of unknown object %d", obj))
	}
	delete(f.live, obj)
	delete(f.contents, Buffer(obj))
	f.record("Release", obj)
}

// fakeCommandBuffer hands out encoders that record into the device log.
type fakeCommandBuffer struct{ dev *fakeDevice }

func (b fakeCommandBuffer) RenderCommandEncoder(desc *RenderPassDescriptor) RenderCommandEncoder {
	b.dev.record("RenderCommandEncoder", *desc)
	return fakeEncoder{b.dev}
}

type fakeEncoder struct{ dev *fakeDevice }

func (e fakeEncoder) SetViewport(vp Viewport)                      { e.dev.record("SetViewport", vp) }
func (e fakeEncoder) SetScissorRect(r ScissorRect)                 { e.dev.record("SetScissorRect", r) }
func (e fakeEncoder) SetRenderPipelineState(s RenderPipelineState) { e.dev.record("SetRenderPipelineState", s) }
func (e fakeEncoder) SetDepthStencilState(s DepthStencilState)     { e.dev.record("SetDepthStencilState", s) }
func (e fakeEncoder) SetStencilReferenceValue(ref uint32)          { e.dev.record("SetStencilReferenceValue", ref) }
func (e fakeEncoder) SetBlendColor(r, g, b, a float32)             { e.dev.record("SetBlendColor", r, g, b, a) }
func (e fakeEncoder) SetCullMode(m CullMode)                       { e.dev.record("SetCullMode", m) }
func (e fakeEncoder) SetFrontFacingWinding(w Winding)              { e.dev.record("SetFrontFacingWinding", w) }
func (e fakeEncoder) EndEncoding()                                 { e.dev.record("EndEncoding") }

func (e fakeEncoder) SetDepthBias(bias, slopeScale, clamp float32) {
	e.dev.record("SetDepthBias", bias, slopeScale, clamp)
}

func (e fakeEncoder) SetVertexBuffer(buf Buffer, offset, index int) {
	e.dev.record("SetVertexBuffer", buf, offset, index)
}

func (e fakeEncoder) SetFragmentBuffer(buf Buffer, offset, index int) {
	e.dev.record("SetFragmentBuffer", buf, offset, index)
}

func (e fakeEncoder) SetVertexTexture(tex TextureObject, index int) {
	e.dev.record("SetVertexTexture", tex, index)
}

func (e fakeEncoder) SetFragmentTexture(tex TextureObject, index int) {
	e.dev.record("SetFragmentTexture", tex, index)
}

func (e fakeEncoder) SetVertexSamplerState(s SamplerState, index int) {
	e.dev.record("SetVertexSamplerState", s, index)
}

func (e fakeEncoder) SetFragmentSamplerState(s SamplerState, index int) {
	e.dev.record("SetFragmentSamplerState", s, index)
}

func (e fakeEncoder) DrawPrimitives(prim PrimitiveType, start, count, instances int) {
	e.dev.record("DrawPrimitives", prim, start, count, instances)
}

func (e fakeEncoder) DrawIndexedPrimitives(prim PrimitiveType, count int, indexType IndexType, indexBuffer Buffer, indexOffset, instances int) {
	e.dev.record("DrawIndexedPrimitives", prim, count, indexType, indexBuffer, indexOffset, instances)
}

// fakeDisplay is a window-less layer over a fakeDevice. Its drawable and
// depth texture are fixed handles outside the device's numbering.
type fakeDisplay struct {
	dev        *fakeDevice
	attrs      core.DisplayAttrs
	noDrawable bool
}

const (
	drawableTexture TextureObject = 0x1000
	drawableDepth   TextureObject = 0x1001
)

func newFakeDisplay(w, h int, families ...GPUFamily) *fakeDisplay {
	return &fakeDisplay{
		dev: newFakeDevice(families...),
		attrs: core.DisplayAttrs{
			WindowWidth:       w,
			WindowHeight:      h,
			FramebufferWidth:  w,
			FramebufferHeight: h,
			ColorPixelFormat:  core.PixelFormatRGBA8,
			DepthPixelFormat:  core.PixelFormatDEPTHSTENCIL,
			SampleCount:       1,
			Windowed:          true,
			SwapInterval:      1,
		},
	}
}

func (d *fakeDisplay) DisplayAttrs() core.DisplayAttrs   { return d.attrs }
func (d *fakeDisplay) ProcessEvents()                    {}
func (d *fakeDisplay) Present()                          {}
func (d *fakeDisplay) QuitRequested() bool               { return false }
func (d *fakeDisplay) SetTitle(string)                   {}
func (d *fakeDisplay) SetEventCallback(func(core.Event)) {}
func (d *fakeDisplay) Device() Device                    { return d.dev }
func (d *fakeDisplay) CommandBuffer() CommandBuffer      { return fakeCommandBuffer{d.dev} }

func (d *fakeDisplay) DefaultPassDescriptor() *RenderPassDescriptor {
	if d.noDrawable {
		return nil
	}
	pd := &RenderPassDescriptor{}
	pd.ColorAttachments[0] = RenderPassColorAttachment{Texture: drawableTexture, StoreAction: StoreActionStore}
	pd.DepthAttachment = RenderPassDepthAttachment{Texture: drawableDepth}
	pd.StencilAttachment = RenderPassStencilAttachment{Texture: drawableDepth}
	return pd
}

type noDeviceDisplay struct{ *fakeDisplay }

func (noDeviceDisplay) Device() Device { return nil }
