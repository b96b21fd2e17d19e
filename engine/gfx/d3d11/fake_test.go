package d3d11

import (
	"fmt"
	"slices"

	"github.com/hubastard/prism/engine/core"
)

type call struct {
	name string
	args []any
}

// fakeDevice records device and context calls. Objects are numbered from
// one counter so they are never zero.
type fakeDevice struct {
	calls []call

	// failOn makes the named Create call return E_OUTOFMEMORY.
	failOn string

	next     Object
	live     map[Object]string
	mapped   map[Object][]byte
	rowPitch uint32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{live: map[Object]string{}, mapped: map[Object][]byte{}}
}

func (f *fakeDevice) record(name string, args ...any) {
	f.calls = append(f.calls, call{name: name, args: args})
}

func (f *fakeDevice) create(kind string, args ...any) (Object, error) {
	f.record("Create"+kind, args...)
	if f.failOn == kind {
		return 0, Check(E_OUTOFMEMORY)
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

func (f *fakeDevice) CreateBuffer(desc *BufferDesc, initial []byte) (Buffer, error) {
	o, err := f.create("Buffer", *desc, slices.Clone(initial))
	return Buffer(o), err
}

func (f *fakeDevice) CreateTexture2D(desc *Texture2DDesc, initial []SubresourceData) (Texture2D, error) {
	o, err := f.create("Texture2D", *desc, slices.Clone(initial))
	return Texture2D(o), err
}

func (f *fakeDevice) CreateTexture3D(desc *Texture3DDesc, initial []SubresourceData) (Texture3D, error) {
	o, err := f.create("Texture3D", *desc, slices.Clone(initial))
	return Texture3D(o), err
}

func (f *fakeDevice) CreateShaderResourceView(res Object, desc *ShaderResourceViewDesc) (ShaderResourceView, error) {
	o, err := f.create("ShaderResourceView", res, *desc)
	return ShaderResourceView(o), err
}

func (f *fakeDevice) CreateRenderTargetView(res Object, desc *RenderTargetViewDesc) (RenderTargetView, error) {
	o, err := f.create("RenderTargetView", res, *desc)
	return RenderTargetView(o), err
}

func (f *fakeDevice) CreateDepthStencilView(res Object, desc *DepthStencilViewDesc) (DepthStencilView, error) {
	o, err := f.create("DepthStencilView", res, *desc)
	return DepthStencilView(o), err
}

func (f *fakeDevice) CreateSamplerState(desc *SamplerDesc) (SamplerState, error) {
	o, err := f.create("SamplerState", *desc)
	return SamplerState(o), err
}

func (f *fakeDevice) CreateVertexShader(byteCode []byte) (VertexShader, error) {
	o, err := f.create("VertexShader", len(byteCode))
	return VertexShader(o), err
}

func (f *fakeDevice) CreatePixelShader(byteCode []byte) (PixelShader, error) {
	o, err := f.create("PixelShader", len(byteCode))
	return PixelShader(o), err
}

func (f *fakeDevice) CreateInputLayout(elems []InputElementDesc, vsByteCode []byte) (InputLayout, error) {
	o, err := f.create("InputLayout", slices.Clone(elems))
	return InputLayout(o), err
}

func (f *fakeDevice) CreateRasterizerState(desc *RasterizerDesc) (RasterizerState, error) {
	o, err := f.create("RasterizerState", *desc)
	return RasterizerState(o), err
}

func (f *fakeDevice) CreateDepthStencilState(desc *DepthStencilDesc) (DepthStencilState, error) {
	o, err := f.create("DepthStencilState", *desc)
	return DepthStencilState(o), err
}

func (f *fakeDevice) CreateBlendState(desc *BlendDesc) (BlendState, error) {
	o, err := f.create("BlendState", *desc)
	return BlendState(o), err
}

func (f *fakeDevice) Release(obj Object) {
	if _, ok := f.live[obj]; !ok {
		panic(fmt.Sprintf("release of unknown object %d", obj))
	}
	delete(f.live, obj)
	f.record("Release", obj)
}

func (f *fakeDevice) ClearState() { f.record("ClearState") }

func (f *fakeDevice) OMSetRenderTargets(rtvs []RenderTargetView, dsv DepthStencilView) {
	f.record("OMSetRenderTargets", slices.Clone(rtvs), dsv)
}

func (f *fakeDevice) OMSetDepthStencilState(s DepthStencilState, stencilRef uint32) {
	f.record("OMSetDepthStencilState", s, stencilRef)
}

func (f *fakeDevice) OMSetBlendState(s BlendState, factor [4]float32, sampleMask uint32) {
	f.record("OMSetBlendState", s, factor, sampleMask)
}

func (f *fakeDevice) RSSetViewports(vps []Viewport)  { f.record("RSSetViewports", slices.Clone(vps)) }
func (f *fakeDevice) RSSetScissorRects(rects []Rect) { f.record("RSSetScissorRects", slices.Clone(rects)) }
func (f *fakeDevice) RSSetState(s RasterizerState)   { f.record("RSSetState", s) }

func (f *fakeDevice) ClearRenderTargetView(rtv RenderTargetView, color [4]float32) {
	f.record("ClearRenderTargetView", rtv, color)
}

func (f *fakeDevice) ClearDepthStencilView(dsv DepthStencilView, flags ClearFlag, depth float32, stencil uint8) {
	f.record("ClearDepthStencilView", dsv, flags, depth, stencil)
}

func (f *fakeDevice) ResolveSubresource(dst Object, dstSub uint32, src Object, srcSub uint32, format Format) {
	f.record("ResolveSubresource", dst, dstSub, src, srcSub, format)
}

func (f *fakeDevice) IASetVertexBuffers(startSlot uint32, bufs []Buffer, strides, offsets []uint32) {
	f.record("IASetVertexBuffers", startSlot, slices.Clone(bufs), slices.Clone(strides))
}

func (f *fakeDevice) IASetIndexBuffer(buf Buffer, format Format, offset uint32) {
	f.record("IASetIndexBuffer", buf, format, offset)
}

func (f *fakeDevice) IASetInputLayout(l InputLayout)             { f.record("IASetInputLayout", l) }
func (f *fakeDevice) IASetPrimitiveTopology(t PrimitiveTopology) { f.record("IASetPrimitiveTopology", t) }
func (f *fakeDevice) VSSetShader(s VertexShader)                 { f.record("VSSetShader", s) }
func (f *fakeDevice) PSSetShader(s PixelShader)                  { f.record("PSSetShader", s) }

func (f *fakeDevice) VSSetConstantBuffers(startSlot uint32, bufs []Buffer) {
	f.record("VSSetConstantBuffers", startSlot, slices.Clone(bufs))
}

func (f *fakeDevice) PSSetConstantBuffers(startSlot uint32, bufs []Buffer) {
	f.record("PSSetConstantBuffers", startSlot, slices.Clone(bufs))
}

func (f *fakeDevice) VSSetShaderResources(startSlot uint32, srvs []ShaderResourceView) {
	f.record("VSSetShaderResources", startSlot, slices.Clone(srvs))
}

func (f *fakeDevice) PSSetShaderResources(startSlot uint32, srvs []ShaderResourceView) {
	f.record("PSSetShaderResources", startSlot, slices.Clone(srvs))
}

func (f *fakeDevice) VSSetSamplers(startSlot uint32, smps []SamplerState) {
	f.record("VSSetSamplers", startSlot, slices.Clone(smps))
}

func (f *fakeDevice) PSSetSamplers(startSlot uint32, smps []SamplerState) {
	f.record("PSSetSamplers", startSlot, slices.Clone(smps))
}

func (f *fakeDevice) UpdateSubresource(dst Object, sub uint32, data []byte) {
	f.record("UpdateSubresource", dst, sub, slices.Clone(data))
}

// Map hands out a 4 KiB block per resource and subresource; the content
// survives Unmap so tests can inspect it.
func (f *fakeDevice) Map(res Object, sub uint32, mapType MapType) (MappedSubresource, error) {
	f.record("Map", res, sub, mapType)
	key := res<<8 | Object(sub)
	buf, ok := f.mapped[key]
	if !ok {
		buf = make([]byte, 4096)
		f.mapped[key] = buf
	}
	return MappedSubresource{Data: buf, RowPitch: f.rowPitch}, nil
}

func (f *fakeDevice) mappedData(res Object, sub uint32) []byte { return f.mapped[res<<8|Object(sub)] }

func (f *fakeDevice) Unmap(res Object, sub uint32) { f.record("Unmap", res, sub) }

func (f *fakeDevice) Draw(vertexCount, startVertex uint32) {
	f.record("Draw", vertexCount, startVertex)
}

func (f *fakeDevice) DrawIndexed(indexCount, startIndex uint32, baseVertex int32) {
	f.record("DrawIndexed", indexCount, startIndex, baseVertex)
}

func (f *fakeDevice) DrawInstanced(vertexCountPerInstance, instanceCount, startVertex, startInstance uint32) {
	f.record("DrawInstanced", vertexCountPerInstance, instanceCount, startVertex, startInstance)
}

func (f *fakeDevice) DrawIndexedInstanced(indexCountPerInstance, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32) {
	f.record("DrawIndexedInstanced", indexCountPerInstance, instanceCount, startIndex, baseVertex, startInstance)
}

// fakeDisplay is a window-less swap chain over a fakeDevice.
type fakeDisplay struct {
	dev   *fakeDevice
	attrs core.DisplayAttrs
	rtv   RenderTargetView
	dsv   DepthStencilView
}

func newFakeDisplay(w, h int) *fakeDisplay {
	return &fakeDisplay{
		dev: newFakeDevice(),
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
		rtv: 0x1000,
		dsv: 0x1001,
	}
}

func (d *fakeDisplay) DisplayAttrs() core.DisplayAttrs    { return d.attrs }
func (d *fakeDisplay) ProcessEvents()                     {}
func (d *fakeDisplay) Present()                           {}
func (d *fakeDisplay) QuitRequested() bool                { return false }
func (d *fakeDisplay) SetTitle(string)                    {}
func (d *fakeDisplay) SetEventCallback(func(core.Event))  {}
func (d *fakeDisplay) Device() Device                     { return d.dev }
func (d *fakeDisplay) DeviceContext() DeviceContext       { return d.dev }
func (d *fakeDisplay) RenderTargetView() RenderTargetView { return d.rtv }
func (d *fakeDisplay) DepthStencilView() DepthStencilView { return d.dsv }

type noDeviceDisplay struct{ *fakeDisplay }

func (noDeviceDisplay) Device() Device { return nil }
