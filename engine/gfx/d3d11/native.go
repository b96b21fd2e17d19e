package d3d11

// Object is a native D3D11 object, an interface pointer on Windows. Zero
// is the null object.
type Object uintptr

type (
	Buffer             Object
	Texture2D          Object
	Texture3D          Object
	ShaderResourceView Object
	RenderTargetView   Object
	DepthStencilView   Object
	SamplerState       Object
	VertexShader       Object
	PixelShader        Object
	InputLayout        Object
	RasterizerState    Object
	DepthStencilState  Object
	BlendState         Object
)

// Device creates D3D11 objects. Failures are reported as HRESULT errors.
type Device interface {
	CreateBuffer(desc *BufferDesc, initial []byte) (Buffer, error)
	CreateTexture2D(desc *Texture2DDesc, initial []SubresourceData) (Texture2D, error)
	CreateTexture3D(desc *Texture3DDesc, initial []SubresourceData) (Texture3D, error)
	CreateShaderResourceView(res Object, desc *ShaderResourceViewDesc) (ShaderResourceView, error)
	CreateRenderTargetView(res Object, desc *RenderTargetViewDesc) (RenderTargetView, error)
	CreateDepthStencilView(res Object, desc *DepthStencilViewDesc) (DepthStencilView, error)
	CreateSamplerState(desc *SamplerDesc) (SamplerState, error)
	CreateVertexShader(byteCode []byte) (VertexShader, error)
	CreatePixelShader(byteCode []byte) (PixelShader, error)
	CreateInputLayout(elems []InputElementDesc, vsByteCode []byte) (InputLayout, error)
	CreateRasterizerState(desc *RasterizerDesc) (RasterizerState, error)
	CreateDepthStencilState(desc *DepthStencilDesc) (DepthStencilState, error)
	CreateBlendState(desc *BlendDesc) (BlendState, error)
	// Release drops one reference to obj.
	Release(obj Object)
}

// DeviceContext is the immediate context commands are recorded on.
type DeviceContext interface {
	ClearState()

	OMSetRenderTargets(rtvs []RenderTargetView, dsv DepthStencilView)
	OMSetDepthStencilState(s DepthStencilState, stencilRef uint32)
	OMSetBlendState(s BlendState, factor [4]float32, sampleMask uint32)
	RSSetViewports(vps []Viewport)
	RSSetScissorRects(rects []Rect)
	RSSetState(s RasterizerState)

	ClearRenderTargetView(rtv RenderTargetView, color [4]float32)
	ClearDepthStencilView(dsv DepthStencilView, flags ClearFlag, depth float32, stencil uint8)
	ResolveSubresource(dst Object, dstSub uint32, src Object, srcSub uint32, format Format)

	IASetVertexBuffers(startSlot uint32, bufs []Buffer, strides, offsets []uint32)
	IASetIndexBuffer(buf Buffer, format Format, offset uint32)
	IASetInputLayout(l InputLayout)
	IASetPrimitiveTopology(t PrimitiveTopology)

	VSSetShader(s VertexShader)
	PSSetShader(s PixelShader)
	VSSetConstantBuffers(startSlot uint32, bufs []Buffer)
	PSSetConstantBuffers(startSlot uint32, bufs []Buffer)
	VSSetShaderResources(startSlot uint32, srvs []ShaderResourceView)
	PSSetShaderResources(startSlot uint32, srvs []ShaderResourceView)
	VSSetSamplers(startSlot uint32, smps []SamplerState)
	PSSetSamplers(startSlot uint32, smps []SamplerState)

	UpdateSubresource(dst Object, sub uint32, data []byte)
	// Map returns CPU-writable memory for sub. Data stays valid until the
	// matching Unmap.
	Map(res Object, sub uint32, mapType MapType) (MappedSubresource, error)
	Unmap(res Object, sub uint32)

	Draw(vertexCount, startVertex uint32)
	DrawIndexed(indexCount, startIndex uint32, baseVertex int32)
	DrawInstanced(vertexCountPerInstance, instanceCount, startVertex, startInstance uint32)
	DrawIndexedInstanced(indexCountPerInstance, instanceCount, startIndex uint32, baseVertex int32, startInstance uint32)
}

type MappedSubresource struct {
	Data       []byte
	RowPitch   uint32
	DepthPitch uint32
}

type SubresourceData struct {
	Data       []byte
	RowPitch   uint32
	SlicePitch uint32
}

type BufferDesc struct {
	ByteWidth      uint32
	Usage          ResourceUsage
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
}

type Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         Format
	SampleCount    uint32
	SampleQuality  uint32
	Usage          ResourceUsage
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
	MiscFlags      ResourceMiscFlag
}

type Texture3DDesc struct {
	Width          uint32
	Height         uint32
	Depth          uint32
	MipLevels      uint32
	Format         Format
	Usage          ResourceUsage
	BindFlags      BindFlag
	CPUAccessFlags CPUAccessFlag
}

type ShaderResourceViewDesc struct {
	Format          Format
	Dimension       SRVDimension
	MostDetailedMip uint32
	MipLevels       uint32
	FirstArraySlice uint32
	ArraySize       uint32
}

// RenderTargetViewDesc selects one mip and one slice (array layer, cube
// face or 3D depth slice) of a texture.
type RenderTargetViewDesc struct {
	Format     Format
	Dimension  RTVDimension
	MipSlice   uint32
	FirstSlice uint32
	NumSlices  uint32
}

type DepthStencilViewDesc struct {
	Format    Format
	Dimension DSVDimension
	MipSlice  uint32
}

type SamplerDesc struct {
	Filter         Filter
	AddressU       TextureAddressMode
	AddressV       TextureAddressMode
	AddressW       TextureAddressMode
	MipLODBias     float32
	MaxAnisotropy  uint32
	ComparisonFunc ComparisonFunc
	BorderColor    [4]float32
	MinLOD         float32
	MaxLOD         float32
}

type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

type RasterizerDesc struct {
	FillMode              FillMode
	CullMode              CullMode
	FrontCounterClockwise bool
	DepthBias             int32
	DepthBiasClamp        float32
	SlopeScaledDepthBias  float32
	DepthClipEnable       bool
	ScissorEnable         bool
	MultisampleEnable     bool
	AntialiasedLineEnable bool
}

type DepthStencilOpDesc struct {
	StencilFailOp      StencilOp
	StencilDepthFailOp StencilOp
	StencilPassOp      StencilOp
	StencilFunc        ComparisonFunc
}

type DepthStencilDesc struct {
	DepthEnable      bool
	DepthWriteMask   DepthWriteMask
	DepthFunc        ComparisonFunc
	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	FrontFace        DepthStencilOpDesc
	BackFace         DepthStencilOpDesc
}

type RenderTargetBlendDesc struct {
	BlendEnable           bool
	SrcBlend              Blend
	DestBlend             Blend
	BlendOp               BlendOp
	SrcBlendAlpha         Blend
	DestBlendAlpha        Blend
	BlendOpAlpha          BlendOp
	RenderTargetWriteMask ColorWriteEnable
}

type BlendDesc struct {
	AlphaToCoverageEnable  bool
	IndependentBlendEnable bool
	RenderTarget           [8]RenderTargetBlendDesc
}

type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// CalcSubresource is D3D11CalcSubresource.
func CalcSubresource(mipSlice, arraySlice, mipLevels int) uint32 {
	return uint32(mipSlice + arraySlice*mipLevels)
}
