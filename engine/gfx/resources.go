package gfx

import (
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
)

// alloc takes a slot from p and registers it under the current label.
func alloc[T any](c *Context, p *resource.Pool[T], locator string) resource.Id {
	id, err := p.Create()
	if err != nil {
		logger.With(logger.Fields{"type": p.Type(), "locator": locator}).Warn("gfx: %v", err)
		return resource.InvalidId
	}
	c.registry.Add(locator, id)
	return id
}

// valid returns the record behind id only if it is fully set up. Unlike
// Pool.Lookup it never substitutes a placeholder.
func valid[T any](p *resource.Pool[T], id resource.Id) *T {
	if p.State(id) != resource.StateValid {
		return nil
	}
	return p.Slot(id)
}

// CreateMesh creates a mesh from desc. data holds the vertex and index
// content at desc.VertexDataOffset and desc.IndexDataOffset. A mesh with
// the locator of an existing resource shares it instead.
//
// The returned id is InvalidId only if the pool is exhausted; whether
// creation succeeded is reported by QueryResourceState.
func (c *Context) CreateMesh(desc core.MeshDesc, data []byte) resource.Id {
	if id := c.registry.Lookup(desc.Locator); id.IsValid() {
		return id
	}
	id := alloc(c, c.meshes, desc.Locator)
	if id.IsValid() {
		c.meshes.SetState(id, c.factory.InitMesh(c.meshes.Slot(id), desc, data))
	}
	return id
}

// CreateTexture creates a texture or render target from desc.
func (c *Context) CreateTexture(desc core.TextureDesc, data []byte) resource.Id {
	if id := c.registry.Lookup(desc.Locator); id.IsValid() {
		return id
	}
	id := alloc(c, c.textures, desc.Locator)
	if id.IsValid() {
		c.textures.SetState(id, c.factory.InitTexture(c.textures.Slot(id), desc, data))
	}
	return id
}

// CreateShader creates a shader from the program of the backend's shading
// language in desc.
func (c *Context) CreateShader(desc core.ShaderDesc) resource.Id {
	if id := c.registry.Lookup(desc.Locator); id.IsValid() {
		return id
	}
	id := alloc(c, c.shaders, desc.Locator)
	if id.IsValid() {
		c.shaders.SetState(id, c.factory.InitShader(c.shaders.Slot(id), desc))
	}
	return id
}

// CreatePipeline creates a pipeline. The shader named by desc.Shader must
// be valid.
func (c *Context) CreatePipeline(desc core.PipelineDesc) resource.Id {
	if id := c.registry.Lookup(desc.Locator); id.IsValid() {
		return id
	}
	id := alloc(c, c.pipelines, desc.Locator)
	if !id.IsValid() {
		return id
	}
	shd := valid(c.shaders, desc.Shader)
	if shd == nil {
		logger.With(logger.Fields{"shader": desc.Shader}).Warn("gfx: pipeline shader is not valid")
		c.pipelines.SetState(id, resource.StateFailed)
		return id
	}
	c.pipelines.SetState(id, c.factory.InitPipeline(c.pipelines.Slot(id), desc, shd))
	return id
}

// CreatePass creates an offscreen render pass. Its attachments must be
// valid render targets.
func (c *Context) CreatePass(desc core.PassDesc) resource.Id {
	if id := c.registry.Lookup(desc.Locator); id.IsValid() {
		return id
	}
	id := alloc(c, c.passes, desc.Locator)
	if !id.IsValid() {
		return id
	}
	colors, depth, ok := c.attachments(&desc)
	if !ok {
		logger.With(logger.Fields{"pass": id}).Warn("gfx: pass attachment is not a valid texture")
		c.passes.SetState(id, resource.StateFailed)
		return id
	}
	c.passes.SetState(id, c.factory.InitRenderPass(c.passes.Slot(id), desc, colors, depth))
	return id
}

// attachments resolves the textures a pass renders into. ok is false if
// any referenced texture is gone or not valid.
func (c *Context) attachments(desc *core.PassDesc) (colors [core.MaxNumColorAttachments]*Texture, depth *Texture, ok bool) {
	for i, att := range desc.ColorAttachments {
		if !att.Texture.IsValid() {
			continue
		}
		if colors[i] = valid(c.textures, att.Texture); colors[i] == nil {
			return colors, nil, false
		}
	}
	if id := desc.DepthStencilTexture; id.IsValid() {
		if depth = valid(c.textures, id); depth == nil {
			return colors, nil, false
		}
	}
	return colors, depth, true
}

// AllocMesh reserves a mesh whose data is still loading. It stays pending,
// drawn as the mesh placeholder if one is set, until InitMesh or
// FailResource is called.
func (c *Context) AllocMesh(locator string) resource.Id {
	if id := c.registry.Lookup(locator); id.IsValid() {
		return id
	}
	id := alloc(c, c.meshes, locator)
	c.meshes.SetState(id, resource.StatePending)
	return id
}

// AllocTexture reserves a texture whose data is still loading.
func (c *Context) AllocTexture(locator string) resource.Id {
	if id := c.registry.Lookup(locator); id.IsValid() {
		return id
	}
	id := alloc(c, c.textures, locator)
	c.textures.SetState(id, resource.StatePending)
	return id
}

// InitMesh sets up a mesh reserved by AllocMesh once its data arrived.
// Stale ids are ignored; the resource may have been destroyed while
// loading.
func (c *Context) InitMesh(id resource.Id, desc core.MeshDesc, data []byte) resource.State {
	st := c.meshes.State(id)
	if st == resource.StateInvalid {
		return st
	}
	if !logger.Assert(st == resource.StatePending, "gfx: InitMesh on %s mesh", st) {
		return st
	}
	st = c.factory.InitMesh(c.meshes.Slot(id), desc, data)
	c.meshes.SetState(id, st)
	return st
}

// InitTexture sets up a texture reserved by AllocTexture.
func (c *Context) InitTexture(id resource.Id, desc core.TextureDesc, data []byte) resource.State {
	st := c.textures.State(id)
	if st == resource.StateInvalid {
		return st
	}
	if !logger.Assert(st == resource.StatePending, "gfx: InitTexture on %s texture", st) {
		return st
	}
	st = c.factory.InitTexture(c.textures.Slot(id), desc, data)
	c.textures.SetState(id, st)
	return st
}

// FailResource marks a pending resource as failed, e.g. after its data
// could not be loaded.
func (c *Context) FailResource(id resource.Id) {
	if c.QueryResourceState(id) != resource.StatePending {
		return
	}
	switch id.Type {
	case core.ResourceMesh:
		c.meshes.SetState(id, resource.StateFailed)
	case core.ResourceTexture:
		c.textures.SetState(id, resource.StateFailed)
	}
}

// SetPlaceholder makes a valid mesh or texture stand in for pending
// resources of the same type.
func (c *Context) SetPlaceholder(id resource.Id) {
	switch id.Type {
	case core.ResourceMesh:
		c.meshes.SetPlaceholder(id)
	case core.ResourceTexture:
		c.textures.SetPlaceholder(id)
	default:
		logger.Assert(false, "gfx: placeholders are meshes or textures, got %s", id)
	}
}

// LookupResource returns the id of a shared resource by locator and adds a
// user to it. It returns InvalidId if no resource has that locator.
func (c *Context) LookupResource(locator string) resource.Id {
	return c.registry.Lookup(locator)
}

// Destroy drops one user of id and destroys the resource when it was the
// last one. Stale ids are ignored.
func (c *Context) Destroy(id resource.Id) {
	if c.registry.Release(id) {
		c.destroy(id)
	}
}

// PushResourceLabel starts a new label that resources created from now on
// are tagged with.
func (c *Context) PushResourceLabel() resource.Label { return c.registry.PushLabel() }

// PushExistingResourceLabel makes l current again.
func (c *Context) PushExistingResourceLabel(l resource.Label) { c.registry.PushExistingLabel(l) }

// PopResourceLabel ends the current label.
func (c *Context) PopResourceLabel() resource.Label {
	l, err := c.registry.PopLabel()
	logger.Assert(err == nil, "gfx: %v", err)
	return l
}

// DestroyResources destroys every resource tagged with label, regardless of
// how many users it has.
func (c *Context) DestroyResources(label resource.Label) {
	for _, id := range c.registry.Remove(label) {
		c.destroy(id)
	}
}

func (c *Context) destroy(id resource.Id) {
	switch id.Type {
	case core.ResourceMesh:
		c.meshes.Destroy(id, c.factory.DestroyMesh)
	case core.ResourceTexture:
		c.textures.Destroy(id, c.factory.DestroyTexture)
	case core.ResourceShader:
		c.shaders.Destroy(id, c.factory.DestroyShader)
	case core.ResourcePipeline:
		c.pipelines.Destroy(id, c.factory.DestroyPipeline)
	case core.ResourcePass:
		c.passes.Destroy(id, c.factory.DestroyRenderPass)
	}
}

// QueryResourceState returns the lifecycle state of id, StateInvalid once
// it has been destroyed.
func (c *Context) QueryResourceState(id resource.Id) resource.State {
	switch id.Type {
	case core.ResourceMesh:
		return c.meshes.State(id)
	case core.ResourceTexture:
		return c.textures.State(id)
	case core.ResourceShader:
		return c.shaders.State(id)
	case core.ResourcePipeline:
		return c.pipelines.State(id)
	case core.ResourcePass:
		return c.passes.State(id)
	}
	return resource.StateInvalid
}

// QueryFreeSlots returns how many more resources of type t can be created.
func (c *Context) QueryFreeSlots(t resource.Type) int {
	switch t {
	case core.ResourceMesh:
		return c.meshes.NumFree()
	case core.ResourceTexture:
		return c.textures.NumFree()
	case core.ResourceShader:
		return c.shaders.NumFree()
	case core.ResourcePipeline:
		return c.pipelines.NumFree()
	case core.ResourcePass:
		return c.passes.NumFree()
	}
	return 0
}

// QueryResourceInfo describes the resource behind id.
func (c *Context) QueryResourceInfo(id resource.Id) ResourceInfo {
	return ResourceInfo{
		State:    c.QueryResourceState(id),
		Label:    c.registry.LabelOf(id),
		Locator:  c.registry.Locator(id),
		UseCount: c.registry.UseCount(id),
	}
}

// Mesh returns the valid mesh behind id, or nil.
func (c *Context) Mesh(id resource.Id) *Mesh { return valid(c.meshes, id) }

// Texture returns the valid texture behind id, or nil.
func (c *Context) Texture(id resource.Id) *Texture { return valid(c.textures, id) }

// Shader returns the valid shader behind id, or nil.
func (c *Context) Shader(id resource.Id) *Shader { return valid(c.shaders, id) }

// Pipeline returns the valid pipeline behind id, or nil.
func (c *Context) Pipeline(id resource.Id) *Pipeline { return valid(c.pipelines, id) }

// Pass returns the valid render pass behind id, or nil.
func (c *Context) Pass(id resource.Id) *RenderPass { return valid(c.passes, id) }
