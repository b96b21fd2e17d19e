package gfx

import (
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/profiler"
	"github.com/hubastard/prism/engine/resource"
)

// BeginPass starts rendering into pass, or into the default framebuffer
// when pass is resource.InvalidId. A nil action clears to the configured
// clear color.
//
// If the pass or one of its attachments is no longer valid every command
// up to EndPass is skipped.
func (c *Context) BeginPass(pass resource.Id, action *core.PassAction) {
	if !logger.Assert(!c.inPass, "gfx: BeginPass inside a pass") {
		return
	}
	if action == nil {
		action = &c.clearAction
	}
	c.inPass = true
	c.endScope = profiler.Start("gfx.Pass")
	c.skipPass = false
	c.skipDraws = true
	c.frameInfo.NumPasses++

	if !pass.IsValid() {
		c.renderer.BeginPass(nil, [core.MaxNumColorAttachments]*Texture{}, nil, action)
		return
	}
	rp := valid(c.passes, pass)
	if rp == nil {
		c.skipPass = true
		return
	}
	colors, depth, ok := c.attachments(&rp.Desc)
	if !ok {
		c.skipPass = true
		return
	}
	c.renderer.BeginPass(rp, colors, depth, action)
}

// EndPass finishes the current pass. Multisampled attachments are resolved
// into their textures.
func (c *Context) EndPass() {
	if !logger.Assert(c.inPass, "gfx: EndPass outside of a pass") {
		return
	}
	if !c.skipPass {
		c.renderer.EndPass()
	}
	c.inPass = false
	c.skipPass = false
	c.skipDraws = true
	c.endScope()
}

// ApplyViewPort sets the viewport of the current pass in pixels.
func (c *Context) ApplyViewPort(x, y, w, h int, originTopLeft bool) {
	if c.skipPass {
		return
	}
	c.frameInfo.NumApplyViewPort++
	c.renderer.ApplyViewPort(x, y, w, h, originTopLeft)
}

// ApplyScissorRect sets the scissor rectangle of the current pass. It only
// has an effect with pipelines that enable the scissor test.
func (c *Context) ApplyScissorRect(x, y, w, h int, originTopLeft bool) {
	if c.skipPass {
		return
	}
	c.frameInfo.NumApplyScissorRect++
	c.renderer.ApplyScissorRect(x, y, w, h, originTopLeft)
}

// ApplyDrawState binds a pipeline and up to MaxNumInputMeshes meshes.
// Pending meshes resolve to the mesh placeholder. If the pipeline or any
// mesh cannot be resolved the following draws are skipped.
func (c *Context) ApplyDrawState(pip resource.Id, meshes ...resource.Id) {
	c.skipDraws = true
	if c.skipPass {
		return
	}
	if !logger.Assert(len(meshes) > 0 && len(meshes) <= core.MaxNumInputMeshes, "gfx: %d input meshes", len(meshes)) {
		return
	}
	c.frameInfo.NumApplyDrawState++
	p := valid(c.pipelines, pip)
	if p == nil {
		return
	}
	shd := valid(c.shaders, p.Desc.Shader)
	if shd == nil {
		return
	}
	var msh [core.MaxNumInputMeshes]*Mesh
	for i, id := range meshes {
		msh[i] = c.meshes.Lookup(id)
	}
	c.renderer.ApplyDrawState(p, shd, msh[:len(meshes)])
	c.skipDraws = false
}

// ApplyUniformBlock uploads data into the uniform block at slot of stage.
// typeHash must match the shader's declared block layout.
func (c *Context) ApplyUniformBlock(stage core.ShaderStage, slot int, typeHash uint64, data []byte) {
	if c.skipDraws {
		return
	}
	c.frameInfo.NumApplyUniformBlock++
	c.renderer.ApplyUniformBlock(stage, slot, typeHash, data)
}

// ApplyUniforms is ApplyUniformBlock for blocks made of float32 values. The
// data is staged in the frame arena.
func (c *Context) ApplyUniforms(stage core.ShaderStage, slot int, typeHash uint64, v ...float32) {
	if c.skipDraws {
		return
	}
	c.ApplyUniformBlock(stage, slot, typeHash, c.arena.Float32s(v...))
}

// ApplyTextures binds textures to the leading slots of stage. Pending
// textures resolve to the texture placeholder; any other unresolvable
// texture skips the following draws.
func (c *Context) ApplyTextures(stage core.ShaderStage, textures ...resource.Id) {
	if c.skipDraws {
		return
	}
	limit := core.MaxNumFragmentTextures
	if stage == core.StageVS {
		limit = core.MaxNumVertexTextures
	}
	if !logger.Assert(len(textures) <= limit, "gfx: %d %s textures", len(textures), stage) {
		return
	}
	c.frameInfo.NumApplyTextures++
	var tex [core.MaxNumShaderTextures]*Texture
	for i, id := range textures {
		tex[i] = c.textures.Lookup(id)
	}
	c.renderer.ApplyTextures(stage, tex[:len(textures)])
}

// Draw draws a primitive group of the primary mesh. Instanced when
// numInstances is greater than one. Cancelled draws are not counted.
func (c *Context) Draw(primGroupIndex, numInstances int) {
	if c.skipDraws {
		return
	}
	if c.renderer.Draw(primGroupIndex, numInstances) {
		c.countDraw(numInstances)
	}
}

// DrawElements draws numElements vertices or indices starting at
// baseElement.
func (c *Context) DrawElements(baseElement, numElements, numInstances int) {
	if c.skipDraws {
		return
	}
	if c.renderer.DrawElements(baseElement, numElements, numInstances) {
		c.countDraw(numInstances)
	}
}

func (c *Context) countDraw(numInstances int) {
	if numInstances > 1 {
		c.frameInfo.NumDrawInstanced++
	} else {
		c.frameInfo.NumDraw++
	}
}

// UpdateVertices overwrites the vertex content of a dynamic or stream mesh.
// Only one update per mesh and frame is allowed.
func (c *Context) UpdateVertices(id resource.Id, data []byte) {
	msh := valid(c.meshes, id)
	if msh == nil {
		return
	}
	c.frameInfo.NumUpdateVertices++
	c.renderer.UpdateVertices(msh, data)
}

// UpdateIndices overwrites the index content of a dynamic or stream mesh.
func (c *Context) UpdateIndices(id resource.Id, data []byte) {
	msh := valid(c.meshes, id)
	if msh == nil {
		return
	}
	c.frameInfo.NumUpdateIndices++
	c.renderer.UpdateIndices(msh, data)
}

// UpdateTexture overwrites the content of a dynamic or stream texture. img
// locates each face and mip in data.
func (c *Context) UpdateTexture(id resource.Id, data []byte, img core.ImageDataAttrs) {
	tex := valid(c.textures, id)
	if tex == nil {
		return
	}
	c.frameInfo.NumUpdateTextures++
	c.renderer.UpdateTexture(tex, data, img)
}
