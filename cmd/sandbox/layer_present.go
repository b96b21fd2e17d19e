package main

import (
	"fmt"
	"io/fs"

	"github.com/hubastard/prism/engine/assets"
	"github.com/hubastard/prism/engine/colors"
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
)

var tints = []colors.Color{colors.White, colors.Cyan, colors.Magenta, colors.Yellow}

// PresentLayer draws the scene target into the default framebuffer with a
// full-screen quad. M cycles the tint.
type PresentLayer struct {
	gfx     *gfx.Context
	shaders fs.FS
	scene   *SceneLayer

	quad     resource.Id
	pipeline resource.Id
	tintHash uint64
	tint     int
	frames   int
}

func (l *PresentLayer) OnAttach(e *core.Engine) {
	c := l.gfx
	desc, err := assets.NewShaderLibrary(l.shaders, "shaders").Load("present")
	if err != nil {
		logger.Error("sandbox: %v", err)
		return
	}
	shd := c.CreateShader(desc)
	l.tintHash = desc.UniformBlocks[0].Layout.TypeHash
	l.quad = c.CreateMesh(core.NewFullScreenQuadDesc(c.QueryFeature(core.FeatureOriginTopLeft)), nil)

	attrs := c.DisplayAttrs()
	pip := core.NewPipelineDesc(shd, desc.Inputs)
	pip.BlendState.ColorFormat = attrs.ColorPixelFormat
	pip.BlendState.DepthFormat = attrs.DepthPixelFormat
	pip.RasterizerState.SampleCount = attrs.SampleCount
	l.pipeline = c.CreatePipeline(pip)
}

func (l *PresentLayer) OnDetach(e *core.Engine) {
	l.gfx.Destroy(l.pipeline)
	l.gfx.Destroy(l.quad)
}

func (l *PresentLayer) OnUpdate(e *core.Engine, dt float64) {
	if e.Input.KeyPressed(core.KeyM) {
		l.tint = (l.tint + 1) % len(tints)
	}
}

func (l *PresentLayer) OnRender(e *core.Engine, alpha float64) {
	c := l.gfx
	attrs := c.DisplayAttrs()
	tint := tints[l.tint]
	c.BeginPass(resource.InvalidId, nil)
	c.ApplyViewPort(0, 0, attrs.FramebufferWidth, attrs.FramebufferHeight, false)
	c.ApplyDrawState(l.pipeline, l.quad)
	c.ApplyUniforms(core.StageFS, 0, l.tintHash, tint[:]...)
	c.ApplyTextures(core.StageFS, l.scene.target)
	c.Draw(0, 1)
	c.EndPass()

	l.frames++
	if l.frames%60 == 0 {
		fi := c.FrameInfo()
		e.Display.SetTitle(fmt.Sprintf("%s | frame %d | %d passes %d draws", c.Config().Title, e.FrameIndex(), fi.NumPasses, fi.NumDraw))
	}
}

func (l *PresentLayer) OnEvent(e *core.Engine, ev core.Event) bool { return false }
