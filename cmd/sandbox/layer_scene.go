package main

import (
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/prism/engine/assets"
	"github.com/hubastard/prism/engine/colors"
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
	"github.com/hubastard/prism/engine/scene"
)

const targetSize = 512

// SceneLayer renders a spinning triangle into a multisampled offscreen
// render target. WASD pans the camera, space pauses the rotation.
type SceneLayer struct {
	gfx     *gfx.Context
	shaders fs.FS

	label    resource.Label
	target   resource.Id
	pass     resource.Id
	mesh     resource.Id
	pipeline resource.Id
	mvpHash  uint64
	action   core.PassAction
	cam      *scene.OrthoCamera2D
	ctrl     *scene.OrthoController2D

	angle  float32
	paused bool
}

func (l *SceneLayer) OnAttach(e *core.Engine) {
	c := l.gfx
	l.label = c.PushResourceLabel()
	defer c.PopResourceLabel()

	samples := 1
	if c.QueryFeature(core.FeatureMSAARenderTargets) {
		samples = 4
	}
	l.target = c.CreateTexture(core.NewRenderTargetDesc(targetSize, targetSize, core.PixelFormatRGBA8, core.PixelFormatDEPTHSTENCIL, samples), nil)
	l.pass = c.CreatePass(core.NewPassDesc(l.target, l.target))
	l.action = core.ClearPassAction(colors.Black.Vec4(), 1, 0)
	l.cam = scene.NewOrtho2D(1, 1)
	l.ctrl = scene.NewOrthoController2D(l.cam)

	desc, err := assets.NewShaderLibrary(l.shaders, "shaders").Load("scene")
	if err != nil {
		logger.Error("sandbox: %v", err)
		return
	}
	shd := c.CreateShader(desc)
	l.mvpHash = desc.UniformBlocks[0].Layout.TypeHash

	vertices := c.Arena().Float32s(
		0, 0.6, 0, 1, 0, 0, 1,
		0.5, -0.4, 0, 0, 1, 0, 1,
		-0.5, -0.4, 0, 0, 0, 1, 1,
	)
	l.mesh = c.CreateMesh(core.NewMeshDesc(desc.Inputs, 3, core.IndexNone, 0, core.PrimitiveGroup{NumElements: 3}), vertices)

	pip := core.NewPipelineDesc(shd, desc.Inputs)
	pip.BlendState.ColorFormat = core.PixelFormatRGBA8
	pip.BlendState.DepthFormat = core.PixelFormatDEPTHSTENCIL
	pip.RasterizerState.SampleCount = samples
	l.pipeline = c.CreatePipeline(pip)
	logger.Info("sandbox: scene target %dx%d, %d samples", targetSize, targetSize, samples)
}

func (l *SceneLayer) OnDetach(e *core.Engine) { l.gfx.DestroyResources(l.label) }

func (l *SceneLayer) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(e.Input, float32(dt))
	if e.Input.KeyPressed(core.KeySpace) {
		l.paused = !l.paused
	}
	if !l.paused {
		l.angle += float32(dt)
	}
}

func (l *SceneLayer) OnRender(e *core.Engine, alpha float64) {
	c := l.gfx
	mvp := l.cam.ViewProj().Mul4(mgl32.HomogRotate3DZ(l.angle))
	c.BeginPass(l.pass, &l.action)
	c.ApplyDrawState(l.pipeline, l.mesh)
	c.ApplyUniforms(core.StageVS, 0, l.mvpHash, mvp[:]...)
	c.Draw(0, 1)
	c.EndPass()
}

func (l *SceneLayer) OnEvent(e *core.Engine, ev core.Event) bool { return false }
