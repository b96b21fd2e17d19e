package main

import (
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/prism/engine/assets"
	"github.com/hubastard/prism/engine/colors"
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx"
	"github.com/hubastard/prism/engine/gfx/renderer2d"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/resource"
)

const checkerFile = "textures/checker.png"

type loadedImage struct {
	desc core.TextureDesc
	pix  []byte
	err  error
}

// OverlayLayer draws a 2D overlay on top of the presented scene. Its
// texture is decoded on a worker goroutine and created on the render
// thread once ready; until then the white texture stands in.
type OverlayLayer struct {
	gfx    *gfx.Context
	files  fs.FS
	batch  *renderer2d.Renderer2D
	scene  *SceneLayer
	logo   resource.Id
	loaded chan loadedImage
}

func (l *OverlayLayer) OnAttach(e *core.Engine) {
	c := l.gfx
	desc, err := assets.NewShaderLibrary(l.files, "shaders").Load("sprite")
	if err == nil {
		l.batch, err = renderer2d.New(c, desc, 256)
	}
	if err != nil {
		logger.Error("sandbox: overlay disabled: %v", err)
		return
	}
	c.SetPlaceholder(l.batch.White())

	l.logo = c.AllocTexture(checkerFile)
	l.loaded = make(chan loadedImage, 1)
	go func() {
		desc, pix, err := assets.LoadPNG(l.files, checkerFile)
		l.loaded <- loadedImage{desc: desc, pix: pix, err: err}
	}()
}

func (l *OverlayLayer) OnDetach(e *core.Engine) {
	if l.batch == nil {
		return
	}
	l.gfx.Destroy(l.logo)
	l.batch.Discard()
}

func (l *OverlayLayer) OnUpdate(e *core.Engine, dt float64) {
	select {
	case img := <-l.loaded:
		if img.err != nil {
			logger.Warn("sandbox: %v", img.err)
			l.gfx.FailResource(l.logo)
			return
		}
		img.desc.Sampler.MinFilter = core.FilterNearest
		img.desc.Sampler.MagFilter = core.FilterNearest
		l.gfx.InitTexture(l.logo, img.desc, img.pix)
	default:
	}
}

func (l *OverlayLayer) OnRender(e *core.Engine, alpha float64) {
	if l.batch == nil {
		return
	}
	c := l.gfx
	attrs := c.DisplayAttrs()
	w, h := float32(attrs.FramebufferWidth), float32(attrs.FramebufferHeight)

	c.BeginPass(resource.InvalidId, &loadAction)
	l.batch.Begin(mgl32.Ortho2D(0, w, 0, h))
	l.batch.DrawTexturedQuad(48, h-48, 64, 64, l.logo, colors.White, 0)
	bar := colors.Green
	if l.scene.paused {
		bar = colors.Red
	}
	l.batch.DrawQuad(w-40, h-24, 48, 16, bar.WithAlpha(0.8), 0)
	l.batch.End()
	c.EndPass()
}

func (l *OverlayLayer) OnEvent(e *core.Engine, ev core.Event) bool { return false }

var loadAction = core.LoadPassAction()
