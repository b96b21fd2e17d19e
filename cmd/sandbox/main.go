package main

import (
	"embed"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/hubastard/prism/engine/colors"
	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/platform"
	"github.com/hubastard/prism/engine/profiler"
)

//go:embed shaders textures
var sandboxFS embed.FS

const configFile = "sandbox.toml"

// App routes the frame loop into a layer stack once the gfx context exists.
type App struct {
	core.LayerApp
	gfx *gfx.Context
}

func (a *App) OnStart(e *core.Engine) {
	scene := &SceneLayer{gfx: a.gfx, shaders: sandboxFS}
	a.Layers.Push(scene)
	a.Layers.Push(&PresentLayer{gfx: a.gfx, shaders: sandboxFS, scene: scene})
	a.Layers.Push(&OverlayLayer{gfx: a.gfx, files: sandboxFS, scene: scene})
	a.LayerApp.OnStart(e)
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyEscape {
		if d, ok := e.Display.(*platform.GLFWDisplay); ok {
			d.RequestClose()
		}
		return
	}
	a.LayerApp.OnEvent(e, ev)
}

func (a *App) OnShutdown(e *core.Engine) {
	a.LayerApp.OnShutdown(e)
	if !profiler.Enabled {
		return
	}
	path := filepath.Join(os.TempDir(), "prism.speedscope.json")
	if err := profiler.WriteSpeedscope(path); err != nil {
		logger.Warn("sandbox: %v", err)
		return
	}
	logger.Info("sandbox: profile written to %s", path)
}

func loadConfig() core.Config {
	cfg, err := core.LoadConfig(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = core.DefaultConfig()
		cfg.Title = "prism sandbox"
		cfg.Width, cfg.Height = 1280, 720
		cfg.ClearColor = [4]float32(colors.DarkGray)
		return cfg
	}
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func main() {
	cfg := loadConfig()
	profiler.Init(1 << 16)
	app := &App{}

	var disp *platform.GLFWDisplay
	newDisplay := func(cfg core.Config) (core.Display, error) {
		var err error
		disp, err = platform.NewGLFWDisplay(cfg)
		return disp, err
	}
	newRenderer := func(d core.Display, cfg core.Config) (core.Renderer, error) {
		c, err := gfx.New(d, cfg)
		if err != nil {
			return nil, err
		}
		app.gfx = c
		return c, nil
	}

	err := core.Run(app, cfg, newDisplay, newRenderer)
	if disp != nil {
		disp.Destroy()
	}
	if err != nil {
		logger.Error("sandbox: %v", err)
		os.Exit(1)
	}
}
