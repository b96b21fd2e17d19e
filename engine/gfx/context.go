// Package gfx is the resource and render-command API of the engine. A
// Context bundles the resource pools with the Factory and Renderer of the
// backend selected at build time: GL by default, D3D11 with -tags d3d11 and
// Metal with -tags metal.
//
// A Context belongs to the thread that owns the native graphics context.
// Calling into it from any other goroutine is undefined behavior; nothing
// checks for it.
package gfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/logger"
	"github.com/hubastard/prism/engine/profiler"
	"github.com/hubastard/prism/engine/resource"
	"github.com/hubastard/prism/engine/scratch"
)

// ErrBackendSetup is returned by New when the backend cannot be created on
// the given display.
var ErrBackendSetup = errors.New("gfx: backend setup failed")

// ResourceInfo describes one pooled resource.
type ResourceInfo struct {
	State    resource.State
	Label    resource.Label
	Locator  string
	UseCount int
}

// Context owns every graphics resource created through it.
type Context struct {
	cfg      core.Config
	disp     core.Display
	renderer *Renderer
	factory  *Factory
	registry *resource.Registry
	arena    *scratch.Arena

	meshes    *resource.Pool[Mesh]
	textures  *resource.Pool[Texture]
	shaders   *resource.Pool[Shader]
	pipelines *resource.Pool[Pipeline]
	passes    *resource.Pool[RenderPass]

	inPass      bool
	skipPass    bool
	skipDraws   bool
	endScope    func()
	clearAction core.PassAction
	frameInfo   core.FrameInfo
}

var _ core.Renderer = (*Context)(nil)

// New creates the backend on disp and sizes the resource pools from cfg.
func New(disp core.Display, cfg core.Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, f, err := newBackend(disp, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendSetup, err)
	}
	c := &Context{
		cfg:         cfg,
		disp:        disp,
		renderer:    r,
		factory:     f,
		registry:    resource.NewRegistry(),
		arena:       scratch.NewArena(cfg.ScratchCapacity),
		meshes:      resource.NewPool[Mesh](core.ResourceMesh, cfg.PoolSize(core.ResourceMesh)),
		textures:    resource.NewPool[Texture](core.ResourceTexture, cfg.PoolSize(core.ResourceTexture)),
		shaders:     resource.NewPool[Shader](core.ResourceShader, cfg.PoolSize(core.ResourceShader)),
		pipelines:   resource.NewPool[Pipeline](core.ResourcePipeline, cfg.PoolSize(core.ResourcePipeline)),
		passes:      resource.NewPool[RenderPass](core.ResourcePass, cfg.PoolSize(core.ResourcePass)),
		clearAction: core.ClearPassAction(mgl32.Vec4(cfg.ClearColor), 1, 0),
		skipDraws:   true,
	}
	attrs := disp.DisplayAttrs()
	logger.With(logger.Fields{
		"backend": backendName,
		"width":   attrs.FramebufferWidth,
		"height":  attrs.FramebufferHeight,
		"samples": attrs.SampleCount,
	}).Info("gfx: context ready")
	return c, nil
}

// Discard destroys every resource and then the backend. The Context must
// not be used afterwards.
func (c *Context) Discard() {
	if c.renderer == nil {
		return
	}
	c.destroyAll()
	c.renderer.Discard()
	c.renderer = nil
	c.factory = nil
}

func (c *Context) destroyAll() {
	var ids []resource.Id
	collect := func(id resource.Id, _ resource.State) { ids = append(ids, id) }
	eachId(c.passes, collect)
	eachId(c.pipelines, collect)
	eachId(c.shaders, collect)
	eachId(c.meshes, collect)
	eachId(c.textures, collect)
	for _, id := range ids {
		c.destroy(id)
	}
	c.registry = resource.NewRegistry()
}

func eachId[T any](p *resource.Pool[T], fn func(resource.Id, resource.State)) {
	p.Each(func(id resource.Id, st resource.State, _ *T) { fn(id, st) })
}

// Config returns the configuration the Context was created with.
func (c *Context) Config() core.Config { return c.cfg }

// Display returns the display the Context renders into.
func (c *Context) Display() core.Display { return c.disp }

// DisplayAttrs returns the current attributes of the default framebuffer.
func (c *Context) DisplayAttrs() core.DisplayAttrs { return c.disp.DisplayAttrs() }

// PassAttrs returns the attributes of the current pass.
func (c *Context) PassAttrs() core.DisplayAttrs { return c.renderer.PassAttrs() }

// Renderer exposes the backend renderer for backend specific queries.
func (c *Context) Renderer() *Renderer { return c.renderer }

// QueryFeature reports whether the backend supports an optional feature.
func (c *Context) QueryFeature(f core.Feature) bool { return c.renderer.QueryFeature(f) }

// FrameInfo returns the render command counters of the current frame.
func (c *Context) FrameInfo() core.FrameInfo { return c.frameInfo }

// Arena returns the per-frame scratch memory. It is cleared by CommitFrame.
func (c *Context) Arena() *scratch.Arena { return c.arena }

// HandleEvent reacts to display events. A modified display may have
// recreated native objects behind the renderer's back, so the state cache
// is reset.
func (c *Context) HandleEvent(ev core.Event) {
	if m, ok := ev.(core.EventDisplayModified); ok {
		logger.Dbg("gfx: display modified to %dx%d", m.Attrs.FramebufferWidth, m.Attrs.FramebufferHeight)
		c.renderer.ResetStateCache()
	}
}

// ResetStateCache forgets all state the renderer believes to be bound.
// Call it after touching the native context directly.
func (c *Context) ResetStateCache() { c.renderer.ResetStateCache() }

// CommitFrame finishes the frame and presents the display.
func (c *Context) CommitFrame() {
	defer profiler.Start("gfx.CommitFrame")()
	if !logger.Assert(!c.inPass, "gfx: CommitFrame inside a pass") {
		c.EndPass()
	}
	c.renderer.CommitFrame()
	c.disp.Present()
	c.arena.Clear()
	c.frameInfo = core.FrameInfo{}
}
