//go:build metal && !d3d11

package gfx

import (
	"fmt"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx/metal"
)

const backendName = "metal"

type (
	Mesh       = metal.Mesh
	Texture    = metal.Texture
	Shader     = metal.Shader
	Pipeline   = metal.Pipeline
	RenderPass = metal.RenderPass
	Renderer   = metal.Renderer
	Factory    = metal.Factory
)

func newBackend(disp core.Display, cfg core.Config) (*Renderer, *Factory, error) {
	d, ok := disp.(metal.Display)
	if !ok {
		return nil, nil, fmt.Errorf("%T is not a Metal display", disp)
	}
	r, err := metal.NewRenderer(d, metal.WithUniformBufferSize(cfg.UniformBufferSize))
	if err != nil {
		return nil, nil, err
	}
	return r, metal.NewFactory(r), nil
}
