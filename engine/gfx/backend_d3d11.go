//go:build d3d11

package gfx

import (
	"fmt"

	"github.com/hubastard/prism/engine/core"
	"github.com/hubastard/prism/engine/gfx/d3d11"
)

const backendName = "d3d11"

type (
	Mesh       = d3d11.Mesh
	Texture    = d3d11.Texture
	Shader     = d3d11.Shader
	Pipeline   = d3d11.Pipeline
	RenderPass = d3d11.RenderPass
	Renderer   = d3d11.Renderer
	Factory    = d3d11.Factory
)

func newBackend(disp core.Display, _ core.Config) (*Renderer, *Factory, error) {
	d, ok := disp.(d3d11.Display)
	if !ok {
		return nil, nil, fmt.Errorf("%T is not a D3D11 display", disp)
	}
	r, err := d3d11.NewRenderer(d)
	if err != nil {
		return nil, nil, err
	}
	return r, d3d11.NewFactory(r), nil
}
