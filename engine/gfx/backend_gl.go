//go:build !d3d11 && !metal

package gfx

import (
	"fmt"

	"github.com/hubastard/prism/engine/core"
	glbackend "github.com/hubastard/prism/engine/gfx/gl"
)

const backendName = "gl"

type (
	Mesh       = glbackend.Mesh
	Texture    = glbackend.Texture
	Shader     = glbackend.Shader
	Pipeline   = glbackend.Pipeline
	RenderPass = glbackend.RenderPass
	Renderer   = glbackend.Renderer
	Factory    = glbackend.Factory
)

func newBackend(disp core.Display, _ core.Config) (*Renderer, *Factory, error) {
	d, ok := disp.(glbackend.Display)
	if !ok {
		return nil, nil, fmt.Errorf("%T is not a GL display", disp)
	}
	r, err := glbackend.NewRenderer(d)
	if err != nil {
		return nil, nil, err
	}
	return r, glbackend.NewFactory(r), nil
}
