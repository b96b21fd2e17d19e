package assets

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/prism/engine/core"
)

const quadMeta = `
[[inputs]]
attr = "position"
format = "Float3"

[[inputs]]
attr = "texcoord0"
format = "Float2"

[[uniform_blocks]]
name = "fsParams"
stage = "fs"
slot = 0
uniforms = [{ name = "color", type = "vec4" }, { name = "mvp", type = "mat4" }]

[[textures]]
name = "tex"
stage = "fs"
slot = 0

[programs.glsl330]
vs = "quad.glsl330.vert"
fs = "quad.glsl330.frag"

[programs.hlsl5]
vs = "quad.vs.cso"
fs = "quad.ps.cso"
bytecode = true

[programs.metal]
vs = "quad.metal"
fs = "quad.metal"
vs_entry = "quad_vs"
fs_entry = "quad_fs"
`

func testShaderFS() fstest.MapFS {
	return fstest.MapFS{
		"shaders/quad.toml":         {Data: []byte(quadMeta)},
		"shaders/quad.glsl330.vert": {Data: []byte("#version 330\n// vs")},
		"shaders/quad.glsl330.frag": {Data: []byte("#version 330\n// fs")},
		"shaders/quad.vs.cso":       {Data: []byte{0xDE, 0xAD}},
		"shaders/quad.ps.cso":       {Data: []byte{0xBE, 0xEF}},
		"shaders/quad.metal":        {Data: []byte("#include <metal_stdlib>")},
	}
}

func TestShaderLibraryLoad(t *testing.T) {
	lib := NewShaderLibrary(testShaderFS(), "shaders")
	desc, err := lib.Load("quad")
	require.NoError(t, err)

	assert.Equal(t, "quad", desc.Locator)
	assert.Equal(t, 2, desc.Inputs.NumComponents())
	assert.True(t, desc.Inputs.Contains(core.AttrTexCoord0))
	assert.Equal(t, 20, desc.Inputs.ByteSize())

	require.Len(t, desc.UniformBlocks, 1)
	ub := desc.UniformBlocks[0]
	assert.Equal(t, core.StageFS, ub.Stage)
	assert.Equal(t, 2, ub.Layout.NumComponents())
	assert.Equal(t, 80, ub.Layout.ByteSize())

	require.Len(t, desc.Textures, 1)
	assert.Equal(t, core.Texture2D, desc.Textures[0].Type)

	assert.Equal(t, "#version 330\n// vs", desc.Programs[core.GLSL330].VSSource)
	assert.Equal(t, []byte{0xBE, 0xEF}, desc.Programs[core.HLSL5].FSByteCode)
	assert.Empty(t, desc.Programs[core.HLSL5].FSSource)
	assert.Equal(t, "quad_fs", desc.Programs[core.MSL].FSEntry)
	assert.True(t, desc.Programs[core.GLSLES3].Empty())
}

func TestShaderLibraryNotFound(t *testing.T) {
	lib := NewShaderLibrary(testShaderFS(), "shaders")
	_, err := lib.Load("missing")
	assert.ErrorIs(t, err, ErrShaderNotFound)
}

func TestShaderLibraryRejectsBadMetadata(t *testing.T) {
	cases := map[string]string{
		"attr":     "[[inputs]]\nattr = \"bogus\"\nformat = \"Float3\"\n",
		"uniform":  "[[uniform_blocks]]\nname = \"p\"\nstage = \"vs\"\nuniforms = [{ name = \"x\", type = \"dvec4\" }]\n",
		"stage":    "[[textures]]\nname = \"t\"\nstage = \"gs\"\n",
		"language": "[programs.spirv]\nvs = \"a\"\nfs = \"b\"\n",
		"source":   "[programs.glsl330]\nvs = \"nope.vert\"\nfs = \"nope.frag\"\n",
		"syntax":   "[[inputs]\n",
	}
	for name, meta := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"bad.toml": {Data: []byte(meta)}}
			_, err := NewShaderLibrary(fsys, ".").Load("bad")
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrShaderNotFound)
		})
	}
}
