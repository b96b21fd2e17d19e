package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/pelletier/go-toml/v2"

	"github.com/hubastard/prism/engine/core"
)

// ErrShaderNotFound is returned when a shader has no reflection file.
var ErrShaderNotFound = errors.New("assets: shader not found")

// shaderMeta mirrors the reflection file written next to each shader's
// sources, e.g. shaders/quad.toml:
//
//	[[inputs]]
//	attr = "position"
//	format = "Float3"
//
//	[[uniform_blocks]]
//	name = "fsParams"
//	stage = "fs"
//	slot = 0
//	uniforms = [{ name = "color", type = "vec4" }]
//
//	[programs.glsl330]
//	vs = "quad.glsl330.vert"
//	fs = "quad.glsl330.frag"
type shaderMeta struct {
	Inputs        []inputMeta            `toml:"inputs"`
	UniformBlocks []uniformBlockMeta     `toml:"uniform_blocks"`
	Textures      []textureMeta          `toml:"textures"`
	Programs      map[string]programMeta `toml:"programs"`
}

type inputMeta struct {
	Attr   string `toml:"attr"`
	Format string `toml:"format"`
}

type uniformMeta struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type uniformBlockMeta struct {
	Name     string        `toml:"name"`
	Stage    string        `toml:"stage"`
	Slot     int           `toml:"slot"`
	Uniforms []uniformMeta `toml:"uniforms"`
}

type textureMeta struct {
	Name  string `toml:"name"`
	Stage string `toml:"stage"`
	Slot  int    `toml:"slot"`
	Type  string `toml:"type"`
}

type programMeta struct {
	VS       string `toml:"vs"`
	FS       string `toml:"fs"`
	VSEntry  string `toml:"vs_entry"`
	FSEntry  string `toml:"fs_entry"`
	ByteCode bool   `toml:"bytecode"`
}

// ShaderLibrary builds shader descriptions from reflection files and the
// per-language sources they reference.
type ShaderLibrary struct {
	fsys fs.FS
	dir  string
}

// NewShaderLibrary reads shaders from dir inside fsys.
func NewShaderLibrary(fsys fs.FS, dir string) *ShaderLibrary {
	return &ShaderLibrary{fsys: fsys, dir: dir}
}

// Load returns the description of the named shader with every language
// the reflection file lists. The shader's name becomes its locator.
func (l *ShaderLibrary) Load(name string) (core.ShaderDesc, error) {
	metaPath := path.Join(l.dir, name+".toml")
	raw, err := fs.ReadFile(l.fsys, metaPath)
	if errors.Is(err, fs.ErrNotExist) {
		return core.ShaderDesc{}, fmt.Errorf("%w: %q", ErrShaderNotFound, name)
	}
	if err != nil {
		return core.ShaderDesc{}, fmt.Errorf("load shader %q: %w", name, err)
	}
	var meta shaderMeta
	if err := toml.Unmarshal(raw, &meta); err != nil {
		return core.ShaderDesc{}, fmt.Errorf("parse shader %q: %w", name, err)
	}

	desc := core.ShaderDesc{Locator: name}
	for _, in := range meta.Inputs {
		attr, format := core.ParseVertexAttr(in.Attr), core.ParseVertexFormat(in.Format)
		if attr == core.InvalidVertexAttr || format == core.InvalidVertexFormat {
			return desc, fmt.Errorf("shader %q: bad input %s/%s", name, in.Attr, in.Format)
		}
		desc.Inputs.Add(attr, format)
	}
	for _, ub := range meta.UniformBlocks {
		stage, err := parseStage(ub.Stage)
		if err != nil {
			return desc, fmt.Errorf("shader %q: uniform block %s: %w", name, ub.Name, err)
		}
		var layout core.UniformBlockLayout
		for _, u := range ub.Uniforms {
			t := core.ParseUniformType(u.Type)
			if t == core.InvalidUniformType {
				return desc, fmt.Errorf("shader %q: uniform %s.%s: unknown type %q", name, ub.Name, u.Name, u.Type)
			}
			layout.Add(u.Name, t)
		}
		desc.AddUniformBlock(ub.Name, stage, ub.Slot, layout)
	}
	for _, tex := range meta.Textures {
		stage, err := parseStage(tex.Stage)
		if err != nil {
			return desc, fmt.Errorf("shader %q: texture %s: %w", name, tex.Name, err)
		}
		t, err := parseTextureType(tex.Type)
		if err != nil {
			return desc, fmt.Errorf("shader %q: texture %s: %w", name, tex.Name, err)
		}
		desc.AddTexture(tex.Name, stage, tex.Slot, t)
	}
	for key, prog := range meta.Programs {
		lang, ok := parseShaderLang(key)
		if !ok {
			return desc, fmt.Errorf("shader %q: unknown language %q", name, key)
		}
		if err := l.loadProgram(&desc, lang, prog); err != nil {
			return desc, fmt.Errorf("shader %q: %s: %w", name, key, err)
		}
	}
	return desc, nil
}

func (l *ShaderLibrary) loadProgram(desc *core.ShaderDesc, lang core.ShaderLang, prog programMeta) error {
	vs, err := fs.ReadFile(l.fsys, path.Join(l.dir, prog.VS))
	if err != nil {
		return err
	}
	fsrc, err := fs.ReadFile(l.fsys, path.Join(l.dir, prog.FS))
	if err != nil {
		return err
	}
	if prog.ByteCode {
		desc.SetByteCode(lang, vs, fsrc)
	} else {
		desc.SetSource(lang, string(vs), string(fsrc))
	}
	desc.Programs[lang].VSEntry = prog.VSEntry
	desc.Programs[lang].FSEntry = prog.FSEntry
	return nil
}

func parseStage(s string) (core.ShaderStage, error) {
	switch s {
	case "vs":
		return core.StageVS, nil
	case "fs":
		return core.StageFS, nil
	}
	return core.NumShaderStages, fmt.Errorf("unknown stage %q", s)
}

func parseTextureType(s string) (core.TextureType, error) {
	switch s {
	case "", "2d":
		return core.Texture2D, nil
	case "cube":
		return core.TextureCube, nil
	case "3d":
		return core.Texture3D, nil
	case "array":
		return core.TextureArray, nil
	}
	return core.Texture2D, fmt.Errorf("unknown texture type %q", s)
}

func parseShaderLang(s string) (core.ShaderLang, bool) {
	for l := core.ShaderLang(0); l < core.NumShaderLangs; l++ {
		if l.String() == s {
			return l, true
		}
	}
	return core.NumShaderLangs, false
}
