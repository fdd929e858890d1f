package background

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"

	"github.com/gogpu/arcam/internal/cache"
	"github.com/gogpu/arcam/internal/logx"
)

//go:embed shaders
var bundledShaders embed.FS

// Shader bundle paths.
const (
	VertexShaderFile   = "shaders/background_camera.vert"
	FragmentShaderFile = "shaders/background_camera.frag"
	WGSLShaderFile     = "shaders/background_camera.wgsl"
)

// CameraTextureUniform is the sampler uniform of the GLSL shaders.
const CameraTextureUniform = "u_CameraColorTexture"

// WGSL entry points.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// translations memoizes WGSL translation across surfaces, keyed by source.
var translations = cache.New[string, shaderSources](8)

// shaderSources is a linked pair of GLSL ES sources and the name of the
// sampler uniform the camera texture binds to.
type shaderSources struct {
	vertex   string
	fragment string
	sampler  string
}

func loadShaderSources(fsys fs.FS, target Target) (shaderSources, error) {
	if target == Target2D {
		src, err := fs.ReadFile(fsys, WGSLShaderFile)
		if err != nil {
			return shaderSources{}, fmt.Errorf("background: read shader: %w", err)
		}
		return translations.GetOrCreate(string(src), func() (shaderSources, error) {
			return compileWGSL(string(src))
		})
	}

	vert, err := fs.ReadFile(fsys, VertexShaderFile)
	if err != nil {
		return shaderSources{}, fmt.Errorf("background: read shader: %w", err)
	}
	frag, err := fs.ReadFile(fsys, FragmentShaderFile)
	if err != nil {
		return shaderSources{}, fmt.Errorf("background: read shader: %w", err)
	}
	return shaderSources{vertex: string(vert), fragment: string(frag), sampler: CameraTextureUniform}, nil
}

// compileWGSL translates the WGSL background shader to GLSL ES 3.00.
// GLSL ES has no separate sampler objects in shaders, so naga combines the
// texture and sampler into one uniform whose name is taken from the
// translation info.
func compileWGSL(src string) (shaderSources, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return shaderSources{}, fmt.Errorf("background: WGSL parse error: %w", err)
	}
	module, err := naga.Lower(ast)
	if err != nil {
		return shaderSources{}, fmt.Errorf("background: WGSL lower error: %w", err)
	}

	compile := func(entry string) (string, glsl.TranslationInfo, error) {
		code, info, err := glsl.Compile(module, glsl.Options{
			LangVersion:        glsl.VersionES300,
			EntryPoint:         entry,
			ForceHighPrecision: true,
		})
		if err != nil {
			return "", info, fmt.Errorf("background: GLSL compile error for entry point %q: %w", entry, err)
		}
		return code, info, nil
	}

	vert, _, err := compile(vertexEntryPoint)
	if err != nil {
		return shaderSources{}, err
	}
	frag, info, err := compile(fragmentEntryPoint)
	if err != nil {
		return shaderSources{}, err
	}

	names := make([]string, 0, len(info.TextureMappings))
	for name := range info.TextureMappings {
		names = append(names, name)
	}
	if len(names) == 0 {
		return shaderSources{}, fmt.Errorf("background: fragment shader samples no texture")
	}
	slices.Sort(names)

	logx.L().Debug("background: WGSL translated", "sampler", names[0], "vertexLen", len(vert), "fragmentLen", len(frag))
	return shaderSources{vertex: vert, fragment: frag, sampler: names[0]}, nil
}
