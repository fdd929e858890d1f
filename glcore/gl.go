package glcore

// GL is the subset of OpenGL ES 3.0 entry points arcam issues.
//
// Method signatures follow *gl.Context on Linux so the wgpu loader can be
// used directly. Object names are uint32; 0 means "no object".
type GL interface {
	GetError() uint32

	Enable(capability uint32)
	Disable(capability uint32)
	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	Viewport(x, y, width, height int32)
	ColorMask(r, g, b, a bool)
	DepthMask(flag bool)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BindFramebuffer(target, framebuffer uint32)
	DrawArrays(mode uint32, first, count int32)

	GenTextures(n int32) uint32
	DeleteTextures(textures ...uint32)
	BindTexture(target, texture uint32)
	ActiveTexture(texture uint32)
	TexParameteri(target, pname uint32, param int32)

	GenSamplers(n int32) uint32
	DeleteSamplers(samplers ...uint32)
	BindSampler(unit, sampler uint32)
	SamplerParameteri(sampler, pname uint32, param int32)

	CreateShader(shaderType uint32) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string

	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	UseProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, value int32)

	GenBuffers(n int32) uint32
	DeleteBuffers(buffers ...uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data uintptr, usage uint32)
	BufferSubData(target uint32, offset, size int, data uintptr)

	GenVertexArrays(n int32) uint32
	DeleteVertexArrays(arrays ...uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset uintptr)
}

// Enums missing from the wgpu gl constant table.
const (
	// TEXTURE_EXTERNAL_OES is the GL_OES_EGL_image_external texture target
	// camera images are streamed into.
	TEXTURE_EXTERNAL_OES = 0x8D65 //nolint:revive // GL naming
)
