package background

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/arcam/glcore"
	"github.com/gogpu/arcam/internal/logx"
	"github.com/gogpu/arcam/tracking"
)

// ErrNotInitialized is returned when drawing before SurfaceCreated.
var ErrNotInitialized = errors.New("background: surface not created")

// Vertex attribute locations shared with the shaders.
const (
	positionAttrib = 0
	texCoordAttrib = 1
)

// quadVertices is a full-screen triangle strip in NDC:
// bottom left, bottom right, top left, top right.
var quadVertices = [8]float32{
	-1, -1,
	+1, -1,
	-1, +1,
	+1, +1,
}

// defaultTexCoords maps the quad to the whole texture, origin top left,
// until the tracker reports the display geometry.
var defaultTexCoords = [8]float32{
	0, 1,
	1, 1,
	0, 0,
	1, 0,
}

const quadBytes = len(quadVertices) * 4

// gpuState holds every GL object of the background.
type gpuState struct {
	texture        uint32
	sampler        uint32
	program        uint32
	quadBuffer     uint32
	texCoordBuffer uint32
	vertexArray    uint32
	samplerUniform int32

	// release frees the objects above in reverse creation order.
	release rollback
}

// rollback collects release functions for objects as they are created.
type rollback []func()

func (rb *rollback) add(fn func()) { *rb = append(*rb, fn) }

// run releases in reverse order and empties the list.
func (rb *rollback) run() {
	for i := len(*rb) - 1; i >= 0; i-- {
		(*rb)[i]()
	}
	*rb = nil
}

// Renderer draws the camera background. All methods must be called on the
// render thread with the GL context current.
type Renderer struct {
	gl   glcore.GL
	opts options

	state         *gpuState
	width, height int
	texCoords     [8]float32
	uploads       int
}

// New returns a renderer issuing calls on g. No GL objects are created
// until SurfaceCreated.
func New(g glcore.GL, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{gl: g, opts: o, texCoords: defaultTexCoords}
}

// SurfaceCreated creates the GL objects. On error every object created by
// this call has been released again. Calling it again releases the
// previous objects first.
func (r *Renderer) SurfaceCreated() error {
	if r.state != nil {
		r.Destroy()
	}
	src, err := loadShaderSources(r.opts.shaders, r.opts.target)
	if err != nil {
		return err
	}

	s := &gpuState{}
	if err := r.create(s, src); err != nil {
		s.release.run()
		logx.L().Warn("background: surface setup failed", "err", err)
		return err
	}
	r.state = s
	r.texCoords = defaultTexCoords
	logx.L().Debug("background: surface created",
		"target", r.opts.target, "texture", s.texture, "program", s.program)
	return nil
}

func (r *Renderer) create(s *gpuState, src shaderSources) error {
	g := r.gl
	target := r.opts.target.GL()
	smp := r.opts.sampler

	var err error
	s.texture, err = r.gen(&s.release, "Failed to create camera texture", "glGenTextures",
		func() uint32 { return g.GenTextures(1) }, func(n uint32) { g.DeleteTextures(n) })
	if err != nil {
		return err
	}
	g.BindTexture(target, s.texture)
	g.TexParameteri(target, gl.TEXTURE_MIN_FILTER, glcore.FilterParam(smp.MinFilter))
	g.TexParameteri(target, gl.TEXTURE_MAG_FILTER, glcore.FilterParam(smp.MagFilter))
	g.TexParameteri(target, gl.TEXTURE_WRAP_S, glcore.WrapParam(smp.AddressModeU))
	g.TexParameteri(target, gl.TEXTURE_WRAP_T, glcore.WrapParam(smp.AddressModeV))
	g.BindTexture(target, 0)
	if err := glcore.Check(g, "Failed to configure camera texture", "glTexParameteri"); err != nil {
		return err
	}

	s.sampler, err = r.gen(&s.release, "Failed to create sampler", "glGenSamplers",
		func() uint32 { return g.GenSamplers(1) }, func(n uint32) { g.DeleteSamplers(n) })
	if err != nil {
		return err
	}
	g.SamplerParameteri(s.sampler, gl.TEXTURE_MIN_FILTER, glcore.FilterParam(smp.MinFilter))
	g.SamplerParameteri(s.sampler, gl.TEXTURE_MAG_FILTER, glcore.FilterParam(smp.MagFilter))
	g.SamplerParameteri(s.sampler, gl.TEXTURE_WRAP_S, glcore.WrapParam(smp.AddressModeU))
	g.SamplerParameteri(s.sampler, gl.TEXTURE_WRAP_T, glcore.WrapParam(smp.AddressModeV))
	if err := glcore.Check(g, "Failed to configure sampler", "glSamplerParameteri"); err != nil {
		return err
	}

	if s.program, err = r.buildProgram(&s.release, src); err != nil {
		return err
	}
	s.samplerUniform = g.GetUniformLocation(s.program, src.sampler)
	if s.samplerUniform < 0 {
		return &glcore.Error{Reason: "Failed to locate uniform " + src.sampler, API: "glGetUniformLocation"}
	}
	g.UseProgram(s.program)
	g.Uniform1i(s.samplerUniform, 0)
	g.UseProgram(0)
	if err := glcore.Check(g, "Failed to set camera sampler unit", "glUniform1i"); err != nil {
		return err
	}

	s.quadBuffer, err = r.buffer(&s.release, quadVertices, gl.STATIC_DRAW)
	if err != nil {
		return err
	}
	s.texCoordBuffer, err = r.buffer(&s.release, defaultTexCoords, gl.DYNAMIC_DRAW)
	if err != nil {
		return err
	}

	s.vertexArray, err = r.gen(&s.release, "Failed to create vertex array", "glGenVertexArrays",
		func() uint32 { return g.GenVertexArrays(1) }, func(n uint32) { g.DeleteVertexArrays(n) })
	if err != nil {
		return err
	}
	g.BindVertexArray(s.vertexArray)
	g.BindBuffer(gl.ARRAY_BUFFER, s.quadBuffer)
	g.EnableVertexAttribArray(positionAttrib)
	g.VertexAttribPointer(positionAttrib, 2, gl.FLOAT, false, 0, 0)
	g.BindBuffer(gl.ARRAY_BUFFER, s.texCoordBuffer)
	g.EnableVertexAttribArray(texCoordAttrib)
	g.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 0, 0)
	g.BindVertexArray(0)
	g.BindBuffer(gl.ARRAY_BUFFER, 0)
	return glcore.Check(g, "Failed to configure vertex array", "glVertexAttribPointer")
}

// gen allocates one object and registers its release with rb.
func (r *Renderer) gen(rb *rollback, reason, api string, create func() uint32, release func(uint32)) (uint32, error) {
	name := create()
	if err := glcore.Check(r.gl, reason, api); err != nil {
		if name != 0 {
			release(name)
		}
		return 0, err
	}
	if name == 0 {
		return 0, &glcore.Error{Reason: reason, API: api}
	}
	rb.add(func() { release(name) })
	return name, nil
}

// buffer creates an array buffer holding data.
func (r *Renderer) buffer(rb *rollback, data [8]float32, usage uint32) (uint32, error) {
	g := r.gl
	name, err := r.gen(rb, "Failed to create vertex buffer", "glGenBuffers",
		func() uint32 { return g.GenBuffers(1) }, func(n uint32) { g.DeleteBuffers(n) })
	if err != nil {
		return 0, err
	}
	g.BindBuffer(gl.ARRAY_BUFFER, name)
	g.BufferData(gl.ARRAY_BUFFER, quadBytes, uintptr(unsafe.Pointer(&data[0])), usage)
	runtime.KeepAlive(&data)
	g.BindBuffer(gl.ARRAY_BUFFER, 0)
	if err := glcore.Check(g, "Failed to populate vertex buffer", "glBufferData"); err != nil {
		return 0, err
	}
	return name, nil
}

// buildProgram compiles and links src. Shader objects are deleted before
// it returns, whether linking succeeded or not.
func (r *Renderer) buildProgram(rb *rollback, src shaderSources) (uint32, error) {
	g := r.gl
	vs, err := r.compile(gl.VERTEX_SHADER, src.vertex)
	if err != nil {
		return 0, err
	}
	defer g.DeleteShader(vs)
	fs, err := r.compile(gl.FRAGMENT_SHADER, src.fragment)
	if err != nil {
		return 0, err
	}
	defer g.DeleteShader(fs)

	program, err := r.gen(rb, "Failed to create program", "glCreateProgram", g.CreateProgram, g.DeleteProgram)
	if err != nil {
		return 0, err
	}
	g.AttachShader(program, vs)
	g.AttachShader(program, fs)
	g.LinkProgram(program)

	var status int32
	g.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, &glcore.Error{Reason: "Failed to link shader program", API: "glLinkProgram", Log: g.GetProgramInfoLog(program)}
	}
	if err := glcore.Check(g, "Failed to link shader program", "glLinkProgram"); err != nil {
		return 0, err
	}
	return program, nil
}

func (r *Renderer) compile(kind uint32, source string) (uint32, error) {
	g := r.gl
	shader := g.CreateShader(kind)
	if err := glcore.Check(g, "Failed to create shader", "glCreateShader"); err != nil || shader == 0 {
		if shader != 0 {
			g.DeleteShader(shader)
		}
		if err == nil {
			err = &glcore.Error{Reason: "Failed to create shader", API: "glCreateShader"}
		}
		return 0, err
	}
	g.ShaderSource(shader, source)
	g.CompileShader(shader)

	var status int32
	g.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := g.GetShaderInfoLog(shader)
		g.DeleteShader(shader)
		return 0, &glcore.Error{Reason: "Failed to compile shader", API: "glCompileShader", Log: log}
	}
	return shader, nil
}

// SurfaceChanged records the viewport size used by Draw.
func (r *Renderer) SurfaceChanged(width, height int) {
	r.width, r.height = width, height
}

// UpdateDisplayGeometry re-projects the quad's texture coordinates when the
// frame reports a display geometry change. Otherwise it does nothing.
func (r *Renderer) UpdateDisplayGeometry(frame tracking.Frame) error {
	if r.state == nil {
		return ErrNotInitialized
	}
	if !frame.HasDisplayGeometryChanged() {
		return nil
	}
	frame.TransformCoordinates2D(
		tracking.OpenGLNormalizedDeviceCoordinates, tracking.TextureNormalized,
		quadVertices[:], r.texCoords[:])

	g := r.gl
	g.BindBuffer(gl.ARRAY_BUFFER, r.state.texCoordBuffer)
	g.BufferSubData(gl.ARRAY_BUFFER, 0, quadBytes, uintptr(unsafe.Pointer(&r.texCoords[0])))
	runtime.KeepAlive(r)
	g.BindBuffer(gl.ARRAY_BUFFER, 0)
	r.uploads++
	return glcore.Check(g, "Failed to update texture coordinates", "glBufferSubData")
}

// Draw draws the camera image over the whole viewport, replacing what is
// there, without writing depth.
func (r *Renderer) Draw() error {
	s := r.state
	if s == nil {
		return ErrNotInitialized
	}
	g := r.gl
	target := r.opts.target.GL()

	g.BindFramebuffer(gl.FRAMEBUFFER, 0)
	g.Disable(gl.DEPTH_TEST)
	g.Disable(gl.STENCIL_TEST)
	g.Disable(gl.SCISSOR_TEST)
	g.Disable(gl.CULL_FACE)
	g.ColorMask(true, true, true, true)
	g.DepthMask(false)
	if r.width > 0 && r.height > 0 {
		g.Viewport(0, 0, int32(r.width), int32(r.height))
	}
	g.Enable(gl.BLEND)
	glcore.ApplyBlend(g, gputypes.BlendStateReplace())

	g.UseProgram(s.program)
	g.ActiveTexture(gl.TEXTURE0)
	g.BindTexture(target, s.texture)
	g.BindSampler(0, s.sampler)
	g.BindVertexArray(s.vertexArray)
	g.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	g.BindVertexArray(0)
	g.BindSampler(0, 0)
	g.BindTexture(target, 0)
	g.UseProgram(0)
	g.DepthMask(true)
	return glcore.Check(g, "Failed to draw background", "glDrawArrays")
}

// Destroy releases every GL object. The renderer can be set up again with
// SurfaceCreated.
func (r *Renderer) Destroy() {
	if r.state == nil {
		return
	}
	r.state.release.run()
	r.state = nil
}

// CameraTextureID returns the texture camera images must be written to,
// or 0 before SurfaceCreated.
func (r *Renderer) CameraTextureID() uint32 {
	if r.state == nil {
		return 0
	}
	return r.state.texture
}

// Target returns the camera texture target.
func (r *Renderer) Target() Target { return r.opts.target }

// TexCoords returns the texture coordinates currently uploaded for the
// quad's four vertices.
func (r *Renderer) TexCoords() [8]float32 { return r.texCoords }

// Uploads returns how many texture coordinate updates were uploaded.
func (r *Renderer) Uploads() int { return r.uploads }

// Ready reports whether the GL objects exist.
func (r *Renderer) Ready() bool { return r.state != nil }

// Objects returns how many GL objects the renderer currently owns.
func (r *Renderer) Objects() int {
	if r.state == nil {
		return 0
	}
	return len(r.state.release)
}
