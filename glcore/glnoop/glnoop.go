// Package glnoop provides a GL implementation that performs no rendering.
//
// It allocates object names, tracks which objects are alive, keeps copies of
// buffer contents and records state changes, so code written against
// glcore.GL can be exercised without a GPU. Failures can be injected to test
// cleanup paths:
//   - FailAllocation makes the n-th object allocation return 0 and queue
//     GL_OUT_OF_MEMORY
//   - FailCompile and FailLink make shader compilation or linking fail
//   - QueueError pushes arbitrary codes onto the error queue
package glnoop

import (
	"sync"
	"unsafe"

	"github.com/gogpu/arcam/glcore"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

var _ glcore.GL = (*GL)(nil)

// Kind identifies a class of GL object.
type Kind int

// Object kinds tracked by GL.
const (
	Texture Kind = iota
	Sampler
	Shader
	Program
	Buffer
	VertexArray
	numKinds
)

var kindNames = [...]string{"texture", "sampler", "shader", "program", "buffer", "vertex array"}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// GL is a recording, non-rendering GL. It is safe for concurrent use.
type GL struct {
	mu sync.Mutex

	next    uint32
	allocs  int
	failAt  int
	live    [numKinds]map[uint32]struct{}
	created [numKinds]int
	deleted [numKinds]int
	errs    []uint32

	failCompile bool
	failLink    bool
	infoLog     string

	enabled     map[uint32]bool
	bound       map[uint32]uint32
	buffers     map[uint32][]byte
	bufferData  int
	bufferSub   int
	draws       int
	clears      int
	viewport    [4]int32
	clearColor  [4]float32
	texParams   map[uint32]int32
	uniforms    map[string]int32
	program     uint32
	vertexArray uint32
	textureUnit uint32
}

// New returns an empty GL.
func New() *GL {
	g := &GL{
		enabled:   make(map[uint32]bool),
		bound:     make(map[uint32]uint32),
		buffers:   make(map[uint32][]byte),
		texParams: make(map[uint32]int32),
		uniforms:  make(map[string]int32),
	}
	for k := range g.live {
		g.live[k] = make(map[uint32]struct{})
	}
	return g
}

// FailAllocation makes the n-th allocation from now fail. n <= 0 disables
// injection.
func (g *GL) FailAllocation(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n <= 0 {
		g.failAt = 0
		return
	}
	g.failAt = g.allocs + n
}

// FailCompile makes subsequent shader compilations fail with log.
func (g *GL) FailCompile(log string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failCompile, g.infoLog = true, log
}

// FailLink makes subsequent program links fail with log.
func (g *GL) FailLink(log string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failLink, g.infoLog = true, log
}

// QueueError pushes codes onto the error queue.
func (g *GL) QueueError(codes ...uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs = append(g.errs, codes...)
}

// PendingErrors returns the number of codes not yet read by GetError.
func (g *GL) PendingErrors() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.errs)
}

// Live returns the number of live objects of kind k.
func (g *GL) Live(k Kind) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live[k])
}

// LiveTotal returns the number of live objects of every kind.
func (g *GL) LiveTotal() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, m := range g.live {
		n += len(m)
	}
	return n
}

// Created returns how many objects of kind k were allocated.
func (g *GL) Created(k Kind) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.created[k]
}

// Deleted returns how many objects of kind k were released.
func (g *GL) Deleted(k Kind) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.deleted[k]
}

// Allocations returns the total number of allocation calls, including
// failed ones.
func (g *GL) Allocations() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.allocs
}

// BufferContents returns a copy of the data last uploaded to buffer.
func (g *GL) BufferContents(buffer uint32) []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]byte(nil), g.buffers[buffer]...)
}

// Uploads returns the number of BufferData and BufferSubData calls.
func (g *GL) Uploads() (data, sub int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.bufferData, g.bufferSub
}

// Draws returns the number of DrawArrays calls.
func (g *GL) Draws() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.draws
}

// Clears returns the number of Clear calls.
func (g *GL) Clears() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clears
}

// IsEnabled reports whether capability was last enabled.
func (g *GL) IsEnabled(capability uint32) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled[capability]
}

// CurrentViewport returns the last viewport set.
func (g *GL) CurrentViewport() [4]int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewport
}

// CurrentClearColor returns the last clear color set.
func (g *GL) CurrentClearColor() [4]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.clearColor
}

// TexParameter returns the last value set for pname on any texture.
func (g *GL) TexParameter(pname uint32) int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.texParams[pname]
}

// UniformLocation returns the location handed out for name, or -1.
func (g *GL) UniformLocation(name string) int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if loc, ok := g.uniforms[name]; ok {
		return loc
	}
	return -1
}

// alloc must be called with g.mu held.
func (g *GL) alloc(k Kind) uint32 {
	g.allocs++
	if g.failAt != 0 && g.allocs == g.failAt {
		g.errs = append(g.errs, gl.OUT_OF_MEMORY)
		return 0
	}
	g.next++
	g.live[k][g.next] = struct{}{}
	g.created[k]++
	return g.next
}

// release must be called with g.mu held.
func (g *GL) release(k Kind, names ...uint32) {
	for _, n := range names {
		if n == 0 {
			continue
		}
		if _, ok := g.live[k][n]; !ok {
			g.errs = append(g.errs, gl.INVALID_VALUE)
			continue
		}
		delete(g.live[k], n)
		g.deleted[k]++
		if k == Buffer {
			delete(g.buffers, n)
		}
	}
}

// GetError pops the oldest queued code.
func (g *GL) GetError() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.errs) == 0 {
		return gl.NO_ERROR
	}
	c := g.errs[0]
	g.errs = g.errs[1:]
	return c
}

func (g *GL) Enable(capability uint32) {
	g.mu.Lock()
	g.enabled[capability] = true
	g.mu.Unlock()
}

func (g *GL) Disable(capability uint32) {
	g.mu.Lock()
	g.enabled[capability] = false
	g.mu.Unlock()
}

func (g *GL) Clear(uint32) {
	g.mu.Lock()
	g.clears++
	g.mu.Unlock()
}

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.mu.Lock()
	g.clearColor = [4]float32{r, gr, b, a}
	g.mu.Unlock()
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.mu.Lock()
	g.viewport = [4]int32{x, y, width, height}
	g.mu.Unlock()
}

func (g *GL) ColorMask(_, _, _, _ bool) {}
func (g *GL) DepthMask(bool) {}
func (g *GL) BlendFuncSeparate(_, _, _, _ uint32) {}
func (g *GL) BlendEquationSeparate(_, _ uint32) {}
func (g *GL) BindFramebuffer(_, _ uint32) {}
func (g *GL) EnableVertexAttribArray(uint32) {}
func (g *GL) Uniform1i(_, _ int32) {}
func (g *GL) SamplerParameteri(_, _ uint32, _ int32) {}
func (g *GL) VertexAttribPointer(uint32, int32, uint32, bool, int32, uintptr) {}

func (g *GL) DrawArrays(uint32, int32, int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.program == 0 || g.vertexArray == 0 {
		g.errs = append(g.errs, gl.INVALID_OPERATION)
		return
	}
	g.draws++
}

func (g *GL) GenTextures(int32) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alloc(Texture)
}

func (g *GL) DeleteTextures(textures ...uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release(Texture, textures...)
}

func (g *GL) BindTexture(target, texture uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bound[target] = texture
}

func (g *GL) TexParameteri(target, pname uint32, param int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.bound[target] == 0 {
		g.errs = append(g.errs, gl.INVALID_OPERATION)
		return
	}
	g.texParams[pname] = param
}

func (g *GL) GenSamplers(int32) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alloc(Sampler)
}

func (g *GL) DeleteSamplers(samplers ...uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release(Sampler, samplers...)
}

func (g *GL) BindSampler(_, _ uint32) {}

func (g *GL) ActiveTexture(texture uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.textureUnit = texture
}

func (g *GL) CreateShader(uint32) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alloc(Shader)
}

func (g *GL) DeleteShader(shader uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release(Shader, shader)
}

func (g *GL) ShaderSource(uint32, string) {}
func (g *GL) CompileShader(uint32) {}

func (g *GL) GetShaderiv(_ uint32, pname uint32, params *int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if pname == gl.COMPILE_STATUS {
		*params = gl.TRUE
		if g.failCompile {
			*params = gl.FALSE
		}
	}
}

func (g *GL) GetShaderInfoLog(uint32) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.infoLog
}

func (g *GL) CreateProgram() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alloc(Program)
}

func (g *GL) DeleteProgram(program uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release(Program, program)
}

func (g *GL) AttachShader(_, _ uint32) {}
func (g *GL) LinkProgram(uint32) {}

func (g *GL) UseProgram(program uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.program = program
}

func (g *GL) GetProgramiv(_ uint32, pname uint32, params *int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if pname == gl.LINK_STATUS {
		*params = gl.TRUE
		if g.failLink {
			*params = gl.FALSE
		}
	}
}

func (g *GL) GetProgramInfoLog(uint32) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.infoLog
}

// GetUniformLocation hands out a stable location per uniform name.
func (g *GL) GetUniformLocation(_ uint32, name string) int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if loc, ok := g.uniforms[name]; ok {
		return loc
	}
	loc := int32(len(g.uniforms))
	g.uniforms[name] = loc
	return loc
}

func (g *GL) GenBuffers(int32) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alloc(Buffer)
}

func (g *GL) DeleteBuffers(buffers ...uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release(Buffer, buffers...)
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bound[target] = buffer
}

func (g *GL) BufferData(target uint32, size int, data uintptr, _ uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := g.bound[target]
	if b == 0 {
		g.errs = append(g.errs, gl.INVALID_OPERATION)
		return
	}
	g.bufferData++
	buf := make([]byte, size)
	if data != 0 && size > 0 {
		copy(buf, unsafe.Slice((*byte)(unsafe.Pointer(data)), size)) //nolint:govet // caller keeps data alive
	}
	g.buffers[b] = buf
}

func (g *GL) BufferSubData(target uint32, offset, size int, data uintptr) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := g.bound[target]
	buf := g.buffers[b]
	if b == 0 || offset < 0 || offset+size > len(buf) {
		g.errs = append(g.errs, gl.INVALID_VALUE)
		return
	}
	g.bufferSub++
	if data != 0 && size > 0 {
		copy(buf[offset:], unsafe.Slice((*byte)(unsafe.Pointer(data)), size)) //nolint:govet // caller keeps data alive
	}
}

func (g *GL) GenVertexArrays(int32) uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.alloc(VertexArray)
}

func (g *GL) DeleteVertexArrays(arrays ...uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release(VertexArray, arrays...)
}

func (g *GL) BindVertexArray(array uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vertexArray = array
}
