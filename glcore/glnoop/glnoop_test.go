package glnoop

import (
	"testing"
	"unsafe"

	"github.com/gogpu/wgpu/hal/gles/gl"
)

func TestAllocateAndRelease(t *testing.T) {
	g := New()
	tex := g.GenTextures(1)
	buf := g.GenBuffers(1)
	if tex == 0 || buf == 0 || tex == buf {
		t.Fatalf("GenTextures/GenBuffers = %d/%d, want distinct non-zero names", tex, buf)
	}
	if g.LiveTotal() != 2 {
		t.Errorf("LiveTotal() = %d, want 2", g.LiveTotal())
	}
	g.DeleteTextures(tex)
	g.DeleteBuffers(buf)
	if g.LiveTotal() != 0 {
		t.Errorf("LiveTotal() = %d after delete, want 0", g.LiveTotal())
	}
	if g.PendingErrors() != 0 {
		t.Errorf("PendingErrors() = %d, want 0", g.PendingErrors())
	}
}

func TestDoubleDeleteQueuesError(t *testing.T) {
	g := New()
	s := g.GenSamplers(1)
	g.DeleteSamplers(s)
	g.DeleteSamplers(s)
	if got := g.GetError(); got != gl.INVALID_VALUE {
		t.Errorf("GetError() = 0x%X, want GL_INVALID_VALUE", got)
	}
	if g.Deleted(Sampler) != 1 {
		t.Errorf("Deleted(Sampler) = %d, want 1", g.Deleted(Sampler))
	}
}

func TestFailAllocation(t *testing.T) {
	g := New()
	g.FailAllocation(2)
	if g.GenTextures(1) == 0 {
		t.Fatal("first allocation should succeed")
	}
	if name := g.GenBuffers(1); name != 0 {
		t.Errorf("second allocation = %d, want 0", name)
	}
	if got := g.GetError(); got != gl.OUT_OF_MEMORY {
		t.Errorf("GetError() = 0x%X, want GL_OUT_OF_MEMORY", got)
	}
	if g.GenBuffers(1) == 0 {
		t.Error("allocation after the injected failure should succeed")
	}
	if g.Allocations() != 3 {
		t.Errorf("Allocations() = %d, want 3", g.Allocations())
	}
}

func TestBufferUploads(t *testing.T) {
	g := New()
	b := g.GenBuffers(1)
	g.BindBuffer(gl.ARRAY_BUFFER, b)

	data := []float32{1, 2, 3, 4}
	g.BufferData(gl.ARRAY_BUFFER, len(data)*4, uintptr(unsafe.Pointer(&data[0])), gl.STATIC_DRAW)

	sub := []float32{9}
	g.BufferSubData(gl.ARRAY_BUFFER, 4, 4, uintptr(unsafe.Pointer(&sub[0])))

	got := g.BufferContents(b)
	if len(got) != 16 {
		t.Fatalf("len(BufferContents) = %d, want 16", len(got))
	}
	vals := unsafe.Slice((*float32)(unsafe.Pointer(&got[0])), 4)
	want := []float32{1, 9, 3, 4}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("buffer[%d] = %v, want %v", i, vals[i], want[i])
		}
	}
	if d, s := g.Uploads(); d != 1 || s != 1 {
		t.Errorf("Uploads() = %d, %d, want 1, 1", d, s)
	}
}

func TestBufferSubDataOutOfRange(t *testing.T) {
	g := New()
	b := g.GenBuffers(1)
	g.BindBuffer(gl.ARRAY_BUFFER, b)
	g.BufferData(gl.ARRAY_BUFFER, 4, 0, gl.STATIC_DRAW)
	g.BufferSubData(gl.ARRAY_BUFFER, 0, 8, 0)
	if got := g.GetError(); got != gl.INVALID_VALUE {
		t.Errorf("GetError() = 0x%X, want GL_INVALID_VALUE", got)
	}
}

func TestCompileAndLinkStatus(t *testing.T) {
	g := New()
	var status int32
	g.GetShaderiv(1, gl.COMPILE_STATUS, &status)
	if status != gl.TRUE {
		t.Errorf("compile status = %d, want GL_TRUE", status)
	}
	g.FailLink("missing main")
	g.GetProgramiv(1, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		t.Errorf("link status = %d, want GL_FALSE", status)
	}
	if got := g.GetProgramInfoLog(1); got != "missing main" {
		t.Errorf("GetProgramInfoLog() = %q", got)
	}
}

func TestDrawRequiresProgramAndVertexArray(t *testing.T) {
	g := New()
	g.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	if got := g.GetError(); got != gl.INVALID_OPERATION {
		t.Errorf("GetError() = 0x%X, want GL_INVALID_OPERATION", got)
	}
	g.UseProgram(g.CreateProgram())
	g.BindVertexArray(g.GenVertexArrays(1))
	g.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	if g.Draws() != 1 {
		t.Errorf("Draws() = %d, want 1", g.Draws())
	}
}

func TestKindString(t *testing.T) {
	if Texture.String() != "texture" || VertexArray.String() != "vertex array" {
		t.Errorf("unexpected kind names %q, %q", Texture, VertexArray)
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
