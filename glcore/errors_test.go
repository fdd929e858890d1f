package glcore_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/arcam/glcore"
	"github.com/gogpu/arcam/glcore/glnoop"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

func TestCheckEmptyQueue(t *testing.T) {
	if err := glcore.Check(glnoop.New(), "setup", "glGenTextures"); err != nil {
		t.Errorf("Check() = %v, want nil", err)
	}
}

func TestCheckDrainsAllCodes(t *testing.T) {
	g := glnoop.New()
	g.QueueError(gl.INVALID_ENUM, gl.INVALID_OPERATION)

	err := glcore.Check(g, "Failed to create texture", "glTexParameteri")
	var glErr *glcore.Error
	if !errors.As(err, &glErr) {
		t.Fatalf("Check() = %v, want *glcore.Error", err)
	}
	if glErr.Code != gl.INVALID_ENUM {
		t.Errorf("Code = 0x%X, want 0x%X", glErr.Code, gl.INVALID_ENUM)
	}
	if len(glErr.Codes) != 2 {
		t.Errorf("len(Codes) = %d, want 2", len(glErr.Codes))
	}
	if g.PendingErrors() != 0 {
		t.Errorf("PendingErrors() = %d after Check, want 0", g.PendingErrors())
	}

	msg := err.Error()
	for _, want := range []string{"Failed to create texture", "glTexParameteri", "GL_INVALID_ENUM (0x0500)", "GL_INVALID_OPERATION (0x0502)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestCheckBoundedDrain(t *testing.T) {
	g := glnoop.New()
	for range 40 {
		g.QueueError(gl.OUT_OF_MEMORY)
	}
	err := glcore.Check(g, "draw", "glDrawArrays")
	var glErr *glcore.Error
	if !errors.As(err, &glErr) {
		t.Fatalf("Check() = %v, want *glcore.Error", err)
	}
	if len(glErr.Codes) >= 40 {
		t.Errorf("Check drained %d codes, want a bounded drain", len(glErr.Codes))
	}
}

func TestErrorName(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{gl.NO_ERROR, "GL_NO_ERROR"},
		{gl.INVALID_ENUM, "GL_INVALID_ENUM"},
		{gl.INVALID_VALUE, "GL_INVALID_VALUE"},
		{gl.INVALID_OPERATION, "GL_INVALID_OPERATION"},
		{gl.OUT_OF_MEMORY, "GL_OUT_OF_MEMORY"},
		{gl.INVALID_FRAMEBUFFER_OPERATION, "GL_INVALID_FRAMEBUFFER_OPERATION"},
		{0x1234, "GL_UNKNOWN_ERROR"},
	}
	for _, tt := range tests {
		if got := glcore.ErrorName(tt.code); got != tt.want {
			t.Errorf("ErrorName(0x%X) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestErrorIncludesLog(t *testing.T) {
	err := &glcore.Error{Reason: "Shader compilation failed", API: "glCompileShader", Log: "  0:1: syntax error\n"}
	if got := err.Error(); got != "Shader compilation failed: glCompileShader: 0:1: syntax error" {
		t.Errorf("Error() = %q", got)
	}
}
