package glcore

import (
	"fmt"
	"strings"

	"github.com/gogpu/wgpu/hal/gles/gl"
)

// maxDrain bounds how many codes Check pulls from the error queue. Some
// drivers keep returning the same code when the context is lost.
const maxDrain = 16

// Error is a failed GL operation. Code is the first code read from the
// error queue; Codes holds every code drained in the same check. Log is set
// for shader compile and program link failures.
type Error struct {
	Code   uint32
	Codes  []uint32
	Reason string
	API    string
	Log    string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason)
	b.WriteString(": ")
	b.WriteString(e.API)
	if len(e.Codes) > 0 {
		b.WriteString(": ")
		for i, c := range e.Codes {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (0x%04X)", ErrorName(c), c)
		}
	}
	if e.Log != "" {
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(e.Log))
	}
	return b.String()
}

// ErrorName returns the GL_* name of an error code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "GL_UNKNOWN_ERROR"
	}
}

// Check drains the GL error queue. It returns nil when the queue is empty,
// otherwise an *Error naming the API call that preceded the check.
func Check(g GL, reason, api string) error {
	var codes []uint32
	for range maxDrain {
		c := g.GetError()
		if c == gl.NO_ERROR {
			break
		}
		codes = append(codes, c)
	}
	if len(codes) == 0 {
		return nil
	}
	return &Error{Code: codes[0], Codes: codes, Reason: reason, API: api}
}
