//go:build linux && !(js && wasm)

package glcore

import (
	"fmt"

	"github.com/gogpu/wgpu/hal/gles/egl"
	"github.com/gogpu/wgpu/hal/gles/gl"
)

var _ GL = (*gl.Context)(nil)

// LoadCurrent resolves GL ES entry points through EGL. The caller's EGL
// context must be current on the calling goroutine's thread, which is the
// case inside the host's surface callbacks.
func LoadCurrent() (*gl.Context, error) {
	if err := egl.Init(); err != nil {
		return nil, fmt.Errorf("glcore: egl init: %w", err)
	}
	ctx := &gl.Context{}
	if err := ctx.Load(egl.GetGLProcAddress); err != nil {
		return nil, fmt.Errorf("glcore: load gl entry points: %w", err)
	}
	return ctx, nil
}
