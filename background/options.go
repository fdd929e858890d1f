package background

import (
	"io/fs"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/arcam/glcore"
)

// Target is the GL texture target camera images are written to.
type Target int

const (
	// TargetExternalOES is GL_TEXTURE_EXTERNAL_OES, used by Android camera
	// streams.
	TargetExternalOES Target = iota
	// Target2D is GL_TEXTURE_2D.
	Target2D
)

// GL returns the GL enum for t.
func (t Target) GL() uint32 {
	if t == Target2D {
		return gl.TEXTURE_2D
	}
	return glcore.TEXTURE_EXTERNAL_OES
}

func (t Target) String() string {
	if t == Target2D {
		return "2d"
	}
	return "external-oes"
}

// SamplerConfig describes how the camera texture is sampled. The camera
// texture has no mipmaps, so a single min filter is enough.
type SamplerConfig struct {
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	AddressModeU gputypes.AddressMode
	AddressModeV gputypes.AddressMode
}

// DefaultSampler is linear filtering with clamp-to-edge wrapping.
func DefaultSampler() SamplerConfig {
	return SamplerConfig{
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
	}
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	target  Target
	sampler SamplerConfig
	shaders fs.FS
}

func defaultOptions() options {
	return options{
		target:  TargetExternalOES,
		sampler: DefaultSampler(),
		shaders: bundledShaders,
	}
}

// WithTarget sets the camera texture target.
func WithTarget(t Target) Option {
	return func(o *options) {
		o.target = t
	}
}

// WithSampler sets the sampling parameters.
func WithSampler(cfg SamplerConfig) Option {
	return func(o *options) {
		o.sampler = cfg
	}
}

// WithShaders replaces the bundled shader files. fsys must contain the
// files under the same shaders/ paths as the bundle.
func WithShaders(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.shaders = fsys
		}
	}
}
