package compositor

import (
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/arcam/model"
	"github.com/gogpu/arcam/tracking"
)

// Defaults.
const (
	DefaultNear  = 0.1
	DefaultFar   = 100
	DefaultScale = 0.1

	// Viewport size assumed until the surface reports its size.
	defaultWidth  = 1080
	defaultHeight = 2400
)

// DefaultInitialPosition is where the model is placed, relative to the
// world origin, before the user taps a surface.
var DefaultInitialPosition = mgl32.Vec3{0, -1.5, -2}

// Option configures a Compositor.
type Option func(*options)

type options struct {
	near, far  float32
	clearColor gputypes.Color
	flipY      bool
	initial    mgl32.Vec3
	scale      float32
	rotation   func() tracking.Rotation
	assetFS    fs.FS
	assets     model.Assets
}

func defaultOptions() options {
	return options{
		near:       DefaultNear,
		far:        DefaultFar,
		clearColor: gputypes.ColorBlack,
		flipY:      true,
		initial:    DefaultInitialPosition,
		scale:      DefaultScale,
		rotation:   func() tracking.Rotation { return tracking.Rotation0 },
	}
}

// WithClipPlanes sets the near and far clip distances of the projection.
func WithClipPlanes(near, far float32) Option {
	return func(o *options) {
		o.near, o.far = near, far
	}
}

// WithClearColor sets the color the framebuffer is cleared to.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithFlipY controls whether the projection handed to the model renderer
// mirrors Y. The model renderer renders into a target whose Y axis points
// down, so this is on by default.
func WithFlipY(flip bool) Option {
	return func(o *options) {
		o.flipY = flip
	}
}

// WithInitialPosition sets the world position of the first anchor.
func WithInitialPosition(p mgl32.Vec3) Option {
	return func(o *options) {
		o.initial = p
	}
}

// WithModelScale sets the uniform scale applied to the model.
func WithModelScale(s float32) Option {
	return func(o *options) {
		o.scale = s
	}
}

// WithDisplayRotation sets the function reporting the display rotation,
// queried whenever display geometry is forwarded to the session.
func WithDisplayRotation(fn func() tracking.Rotation) Option {
	return func(o *options) {
		if fn != nil {
			o.rotation = fn
		}
	}
}

// WithAssets makes SurfaceCreated load a model, its textures and motion
// from fsys into the model renderer.
func WithAssets(fsys fs.FS, a model.Assets) Option {
	return func(o *options) {
		o.assetFS = fsys
		o.assets = a
	}
}
