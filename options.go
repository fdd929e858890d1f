package arcam

import (
	"io/fs"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/arcam/background"
	"github.com/gogpu/arcam/compositor"
	"github.com/gogpu/arcam/input"
	"github.com/gogpu/arcam/model"
	"github.com/gogpu/arcam/session"
	"github.com/gogpu/arcam/tracking"
)

// Option configures a View during creation.
//
// Example:
//
//	view := arcam.NewView(provider, gl, renderer,
//	    arcam.WithClipPlanes(0.05, 50),
//	    arcam.WithErrorHandler(reportToUser))
type Option func(*viewOptions)

type viewOptions struct {
	perms        session.Permissions
	onError      func(error)
	beforeResume func(tracking.Session) error
	tapCapacity  int

	session    []session.Option
	compositor []compositor.Option
	background []background.Option
	detector   []input.DetectorOption
}

func defaultOptions() viewOptions {
	return viewOptions{
		perms:        session.Granted{},
		beforeResume: session.ConfigureDefaults,
		tapCapacity:  input.DefaultCapacity,
	}
}

// WithPermissions sets the camera permission checker. The default assumes
// permission is granted.
func WithPermissions(p session.Permissions) Option {
	return func(o *viewOptions) {
		if p != nil {
			o.perms = p
		}
	}
}

// WithErrorHandler sets the callback receiving session failures. The
// default logs them with a user-facing description.
func WithErrorHandler(fn func(error)) Option {
	return func(o *viewOptions) {
		o.onError = fn
	}
}

// WithBeforeResume sets the hook configuring the session before every
// resume. The default is session.ConfigureDefaults.
func WithBeforeResume(fn func(tracking.Session) error) Option {
	return func(o *viewOptions) {
		o.beforeResume = fn
	}
}

// WithInstaller sets the tracking runtime installer.
func WithInstaller(inst tracking.Installer) Option {
	return func(o *viewOptions) {
		o.session = append(o.session, session.WithInstaller(inst))
	}
}

// WithFeatures sets the features requested when creating sessions.
func WithFeatures(f tracking.Features) Option {
	return func(o *viewOptions) {
		o.session = append(o.session, session.WithFeatures(f))
	}
}

// WithClipPlanes sets the near and far clip distances.
func WithClipPlanes(near, far float32) Option {
	return func(o *viewOptions) {
		o.compositor = append(o.compositor, compositor.WithClipPlanes(near, far))
	}
}

// WithClearColor sets the framebuffer clear color.
func WithClearColor(c gputypes.Color) Option {
	return func(o *viewOptions) {
		o.compositor = append(o.compositor, compositor.WithClearColor(c))
	}
}

// WithFlipY controls whether the model projection mirrors Y.
func WithFlipY(flip bool) Option {
	return func(o *viewOptions) {
		o.compositor = append(o.compositor, compositor.WithFlipY(flip))
	}
}

// WithModelScale sets the uniform scale applied to the model.
func WithModelScale(s float32) Option {
	return func(o *viewOptions) {
		o.compositor = append(o.compositor, compositor.WithModelScale(s))
	}
}

// WithDisplayRotation sets the function reporting the display rotation.
func WithDisplayRotation(fn func() tracking.Rotation) Option {
	return func(o *viewOptions) {
		o.compositor = append(o.compositor, compositor.WithDisplayRotation(fn))
	}
}

// WithAssets loads a model, its textures and its motion from fsys when
// the surface is created.
func WithAssets(fsys fs.FS, a model.Assets) Option {
	return func(o *viewOptions) {
		o.compositor = append(o.compositor, compositor.WithAssets(fsys, a))
	}
}

// WithShaders replaces the bundled background shaders.
func WithShaders(fsys fs.FS) Option {
	return func(o *viewOptions) {
		o.background = append(o.background, background.WithShaders(fsys))
	}
}

// WithTextureTarget sets the camera texture target. Use
// background.Target2D where external images are not available.
func WithTextureTarget(t background.Target) Option {
	return func(o *viewOptions) {
		o.background = append(o.background, background.WithTarget(t))
	}
}

// WithTapCapacity sets how many taps may wait for the render thread.
func WithTapCapacity(n int) Option {
	return func(o *viewOptions) {
		if n > 0 {
			o.tapCapacity = n
		}
	}
}

// WithTouchSlop sets how far, in logical pixels, a press may move and
// still count as a tap.
func WithTouchSlop(px float64) Option {
	return func(o *viewOptions) {
		o.detector = append(o.detector, input.WithTouchSlop(px))
	}
}
