package compositor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/arcam/background"
	"github.com/gogpu/arcam/glcore"
	"github.com/gogpu/arcam/input"
	"github.com/gogpu/arcam/internal/logx"
	"github.com/gogpu/arcam/model"
	"github.com/gogpu/arcam/tracking"
)

// Sessions gives the compositor scoped access to the tracking session.
// *session.Manager implements it.
type Sessions interface {
	// Do runs fn with the resumed session, or nil when there is none.
	Do(fn func(tracking.Session) error) error
	// AddCloseHook registers fn to run before a session is closed.
	AddCloseHook(fn func(tracking.Session))
}

// flipY mirrors clip-space Y.
var flipY = mgl32.Mat4{
	1, 0, 0, 0,
	0, -1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// rotateY180 turns the model to face the camera.
var rotateY180 = mgl32.Mat4{
	-1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, -1, 0,
	0, 0, 0, 1,
}

// Transforms are the matrices handed to the model renderer for a frame.
type Transforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// Stats counts what the compositor did.
type Stats struct {
	Frames           int // frames with a session
	SkippedFrames    int // frames lost to camera unavailability
	BackgroundDraws  int
	TapsHandled      int
	AnchorsPlaced    int // anchors created from taps
	TextureRegisters int
}

// Compositor draws AR frames.
type Compositor struct {
	sessions Sessions
	gl       glcore.GL
	bg       *background.Renderer
	model    model.Renderer
	taps     *input.TapQueue
	opts     options

	width, height int
	surface       uint64 // bumped by SurfaceCreated

	// Guarded by the session lock: touched only inside Sessions.Do and
	// the close hook. registered is the surface whose camera texture the
	// session streams into, 0 for none.
	registered uint64
	anchor     tracking.Anchor

	modelMatrix mgl32.Mat4
	last        Transforms
	stats       Stats
}

// New returns a compositor that draws bg and renderer for the sessions
// held by sessions, consuming taps from taps.
func New(sessions Sessions, g glcore.GL, bg *background.Renderer, renderer model.Renderer, taps *input.TapQueue, opts ...Option) *Compositor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Compositor{
		sessions:    sessions,
		gl:          g,
		bg:          bg,
		model:       renderer,
		taps:        taps,
		opts:        o,
		width:       defaultWidth,
		height:      defaultHeight,
		modelMatrix: mgl32.Ident4(),
	}
	sessions.AddCloseHook(c.sessionClosed)
	return c
}

// sessionClosed forgets per-session state.
func (c *Compositor) sessionClosed(tracking.Session) {
	if c.anchor != nil {
		c.anchor.Detach()
		c.anchor = nil
	}
	c.registered = 0
}

// SurfaceCreated sets up GL state and the background, initializes the
// model renderer and loads the configured assets. Asset failures are
// logged; the view then renders without a model.
func (c *Compositor) SurfaceCreated() error {
	c.gl.Enable(gl.BLEND)
	if err := glcore.Check(c.gl, "Failed to enable blending", "glEnable"); err != nil {
		return err
	}
	if err := c.bg.SurfaceCreated(); err != nil {
		return err
	}
	c.surface++

	if err := c.model.Initialize(c.width, c.height); err != nil {
		return fmt.Errorf("compositor: initialize model renderer: %w", err)
	}
	if c.opts.assetFS == nil {
		return nil
	}
	if _, err := model.Load(c.opts.assetFS, c.model, c.opts.assets); err != nil {
		logx.L().Warn("compositor: failed to load model assets", "err", err)
	}
	return nil
}

// SurfaceChanged records the viewport size and forwards the display
// geometry to the session.
func (c *Compositor) SurfaceChanged(width, height int) {
	c.width, c.height = width, height
	c.bg.SurfaceChanged(width, height)
	_ = c.sessions.Do(func(s tracking.Session) error {
		if s != nil {
			s.SetDisplayGeometry(c.opts.rotation(), width, height)
		}
		return nil
	})
	logx.L().Debug("compositor: surface changed", "width", width, "height", height)
}

// SurfaceDestroyed releases the background's GL objects.
func (c *Compositor) SurfaceDestroyed() {
	c.bg.Destroy()
	c.surface++
}

// DrawFrame renders one frame. A frame lost to camera unavailability is
// logged and skipped without error.
func (c *Compositor) DrawFrame() error {
	if err := c.clear(); err != nil {
		return err
	}
	return c.sessions.Do(func(s tracking.Session) error {
		if s == nil {
			return nil
		}
		return c.drawFrame(s)
	})
}

func (c *Compositor) clear() error {
	g := c.gl
	g.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if err := glcore.Check(g, "Failed to bind framebuffer", "glBindFramebuffer"); err != nil {
		return err
	}
	g.Viewport(0, 0, int32(c.width), int32(c.height))
	if err := glcore.Check(g, "Failed to set viewport dimensions", "glViewport"); err != nil {
		return err
	}
	glcore.ApplyClearColor(g, c.opts.clearColor)
	g.DepthMask(true)
	g.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return glcore.Check(g, "Failed to clear framebuffer", "glClear")
}

func (c *Compositor) drawFrame(s tracking.Session) error {
	if !c.bg.Ready() {
		return background.ErrNotInitialized
	}
	if c.registered != c.surface {
		s.SetCameraTextureNames([]uint32{c.bg.CameraTextureID()})
		s.SetDisplayGeometry(c.opts.rotation(), c.width, c.height)
		c.registered = c.surface
		c.stats.TextureRegisters++
	}

	frame, err := s.Update()
	if errors.Is(err, tracking.ErrCameraNotAvailable) {
		logx.L().Warn("compositor: camera not available during DrawFrame", "err", err)
		c.stats.SkippedFrames++
		return nil
	}
	if err != nil {
		return fmt.Errorf("compositor: update session: %w", err)
	}
	c.stats.Frames++
	camera := frame.Camera()

	if err := c.bg.UpdateDisplayGeometry(frame); err != nil {
		return err
	}
	c.handleTap(frame, camera)

	if frame.Timestamp() != 0 {
		if err := c.bg.Draw(); err != nil {
			return err
		}
		c.stats.BackgroundDraws++
	}

	projection := camera.ProjectionMatrix(c.opts.near, c.opts.far)
	if c.opts.flipY {
		projection = flipY.Mul4(projection)
	}
	view := camera.ViewMatrix()
	c.tryInitAnchor(s, camera)
	if c.anchor != nil {
		sc := c.opts.scale
		c.modelMatrix = c.anchor.Pose().Matrix().Mul4(mgl32.Scale3D(sc, sc, sc)).Mul4(rotateY180)
	}

	c.last = Transforms{Model: c.modelMatrix, View: view, Projection: projection}
	c.model.RedrawFrom(c.modelMatrix, view, projection)
	return nil
}

// handleTap consumes one queued tap. While tracking, the first acceptable
// hit replaces the model anchor.
func (c *Compositor) handleTap(frame tracking.Frame, camera tracking.Camera) {
	tap, ok := c.taps.Poll()
	if !ok || camera.TrackingState() != tracking.StateTracking {
		return
	}
	c.stats.TapsHandled++
	logx.L().Debug("compositor: tap", "x", tap.X, "y", tap.Y)

	hit := SelectHit(frame.HitTest(tap.X, tap.Y), camera.Pose())
	if hit == nil {
		return
	}
	if c.anchor != nil {
		c.anchor.Detach()
		c.anchor = nil
	}
	a, err := hit.CreateAnchor()
	if err != nil {
		logx.L().Warn("compositor: failed to anchor hit", "err", err)
		return
	}
	c.anchor = a
	c.stats.AnchorsPlaced++
}

// tryInitAnchor places the model at its initial position once tracking
// starts.
func (c *Compositor) tryInitAnchor(s tracking.Session, camera tracking.Camera) {
	if c.anchor != nil || camera.TrackingState() != tracking.StateTracking {
		return
	}
	a, err := s.CreateAnchor(tracking.NewPose(c.opts.initial, mgl32.QuatIdent()))
	if err != nil {
		logx.L().Debug("compositor: initial anchor not created", "err", err)
		return
	}
	c.anchor = a
}

// Transforms returns the matrices of the last drawn frame.
func (c *Compositor) Transforms() Transforms { return c.last }

// Anchor returns the anchor the model is attached to, or nil.
func (c *Compositor) Anchor() tracking.Anchor { return c.anchor }

// Stats returns the compositor counters.
func (c *Compositor) Stats() Stats { return c.stats }

// Viewport returns the current viewport size.
func (c *Compositor) Viewport() (width, height int) { return c.width, c.height }
