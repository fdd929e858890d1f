package arcam

import (
	"sync/atomic"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/arcam/background"
	"github.com/gogpu/arcam/compositor"
	"github.com/gogpu/arcam/glcore"
	"github.com/gogpu/arcam/input"
	"github.com/gogpu/arcam/internal/logx"
	"github.com/gogpu/arcam/model"
	"github.com/gogpu/arcam/session"
	"github.com/gogpu/arcam/tracking"
)

// View is the host-facing AR view. See the package documentation for
// which methods belong to which thread.
type View struct {
	manager    *session.Manager
	background *background.Renderer
	compositor *compositor.Compositor
	taps       *input.TapQueue
	detector   *input.TapDetector

	drawErrors    atomic.Uint64
	sessionErrors atomic.Uint64
}

// Stats is a snapshot of a View's counters.
type Stats struct {
	Session    session.Stats
	Compositor compositor.Stats
	// DrawErrors counts DrawFrame calls that failed.
	DrawErrors uint64
	// SessionErrors counts failures passed to the error handler.
	SessionErrors uint64
	// TapsOffered and TapsDropped count taps entering the queue.
	TapsOffered, TapsDropped uint64
}

// NewView returns a view drawing sessions from provider with g, and the
// model with renderer. No session exists until the first
// LifecycleEvent(session.PhaseResumed); no GL object exists until
// SurfaceCreated.
func NewView(provider tracking.Provider, g glcore.GL, renderer model.Renderer, opts ...Option) *View {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	v := &View{}

	onError := o.onError
	if onError == nil {
		onError = func(err error) {
			logx.L().Error("arcam: session failure", "message", tracking.Describe(err), "err", err)
		}
	}
	sessOpts := append([]session.Option{
		session.WithErrorHandler(func(err error) {
			v.sessionErrors.Add(1)
			onError(err)
		}),
		session.WithBeforeResume(o.beforeResume),
	}, o.session...)
	v.manager = session.NewManager(provider, o.perms, sessOpts...)

	v.taps = input.NewTapQueue(o.tapCapacity)
	v.detector = input.NewTapDetector(v.taps, o.detector...)
	v.background = background.New(g, o.background...)
	v.compositor = compositor.New(v.manager, g, v.background, renderer, v.taps, o.compositor...)
	return v
}

// SurfaceCreated creates the GL objects and loads the model. On error no
// GL object of the background remains and the view draws nothing until
// SurfaceCreated succeeds.
func (v *View) SurfaceCreated() error {
	return v.compositor.SurfaceCreated()
}

// SurfaceChanged reports the new surface size.
func (v *View) SurfaceChanged(width, height int) {
	v.compositor.SurfaceChanged(width, height)
}

// SurfaceDestroyed releases the GL objects while the context is still
// current.
func (v *View) SurfaceDestroyed() {
	v.compositor.SurfaceDestroyed()
}

// DrawFrame draws one frame. Failures are logged and counted, then
// returned.
func (v *View) DrawFrame() error {
	err := v.compositor.DrawFrame()
	if err != nil {
		v.drawErrors.Add(1)
		logx.L().Error("arcam: draw frame failed", "err", err)
	}
	return err
}

// TouchEvent feeds a pointer event to the tap detector. It reports
// whether the event completed a tap.
func (v *View) TouchEvent(ev gpucontext.PointerEvent) bool {
	return v.detector.HandlePointer(ev)
}

// AttachPointerSource subscribes the tap detector to src.
func (v *View) AttachPointerSource(src gpucontext.PointerEventSource) {
	v.detector.Attach(src)
}

// LifecycleEvent forwards a host lifecycle transition to the session
// manager.
func (v *View) LifecycleEvent(phase session.Phase) {
	v.manager.HandleEvent(phase)
}

// Session returns the held tracking session, or nil.
func (v *View) Session() tracking.Session {
	return v.manager.Session()
}

// Transforms returns the matrices of the last drawn frame.
func (v *View) Transforms() compositor.Transforms {
	return v.compositor.Transforms()
}

// Stats returns a snapshot of the view's counters. The compositor part is
// only consistent when read on the render thread.
func (v *View) Stats() Stats {
	offered, dropped := v.taps.Stats()
	return Stats{
		Session:       v.manager.Stats(),
		Compositor:    v.compositor.Stats(),
		DrawErrors:    v.drawErrors.Load(),
		SessionErrors: v.sessionErrors.Load(),
		TapsOffered:   offered,
		TapsDropped:   dropped,
	}
}
