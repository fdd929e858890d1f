package arcam

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/arcam/background"
	"github.com/gogpu/arcam/glcore/glnoop"
	"github.com/gogpu/arcam/model"
	"github.com/gogpu/arcam/session"
	"github.com/gogpu/arcam/tracking"
	"github.com/gogpu/arcam/tracking/simulated"
)

type pointerSource struct {
	handlers []func(gpucontext.PointerEvent)
}

func (s *pointerSource) OnPointer(fn func(gpucontext.PointerEvent)) {
	s.handlers = append(s.handlers, fn)
}

func (s *pointerSource) emit(ev gpucontext.PointerEvent) {
	for _, fn := range s.handlers {
		fn(ev)
	}
}

func tap(x, y float64, at time.Duration) (down, up gpucontext.PointerEvent) {
	down = gpucontext.PointerEvent{
		Type: gpucontext.PointerDown, X: x, Y: y, IsPrimary: true,
		PointerType: gpucontext.PointerTypeTouch, Timestamp: at,
	}
	up = down
	up.Type = gpucontext.PointerUp
	up.Timestamp = at + 80*time.Millisecond
	return down, up
}

func newTestView(t *testing.T, opts ...Option) (*View, *simulated.Provider, *glnoop.GL, *model.NopRenderer) {
	t.Helper()
	provider := simulated.NewProvider(simulated.DefaultScene())
	g := glnoop.New()
	r := &model.NopRenderer{}
	v := NewView(provider, g, r, opts...)
	if err := v.SurfaceCreated(); err != nil {
		t.Fatalf("SurfaceCreated failed: %v", err)
	}
	v.SurfaceChanged(1080, 1920)
	return v, provider, g, r
}

func TestViewLifecycle(t *testing.T) {
	v, provider, _, r := newTestView(t)
	if v.Session() != nil {
		t.Fatal("no session should exist before the first resume")
	}
	if err := v.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame failed: %v", err)
	}
	if r.Frames != 0 {
		t.Errorf("model drawn without a session: %d frames", r.Frames)
	}

	v.LifecycleEvent(session.PhaseResumed)
	if v.Session() == nil {
		t.Fatal("session should exist after resume")
	}
	for i := 0; i < 3; i++ {
		if err := v.DrawFrame(); err != nil {
			t.Fatalf("DrawFrame failed: %v", err)
		}
	}
	if r.Frames != 3 {
		t.Errorf("Frames = %d, want 3", r.Frames)
	}
	cfg := provider.Last().Config()
	if cfg.LightEstimation != tracking.LightEstimationEnvironmentalHDR || cfg.Focus != tracking.FocusAuto {
		t.Errorf("session not configured with defaults: %+v", cfg)
	}

	v.LifecycleEvent(session.PhasePaused)
	if err := v.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame while paused failed: %v", err)
	}
	if r.Frames != 3 {
		t.Errorf("model drawn while paused")
	}

	v.LifecycleEvent(session.PhaseDestroyed)
	if v.Session() != nil {
		t.Error("session should be gone after destroy")
	}
	st := v.Stats()
	if st.Session.Created != 1 || st.Session.Closes != 1 || st.DrawErrors != 0 {
		t.Errorf("Stats() = %+v", st)
	}
	v.SurfaceDestroyed()
}

func TestViewTapPlacesModel(t *testing.T) {
	v, _, _, _ := newTestView(t)
	src := &pointerSource{}
	v.AttachPointerSource(src)
	v.LifecycleEvent(session.PhaseResumed)
	if err := v.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame failed: %v", err)
	}

	down, up := tap(540, 1500, time.Second)
	src.emit(down)
	src.emit(up)
	if err := v.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame failed: %v", err)
	}
	st := v.Stats()
	if st.TapsOffered != 1 || st.Compositor.AnchorsPlaced != 1 {
		t.Errorf("Stats() = %+v, want one tap placing one anchor", st)
	}
	pos := v.Transforms().Model.Col(3).Vec3()
	if !mgl32.FloatEqualThreshold(pos.Y(), -1.2, 1e-4) {
		t.Errorf("model at %v, want on the floor", pos)
	}
}

func TestViewTouchEvent(t *testing.T) {
	v, _, _, _ := newTestView(t, WithTapCapacity(1))
	down, up := tap(10, 10, time.Second)
	if v.TouchEvent(down) {
		t.Error("a press alone is not a tap")
	}
	if !v.TouchEvent(up) {
		t.Error("press and release should be a tap")
	}
	v.TouchEvent(down)
	if v.TouchEvent(up) {
		t.Error("second tap should be dropped by a full queue")
	}
	if st := v.Stats(); st.TapsOffered != 2 || st.TapsDropped != 1 {
		t.Errorf("tap stats = %d offered, %d dropped", st.TapsOffered, st.TapsDropped)
	}
}

func TestViewSessionErrors(t *testing.T) {
	var got []error
	provider := simulated.NewProvider(simulated.DefaultScene(),
		simulated.WithCreateError(tracking.ErrDeviceNotCompatible))
	v := NewView(provider, glnoop.New(), &model.NopRenderer{},
		WithErrorHandler(func(err error) { got = append(got, err) }))
	v.LifecycleEvent(session.PhaseResumed)
	if len(got) != 1 || !errors.Is(got[0], tracking.ErrDeviceNotCompatible) {
		t.Fatalf("error handler got %v", got)
	}
	if v.Stats().SessionErrors != 1 {
		t.Errorf("SessionErrors = %d, want 1", v.Stats().SessionErrors)
	}
}

func TestViewBeforeResumeOverride(t *testing.T) {
	called := 0
	v, _, _, _ := newTestView(t, WithBeforeResume(func(tracking.Session) error {
		called++
		return nil
	}))
	v.LifecycleEvent(session.PhaseResumed)
	v.LifecycleEvent(session.PhasePaused)
	v.LifecycleEvent(session.PhaseResumed)
	if called != 2 {
		t.Errorf("before-resume hook called %d times, want 2", called)
	}
}

func TestViewDrawErrorsCounted(t *testing.T) {
	provider := simulated.NewProvider(simulated.DefaultScene())
	g := glnoop.New()
	v := NewView(provider, g, &model.NopRenderer{})
	v.LifecycleEvent(session.PhaseResumed)
	// No SurfaceCreated: the background has no GL objects.
	if err := v.DrawFrame(); !errors.Is(err, background.ErrNotInitialized) {
		t.Fatalf("DrawFrame() = %v, want ErrNotInitialized", err)
	}
	if v.Stats().DrawErrors != 1 {
		t.Errorf("DrawErrors = %d, want 1", v.Stats().DrawErrors)
	}
}

func TestViewTexture2DTarget(t *testing.T) {
	v, _, g, _ := newTestView(t, WithTextureTarget(background.Target2D))
	v.LifecycleEvent(session.PhaseResumed)
	if err := v.DrawFrame(); err != nil {
		t.Fatalf("DrawFrame failed: %v", err)
	}
	if g.Draws() != 1 {
		t.Errorf("Draws() = %d, want 1", g.Draws())
	}
}
