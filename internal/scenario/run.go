package scenario

import (
	"io/fs"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/arcam"
	"github.com/gogpu/arcam/glcore/glnoop"
	"github.com/gogpu/arcam/internal/logx"
	"github.com/gogpu/arcam/model"
	"github.com/gogpu/arcam/session"
	"github.com/gogpu/arcam/tracking"
	"github.com/gogpu/arcam/tracking/simulated"
)

// frameTime is the simulated display refresh period.
const frameTime = 16 * time.Millisecond

// tapHold is how long a scripted finger stays down.
const tapHold = 60 * time.Millisecond

// Result summarizes a run.
type Result struct {
	Stats arcam.Stats
	// ModelFrames counts frames the model renderer drew.
	ModelFrames int
	// ModelPosition is the model's world position in the last frame.
	ModelPosition mgl32.Vec3
	// BackgroundDraws counts GL draw calls.
	BackgroundDraws int
	// LiveObjects counts GL objects left after teardown.
	LiveObjects int
	// SetupErr is the SurfaceCreated failure, if any.
	SetupErr error
}

// Run plays s against the simulated tracker with a recording GL and a
// model renderer that draws nothing.
func Run(s Scenario) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	provider := simulated.NewProvider(s.Scene, simulated.WithWarmupFrames(s.WarmupFrames))
	g := glnoop.New()
	renderer := &model.NopRenderer{}

	opts := []arcam.Option{
		arcam.WithClipPlanes(s.Near, s.Far),
		arcam.WithClearColor(s.ClearColor),
		arcam.WithDisplayRotation(func() tracking.Rotation { return s.Rotation }),
		arcam.WithErrorHandler(func(err error) {
			logx.L().Warn("scenario: session failure", "message", tracking.Describe(err), "err", err)
		}),
	}
	if s.Assets != nil {
		var fsys fs.FS = os.DirFS(s.Assets.Dir)
		opts = append(opts, arcam.WithAssets(fsys, s.Assets.Assets))
	}
	v := arcam.NewView(provider, g, renderer, opts...)

	var res Result
	if err := v.SurfaceCreated(); err != nil {
		res.SetupErr = err
		return res, err
	}
	v.SurfaceChanged(s.Width, s.Height)

	if s.AutoResume {
		v.LifecycleEvent(session.PhaseResumed)
	}
	taps := make(map[int][]Tap, len(s.Taps))
	for _, t := range s.Taps {
		taps[t.Frame] = append(taps[t.Frame], t)
	}
	losses := make(map[int]int, len(s.CameraLoss))
	for _, l := range s.CameraLoss {
		losses[l.Frame] += l.Count
	}
	events := s.Lifecycle

	for frame := 0; frame < s.Frames; frame++ {
		for len(events) > 0 && events[0].Frame <= frame {
			v.LifecycleEvent(events[0].Phase)
			events = events[1:]
		}
		if n := losses[frame]; n > 0 {
			if sim := provider.Last(); sim != nil {
				sim.FailNextUpdates(n)
			}
		}
		now := time.Duration(frame) * frameTime
		for _, t := range taps[frame] {
			down := gpucontext.PointerEvent{
				Type: gpucontext.PointerDown, X: float64(t.X), Y: float64(t.Y),
				PointerType: gpucontext.PointerTypeTouch, IsPrimary: true, Timestamp: now,
			}
			up := down
			up.Type = gpucontext.PointerUp
			up.Timestamp = now + tapHold
			v.TouchEvent(down)
			v.TouchEvent(up)
		}
		// Failures are counted in the view's stats.
		_ = v.DrawFrame()
	}

	res.Stats = v.Stats()
	res.ModelFrames = renderer.Frames
	res.ModelPosition = v.Transforms().Model.Col(3).Vec3()
	res.BackgroundDraws = g.Draws()

	v.LifecycleEvent(session.PhaseDestroyed)
	v.SurfaceDestroyed()
	res.Stats.Session = v.Stats().Session
	res.LiveObjects = g.LiveTotal()
	return res, nil
}
