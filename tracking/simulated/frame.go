package simulated

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/arcam/tracking"
)

// Hit-test rays are cast between these depths.
const (
	rayNear = 0.1
	rayFar  = 100
)

type frame struct {
	session         *Session
	camera          *camera
	rotation        tracking.Rotation
	timestamp       int64
	texture         uint32
	geometryChanged bool
}

func (f *frame) Camera() tracking.Camera         { return f.camera }
func (f *frame) Timestamp() int64                { return f.timestamp }
func (f *frame) CameraTextureName() uint32       { return f.texture }
func (f *frame) HasDisplayGeometryChanged() bool { return f.geometryChanged }

// TransformCoordinates2D converts through normalized view coordinates. The
// camera texture is the view rotated by the display rotation.
func (f *frame) TransformCoordinates2D(from, to tracking.CoordinateSpace, in, out []float32) {
	n := min(len(in), len(out)) &^ 1
	for i := 0; i < n; i += 2 {
		u, v := toView(from, f.rotation, in[i], in[i+1])
		out[i], out[i+1] = fromView(to, f.rotation, u, v)
	}
}

func toView(space tracking.CoordinateSpace, r tracking.Rotation, x, y float32) (float32, float32) {
	switch space {
	case tracking.OpenGLNormalizedDeviceCoordinates:
		return (x + 1) / 2, (1 - y) / 2
	case tracking.TextureNormalized:
		switch r {
		case tracking.Rotation90:
			return 1 - y, x
		case tracking.Rotation180:
			return 1 - x, 1 - y
		case tracking.Rotation270:
			return y, 1 - x
		}
	}
	return x, y
}

func fromView(space tracking.CoordinateSpace, r tracking.Rotation, u, v float32) (float32, float32) {
	switch space {
	case tracking.OpenGLNormalizedDeviceCoordinates:
		return 2*u - 1, 1 - 2*v
	case tracking.TextureNormalized:
		switch r {
		case tracking.Rotation90:
			return v, 1 - u
		case tracking.Rotation180:
			return 1 - u, 1 - v
		case tracking.Rotation270:
			return 1 - v, u
		}
	}
	return u, v
}

// HitTest casts a ray from the camera through view pixel (x, y), y growing
// downwards, and returns plane and point intersections nearest first.
func (f *frame) HitTest(x, y float32) []tracking.HitResult {
	c := f.camera
	if c.state != tracking.StateTracking || c.width <= 0 || c.height <= 0 {
		return nil
	}
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix(rayNear, rayFar)
	winY := float32(c.height) - y
	near, err := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, proj, 0, 0, c.width, c.height)
	if err != nil {
		return nil
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, proj, 0, 0, c.width, c.height)
	if err != nil {
		return nil
	}
	origin := c.pose.Translation
	dir := far.Sub(near).Normalize()

	var hits []tracking.HitResult
	for _, p := range f.session.planes {
		t, ok := p.intersect(origin, dir)
		if !ok {
			continue
		}
		pose := tracking.NewPose(origin.Add(dir.Mul(t)), p.spec.Center.Rotation)
		hits = append(hits, &hitResult{session: f.session, pose: pose, distance: t, trackable: p})
	}
	for _, p := range f.session.points {
		t, ok := p.intersect(origin, dir)
		if !ok {
			continue
		}
		hits = append(hits, &hitResult{session: f.session, pose: p.Pose(), distance: t, trackable: p})
	}
	slices.SortStableFunc(hits, func(a, b tracking.HitResult) int {
		switch {
		case a.Distance() < b.Distance():
			return -1
		case a.Distance() > b.Distance():
			return 1
		}
		return 0
	})
	return hits
}

type hitResult struct {
	session   *Session
	pose      tracking.Pose
	distance  float32
	trackable tracking.Trackable
}

func (h *hitResult) HitPose() tracking.Pose        { return h.pose }
func (h *hitResult) Distance() float32             { return h.distance }
func (h *hitResult) Trackable() tracking.Trackable { return h.trackable }

func (h *hitResult) CreateAnchor() (tracking.Anchor, error) {
	return h.session.CreateAnchor(h.pose)
}
