package simulated

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/arcam/tracking"
)

// PlaneSpec is a rectangular plane. Center's Y axis is the plane normal;
// the rectangle spans ExtentX along the local X axis and ExtentZ along the
// local Z axis.
type PlaneSpec struct {
	Center  tracking.Pose
	ExtentX float32
	ExtentZ float32
}

// PointSpec is a feature point. A point with a non-zero Normal reports an
// orientation estimated from the surface normal.
type PointSpec struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Scene is the static world a simulated session tracks.
type Scene struct {
	Planes []PlaneSpec
	Points []PointSpec

	// Camera is the initial camera pose. The camera looks down its local -Z
	// axis with +Y up.
	Camera tracking.Pose
	// FovY is the vertical field of view in radians.
	FovY float32
}

// DefaultScene returns a 4x4 m floor 1.2 m below a camera at the origin,
// centered 2 m in front of it, plus one feature point on a wall.
func DefaultScene() Scene {
	return Scene{
		Planes: []PlaneSpec{{
			Center:  tracking.NewPose(mgl32.Vec3{0, -1.2, -2}, mgl32.QuatIdent()),
			ExtentX: 4,
			ExtentZ: 4,
		}},
		Points: []PointSpec{{
			Position: mgl32.Vec3{0.5, 0.2, -3},
			Normal:   mgl32.Vec3{0, 0, 1},
		}},
		Camera: tracking.IdentityPose(),
		FovY:   mgl32.DegToRad(60),
	}
}

// pointRadius is how close a hit-test ray must pass to a feature point.
const pointRadius = 0.05

type simPlane struct {
	spec PlaneSpec
}

func (p *simPlane) TrackingState() tracking.TrackingState { return tracking.StateTracking }
func (p *simPlane) CenterPose() tracking.Pose             { return p.spec.Center }

func (p *simPlane) IsPoseInPolygon(pose tracking.Pose) bool {
	local := p.spec.Center.InverseTransform(pose.Translation)
	return abs(local.X()) <= p.spec.ExtentX/2 && abs(local.Z()) <= p.spec.ExtentZ/2
}

// intersect returns the ray parameter where origin+t*dir meets the plane.
func (p *simPlane) intersect(origin, dir mgl32.Vec3) (float32, bool) {
	n := p.spec.Center.YAxis()
	denom := dir.Dot(n)
	if abs(denom) < 1e-6 {
		return 0, false
	}
	t := p.spec.Center.Translation.Sub(origin).Dot(n) / denom
	return t, t > 0
}

type simPoint struct {
	spec PointSpec
}

func (p *simPoint) TrackingState() tracking.TrackingState { return tracking.StateTracking }

func (p *simPoint) OrientationMode() tracking.OrientationMode {
	if p.spec.Normal.LenSqr() == 0 {
		return tracking.OrientationInitializedToIdentity
	}
	return tracking.OrientationEstimatedSurfaceNormal
}

func (p *simPoint) Pose() tracking.Pose {
	q := mgl32.QuatIdent()
	if p.spec.Normal.LenSqr() != 0 {
		q = mgl32.QuatBetweenVectors(mgl32.Vec3{0, 1, 0}, p.spec.Normal.Normalize())
	}
	return tracking.NewPose(p.spec.Position, q)
}

// intersect returns the ray parameter of the closest approach to the point
// when the ray passes within pointRadius of it.
func (p *simPoint) intersect(origin, dir mgl32.Vec3) (float32, bool) {
	t := p.spec.Position.Sub(origin).Dot(dir)
	if t <= 0 {
		return 0, false
	}
	closest := origin.Add(dir.Mul(t))
	return t, closest.Sub(p.spec.Position).Len() <= pointRadius
}

func abs(v float32) float32 { return float32(math.Abs(float64(v))) }
