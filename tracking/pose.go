package tracking

import "github.com/go-gl/mathgl/mgl32"

// Pose is a rigid transform from a local coordinate frame to world space.
type Pose struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// IdentityPose returns the pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// NewPose returns a pose at t with rotation q.
func NewPose(t mgl32.Vec3, q mgl32.Quat) Pose {
	return Pose{Translation: t, Rotation: q}
}

// Matrix returns the pose as a column-major model matrix.
func (p Pose) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.Translation.X(), p.Translation.Y(), p.Translation.Z()).
		Mul4(p.Rotation.Normalize().Mat4())
}

// Transform maps a point from the pose's local frame to world space.
func (p Pose) Transform(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Rotate(v).Add(p.Translation)
}

// InverseTransform maps a world-space point into the pose's local frame.
func (p Pose) InverseTransform(v mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Inverse().Rotate(v.Sub(p.Translation))
}

// Compose returns the pose p applied after o, that is p * o.
func (p Pose) Compose(o Pose) Pose {
	return Pose{
		Translation: p.Transform(o.Translation),
		Rotation:    p.Rotation.Mul(o.Rotation).Normalize(),
	}
}

// XAxis returns the world-space direction of the local +X axis.
func (p Pose) XAxis() mgl32.Vec3 { return p.Rotation.Rotate(mgl32.Vec3{1, 0, 0}) }

// YAxis returns the world-space direction of the local +Y axis.
func (p Pose) YAxis() mgl32.Vec3 { return p.Rotation.Rotate(mgl32.Vec3{0, 1, 0}) }

// ZAxis returns the world-space direction of the local +Z axis.
func (p Pose) ZAxis() mgl32.Vec3 { return p.Rotation.Rotate(mgl32.Vec3{0, 0, 1}) }
