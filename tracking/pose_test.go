package tracking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPoseMatrixTranslation(t *testing.T) {
	p := NewPose(mgl32.Vec3{0, -1.5, -2}, mgl32.QuatIdent())
	m := p.Matrix()
	if !m.ApproxEqual(mgl32.Translate3D(0, -1.5, -2)) {
		t.Errorf("Matrix() = %v, want translation", m)
	}
}

func TestPoseTransformRoundTrip(t *testing.T) {
	p := NewPose(mgl32.Vec3{1, 2, 3}, mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0}))
	v := mgl32.Vec3{0.5, -1, 4}
	got := p.InverseTransform(p.Transform(v))
	if !got.ApproxEqualThreshold(v, 1e-5) {
		t.Errorf("InverseTransform(Transform(v)) = %v, want %v", got, v)
	}
}

func TestPoseMatrixMatchesTransform(t *testing.T) {
	p := NewPose(mgl32.Vec3{1, 0, -1}, mgl32.QuatRotate(0.7, mgl32.Vec3{1, 1, 0}.Normalize()))
	v := mgl32.Vec3{2, 3, 4}
	want := p.Transform(v)
	got := p.Matrix().Mul4x1(v.Vec4(1)).Vec3()
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Matrix()*v = %v, Transform(v) = %v", got, want)
	}
}

func TestPoseAxes(t *testing.T) {
	p := NewPose(mgl32.Vec3{}, mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}))
	if got := p.YAxis(); got.Sub(mgl32.Vec3{-1, 0, 0}).Len() > 1e-5 {
		t.Errorf("YAxis() = %v, want (-1,0,0)", got)
	}
	if got := IdentityPose().ZAxis(); got.Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-5 {
		t.Errorf("ZAxis() = %v, want (0,0,1)", got)
	}
}

func TestPoseCompose(t *testing.T) {
	a := NewPose(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent())
	b := NewPose(mgl32.Vec3{0, 2, 0}, mgl32.QuatIdent())
	if got := a.Compose(b).Translation; !got.ApproxEqual(mgl32.Vec3{1, 2, 0}) {
		t.Errorf("Compose translation = %v, want (1,2,0)", got)
	}
}

func TestRotationDegrees(t *testing.T) {
	for r, want := range map[Rotation]int{Rotation0: 0, Rotation90: 90, Rotation180: 180, Rotation270: 270} {
		if got := r.Degrees(); got != want {
			t.Errorf("%d.Degrees() = %d, want %d", r, got, want)
		}
	}
}

func TestFeaturesHas(t *testing.T) {
	f := FeatureFrontCamera | FeatureSharedCamera
	if !f.Has(FeatureFrontCamera) || !f.Has(FeatureSharedCamera) {
		t.Error("Has should report both features")
	}
	if Features(0).Has(FeatureFrontCamera) {
		t.Error("empty set should not have FeatureFrontCamera")
	}
}

func TestTrackingStateString(t *testing.T) {
	if StateTracking.String() != "tracking" || TrackingState(9).String() != "unknown" {
		t.Errorf("unexpected names %q, %q", StateTracking, TrackingState(9))
	}
}
