package compositor

import "github.com/gogpu/arcam/tracking"

// SelectHit returns the first hit a model may be placed on, or nil.
//
// A plane hit qualifies when the hit lies inside the plane's polygon and
// the camera is in front of the plane. A point hit qualifies when the
// point's orientation was estimated from the surrounding surface.
func SelectHit(hits []tracking.HitResult, cameraPose tracking.Pose) tracking.HitResult {
	for _, hit := range hits {
		switch t := hit.Trackable().(type) {
		case tracking.Plane:
			if t.IsPoseInPolygon(hit.HitPose()) && DistanceToPlane(hit.HitPose(), cameraPose) > 0 {
				return hit
			}
		case tracking.Point:
			if t.OrientationMode() == tracking.OrientationEstimatedSurfaceNormal {
				return hit
			}
		}
	}
	return nil
}

// DistanceToPlane returns the signed distance of the camera from the plane
// through planePose whose normal is the pose's Y axis.
func DistanceToPlane(planePose, cameraPose tracking.Pose) float32 {
	return cameraPose.Translation.Sub(planePose.Translation).Dot(planePose.YAxis())
}
