// Package tracking defines the contracts arcam consumes from a motion
// tracking subsystem: sessions, per-frame snapshots, camera poses, hit
// testing and anchors.
//
// Implementations are registered by name with Register and looked up with
// Lookup or Best. The simulated sub-package provides a deterministic
// software tracker.
//
// Poses and matrices use github.com/go-gl/mathgl/mgl32: matrices are
// column-major, rotations are unit quaternions, and the Y axis of a pose
// points away from the surface it lies on.
package tracking
