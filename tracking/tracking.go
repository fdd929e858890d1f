package tracking

import "github.com/go-gl/mathgl/mgl32"

// Session is a live tracking session. Implementations need not be safe for
// concurrent use; session.Manager serializes access.
type Session interface {
	// Resume starts or restarts tracking. It fails with
	// ErrCameraNotAvailable when the camera is held elsewhere.
	Resume() error
	// Pause suspends tracking and releases the camera.
	Pause() error
	// Close releases the session. The session must not be used afterwards.
	Close()

	// Update returns the latest frame. It fails with ErrCameraNotAvailable
	// while the camera is temporarily lost.
	Update() (Frame, error)
	// SetCameraTextureNames sets the GL textures camera images are
	// streamed into.
	SetCameraTextureNames(names []uint32)
	// SetDisplayGeometry sets the display rotation and viewport size.
	SetDisplayGeometry(rotation Rotation, width, height int)
	// CreateAnchor creates an anchor fixed at pose in world space.
	CreateAnchor(pose Pose) (Anchor, error)

	Config() Config
	Configure(cfg Config) error
	IsDepthModeSupported(mode DepthMode) bool
}

// Frame is a snapshot of tracking state produced by Session.Update.
type Frame interface {
	Camera() Camera
	// Timestamp is the camera image time in nanoseconds. Zero means no
	// camera image has been produced yet.
	Timestamp() int64
	CameraTextureName() uint32
	// HasDisplayGeometryChanged reports whether display rotation or size
	// changed since the previous frame.
	HasDisplayGeometryChanged() bool
	// TransformCoordinates2D maps packed (x, y) pairs between coordinate
	// spaces. in and out must have the same even length.
	TransformCoordinates2D(from, to CoordinateSpace, in, out []float32)
	// HitTest casts a ray through view pixel (x, y) and returns the hits
	// sorted by increasing distance.
	HitTest(x, y float32) []HitResult
}

// Camera is the device camera for one frame.
type Camera interface {
	TrackingState() TrackingState
	Pose() Pose
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix(near, far float32) mgl32.Mat4
}

// Trackable is something the tracker follows in the world.
type Trackable interface {
	TrackingState() TrackingState
}

// Plane is a detected planar surface.
type Plane interface {
	Trackable
	// CenterPose is the plane's center; its Y axis is the plane normal.
	CenterPose() Pose
	// IsPoseInPolygon reports whether pose projects inside the plane's
	// detected boundary.
	IsPoseInPolygon(pose Pose) bool
}

// Point is a detected feature point.
type Point interface {
	Trackable
	Pose() Pose
	OrientationMode() OrientationMode
}

// HitResult is one intersection of a hit-test ray with a trackable.
type HitResult interface {
	HitPose() Pose
	Distance() float32
	Trackable() Trackable
	CreateAnchor() (Anchor, error)
}

// Anchor is a fixed location in the world that the tracker keeps up to date.
type Anchor interface {
	Pose() Pose
	TrackingState() TrackingState
	// Detach stops tracking the anchor. Detaching twice is a no-op.
	Detach()
}

// Provider creates tracking sessions.
type Provider interface {
	NewSession(features Features) (Session, error)
}

// Installer ensures the tracking runtime is installed.
type Installer interface {
	// RequestInstall returns InstallRequested when it launched an install
	// flow. userRequested is true on the first request of a process.
	RequestInstall(userRequested bool) (InstallStatus, error)
}

// InstallerFunc adapts a function to Installer.
type InstallerFunc func(userRequested bool) (InstallStatus, error)

// RequestInstall calls f.
func (f InstallerFunc) RequestInstall(userRequested bool) (InstallStatus, error) {
	return f(userRequested)
}

// AlwaysInstalled is an Installer for platforms that bundle the runtime.
var AlwaysInstalled Installer = InstallerFunc(func(bool) (InstallStatus, error) {
	return Installed, nil
})
