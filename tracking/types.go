package tracking

// TrackingState is the tracking quality of a camera, trackable or anchor.
type TrackingState int

const (
	// StateStopped means tracking stopped and will not resume.
	StateStopped TrackingState = iota
	// StatePaused means tracking is temporarily lost.
	StatePaused
	// StateTracking means poses are current.
	StateTracking
)

func (s TrackingState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StateTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Rotation is the display rotation relative to the device's natural
// orientation.
type Rotation int

// Display rotations, clockwise.
const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// Degrees returns the rotation angle.
func (r Rotation) Degrees() int { return int(r&3) * 90 }

// CoordinateSpace names a 2D coordinate system for TransformCoordinates2D.
type CoordinateSpace int

const (
	// ViewNormalized is normalized view coordinates: (0,0) top left, (1,1)
	// bottom right.
	ViewNormalized CoordinateSpace = iota
	// OpenGLNormalizedDeviceCoordinates is GL NDC: (-1,-1) bottom left,
	// (1,1) top right.
	OpenGLNormalizedDeviceCoordinates
	// TextureNormalized is normalized camera texture coordinates: (0,0)
	// top left, (1,1) bottom right, in sensor orientation.
	TextureNormalized
)

// OrientationMode describes how a Point's orientation was derived.
type OrientationMode int

const (
	OrientationInitializedToIdentity OrientationMode = iota
	OrientationEstimatedSurfaceNormal
)

// InstallStatus is the outcome of Installer.RequestInstall.
type InstallStatus int

const (
	// Installed means the tracking runtime is present and current.
	Installed InstallStatus = iota
	// InstallRequested means an install flow was launched and the caller
	// should stop and retry on its next resume.
	InstallRequested
)

// Features is a set of session creation features.
type Features uint32

const (
	// FeatureFrontCamera selects the user-facing camera.
	FeatureFrontCamera Features = 1 << iota
	// FeatureSharedCamera shares the camera with another client.
	FeatureSharedCamera
)

// Has reports whether all of f2 are set in f.
func (f Features) Has(f2 Features) bool { return f&f2 == f2 }

// LightEstimationMode selects the light estimation pipeline.
type LightEstimationMode int

const (
	LightEstimationDisabled LightEstimationMode = iota
	LightEstimationAmbientIntensity
	LightEstimationEnvironmentalHDR
)

// DepthMode selects depth estimation.
type DepthMode int

const (
	DepthDisabled DepthMode = iota
	DepthAutomatic
	DepthRawOnly
)

// FocusMode selects camera focus behavior.
type FocusMode int

const (
	FocusFixed FocusMode = iota
	FocusAuto
)

// Config is a session configuration.
type Config struct {
	LightEstimation LightEstimationMode
	Depth           DepthMode
	Focus           FocusMode
}
