package tracking

import "errors"

// Errors reported by tracking implementations.
var (
	// ErrCameraNotAvailable means the camera is held by another client or
	// was lost. It is transient: the next frame may succeed.
	ErrCameraNotAvailable = errors.New("tracking: camera not available")

	ErrUserDeclinedInstallation = errors.New("tracking: user declined installation")
	ErrAPKTooOld                = errors.New("tracking: tracking runtime too old")
	ErrSDKTooOld                = errors.New("tracking: application sdk too old")
	ErrDeviceNotCompatible      = errors.New("tracking: device not compatible")

	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("tracking: session closed")
	// ErrSessionPaused is returned by Update on a session that is not
	// resumed.
	ErrSessionPaused = errors.New("tracking: session paused")
	// ErrNotTracking is returned when an anchor is requested while the
	// camera is not tracking.
	ErrNotTracking = errors.New("tracking: not tracking")
	// ErrUnknownProvider is returned by Lookup for unregistered names.
	ErrUnknownProvider = errors.New("tracking: unknown provider")
)

// Describe returns a message suitable for showing to the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUserDeclinedInstallation):
		return "Please install the AR runtime"
	case errors.Is(err, ErrAPKTooOld):
		return "Please update the AR runtime"
	case errors.Is(err, ErrSDKTooOld):
		return "Please update this app"
	case errors.Is(err, ErrDeviceNotCompatible):
		return "This device does not support AR"
	case errors.Is(err, ErrCameraNotAvailable):
		return "Camera not available. Try restarting the app."
	default:
		return "Failed to create AR session: " + err.Error()
	}
}
