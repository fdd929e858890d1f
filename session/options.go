package session

import (
	"github.com/gogpu/arcam/internal/logx"
	"github.com/gogpu/arcam/tracking"
)

// Permissions checks and requests the camera permission.
type Permissions interface {
	HasCamera() bool
	// RequestCamera starts the host's permission flow. The result arrives
	// later; the manager retries on the next resume.
	RequestCamera()
}

// Granted is a Permissions that always reports the camera as granted.
type Granted struct{}

func (Granted) HasCamera() bool { return true }
func (Granted) RequestCamera()  {}

// Option configures a Manager.
type Option func(*options)

type options struct {
	onError      func(error)
	beforeResume func(tracking.Session) error
	installer    tracking.Installer
	features     tracking.Features
}

func defaultOptions() options {
	return options{
		onError: func(err error) {
			logx.L().Error("session: failure", "err", err)
		},
		installer: tracking.AlwaysInstalled,
	}
}

// WithErrorHandler sets the function receiving creation and resume
// failures. It is called without the manager's lock held.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		if fn != nil {
			o.onError = fn
		}
	}
}

// WithBeforeResume sets a hook run with the session just before every
// Resume call, typically to configure it. An error aborts the resume and
// goes to the error handler. The hook must not call back into the manager.
func WithBeforeResume(fn func(tracking.Session) error) Option {
	return func(o *options) {
		o.beforeResume = fn
	}
}

// WithInstaller sets the tracking runtime installer. The default reports
// the runtime as installed.
func WithInstaller(inst tracking.Installer) Option {
	return func(o *options) {
		if inst != nil {
			o.installer = inst
		}
	}
}

// WithFeatures sets the features sessions are created with.
func WithFeatures(f tracking.Features) Option {
	return func(o *options) {
		o.features = f
	}
}

// ConfigureDefaults enables environmental HDR light estimation, automatic
// depth where the device supports it, and auto focus. It is meant for
// WithBeforeResume.
func ConfigureDefaults(s tracking.Session) error {
	cfg := s.Config()
	cfg.LightEstimation = tracking.LightEstimationEnvironmentalHDR
	cfg.Depth = tracking.DepthDisabled
	if s.IsDepthModeSupported(tracking.DepthAutomatic) {
		cfg.Depth = tracking.DepthAutomatic
	}
	cfg.Focus = tracking.FocusAuto
	return s.Configure(cfg)
}
