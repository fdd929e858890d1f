// Package simulated implements the tracking contracts with a deterministic
// software tracker.
//
// A simulated session tracks a static Scene of rectangular planes and
// feature points from a camera whose pose the caller controls. Hit tests
// cast rays through the camera projection; anchors are static. Camera
// loss can be injected to exercise recovery paths.
//
// The package registers itself as tracking.ProviderSimulated.
package simulated

import (
	"fmt"
	"sync"

	"github.com/gogpu/arcam/tracking"
)

func init() {
	tracking.Register(tracking.ProviderSimulated, func() tracking.Provider {
		return NewProvider(DefaultScene())
	})
}

// Option configures a Provider.
type Option func(*options)

type options struct {
	warmupFrames   int
	depthSupported bool
	createErr      error
}

func defaultOptions() options {
	return options{depthSupported: true}
}

// WithWarmupFrames makes the first n frames of every session report a
// paused camera and a zero timestamp.
func WithWarmupFrames(n int) Option {
	return func(o *options) {
		o.warmupFrames = n
	}
}

// WithDepthSupport sets whether automatic depth is supported.
func WithDepthSupport(supported bool) Option {
	return func(o *options) {
		o.depthSupported = supported
	}
}

// WithCreateError makes NewSession fail with err.
func WithCreateError(err error) Option {
	return func(o *options) {
		o.createErr = err
	}
}

// Provider creates simulated sessions over one scene.
type Provider struct {
	scene Scene
	opts  options

	mu       sync.Mutex
	sessions []*Session
}

var _ tracking.Provider = (*Provider)(nil)

// NewProvider returns a provider for scene.
func NewProvider(scene Scene, opts ...Option) *Provider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Provider{scene: scene, opts: o}
}

// NewSession creates a session. The simulated tracker has no front camera.
func (p *Provider) NewSession(features tracking.Features) (tracking.Session, error) {
	if p.opts.createErr != nil {
		return nil, p.opts.createErr
	}
	if features.Has(tracking.FeatureFrontCamera) {
		return nil, fmt.Errorf("simulated: front camera: %w", tracking.ErrDeviceNotCompatible)
	}
	s := newSession(p.scene, p.opts)
	p.mu.Lock()
	p.sessions = append(p.sessions, s)
	p.mu.Unlock()
	return s, nil
}

// Sessions returns every session created so far, oldest first.
func (p *Provider) Sessions() []*Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Session(nil), p.sessions...)
}

// Last returns the most recently created session, or nil.
func (p *Provider) Last() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sessions) == 0 {
		return nil
	}
	return p.sessions[len(p.sessions)-1]
}
