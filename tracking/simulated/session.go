package simulated

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/arcam/tracking"
)

// frameInterval is the simulated camera frame period.
const frameInterval = 33 * time.Millisecond

// Session is a simulated tracking session. It is safe for concurrent use.
type Session struct {
	scene  Scene
	opts   options
	planes []*simPlane
	points []*simPoint

	mu              sync.Mutex
	resumed         bool
	closed          bool
	frames          int
	camera          tracking.Pose
	rotation        tracking.Rotation
	width, height   int
	geometryChanged bool
	textureNames    []uint32
	registrations   int
	config          tracking.Config
	failResume      []error
	failPause       []error
	failUpdates     int
	anchors         map[*anchor]struct{}
	resumes         int
	pauses          int
}

var _ tracking.Session = (*Session)(nil)

func newSession(scene Scene, opts options) *Session {
	s := &Session{
		scene:   scene,
		opts:    opts,
		camera:  scene.Camera,
		width:   1,
		height:  1,
		anchors: make(map[*anchor]struct{}),
	}
	for _, p := range scene.Planes {
		s.planes = append(s.planes, &simPlane{spec: p})
	}
	for _, p := range scene.Points {
		s.points = append(s.points, &simPoint{spec: p})
	}
	return s
}

// FailNextResume makes the next Resume calls fail with errs, one per call.
func (s *Session) FailNextResume(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failResume = append(s.failResume, errs...)
}

// FailNextPause makes the next Pause calls fail with errs, one per call.
// A failed Pause leaves the session running.
func (s *Session) FailNextPause(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPause = append(s.failPause, errs...)
}

// FailNextUpdates makes the next n Update calls fail with
// tracking.ErrCameraNotAvailable.
func (s *Session) FailNextUpdates(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUpdates += n
}

// SetCameraPose moves the camera.
func (s *Session) SetCameraPose(p tracking.Pose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = p
}

// Resumed reports whether the session is running.
func (s *Session) Resumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumed
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Counts returns how many times Resume and Pause succeeded.
func (s *Session) Counts() (resumes, pauses int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumes, s.pauses
}

// TextureRegistrations returns how many times SetCameraTextureNames was
// called.
func (s *Session) TextureRegistrations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registrations
}

// TextureNames returns the registered camera textures.
func (s *Session) TextureNames() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint32(nil), s.textureNames...)
}

// LiveAnchors returns the number of anchors not yet detached.
func (s *Session) LiveAnchors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.anchors)
}

// DisplayGeometry returns the last display rotation and size.
func (s *Session) DisplayGeometry() (tracking.Rotation, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotation, s.width, s.height
}

func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return tracking.ErrSessionClosed
	}
	if len(s.failResume) > 0 {
		err := s.failResume[0]
		s.failResume = s.failResume[1:]
		return err
	}
	s.resumed = true
	s.resumes++
	return nil
}

func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return tracking.ErrSessionClosed
	}
	if len(s.failPause) > 0 {
		err := s.failPause[0]
		s.failPause = s.failPause[1:]
		return err
	}
	if s.resumed {
		s.pauses++
	}
	s.resumed = false
	return nil
}

// Close detaches every anchor and releases the session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.resumed = false
	for a := range s.anchors {
		a.detached = true
	}
	clear(s.anchors)
}

func (s *Session) Update() (tracking.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.closed:
		return nil, tracking.ErrSessionClosed
	case !s.resumed:
		return nil, tracking.ErrSessionPaused
	case s.failUpdates > 0:
		s.failUpdates--
		return nil, tracking.ErrCameraNotAvailable
	}

	s.frames++
	f := &frame{
		session: s,
		camera: &camera{
			state:  tracking.StateTracking,
			pose:   s.camera,
			fovY:   s.scene.FovY,
			width:  s.width,
			height: s.height,
		},
		rotation:        s.rotation,
		geometryChanged: s.geometryChanged,
	}
	if s.textureNames != nil {
		f.texture = s.textureNames[(s.frames-1)%len(s.textureNames)]
	}
	if s.frames <= s.opts.warmupFrames {
		f.camera.state = tracking.StatePaused
	} else {
		f.timestamp = int64(s.frames-s.opts.warmupFrames) * int64(frameInterval)
	}
	s.geometryChanged = false
	return f, nil
}

func (s *Session) SetCameraTextureNames(names []uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textureNames = append([]uint32(nil), names...)
	s.registrations++
}

func (s *Session) SetDisplayGeometry(rotation tracking.Rotation, width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rotation == s.rotation && width == s.width && height == s.height {
		return
	}
	s.rotation, s.width, s.height = rotation, width, height
	s.geometryChanged = true
}

func (s *Session) CreateAnchor(pose tracking.Pose) (tracking.Anchor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAnchorLocked(pose)
}

func (s *Session) createAnchorLocked(pose tracking.Pose) (tracking.Anchor, error) {
	if s.closed {
		return nil, tracking.ErrSessionClosed
	}
	if !s.resumed || s.frames <= s.opts.warmupFrames {
		return nil, tracking.ErrNotTracking
	}
	a := &anchor{session: s, pose: pose}
	s.anchors[a] = struct{}{}
	return a, nil
}

func (s *Session) Config() tracking.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *Session) Configure(cfg tracking.Config) error {
	if cfg.Depth != tracking.DepthDisabled && !s.IsDepthModeSupported(cfg.Depth) {
		return tracking.ErrDeviceNotCompatible
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return tracking.ErrSessionClosed
	}
	s.config = cfg
	return nil
}

func (s *Session) IsDepthModeSupported(mode tracking.DepthMode) bool {
	return mode == tracking.DepthDisabled || s.opts.depthSupported
}

type anchor struct {
	session  *Session
	pose     tracking.Pose
	detached bool
}

func (a *anchor) Pose() tracking.Pose { return a.pose }

func (a *anchor) TrackingState() tracking.TrackingState {
	a.session.mu.Lock()
	defer a.session.mu.Unlock()
	if a.detached {
		return tracking.StateStopped
	}
	return tracking.StateTracking
}

func (a *anchor) Detach() {
	a.session.mu.Lock()
	defer a.session.mu.Unlock()
	a.detached = true
	delete(a.session.anchors, a)
}

type camera struct {
	state         tracking.TrackingState
	pose          tracking.Pose
	fovY          float32
	width, height int
}

func (c *camera) TrackingState() tracking.TrackingState { return c.state }
func (c *camera) Pose() tracking.Pose                   { return c.pose }
func (c *camera) ViewMatrix() mgl32.Mat4                { return c.pose.Matrix().Inv() }

func (c *camera) ProjectionMatrix(near, far float32) mgl32.Mat4 {
	aspect := float32(1)
	if c.height > 0 {
		aspect = float32(c.width) / float32(c.height)
	}
	return mgl32.Perspective(c.fovY, aspect, near, far)
}
