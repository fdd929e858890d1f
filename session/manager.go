package session

import (
	"fmt"
	"sync"

	"github.com/gogpu/arcam/internal/logx"
	"github.com/gogpu/arcam/tracking"
)

// Stats counts lifecycle outcomes.
type Stats struct {
	CreateAttempts int
	Created        int
	Resumes        int
	Pauses         int
	Closes         int
	Failures       int
}

// Manager owns at most one tracking session. It is safe for concurrent use.
type Manager struct {
	provider tracking.Provider
	perms    Permissions
	opts     options

	mu               sync.RWMutex
	handle           tracking.Session
	resumed          bool
	installRequested bool
	closeHooks       []func(tracking.Session)
	stats            Stats
}

// NewManager returns a manager creating sessions from provider. A nil
// perms is treated as Granted.
func NewManager(provider tracking.Provider, perms Permissions, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if perms == nil {
		perms = Granted{}
	}
	return &Manager{provider: provider, perms: perms, opts: o}
}

// HandleEvent applies a lifecycle transition.
func (m *Manager) HandleEvent(phase Phase) {
	logx.L().Debug("session: lifecycle event", "phase", phase)

	var err error
	switch phase {
	case PhaseResumed:
		err = m.resume()
	case PhasePaused:
		err = m.pause()
	case PhaseDestroyed:
		m.destroy()
	case PhaseCreated, PhaseStarted, PhaseStopped:
	}
	if err != nil {
		m.opts.onError(err)
	}
}

// AddCloseHook registers fn to run with the session just before it is
// closed. Hooks run with the manager locked and must not call back into it.
func (m *Manager) AddCloseHook(fn func(tracking.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeHooks = append(m.closeHooks, fn)
}

// Do runs fn with the resumed session, or nil when none is resumed.
// Lifecycle transitions wait until fn returns.
func (m *Manager) Do(fn func(tracking.Session) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var s tracking.Session
	if m.resumed {
		s = m.handle
	}
	return fn(s)
}

// Session returns the held session, resumed or not, or nil.
func (m *Manager) Session() tracking.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handle
}

// Resumed reports whether the held session is running.
func (m *Manager) Resumed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resumed
}

// InstallRequested reports whether an install flow was launched.
func (m *Manager) InstallRequested() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.installRequested
}

// Stats returns a snapshot of the lifecycle counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *Manager) resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle != nil && m.resumed {
		return nil
	}

	created := false
	if m.handle == nil {
		s, err := m.tryCreateLocked()
		if err != nil {
			m.stats.Failures++
			return err
		}
		if s == nil {
			return nil
		}
		m.handle, created = s, true
	}

	if err := m.startLocked(); err != nil {
		m.stats.Failures++
		if created {
			m.handle.Close()
			m.handle = nil
			m.stats.Closes++
		}
		return err
	}
	m.resumed = true
	m.stats.Resumes++
	logx.L().Info("session: resumed", "new", created)
	return nil
}

// tryCreateLocked returns nil and no error when a precondition is pending.
func (m *Manager) tryCreateLocked() (tracking.Session, error) {
	m.stats.CreateAttempts++
	if !m.perms.HasCamera() {
		logx.L().Info("session: requesting camera permission")
		m.perms.RequestCamera()
		return nil, nil
	}
	status, err := m.opts.installer.RequestInstall(!m.installRequested)
	if err != nil {
		return nil, fmt.Errorf("session: install: %w", err)
	}
	if status == tracking.InstallRequested {
		logx.L().Info("session: install requested")
		m.installRequested = true
		return nil, nil
	}
	s, err := m.provider.NewSession(m.opts.features)
	if err != nil {
		return nil, fmt.Errorf("session: create: %w", err)
	}
	m.stats.Created++
	return s, nil
}

func (m *Manager) startLocked() error {
	if hook := m.opts.beforeResume; hook != nil {
		if err := hook(m.handle); err != nil {
			return fmt.Errorf("session: configure: %w", err)
		}
	}
	if err := m.handle.Resume(); err != nil {
		return fmt.Errorf("session: resume: %w", err)
	}
	return nil
}

func (m *Manager) pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle == nil || !m.resumed {
		return nil
	}
	if err := m.handle.Pause(); err != nil {
		m.stats.Failures++
		return fmt.Errorf("session: pause: %w", err)
	}
	m.resumed = false
	m.stats.Pauses++
	logx.L().Info("session: paused")
	return nil
}

func (m *Manager) destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handle == nil {
		return
	}
	for _, hook := range m.closeHooks {
		hook(m.handle)
	}
	m.handle.Close()
	m.handle = nil
	m.resumed = false
	m.stats.Closes++
	logx.L().Info("session: closed")
}
