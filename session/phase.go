package session

// Phase is a host lifecycle phase.
type Phase int

// Lifecycle phases. Only Resumed, Paused and Destroyed change the session.
const (
	PhaseCreated Phase = iota
	PhaseStarted
	PhaseResumed
	PhasePaused
	PhaseStopped
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseStarted:
		return "started"
	case PhaseResumed:
		return "resumed"
	case PhasePaused:
		return "paused"
	case PhaseStopped:
		return "stopped"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
