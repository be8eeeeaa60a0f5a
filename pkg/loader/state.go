package loader

import "time"

// State represents the lifecycle of a Loader.
type State int

const (
	Idle    State = iota // Not started
	Pending              // Load or minimum delay in progress
	Ready                // View loaded
	Failed               // Load failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == Ready || s == Failed
}

// Snapshot is a point in time copy of a loader's state.
type Snapshot struct {
	State     State
	StartedAt time.Time
	Err       error
}
