// internal/launch/state.go

package launch

import (
	"fmt"

	"github.com/rs/zerolog"
)

// State is the phase of one launch attempt.
type State int

const (
	Idle State = iota
	Resolving
	Authenticating
	Launching
	Done
)

var stateNames = [...]string{
	Idle:           "idle",
	Resolving:      "resolving",
	Authenticating: "authenticating",
	Launching:      "launching",
	Done:           "done",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ValidTransitions lists the allowed next states for each state.
// Every non-terminal state may jump to Done when the attempt ends early.
var ValidTransitions = map[State][]State{
	Idle:           {Resolving, Done},
	Resolving:      {Authenticating, Launching, Done},
	Authenticating: {Launching, Done},
	Launching:      {Done},
	Done:           {},
}

// CanTransition reports whether from -> to is allowed.
func CanTransition(from, to State) bool {
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	AttemptID string
	From      State
	To        State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid launch state transition: %s -> %s (attempt: %s)", e.From, e.To, e.AttemptID)
}

// machine tracks the state of one attempt and logs every move.
type machine struct {
	id    string
	state State
	log   zerolog.Logger
}

func (m *machine) to(next State) error {
	if !CanTransition(m.state, next) {
		m.log.Error().Stringer("from", m.state).Stringer("to", next).Msg("invalid state transition")
		return &TransitionError{AttemptID: m.id, From: m.state, To: next}
	}
	m.log.Debug().Stringer("from", m.state).Stringer("to", next).Msg("state transition")
	m.state = next
	return nil
}
