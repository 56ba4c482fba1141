package agent

import (
	"errors"
	"fmt"

	"tapnswap/game"
)

// ErrNoActions is returned when an agent is asked to choose among no actions.
var ErrNoActions = errors.New("no actions to choose from")

// UnknownStateError is returned when a state or a state code is outside the
// codec's domain. Code is -1 when a state failed to encode.
type UnknownStateError struct {
	State game.State
	Code  int
}

func (e *UnknownStateError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf("unknown state code %d, expected 0 to %d", e.Code, NumStates-1)
	}
	return fmt.Sprintf("state %v is not in the dictionary of states", e.State)
}

// UnknownActionError is returned when an action or an action code is outside
// the codec's domain. Code is -1 when an action failed to encode.
type UnknownActionError struct {
	Action game.Action
	Code   int
}

func (e *UnknownActionError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf("unknown action code %d, expected 0 to %d", e.Code, NumActions-1)
	}
	return fmt.Sprintf("action %v is not in the dictionary of actions", e.Action)
}
