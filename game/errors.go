package game

import "fmt"

// IllegalActionError is returned when an action violates the rules for the
// current state. Callers should only submit actions taken from LegalActions.
type IllegalActionError struct {
	Player Player
	Action Action
	State  State
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %v by player %d on %v: %s", e.Action, e.Player, e.State, e.Reason)
}

func illegal(s State, player Player, action Action, format string, args ...any) *IllegalActionError {
	return &IllegalActionError{
		Player: player,
		Action: action,
		State:  s,
		Reason: fmt.Sprintf(format, args...),
	}
}
