package game

import "fmt"

// ActionType represents the kind of action a player can perform.
type ActionType int

const (
	TapAction ActionType = iota
	SwapAction
)

func (t ActionType) String() string {
	switch t {
	case TapAction:
		return "tap"
	case SwapAction:
		return "swap"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Action is a move of the acting player.
//
// For a tap, Hand is the acting player's tapping hand and Arg the opponent's
// tapped hand. For a swap, Hand is the hand giving fingers and Arg the number
// of fingers moved to the other hand.
type Action struct {
	Type ActionType
	Hand int
	Arg  int
}

// Tap returns the action of tapping the opponent's receiving hand with the
// giving hand.
func Tap(giving, receiving int) Action {
	return Action{Type: TapAction, Hand: giving, Arg: receiving}
}

// Swap returns the action of moving amount fingers from the giving hand to
// the acting player's other hand.
func Swap(giving, amount int) Action {
	return Action{Type: SwapAction, Hand: giving, Arg: amount}
}

func (a Action) String() string {
	switch a.Type {
	case TapAction:
		return fmt.Sprintf("tap(%d->%d)", a.Hand, a.Arg)
	case SwapAction:
		return fmt.Sprintf("swap(%d,%d)", a.Hand, a.Arg)
	default:
		return fmt.Sprintf("%v(%d,%d)", a.Type, a.Hand, a.Arg)
	}
}

// Describe renders the action as played on state by player, e.g.
// "tap with 2 on 3" or "swap 3-1 for 2-2".
func (a Action) Describe(s State, player Player) string {
	switch a.Type {
	case TapAction:
		return fmt.Sprintf("tap with %d on %d", s[player][a.Hand], s[player.Opponent()][a.Arg])
	case SwapAction:
		return fmt.Sprintf("swap %s for %s", s[player], a.apply(s, player)[player])
	default:
		return a.String()
	}
}

// apply returns the state after player performs the action. The action must
// have been checked before.
func (a Action) apply(s State, player Player) State {
	switch a.Type {
	case TapAction:
		opponent := player.Opponent()
		s[opponent][a.Arg] = clamp(s[opponent][a.Arg] + s[player][a.Hand])
	case SwapAction:
		other := 1 - a.Hand
		s[player][other] = clamp(s[player][other] + a.Arg)
		s[player][a.Hand] -= a.Arg
	}
	return s
}
