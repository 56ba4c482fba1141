package game

import "github.com/samber/lo"

// LegalActions returns the legal actions of player on state: taps first,
// then swaps, keeping only the first action of each observable effect.
func LegalActions(s State, player Player) []Action {
	actions := append(tapActions(s, player), swapActions(s, player)...)
	return lo.UniqBy(actions, func(a Action) effect {
		return a.effect(s, player)
	})
}

// tapActions lists every tap between a living hand of player and a living
// hand of the opponent.
func tapActions(s State, player Player) []Action {
	var actions []Action
	for giving := 0; giving < HandsPerPlayer; giving++ {
		for receiving := 0; receiving < HandsPerPlayer; receiving++ {
			action := Tap(giving, receiving)
			if CheckAction(s, player, action) == nil {
				actions = append(actions, action)
			}
		}
	}
	return actions
}

// swapActions lists every swap of 1 or 2 fingers that passes CheckAction.
// Smaller amounts come first and, for equal amounts, the fuller hand gives
// first, so de-duplication keeps the swap that grows the larger hand. Swaps
// that overflow the receiving hand come last.
func swapActions(s State, player Player) []Action {
	own := s[player]
	order := [HandsPerPlayer]int{0, 1}
	if own[1] > own[0] {
		order = [HandsPerPlayer]int{1, 0}
	}
	var safe, overflow []Action
	for amount := 1; amount <= MaxSwap; amount++ {
		for _, giving := range order {
			action := Swap(giving, amount)
			if CheckAction(s, player, action) != nil {
				continue
			}
			if own[1-giving]+amount > MaxFingers {
				overflow = append(overflow, action)
			} else {
				safe = append(safe, action)
			}
		}
	}
	return append(safe, overflow...)
}

// CheckAction returns an *IllegalActionError if player may not perform
// action on state.
func CheckAction(s State, player Player, action Action) error {
	if !player.Valid() {
		return illegal(s, player, action, "unknown player")
	}
	if action.Hand < 0 || action.Hand >= HandsPerPlayer {
		return illegal(s, player, action, "hand %d out of range", action.Hand)
	}
	own := s[player]
	switch action.Type {
	case TapAction:
		if action.Arg < 0 || action.Arg >= HandsPerPlayer {
			return illegal(s, player, action, "hand %d out of range", action.Arg)
		}
		if !alive(own[action.Hand]) {
			return illegal(s, player, action, "tapping hand is dead")
		}
		if !alive(s[player.Opponent()][action.Arg]) {
			return illegal(s, player, action, "tapped hand is dead")
		}
	case SwapAction:
		amount := action.Arg
		if amount < 1 || amount > MaxSwap {
			return illegal(s, player, action, "swap amount must be between 1 and %d", MaxSwap)
		}
		if amount > own[action.Hand] {
			return illegal(s, player, action, "hand holds only %d fingers", own[action.Hand])
		}
		if own[action.Hand]-amount == own[1-action.Hand] {
			return illegal(s, player, action, "swap only mirrors %s", own)
		}
		if sum := own.Sum(); sum <= 1 || sum >= 7 {
			return illegal(s, player, action, "no swap possible with %d fingers", sum)
		}
	default:
		return illegal(s, player, action, "unknown action type")
	}
	return nil
}

func alive(fingers int) bool {
	return fingers > 0 && fingers <= MaxFingers
}

// effect identifies what an action visibly does to the board. A tap is seen
// through which hands touched and the opponent pair it leaves. A swap is seen
// through the distribution of fingers it leaves, whichever hand holds them.
type effect struct {
	action ActionType
	hand   int
	target int
	result Pair
}

func (a Action) effect(s State, player Player) effect {
	after := a.apply(s, player)
	switch a.Type {
	case TapAction:
		return effect{action: TapAction, hand: a.Hand, target: a.Arg, result: after[player.Opponent()]}
	default:
		return effect{action: a.Type, hand: -1, target: -1, result: after[player].sorted()}
	}
}
