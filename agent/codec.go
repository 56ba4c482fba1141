package agent

import (
	"github.com/samber/lo"

	"tapnswap/game"
)

const (
	NumStates  = 625 // 25 pairs for each player
	NumActions = 8   // 4 taps and 4 swaps
)

// Codec is a bijection between game states and actions and the integer
// indexes of the value table. The ordering is fixed so that saved tables keep
// their meaning: pairs with distinct hands come before pairs with equal hands,
// the own pair varies slowest, taps come before swaps.
type Codec struct {
	states      []game.State
	stateCodes  map[game.State]int
	actions     []game.Action
	actionCodes map[game.Action]int
}

func NewCodec() *Codec {
	var pairs []game.Pair
	for i := 0; i <= game.MaxFingers; i++ {
		for j := 0; j <= game.MaxFingers; j++ {
			if i != j {
				pairs = append(pairs, game.Pair{i, j})
			}
		}
	}
	for i := 0; i <= game.MaxFingers; i++ {
		pairs = append(pairs, game.Pair{i, i})
	}

	c := &Codec{
		stateCodes:  make(map[game.State]int, NumStates),
		actionCodes: make(map[game.Action]int, NumActions),
	}
	for _, own := range pairs {
		for _, opponent := range pairs {
			s := game.State{own, opponent}
			c.stateCodes[s] = len(c.states)
			c.states = append(c.states, s)
		}
	}

	for i := 0; i < game.HandsPerPlayer; i++ {
		for j := 0; j < game.HandsPerPlayer; j++ {
			c.actions = append(c.actions, game.Tap(i, j))
		}
	}
	for i := 0; i < game.HandsPerPlayer; i++ {
		for n := 1; n <= game.MaxSwap; n++ {
			c.actions = append(c.actions, game.Swap(i, n))
		}
	}
	for i, a := range c.actions {
		c.actionCodes[a] = i
	}

	if len(c.states) != NumStates || len(c.actions) != NumActions {
		panic("codec dimensions do not match the value table")
	}
	return c
}

func (c *Codec) EncodeState(s game.State) (int, error) {
	code, ok := c.stateCodes[s]
	if !ok {
		return 0, &UnknownStateError{State: s, Code: -1}
	}
	return code, nil
}

func (c *Codec) DecodeState(code int) (game.State, error) {
	if code < 0 || code >= len(c.states) {
		return game.State{}, &UnknownStateError{Code: code}
	}
	return c.states[code], nil
}

func (c *Codec) EncodeAction(a game.Action) (int, error) {
	code, ok := c.actionCodes[a]
	if !ok {
		return 0, &UnknownActionError{Action: a, Code: -1}
	}
	return code, nil
}

func (c *Codec) DecodeAction(code int) (game.Action, error) {
	if code < 0 || code >= len(c.actions) {
		return game.Action{}, &UnknownActionError{Code: code}
	}
	return c.actions[code], nil
}

// EncodeActions encodes every action of the list, failing on the first one
// outside the dictionary.
func (c *Codec) EncodeActions(actions []game.Action) ([]int, error) {
	unknown, found := lo.Find(actions, func(a game.Action) bool {
		_, ok := c.actionCodes[a]
		return !ok
	})
	if found {
		return nil, &UnknownActionError{Action: unknown, Code: -1}
	}
	return lo.Map(actions, func(a game.Action, _ int) int {
		return c.actionCodes[a]
	}), nil
}
