// Package agent holds the players of tap'n swap: a tabular learning agent and
// a uniformly random baseline.
package agent

import (
	"math"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"tapnswap/game"
)

// Agent decides on actions for one player and may learn from the
// transitions it is shown. States are always given from the agent's own
// perspective, see game.State.From.
type Agent interface {
	// ChooseAction returns one of actions. explore enables exploratory moves
	// for agents that make them.
	ChooseAction(state game.State, actions []game.Action, explore bool) (game.Action, error)
	Update(state game.State, action game.Action, reward float64, next game.State) error
}

var (
	_ Agent = (*RLAgent)(nil)
	_ Agent = (*RandomAgent)(nil)
)

// NewSeed draws a random seed from the system's entropy.
func NewSeed() uint64 {
	return frand.Uint64n(math.MaxUint64)
}

// NewRand returns a random source seeded with seed, or with NewSeed if seed
// is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = NewSeed()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomAgent plays uniformly among the legal actions and never learns.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) ChooseAction(_ game.State, actions []game.Action, _ bool) (game.Action, error) {
	if len(actions) == 0 {
		return game.Action{}, ErrNoActions
	}
	return actions[a.rng.Intn(len(actions))], nil
}

func (a *RandomAgent) Update(game.State, game.Action, float64, game.State) error {
	return nil
}
