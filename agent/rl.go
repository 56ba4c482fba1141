package agent

import (
	"golang.org/x/exp/rand"

	"tapnswap/game"
	"tapnswap/meta"
)

type Option func(a *RLAgent)

// WithEpsilon sets the exploration rate used while training.
func WithEpsilon(epsilon float64) Option {
	return func(a *RLAgent) {
		if epsilon >= 0 && epsilon <= 1 {
			a.epsilon = epsilon
		}
	}
}

// WithGamma sets the discount factor.
func WithGamma(gamma float64) Option {
	return func(a *RLAgent) {
		if gamma >= 0 && gamma <= 1 {
			a.gamma = gamma
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(a *RLAgent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTable starts the agent from an existing, e.g. loaded, table.
func WithTable(table *Table) Option {
	return func(a *RLAgent) {
		if table != nil {
			a.table = table
		}
	}
}

// RLAgent plays epsilon-greedily on a table of action values and learns it by
// sample-averaged temporal-difference updates.
type RLAgent struct {
	codec   *Codec
	table   *Table
	epsilon float64
	gamma   float64
	rng     *rand.Rand
}

func NewRLAgent(options ...Option) *RLAgent {
	a := &RLAgent{ // Default values
		codec:   NewCodec(),
		table:   NewTable(),
		epsilon: meta.DefaultEpsilon,
		gamma:   meta.DefaultGamma,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(NewSeed()))
	}
	return a
}

func (a *RLAgent) Table() *Table {
	return a.table
}

func (a *RLAgent) Epsilon() float64 {
	return a.epsilon
}

func (a *RLAgent) Gamma() float64 {
	return a.gamma
}

// Clone returns an agent with a copy of the table and its own random source,
// safe to use concurrently with the original.
func (a *RLAgent) Clone() *RLAgent {
	return NewRLAgent(
		WithTable(a.table.Clone()),
		WithEpsilon(a.epsilon),
		WithGamma(a.gamma),
		WithSeed(a.rng.Uint64()),
	)
}

// Value returns the learned value of action in state.
func (a *RLAgent) Value(state game.State, action game.Action) (float64, error) {
	s, err := a.codec.EncodeState(state)
	if err != nil {
		return 0, err
	}
	act, err := a.codec.EncodeAction(action)
	if err != nil {
		return 0, err
	}
	return a.table.Values.At(s, act), nil
}

// ChooseAction picks a uniformly random action with probability epsilon when
// exploring, and otherwise the action with the highest value, the earliest in
// actions on ties.
func (a *RLAgent) ChooseAction(state game.State, actions []game.Action, explore bool) (game.Action, error) {
	if len(actions) == 0 {
		return game.Action{}, ErrNoActions
	}
	s, err := a.codec.EncodeState(state)
	if err != nil {
		return game.Action{}, err
	}
	codes, err := a.codec.EncodeActions(actions)
	if err != nil {
		return game.Action{}, err
	}

	rate := 0.0
	if explore {
		rate = a.epsilon
	}
	if a.rng.Float64() < rate {
		return a.codec.DecodeAction(codes[a.rng.Intn(len(codes))])
	}

	best := codes[0]
	for _, code := range codes[1:] {
		if a.table.Values.At(s, code) > a.table.Values.At(s, best) {
			best = code
		}
	}
	return a.codec.DecodeAction(best)
}

// Update moves the value of (state, action) towards reward plus the
// discounted best value of next, with step 1/n for the n-th visit.
func (a *RLAgent) Update(state game.State, action game.Action, reward float64, next game.State) error {
	s, err := a.codec.EncodeState(state)
	if err != nil {
		return err
	}
	act, err := a.codec.EncodeAction(action)
	if err != nil {
		return err
	}
	sNext, err := a.codec.EncodeState(next)
	if err != nil {
		return err
	}

	target := reward + a.gamma*a.table.MaxValue(sNext)
	n := a.table.Counts.At(s, act) + 1
	a.table.Counts.Set(s, act, n)
	q := a.table.Values.At(s, act)
	a.table.Values.Set(s, act, q+(target-q)/n)
	return nil
}
