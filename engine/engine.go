// Package engine plays games of tap'n swap between two agents.
package engine

import (
	"tapnswap/agent"
	"tapnswap/experiments/metrics"
	"tapnswap/game"
	"tapnswap/meta"
)

type Option func(e *Engine)

// WithMaxTurns calls a game a tie once more than turns turns were played
// without a winner. 0 removes the limit.
func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns >= 0 {
			e.maxTurns = turns
		}
	}
}

// WithTraining lets both agents explore and shows them their transitions.
func WithTraining(training bool) Option {
	return func(e *Engine) {
		e.training = training
	}
}

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = metrics.NewCollector()
	}
}

// Engine runs games between agents[0], playing game.Player0, and agents[1],
// playing game.Player1.
type Engine struct {
	game     *game.Game
	agents   [game.NumPlayers]agent.Agent
	maxTurns int
	training bool
	metrics  metrics.Collector
}

type Result struct {
	Winner   game.Player // NoPlayer on a tie
	Starting game.Player
	Turns    int
	Forced   bool // Stopped by the round limit
	Metric   metrics.GameMetric
}

func NewEngine(agents [game.NumPlayers]agent.Agent, options ...Option) *Engine {
	for _, a := range agents {
		if a == nil {
			panic("engine needs two agents")
		}
	}
	e := &Engine{ // Default values
		game:     game.NewGame(),
		agents:   agents,
		maxTurns: meta.MaxTurns,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}
