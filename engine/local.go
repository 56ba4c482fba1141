package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"tapnswap/game"
)

// Run plays a game from the starting position until a player lost both hands
// or the round limit is reached.
//
// In training, the acting agent learns from a move that ends the game, and
// from the second turn on the waiting agent learns from its previous move,
// with the negated reward of the reply and the resulting state.
func (e *Engine) Run(start game.Player) (Result, error) {
	if !start.Valid() {
		return Result{}, fmt.Errorf("invalid starting player %d", start)
	}
	e.game.Reset()
	e.metrics.Start(start)

	var prevState game.State
	var prevAction game.Action
	player := start
	turns := 0
	for {
		board := e.game.State()
		state := board.From(player)
		actions := e.game.LegalActions(player)
		action, err := e.agents[player].ChooseAction(state, actions, e.training)
		if err != nil {
			return Result{}, fmt.Errorf("player %d failed to choose an action on %v: %w", player, board, err)
		}
		reward, err := e.game.ApplyAction(player, action)
		if err != nil {
			return Result{}, err
		}
		e.metrics.AddMove(action)
		log.Debug().Msgf("turn %d: player %d plays %s on %v", turns+1, player, action.Describe(board, player), board)

		over, winner := e.game.IsTerminal()
		if e.training {
			next := e.game.State()
			if over {
				if err := e.agents[player].Update(state, action, reward, next.From(player)); err != nil {
					return Result{}, fmt.Errorf("failed to update player %d: %w", player, err)
				}
			}
			if turns > 0 {
				opponent := player.Opponent()
				if err := e.agents[opponent].Update(prevState, prevAction, -reward, next.From(opponent)); err != nil {
					return Result{}, fmt.Errorf("failed to update player %d: %w", opponent, err)
				}
			}
			prevState, prevAction = state, action
		}
		turns++

		forced := false
		if !over && e.maxTurns > 0 && turns > e.maxTurns {
			over, winner, forced = true, game.NoPlayer, true
		}
		if over {
			if forced {
				log.Debug().Msgf("game stopped as a tie after %d turns", turns)
			} else {
				log.Debug().Msgf("player %d won after %d turns", winner, turns)
			}
			return Result{
				Winner:   winner,
				Starting: start,
				Turns:    turns,
				Forced:   forced,
				Metric:   e.metrics.Complete(winner, forced),
			}, nil
		}
		player = player.Opponent()
	}
}
