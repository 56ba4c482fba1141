package engine

import (
	"github.com/rs/zerolog/log"

	"tapnswap/agent"
	"tapnswap/game"
)

// Score sums up a series of games between two agents.
type Score struct {
	Finished int    // Games with a winner
	Games    int    // Games played
	Wins     [2]int // Games won by each agent
}

// Compare plays games between a1 and a2 without training, alternating the
// starting agent and beginning with a1.
func Compare(a1, a2 agent.Agent, games, maxTurns int) (Score, error) {
	e := NewEngine([game.NumPlayers]agent.Agent{a1, a2}, WithMaxTurns(maxTurns))
	score := Score{Games: games}
	start := game.Player0
	for i := 0; i < games; i++ {
		result, err := e.Run(start)
		if err != nil {
			return Score{}, err
		}
		if result.Winner.Valid() {
			score.Wins[result.Winner]++
			score.Finished++
		}
		start = start.Opponent()
	}
	log.Debug().Msgf("compared agents over %d games: %v", games, score.Wins)
	return score, nil
}
