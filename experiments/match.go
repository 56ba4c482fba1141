package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tapnswap/agent"
	"tapnswap/engine"
	"tapnswap/experiments/metrics"
	"tapnswap/game"
)

// Match plays games between two agents without training, alternating the
// starting agent, and records every game. The records are written to
// games.csv under outputDir unless outputDir is empty.
func Match(agents [game.NumPlayers]agent.Agent, names [game.NumPlayers]string, games, maxTurns int, outputDir string) (engine.Score, error) {
	e := engine.NewEngine(agents, engine.WithMaxTurns(maxTurns), engine.WithMetrics())
	score := engine.Score{Games: games}
	records := make([]metrics.GameRecord, 0, games)

	log.Info().Msgf("starting %d games between %s and %s...", games, names[0], names[1])
	begin := time.Now()
	start := game.Player0
	for i := 0; i < games; i++ {
		result, err := e.Run(start)
		if err != nil {
			return engine.Score{}, fmt.Errorf("game %d failed: %w", i+1, err)
		}
		if result.Winner.Valid() {
			score.Wins[result.Winner]++
			score.Finished++
		}
		records = append(records, metrics.GameRecord{
			ID:         i + 1,
			Agent1:     names[0],
			Agent2:     names[1],
			GameMetric: result.Metric,
		})
		start = start.Opponent()
	}
	elapsed := time.Since(begin)
	log.Info().Msgf("completed %d games in %v (%.0f games/s): %s won %d, %s won %d, %d ties",
		games, elapsed, float64(games)/elapsed.Seconds(), names[0], score.Wins[0], names[1], score.Wins[1], games-score.Finished)

	if outputDir == "" {
		return score, nil
	}
	writer, err := metrics.NewWriter(outputDir, "match")
	if err != nil {
		return score, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteGameRecords(records); err != nil {
		return score, err
	}
	log.Info().Msgf("stored game records in %s", writer.BaseDir())
	return score, nil
}
