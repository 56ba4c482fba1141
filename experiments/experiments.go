// Package experiments trains learning agents and measures them against each
// other: training runs, grid searches over the exploration rate, matches and
// tournaments between saved models.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"tapnswap/agent"
	"tapnswap/config"
	"tapnswap/engine"
	"tapnswap/experiments/metrics"
	"tapnswap/game"
	"tapnswap/store"
)

// Train plays cfg.Epochs training games between a learning agent and its
// opponent, alternating the starting player, tests the learner against a
// random agent every cfg.TestEvery epochs and saves its table as cfg.Name.
func Train(cfg config.Train) (*agent.RLAgent, []metrics.LearningRecord, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid training config: %w", err)
	}
	rng := agent.NewRand(cfg.Seed)

	var table *agent.Table
	if cfg.Load != "" {
		loaded, err := store.Load(cfg.ModelsDir, cfg.Load)
		if err != nil {
			return nil, nil, err
		}
		table = loaded
		log.Info().Msgf("resuming training of %s", cfg.Load)
	}
	newLearner := func() *agent.RLAgent {
		options := []agent.Option{
			agent.WithEpsilon(cfg.Epsilon),
			agent.WithGamma(cfg.Gamma),
			agent.WithSeed(rng.Uint64()),
		}
		if table != nil {
			options = append(options, agent.WithTable(table.Clone()))
		}
		return agent.NewRLAgent(options...)
	}

	learner := newLearner()
	var opponent agent.Agent
	switch cfg.Opponent {
	case config.OpponentSelf:
		opponent = newLearner()
	default:
		opponent = agent.NewRandomAgent(rng.Uint64())
	}
	log.Info().Msgf("training %s vs %s for %d epochs with epsilon=%v gamma=%v", cfg.Name, cfg.Opponent, cfg.Epochs, cfg.Epsilon, cfg.Gamma)

	testEvery := cfg.TestEvery
	if testEvery <= 0 {
		testEvery = cfg.Epochs
	}
	evaluate := cfg.TestEvery >= 0 && cfg.TestGames > 0

	e := engine.NewEngine([game.NumPlayers]agent.Agent{learner, opponent}, engine.WithTraining(true), engine.WithMaxTurns(cfg.MaxTurns))
	records := []metrics.LearningRecord{}
	wins := [game.NumPlayers]int{}
	start := game.Player0
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		result, err := e.Run(start)
		if err != nil {
			return nil, nil, fmt.Errorf("training game %d failed: %w", epoch, err)
		}
		if result.Winner.Valid() {
			wins[result.Winner]++
		}

		if evaluate && epoch%testEvery == 0 {
			score, err := engine.Compare(learner, agent.NewRandomAgent(rng.Uint64()), cfg.TestGames, 0)
			if err != nil {
				return nil, nil, fmt.Errorf("test after epoch %d failed: %w", epoch, err)
			}
			records = append(records, metrics.LearningRecord{
				Epoch:    epoch,
				Wins:     score.Wins[0],
				Finished: score.Finished,
				Games:    score.Games,
			})
			log.Info().Msgf("epoch %d of %d: won %d of %d test games against random", epoch, cfg.Epochs, score.Wins[0], score.Games)
		} else if cfg.Epochs >= 10 && epoch%(cfg.Epochs/10) == 0 {
			log.Info().Msgf("epoch %d of %d: scores %v", epoch, cfg.Epochs, wins)
		}

		start = start.Opponent()
	}

	if err := store.Save(cfg.ModelsDir, cfg.Name, learner.Table()); err != nil {
		return nil, nil, err
	}
	log.Info().Msgf("saved %s to %s", cfg.Name, store.ValuesPath(cfg.ModelsDir, cfg.Name))
	return learner, records, nil
}

// SaveLearning writes the test results of a training run and their plot under
// outputDir.
func SaveLearning(outputDir, name string, records []metrics.LearningRecord) (*metrics.Writer, error) {
	writer, err := metrics.NewWriter(outputDir, "train_"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteLearningRecords(records); err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if err := PlotLearningCurve(name, records, writer.Path("learning.png")); err != nil {
			return nil, err
		}
	}
	log.Info().Msgf("stored learning records of %s in %s", name, writer.BaseDir())
	return writer, nil
}
