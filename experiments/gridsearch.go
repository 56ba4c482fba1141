package experiments

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tapnswap/agent"
	"tapnswap/config"
	"tapnswap/engine"
	"tapnswap/store"
)

const (
	duelGames    = 10 // Games between two versions of a retrained model
	duelMaxTurns = 100
)

// ModelName names the model trained with epsilon against opponent, e.g.
// greedy0_2_vsSelf.
func ModelName(epsilon float64, opponent string) string {
	eps := strconv.FormatFloat(epsilon, 'f', -1, 64)
	if !strings.Contains(eps, ".") {
		eps += ".0"
	}
	eps = strings.Replace(eps, ".", "_", 1)
	switch opponent {
	case config.OpponentRandom:
		opponent = "Random"
	case config.OpponentSelf:
		opponent = "Self"
	}
	return fmt.Sprintf("greedy%s_vs%s", eps, opponent)
}

// GridSearch trains one model per exploration rate and opponent kind, then
// ranks all of them in a tournament. With search.Retrain, saved models are
// trained further and the new version is only kept if it does at least as
// well as the old one in a duel.
func GridSearch(search config.GridSearch, train config.Train, tournament config.Tournament) (*Standings, error) {
	var models []string
	for _, opponent := range search.Opponents {
		for _, epsilon := range search.Epsilons {
			cfg := train
			cfg.Epsilon = epsilon
			cfg.Opponent = opponent
			cfg.Epochs = search.Epochs
			cfg.TestEvery = search.TestEvery
			cfg.TestGames = search.TestGames
			cfg.Name = ModelName(epsilon, opponent)
			cfg.Load = ""

			model := cfg.Name
			retrain := search.Retrain && store.Exists(cfg.ModelsDir, model)
			if retrain {
				cfg.Load = model
				cfg.Name = model + "_temp"
			}

			trained, records, err := Train(cfg)
			if err != nil {
				return nil, fmt.Errorf("grid search failed on %s: %w", model, err)
			}
			if _, err := SaveLearning(cfg.OutputDir, cfg.Name, records); err != nil {
				return nil, err
			}
			if retrain {
				if err := keepBetter(cfg.ModelsDir, model, cfg.Name, trained, tournament.Seed); err != nil {
					return nil, err
				}
			}
			models = append(models, model)
		}
	}

	tournament.ModelsDir = train.ModelsDir
	tournament.Models = models
	return Tournament(tournament)
}

// keepBetter confronts the saved model with its retrained version and keeps
// the retrained one unless the old one wins more games.
func keepBetter(dir, model, temp string, retrained *agent.RLAgent, seed uint64) error {
	table, err := store.Load(dir, model)
	if err != nil {
		return err
	}
	rng := agent.NewRand(seed)
	old := agent.NewRLAgent(agent.WithTable(table), agent.WithSeed(rng.Uint64()))
	challenger := agent.NewRLAgent(
		agent.WithTable(retrained.Table().Clone()),
		agent.WithEpsilon(retrained.Epsilon()),
		agent.WithGamma(retrained.Gamma()),
		agent.WithSeed(rng.Uint64()),
	)
	score, err := engine.Compare(old, challenger, duelGames, duelMaxTurns)
	if err != nil {
		return err
	}

	if score.Wins[1] >= score.Wins[0] {
		log.Info().Msgf("retrained %s won %d-%d, replacing it", model, score.Wins[1], score.Wins[0])
		if err := store.Delete(dir, model); err != nil {
			return err
		}
		return store.Rename(dir, temp, model)
	}
	log.Warn().Msgf("retrained %s lost %d-%d, keeping the previous version", model, score.Wins[1], score.Wins[0])
	return store.Delete(dir, temp)
}
