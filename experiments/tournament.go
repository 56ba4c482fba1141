package experiments

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"tapnswap/agent"
	"tapnswap/config"
	"tapnswap/engine"
	"tapnswap/experiments/metrics"
	"tapnswap/store"
)

// Standings is the outcome of a tournament. Scores[i][j] is the number of
// games Models[i] won against Models[j].
type Standings struct {
	Models  []string
	Scores  [][]int
	Ranking []metrics.RankingRecord
}

// SavedModels lists the models with both matrices saved in dir.
func SavedModels(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	models := lo.FilterMap(paths, func(path string, _ int) (string, bool) {
		name := strings.TrimSuffix(filepath.Base(path), ".csv")
		return name, store.Exists(dir, name)
	})
	slices.Sort(models)
	return models, nil
}

// Tournament lets every model play every other model. Each match alternates
// the starting model and runs on its own copies of the tables, so matches are
// played concurrently by up to cfg.Workers goroutines.
func Tournament(cfg config.Tournament) (*Standings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tournament config: %w", err)
	}
	models := cfg.Models
	if len(models) == 0 {
		saved, err := SavedModels(cfg.ModelsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		models = saved
	}
	if len(models) < 2 {
		return nil, fmt.Errorf("a tournament needs at least 2 models, found %d in %s", len(models), cfg.ModelsDir)
	}

	tables := make([]*agent.Table, len(models))
	for i, model := range models {
		table, err := store.Load(cfg.ModelsDir, model)
		if err != nil {
			return nil, err
		}
		tables[i] = table
	}

	log.Info().Msgf("starting tournament between %d models...", len(models))

	scores := make([][]int, len(models))
	for i := range scores {
		scores[i] = make([]int, len(models))
	}
	rng := agent.NewRand(cfg.Seed)
	g := errgroup.Group{}
	g.SetLimit(cfg.Workers)
	for i := range models {
		for j := i + 1; j < len(models); j++ {
			a1 := agent.NewRLAgent(agent.WithTable(tables[i].Clone()), agent.WithSeed(rng.Uint64()))
			a2 := agent.NewRLAgent(agent.WithTable(tables[j].Clone()), agent.WithSeed(rng.Uint64()))
			g.Go(func() error {
				score, err := engine.Compare(a1, a2, cfg.GamesPerMatch, cfg.MaxTurns)
				if err != nil {
					return fmt.Errorf("match %s vs %s failed: %w", models[i], models[j], err)
				}
				scores[i][j] = score.Wins[0]
				scores[j][i] = score.Wins[1]
				log.Info().Msgf("%s vs %s: %d-%d", models[i], models[j], score.Wins[0], score.Wins[1])
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	standings := &Standings{
		Models:  models,
		Scores:  scores,
		Ranking: rank(models, scores),
	}
	log.Info().Msg("completed tournament")
	return standings, nil
}

// rank orders the models by total games won, best first.
func rank(models []string, scores [][]int) []metrics.RankingRecord {
	ranking := make([]metrics.RankingRecord, len(models))
	for i, model := range models {
		wins := make([]float64, 0, len(models)-1)
		for j, score := range scores[i] {
			if j != i {
				wins = append(wins, float64(score))
			}
		}
		ranking[i] = metrics.RankingRecord{
			Model: model,
			Total: lo.Sum(wins),
			Mean:  stat.Mean(wins, nil),
		}
	}
	slices.SortStableFunc(ranking, func(a, b metrics.RankingRecord) int {
		return cmp.Compare(b.Total, a.Total)
	})
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking
}

// WriteStandings stores the score matrix and the ranking under outputDir.
func WriteStandings(outputDir string, standings *Standings) (*metrics.Writer, error) {
	writer, err := metrics.NewWriter(outputDir, "tournament")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteTournament(standings.Models, standings.Scores); err != nil {
		return nil, err
	}
	if err := writer.WriteRanking(standings.Ranking); err != nil {
		return nil, err
	}
	log.Info().Msgf("stored tournament results in %s", writer.BaseDir())
	return writer, nil
}
