package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tapnswap/agent"
	"tapnswap/config"
	"tapnswap/experiments/metrics"
	"tapnswap/game"
	"tapnswap/store"
)

func trainConfig(t *testing.T) config.Train {
	cfg := config.Default().Train
	cfg.ModelsDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	cfg.Name = "model"
	cfg.Epochs = 200
	cfg.Epsilon = 0.1
	cfg.TestEvery = 100
	cfg.TestGames = 20
	cfg.MaxTurns = 200
	cfg.Seed = 1
	return cfg
}

func TestTrain(t *testing.T) {
	t.Run("tests and saves the learner", func(t *testing.T) {
		cfg := trainConfig(t)

		learner, records, err := Train(cfg)

		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, 100, records[0].Epoch)
		require.Equal(t, 200, records[1].Epoch)
		for _, record := range records {
			require.Equal(t, cfg.TestGames, record.Games)
			require.LessOrEqual(t, record.Wins, record.Finished)
		}
		require.True(t, store.Exists(cfg.ModelsDir, "model"))
		require.Greater(t, learner.Table().Visits(), 0.0)
	})

	t.Run("resumes a saved model", func(t *testing.T) {
		cfg := trainConfig(t)
		first, _, err := Train(cfg)
		require.NoError(t, err)

		cfg.Load = "model"
		cfg.Name = "model_more"
		cfg.Opponent = config.OpponentSelf
		cfg.TestEvery = -1
		resumed, records, err := Train(cfg)

		require.NoError(t, err)
		require.Empty(t, records)
		require.Greater(t, resumed.Table().Visits(), first.Table().Visits())
		require.True(t, store.Exists(cfg.ModelsDir, "model_more"))
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := trainConfig(t)
		cfg.Epochs = 0

		_, _, err := Train(cfg)

		require.Error(t, err)
	})
}

func TestSaveLearning(t *testing.T) {
	records := []metrics.LearningRecord{
		{Epoch: 100, Wins: 12, Finished: 20, Games: 20},
		{Epoch: 200, Wins: 17, Finished: 20, Games: 20},
	}

	writer, err := SaveLearning(t.TempDir(), "model", records)

	require.NoError(t, err)
	require.FileExists(t, writer.Path("learning.csv"))
	require.FileExists(t, writer.Path("learning.png"))
	data, err := os.ReadFile(writer.Path("learning.csv"))
	require.NoError(t, err)
	require.Equal(t, "epoch,wins,finished,games\n100,12,20,20\n200,17,20,20\n", string(data))
}

func TestModelName(t *testing.T) {
	require.Equal(t, "greedy0_2_vsRandom", ModelName(0.2, config.OpponentRandom))
	require.Equal(t, "greedy0_05_vsSelf", ModelName(0.05, config.OpponentSelf))
	require.Equal(t, "greedy1_0_vsSelf", ModelName(1, config.OpponentSelf))
}

func tournamentConfig(t *testing.T, models ...string) config.Tournament {
	cfg := config.Default().Tournament
	cfg.ModelsDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	cfg.GamesPerMatch = 4
	cfg.MaxTurns = 50
	cfg.Workers = 2
	for i, model := range models {
		a := agent.NewRLAgent(agent.WithSeed(uint64(i + 1)))
		require.NoError(t, a.Update(game.NewState(), game.Tap(i%2, 0), float64(i), game.NewState()))
		require.NoError(t, store.Save(cfg.ModelsDir, model, a.Table()))
	}
	return cfg
}

func TestTournament(t *testing.T) {
	t.Run("every model meets every other", func(t *testing.T) {
		cfg := tournamentConfig(t, "c", "a", "b")

		standings, err := Tournament(cfg)

		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, standings.Models)
		for i := range standings.Models {
			require.Equal(t, 0, standings.Scores[i][i])
			for j := range standings.Models {
				require.LessOrEqual(t, standings.Scores[i][j]+standings.Scores[j][i], cfg.GamesPerMatch)
			}
		}
		require.Len(t, standings.Ranking, 3)
		for i, record := range standings.Ranking {
			require.Equal(t, i+1, record.Rank)
			if i > 0 {
				require.GreaterOrEqual(t, standings.Ranking[i-1].Total, record.Total)
			}
		}

		writer, err := WriteStandings(cfg.OutputDir, standings)
		require.NoError(t, err)
		require.FileExists(t, writer.Path("tournament.csv"))
		require.FileExists(t, writer.Path("ranking.csv"))
	})

	t.Run("selected models only", func(t *testing.T) {
		cfg := tournamentConfig(t, "a", "b", "c")
		cfg.Models = []string{"c", "a"}

		standings, err := Tournament(cfg)

		require.NoError(t, err)
		require.Equal(t, []string{"c", "a"}, standings.Models)
	})

	t.Run("not enough models", func(t *testing.T) {
		cfg := tournamentConfig(t, "a")

		_, err := Tournament(cfg)

		require.Error(t, err)
	})
}

func TestRank(t *testing.T) {
	ranking := rank([]string{"a", "b", "c"}, [][]int{
		{0, 1, 2},
		{9, 0, 5},
		{8, 5, 0},
	})

	require.Equal(t, []metrics.RankingRecord{
		{Rank: 1, Model: "b", Total: 14, Mean: 7},
		{Rank: 2, Model: "c", Total: 13, Mean: 6.5},
		{Rank: 3, Model: "a", Total: 3, Mean: 1.5},
	}, ranking)
}

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	agents := [2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}

	score, err := Match(agents, [2]string{"random1", "random2"}, 10, 0, dir)

	require.NoError(t, err)
	require.Equal(t, 10, score.Finished)
	paths, err := filepath.Glob(filepath.Join(dir, "match", "*", "games.csv"))
	require.NoError(t, err)
	require.Len(t, paths, 1)
}

func TestGridSearch(t *testing.T) {
	train := trainConfig(t)
	tournament := config.Default().Tournament
	tournament.OutputDir = t.TempDir()
	tournament.GamesPerMatch = 2
	tournament.MaxTurns = 50
	search := config.GridSearch{
		Epsilons:  []float64{0.3},
		Opponents: []string{config.OpponentRandom, config.OpponentSelf},
		Epochs:    50,
		TestEvery: -1,
	}

	standings, err := GridSearch(search, train, tournament)

	require.NoError(t, err)
	require.Equal(t, []string{"greedy0_3_vsRandom", "greedy0_3_vsSelf"}, standings.Models)

	search.Retrain = true
	_, err = GridSearch(search, train, tournament)

	require.NoError(t, err)
	require.True(t, store.Exists(train.ModelsDir, "greedy0_3_vsRandom"))
	require.False(t, store.Exists(train.ModelsDir, "greedy0_3_vsRandom_temp"))
}
