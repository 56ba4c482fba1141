package commands

import (
	"github.com/spf13/cobra"

	"tapnswap/experiments"
)

func TrainCommand() *cobra.Command {
	var (
		name      string
		load      string
		epochs    int
		epsilon   float64
		gamma     float64
		opponent  string
		testEvery int
		testGames int
		maxTurns  int
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a learning agent and save its table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			train := cfg.Train
			override(cmd, "name", &train.Name, name)
			override(cmd, "load", &train.Load, load)
			override(cmd, "epochs", &train.Epochs, epochs)
			override(cmd, "epsilon", &train.Epsilon, epsilon)
			override(cmd, "gamma", &train.Gamma, gamma)
			override(cmd, "opponent", &train.Opponent, opponent)
			override(cmd, "test-every", &train.TestEvery, testEvery)
			override(cmd, "test-games", &train.TestGames, testGames)
			override(cmd, "max-turns", &train.MaxTurns, maxTurns)

			_, records, err := experiments.Train(train)
			if err != nil {
				return err
			}
			_, err = experiments.SaveLearning(train.OutputDir, train.Name, records)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "greedy", "Name the model is saved as")
	cmd.Flags().StringVar(&load, "load", "", "Saved model to continue training")
	cmd.Flags().IntVarP(&epochs, "epochs", "e", 50000, "Number of training games")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "Exploration rate")
	cmd.Flags().Float64Var(&gamma, "gamma", 1, "Discount factor")
	cmd.Flags().StringVar(&opponent, "opponent", "random", "Training opponent: random or self")
	cmd.Flags().IntVar(&testEvery, "test-every", 1000, "Epochs between tests against random play, 0 for the last epoch only, -1 for none")
	cmd.Flags().IntVar(&testGames, "test-games", 1000, "Games per test")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Round limit of training games, 0 for none")
	return cmd
}

func GridSearchCommand() *cobra.Command {
	var (
		epsilons  []float64
		opponents []string
		epochs    int
		retrain   bool
	)

	cmd := &cobra.Command{
		Use:   "gridsearch",
		Short: "Train one model per exploration rate and opponent, then rank them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			search := cfg.GridSearch
			override(cmd, "epsilons", &search.Epsilons, epsilons)
			override(cmd, "opponents", &search.Opponents, opponents)
			override(cmd, "epochs", &search.Epochs, epochs)
			override(cmd, "retrain", &search.Retrain, retrain)

			standings, err := experiments.GridSearch(search, cfg.Train, cfg.Tournament)
			if err != nil {
				return err
			}
			printRanking(cmd, standings)
			_, err = experiments.WriteStandings(cfg.Tournament.OutputDir, standings)
			return err
		},
	}
	cmd.Flags().Float64SliceVar(&epsilons, "epsilons", nil, "Exploration rates to train")
	cmd.Flags().StringSliceVar(&opponents, "opponents", nil, "Training opponents: random, self")
	cmd.Flags().IntVarP(&epochs, "epochs", "e", 50000, "Number of training games per model")
	cmd.Flags().BoolVar(&retrain, "retrain", false, "Continue training saved models")
	return cmd
}
