package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tapnswap/agent"
	"tapnswap/experiments"
	"tapnswap/game"
	"tapnswap/store"
)

func TournamentCommand() *cobra.Command {
	var (
		games    int
		maxTurns int
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "tournament [models...]",
		Short: "Rank saved models by letting each play all others",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tournament := cfg.Tournament
			if len(args) > 0 {
				tournament.Models = args
			}
			override(cmd, "games", &tournament.GamesPerMatch, games)
			override(cmd, "max-turns", &tournament.MaxTurns, maxTurns)
			override(cmd, "workers", &tournament.Workers, workers)

			standings, err := experiments.Tournament(tournament)
			if err != nil {
				return err
			}
			printRanking(cmd, standings)
			_, err = experiments.WriteStandings(tournament.OutputDir, standings)
			return err
		},
	}
	cmd.Flags().IntVar(&games, "games", 10, "Games per match")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 100, "Round limit of each game, 0 for none")
	cmd.Flags().IntVar(&workers, "workers", 8, "Matches played at once")
	return cmd
}

func printRanking(cmd *cobra.Command, standings *experiments.Standings) {
	for _, record := range standings.Ranking {
		fmt.Fprintf(cmd.OutOrStdout(), "%d:\t%v\t(%.2f per match)\t%s\n", record.Rank, record.Total, record.Mean, record.Model)
	}
}

// randomModel is the name standing for a random agent instead of a model.
const randomModel = "random"

func CompareCommand() *cobra.Command {
	var (
		games    int
		maxTurns int
	)

	cmd := &cobra.Command{
		Use:   "compare <model|random> <model|random>",
		Short: "Play games between two saved models or random agents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			rng := agent.NewRand(cfg.Tournament.Seed)
			var agents [game.NumPlayers]agent.Agent
			var names [game.NumPlayers]string
			for i, name := range args {
				a, err := loadAgent(cfg.Train.ModelsDir, name, rng.Uint64())
				if err != nil {
					return err
				}
				agents[i] = a
				names[i] = name
			}
			score, err := experiments.Match(agents, names, games, maxTurns, cfg.Train.OutputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n%s: %d\nties: %d\n", names[0], score.Wins[0], names[1], score.Wins[1], score.Games-score.Finished)
			return nil
		},
	}
	cmd.Flags().IntVar(&games, "games", 1000, "Number of games")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 100, "Round limit of each game, 0 for none")
	return cmd
}

func loadAgent(dir, name string, seed uint64) (agent.Agent, error) {
	if name == randomModel {
		return agent.NewRandomAgent(seed), nil
	}
	table, err := store.Load(dir, name)
	if err != nil {
		return nil, err
	}
	return agent.NewRLAgent(agent.WithTable(table), agent.WithSeed(seed)), nil
}
