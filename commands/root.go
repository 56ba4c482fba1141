package commands

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tapnswap/config"
)

var (
	configFile string
	verbose    bool
	modelsDir  string
	outputDir  string
	seed       uint64
)

// GetRootCommand returns the command line parser with every experiment as a
// subcommand.
func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "tapnswap",
		Short:         "Train and compare tabular agents playing tap'n swap",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}
	defaults := config.Default()
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML file with run settings")
	rootCommand.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every move")
	rootCommand.PersistentFlags().StringVar(&modelsDir, "models", defaults.Train.ModelsDir, "Directory of saved models")
	rootCommand.PersistentFlags().StringVarP(&outputDir, "output", "o", defaults.Train.OutputDir, "Directory of experiment results")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed of the random sources, 0 for a random seed")
	// adding the subcommands here
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(GridSearchCommand())
	rootCommand.AddCommand(TournamentCommand())
	rootCommand.AddCommand(CompareCommand())
	return rootCommand
}

func setupLogging(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// loadConfig reads the config file if one was given and applies the flags
// set on the command line over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		log.Info().Msgf("loaded config from %s", configFile)
	}
	flags := cmd.Flags()
	if flags.Changed("models") {
		cfg.Train.ModelsDir = modelsDir
		cfg.Tournament.ModelsDir = modelsDir
	}
	if flags.Changed("output") {
		cfg.Train.OutputDir = outputDir
		cfg.Tournament.OutputDir = outputDir
	}
	if flags.Changed("seed") {
		cfg.Train.Seed = seed
		cfg.Tournament.Seed = seed
	}
	return cfg, nil
}

// override sets dst to value if the flag was given on the command line.
func override[T any](cmd *cobra.Command, flag string, dst *T, value T) {
	if cmd.Flags().Changed(flag) {
		*dst = value
	}
}
