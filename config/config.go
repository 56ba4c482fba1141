// Package config holds the settings of training runs, grid searches and
// tournaments. Settings start from the defaults in meta and may be read from
// a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tapnswap/meta"
)

const (
	OpponentRandom = "random"
	OpponentSelf   = "self"
)

type Train struct {
	Name      string  `yaml:"name"` // Model the learner is saved as
	Load      string  `yaml:"load"` // Model to resume from, if any
	ModelsDir string  `yaml:"models_dir"`
	Epochs    int     `yaml:"epochs"`
	Epsilon   float64 `yaml:"epsilon"`
	Gamma     float64 `yaml:"gamma"`
	Opponent  string  `yaml:"opponent"`   // random or self
	TestEvery int     `yaml:"test_every"` // 0 tests after the last epoch only, -1 never
	TestGames int     `yaml:"test_games"`
	MaxTurns  int     `yaml:"max_turns"` // 0 plays training games to the end
	Seed      uint64  `yaml:"seed"`      // 0 draws a random seed
	OutputDir string  `yaml:"output_dir"`
}

type Tournament struct {
	ModelsDir     string   `yaml:"models_dir"`
	Models        []string `yaml:"models"` // Empty plays every saved model
	GamesPerMatch int      `yaml:"games_per_match"`
	MaxTurns      int      `yaml:"max_turns"`
	Workers       int      `yaml:"workers"`
	Seed          uint64   `yaml:"seed"` // 0 draws a random seed
	OutputDir     string   `yaml:"output_dir"`
}

type GridSearch struct {
	Epsilons  []float64 `yaml:"epsilons"`
	Opponents []string  `yaml:"opponents"`
	Epochs    int       `yaml:"epochs"`
	TestEvery int       `yaml:"test_every"`
	TestGames int       `yaml:"test_games"`
	Retrain   bool      `yaml:"retrain"` // Continue saved models, keeping the better version
}

type Config struct {
	Train      Train      `yaml:"train"`
	GridSearch GridSearch `yaml:"grid_search"`
	Tournament Tournament `yaml:"tournament"`
}

func Default() Config {
	return Config{
		Train: Train{
			Name:      "greedy",
			ModelsDir: meta.ModelsDir,
			Epochs:    meta.Epochs,
			Epsilon:   meta.DefaultEpsilon,
			Gamma:     meta.DefaultGamma,
			Opponent:  OpponentRandom,
			TestEvery: meta.TestEvery,
			TestGames: meta.TestGames,
			OutputDir: meta.ExperimentsDir,
		},
		GridSearch: GridSearch{
			Epsilons:  []float64{0.1, 0.2, 0.3, 0.4, 0.5},
			Opponents: []string{OpponentRandom, OpponentSelf},
			Epochs:    meta.Epochs,
			TestEvery: meta.TestEvery,
			TestGames: meta.TestGames,
		},
		Tournament: Tournament{
			ModelsDir:     meta.ModelsDir,
			GamesPerMatch: 10,
			MaxTurns:      100,
			Workers:       meta.GoRoutines,
			OutputDir:     meta.ExperimentsDir,
		},
	}
}

// Load reads a YAML file over the defaults. Missing keys keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (t Train) Validate() error {
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("model name is empty"))
	}
	if t.Epochs <= 0 {
		errs = append(errs, fmt.Errorf("epochs must be positive, got %d", t.Epochs))
	}
	if t.Epsilon < 0 || t.Epsilon > 1 {
		errs = append(errs, fmt.Errorf("epsilon must be in [0, 1], got %v", t.Epsilon))
	}
	if t.Gamma < 0 || t.Gamma > 1 {
		errs = append(errs, fmt.Errorf("gamma must be in [0, 1], got %v", t.Gamma))
	}
	if t.Opponent != OpponentRandom && t.Opponent != OpponentSelf {
		errs = append(errs, fmt.Errorf("opponent must be %q or %q, got %q", OpponentRandom, OpponentSelf, t.Opponent))
	}
	if t.TestEvery < -1 {
		errs = append(errs, fmt.Errorf("test_every must be -1 or more, got %d", t.TestEvery))
	}
	if t.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max_turns must not be negative, got %d", t.MaxTurns))
	}
	return errors.Join(errs...)
}

func (t Tournament) Validate() error {
	var errs []error
	if t.GamesPerMatch <= 0 {
		errs = append(errs, fmt.Errorf("games_per_match must be positive, got %d", t.GamesPerMatch))
	}
	if t.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("max_turns must not be negative, got %d", t.MaxTurns))
	}
	if t.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", t.Workers))
	}
	return errors.Join(errs...)
}
