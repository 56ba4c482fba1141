// meta/meta.go
package meta

// MaxTurns is the default round limit after which a game is called a tie.
const MaxTurns = 300

// DefaultEpsilon is the exploration rate of a fresh learning agent.
const DefaultEpsilon = 0.0

// DefaultGamma is the discount factor of a fresh learning agent.
const DefaultGamma = 1.0

// ModelsDir is where trained tables are saved and loaded from.
const ModelsDir = "Models"

// ExperimentsDir is where experiment results are written to.
const ExperimentsDir = "experiments"

// GoRoutines bounds the number of matches played at once in a tournament.
const GoRoutines = 8

// Training defaults.
const (
	Epochs    = 50000
	TestEvery = 1000
	TestGames = 1000
)
