package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tapnswap/agent"
	"tapnswap/game"
)

type update struct {
	agent  int
	state  game.State
	action game.Action
	reward float64
	next   game.State
}

// scriptedAgent plays a fixed list of actions and records what it is shown.
type scriptedAgent struct {
	id      int
	actions []game.Action
	explore []bool
	updates *[]update
}

func (a *scriptedAgent) ChooseAction(_ game.State, _ []game.Action, explore bool) (game.Action, error) {
	a.explore = append(a.explore, explore)
	action := a.actions[0]
	a.actions = a.actions[1:]
	return action, nil
}

func (a *scriptedAgent) Update(state game.State, action game.Action, reward float64, next game.State) error {
	*a.updates = append(*a.updates, update{a.id, state, action, reward, next})
	return nil
}

// scriptedGame is won by the first player on the fifth turn.
func scriptedGame(updates *[]update) [2]agent.Agent {
	return [2]agent.Agent{
		&scriptedAgent{id: 0, updates: updates, actions: []game.Action{game.Tap(0, 0), game.Tap(0, 0), game.Tap(0, 1)}},
		&scriptedAgent{id: 1, updates: updates, actions: []game.Action{game.Tap(0, 0), game.Tap(1, 0)}},
	}
}

func TestRun(t *testing.T) {
	t.Run("training updates", func(t *testing.T) {
		var updates []update
		agents := scriptedGame(&updates)
		e := NewEngine(agents, WithTraining(true))

		result, err := e.Run(game.Player0)

		require.NoError(t, err)
		require.Equal(t, game.Player0, result.Winner)
		require.Equal(t, 5, result.Turns)
		require.False(t, result.Forced)
		require.Equal(t, []update{
			{0, game.State{{1, 1}, {1, 1}}, game.Tap(0, 0), 0, game.State{{3, 1}, {2, 1}}},
			{1, game.State{{2, 1}, {1, 1}}, game.Tap(0, 0), 0, game.State{{0, 1}, {3, 1}}},
			{0, game.State{{3, 1}, {2, 1}}, game.Tap(0, 0), 0, game.State{{4, 1}, {0, 1}}},
			{0, game.State{{4, 1}, {0, 1}}, game.Tap(0, 1), game.WinReward, game.State{{4, 1}, {0, 0}}},
			{1, game.State{{0, 1}, {3, 1}}, game.Tap(1, 0), -game.WinReward, game.State{{0, 0}, {4, 1}}},
		}, updates)
		require.Equal(t, []bool{true, true, true}, agents[0].(*scriptedAgent).explore)
	})

	t.Run("no updates outside training", func(t *testing.T) {
		var updates []update
		agents := scriptedGame(&updates)

		result, err := NewEngine(agents).Run(game.Player0)

		require.NoError(t, err)
		require.Equal(t, game.Player0, result.Winner)
		require.Empty(t, updates)
		require.Equal(t, []bool{false, false}, agents[1].(*scriptedAgent).explore)
	})

	t.Run("round limit forces a tie", func(t *testing.T) {
		agents := [2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}

		result, err := NewEngine(agents, WithMaxTurns(1), WithMetrics()).Run(game.Player1)

		require.NoError(t, err)
		require.True(t, result.Forced)
		require.Equal(t, game.NoPlayer, result.Winner)
		require.Equal(t, 2, result.Turns, "No game can be won in 2 turns")
		require.Equal(t, game.Player1, result.Metric.StartingPlayer)
		require.Equal(t, 2, result.Metric.TotalMoves)
	})

	t.Run("illegal action", func(t *testing.T) {
		var updates []update
		agents := [2]agent.Agent{
			&scriptedAgent{id: 0, updates: &updates, actions: []game.Action{game.Swap(0, 2)}},
			&scriptedAgent{id: 1, updates: &updates},
		}

		_, err := NewEngine(agents).Run(game.Player0)

		var illegalErr *game.IllegalActionError
		require.True(t, errors.As(err, &illegalErr))
	})

	t.Run("invalid starting player", func(t *testing.T) {
		agents := [2]agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)}

		_, err := NewEngine(agents).Run(game.NoPlayer)

		require.Error(t, err)
	})
}

func TestCompare(t *testing.T) {
	t.Run("every game is counted", func(t *testing.T) {
		score, err := Compare(agent.NewRandomAgent(1), agent.NewRandomAgent(2), 20, 0)

		require.NoError(t, err)
		require.Equal(t, 20, score.Games)
		require.Equal(t, 20, score.Finished, "Without round limit every game has a winner")
		require.Equal(t, score.Finished, score.Wins[0]+score.Wins[1])
	})

	t.Run("ties are not scored", func(t *testing.T) {
		score, err := Compare(agent.NewRandomAgent(1), agent.NewRandomAgent(2), 4, 1)

		require.NoError(t, err)
		require.Equal(t, Score{Games: 4}, score)
	})

	t.Run("trained agent beats random", func(t *testing.T) {
		learner := agent.NewRLAgent(agent.WithSeed(3), agent.WithEpsilon(0.2))
		opponent := agent.NewRandomAgent(4)
		e := NewEngine([2]agent.Agent{learner, opponent}, WithTraining(true), WithMaxTurns(0))
		start := game.Player0
		for i := 0; i < 20000; i++ {
			_, err := e.Run(start)
			require.NoError(t, err)
			start = start.Opponent()
		}

		score, err := Compare(learner, agent.NewRandomAgent(5), 200, 0)

		require.NoError(t, err)
		require.Greater(t, score.Wins[0], 120, "Trained agent should win most games against random play")
	})
}
