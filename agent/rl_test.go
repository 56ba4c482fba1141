package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tapnswap/game"
)

func setValue(t *testing.T, a *RLAgent, s game.State, action game.Action, value float64) {
	code, err := a.codec.EncodeState(s)
	require.NoError(t, err)
	act, err := a.codec.EncodeAction(action)
	require.NoError(t, err)
	a.table.Values.Set(code, act, value)
}

func TestChooseAction(t *testing.T) {
	s := game.NewState()
	actions := game.LegalActions(s, game.Player0)

	t.Run("greedy picks the best legal action", func(t *testing.T) {
		a := NewRLAgent(WithSeed(1))
		setValue(t, a, s, game.Tap(1, 0), 2)
		setValue(t, a, s, game.Swap(1, 1), 5) // Not offered

		got, err := a.ChooseAction(s, actions, false)

		require.NoError(t, err)
		require.Equal(t, game.Tap(1, 0), got)
	})

	t.Run("ties go to the first action", func(t *testing.T) {
		a := NewRLAgent(WithSeed(1))

		got, err := a.ChooseAction(s, actions, false)

		require.NoError(t, err)
		require.Equal(t, actions[0], got)
	})

	t.Run("no exploration outside training", func(t *testing.T) {
		a := NewRLAgent(WithSeed(7), WithEpsilon(1))
		setValue(t, a, s, game.Swap(0, 1), 1)

		for i := 0; i < 100; i++ {
			got, err := a.ChooseAction(s, actions, false)
			require.NoError(t, err)
			require.Equal(t, game.Swap(0, 1), got)
		}
	})

	t.Run("exploration stays among legal actions", func(t *testing.T) {
		a := NewRLAgent(WithSeed(7), WithEpsilon(1))
		picked := map[game.Action]int{}

		for i := 0; i < 1000; i++ {
			got, err := a.ChooseAction(s, actions, true)
			require.NoError(t, err)
			require.Contains(t, actions, got)
			picked[got]++
		}
		require.Len(t, picked, len(actions), "Every legal action should be explored")
	})

	t.Run("no actions", func(t *testing.T) {
		_, err := NewRLAgent().ChooseAction(s, nil, true)

		require.ErrorIs(t, err, ErrNoActions)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := NewRLAgent().ChooseAction(s, []game.Action{game.Swap(1, 4)}, false)

		var actionErr *UnknownActionError
		require.True(t, errors.As(err, &actionErr))
	})
}

func TestUpdate(t *testing.T) {
	s := game.State{{1, 3}, {4, 0}}
	next := game.State{{0, 0}, {1, 3}}

	t.Run("sample average of rewards", func(t *testing.T) {
		a := NewRLAgent(WithSeed(1))
		rewards := []float64{10, 0, 10, -10, 10}

		sum := 0.0
		for i, r := range rewards {
			require.NoError(t, a.Update(s, game.Tap(0, 0), r, next))
			sum += r
			v, err := a.Value(s, game.Tap(0, 0))
			require.NoError(t, err)
			require.InDelta(t, sum/float64(i+1), v, 1e-9)
		}
		require.Equal(t, float64(len(rewards)), a.Table().Visits())
	})

	t.Run("only the updated cell changes", func(t *testing.T) {
		a := NewRLAgent(WithSeed(1))
		before := a.Table().Clone()

		require.NoError(t, a.Update(s, game.Tap(0, 0), 10, next))

		code, _ := a.codec.EncodeState(s)
		for i := 0; i < NumStates; i++ {
			for j := 0; j < NumActions; j++ {
				if i == code && j == 0 {
					require.Equal(t, 10.0, a.table.Values.At(i, j))
					require.Equal(t, 1.0, a.table.Counts.At(i, j))
					continue
				}
				require.Equal(t, before.Values.At(i, j), a.table.Values.At(i, j))
				require.Equal(t, before.Counts.At(i, j), a.table.Counts.At(i, j))
			}
		}
	})

	t.Run("discounted bootstrap", func(t *testing.T) {
		a := NewRLAgent(WithSeed(1), WithGamma(0.5))
		setValue(t, a, next, game.Swap(1, 2), 4)

		require.NoError(t, a.Update(s, game.Tap(0, 0), 1, next))

		v, err := a.Value(s, game.Tap(0, 0))
		require.NoError(t, err)
		require.InDelta(t, 3.0, v, 1e-9)
	})

	t.Run("unknown next state", func(t *testing.T) {
		err := NewRLAgent().Update(s, game.Tap(0, 0), 0, game.State{{9, 9}, {0, 0}})

		var stateErr *UnknownStateError
		require.True(t, errors.As(err, &stateErr))
	})
}

func TestClone(t *testing.T) {
	a := NewRLAgent(WithSeed(3), WithEpsilon(0.2), WithGamma(0.9))
	s := game.NewState()
	require.NoError(t, a.Update(s, game.Tap(0, 0), 1, s))

	clone := a.Clone()
	require.NoError(t, clone.Update(s, game.Tap(0, 0), 1, s))

	original, _ := a.Value(s, game.Tap(0, 0))
	require.Equal(t, 1.0, original, "Updating the clone should not touch the original")
	require.Equal(t, 0.2, clone.Epsilon())
	require.Equal(t, 0.9, clone.Gamma())
}

func TestRandomAgent(t *testing.T) {
	a := NewRandomAgent(11)
	s := game.State{{3, 1}, {2, 2}}
	actions := game.LegalActions(s, game.Player0)

	for i := 0; i < 100; i++ {
		got, err := a.ChooseAction(s, actions, false)
		require.NoError(t, err)
		require.Contains(t, actions, got)
	}
	_, err := a.ChooseAction(s, nil, false)
	require.ErrorIs(t, err, ErrNoActions)
	require.NoError(t, a.Update(s, actions[0], 10, s))
}
