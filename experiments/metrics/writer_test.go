package metrics

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestWriteCSV(t *testing.T) {
	t.Run("failed flush is reported", func(t *testing.T) {
		err := writeCSV(failingWriter{}, []string{"epoch", "wins"}, [][]string{{"1", "2"}})

		require.ErrorIs(t, err, errDiskFull)
	})

	t.Run("records are written after the header", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "train_test")
		require.NoError(t, err)

		err = w.WriteLearningRecords([]LearningRecord{{Epoch: 10, Wins: 6, Finished: 9, Games: 10}})

		require.NoError(t, err)
		data, err := os.ReadFile(w.Path("learning.csv"))
		require.NoError(t, err)
		require.Equal(t, "epoch,wins,finished,games\n10,6,9,10\n", string(data))
	})

	t.Run("unwritable file", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "train_test")
		require.NoError(t, err)
		require.NoError(t, os.Mkdir(w.Path("learning.csv"), 0755))

		err = w.WriteLearningRecords(nil)

		require.Error(t, err)
	})
}
