package agent

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Table holds the learned action values and the visit counts of every
// encoded state-action pair, both NumStates x NumActions.
type Table struct {
	Values *mat.Dense
	Counts *mat.Dense
}

// NewTable returns a zero-initialised table.
func NewTable() *Table {
	return &Table{
		Values: mat.NewDense(NumStates, NumActions, nil),
		Counts: mat.NewDense(NumStates, NumActions, nil),
	}
}

func (t *Table) Clone() *Table {
	return &Table{
		Values: mat.DenseCopyOf(t.Values),
		Counts: mat.DenseCopyOf(t.Counts),
	}
}

// MaxValue returns the best value over all actions of the state, whether
// legal there or not.
func (t *Table) MaxValue(state int) float64 {
	return floats.Max(t.Values.RawRowView(state))
}

// Visits returns the number of updates of all cells.
func (t *Table) Visits() float64 {
	return mat.Sum(t.Counts)
}
