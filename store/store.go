// Package store saves and loads value tables as plain CSV matrices, one row
// per encoded state and one column per encoded action. Counts live next to
// the values under data/count_<name>.csv.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"tapnswap/agent"
)

// FormatError is returned when a saved matrix does not have the expected
// shape or holds a cell that is not a number.
type FormatError struct {
	Path   string
	Row    int
	Column int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed table %s at row %d column %d: %s", e.Path, e.Row, e.Column, e.Reason)
}

// ValuesPath returns the path of the value matrix of model name.
func ValuesPath(dir, name string) string {
	return filepath.Join(dir, name+".csv")
}

// CountsPath returns the path of the visit counts of model name.
func CountsPath(dir, name string) string {
	return filepath.Join(dir, "data", "count_"+name+".csv")
}

// Exists reports whether both matrices of model name are present in dir.
func Exists(dir, name string) bool {
	for _, path := range []string{ValuesPath(dir, name), CountsPath(dir, name)} {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// Save writes the values and the counts of table.
func Save(dir, name string, table *agent.Table) error {
	if err := os.MkdirAll(filepath.Join(dir, "data"), 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	if err := writeMatrix(ValuesPath(dir, name), table.Values); err != nil {
		return fmt.Errorf("failed to save values of %s: %w", name, err)
	}
	if err := writeMatrix(CountsPath(dir, name), table.Counts); err != nil {
		return fmt.Errorf("failed to save counts of %s: %w", name, err)
	}
	return nil
}

// Load reads a table written by Save.
func Load(dir, name string) (*agent.Table, error) {
	values, err := readMatrix(ValuesPath(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to load values of %s: %w", name, err)
	}
	counts, err := readMatrix(CountsPath(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to load counts of %s: %w", name, err)
	}
	return &agent.Table{Values: values, Counts: counts}, nil
}

// Delete removes both matrices of model name.
func Delete(dir, name string) error {
	return errors.Join(os.Remove(ValuesPath(dir, name)), os.Remove(CountsPath(dir, name)))
}

// Rename moves model from to name to, replacing any model saved as to.
func Rename(dir, from, to string) error {
	if err := os.Rename(ValuesPath(dir, from), ValuesPath(dir, to)); err != nil {
		return err
	}
	return os.Rename(CountsPath(dir, from), CountsPath(dir, to))
}

func writeMatrix(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	rows, cols := m.Dims()
	row := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			row[j] = strconv.FormatFloat(m.At(i, j), 'e', 18, 64)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return f.Close()
}

func readMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	m := mat.NewDense(agent.NumStates, agent.NumActions, nil)
	i := 0
	for ; ; i++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Path: path, Row: i, Reason: err.Error()}
		}
		if i >= agent.NumStates {
			return nil, &FormatError{Path: path, Row: i, Reason: fmt.Sprintf("expected %d rows", agent.NumStates)}
		}
		if len(record) != agent.NumActions {
			return nil, &FormatError{Path: path, Row: i, Reason: fmt.Sprintf("expected %d columns, got %d", agent.NumActions, len(record))}
		}
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &FormatError{Path: path, Row: i, Column: j, Reason: err.Error()}
			}
			m.Set(i, j, v)
		}
	}
	if i != agent.NumStates {
		return nil, &FormatError{Path: path, Row: i, Reason: fmt.Sprintf("expected %d rows, got %d", agent.NumStates, i)}
	}
	return m, nil
}
