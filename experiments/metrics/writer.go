package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// LearningRecord is the result of one evaluation of a learning agent against
// a random agent during training.
type LearningRecord struct {
	Epoch    int
	Wins     int // Games won by the learning agent
	Finished int // Games that were not forced to a tie
	Games    int
}

type GameRecord struct {
	ID     int
	Agent1 string
	Agent2 string
	GameMetric
}

// RankingRecord is the standing of one model after a tournament.
type RankingRecord struct {
	Rank  int
	Model string
	Total float64 // Games won over all matches
	Mean  float64 // Mean games won per match
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named after the experiment and the
// current timestamp.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) Path(file string) string {
	return filepath.Join(w.baseDir, file)
}

func (w *Writer) WriteLearningRecords(records []LearningRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Epoch),
			strconv.Itoa(record.Wins),
			strconv.Itoa(record.Finished),
			strconv.Itoa(record.Games),
		})
	}
	return w.write("learning.csv", []string{"epoch", "wins", "finished", "games"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Agent1,
			record.Agent2,
			strconv.Itoa(int(record.StartingPlayer)),
			strconv.Itoa(int(record.Winner)),
			strconv.FormatBool(record.Forced),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Taps),
			strconv.Itoa(record.Swaps),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "forced", "moves", "taps", "swaps", "start_time", "end_time", "duration"}
	return w.write("games.csv", header, rows)
}

// WriteTournament writes the score matrix: the cell of row i and column j is
// the number of games model i won against model j.
func (w *Writer) WriteTournament(models []string, scores [][]int) error {
	rows := make([][]string, 0, len(models))
	for i, model := range models {
		row := []string{model}
		for _, score := range scores[i] {
			row = append(row, strconv.Itoa(score))
		}
		rows = append(rows, row)
	}
	return w.write("tournament.csv", append([]string{"model"}, models...), rows)
}

func (w *Writer) WriteRanking(records []RankingRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Rank),
			record.Model,
			strconv.FormatFloat(record.Total, 'f', -1, 64),
			strconv.FormatFloat(record.Mean, 'f', 3, 64),
		})
	}
	return w.write("ranking.csv", []string{"rank", "model", "total", "mean"}, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := w.Path(file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	if err := writeCSV(f, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", file, err)
	}
	return nil
}

func writeCSV(out io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
