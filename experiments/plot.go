package experiments

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"tapnswap/experiments/metrics"
)

// PlotLearningCurve draws the share of test games won and finished against
// the training epoch.
func PlotLearningCurve(name string, records []metrics.LearningRecord, path string) error {
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Share of test games"
	p.Y.Min = 0
	p.Y.Max = 1

	won := make(plotter.XYs, len(records))
	finished := make(plotter.XYs, len(records))
	for i, record := range records {
		games := float64(max(record.Games, 1))
		won[i] = plotter.XY{X: float64(record.Epoch), Y: float64(record.Wins) / games}
		finished[i] = plotter.XY{X: float64(record.Epoch), Y: float64(record.Finished) / games}
	}

	for i, series := range []struct {
		name string
		xys  plotter.XYs
	}{{"won", won}, {"finished", finished}} {
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return fmt.Errorf("failed to plot %s games: %w", series.name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(series.name, line)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
