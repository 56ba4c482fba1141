package metrics

import (
	"time"

	"tapnswap/game"
)

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player // NoPlayer on a tie
	Forced         bool        // Stopped by the round limit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Taps           int
	Swaps          int
}

type Collector interface {
	Start(starting game.Player)
	AddMove(action game.Action)
	Complete(winner game.Player, forced bool) GameMetric
}

type collector struct {
	starting  game.Player
	startTime time.Time
	taps      int
	swaps     int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(starting game.Player) {
	*m = collector{starting: starting, startTime: time.Now()}
}

func (m *collector) AddMove(action game.Action) {
	switch action.Type {
	case game.TapAction:
		m.taps++
	case game.SwapAction:
		m.swaps++
	}
}

func (m *collector) Complete(winner game.Player, forced bool) GameMetric {
	end := time.Now()
	return GameMetric{
		StartingPlayer: m.starting,
		Winner:         winner,
		Forced:         forced,
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
		TotalMoves:     m.taps + m.swaps,
		Taps:           m.taps,
		Swaps:          m.swaps,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(starting game.Player) {}
func (m *dummyCollector) AddMove(action game.Action) {}
func (m *dummyCollector) Complete(winner game.Player, forced bool) GameMetric {
	return GameMetric{}
}
