// Package game implements the rules of tap'n swap: two players, two hands
// each, tapping the opponent's hands or swapping fingers between their own.
package game

const (
	NumPlayers     = 2
	HandsPerPlayer = 2
	MaxFingers     = 4 // A hand reaching MaxFingers+1 or more is killed
	MaxSwap        = 2 // Swaps only ever move 1 or 2 fingers
)

// Reward given to the acting player when its action ends the game
const WinReward = 10.0

// Player indexes the two players of a game.
type Player int

const (
	NoPlayer Player = iota - 1 // No winner (game running or forced tie)
	Player0
	Player1
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) Valid() bool {
	return p == Player0 || p == Player1
}
