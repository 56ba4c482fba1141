package game

import "fmt"

// Pair holds the finger counts of one player's left and right hands.
type Pair [HandsPerPlayer]int

// Sum returns the total number of fingers of the pair.
func (p Pair) Sum() int {
	return p[0] + p[1]
}

// Dead reports whether both hands are killed.
func (p Pair) Dead() bool {
	return p.Sum() == 0
}

// Reversed returns the pair with its hands exchanged.
func (p Pair) Reversed() Pair {
	return Pair{p[1], p[0]}
}

// sorted returns the pair with the smaller hand first
func (p Pair) sorted() Pair {
	if p[0] > p[1] {
		return p.Reversed()
	}
	return p
}

func (p Pair) String() string {
	return fmt.Sprintf("%d-%d", p[0], p[1])
}

// State is the whole game board: one Pair per player, indexed by Player.
// It is a value type, copies are independent.
type State [NumPlayers]Pair

// NewState returns the starting position where every hand holds one finger.
func NewState() State {
	return State{{1, 1}, {1, 1}}
}

// Valid checks that every hand holds between 0 and MaxFingers fingers.
func (s State) Valid() bool {
	for _, pair := range s {
		for _, hand := range pair {
			if hand < 0 || hand > MaxFingers {
				return false
			}
		}
	}
	return true
}

// From returns the state seen by player: its own pair first, then the
// opponent's. Agents learn on this representation.
func (s State) From(player Player) State {
	return State{s[player], s[player.Opponent()]}
}

func (s State) String() string {
	return fmt.Sprintf("[%s | %s]", s[Player0], s[Player1])
}

// clamp applies kill-on-overflow to a hand count
func clamp(fingers int) int {
	if fingers > MaxFingers {
		return 0
	}
	return fingers
}
