package game

import "fmt"

// Game owns the board of one game in progress and applies the players'
// actions to it.
type Game struct {
	state State
}

// NewGame returns a game in the starting position.
func NewGame() *Game {
	return &Game{state: NewState()}
}

// Reset puts one finger back on every hand.
func (g *Game) Reset() {
	g.state = NewState()
}

// State returns a copy of the current board.
func (g *Game) State() State {
	return g.state
}

// SetState replaces the current board, e.g. to resume or set up a position.
func (g *Game) SetState(s State) error {
	if !s.Valid() {
		return fmt.Errorf("invalid state %v: hands must hold between 0 and %d fingers", s, MaxFingers)
	}
	if s[Player0].Dead() && s[Player1].Dead() {
		return fmt.Errorf("invalid state %v: at least one player must have fingers left", s)
	}
	g.state = s
	return nil
}

// LegalActions returns the legal actions of player on the current board.
func (g *Game) LegalActions(player Player) []Action {
	return LegalActions(g.state, player)
}

// ApplyAction plays action for player and returns the reward of the acting
// player: WinReward if the action won the game, -WinReward if it handed the
// win to the opponent and 0 otherwise.
func (g *Game) ApplyAction(player Player, action Action) (float64, error) {
	if over, _ := g.IsTerminal(); over {
		return 0, illegal(g.state, player, action, "game is over")
	}
	if err := CheckAction(g.state, player, action); err != nil {
		return 0, err
	}

	g.state = action.apply(g.state, player)

	over, winner := g.IsTerminal()
	if !over {
		return 0, nil
	}
	if winner == player {
		return WinReward, nil
	}
	return -WinReward, nil
}

// IsTerminal reports whether a player has lost both hands, and if so the
// winner. An action only ever changes one pair, so both pairs can never be
// dead at once after legal play.
func (g *Game) IsTerminal() (bool, Player) {
	dead0, dead1 := g.state[Player0].Dead(), g.state[Player1].Dead()
	switch {
	case dead0 && dead1:
		panic(fmt.Sprintf("both players are dead on %v", g.state))
	case dead0:
		return true, Player1
	case dead1:
		return true, Player0
	default:
		return false, NoPlayer
	}
}
