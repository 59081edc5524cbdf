package game

import "fmt"

// Player is a participant with a stable index and a symbol. Players are
// created in pairs so each one can reach its opponent.
type Player struct {
	Index    int
	Symbol   Symbol
	opponent *Player
}

// NewPlayers links two players as each other's opponent, indexed 1 and 2.
func NewPlayers(first, second Symbol) (*Player, *Player) {
	p1 := &Player{Index: 1, Symbol: first}
	p2 := &Player{Index: 2, Symbol: second}
	p1.opponent = p2
	p2.opponent = p1
	return p1, p2
}

func (p *Player) Opponent() *Player {
	return p.opponent
}

// SetSymbols assigns a symbol to p and the other symbol to its opponent.
func (p *Player) SetSymbols(own, other Symbol) {
	p.Symbol = own
	p.opponent.Symbol = other
}

func (p *Player) String() string {
	return fmt.Sprintf("player %d (%s)", p.Index, p.Symbol)
}
