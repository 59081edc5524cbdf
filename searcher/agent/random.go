package agent

import (
	"golang.org/x/exp/rand"

	"tictactoe/searcher"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent picking uniformly among the legal
// moves.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(g searcher.Game) (Decision, error) {
	moves := g.LegalMoves(g.Board())
	if len(moves) == 0 {
		return Decision{}, nil
	}
	return Decision{Move: moves[a.rng.Intn(len(moves))], Found: true}, nil
}
