package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"tictactoe/game"
)

// rollout plays uniformly random moves on a copy of the leaf's board until
// the game ends. The outcome is seen by the player about to move at leaf.
func rollout(o Oracle, leaf *Node, rng *rand.Rand) (game.Outcome, error) {
	reference := leaf.mover.Opponent()
	player := reference
	board := leaf.state.Clone()

	for {
		moves := o.LegalMoves(board)
		if len(moves) == 0 {
			return game.None, fmt.Errorf("failed to roll out %s: %w", board, ErrNoLegalMoves)
		}
		move := moves[rng.Intn(len(moves))]
		board.Set(move, player.Symbol)

		if outcome := o.Check(reference, board); outcome != game.None {
			return outcome, nil
		}
		player = player.Opponent()
	}
}
