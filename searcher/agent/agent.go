package agent

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

// Decision is an agent's answer for one turn. Found is false when the agent
// had no move to offer, in which case the turn is skipped.
type Decision struct {
	Move   game.Coord
	Found  bool
	Metric metrics.SearchMetric
}

type Agent interface {
	// FindMove chooses a move for the player about to move in g along with
	// search metrics (if collected)
	FindMove(g searcher.Game) (Decision, error)
}
