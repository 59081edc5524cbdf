package agent

import (
	"fmt"

	"tictactoe/searcher"
)

type searchAgent struct {
	mcts  *searcher.MCTS
	debug bool
}

// NewSearchAgent returns an agent playing the move with the greatest score
// after a full time-boxed search.
func NewSearchAgent(mcts *searcher.MCTS, debug bool) Agent {
	return searchAgent{mcts: mcts, debug: debug}
}

func (a searchAgent) FindMove(g searcher.Game) (Decision, error) {
	tree, metric, err := a.mcts.Search(g)
	if err != nil {
		return Decision{Metric: metric}, fmt.Errorf("failed to search: %w", err)
	}
	move, found := tree.BestMove(a.debug)
	return Decision{Move: move, Found: found, Metric: metric}, nil
}
