package searcher

import (
	"math"

	"tictactoe/game"
)

// offsets are added to the score of the first node of a backup only.
type offsets struct {
	win  float64
	lose float64
	draw float64
}

// A proven win or loss dominates every later UCT comparison of its node.
var terminalOffsets = offsets{win: math.Inf(1), lose: math.Inf(-1)}

// backup walks from leaf to the root, crediting outcome as seen by the player
// about to move at leaf.
func backup(leaf *Node, outcome game.Outcome, off offsets) {
	team := leaf.mover.Opponent().Index

	node := leaf
	for node != nil {
		parent := node.update(outcome, team, off)
		off = offsets{}
		node = parent
	}
}
