package searcher

import (
	"fmt"

	"tictactoe/game"
)

// Node is the board reached right after mover played move. A node owns its
// children; parent is a back pointer and is nil only for the root.
type Node struct {
	mover    *game.Player
	state    *game.Board
	parent   *Node
	move     *game.Coord
	winScore float64
	simCount int
	children []*Node
	active   bool // cursor of the running search, for tree dumps only
}

// newNode takes ownership of state and, when move is set, plays it in place.
func newNode(mover *game.Player, state *game.Board, parent *Node, move *game.Coord) (*Node, error) {
	if move != nil {
		if err := state.Place(*move, mover.Symbol); err != nil {
			return nil, fmt.Errorf("failed to create node: %w", err)
		}
	}

	n := &Node{
		mover:    mover,
		state:    state,
		parent:   parent,
		move:     move,
		children: make([]*Node, 0),
	}
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n, nil
}

// MakeLeaf adds the child reached when the opponent of n's mover plays move.
func (n *Node) MakeLeaf(move game.Coord) (*Node, error) {
	return newNode(n.mover.Opponent(), n.state.Clone(), n, &move)
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) IsRoot() bool {
	return n.parent == nil
}

func (n *Node) Mover() *game.Player {
	return n.mover
}

// State returns the node's board. It must not be mutated.
func (n *Node) State() *game.Board {
	return n.state
}

// Move returns the move that produced this node, false for the root.
func (n *Node) Move() (game.Coord, bool) {
	if n.move == nil {
		return game.Coord{}, false
	}
	return *n.move, true
}

func (n *Node) WinScore() float64 {
	return n.winScore
}

func (n *Node) SimCount() int {
	return n.simCount
}

// update records one simulation whose outcome was seen by the player of team
// and returns the parent to continue the backup with.
func (n *Node) update(outcome game.Outcome, team int, off offsets) *Node {
	n.simCount++

	switch outcome {
	case game.Win:
		if n.mover.Index == team {
			n.winScore += WinScore + off.win
		} else {
			n.winScore += LoseScore + off.lose
		}
	case game.Lose:
		if n.mover.Index == team {
			n.winScore += LoseScore + off.lose
		} else {
			n.winScore += WinScore + off.win
		}
	case game.Draw:
		n.winScore += DrawScore + off.draw
	}

	return n.parent
}

// expand adds one child per legal move of the node's board.
func (n *Node) expand(o Oracle) error {
	moves := o.LegalMoves(n.state)
	if len(moves) == 0 {
		return fmt.Errorf("failed to expand %s: %w", n.state, ErrNoLegalMoves)
	}
	for _, move := range moves {
		if _, err := n.MakeLeaf(move); err != nil {
			return fmt.Errorf("failed to expand %s: %w", n.state, err)
		}
	}
	return nil
}
