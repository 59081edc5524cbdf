package searcher

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"tictactoe/game"
)

// Tree is the search tree of a single search. Its root holds the searched
// board and, as mover, the opponent of the player about to move.
type Tree struct {
	root *Node
}

func newTree(current *game.Player, board *game.Board) *Tree {
	root, err := newNode(current.Opponent(), board.Clone(), nil, nil)
	if err != nil {
		panic(err) // no move is applied to the root
	}
	return &Tree{root: root}
}

func (t *Tree) Root() *Node {
	return t.root
}

// BestMove returns the move of the root child with the greatest raw win
// score, the first one on ties. It reports false when the root was never
// expanded.
func (t *Tree) BestMove(debug bool) (game.Coord, bool) {
	mostWins := math.Inf(-1)
	var best *Node

	for _, child := range t.root.children {
		if debug {
			log.Debug().Msgf("score = %v for move %v", child.winScore, *child.move)
		}
		if mostWins < child.winScore {
			mostWins = child.winScore
			best = child
		}
	}

	if best == nil {
		if debug {
			log.Debug().Msg("no move found")
		}
		return game.Coord{}, false
	}
	if debug {
		log.Debug().Msgf("best move: %v", *best.move)
	}
	return *best.move, true
}

// BestChild returns the child of n with the greatest UCT value, the first one
// on ties. When no child scores above -Inf the first child is returned; nil
// when n has no children.
func (t *Tree) BestChild(n *Node, c float64, debug bool) *Node {
	maxScore := math.Inf(-1)
	var best *Node

	for _, child := range n.children {
		score := uct(child, c)
		if debug {
			log.Debug().Msgf("UCT = %v for move %v", score, *child.move)
		}
		if maxScore < score {
			maxScore = score
			best = child
		}
	}

	if best == nil && len(n.children) > 0 {
		return n.children[0]
	}
	return best
}

// NodeRecord is a flat view of one node, as produced by Walk.
type NodeRecord struct {
	Depth    int
	Move     *game.Coord
	Mover    int
	WinScore float64
	SimCount int
	Active   bool
	Board    []string // only set for detailed walks
}

// Walk lists the nodes in depth-first pre-order, children in creation order.
func (t *Tree) Walk(detailed bool) []NodeRecord {
	type frame struct {
		node  *Node
		depth int
	}

	var records []NodeRecord
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := top.node
		record := NodeRecord{
			Depth:    top.depth,
			Move:     n.move,
			Mover:    n.mover.Index,
			WinScore: n.winScore,
			SimCount: n.simCount,
			Active:   n.active,
		}
		if detailed {
			record.Board = n.state.Rows()
		}
		records = append(records, record)

		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.children[i], depth: top.depth + 1})
		}
	}
	return records
}

// Size counts the nodes of the tree.
func (t *Tree) Size() int {
	return len(t.Walk(false))
}

// Format renders Walk records as an indented listing; the node under the
// search cursor is marked with "=>".
func (t *Tree) Format(detailed bool) string {
	var sb strings.Builder
	sb.WriteString("Monte Carlo Tree:\n")
	for _, r := range t.Walk(detailed) {
		indent := strings.Repeat("    ", r.Depth+1)
		marker := ""
		if r.Active {
			marker = "=> "
		}
		move := "none"
		if r.Move != nil {
			move = fmt.Sprintf("[%d %d]", r.Move.X, r.Move.Y)
		}
		fmt.Fprintf(&sb, "%s%sNode: w=%v s=%d mv=%s p=%d\n", indent, marker, r.WinScore, r.SimCount, move, r.Mover)
		for _, row := range r.Board {
			fmt.Fprintf(&sb, "%s%s\n", indent, row)
		}
	}
	return sb.String()
}

func (t *Tree) String() string {
	return t.Format(false)
}
