package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

// stepClock advances by a fixed step on every reading, so a search runs a
// fixed number of loop steps whatever the machine speed.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
}

func (c *stepClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

func mustBoard(t *testing.T, rows ...string) *game.Board {
	t.Helper()
	b, err := game.ParseBoard(rows...)
	require.NoError(t, err)
	return b
}

// mustLeaf expands n by one move, failing the test on error.
func mustLeaf(t *testing.T, n *Node, move game.Coord) *Node {
	t.Helper()
	child, err := n.MakeLeaf(move)
	require.NoError(t, err)
	return child
}

// position binds a tic-tac-toe oracle to a board and the player to move.
type position struct {
	*game.TicTacToe
	current *game.Player
	board   *game.Board
}

func (p position) Current() *game.Player { return p.current }
func (p position) Board() *game.Board    { return p.board }

func classicPosition(t *testing.T, rows ...string) (position, *game.Player, *game.Player) {
	t.Helper()
	x, o := game.NewPlayers('X', 'O')
	return position{TicTacToe: game.NewClassic(x, o), current: x, board: mustBoard(t, rows...)}, x, o
}

// scriptedOracle never ends the game and offers the listed moves while
// their cells are empty.
type scriptedOracle struct {
	moves []game.Coord
}

func (s scriptedOracle) LegalMoves(board *game.Board) []game.Coord {
	var legal []game.Coord
	for _, m := range s.moves {
		if board.At(m) == game.Empty {
			legal = append(legal, m)
		}
	}
	return legal
}

func (s scriptedOracle) Check(observer *game.Player, board *game.Board) game.Outcome {
	return game.None
}

type scriptedGame struct {
	scriptedOracle
	current *game.Player
	board   *game.Board
}

func (s scriptedGame) Current() *game.Player { return s.current }
func (s scriptedGame) Board() *game.Board    { return s.board }
