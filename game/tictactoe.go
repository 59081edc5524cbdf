package game

import "fmt"

var directions = [4]Coord{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}}

// TicTacToe is an m,n,k-game: players alternate placing their symbol on a
// width x height board and the first to line up k symbols horizontally,
// vertically or diagonally wins. A full board without such a line is a draw.
type TicTacToe struct {
	p1    *Player
	p2    *Player
	first *Player
	board *Board
	k     int
	turns int
}

func NewTicTacToe(p1, p2 *Player, width, height, k int) *TicTacToe {
	if k <= 0 || (k > width && k > height) {
		panic(fmt.Sprintf("cannot line up %d symbols on a %dx%d board", k, width, height))
	}
	return &TicTacToe{
		p1:    p1,
		p2:    p2,
		first: p1,
		board: NewBoard(width, height),
		k:     k,
	}
}

// NewClassic returns the 3x3, three-in-a-row game.
func NewClassic(p1, p2 *Player) *TicTacToe {
	return NewTicTacToe(p1, p2, 3, 3, 3)
}

func (t *TicTacToe) Players() (*Player, *Player) {
	return t.p1, t.p2
}

// SetFirst chooses who moves on the first turn.
func (t *TicTacToe) SetFirst(p *Player) {
	t.first = p
}

func (t *TicTacToe) First() *Player {
	return t.first
}

// SetBoard replaces the live board, e.g. to resume from a given position.
func (t *TicTacToe) SetBoard(b *Board) {
	t.board = b
}

// Board returns the live board; callers that mutate must Clone first.
func (t *TicTacToe) Board() *Board {
	return t.board
}

func (t *TicTacToe) Turns() int {
	return t.turns
}

// Current returns the player about to move.
func (t *TicTacToe) Current() *Player {
	if t.turns%2 == 0 {
		return t.first
	}
	return t.first.Opponent()
}

// Play places the current player's symbol and passes the turn.
func (t *TicTacToe) Play(c Coord) error {
	if err := t.board.Place(c, t.Current().Symbol); err != nil {
		return err
	}
	t.turns++
	return nil
}

// Skip passes the turn without a move.
func (t *TicTacToe) Skip() {
	t.turns++
}

// LegalMoves lists every empty cell.
func (t *TicTacToe) LegalMoves(board *Board) []Coord {
	return board.Empties()
}

// Check evaluates the board from the observer's point of view without
// mutating it.
func (t *TicTacToe) Check(observer *Player, board *Board) Outcome {
	if t.hasLine(board, observer.Symbol) {
		return Win
	}
	if t.hasLine(board, observer.Opponent().Symbol) {
		return Lose
	}
	if board.Full() {
		return Draw
	}
	return None
}

func (t *TicTacToe) hasLine(board *Board, s Symbol) bool {
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			if board.At(Coord{X: x, Y: y}) != s {
				continue
			}
			for _, d := range directions {
				if t.lineFrom(board, Coord{X: x, Y: y}, d, s) {
					return true
				}
			}
		}
	}
	return false
}

func (t *TicTacToe) lineFrom(board *Board, start, d Coord, s Symbol) bool {
	c := start
	for i := 1; i < t.k; i++ {
		c = Coord{X: c.X + d.X, Y: c.Y + d.Y}
		if !board.Contains(c) || board.At(c) != s {
			return false
		}
	}
	return true
}
