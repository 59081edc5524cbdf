package searcher

import (
	"errors"
	"math"
	"time"

	"tictactoe/game"
)

// Scores credited to a node per simulation
const (
	WinScore  = 1.0
	LoseScore = 0.0
	DrawScore = 0.5
)

// Exploration constant of the UCB1 bound
var DefaultExploration = math.Sqrt2

var ErrNoLegalMoves = errors.New("no legal moves")

// Oracle provides the rules of the game being searched.
type Oracle interface {
	// LegalMoves lists every playable cell of the board.
	LegalMoves(board *game.Board) []game.Coord
	// Check evaluates the board from the observer's point of view without
	// mutating it.
	Check(observer *game.Player, board *game.Board) game.Outcome
}

// Game is an oracle bound to a live position.
type Game interface {
	Oracle
	// Current returns the player about to move.
	Current() *game.Player
	Board() *game.Board
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
