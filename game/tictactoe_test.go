package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := ParseBoard(rows...)
	require.NoError(t, err)
	return b
}

func TestTicTacToeCheck(t *testing.T) {
	x, o := NewPlayers('X', 'O')
	g := NewClassic(x, o)

	tests := []struct {
		name     string
		board    *Board
		observer *Player
		want     Outcome
	}{
		{"empty board", NewBoard(3, 3), x, None},
		{"row for observer", mustParse(t, "___", "XXX", "O_O"), x, Win},
		{"column for opponent", mustParse(t, "O_X", "O_X", "O__"), x, Lose},
		{"diagonal", mustParse(t, "X_O", "_XO", "__X"), o, Lose},
		{"anti-diagonal", mustParse(t, "X_O", "XO_", "O__"), o, Win},
		{"full board without a line", mustParse(t, "XOX", "XOO", "OXX"), x, Draw},
		{"unfinished", mustParse(t, "XO_", "___", "___"), o, None},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, g.Check(tc.observer, tc.board))
		})
	}
}

func TestTicTacToeLargerBoard(t *testing.T) {
	x, o := NewPlayers('X', 'O')
	g := NewTicTacToe(x, o, 5, 4, 4)

	board := mustParse(t,
		"_____",
		"_XXX_",
		"OOO__",
		"_____",
	)
	require.Equal(t, None, g.Check(x, board), "Three in a row should not win when four are needed")

	board.Set(Coord{X: 4, Y: 1}, 'X')
	require.Equal(t, Win, g.Check(x, board))
	require.Equal(t, Lose, g.Check(o, board))
}

func TestTicTacToeTurns(t *testing.T) {
	x, o := NewPlayers('X', 'O')
	g := NewClassic(x, o)
	g.SetFirst(o)

	require.Equal(t, o, g.Current())
	require.NoError(t, g.Play(Coord{X: 1, Y: 1}))
	require.Equal(t, x, g.Current())
	require.ErrorIs(t, g.Play(Coord{X: 1, Y: 1}), ErrOccupied)
	require.Equal(t, x, g.Current(), "A rejected move should not pass the turn")

	g.Skip()
	require.Equal(t, o, g.Current())
	require.Equal(t, 2, g.Turns())
	require.Len(t, g.LegalMoves(g.Board()), 8)
}

func TestOutcomeInvert(t *testing.T) {
	require.Equal(t, Lose, Win.Invert())
	require.Equal(t, Win, Lose.Invert())
	require.Equal(t, Draw, Draw.Invert())
	require.Equal(t, None, None.Invert())
}
