package searcher

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

func quietMCTS(budget time.Duration, options ...Option) *MCTS {
	options = append([]Option{
		WithDuration(budget),
		WithClock(newStepClock(time.Microsecond)),
		WithNotice(0, nil),
	}, options...)
	return NewMCTS(options...)
}

func TestNewMCTS(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := NewMCTS()

		require.Equal(t, DefaultDuration, m.duration)
		require.Equal(t, math.Sqrt2, m.exploration)
		require.Equal(t, DefaultNoticeInterval, m.interval)
		require.NotNil(t, m.notice)
		require.NotNil(t, m.rng)
	})

	t.Run("negative values are ignored", func(t *testing.T) {
		m := NewMCTS(WithDuration(-time.Second), WithExploration(-1))

		require.Equal(t, DefaultDuration, m.duration)
		require.Equal(t, DefaultExploration, m.exploration)
	})

	t.Run("zero exploration is allowed", func(t *testing.T) {
		m := NewMCTS(WithExploration(0))

		require.Zero(t, m.exploration)
	})
}

func TestSearch(t *testing.T) {
	t.Run("zero budget does no work", func(t *testing.T) {
		g, _, _ := classicPosition(t, "___", "___", "___")

		tree, metric, err := quietMCTS(0, WithMetrics()).Search(g)

		require.NoError(t, err)
		require.Zero(t, tree.Root().ChildCount())
		require.Zero(t, metric.Steps)
		_, ok := tree.BestMove(false)
		require.False(t, ok)
	})

	t.Run("takes a win in one", func(t *testing.T) {
		for seed := uint64(1); seed <= 5; seed++ {
			g, _, _ := classicPosition(t, "XX_", "OO_", "___")

			tree, _, err := quietMCTS(10*time.Millisecond, WithSeed(seed)).Search(g)
			require.NoError(t, err)

			move, ok := tree.BestMove(false)
			require.True(t, ok)
			require.Equal(t, game.Coord{X: 2, Y: 0}, move, "seed %d", seed)
			require.True(t, math.IsInf(tree.Root().Children()[0].WinScore(), 1))
		}
	})

	t.Run("finds a legal move on an empty board", func(t *testing.T) {
		g, _, _ := classicPosition(t, "___", "___", "___")

		tree, _, err := quietMCTS(20*time.Millisecond, WithSeed(7)).Search(g)
		require.NoError(t, err)

		move, ok := tree.BestMove(false)
		require.True(t, ok)
		require.True(t, g.board.Contains(move))
		require.Equal(t, game.Empty, g.board.At(move))

		require.Equal(t, 9, tree.Root().ChildCount())
		for _, child := range tree.Root().Children() {
			require.Positive(t, child.SimCount(), "every root child should be simulated")
		}
	})

	t.Run("leaves the game board untouched", func(t *testing.T) {
		g, _, _ := classicPosition(t, "X__", "_O_", "___")
		before := g.board.Clone()

		_, _, err := quietMCTS(5*time.Millisecond, WithSeed(3)).Search(g)

		require.NoError(t, err)
		require.True(t, before.Equal(g.board))
	})

	t.Run("finished position waits out the budget", func(t *testing.T) {
		g, _, o := classicPosition(t, "XXX", "OO_", "___")
		g.current = o

		tree, metric, err := quietMCTS(time.Millisecond, WithMetrics()).Search(g)

		require.NoError(t, err)
		require.Zero(t, tree.Root().ChildCount())
		require.Equal(t, 999, metric.Steps)
		require.Zero(t, metric.Playouts)
		_, ok := tree.BestMove(false)
		require.False(t, ok)
	})

	t.Run("notices fire once per interval", func(t *testing.T) {
		g, _, _ := classicPosition(t, "___", "___", "___")
		notices := 0

		_, _, err := NewMCTS(
			WithDuration(time.Millisecond),
			WithClock(newStepClock(time.Microsecond)),
			WithNotice(100*time.Microsecond, func() { notices++ }),
			WithSeed(1),
		).Search(g)

		require.NoError(t, err)
		require.Equal(t, 10, notices)
	})

	t.Run("metrics follow the tree", func(t *testing.T) {
		g, _, _ := classicPosition(t, "___", "___", "___")

		tree, metric, err := quietMCTS(5*time.Millisecond, WithSeed(11), WithMetrics(), WithExploration(0.5)).Search(g)

		require.NoError(t, err)
		require.Equal(t, 5*time.Millisecond, metric.TimeLimit)
		require.Equal(t, 0.5, metric.Exploration)
		require.Equal(t, tree.Size(), metric.TreeSize)
		require.Positive(t, metric.Playouts)
		require.Positive(t, metric.Expansions)
		require.Greater(t, metric.Steps, metric.Playouts)
		require.Equal(t, tree.Root().SimCount(), metric.Playouts+metric.TerminalHits)
	})

	t.Run("no legal moves at the root", func(t *testing.T) {
		x, _ := game.NewPlayers('X', 'O')
		g := scriptedGame{current: x, board: game.NewBoard(3, 3)}

		tree, _, err := quietMCTS(time.Millisecond).Search(g)

		require.ErrorIs(t, err, ErrNoLegalMoves)
		require.Zero(t, tree.Root().ChildCount())
	})

	t.Run("no legal moves during a rollout", func(t *testing.T) {
		x, _ := game.NewPlayers('X', 'O')
		g := scriptedGame{
			scriptedOracle: scriptedOracle{moves: []game.Coord{{X: 0, Y: 0}}},
			current:        x,
			board:          game.NewBoard(3, 3),
		}

		tree, _, err := quietMCTS(time.Millisecond).Search(g)

		require.ErrorIs(t, err, ErrNoLegalMoves)
		require.Equal(t, 1, tree.Root().ChildCount())
	})
}
