package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tictactoe/game"
	"tictactoe/searcher"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(time.Microsecond)
	return now
}

func newMCTS(budget time.Duration, seed uint64) *searcher.MCTS {
	return searcher.NewMCTS(
		searcher.WithDuration(budget),
		searcher.WithClock(&stepClock{now: time.Unix(0, 0)}),
		searcher.WithNotice(0, nil),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	)
}

func classic(t *testing.T, rows ...string) *game.TicTacToe {
	t.Helper()
	x, o := game.NewPlayers('X', 'O')
	g := game.NewClassic(x, o)
	board, err := game.ParseBoard(rows...)
	require.NoError(t, err)
	g.SetBoard(board)
	return g
}

func TestSearchAgent(t *testing.T) {
	t.Run("plays the winning move", func(t *testing.T) {
		g := classic(t, "XX_", "OO_", "___")

		decision, err := NewSearchAgent(newMCTS(10*time.Millisecond, 1), true).FindMove(g)

		require.NoError(t, err)
		require.True(t, decision.Found)
		require.Equal(t, game.Coord{X: 2, Y: 0}, decision.Move)
		require.Positive(t, decision.Metric.Steps)
	})

	t.Run("no move without search time", func(t *testing.T) {
		g := classic(t, "___", "___", "___")

		decision, err := NewSearchAgent(newMCTS(0, 1), false).FindMove(g)

		require.NoError(t, err)
		require.False(t, decision.Found)
	})
}

func TestSamplingAgent(t *testing.T) {
	t.Run("only visited moves are drawn", func(t *testing.T) {
		for seed := uint64(1); seed <= 5; seed++ {
			g := classic(t, "XX_", "OO_", "___")
			a := NewSamplingAgent(newMCTS(5*time.Millisecond, seed), 1.0, rand.New(rand.NewSource(seed)))

			decision, err := a.FindMove(g)

			require.NoError(t, err)
			require.True(t, decision.Found)
			require.Equal(t, game.Coord{X: 2, Y: 0}, decision.Move)
		}
	})

	t.Run("falls back to the score without visits", func(t *testing.T) {
		g := classic(t, "___", "___", "___")
		a := NewSamplingAgent(newMCTS(0, 1), 1.0, rand.New(rand.NewSource(1)))

		decision, err := a.FindMove(g)

		require.NoError(t, err)
		require.False(t, decision.Found)
	})

	t.Run("non-positive temperature", func(t *testing.T) {
		require.Panics(t, func() { NewSamplingAgent(newMCTS(0, 1), 0, rand.New(rand.NewSource(1))) })
	})
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	counts := make([]int, 3)
	for i := 0; i < 1000; i++ {
		counts[sample([]float64{0.2, 0, 0.8}, rng)]++
	}

	require.Zero(t, counts[1])
	require.Greater(t, counts[2], counts[0])
}

func TestRandomAgent(t *testing.T) {
	t.Run("picks an empty cell", func(t *testing.T) {
		g := classic(t, "XO_", "OX_", "XO_")
		a := NewRandomAgent(rand.New(rand.NewSource(3)))

		for i := 0; i < 20; i++ {
			decision, err := a.FindMove(g)
			require.NoError(t, err)
			require.True(t, decision.Found)
			require.Equal(t, 2, decision.Move.X)
			require.Equal(t, game.Empty, g.Board().At(decision.Move))
		}
	})

	t.Run("no move on a full board", func(t *testing.T) {
		g := classic(t, "XOX", "XOO", "OXX")

		decision, err := NewRandomAgent(rand.New(rand.NewSource(3))).FindMove(g)

		require.NoError(t, err)
		require.False(t, decision.Found)
	})
}
