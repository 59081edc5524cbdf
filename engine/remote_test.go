package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tictactoe/game"
	"tictactoe/searcher/agent"
)

func TestRemoteAgent(t *testing.T) {
	srv := httptest.NewServer(agent.NewHandler(func() agent.Agent { return random(7) }))
	defer srv.Close()

	t.Run("plays a full game against a local agent", func(t *testing.T) {
		g := newGame()
		e := NewLocal(g, NewRemoteAgent(srv.URL, 3, srv.Client()), random(3), WithRand(rand.New(rand.NewSource(4))))

		_, gameMetric, _, err := e.Run()

		require.NoError(t, err)
		require.NotEqual(t, "unfinished", gameMetric.Outcome)
	})

	t.Run("returns an empty cell", func(t *testing.T) {
		g := newGame()
		board, err := game.ParseBoard("XO_", "OXX", "OXO")
		require.NoError(t, err)
		g.SetBoard(board)

		decision, err := NewRemoteAgent(srv.URL, 3, srv.Client()).FindMove(g)

		require.NoError(t, err)
		require.True(t, decision.Found)
		require.Equal(t, game.Coord{X: 2, Y: 0}, decision.Move)
	})

	t.Run("server errors are reported", func(t *testing.T) {
		g := newGame()
		board, err := game.ParseBoard("XXX", "OO_", "___")
		require.NoError(t, err)
		g.SetBoard(board)

		_, err = NewRemoteAgent(srv.URL, 3, srv.Client()).FindMove(g)

		require.ErrorContains(t, err, "status 409")
	})

	t.Run("unreachable agent", func(t *testing.T) {
		_, err := NewRemoteAgent("http://127.0.0.1:1", 3, &http.Client{}).FindMove(newGame())

		require.ErrorContains(t, err, "failed to reach agent")
	})
}
