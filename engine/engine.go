package engine

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

const MaxTurns = 1000

type Engine interface {
	// Run plays a game till it is decided or MaxTurns turns have passed. The
	// winner is nil on a draw or an unfinished game.
	Run() (winner *game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
