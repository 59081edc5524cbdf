package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher/agent"
)

// SymbolChooser is implemented by agents that pick their own symbol when they
// win the coin flip. Other agents get a random one.
type SymbolChooser interface {
	ChooseSymbol() (game.Symbol, error)
}

var _ Engine = (*Local)(nil)

type Option func(e *Local)

func WithRand(rng *rand.Rand) Option {
	return func(e *Local) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithRenderer draws the board before every turn and at the end.
func WithRenderer(r *player.Renderer) Option {
	return func(e *Local) {
		e.renderer = r
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// Local drives a game between two in-process agents.
type Local struct {
	game     *game.TicTacToe
	agents   map[int]agent.Agent // by player index
	rng      *rand.Rand
	renderer *player.Renderer
	maxTurns int
	summary  string
}

// NewLocal pits a1, playing the first player of g, against a2.
func NewLocal(g *game.TicTacToe, a1, a2 agent.Agent, options ...Option) *Local {
	p1, p2 := g.Players()
	e := &Local{
		game:     g,
		agents:   map[int]agent.Agent{p1.Index: a1, p2.Index: a2},
		maxTurns: MaxTurns,
		summary:  "Initialized.",
	}
	for _, option := range options {
		option(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return e
}

func (e *Local) Summary() string {
	return e.summary
}

func (e *Local) Run() (*game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{ID: uuid.NewString(), StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	first, err := e.flipCoin()
	if err != nil {
		return nil, gameMetric, nil, err
	}
	gameMetric.StartingPlayer = first.Index
	log.Info().Str("game", gameMetric.ID).Msgf("game has started, player %d (%s) goes first", first.Index, first.Symbol)
	e.summary = "Game started."

	var winner *game.Player
	outcome := game.None
	for turn := 1; turn <= e.maxTurns && outcome == game.None; turn++ {
		current := e.game.Current()
		e.summary = fmt.Sprintf("It is currently Player %d's turn. (%s)", current.Index, current.Symbol)
		e.render()

		decision, err := e.agents[current.Index].FindMove(e.game)
		if err != nil {
			return nil, gameMetric, moveMetrics, fmt.Errorf("player %d failed to find a move: %w", current.Index, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       current.Index,
			Found:        decision.Found,
			SearchMetric: decision.Metric,
		})

		if !decision.Found {
			log.Warn().Msgf("player %d ran out of time and found no move, turn skipped", current.Index)
			e.game.Skip()
			gameMetric.SkippedTurns++
			continue
		}
		if err := e.game.Play(decision.Move); err != nil {
			return nil, gameMetric, moveMetrics, fmt.Errorf("player %d played an illegal move: %w", current.Index, err)
		}
		gameMetric.TotalMoves++
		log.Debug().Msgf("player %d plays %v", current.Index, decision.Move)

		outcome = e.game.Check(current, e.game.Board())
		switch outcome {
		case game.Win:
			winner = current
		case game.Lose:
			winner = current.Opponent()
		}
	}
	e.render()

	switch {
	case winner != nil:
		e.summary = fmt.Sprintf("Game over. Player %d (%s) wins!", winner.Index, winner.Symbol)
		gameMetric.Winner = winner.Index
		gameMetric.Outcome = "win"
	case outcome == game.Draw:
		e.summary = "Game over. It is a draw."
		gameMetric.Outcome = "draw"
	default:
		e.summary = fmt.Sprintf("Stopped after %d turns (no winner yet)", e.maxTurns)
		gameMetric.Outcome = "unfinished"
	}
	log.Info().Str("game", gameMetric.ID).Msg(e.summary)

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return winner, gameMetric, moveMetrics, nil
}

// flipCoin picks who goes first and lets them choose a symbol.
func (e *Local) flipCoin() (*game.Player, error) {
	p1, p2 := e.game.Players()
	first := p1
	if e.rng.Intn(2) == 1 {
		first = p2
	}
	e.game.SetFirst(first)
	log.Info().Msgf("player %d wins the coin flip", first.Index)

	symbol := game.Symbol('X')
	if e.rng.Intn(2) == 1 {
		symbol = 'O'
	}
	if chooser, ok := e.agents[first.Index].(SymbolChooser); ok {
		chosen, err := chooser.ChooseSymbol()
		if err != nil {
			return nil, fmt.Errorf("player %d failed to choose a symbol: %w", first.Index, err)
		}
		symbol = chosen
	}
	other := game.Symbol('O')
	if symbol == 'O' {
		other = 'X'
	}
	first.SetSymbols(symbol, other)
	log.Info().Msgf("player %d chooses %s, player %d's symbol is %s", first.Index, symbol, first.Opponent().Index, other)

	if e.renderer != nil {
		e.renderer.Assign(p1, p2)
	}
	return first, nil
}

func (e *Local) render() {
	if e.renderer == nil {
		return
	}
	if err := e.renderer.Render(e.game.Board()); err != nil {
		log.Warn().Err(err).Msg("failed to render board")
	}
	e.renderer.Printf("%s", e.summary)
}
