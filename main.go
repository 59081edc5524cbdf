package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
	"tictactoe/searcher/agent"
)

const usage = `usage: tictactoe [flags] <mode>

modes:
  play        human against the search agent (or a remote agent with -remote)
  selfplay    search agent against itself
  experiment  match-ups from -config, or the default exploration experiment
  serve       serve the search agent on -addr

flags:
`

type options struct {
	duration    time.Duration
	exploration float64
	temperature float64
	debug       bool
	detail      bool
	width       int
	height      int
	k           int
	seed        uint64
	remote      string
	addr        string
	config      string
}

func main() {
	var opts options
	timeLimit := flag.Int("time", 1000, "Search time per move in milliseconds")
	flag.Float64Var(&opts.exploration, "c", math.Sqrt2, "UCT exploration constant")
	flag.Float64Var(&opts.temperature, "temperature", 0, "Sample self-play moves by visits^(1/temperature) when > 0")
	flag.BoolVar(&opts.debug, "debug", false, "Log every search step and the best move scores")
	flag.BoolVar(&opts.detail, "detail", false, "Add boards and UCT values to debug output")
	flag.IntVar(&opts.width, "width", 3, "Board width")
	flag.IntVar(&opts.height, "height", 3, "Board height")
	flag.IntVar(&opts.k, "k", 3, "Symbols in a row needed to win")
	flag.Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 seeds from the clock")
	flag.StringVar(&opts.remote, "remote", "", "Base URL of an agent server to play against")
	flag.StringVar(&opts.addr, "addr", ":8080", "Listen address of the agent server")
	flag.StringVar(&opts.config, "config", "", "Experiment config file (YAML)")
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	opts.duration = time.Duration(*timeLimit) * time.Millisecond

	setupLogging(*logLevel, opts.debug)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch mode := flag.Arg(0); mode {
	case "play":
		err = play(opts)
	case "selfplay":
		err = selfPlay(opts)
	case "experiment":
		err = experiment(opts)
	case "serve":
		err = agent.StartAgentServer(opts.addr, func() agent.Agent {
			return agent.NewSearchAgent(newMCTS(opts, newSeed(opts)), opts.debug)
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func setupLogging(level string, debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Msgf("unknown log level %q, using info", level)
		lvl = zerolog.InfoLevel
	}
	if debug && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func newSeed(opts options) uint64 {
	if opts.seed != 0 {
		return opts.seed
	}
	return uint64(time.Now().UnixNano())
}

func newMCTS(opts options, seed uint64) *searcher.MCTS {
	return searcher.NewMCTS(
		searcher.WithDuration(opts.duration),
		searcher.WithExploration(opts.exploration),
		searcher.WithSeed(seed),
		searcher.WithDebug(opts.debug),
		searcher.WithDetail(opts.detail),
		searcher.WithMetrics(),
	)
}

func newGame(opts options) (*game.TicTacToe, error) {
	if opts.width <= 0 || opts.height <= 0 || opts.k <= 0 || (opts.k > opts.width && opts.k > opts.height) {
		return nil, fmt.Errorf("cannot line up %d symbols on a %dx%d board", opts.k, opts.width, opts.height)
	}
	p1, p2 := game.NewPlayers('X', 'O')
	return game.NewTicTacToe(p1, p2, opts.width, opts.height, opts.k), nil
}

func play(opts options) error {
	g, err := newGame(opts)
	if err != nil {
		return err
	}
	renderer := player.NewRenderer(os.Stdout)
	p1, _ := g.Players()
	seed := newSeed(opts)

	opponent := agent.NewSearchAgent(newMCTS(opts, seed), opts.debug)
	if opts.remote != "" {
		opponent = engine.NewRemoteAgent(opts.remote, opts.k, nil)
	}

	e := engine.NewLocal(g, player.NewHuman(p1, os.Stdin, renderer), opponent,
		engine.WithRand(rand.New(rand.NewSource(seed))),
		engine.WithRenderer(renderer),
	)
	_, _, _, err = e.Run()
	return err
}

func selfPlay(opts options) error {
	g, err := newGame(opts)
	if err != nil {
		return err
	}
	seed := newSeed(opts)
	newAgent := func(seed uint64) agent.Agent {
		if opts.temperature > 0 {
			return agent.NewSamplingAgent(newMCTS(opts, seed), opts.temperature, rand.New(rand.NewSource(seed)))
		}
		return agent.NewSearchAgent(newMCTS(opts, seed), opts.debug)
	}

	e := engine.NewLocal(g, newAgent(seed+1), newAgent(seed+2),
		engine.WithRand(rand.New(rand.NewSource(seed))),
		engine.WithRenderer(player.NewRenderer(os.Stdout)),
	)
	_, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return err
	}

	for _, m := range moveMetrics {
		log.Info().Msgf("move %d by player %d: %d steps, %d playouts, tree size %d in %s",
			m.Step, m.Player, m.Steps, m.Playouts, m.TreeSize, m.Duration)
	}
	log.Info().Msgf("game %s took %s over %d moves", gameMetric.ID, gameMetric.Duration, gameMetric.TotalMoves)
	return nil
}

func experiment(opts options) error {
	config := experiments.DefaultConfig()
	if opts.config != "" {
		var err error
		if config, err = experiments.LoadConfig(opts.config); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := experiments.Run(ctx, config)
	if err != nil {
		return err
	}
	for _, mu := range summary.MatchUps {
		fmt.Printf("agent %d vs agent %d: %d-%d, %d draws\n", mu.Agent1, mu.Agent2, mu.Wins1, mu.Wins2, mu.Draws)
	}
	fmt.Printf("records written to %s\n", summary.Dir)
	return nil
}
