package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
	"tictactoe/searcher/agent"
)

// MatchUpResult counts the games of one match-up by result.
type MatchUpResult struct {
	Agent1     int
	Agent2     int
	Wins1      int
	Wins2      int
	Draws      int
	Unfinished int
}

type Summary struct {
	Dir      string // where the records were written
	MatchUps []MatchUpResult
}

type job struct {
	id      int
	matchUp int
	config1 metrics.AgentConfig
	config2 metrics.AgentConfig
	seed    uint64
}

type result struct {
	winner      int // 1 or 2 for the agent seat, 0 otherwise
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// Run plays every game of the experiment and stores agent configs, game and
// move records as CSV files under the configured output directory.
func Run(ctx context.Context, config Config) (Summary, error) {
	if err := config.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid config: %w", err)
	}

	var jobs []job
	for mi, m := range config.MatchUps {
		for i := 0; i < config.GamesPerMatchUp; i++ {
			id := len(jobs) + 1
			jobs = append(jobs, job{
				id:      id,
				matchUp: mi,
				config1: config.agent(m[0]),
				config2: config.agent(m[1]),
				seed:    config.Seed + uint64(id),
			})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", config.Name, len(jobs))

	results := make([]result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Parallelism)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Debug().Msgf("starting game %d of %d between agent1=%+v and agent2=%+v", j.id, len(jobs), j.config1, j.config2)
			r, err := runGame(config.Board, j)
			if err != nil {
				return fmt.Errorf("game %d failed: %w", j.id, err)
			}
			results[i] = r
			log.Info().Msgf("completed game %d of %d with winner: agent %d", j.id, len(jobs), r.winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", config.Name)

	summary := Summary{MatchUps: make([]MatchUpResult, len(config.MatchUps))}
	for mi, m := range config.MatchUps {
		summary.MatchUps[mi] = MatchUpResult{Agent1: m[0], Agent2: m[1]}
	}
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	for i, j := range jobs {
		r := results[i]
		mu := &summary.MatchUps[j.matchUp]
		switch {
		case r.winner == 1:
			mu.Wins1++
		case r.winner == 2:
			mu.Wins2++
		case r.gameMetric.Outcome == "draw":
			mu.Draws++
		default:
			mu.Unfinished++
		}

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         j.id,
			Agent1:     j.config1.ID,
			Agent2:     j.config2.ID,
			GameMetric: r.gameMetric,
		})
		for _, mm := range r.moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
		}
	}

	dir, err := store(config, gameRecords, moveRecords)
	summary.Dir = dir
	return summary, err
}

func store(config Config, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(config.OutputDir, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame plays a single game between two agents and reports which seat won.
func runGame(board BoardConfig, j job) (result, error) {
	p1, p2 := game.NewPlayers('X', 'O')
	g := game.NewTicTacToe(p1, p2, board.Width, board.Height, board.K)
	rng := rand.New(rand.NewSource(j.seed))

	e := engine.NewLocal(g,
		createAgent(j.config1, j.seed<<1),
		createAgent(j.config2, j.seed<<1|1),
		engine.WithRand(rng),
	)
	winner, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return result{}, err
	}

	r := result{gameMetric: gameMetric, moveMetrics: moveMetrics}
	if winner != nil {
		r.winner = winner.Index
	}
	return r, nil
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed)))
	}

	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithNotice(0, nil),
		searcher.WithMetrics(),
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	mcts := searcher.NewMCTS(options...)

	if config.Temperature > 0 {
		return agent.NewSamplingAgent(mcts, config.Temperature, rand.New(rand.NewSource(seed)))
	}
	return agent.NewSearchAgent(mcts, false)
}
