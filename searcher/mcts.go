package searcher

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

const (
	DefaultDuration       = time.Second
	DefaultNoticeInterval = 225 * time.Millisecond
)

type Option func(mcts *MCTS)

// MCTS grows a fresh search tree for every call to Search until its time
// budget runs out. It is not safe for concurrent use.
type MCTS struct {
	duration    time.Duration
	exploration float64
	clock       Clock
	rng         *rand.Rand
	interval    time.Duration
	notice      func()
	debug       bool
	detail      bool
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration >= 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithClock(clock Clock) Option {
	return func(m *MCTS) {
		if clock != nil {
			m.clock = clock
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithNotice calls notice at most once per interval while searching. A nil
// notice disables it.
func WithNotice(interval time.Duration, notice func()) Option {
	return func(m *MCTS) {
		m.interval = interval
		m.notice = notice
	}
}

// WithDebug logs every search step and the tree at trace level.
func WithDebug(debug bool) Option {
	return func(m *MCTS) {
		m.debug = debug
	}
}

// WithDetail adds boards to tree dumps and logs UCT values on descent.
func WithDetail(detail bool) Option {
	return func(m *MCTS) {
		m.detail = detail
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:    DefaultDuration,
		exploration: DefaultExploration,
		clock:       systemClock{},
		interval:    DefaultNoticeInterval,
		notice:      func() { log.Info().Msg("thinking...") },
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// Search builds a tree for the position of g until the time budget is spent.
// On error the partially built tree is returned along with it.
func (m *MCTS) Search(g Game) (*Tree, metrics.SearchMetric, error) {
	tree := newTree(g.Current(), g.Board())

	start := m.clock.Now()
	m.metrics.Start(start, m.duration, m.exploration)
	err := m.run(g, tree, start.Add(m.duration), start.Add(-m.interval))
	metric := m.metrics.Complete(m.clock.Now())

	return tree, metric, err
}

// run advances the search one step per iteration, checking the deadline
// between any two phases of a select/simulate/backup cycle.
func (m *MCTS) run(o Oracle, tree *Tree, deadline, lastNotice time.Time) error {
	root := tree.root
	node := root
	node.active = true
	visit := func(next *Node) {
		node.active = false
		node = next
		node.active = true
	}

	for {
		now := m.clock.Now()
		if m.debug {
			log.Trace().Msgf("%s", tree.Format(m.detail))
		}
		if !now.Before(deadline) {
			if m.debug {
				log.Debug().Msg("time limit reached")
			}
			return nil
		}
		if m.notice != nil && !lastNotice.Add(m.interval).After(now) {
			lastNotice = now
			m.notice()
		}
		m.metrics.AddStep()

		acting := node.mover.Opponent()
		if outcome := o.Check(acting, node.state); outcome != game.None {
			if node == root {
				// Nothing to search from a finished position; wait out the budget.
				continue
			}
			if m.debug {
				log.Debug().Msgf("final game state reached (%s for player %d), backpropagating", outcome, acting.Index)
			}
			backup(node, outcome, terminalOffsets)
			m.metrics.AddTerminal()
			visit(root)
			continue
		}

		if node.simCount == 0 && node != root {
			if m.debug {
				log.Debug().Msg("no simulations found, simulating and backpropagating")
			}
			outcome, err := rollout(o, node, m.rng)
			if err != nil {
				return err
			}
			backup(node, outcome, offsets{})
			m.metrics.AddPlayout()
			visit(root)
			continue
		}

		if node.ChildCount() == 0 {
			if m.debug {
				log.Debug().Msg("no children found, expanding")
			}
			if err := node.expand(o); err != nil {
				return err
			}
			m.metrics.AddExpansion(node.ChildCount())
			visit(node.children[0])
			continue
		}

		visit(tree.BestChild(node, m.exploration, m.detail))
	}
}
