package agent

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"tictactoe/searcher"
)

type samplingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewSamplingAgent returns an agent for self-play that draws its move among
// the root children in proportion to visits^(1/temperature). Lower
// temperatures approach the most visited move.
func NewSamplingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	if temperature <= 0 {
		panic(fmt.Sprintf("temperature must be positive, got %v", temperature))
	}
	return samplingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a samplingAgent) FindMove(g searcher.Game) (Decision, error) {
	tree, metric, err := a.mcts.Search(g)
	if err != nil {
		return Decision{Metric: metric}, fmt.Errorf("failed to search: %w", err)
	}

	children := tree.Root().Children()
	policy := visitPolicy(children, a.temperature)
	if policy == nil {
		// Nothing was simulated, fall back to the score
		move, found := tree.BestMove(false)
		return Decision{Move: move, Found: found, Metric: metric}, nil
	}

	move, _ := children[sample(policy, a.rng)].Move()
	return Decision{Move: move, Found: true, Metric: metric}, nil
}

// visitPolicy returns the temperature-adjusted visit distribution over
// children, or nil when no child has been visited.
func visitPolicy(children []*searcher.Node, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(children))
	for i, child := range children {
		policy[i] = math.Pow(float64(child.SimCount()), exponent)
		sum += policy[i]
	}
	if sum == 0 || math.IsInf(sum, 0) {
		return nil
	}
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(policy []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	last := 0
	for i, prob := range policy {
		if prob == 0 {
			continue
		}
		last = i
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return last // Fallback in case of rounding errors
}
