package experiments

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tictactoe/experiments/metrics"
)

type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	K      int `yaml:"k"`
}

// Config of an experiment: every match-up plays GamesPerMatchUp games, up to
// Parallelism of them at once.
type Config struct {
	Name            string                `yaml:"name"`
	OutputDir       string                `yaml:"output_dir"`
	GamesPerMatchUp int                   `yaml:"games_per_matchup"`
	Parallelism     int                   `yaml:"parallelism"`
	Seed            uint64                `yaml:"seed"`
	Board           BoardConfig           `yaml:"board"`
	Agents          []metrics.AgentConfig `yaml:"agents"`
	MatchUps        [][2]int              `yaml:"matchups"` // pairs of agent IDs
}

// DefaultConfig pits search agents of varying exploration against a random
// baseline on the classic board.
func DefaultConfig() Config {
	const budget = 10 * time.Millisecond
	return Config{
		Name:            "exploration",
		OutputDir:       "results",
		GamesPerMatchUp: 30,
		Parallelism:     4,
		Seed:            1,
		Board:           BoardConfig{Width: 3, Height: 3, K: 3},
		Agents: []metrics.AgentConfig{
			{ID: 0, Random: true},
			{ID: 1, Duration: budget, Exploration: 0.5},
			{ID: 2, Duration: budget}, // sqrt(2)
			{ID: 3, Duration: budget, Exploration: 2},
		},
		MatchUps: [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 3}},
	}
}

// LoadConfig reads a YAML config. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if c.GamesPerMatchUp <= 0 {
		errs = append(errs, fmt.Errorf("games_per_matchup must be positive, got %d", c.GamesPerMatchUp))
	}
	if c.Parallelism <= 0 {
		errs = append(errs, fmt.Errorf("parallelism must be positive, got %d", c.Parallelism))
	}
	b := c.Board
	if b.Width <= 0 || b.Height <= 0 || b.K <= 0 || (b.K > b.Width && b.K > b.Height) {
		errs = append(errs, fmt.Errorf("cannot line up %d symbols on a %dx%d board", b.K, b.Width, b.Height))
	}

	ids := map[int]bool{}
	for _, a := range c.Agents {
		if ids[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate agent id %d", a.ID))
		}
		ids[a.ID] = true
		if a.Duration < 0 || a.Exploration < 0 || a.Temperature < 0 {
			errs = append(errs, fmt.Errorf("agent %d has negative settings", a.ID))
		}
	}
	if len(c.MatchUps) == 0 {
		errs = append(errs, errors.New("no matchups"))
	}
	for _, m := range c.MatchUps {
		for _, id := range m {
			if !ids[id] {
				errs = append(errs, fmt.Errorf("matchup %v names unknown agent %d", m, id))
			}
		}
	}
	return errors.Join(errs...)
}

func (c Config) agent(id int) metrics.AgentConfig {
	for _, a := range c.Agents {
		if a.ID == id {
			return a
		}
	}
	panic(fmt.Sprintf("unknown agent %d", id))
}
