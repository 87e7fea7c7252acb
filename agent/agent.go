package agent

import (
	"fmt"
	"time"

	"chainclash/experiments/metrics"
	"chainclash/game"
)

type Agent interface {
	// FindMove returns the move for the current participant and search metrics (if collected)
	FindMove(state *game.GameState) (game.Move, metrics.SearchMetric)
}

type Strategy string

const (
	RulesStrategy  Strategy = "rules"
	SearchStrategy Strategy = "mcts"
)

// Config selects and tunes the policy behind one agent.
type Config struct {
	Strategy   Strategy
	Seed       uint64
	Goroutines int
	Episodes   int
	Duration   time.Duration
	Cutoff     int
}

func New(config Config) (Agent, error) {
	switch config.Strategy {
	case RulesStrategy, "":
		return NewRuleAgent(config.Seed), nil
	case SearchStrategy:
		if config.Episodes <= 0 && config.Duration <= 0 {
			return nil, fmt.Errorf("search agent needs episodes or a duration")
		}
		return NewSearchAgent(config), nil
	default:
		return nil, fmt.Errorf("unknown agent strategy %q", config.Strategy)
	}
}
