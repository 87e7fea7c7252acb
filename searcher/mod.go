package searcher

import (
	"math"
)

const C_SQUARED = 2.0 // Exploration constant

const WIN = 1.0  // Reward for winning outcome
const LOSS = 0.0 // Reward for losing outcome, also the virtual loss

// MaxCutoff leaves rollouts unbounded in practice: a game ends long before.
const MaxCutoff = math.MaxInt

// rewarder credits a full playout to its winner only. A draw rewards nobody.
func rewarder(winner string) func(player string) float64 {
	return func(player string) float64 {
		if winner != "" && player == winner {
			return WIN
		}
		return LOSS
	}
}

// evaluator maps a cutoff score in [-1, 1] from player's perspective into a reward in [0, 1]
// for each player: the evaluated player gets the score, everyone else its complement.
func evaluator(player string, score float64) func(string) float64 {
	reward := (score + 1) / 2
	return func(p string) float64 {
		if p == player {
			return reward
		}
		return 1 - reward
	}
}

func ucb1(rewards float64, visits float64, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/visits + math.Sqrt(c2LnN/visits)
}
