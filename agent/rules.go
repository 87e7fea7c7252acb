package agent

import (
	"chainclash/experiments/metrics"
	"chainclash/game"

	"golang.org/x/exp/rand"
)

// RuleAgent plays a fixed priority of tactics, breaking ties at random.
type RuleAgent struct {
	rng *rand.Rand
}

func NewRuleAgent(seed uint64) *RuleAgent {
	return &RuleAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RuleAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	self := state.Current()
	board := state.Board
	critical := state.Rules.CriticalThreshold - 1
	owned := board.OwnedBy(self)

	// Detonate
	ready := make([]game.Cell, 0, len(owned))
	for _, c := range owned {
		if board.PointsAt(c) == critical {
			ready = append(ready, c)
		}
	}
	if len(ready) > 0 {
		return game.Increment(ready[a.rng.Intn(len(ready))]), metrics.SearchMetric{}
	}

	// Strike a rival cell about to blow
	if state.Rules.AttackTier {
		if strikers := a.strikers(state, self); len(strikers) > 0 {
			return game.Increment(strikers[a.rng.Intn(len(strikers))]), metrics.SearchMetric{}
		}
	}

	// Grow the strongest cell
	if len(owned) > 0 {
		strongest := owned[0]
		for _, c := range owned[1:] {
			if board.PointsAt(c) > board.PointsAt(strongest) {
				strongest = c
			}
		}
		return game.Increment(strongest), metrics.SearchMetric{}
	}

	// Claim
	if targets := a.claimTargets(state, self); len(targets) > 0 {
		return game.Claim(targets[a.rng.Intn(len(targets))]), metrics.SearchMetric{}
	}
	return game.Pass(), metrics.SearchMetric{}
}

// strikers returns, for every rival cell one point short of detonating, the first
// neighbouring cell self can play. A target with no such neighbour is skipped.
func (a *RuleAgent) strikers(state *game.GameState, self game.Participant) []game.Cell {
	board := state.Board
	critical := state.Rules.CriticalThreshold - 1

	var strikers []game.Cell
	for _, c := range board.Cells() {
		owner := board.OwnerAt(c)
		if owner.IsNone() || owner == self || board.PointsAt(c) != critical {
			continue
		}
		for _, n := range board.Neighbors(c) {
			if board.OwnerAt(n) == self && board.PointsAt(n) > 0 {
				strikers = append(strikers, n)
				break
			}
		}
	}
	return strikers
}

// claimTargets prefers empty cells bordering someone else's territory, then any empty cell.
func (a *RuleAgent) claimTargets(state *game.GameState, self game.Participant) []game.Cell {
	board := state.Board
	empty := board.Empty()

	var frontier []game.Cell
	for _, c := range empty {
		for _, n := range board.Neighbors(c) {
			if owner := board.OwnerAt(n); !owner.IsNone() && owner != self {
				frontier = append(frontier, c)
				break
			}
		}
	}
	if len(frontier) > 0 {
		return frontier
	}
	return empty
}
