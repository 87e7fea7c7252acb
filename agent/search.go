package agent

import (
	"chainclash/experiments/metrics"
	"chainclash/game"
	"chainclash/searcher"
)

// SearchAgent plays the most visited move of a fresh tree search every turn.
type SearchAgent struct {
	mcts *searcher.MCTS
}

func NewSearchAgent(config Config) *SearchAgent {
	options := []searcher.Option{searcher.WithSeed(config.Seed), searcher.WithMetrics()}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	return &SearchAgent{mcts: searcher.NewMCTS(config.Goroutines, options...)}
}

func (a *SearchAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	move, metric := a.mcts.FindMove(state)
	if move.Type != game.IncrementAction {
		if moves := state.LegalMoves(); len(moves) > 0 {
			return moves[0], metric
		}
	}
	return move, metric
}
