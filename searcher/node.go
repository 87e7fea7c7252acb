package searcher

import "chainclash/game"

type Node interface {
	// SelectOrExpand descends one level. It returns the node itself with an unchanged state
	// when the node is terminal, and expanded=true when the child was just created.
	SelectOrExpand(state game.State) (child Node, childState game.State, expanded bool)
	Backup(reward func(string) float64) Node
	Visits() float64
	ApplyLoss()
	Score(normalizer float64) float64
}
