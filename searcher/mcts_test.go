package searcher

import (
	"testing"

	"chainclash/game"

	"github.com/stretchr/testify/require"
)

func TestMCTSFindsWinningMove(t *testing.T) {
	rules := game.NewStandardRules()
	rules.BoardSize = 4
	a, b := game.AgentPlayer(1), game.AgentPlayer(2)
	gs, err := game.NewGameState(rules, []game.Participant{a, b})
	require.NoError(t, err)
	gs.Board.Set(game.Cell{Row: 0, Col: 0}, 3, a)
	gs.Board.Set(game.Cell{Row: 3, Col: 3}, 1, a)
	gs.Board.Set(game.Cell{Row: 0, Col: 1}, 1, b)
	gs.Phase = game.ActivePhase
	gs.CurrentPlayer = 0

	mcts := NewMCTS(1, WithEpisodes(400), WithCutoff(40), WithSeed(3), WithMetrics())
	move, metric := mcts.FindMove(gs)

	require.Equal(t, game.Increment(game.Cell{Row: 0, Col: 0}), move, "Detonating next to the last enemy cell wins at once")
	require.Equal(t, 400, metric.Episodes)
	require.Equal(t, 40, metric.Cutoff)
	require.Positive(t, metric.FullPlayouts)
}

func TestMCTSWithoutMoves(t *testing.T) {
	mcts := NewMCTS(2, WithEpisodes(10))
	move, _ := mcts.FindMove(mockState{winner: "player"})
	require.Equal(t, game.Pass(), move)
}

func TestNewMCTSRequiresBudget(t *testing.T) {
	require.Panics(t, func() { NewMCTS(1) })
}
