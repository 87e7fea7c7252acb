package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCB1(t *testing.T) {
	t.Run("unvisited node is prioritized", func(t *testing.T) {
		require.Equal(t, math.Inf(1), ucb1(0, 0, 1))
	})

	t.Run("computing UCB value", func(t *testing.T) {
		normalizer := C_SQUARED * math.Log(100)
		expected := 5.0/10 + math.Sqrt(normalizer/10.0)
		require.InDelta(t, expected, ucb1(5, 10, normalizer), 0.0001,
			"Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		normalizer := C_SQUARED * math.Log(100)
		require.Greater(t, ucb1(5, 10, normalizer), ucb1(5, 20, normalizer))
	})
}

func TestRewards(t *testing.T) {
	t.Run("winner takes the reward", func(t *testing.T) {
		reward := rewarder("ai1")
		require.Equal(t, WIN, reward("ai1"))
		require.Equal(t, LOSS, reward("player"))
	})

	t.Run("draw rewards nobody", func(t *testing.T) {
		require.Equal(t, LOSS, rewarder("")(""))
	})

	t.Run("evaluation is shared between players", func(t *testing.T) {
		reward := evaluator("ai1", 0.5)
		require.InDelta(t, 0.75, reward("ai1"), 1e-9)
		require.InDelta(t, 0.25, reward("player"), 1e-9)
	})
}
