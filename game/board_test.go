package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	alice = HumanPlayer(1)
	bob   = HumanPlayer(2)
	bot   = AgentPlayer(1)
)

func TestBoardSet(t *testing.T) {
	t.Run("zero points clears the owner", func(t *testing.T) {
		b := NewBoard(4)
		b.Set(Cell{1, 1}, 2, alice)
		b.Set(Cell{1, 1}, 0, alice)

		require.Equal(t, 0, b.PointsAt(Cell{1, 1}))
		require.Equal(t, None, b.OwnerAt(Cell{1, 1}), "Owner should be cleared with the points")
		require.NoError(t, b.CheckInvariant())
	})

	t.Run("points without owner panics", func(t *testing.T) {
		b := NewBoard(4)
		require.Panics(t, func() { b.Set(Cell{0, 0}, 1, None) })
	})

	t.Run("negative points panics", func(t *testing.T) {
		b := NewBoard(4)
		require.Panics(t, func() { b.Set(Cell{0, 0}, -1, alice) })
	})

	t.Run("out of bounds panics", func(t *testing.T) {
		b := NewBoard(4)
		require.Panics(t, func() { b.Set(Cell{4, 0}, 1, alice) })
	})
}

func TestBoardOwnership(t *testing.T) {
	b := NewBoard(4)
	b.Set(Cell{0, 1}, 1, alice)
	b.Set(Cell{2, 0}, 3, alice)
	b.Set(Cell{3, 3}, 2, bob)

	require.Equal(t, []Cell{{0, 1}, {2, 0}}, b.OwnedBy(alice), "Owned cells should come in scan order")
	require.Equal(t, 2, b.Territory(alice))
	require.Equal(t, 1, b.Territory(bob))
	require.False(t, b.IsEliminated(bob))
	require.True(t, b.IsEliminated(bot))
	require.Len(t, b.Empty(), 13)

	b.Clear(Cell{3, 3})
	require.True(t, b.IsEliminated(bob), "A participant without cells is eliminated")
}

func TestBoardCopy(t *testing.T) {
	b := NewBoard(3)
	b.Set(Cell{1, 1}, 2, alice)

	c := b.Copy()
	c.Set(Cell{1, 1}, 3, bob)

	require.Equal(t, 2, b.PointsAt(Cell{1, 1}), "Copy should not share point storage")
	require.Equal(t, alice, b.OwnerAt(Cell{1, 1}), "Copy should not share owner storage")
	require.NotEqual(t, b.Hash(), c.Hash())
}

func TestNeighbors(t *testing.T) {
	t.Run("fixed order up down left right", func(t *testing.T) {
		require.Equal(t, []Cell{{1, 2}, {3, 2}, {2, 1}, {2, 3}}, Neighbors(Cell{2, 2}, 8))
	})

	t.Run("corner keeps only in-bounds cells", func(t *testing.T) {
		require.Equal(t, []Cell{{1, 0}, {0, 1}}, Neighbors(Cell{0, 0}, 8))
	})
}

func TestManhattanDistance(t *testing.T) {
	require.Equal(t, 0, ManhattanDistance(Cell{3, 3}, Cell{3, 3}))
	require.Equal(t, 7, ManhattanDistance(Cell{0, 7}, Cell{3, 3}))
}

func TestParseParticipant(t *testing.T) {
	for _, p := range []Participant{None, alice, bob, bot, AgentPlayer(5)} {
		parsed, err := ParseParticipant(p.String())
		require.NoError(t, err)
		require.Equal(t, p, parsed)
	}

	_, err := ParseParticipant("aiX")
	require.Error(t, err)
	_, err = ParseParticipant("observer")
	require.Error(t, err)

	require.Equal(t, "player", alice.String())
	require.Equal(t, "player2", bob.String())
	require.Equal(t, "ai1", bot.String())
	require.True(t, bot.IsAgent())
	require.False(t, alice.IsAgent())
}
