package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEpisodeStep(t *testing.T) {
	t.Run("detonation spreads to empty neighbours", func(t *testing.T) {
		b := NewBoard(8)
		b.Set(Cell{2, 2}, 4, alice)

		e := NewEpisode(b, Cell{2, 2}, alice, 4)
		changed := e.Step()

		require.Equal(t, []Cell{{2, 2}, {1, 2}, {3, 2}, {2, 1}, {2, 3}}, changed,
			"Detonated cell should come first, then neighbours in fixed order")
		require.Equal(t, 0, b.PointsAt(Cell{2, 2}))
		require.Equal(t, None, b.OwnerAt(Cell{2, 2}), "Detonated cell should lose its owner")
		for _, n := range changed[1:] {
			require.Equal(t, 1, b.PointsAt(n))
			require.Equal(t, alice, b.OwnerAt(n))
		}
		require.True(t, e.Done())
		require.Equal(t, 1, e.Steps())
		require.Equal(t, 4, e.Affected())
	})

	t.Run("capture increments and annexes", func(t *testing.T) {
		b := NewBoard(8)
		b.Set(Cell{0, 0}, 4, bob)
		b.Set(Cell{0, 1}, 2, alice)

		NewEpisode(b, Cell{0, 0}, bob, 4).Step()

		require.Equal(t, 3, b.PointsAt(Cell{0, 1}))
		require.Equal(t, bob, b.OwnerAt(Cell{0, 1}), "Hit cell should change owner")
	})

	t.Run("captured cell at threshold joins the same episode", func(t *testing.T) {
		b := NewBoard(8)
		b.Set(Cell{3, 3}, 4, alice)
		b.Set(Cell{3, 4}, 3, bob)

		e := NewEpisode(b, Cell{3, 3}, alice, 4)
		e.Step()

		require.Equal(t, 4, b.PointsAt(Cell{3, 4}))
		require.Equal(t, alice, b.OwnerAt(Cell{3, 4}))
		require.Equal(t, []Cell{{3, 4}}, e.Pending())

		e.Step()
		require.True(t, e.Done())
		require.Equal(t, 0, b.PointsAt(Cell{3, 4}))
		require.Equal(t, 1, b.PointsAt(Cell{3, 3}), "Second detonation should refill the first cell")
		require.Equal(t, alice, b.OwnerAt(Cell{3, 3}))
	})

	t.Run("cell hit twice before detonating is enqueued once", func(t *testing.T) {
		b := NewBoard(8)
		b.Set(Cell{0, 0}, 4, alice)
		b.Set(Cell{0, 1}, 3, alice)
		b.Set(Cell{1, 0}, 3, alice)
		b.Set(Cell{1, 1}, 3, bob)

		e := NewEpisode(b, Cell{0, 0}, alice, 4)
		e.Step()
		require.Equal(t, []Cell{{1, 0}, {0, 1}}, e.Pending())
		e.Step()
		require.Equal(t, []Cell{{0, 1}, {1, 1}}, e.Pending())
		e.Step()
		require.Equal(t, 5, b.PointsAt(Cell{1, 1}), "Second hit should still add a point")
		require.Equal(t, []Cell{{1, 1}}, e.Pending(), "Second hit should not enqueue again")

		require.Equal(t, 4, e.Run())
		require.Equal(t, 0, b.PointsAt(Cell{1, 1}))
		require.Equal(t, 0, b.Territory(bob))
	})

	t.Run("step on a drained episode is a no-op", func(t *testing.T) {
		b := NewBoard(3)
		b.Set(Cell{1, 1}, 4, alice)
		e := NewEpisode(b, Cell{1, 1}, alice, 4)
		e.Run()

		require.Nil(t, e.Step())
		require.Equal(t, 1, e.Steps())
	})
}

func TestEpisodeTermination(t *testing.T) {
	t.Run("saturated board", func(t *testing.T) {
		b := NewBoard(4)
		for _, c := range b.Cells() {
			b.Set(c, 3, bob)
		}
		b.Set(Cell{0, 0}, 4, alice)

		e := NewEpisode(b, Cell{0, 0}, alice, 4)
		steps := e.Run()

		require.LessOrEqual(t, steps, 16, "No cell should detonate twice in an episode")
		require.NoError(t, b.CheckInvariant())
		require.Equal(t, 0, b.Territory(bob), "Every surviving cell should belong to the detonating owner")
	})

	t.Run("random boards keep the invariant at every step", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		owners := []Participant{alice, bob, bot}
		for round := 0; round < 200; round++ {
			size := 2 + rng.Intn(7)
			b := NewBoard(size)
			for _, c := range b.Cells() {
				if points := rng.Intn(4); points > 0 {
					b.Set(c, points, owners[rng.Intn(len(owners))])
				}
			}
			trigger := Cell{rng.Intn(size), rng.Intn(size)}
			b.Set(trigger, 4, alice)

			e := NewEpisode(b, trigger, alice, 4)
			for !e.Done() {
				e.Step()
				require.NoError(t, b.CheckInvariant())
			}
			require.LessOrEqual(t, e.Steps(), size*size)
		}
	})
}
