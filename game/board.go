package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
)

// Board is the grid of point counts and owners, indexed row-major.
type Board struct {
	Size   int
	Points []int         // Points per cell, 0 means unclaimed
	Owners []Participant // Owner per cell, None whenever Points is 0
}

// NewBoard creates an empty size×size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("invalid board size %d", size))
	}
	return &Board{
		Size:   size,
		Points: make([]int, size*size),
		Owners: make([]Participant, size*size),
	}
}

func (b *Board) index(c Cell) int {
	if !InBounds(c, b.Size) {
		panic(fmt.Sprintf("cell %v is outside the %dx%d board", c, b.Size, b.Size))
	}
	return c.Row*b.Size + c.Col
}

func (b *Board) InBounds(c Cell) bool {
	return InBounds(c, b.Size)
}

func (b *Board) PointsAt(c Cell) int {
	return b.Points[b.index(c)]
}

func (b *Board) OwnerAt(c Cell) Participant {
	return b.Owners[b.index(c)]
}

// Set writes a cell while keeping points == 0 <=> owner == None.
func (b *Board) Set(c Cell, points int, owner Participant) {
	if points < 0 {
		panic(fmt.Sprintf("negative points %d at %v", points, c))
	}
	if points > 0 && owner.IsNone() {
		panic(fmt.Sprintf("cell %v has %d points but no owner", c, points))
	}
	i := b.index(c)
	if points == 0 {
		owner = None
	}
	b.Points[i] = points
	b.Owners[i] = owner
}

// Clear zeroes a cell and its owner in one write.
func (b *Board) Clear(c Cell) {
	b.Set(c, 0, None)
}

// Cells returns every coordinate in row-major scan order.
func (b *Board) Cells() []Cell {
	cells := make([]Cell, 0, len(b.Points))
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			cells = append(cells, Cell{Row: r, Col: c})
		}
	}
	return cells
}

// OwnedBy returns the cells p holds with points > 0, in scan order.
func (b *Board) OwnedBy(p Participant) []Cell {
	var cells []Cell
	for i, owner := range b.Owners {
		if owner == p && b.Points[i] > 0 {
			cells = append(cells, Cell{Row: i / b.Size, Col: i % b.Size})
		}
	}
	return cells
}

// Territory counts the cells p holds.
func (b *Board) Territory(p Participant) int {
	count := 0
	for i, owner := range b.Owners {
		if owner == p && b.Points[i] > 0 {
			count++
		}
	}
	return count
}

// IsEliminated reports whether p holds no cell with points.
func (b *Board) IsEliminated(p Participant) bool {
	for i, owner := range b.Owners {
		if owner == p && b.Points[i] > 0 {
			return false
		}
	}
	return true
}

// Empty returns the unclaimed cells in scan order.
func (b *Board) Empty() []Cell {
	var cells []Cell
	for i, points := range b.Points {
		if points == 0 {
			cells = append(cells, Cell{Row: i / b.Size, Col: i % b.Size})
		}
	}
	return cells
}

func (b *Board) Neighbors(c Cell) []Cell {
	return Neighbors(c, b.Size)
}

func (b *Board) Copy() *Board {
	pointsCopy := make([]int, len(b.Points))
	copy(pointsCopy, b.Points)

	ownersCopy := make([]Participant, len(b.Owners))
	copy(ownersCopy, b.Owners)

	return &Board{
		Size:   b.Size,
		Points: pointsCopy,
		Owners: ownersCopy,
	}
}

// CheckInvariant returns the first cell breaking points == 0 <=> owner == None.
func (b *Board) CheckInvariant() error {
	for i, points := range b.Points {
		if (points == 0) != b.Owners[i].IsNone() {
			return fmt.Errorf("cell (%d,%d) has %d points owned by %s", i/b.Size, i%b.Size, points, b.Owners[i])
		}
	}
	return nil
}

func (b *Board) writeHash(h io.Writer) {
	for i, points := range b.Points {
		binary.Write(h, binary.LittleEndian, int64(points))
		binary.Write(h, binary.LittleEndian, int64(b.Owners[i].Kind))
		binary.Write(h, binary.LittleEndian, int64(b.Owners[i].Slot))
	}
}

// Hash fingerprints the board contents.
func (b *Board) Hash() uint64 {
	hasher := fnv.New64a()
	b.writeHash(hasher)
	return hasher.Sum64()
}
