package game

// Cell is a grid coordinate.
type Cell struct {
	Row int
	Col int
}

// Directions lists orthogonal neighbours in the fixed order up, down, left, right.
var Directions = [4]Cell{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// ManhattanDistance returns |r1-r2| + |c1-c2|.
func ManhattanDistance(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// InBounds checks that the cell lies on a size×size grid.
func InBounds(c Cell, size int) bool {
	return c.Row >= 0 && c.Row < size && c.Col >= 0 && c.Col < size
}

// Neighbors returns the in-bounds orthogonal neighbours of c, in Directions order.
func Neighbors(c Cell, size int) []Cell {
	adjacent := make([]Cell, 0, len(Directions))
	for _, d := range Directions {
		n := c.Add(d)
		if InBounds(n, size) {
			adjacent = append(adjacent, n)
		}
	}
	return adjacent
}
