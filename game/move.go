package game

import "fmt"

// Move is a single action on a cell. It is comparable so it can key search statistics.
type Move struct {
	Type ActionType
	Cell Cell
}

func Increment(c Cell) Move {
	return Move{Type: IncrementAction, Cell: c}
}

func Claim(c Cell) Move {
	return Move{Type: ClaimAction, Cell: c}
}

func Pass() Move {
	return Move{Type: PassAction}
}

func (m Move) String() string {
	if m.Type == PassAction {
		return "pass"
	}
	return fmt.Sprintf("%s (%d,%d)", m.Type, m.Cell.Row, m.Cell.Col)
}
