package game

import (
	"fmt"

	"chainclash/utils"

	"golang.org/x/exp/rand"
)

// PlacementOrder lists humans first, then agents, each group in roster order.
func (gs *GameState) PlacementOrder() []Participant {
	order := make([]Participant, 0, len(gs.Roster))
	for _, p := range gs.Roster {
		if !p.IsAgent() {
			order = append(order, p)
		}
	}
	for _, p := range gs.Roster {
		if p.IsAgent() {
			order = append(order, p)
		}
	}
	return order
}

// NextToPlace returns the first participant in placement order without a base.
func (gs *GameState) NextToPlace() (Participant, bool) {
	for _, p := range gs.PlacementOrder() {
		if _, placed := gs.Bases[p]; !placed {
			return p, true
		}
	}
	return None, false
}

// PlaceBase commits p's base at c: one point, owned by p.
func (gs *GameState) PlaceBase(p Participant, c Cell) error {
	if gs.Phase != SetupPhase {
		return fmt.Errorf("cannot place bases in the %s phase", gs.Phase)
	}
	if utils.FindIndex(gs.Roster, p) < 0 {
		return &PlacementError{Cell: c, Reason: fmt.Sprintf("%s is not in this game", p.DisplayName())}
	}
	if !gs.Board.InBounds(c) {
		return &PlacementError{Cell: c, Reason: "outside the board"}
	}
	if _, placed := gs.Bases[p]; placed {
		return &PlacementError{Cell: c, Reason: fmt.Sprintf("%s already has a base", p.DisplayName())}
	}
	if gs.Board.PointsAt(c) > 0 {
		return &PlacementError{Cell: c, Reason: "the cell is occupied"}
	}
	if base, ok := gs.tooClose(c); ok {
		return &PlacementError{
			Cell:   c,
			Reason: fmt.Sprintf("it must be at least %d cells from the base at (%d,%d)", gs.Rules.MinBaseDistance, base.Row, base.Col),
		}
	}

	gs.Board.Set(c, 1, p)
	gs.Bases[p] = c
	return nil
}

// tooClose returns a placed base nearer to c than the minimum distance.
func (gs *GameState) tooClose(c Cell) (Cell, bool) {
	for _, p := range gs.PlacementOrder() {
		base, ok := gs.Bases[p]
		if ok && ManhattanDistance(base, c) < gs.Rules.MinBaseDistance {
			return base, true
		}
	}
	return Cell{}, false
}

// ValidBaseCells lists the empty cells far enough from every placed base.
func (gs *GameState) ValidBaseCells() []Cell {
	var cells []Cell
	for _, c := range gs.Board.Empty() {
		if _, near := gs.tooClose(c); !near {
			cells = append(cells, c)
		}
	}
	return cells
}

// PlaceRandomBase places p uniformly at random among the valid cells.
func (gs *GameState) PlaceRandomBase(p Participant, rng *rand.Rand) (Cell, error) {
	candidates := gs.ValidBaseCells()
	if len(candidates) == 0 {
		return Cell{}, fmt.Errorf("placing %s on a %dx%d board: %w", p, gs.Rules.BoardSize, gs.Rules.BoardSize, ErrPlacementExhausted)
	}
	c := candidates[rng.Intn(len(candidates))]
	if err := gs.PlaceBase(p, c); err != nil {
		return Cell{}, err
	}
	return c, nil
}
