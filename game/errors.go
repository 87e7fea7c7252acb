package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrInvalidPlacement   = errors.New("invalid placement")
	ErrPlacementExhausted = errors.New("no valid base placement left")
	ErrStalemate          = errors.New("all participants eliminated")
	ErrOutOfBounds        = errors.New("cell out of bounds")
)

// IllegalReason tells why a move target was rejected.
type IllegalReason int

const (
	OwnedByOther IllegalReason = iota
	EmptyCell
)

// IllegalMoveError is returned for moves on a cell the mover cannot play.
type IllegalMoveError struct {
	Cell   Cell
	Owner  Participant // Owner of the target when Reason is OwnedByOther
	Reason IllegalReason
}

func (e *IllegalMoveError) Error() string {
	if e.Reason == OwnedByOther {
		return fmt.Sprintf("cell (%d,%d) belongs to %s", e.Cell.Row, e.Cell.Col, e.Owner.DisplayName())
	}
	return fmt.Sprintf("cell (%d,%d) is empty, you can only play your own cells", e.Cell.Row, e.Cell.Col)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// PlacementError is returned for rejected base placements.
type PlacementError struct {
	Cell   Cell
	Reason string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place base at (%d,%d): %s", e.Cell.Row, e.Cell.Col, e.Reason)
}

func (e *PlacementError) Unwrap() error {
	return ErrInvalidPlacement
}
