package engine

import "chainclash/game"

// CellUpdate is the full state of one cell after a mutation.
type CellUpdate struct {
	Cell   game.Cell
	Points int
	Owner  game.Participant
	IsBase bool
}

// Observer receives every visible change of a session, on the scheduler goroutine.
type Observer interface {
	CellChanged(update CellUpdate)
	Status(text string)
	GameOver(winner game.Participant)
}

type NopObserver struct{}

func (NopObserver) CellChanged(CellUpdate)    {}
func (NopObserver) Status(string)             {}
func (NopObserver) GameOver(game.Participant) {}
