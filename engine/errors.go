package engine

import "errors"

var (
	ErrBusy        = errors.New("an agent or a chain reaction is in progress")
	ErrNotYourTurn = errors.New("it is not a human participant's turn")
	ErrGameOver    = errors.New("the game is over")
)
