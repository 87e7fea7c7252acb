package game

// StateHash fingerprints a state so search trees can match positions.
type StateHash uint64

// State is the immutable view search agents play on: Play always returns a new copy.
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
