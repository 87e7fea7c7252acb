package searcher

import "chainclash/game"

type mockState struct {
	player string
	moves  []game.Move
	played []game.Move
	winner string
}

func (m mockState) Player() string {
	return m.player
}

func (m mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m mockState) Play(move game.Move) game.State {
	played := append([]game.Move{}, m.played...)
	return mockState{player: "opponent", played: append(played, move)}
}

func (m mockState) Hash() game.StateHash {
	return game.StateHash(len(m.played))
}

func (m mockState) Winner() string {
	return m.winner
}

func moveAt(row, col int) game.Move {
	return game.Increment(game.Cell{Row: row, Col: col})
}
