package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"chainclash/agent"
	"chainclash/engine"
	"chainclash/game"
)

func newTestBoard(size int) *BoardUI {
	status, players := NewStatusViews()
	b := NewBoardUI(tview.NewApplication(), status, players)
	b.Connect(b.NewFeed(), nil, size, func(task func()) { task() })
	return b
}

func TestMoveSelection(t *testing.T) {
	b := newTestBoard(4)
	require.Equal(t, 2, b.selRow)
	require.Equal(t, 2, b.selCol)

	b.MoveSelection(1, 1)
	b.MoveSelection(1, 1)
	require.Equal(t, 3, b.selRow, "Selection should stop at the edge")
	require.Equal(t, 3, b.selCol)

	b.MoveSelection(-3, 0)
	require.Equal(t, 0, b.selRow)
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	b := newTestBoard(4)
	b.cells[0] = engine.CellUpdate{Cell: game.Cell{}, Points: 2, Owner: game.HumanPlayer(1), IsBase: true}
	b.cells[5] = engine.CellUpdate{Cell: game.Cell{Row: 1, Col: 1}, Points: 3, Owner: game.AgentPlayer(1)}
	b.draw(screen, 0, 0)

	mainc, _, _, _ := screen.GetContent(4, 1)
	require.Equal(t, '2', mainc)
	mainc, _, _, _ = screen.GetContent(3, 1)
	require.Equal(t, '[', mainc, "Bases should be bracketed")

	mainc, _, style, _ := screen.GetContent(7, 2)
	require.Equal(t, '3', mainc)
	_, bg, _ := style.Decompose()
	require.Equal(t, participantColor(game.AgentPlayer(1)), bg)
}

func TestParticipantColors(t *testing.T) {
	seen := map[tcell.Color]bool{}
	roster := []game.Participant{game.HumanPlayer(1), game.HumanPlayer(2)}
	for slot := 1; slot <= 5; slot++ {
		roster = append(roster, game.AgentPlayer(slot))
	}
	for _, p := range roster {
		c := participantColor(p)
		require.False(t, seen[c], "%s should have its own colour", p)
		seen[c] = true
	}
	require.Equal(t, emptyColor, participantColor(game.None))
}

func TestFeed(t *testing.T) {
	t.Run("stale feeds are dropped", func(t *testing.T) {
		b := newTestBoard(4)
		old := b.feed
		current := b.NewFeed()
		b.Connect(current, nil, 4, func(task func()) { task() })

		ran := false
		old.apply(func() { ran = true })()
		require.False(t, ran, "Updates from a replaced session should not reach the board")

		current.apply(func() { ran = true })()
		require.True(t, ran)
	})

	t.Run("players panel reads its own session", func(t *testing.T) {
		b := newTestBoard(8)
		session, err := engine.NewSession(engine.Options{
			Rules:  game.NewStandardRules(),
			Roster: []game.Participant{game.HumanPlayer(1), game.AgentPlayer(1)},
			Agents: map[game.Participant]agent.Agent{game.AgentPlayer(1): agent.NewRuleAgent(1)},
			Logger: zerolog.Nop(),
		}, engine.NewQueue(), nil)
		require.NoError(t, err)

		feed := b.NewFeed()
		b.Connect(feed, session, 8, func(task func()) { task() })
		panel := feed.renderPlayers()
		require.Contains(t, panel, "Player 1")
		require.Contains(t, panel, "AI 1")
		require.Contains(t, panel, "Placing")
	})
}

var _ engine.Observer = (*Feed)(nil)
