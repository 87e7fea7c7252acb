package ui

import (
	"github.com/rivo/tview"
)

// NewStatusViews returns the scrolling status log and the participant panel.
func NewStatusViews() (status, players *tview.TextView) {
	status = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	status.SetBorder(true)
	status.SetBorderPadding(0, 0, 1, 1)
	status.SetTitle(" Status ")
	status.SetTitleAlign(tview.AlignLeft)

	players = tview.NewTextView().SetDynamicColors(true)
	players.SetBorder(true)
	players.SetBorderPadding(0, 0, 1, 1)
	players.SetTitle(" Players ")
	players.SetTitleAlign(tview.AlignLeft)
	return status, players
}

// CreateGameLayout centres the board with the players panel and status log on its right.
func CreateGameLayout(board *BoardUI, status, players *tview.TextView) *tview.Flex {
	help := tview.NewTextView().
		SetText("Arrows/hjkl: move  Enter/Space: select  r: restart  q: menu").
		SetTextAlign(tview.AlignCenter)

	boardColumn := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 1, 0, false).
		AddItem(board.Box, 0, 1, true).
		AddItem(help, 1, 0, false)

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(players, 9, 0, false).
		AddItem(status, 0, 1, false)

	return tview.NewFlex().
		AddItem(boardColumn, 0, 1, true).
		AddItem(side, 0, 1, false)
}
