package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chainclash/game"
	"chainclash/meta"
)

// SetupChoice is what the player picked on the setup form.
type SetupChoice struct {
	Mode      game.Mode
	BoardSize int
	Humans    int // Custom mode only
	Agents    int // Custom mode only
}

// GameSetupUI is the mode selection form shown before every game.
type GameSetupUI struct {
	flex   *tview.Flex
	choice SetupChoice
}

var boardSizes = []int{6, 8, 10, 12}

func NewGameSetup(initial SetupChoice, onStart func(SetupChoice), onQuit func()) *GameSetupUI {
	setup := &GameSetupUI{choice: initial}

	modes := append([]game.Mode{}, game.Modes...)
	modes = append(modes, game.CustomRosterMode)
	modeLabels := make([]string, len(modes))
	modeIndex := 0
	for i, m := range modes {
		modeLabels[i] = m.Description()
		if m == initial.Mode {
			modeIndex = i
		}
	}

	sizeLabels := make([]string, len(boardSizes))
	sizeIndex := 1
	for i, size := range boardSizes {
		sizeLabels[i] = strconv.Itoa(size) + "x" + strconv.Itoa(size)
		if size == initial.BoardSize {
			sizeIndex = i
		}
	}

	humanLabels := []string{"1", "2"}
	agentLabels := make([]string, meta.MAX_AGENTS+1)
	for i := range agentLabels {
		agentLabels[i] = strconv.Itoa(i)
	}

	form := tview.NewForm()
	form.AddDropDown("Mode", modeLabels, modeIndex, func(option string, index int) {
		setup.choice.Mode = modes[index]
	})
	form.AddDropDown("Board Size", sizeLabels, sizeIndex, func(option string, index int) {
		setup.choice.BoardSize = boardSizes[index]
	})
	form.AddDropDown("Humans (custom)", humanLabels, clamp(initial.Humans-1, 0, 1), func(option string, index int) {
		setup.choice.Humans = index + 1
	})
	form.AddDropDown("Agents (custom)", agentLabels, clamp(initial.Agents, 0, meta.MAX_AGENTS), func(option string, index int) {
		setup.choice.Agents = index
	})

	form.AddButton("Start Game", func() {
		onStart(setup.choice)
	})
	form.AddButton("Quit", func() {
		onQuit()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(tcell.ColorDarkCyan)
	form.SetButtonTextColor(tcell.ColorWhite)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	setup.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
