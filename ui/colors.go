package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"chainclash/game"
)

var (
	emptyColor  = tcell.ColorDarkSlateGray
	altColor    = tcell.ColorDimGray
	cursorColor = tcell.ColorYellow
	baseColor   = tcell.ColorWhite
)

// Human slots take the first colours, agent slots follow.
var participantColors = []tcell.Color{
	tcell.ColorDodgerBlue,
	tcell.ColorLimeGreen,
	tcell.ColorCrimson,
	tcell.ColorDarkOrange,
	tcell.ColorMediumOrchid,
	tcell.ColorGold,
	tcell.ColorTeal,
}

func participantColor(p game.Participant) tcell.Color {
	switch p.Kind {
	case game.Human:
		return participantColors[(p.Slot-1)%2]
	case game.Agent:
		return participantColors[2+(p.Slot-1)%(len(participantColors)-2)]
	default:
		return emptyColor
	}
}

// colorTag renders a tview colour tag for the participant's colour.
func colorTag(p game.Participant) string {
	return fmt.Sprintf("[#%06x]", participantColor(p).Hex())
}
