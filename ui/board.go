// Package ui renders a chain-reaction session in the terminal with tview.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"chainclash/engine"
	"chainclash/game"
)

const maxStatusLines = 200

// BoardUI mirrors the session's board from the callbacks of its current Feed.
// Its fields are only touched on the tview goroutine.
type BoardUI struct {
	Box      *tview.Box
	app      *tview.Application
	status   *tview.TextView
	players  *tview.TextView
	size     int
	cells    []engine.CellUpdate
	selRow   int
	selCol   int
	finished bool
	lines    []string

	feed       *Feed
	feeds      int
	generation int // Generation of the connected feed
	post       func(func())
}

// Feed observes one session for a BoardUI. Callbacks arrive on that session's loop and
// are handed to the tview goroutine with QueueUpdateDraw, where updates from a feed the
// board is no longer connected to are dropped.
type Feed struct {
	board      *BoardUI
	generation int
	session    *engine.Session
}

func NewBoardUI(app *tview.Application, status, players *tview.TextView) *BoardUI {
	b := &BoardUI{
		Box:     tview.NewBox(),
		app:     app,
		status:  status,
		players: players,
	}
	b.Box.SetDrawFunc(func(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
		b.draw(screen, x, y)
		// 3 characters per cell plus the coordinate margin
		return x, y, b.size*3 + 3, b.size + 1
	})
	b.Box.SetInputCapture(b.handleKey)
	return b
}

// NewFeed returns the observer for the next session.
func (b *BoardUI) NewFeed() *Feed {
	b.feeds++
	return &Feed{board: b, generation: b.feeds}
}

// Connect binds the widget to session, observed through feed. It must be called before
// the session's loop runs. post must run tasks on the session's scheduler.
func (b *BoardUI) Connect(feed *Feed, session *engine.Session, size int, post func(func())) {
	feed.session = session
	b.feed = feed
	b.generation = feed.generation
	b.post = post
	b.size = size
	b.cells = make([]engine.CellUpdate, size*size)
	b.selRow, b.selCol = size/2, size/2
	b.finished = false
	b.lines = nil
	b.status.SetText("")
	b.players.SetText("")
}

// apply wraps an update so it only runs while f is the connected feed.
func (f *Feed) apply(update func()) func() {
	return func() {
		if f.generation == f.board.generation {
			update()
		}
	}
}

func (f *Feed) CellChanged(update engine.CellUpdate) {
	b := f.board
	b.app.QueueUpdateDraw(f.apply(func() {
		i := update.Cell.Row*b.size + update.Cell.Col
		if i >= 0 && i < len(b.cells) {
			b.cells[i] = update
		}
	}))
}

func (f *Feed) Status(text string) {
	b := f.board
	panel := f.renderPlayers()
	b.app.QueueUpdateDraw(f.apply(func() {
		b.addLine(text)
		b.players.SetText(panel)
	}))
}

func (f *Feed) GameOver(winner game.Participant) {
	b := f.board
	b.app.QueueUpdateDraw(f.apply(func() {
		b.finished = true
		if winner.IsNone() {
			b.addLine("[::b]Game over, it's a draw. Press r to play again.")
		} else {
			b.addLine(fmt.Sprintf("[::b]Game over, %s%s[-] won. Press r to play again.", colorTag(winner), winner.DisplayName()))
		}
	}))
}

func (b *BoardUI) addLine(text string) {
	b.lines = append(b.lines, tview.Escape(text))
	if len(b.lines) > maxStatusLines {
		b.lines = b.lines[len(b.lines)-maxStatusLines:]
	}
	b.status.SetText(strings.Join(b.lines, "\n"))
	b.status.ScrollToEnd()
}

// renderPlayers runs on the session loop, where reading session state is safe.
func (f *Feed) renderPlayers() string {
	if f.session == nil {
		return ""
	}
	current := f.session.State().Current()
	var sb strings.Builder
	for _, st := range f.session.Statuses() {
		marker := "  "
		if st.Participant == current {
			marker = "▶ "
		}
		state := "Active"
		if !st.Active && st.HasBase {
			state = "Eliminated"
		} else if !st.HasBase {
			state = "Placing"
		}
		fmt.Fprintf(&sb, "%s%s%-8s[-] %-10s %3d cells\n", marker, colorTag(st.Participant), st.Participant.DisplayName(), state, st.Territory)
	}
	return sb.String()
}

func (b *BoardUI) MoveSelection(dRow, dCol int) {
	row, col := b.selRow+dRow, b.selCol+dCol
	if !game.InBounds(game.Cell{Row: row, Col: col}, b.size) {
		return
	}
	b.selRow, b.selCol = row, col
}

// Select sends the highlighted cell to the session.
func (b *BoardUI) Select() {
	if b.feed == nil || b.feed.session == nil || b.finished {
		return
	}
	feed, row, col := b.feed, b.selRow, b.selCol
	b.post(func() {
		err := feed.session.SelectCell(row, col)
		switch {
		case err == nil:
		case errors.Is(err, engine.ErrBusy):
			feed.Status("Please wait for the current action to finish")
		case errors.Is(err, engine.ErrNotYourTurn):
			feed.Status("It's not your turn")
		case errors.Is(err, engine.ErrGameOver), errors.Is(err, game.ErrOutOfBounds):
			feed.Status(err.Error())
		}
		// Illegal moves and placements are already reported by the session
	})
}

// Restart starts the same mode over once any chain reaction has finished.
func (b *BoardUI) Restart() {
	if b.feed == nil || b.feed.session == nil {
		return
	}
	feed := b.feed
	b.post(func() {
		if err := feed.session.Restart(); err != nil {
			feed.Status(fmt.Sprintf("Cannot restart now: %v", err))
			return
		}
		b.app.QueueUpdateDraw(feed.apply(func() { b.finished = false }))
	})
}

func (b *BoardUI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		b.MoveSelection(-1, 0)
	case tcell.KeyDown:
		b.MoveSelection(1, 0)
	case tcell.KeyLeft:
		b.MoveSelection(0, -1)
	case tcell.KeyRight:
		b.MoveSelection(0, 1)
	case tcell.KeyEnter:
		b.Select()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			b.MoveSelection(0, -1)
		case 'j':
			b.MoveSelection(1, 0)
		case 'k':
			b.MoveSelection(-1, 0)
		case 'l':
			b.MoveSelection(0, 1)
		case ' ':
			b.Select()
		case 'r':
			b.Restart()
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

func (b *BoardUI) draw(screen tcell.Screen, x, y int) {
	if b.size == 0 {
		return
	}
	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for col := 0; col < b.size; col++ {
		drawText(screen, x+3+col*3, y, fmt.Sprintf("%2d", col), label)
	}
	for row := 0; row < b.size; row++ {
		drawText(screen, x, y+1+row, fmt.Sprintf("%2d", row), label)
		for col := 0; col < b.size; col++ {
			cell := b.cells[row*b.size+col]
			bg := emptyColor
			if (row+col)%2 == 1 {
				bg = altColor
			}
			fg := tcell.ColorGray
			text := " · "
			if cell.Points > 0 {
				text = fmt.Sprintf(" %d ", cell.Points)
				if cell.IsBase {
					text = fmt.Sprintf("[%d]", cell.Points)
				}
				bg, fg = participantColor(cell.Owner), baseColor
			}
			if row == b.selRow && col == b.selCol && !b.finished {
				bg, fg = cursorColor, tcell.ColorBlack
			}
			drawText(screen, x+3+col*3, y+1+row, text, tcell.StyleDefault.Background(bg).Foreground(fg))
		}
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
