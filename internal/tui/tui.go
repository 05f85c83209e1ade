// Package tui is a terminal front end for a single engine.Engine.
package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/codex-reversi/internal/domain"
	"github.com/jaminalder/codex-reversi/internal/engine"
)

const (
	whiteDisc = "○"
	blackDisc = "●"
)

type Option func(a *App)

// WithComputer lets the engine answer automatically for player.
func WithComputer(player domain.Cell) Option {
	return func(a *App) {
		a.computer = player
	}
}

// App owns the widgets and the display-only state such as the hint overlay.
type App struct {
	eng       *engine.Engine
	app       *tview.Application
	table     *tview.Table
	status    *tview.TextView
	showHints bool
	computer  domain.Cell
	message   string
}

func New(eng *engine.Engine, opts ...Option) *App {
	a := &App{
		eng:    eng,
		app:    tview.NewApplication(),
		table:  tview.NewTable(),
		status: tview.NewTextView(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.table.SetBorders(true).SetSelectable(true, true).SetFixed(1, 1)
	a.table.SetSelectedFunc(func(row, col int) {
		if row == 0 || col == 0 {
			return
		}
		a.place(col-1, row-1)
	})
	a.table.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyRune && a.handleRune(ev.Rune()) {
			return nil
		}
		return ev
	})
	a.status.SetDynamicColors(true)
	a.answer()
	a.refresh()
	return a
}

// Run blocks until the user quits.
func (a *App) Run() error {
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(a.status, 3, 0, false)
	a.table.Select(1, 1)
	return a.app.SetRoot(root, true).SetFocus(a.table).Run()
}

// handleRune reports whether the key was consumed.
func (a *App) handleRune(r rune) bool {
	switch r {
	case 'h':
		a.showHints = !a.showHints
	case 'c':
		if !a.eng.RequestAutomatedMove(a.eng.Turn()) {
			a.message = "no legal move"
		} else {
			a.message = ""
			a.answer()
		}
	case 'r':
		a.eng.Reset()
		a.message = ""
		a.answer()
	case 'q':
		a.app.Stop()
		return true
	default:
		return false
	}
	a.refresh()
	return true
}

func (a *App) place(x, y int) {
	if _, err := a.eng.Play(x, y); err != nil {
		a.message = err.Error()
	} else {
		a.message = ""
		a.answer()
	}
	a.refresh()
}

// answer lets the computer reply when it is on turn.
func (a *App) answer() {
	if a.computer == domain.Empty || a.eng.Turn() != a.computer {
		return
	}
	m, _, err := a.eng.AutoPlay(a.computer)
	if err != nil {
		return
	}
	log.Debug().Int("x", m.X).Int("y", m.Y).Int("captures", m.Captures).Msg("computer moved")
}

func (a *App) refresh() {
	g := a.eng.Snapshot()
	b := g.Board
	a.table.Clear()
	for x := 0; x < b.Width(); x++ {
		a.table.SetCell(0, x+1, header(string(rune('a'+x))))
	}
	for y := 0; y < b.Height(); y++ {
		a.table.SetCell(y+1, 0, header(strconv.Itoa(y+1)))
		for x := 0; x < b.Width(); x++ {
			cell := tview.NewTableCell(cellLabel(b, x, y, g.Turn, a.showHints)).
				SetAlign(tview.AlignCenter).
				SetBackgroundColor(tcell.ColorDarkGreen).
				SetTextColor(tcell.ColorWhite)
			a.table.SetCell(y+1, x+1, cell)
		}
	}
	a.status.SetText(statusText(g, a.showHints, a.message))
}

func header(text string) *tview.TableCell {
	return tview.NewTableCell(text).SetAlign(tview.AlignCenter).SetSelectable(false)
}

// cellLabel renders one board cell. Empty cells show the flip count for the
// player on turn when hints are on.
func cellLabel(b domain.Board, x, y int, turn domain.Cell, showHints bool) string {
	switch b.At(x, y) {
	case domain.White:
		return whiteDisc
	case domain.Black:
		return blackDisc
	}
	if showHints && b.IsLegal(x, y, turn) {
		return strconv.Itoa(b.CaptureCount(x, y, turn))
	}
	return " "
}

func statusText(g domain.Game, showHints bool, message string) string {
	hints := "off"
	if showHints {
		hints = "on"
	}
	line := fmt.Sprintf("%s white %d  %s black %d  ", whiteDisc, g.Board.Score(domain.White), blackDisc, g.Board.Score(domain.Black))
	if o := g.Outcome(); o != domain.Undecided {
		line += fmt.Sprintf("[yellow]game over: %s[-]", o)
	} else {
		line += fmt.Sprintf("%s to move", g.Turn)
	}
	line += fmt.Sprintf("\nenter place  c computer move  h hints (%s)  r restart  q quit", hints)
	if message != "" {
		line += fmt.Sprintf("\n[red]%s[-]", message)
	}
	return line
}
