package web

import (
	"fmt"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/domain"
)

type cellView struct {
	X, Y     int
	Class    string
	Playable bool
	Hint     int
}

type boardView struct {
	ID         string
	Rows       [][]cellView
	WhiteScore int
	BlackScore int
	Status     string
	ShowHints  bool
	Seat       string
	Error      string
}

func cellClass(c domain.Cell) string {
	switch c {
	case domain.White:
		return "piece-white"
	case domain.Black:
		return "piece-black"
	default:
		return "empty"
	}
}

func statusLine(g domain.Game) string {
	if o := g.Outcome(); o != domain.Undecided {
		return fmt.Sprintf("Game over: %s", o)
	}
	return fmt.Sprintf("%s to move", g.Turn)
}

// newBoardView prepares a game for the board template. Hint counts are only
// filled in when the viewer has hints switched on.
func newBoardView(gs app.GameState, playerID string, showHints bool, errMsg string) boardView {
	g := gs.Game
	b := g.Board
	hints := map[domain.Point]int{}
	if showHints {
		for _, m := range g.LegalMoves() {
			hints[domain.Point{X: m.X, Y: m.Y}] = m.Captures
		}
	}
	rows := make([][]cellView, b.Height())
	for y := range rows {
		rows[y] = make([]cellView, b.Width())
		for x := range rows[y] {
			c := b.At(x, y)
			rows[y][x] = cellView{
				X:        x,
				Y:        y,
				Class:    cellClass(c),
				Playable: c == domain.Empty,
				Hint:     hints[domain.Point{X: x, Y: y}],
			}
		}
	}
	seat := "spectator"
	if s := gs.Seat(playerID); s != domain.Empty {
		seat = s.String()
	}
	return boardView{
		ID:         gs.ID,
		Rows:       rows,
		WhiteScore: b.Score(domain.White),
		BlackScore: b.Score(domain.Black),
		Status:     statusLine(g),
		ShowHints:  showHints,
		Seat:       seat,
		Error:      errMsg,
	}
}

type hintDTO struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	Captures int `json:"captures"`
}

type stateDTO struct {
	ID      string         `json:"id"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Board   [][]int        `json:"board"`
	Turn    string         `json:"turn"`
	Moves   int            `json:"moves"`
	Scores  map[string]int `json:"scores"`
	Over    bool           `json:"over"`
	Outcome string         `json:"outcome"`
	Hints   []hintDTO      `json:"hints,omitempty"`
}

// newStateDTO encodes cells as 0 empty, 1 white, 2 black.
func newStateDTO(gs app.GameState, showHints bool) stateDTO {
	g := gs.Game
	b := g.Board
	board := make([][]int, b.Height())
	for y, row := range b.Rows() {
		board[y] = make([]int, len(row))
		for x, c := range row {
			board[y][x] = int(c)
		}
	}
	dto := stateDTO{
		ID:     gs.ID,
		Width:  b.Width(),
		Height: b.Height(),
		Board:  board,
		Turn:   g.Turn.String(),
		Moves:  g.Moves,
		Scores: map[string]int{
			domain.White.String(): b.Score(domain.White),
			domain.Black.String(): b.Score(domain.Black),
		},
		Over:    g.Over(),
		Outcome: g.Outcome().String(),
	}
	if showHints {
		for _, m := range g.LegalMoves() {
			dto.Hints = append(dto.Hints, hintDTO{X: m.X, Y: m.Y, Captures: m.Captures})
		}
	}
	return dto
}
