package domain

import "errors"

// Outcome describes the result of a game.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return "undecided"
	}
}

// Game holds the current state of a Reversi match.
type Game struct {
	Board Board
	Turn  Cell
	Moves int
}

// Errors used to explain why a move was rejected.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrIllegalMove = errors.New("no discs to flip")
	ErrGameOver    = errors.New("game over")
)

// New returns a new game on a width x height board with White to move.
func New(width, height int) Game {
	return Game{Board: NewBoard(width, height), Turn: White}
}

// Play attempts to place the current player's disc at (x, y). It returns the
// resulting game and true, or the receiver unchanged and false when the move
// is illegal.
func (g Game) Play(x, y int) (Game, bool) {
	if !g.Board.InBounds(x, y) || g.Board.At(x, y) != Empty {
		return g, false
	}
	flips := g.Board.Captures(x, y, g.Turn)
	if len(flips) == 0 {
		return g, false
	}
	next := g.Board.clone()
	next.set(x, y, g.Turn)
	for _, p := range flips {
		next.set(p.X, p.Y, g.Turn)
	}
	return Game{Board: next, Turn: g.Turn.Other(), Moves: g.Moves + 1}, true
}

// LegalMoves lists the moves available to the player to move.
func (g Game) LegalMoves() []Move {
	return g.Board.LegalMoves(g.Turn)
}

// BestMove is the greedy choice for the player to move.
func (g Game) BestMove() (Move, bool) {
	return g.Board.BestMove(g.Turn)
}

// Over reports whether the player to move has no legal move.
func (g Game) Over() bool {
	return len(g.Board.LegalMoves(g.Turn)) == 0
}

// Outcome is Undecided while the game is running. Once over, the player with
// strictly more discs wins; equal counts are a Draw.
func (g Game) Outcome() Outcome {
	if !g.Over() {
		return Undecided
	}
	w, b := g.Board.Score(White), g.Board.Score(Black)
	switch {
	case w > b:
		return WhiteWins
	case b > w:
		return BlackWins
	default:
		return Draw
	}
}

// Explain returns nil if the current player may play (x, y), or the reason
// the move would be rejected.
func (g Game) Explain(x, y int) error {
	if !g.Board.InBounds(x, y) {
		return ErrOutOfBounds
	}
	if g.Over() {
		return ErrGameOver
	}
	if g.Board.At(x, y) != Empty {
		return ErrOccupied
	}
	if g.Board.CaptureCount(x, y, g.Turn) == 0 {
		return ErrIllegalMove
	}
	return nil
}
