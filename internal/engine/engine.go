// Package engine holds a single Reversi game behind one mutex and exposes the
// queries and transitions a front end needs.
package engine

import (
	"errors"
	"sync"

	"github.com/jaminalder/codex-reversi/internal/domain"
)

// ErrWrongPlayer is returned when an automated move is requested for the
// player who is not on turn.
var ErrWrongPlayer = errors.New("player is not on turn")

// Engine guards a domain.Game. Every read-evaluate-apply sequence runs under
// the same lock, so a move is never applied against a board other than the
// one it was evaluated on.
type Engine struct {
	mu    sync.Mutex
	start domain.Game
	game  domain.Game
}

// New returns an engine for a width x height board in the opening position.
func New(width, height int) *Engine {
	return NewFromGame(domain.New(width, height))
}

// NewFromGame starts the engine from an arbitrary position. Reset still
// returns to the standard opening for the board's dimensions.
func NewFromGame(g domain.Game) *Engine {
	return &Engine{
		start: domain.New(g.Board.Width(), g.Board.Height()),
		game:  g,
	}
}

// Snapshot returns the whole game state.
func (e *Engine) Snapshot() domain.Game {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game
}

func (e *Engine) Board() domain.Board { return e.Snapshot().Board }
func (e *Engine) Turn() domain.Cell   { return e.Snapshot().Turn }

// Play applies a move for the player on turn, or explains why it was refused.
func (e *Engine) Play(x, y int) (domain.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.game.Explain(x, y); err != nil {
		return e.game, err
	}
	next, ok := e.game.Play(x, y)
	if !ok {
		return e.game, domain.ErrIllegalMove
	}
	e.game = next
	return next, nil
}

// AttemptMove reports whether the move was applied. A false result leaves the
// game untouched.
func (e *Engine) AttemptMove(x, y int) bool {
	_, err := e.Play(x, y)
	return err == nil
}

// AutoPlay makes the greedy move for player, who must be on turn.
func (e *Engine) AutoPlay(player domain.Cell) (domain.Move, domain.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if player != e.game.Turn {
		return domain.Move{}, e.game, ErrWrongPlayer
	}
	m, ok := e.game.BestMove()
	if !ok {
		return domain.Move{}, e.game, domain.ErrGameOver
	}
	e.game, _ = e.game.Play(m.X, m.Y)
	return m, e.game, nil
}

// RequestAutomatedMove selects and plays the greedy move for player. It is a
// no-op when player is not on turn or has no legal move.
func (e *Engine) RequestAutomatedMove(player domain.Cell) bool {
	_, _, err := e.AutoPlay(player)
	return err == nil
}

// LegalMoveCount is the number of discs player would flip at (x, y), or 0
// when the cell is occupied or off the board.
func (e *Engine) LegalMoveCount(x, y int, player domain.Cell) int {
	b := e.Board()
	if !b.IsLegal(x, y, player) {
		return 0
	}
	return b.CaptureCount(x, y, player)
}

// LegalMoves lists the moves of the player on turn.
func (e *Engine) LegalMoves() []domain.Move {
	return e.Snapshot().LegalMoves()
}

func (e *Engine) Score(player domain.Cell) int {
	return e.Board().Score(player)
}

func (e *Engine) IsGameOver() bool {
	return e.Snapshot().Over()
}

// Winner is domain.Undecided until the game is over.
func (e *Engine) Winner() domain.Outcome {
	return e.Snapshot().Outcome()
}

// Reset restores the opening position with White to move.
func (e *Engine) Reset() domain.Game {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.game = e.start
	return e.game
}
