package domain

import "golang.org/x/exp/slices"

// Directions are the eight ray offsets scanned from a candidate cell.
var Directions = [8]Point{
	{1, 0},   // right
	{1, -1},  // up and right
	{0, -1},  // up
	{-1, -1}, // up and left
	{-1, 0},  // left
	{-1, 1},  // down and left
	{0, 1},   // down
	{1, 1},   // down and right
}

// Move is a legal placement together with the number of discs it flips.
type Move struct {
	X, Y     int
	Captures int
}

// Captures returns the opponent discs that a disc of player placed at (x, y)
// would flip: for every direction, the run of opponent discs strictly between
// (x, y) and the nearest disc of player. The target cell itself is not
// inspected; see IsLegal.
func (b Board) Captures(x, y int, player Cell) []Point {
	if !b.InBounds(x, y) {
		return nil
	}
	opp := player.Other()
	var out []Point
	for _, d := range Directions {
		cx, cy := x+d.X, y+d.Y
		if !b.InBounds(cx, cy) || b.At(cx, cy) != opp {
			continue
		}
		run := []Point{{cx, cy}}
		for {
			cx, cy = cx+d.X, cy+d.Y
			if !b.InBounds(cx, cy) {
				break
			}
			c := b.At(cx, cy)
			if c == player {
				out = append(out, run...)
				break
			}
			if c == Empty {
				break
			}
			run = append(run, Point{cx, cy})
		}
	}
	return out
}

// CaptureCount is len(Captures(x, y, player)).
func (b Board) CaptureCount(x, y int, player Cell) int {
	return len(b.Captures(x, y, player))
}

// IsLegal reports whether player may place at (x, y).
func (b Board) IsLegal(x, y int, player Cell) bool {
	return b.InBounds(x, y) && b.At(x, y) == Empty && b.CaptureCount(x, y, player) > 0
}

// LegalMoves enumerates the legal placements for player in row-major order.
func (b Board) LegalMoves(player Cell) []Move {
	var moves []Move
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.At(x, y) != Empty {
				continue
			}
			if n := b.CaptureCount(x, y, player); n > 0 {
				moves = append(moves, Move{X: x, Y: y, Captures: n})
			}
		}
	}
	return moves
}

// BestMove picks the legal move flipping the most discs. Ties go to the
// earliest move in row-major order.
func (b Board) BestMove(player Cell) (Move, bool) {
	moves := b.LegalMoves(player)
	if len(moves) == 0 {
		return Move{}, false
	}
	slices.SortStableFunc(moves, func(a, c Move) int {
		return c.Captures - a.Captures
	})
	return moves[0], true
}
